// Package movement calcula matrizes de transição e migrações de segmento entre dois meses
package movement

import (
	"github.com/vfg2006/segment-insights-api/internal/domain"
)

func validatePair(from, to domain.Month) error {
	if !from.Valid() {
		return domain.NewAnalysisError(domain.ErrInvalidMonth, "", from, "mês de origem inválido")
	}
	if !to.Valid() {
		return domain.NewAnalysisError(domain.ErrInvalidMonth, "", to, "mês de destino inválido")
	}
	return nil
}

// Transitions monta a matriz de transição entre from e to.
// A diagonal (segmento inalterado) é mantida para o cálculo de retenção.
func Transitions(timelines domain.TimelineMap, from, to domain.Month) (*domain.TransitionMatrix, error) {
	if err := validatePair(from, to); err != nil {
		return nil, err
	}

	matrix := &domain.TransitionMatrix{
		FromMonth:    from,
		ToMonth:      to,
		Cells:        make(map[string]map[string]int),
		Lost:         make(map[string]int),
		New:          make(map[string]int),
		OriginTotals: make(map[string]int),
		Dropped:      []domain.Entity{},
		Added:        []domain.Entity{},
	}
	destinations := make(map[string]int)

	for _, entity := range timelines.Entities() {
		timeline := timelines[entity]
		origin, inFrom := timeline.At(from)
		destination, inTo := timeline.At(to)

		switch {
		case inFrom && inTo:
			if matrix.Cells[origin] == nil {
				matrix.Cells[origin] = make(map[string]int)
			}
			matrix.Cells[origin][destination]++
			matrix.OriginTotals[origin]++
			destinations[destination]++
		case inFrom:
			matrix.Lost[origin]++
			matrix.OriginTotals[origin]++
			matrix.Dropped = append(matrix.Dropped, entity)
		case inTo:
			matrix.New[destination]++
			destinations[destination]++
			matrix.Added = append(matrix.Added, entity)
		}
	}

	matrix.Origins = domain.SortedKeys(matrix.OriginTotals)
	matrix.Destinations = domain.SortedKeys(destinations)

	return matrix, nil
}

// WeightedTransitions monta a matriz entre from e to somando o peso de cada entidade.
// Células e novos usam o peso em to; perdidos usam o peso em from.
func WeightedTransitions(timelines domain.TimelineMap, from, to domain.Month, weigh Weigher) (*domain.WeightedMatrix, error) {
	if err := validatePair(from, to); err != nil {
		return nil, err
	}
	if weigh == nil {
		weigh = CountWeigher
	}

	matrix := &domain.WeightedMatrix{
		FromMonth: from,
		ToMonth:   to,
		Cells:     make(map[string]map[string]float64),
		Lost:      make(map[string]float64),
		New:       make(map[string]float64),
	}
	origins := make(map[string]int)
	destinations := make(map[string]int)

	for _, entity := range timelines.Entities() {
		timeline := timelines[entity]
		origin, inFrom := timeline.At(from)
		destination, inTo := timeline.At(to)

		switch {
		case inFrom && inTo:
			if matrix.Cells[origin] == nil {
				matrix.Cells[origin] = make(map[string]float64)
			}
			matrix.Cells[origin][destination] += weigh(entity, to)
			origins[origin]++
			destinations[destination]++
		case inFrom:
			matrix.Lost[origin] += weigh(entity, from)
			origins[origin]++
		case inTo:
			matrix.New[destination] += weigh(entity, to)
			destinations[destination]++
		}
	}

	matrix.Origins = domain.SortedKeys(origins)
	matrix.Destinations = domain.SortedKeys(destinations)

	return matrix, nil
}

// Migrations lista as entidades presentes nos dois meses que mudaram de segmento,
// ordenadas pelo identificador
func Migrations(timelines domain.TimelineMap, from, to domain.Month) ([]domain.Migration, error) {
	if err := validatePair(from, to); err != nil {
		return nil, err
	}

	migrations := make([]domain.Migration, 0)
	for _, entity := range timelines.Entities() {
		timeline := timelines[entity]
		origin, inFrom := timeline.At(from)
		destination, inTo := timeline.At(to)
		if !inFrom || !inTo || origin == destination {
			continue
		}

		migrations = append(migrations, domain.Migration{
			Entity:      entity,
			FromSegment: origin,
			ToSegment:   destination,
			Direction:   domain.CompareSegments(origin, destination),
		})
	}

	return migrations, nil
}

// Classify atribui um status de movimento a cada entidade presente em ao menos um dos meses
func Classify(timelines domain.TimelineMap, from, to domain.Month) ([]domain.EntityMovement, error) {
	if err := validatePair(from, to); err != nil {
		return nil, err
	}

	movements := make([]domain.EntityMovement, 0)
	for _, entity := range timelines.Entities() {
		timeline := timelines[entity]
		origin, inFrom := timeline.At(from)
		destination, inTo := timeline.At(to)
		if !inFrom && !inTo {
			continue
		}

		movements = append(movements, domain.EntityMovement{
			Entity:      entity,
			FromSegment: origin,
			ToSegment:   destination,
			Status:      status(inFrom, inTo, origin == destination),
		})
	}

	return movements, nil
}

func status(inFrom, inTo, sameSegment bool) domain.MovementStatus {
	switch {
	case !inFrom:
		return domain.StatusNewSystem
	case !inTo:
		return domain.StatusLostSystem
	case sameSegment:
		return domain.StatusRetained
	default:
		return domain.StatusMovedInternal
	}
}
