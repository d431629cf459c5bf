// Package lookup monta a jornada de uma entidade combinando histórico de segmentos e receita
package lookup

import (
	"sort"

	"github.com/vfg2006/segment-insights-api/internal/domain"
)

// Normalizer converte identificadores brutos em entidades canônicas
type Normalizer interface {
	Normalize(raw string) (domain.Entity, error)
}

// RevenueIndex expõe os registros de receita de uma entidade
type RevenueIndex interface {
	Has(entity domain.Entity) bool
	EntityMonths(entity domain.Entity) []domain.Month
	Record(entity domain.Entity, month domain.Month) (domain.RevenueRecord, bool)
}

type Lookup struct {
	normalizer Normalizer
	timelines  domain.TimelineMap
	revenue    RevenueIndex
}

func New(normalizer Normalizer, timelines domain.TimelineMap, revenue RevenueIndex) *Lookup {
	return &Lookup{normalizer: normalizer, timelines: timelines, revenue: revenue}
}

// Journey retorna os meses em que a entidade aparece (segmentação ou receita), em ordem
// crescente. Meses só com receita aparecem como UNASSIGNED.
func (l *Lookup) Journey(raw string) ([]domain.JourneyStep, error) {
	entity, err := l.normalizer.Normalize(raw)
	if err != nil {
		return nil, err
	}

	timeline := l.timelines[entity]
	inRevenue := l.revenue != nil && l.revenue.Has(entity)
	if len(timeline) == 0 && !inRevenue {
		return nil, domain.NewAnalysisError(domain.ErrEntityNotFound, string(entity), 0, "entidade não encontrada em nenhuma tabela")
	}

	months := make(map[domain.Month]struct{})
	for _, assignment := range timeline {
		months[assignment.Month] = struct{}{}
	}
	if inRevenue {
		for _, month := range l.revenue.EntityMonths(entity) {
			months[month] = struct{}{}
		}
	}

	ordered := make([]domain.Month, 0, len(months))
	for month := range months {
		ordered = append(ordered, month)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	steps := make([]domain.JourneyStep, 0, len(ordered))
	for _, month := range ordered {
		step := domain.JourneyStep{Month: month, Segment: domain.SegmentUnassigned}
		if segment, ok := timeline.At(month); ok {
			step.Segment = segment
			step.Assigned = true
		}
		if inRevenue {
			if record, ok := l.revenue.Record(entity, month); ok {
				step.Products = record.Products
				step.TotalRevenue = record.TotalRevenue()
			}
		}
		steps = append(steps, step)
	}

	return steps, nil
}
