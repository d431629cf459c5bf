// Package cohort agrupa entidades pela primeira observação (mês, segmento) e acompanha
// a retenção e a receita de cada coorte nos meses seguintes
package cohort

import (
	"sort"

	"github.com/vfg2006/segment-insights-api/internal/domain"
)

// RevenueSource fornece a receita total de uma entidade em um mês
type RevenueSource interface {
	Total(entity domain.Entity, month domain.Month) float64
}

type Engine struct {
	timelines domain.TimelineMap
	revenue   RevenueSource
}

// NewEngine cria o motor de coortes; revenue pode ser nil, nesse caso a receita é zero
func NewEngine(timelines domain.TimelineMap, revenue RevenueSource) *Engine {
	return &Engine{timelines: timelines, revenue: revenue}
}

// BuildCohorts agrupa as entidades pela origem. Coortes são ordenadas por mês de origem
// e, no mesmo mês, pelo código do segmento. Entidades dentro da coorte ficam ordenadas.
func (e *Engine) BuildCohorts() []domain.Cohort {
	type origin struct {
		month   domain.Month
		segment string
	}

	groups := make(map[origin][]domain.Entity)
	for _, entity := range e.timelines.Entities() {
		first, ok := e.timelines[entity].First()
		if !ok {
			continue
		}
		key := origin{month: first.Month, segment: first.Segment}
		groups[key] = append(groups[key], entity)
	}

	cohorts := make([]domain.Cohort, 0, len(groups))
	for key, entities := range groups {
		if len(entities) == 0 {
			continue
		}
		cohorts = append(cohorts, domain.Cohort{Segment: key.segment, Origin: key.month, Entities: entities})
	}

	sort.Slice(cohorts, func(i, j int) bool {
		if cohorts[i].Origin != cohorts[j].Origin {
			return cohorts[i].Origin < cohorts[j].Origin
		}
		return cohorts[i].Segment < cohorts[j].Segment
	})

	return cohorts
}

// Find retorna a coorte com o segmento e mês de origem informados
func (e *Engine) Find(segment string, originMonth domain.Month) (domain.Cohort, bool) {
	for _, c := range e.BuildCohorts() {
		if c.Segment == segment && c.Origin == originMonth {
			return c, true
		}
	}
	return domain.Cohort{}, false
}

// RetentionCurve calcula, para cada mês, quantas entidades da coorte ainda estão
// presentes (em qualquer segmento) e a receita somada. Meses anteriores à origem são
// ignorados e o resultado sai em ordem crescente de mês.
func (e *Engine) RetentionCurve(c domain.Cohort, months []domain.Month) []domain.RetentionPoint {
	if c.Size() == 0 {
		return nil
	}

	ordered := append([]domain.Month{}, months...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	points := make([]domain.RetentionPoint, 0, len(ordered))
	var previous domain.Month
	for i, month := range ordered {
		if month < c.Origin || (i > 0 && month == previous) {
			continue
		}
		previous = month

		point := domain.RetentionPoint{Month: month}
		for _, entity := range c.Entities {
			if _, ok := e.timelines[entity].At(month); ok {
				point.RetainedCount++
			}
			point.Revenue += e.total(entity, month)
		}
		point.RetentionRate = float64(point.RetainedCount) / float64(c.Size())
		points = append(points, point)
	}

	return points
}

// Breakdown detalha o destino da coorte no mês: mesmo segmento, subiu, desceu,
// mudou lateralmente ou saiu do sistema
func (e *Engine) Breakdown(c domain.Cohort, month domain.Month) (domain.CohortBreakdown, error) {
	if !month.Valid() {
		return domain.CohortBreakdown{}, domain.NewAnalysisError(domain.ErrInvalidMonth, "", month, "detalhamento de coorte")
	}

	result := domain.CohortBreakdown{
		Segment: c.Segment,
		Origin:  c.Origin,
		Month:   month,
		Size:    c.Size(),
	}
	if result.Size == 0 {
		return result, nil
	}

	for _, entity := range c.Entities {
		segment, ok := e.timelines[entity].At(month)
		if !ok {
			result.Churned++
			continue
		}
		if segment == c.Segment {
			result.Retained++
			continue
		}
		switch domain.CompareSegments(c.Segment, segment) {
		case domain.DirectionUp:
			result.MovedUp++
		case domain.DirectionDown:
			result.MovedDown++
		default:
			result.MovedLateral++
		}
	}

	result.RetentionRate = float64(result.Size-result.Churned) / float64(result.Size)
	result.ChurnRate = float64(result.Churned) / float64(result.Size)
	return result, nil
}

// RevenueChange compara a receita da coorte no mês de origem com a receita no mês informado
func (e *Engine) RevenueChange(c domain.Cohort, month domain.Month) (domain.CohortRevenueChange, error) {
	if !month.Valid() {
		return domain.CohortRevenueChange{}, domain.NewAnalysisError(domain.ErrInvalidMonth, "", month, "variação de receita da coorte")
	}

	result := domain.CohortRevenueChange{
		Segment:  c.Segment,
		Origin:   c.Origin,
		Month:    month,
		Entities: c.Size(),
	}
	for _, entity := range c.Entities {
		result.OriginRevenue += e.total(entity, c.Origin)
		result.MonthRevenue += e.total(entity, month)
	}

	result.Change = result.MonthRevenue - result.OriginRevenue
	if result.OriginRevenue != 0 {
		result.ChangePercentage = result.Change / result.OriginRevenue * 100
	}
	if result.Entities > 0 {
		result.AvgOriginRevenue = result.OriginRevenue / float64(result.Entities)
		result.AvgMonthRevenue = result.MonthRevenue / float64(result.Entities)
	}

	return result, nil
}

func (e *Engine) total(entity domain.Entity, month domain.Month) float64 {
	if e.revenue == nil {
		return 0
	}
	return e.revenue.Total(entity, month)
}
