package movement

import (
	"sort"

	"github.com/vfg2006/segment-insights-api/internal/domain"
)

// Weigher define o peso de uma entidade em um mês (contagem, receita, ...)
type Weigher func(entity domain.Entity, month domain.Month) float64

// CountWeigher conta cada entidade como 1
func CountWeigher(domain.Entity, domain.Month) float64 {
	return 1
}

// Summarize gera a visão resumo por segmento entre from e to, com linha TOTAL ao final.
// Colunas de perda usam o peso em from; as demais usam o peso em to.
func Summarize(timelines domain.TimelineMap, from, to domain.Month, weigh Weigher) ([]domain.SummaryRow, error) {
	if err := validatePair(from, to); err != nil {
		return nil, err
	}
	if weigh == nil {
		weigh = CountWeigher
	}

	rows := make(map[string]*domain.SummaryRow)
	row := func(segment string) *domain.SummaryRow {
		if rows[segment] == nil {
			rows[segment] = &domain.SummaryRow{Segment: segment}
		}
		return rows[segment]
	}

	for _, entity := range timelines.Entities() {
		timeline := timelines[entity]
		origin, inFrom := timeline.At(from)
		destination, inTo := timeline.At(to)

		if inFrom {
			r := row(origin)
			r.Base += weigh(entity, from)
			switch {
			case !inTo:
				r.LostSystem += weigh(entity, from)
			case origin != destination:
				r.LostOtherSegment += weigh(entity, from)
			}
		}

		if inTo {
			r := row(destination)
			current := weigh(entity, to)
			r.Current += current
			switch {
			case !inFrom:
				r.NewSystem += current
			case origin == destination:
				r.Retained += current
			default:
				r.AddedOtherSegment += current
			}
		}
	}

	segments := make([]string, 0, len(rows))
	for segment := range rows {
		segments = append(segments, segment)
	}
	sort.Strings(segments)

	summary := make([]domain.SummaryRow, 0, len(segments)+1)
	total := domain.SummaryRow{Segment: domain.SegmentTotal}
	for _, segment := range segments {
		r := rows[segment]
		r.NetChange = r.Current - r.Base
		summary = append(summary, *r)

		total.Base += r.Base
		total.Current += r.Current
		total.Retained += r.Retained
		total.NewSystem += r.NewSystem
		total.AddedOtherSegment += r.AddedOtherSegment
		total.LostOtherSegment += r.LostOtherSegment
		total.LostSystem += r.LostSystem
		total.NetChange += r.NetChange
	}

	return append(summary, total), nil
}
