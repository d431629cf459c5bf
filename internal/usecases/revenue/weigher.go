package revenue

import (
	"github.com/vfg2006/segment-insights-api/internal/domain"
)

// MonthWeigher pesa a entidade pela métrica do próprio mês; product vazio soma todos os produtos
func (idx *Index) MonthWeigher(measure Measure, product string) func(domain.Entity, domain.Month) float64 {
	return func(entity domain.Entity, month domain.Month) float64 {
		return idx.measure(idx.records[entity][month], measure, product)
	}
}

// TrailingWeigher pesa a entidade pela soma da métrica nos n meses terminando no mês
// consultado (TTM). Os totais são calculados de antemão para os meses informados;
// qualquer outro mês pesa zero.
func TrailingWeigher(idx *Index, n int, measure Measure, product string, months ...domain.Month) (func(domain.Entity, domain.Month) float64, error) {
	totals := make(map[domain.Month]map[domain.Entity]map[string]domain.ProductMetrics, len(months))
	for _, month := range months {
		if _, ok := totals[month]; ok {
			continue
		}
		byEntity, err := TrailingTotals(idx, month, n)
		if err != nil {
			return nil, err
		}
		totals[month] = byEntity
	}

	return func(entity domain.Entity, month domain.Month) float64 {
		return idx.measure(totals[month][entity], measure, product)
	}, nil
}
