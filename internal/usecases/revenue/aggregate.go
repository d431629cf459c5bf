package revenue

import (
	"sort"

	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/pkg/utils"
)

// Aggregate soma receita e volume por segmento e produto no mês.
// Receitas de entidades sem segmento no mês vão para o segmento UNASSIGNED.
func Aggregate(idx *Index, timelines domain.TimelineMap, month domain.Month) (*domain.SegmentRevenue, error) {
	if !month.Valid() {
		return nil, domain.NewAnalysisError(domain.ErrInvalidMonth, "", month, "agregação de receita")
	}

	sums := make(map[string]sumsByProduct)
	idx.forEachInMonth(month, func(entity domain.Entity, products map[string]domain.ProductMetrics) {
		segment, ok := timelines[entity].At(month)
		if !ok {
			segment = domain.SegmentUnassigned
		}

		bucket := sums[segment]
		if bucket == nil {
			bucket = make(sumsByProduct)
			sums[segment] = bucket
		}
		bucket.add(products)
	})

	result := &domain.SegmentRevenue{
		Month:    month,
		Products: idx.Products(),
		Segments: make(map[string]map[string]domain.ProductMetrics, len(sums)),
	}
	for segment, bucket := range sums {
		result.Segments[segment] = bucket.metrics()
	}

	return result, nil
}

type sumsByProduct map[string]*domain.MetricsSum

func (s sumsByProduct) add(products map[string]domain.ProductMetrics) {
	for product, metrics := range products {
		if s[product] == nil {
			s[product] = &domain.MetricsSum{}
		}
		s[product].Add(metrics)
	}
}

func (s sumsByProduct) metrics() map[string]domain.ProductMetrics {
	metrics := make(map[string]domain.ProductMetrics, len(s))
	for product, sum := range s {
		metrics[product] = sum.Metrics()
	}
	return metrics
}

// SegmentProductMatrix monta a matriz segmento x produto; segmentos em ordem crescente
// com UNASSIGNED ao final e células sem receita preenchidas com zero
func SegmentProductMatrix(revenue *domain.SegmentRevenue) domain.SegmentProductMatrix {
	segments := make([]string, 0, len(revenue.Segments))
	hasUnassigned := false
	for segment := range revenue.Segments {
		if segment == domain.SegmentUnassigned {
			hasUnassigned = true
			continue
		}
		segments = append(segments, segment)
	}
	sort.Strings(segments)
	if hasUnassigned {
		segments = append(segments, domain.SegmentUnassigned)
	}

	matrix := domain.SegmentProductMatrix{
		Month:    revenue.Month,
		Segments: segments,
		Products: append([]string{}, revenue.Products...),
		Revenue:  make([][]float64, len(segments)),
		Volume:   make([][]float64, len(segments)),
	}

	for i, segment := range segments {
		matrix.Revenue[i] = make([]float64, len(matrix.Products))
		matrix.Volume[i] = make([]float64, len(matrix.Products))
		for j, product := range matrix.Products {
			metrics := revenue.Segments[segment][product]
			matrix.Revenue[i][j] = metrics.Revenue
			matrix.Volume[i][j] = metrics.Volume
		}
	}

	return matrix
}

// ProductMix calcula a participação de cada produto na receita de um segmento.
// Segmento vazio considera todos os segmentos atribuídos (exclui UNASSIGNED).
func ProductMix(revenue *domain.SegmentRevenue, segment string) []domain.ProductShare {
	sums := make(sumsByProduct)
	for seg, products := range revenue.Segments {
		if segment != "" && seg != segment {
			continue
		}
		if segment == "" && seg == domain.SegmentUnassigned {
			continue
		}
		sums.add(products)
	}

	var all domain.MetricsSum
	for _, sum := range sums {
		all.Add(sum.Metrics())
	}
	total := all.Metrics().Revenue

	shares := make([]domain.ProductShare, 0, len(sums))
	for product, sum := range sums {
		value := sum.Metrics().Revenue
		percentage := 0.0
		if total > 0 {
			percentage = utils.Percentage(value, total)
		}
		shares = append(shares, domain.ProductShare{Product: product, Revenue: value, Percentage: percentage})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Revenue != shares[j].Revenue {
			return shares[i].Revenue > shares[j].Revenue
		}
		return shares[i].Product < shares[j].Product
	})

	return shares
}

// TrailingTotals soma, por entidade e produto, as métricas dos n meses terminando em month
func TrailingTotals(idx *Index, month domain.Month, n int) (map[domain.Entity]map[string]domain.ProductMetrics, error) {
	if !month.Valid() {
		return nil, domain.NewAnalysisError(domain.ErrInvalidMonth, "", month, "período TTM")
	}

	sums := make(map[domain.Entity]sumsByProduct)
	for _, m := range month.Trailing(n) {
		idx.forEachInMonth(m, func(entity domain.Entity, products map[string]domain.ProductMetrics) {
			bucket := sums[entity]
			if bucket == nil {
				bucket = make(sumsByProduct)
				sums[entity] = bucket
			}
			bucket.add(products)
		})
	}

	totals := make(map[domain.Entity]map[string]domain.ProductMetrics, len(sums))
	for entity, bucket := range sums {
		totals[entity] = bucket.metrics()
	}
	return totals, nil
}
