// Package revenue indexa registros de receita por entidade e mês e produz agregações
// por segmento e produto
package revenue

import (
	"sort"

	"github.com/vfg2006/segment-insights-api/internal/domain"
)

// Normalizer converte identificadores brutos em entidades canônicas
type Normalizer interface {
	Normalize(raw string) (domain.Entity, error)
}

// Measure escolhe qual métrica do produto compõe um peso
type Measure string

const (
	MeasureRevenue Measure = "revenue"
	MeasureVolume  Measure = "volume"
)

func (m Measure) pick(metrics domain.ProductMetrics) float64 {
	if m == MeasureVolume {
		return metrics.Volume
	}
	return metrics.Revenue
}

// Index é a visão imutável dos registros de receita após a construção
type Index struct {
	records  map[domain.Entity]map[domain.Month]map[string]domain.ProductMetrics
	byMonth  map[domain.Month][]domain.Entity
	products []string
	months   []domain.Month
}

// NewIndex normaliza as entidades e consolida linhas repetidas da mesma entidade e mês
// somando as métricas. Valores ausentes são tratados como zero.
func NewIndex(normalizer Normalizer, rows []domain.RevenueRow) (*Index, error) {
	idx := &Index{
		records: make(map[domain.Entity]map[domain.Month]map[string]domain.ProductMetrics),
		byMonth: make(map[domain.Month][]domain.Entity),
	}
	sums := make(map[domain.Entity]map[domain.Month]map[string]*domain.MetricsSum)
	products := make(map[string]struct{})

	for _, row := range rows {
		entity, err := normalizer.Normalize(row.EntityID)
		if err != nil {
			return nil, err
		}
		if !row.Month.Valid() {
			return nil, domain.NewAnalysisError(domain.ErrInvalidMonth, string(entity), row.Month, "registro de receita")
		}

		byMonth := sums[entity]
		if byMonth == nil {
			byMonth = make(map[domain.Month]map[string]*domain.MetricsSum)
			sums[entity] = byMonth
		}
		byProduct := byMonth[row.Month]
		if byProduct == nil {
			byProduct = make(map[string]*domain.MetricsSum)
			byMonth[row.Month] = byProduct
		}

		for product, metrics := range row.Products {
			if byProduct[product] == nil {
				byProduct[product] = &domain.MetricsSum{}
			}
			byProduct[product].Add(metrics)
			products[product] = struct{}{}
		}
	}

	for entity, byMonth := range sums {
		idx.records[entity] = make(map[domain.Month]map[string]domain.ProductMetrics, len(byMonth))
		for month, byProduct := range byMonth {
			consolidated := make(map[string]domain.ProductMetrics, len(byProduct))
			for product, sum := range byProduct {
				consolidated[product] = sum.Metrics()
			}
			idx.records[entity][month] = consolidated
			idx.byMonth[month] = append(idx.byMonth[month], entity)
		}
	}

	// entidades de cada mês ficam ordenadas para que toda iteração seja determinística
	for month, entities := range idx.byMonth {
		sort.Slice(entities, func(i, j int) bool { return entities[i] < entities[j] })
		idx.months = append(idx.months, month)
	}
	sort.Slice(idx.months, func(i, j int) bool { return idx.months[i] < idx.months[j] })

	for product := range products {
		idx.products = append(idx.products, product)
	}
	sort.Strings(idx.products)

	return idx, nil
}

// Products retorna o conjunto de produtos descoberto, em ordem crescente
func (idx *Index) Products() []string {
	return append([]string{}, idx.products...)
}

// Months retorna os meses com algum registro de receita
func (idx *Index) Months() []domain.Month {
	return append([]domain.Month{}, idx.months...)
}

// HasProduct indica se o produto aparece em algum registro
func (idx *Index) HasProduct(product string) bool {
	i := sort.SearchStrings(idx.products, product)
	return i < len(idx.products) && idx.products[i] == product
}

// Has indica se a entidade possui algum registro de receita
func (idx *Index) Has(entity domain.Entity) bool {
	_, ok := idx.records[entity]
	return ok
}

// Record retorna a receita da entidade no mês; registros ausentes retornam vazio e false
func (idx *Index) Record(entity domain.Entity, month domain.Month) (domain.RevenueRecord, bool) {
	byProduct, ok := idx.records[entity][month]
	if !ok {
		return domain.RevenueRecord{Entity: entity, Month: month, Products: map[string]domain.ProductMetrics{}}, false
	}

	products := make(map[string]domain.ProductMetrics, len(byProduct))
	for product, metrics := range byProduct {
		products[product] = metrics
	}
	return domain.RevenueRecord{Entity: entity, Month: month, Products: products}, true
}

// Total retorna a receita total da entidade no mês (zero se não houver registro)
func (idx *Index) Total(entity domain.Entity, month domain.Month) float64 {
	return idx.measure(idx.records[entity][month], MeasureRevenue, "")
}

// measure soma a métrica dos produtos em ordem crescente; product vazio considera todos
func (idx *Index) measure(byProduct map[string]domain.ProductMetrics, measure Measure, product string) float64 {
	if len(byProduct) == 0 {
		return 0
	}
	if product != "" {
		return measure.pick(byProduct[product])
	}

	var sum domain.MetricsSum
	for _, p := range idx.products {
		if metrics, ok := byProduct[p]; ok {
			sum.Add(metrics)
		}
	}
	return measure.pick(sum.Metrics())
}

// EntityMonths retorna os meses com receita da entidade, em ordem crescente
func (idx *Index) EntityMonths(entity domain.Entity) []domain.Month {
	months := make([]domain.Month, 0, len(idx.records[entity]))
	for month := range idx.records[entity] {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
	return months
}

// forEachInMonth percorre as entidades com receita no mês em ordem crescente
func (idx *Index) forEachInMonth(month domain.Month, fn func(entity domain.Entity, products map[string]domain.ProductMetrics)) {
	for _, entity := range idx.byMonth[month] {
		fn(entity, idx.records[entity][month])
	}
}
