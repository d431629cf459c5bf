package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// ProductMetrics contém receita e volume de um produto
type ProductMetrics struct {
	Revenue float64 `json:"revenue"`
	Volume  float64 `json:"volume"`
}

// Add soma as métricas tratando valores ausentes (NaN) como zero
func (p ProductMetrics) Add(other ProductMetrics) ProductMetrics {
	return ProductMetrics{
		Revenue: p.Revenue + zeroIfMissing(other.Revenue),
		Volume:  p.Volume + zeroIfMissing(other.Volume),
	}
}

// MetricsSum acumula métricas em decimal; o resultado é exato e não depende da ordem das parcelas
type MetricsSum struct {
	revenue decimal.Decimal
	volume  decimal.Decimal
}

func (s *MetricsSum) Add(metrics ProductMetrics) {
	s.revenue = s.revenue.Add(decimal.NewFromFloat(zeroIfMissing(metrics.Revenue)))
	s.volume = s.volume.Add(decimal.NewFromFloat(zeroIfMissing(metrics.Volume)))
}

func (s MetricsSum) Metrics() ProductMetrics {
	return ProductMetrics{
		Revenue: s.revenue.InexactFloat64(),
		Volume:  s.volume.InexactFloat64(),
	}
}

// Sum soma valores em decimal, tratando NaN e infinitos como zero
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(zeroIfMissing(v)))
	}
	return total.InexactFloat64()
}

func zeroIfMissing(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// RevenueRow é uma linha bruta de receita: entidade, mês e métricas por produto.
// O conjunto de produtos é descoberto nas colunas de entrada.
type RevenueRow struct {
	EntityID string                    `json:"entity_id"`
	Month    Month                     `json:"month"`
	Products map[string]ProductMetrics `json:"products"`
}

// RevenueRecord é a receita canônica de uma entidade em um mês
type RevenueRecord struct {
	Entity   Entity                    `json:"entity"`
	Month    Month                     `json:"month"`
	Products map[string]ProductMetrics `json:"products"`
}

// TotalRevenue soma a receita de todos os produtos
func (r RevenueRecord) TotalRevenue() float64 {
	var sum MetricsSum
	for _, metrics := range r.Products {
		sum.Add(metrics)
	}
	return sum.Metrics().Revenue
}

// SegmentRevenue é a agregação de receita por segmento e produto em um mês
type SegmentRevenue struct {
	Month    Month                                `json:"month"`
	Products []string                             `json:"products"`
	Segments map[string]map[string]ProductMetrics `json:"segments"`
}

// SegmentTotal soma receita e volume de todos os produtos de um segmento
func (s *SegmentRevenue) SegmentTotal(segment string) ProductMetrics {
	var sum MetricsSum
	for _, metrics := range s.Segments[segment] {
		sum.Add(metrics)
	}
	return sum.Metrics()
}

// GrandTotal soma todos os segmentos, incluindo o segmento UNASSIGNED
func (s *SegmentRevenue) GrandTotal() ProductMetrics {
	var sum MetricsSum
	for _, products := range s.Segments {
		for _, metrics := range products {
			sum.Add(metrics)
		}
	}
	return sum.Metrics()
}

// SegmentProductMatrix tem segmentos como linhas e produtos como colunas
type SegmentProductMatrix struct {
	Month    Month       `json:"month"`
	Segments []string    `json:"segments"`
	Products []string    `json:"products"`
	Revenue  [][]float64 `json:"revenue"`
	Volume   [][]float64 `json:"volume"`
}

// ProductShare é a participação de um produto na receita
type ProductShare struct {
	Product    string  `json:"product"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}
