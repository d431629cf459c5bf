package analyzing

import (
	"strings"

	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/internal/usecases/movement"
	"github.com/vfg2006/segment-insights-api/internal/usecases/revenue"
)

// Metric define o peso usado nas visões de movimento (resumo, matriz ponderada e fluxos)
type Metric string

const (
	MetricCount      Metric = "count"
	MetricRevenue    Metric = "revenue"
	MetricVolume     Metric = "volume"
	MetricTTMRevenue Metric = "ttm_revenue"
	MetricTTMVolume  Metric = "ttm_volume"
)

// Metrics lista as métricas aceitas, na ordem exibida em mensagens de validação
var Metrics = []Metric{MetricCount, MetricRevenue, MetricVolume, MetricTTMRevenue, MetricTTMVolume}

// Valid indica se a métrica é conhecida
func (m Metric) Valid() bool {
	for _, metric := range Metrics {
		if m == metric {
			return true
		}
	}
	return false
}

// Weighting combina a métrica com um filtro opcional de produto.
// Product vazio soma todos os produtos; a contagem ignora o produto.
type Weighting struct {
	Metric  Metric `json:"metric"`
	Product string `json:"product,omitempty"`
}

// CountWeighting conta cada entidade como 1
var CountWeighting = Weighting{Metric: MetricCount}

// normalized aplica a métrica padrão e descarta o produto quando o peso é contagem
func (w Weighting) normalized() Weighting {
	if w.Metric == "" || w.Metric == MetricCount {
		return CountWeighting
	}
	return Weighting{Metric: w.Metric, Product: strings.TrimSpace(w.Product)}
}

// weigher monta o peso da métrica para o par de meses. Métricas TTM somam os
// TTMMonths meses terminando em cada mês do par.
func (d *Dataset) weigher(weighting Weighting, from, to domain.Month) (movement.Weigher, error) {
	weighting = weighting.normalized()
	product := weighting.Product
	if product != "" && !d.revenue.HasProduct(product) {
		return nil, domain.NewAnalysisError(domain.ErrUnknownProduct, "", 0, "produto "+product+" não encontrado")
	}

	switch weighting.Metric {
	case MetricCount:
		return movement.CountWeigher, nil
	case MetricRevenue:
		return d.revenue.MonthWeigher(revenue.MeasureRevenue, product), nil
	case MetricVolume:
		return d.revenue.MonthWeigher(revenue.MeasureVolume, product), nil
	case MetricTTMRevenue:
		return revenue.TrailingWeigher(d.revenue, d.ttmMonths, revenue.MeasureRevenue, product, from, to)
	case MetricTTMVolume:
		return revenue.TrailingWeigher(d.revenue, d.ttmMonths, revenue.MeasureVolume, product, from, to)
	default:
		return nil, domain.NewAnalysisError(domain.ErrInvalidMetric, "", 0, "métrica "+string(weighting.Metric)+" desconhecida")
	}
}
