package revenue

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/internal/usecases/registry"
)

const month domain.Month = 202411

func metrics(revenue, volume float64) domain.ProductMetrics {
	return domain.ProductMetrics{Revenue: revenue, Volume: volume}
}

func rows() []domain.RevenueRow {
	return []domain.RevenueRow{
		{EntityID: "e1", Month: month, Products: map[string]domain.ProductMetrics{"DOM": metrics(100, 1), "EXP": metrics(50, 2)}},
		{EntityID: "E2", Month: month, Products: map[string]domain.ProductMetrics{"DOM": metrics(200, 3)}},
		{EntityID: "E3", Month: month, Products: map[string]domain.ProductMetrics{"EXP": metrics(30, 1)}},
		{EntityID: "E1", Month: 202410, Products: map[string]domain.ProductMetrics{"DOM": metrics(10, 1)}},
	}
}

func timelines() domain.TimelineMap {
	return domain.TimelineMap{
		"E1": {{Entity: "E1", Month: month, Segment: "SEG01"}},
		"E2": {{Entity: "E2", Month: month, Segment: "SEG02"}},
	}
}

func TestNewIndex(t *testing.T) {
	idx, err := NewIndex(registry.New(), rows())
	require.NoError(t, err)

	assert.Equal(t, []string{"DOM", "EXP"}, idx.Products())
	assert.Equal(t, []domain.Month{202410, month}, idx.Months())
	assert.True(t, idx.Has("E1"))
	assert.InDelta(t, 150.0, idx.Total("E1", month), 1e-9)
	assert.Equal(t, []domain.Month{202410, month}, idx.EntityMonths("E1"))

	record, ok := idx.Record("E9", month)
	assert.False(t, ok)
	assert.Empty(t, record.Products)
}

func TestNewIndex_LinhasRepetidasSaoSomadas(t *testing.T) {
	input := append(rows(), domain.RevenueRow{
		EntityID: "E1", Month: month, Products: map[string]domain.ProductMetrics{"DOM": metrics(5, 1)},
	})

	idx, err := NewIndex(registry.New(), input)
	require.NoError(t, err)

	record, ok := idx.Record("E1", month)
	require.True(t, ok)
	assert.Equal(t, metrics(105, 2), record.Products["DOM"])
}

func TestNewIndex_ValoresAusentesComoZero(t *testing.T) {
	idx, err := NewIndex(registry.New(), []domain.RevenueRow{
		{EntityID: "E1", Month: month, Products: map[string]domain.ProductMetrics{"DOM": metrics(math.NaN(), math.Inf(1))}},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, idx.Total("E1", month))
}

func TestNewIndex_Erros(t *testing.T) {
	tests := []struct {
		name string
		row  domain.RevenueRow
		want error
	}{
		{
			name: "Entidade inválida",
			row:  domain.RevenueRow{EntityID: "  ", Month: month},
			want: domain.ErrInvalidEntityID,
		},
		{
			name: "Mês inválido",
			row:  domain.RevenueRow{EntityID: "E1", Month: 202413},
			want: domain.ErrInvalidMonth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIndex(registry.New(), []domain.RevenueRow{tt.row})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAggregate(t *testing.T) {
	idx, err := NewIndex(registry.New(), rows())
	require.NoError(t, err)

	result, err := Aggregate(idx, timelines(), month)
	require.NoError(t, err)

	assert.Equal(t, metrics(100, 1), result.Segments["SEG01"]["DOM"])
	assert.Equal(t, metrics(200, 3), result.Segments["SEG02"]["DOM"])
	// E3 não tem segmento no mês
	assert.Equal(t, metrics(30, 1), result.Segments[domain.SegmentUnassigned]["EXP"])

	sum := 0.0
	for segment := range result.Segments {
		sum += result.SegmentTotal(segment).Revenue
	}
	assert.InDelta(t, 380.0, sum, 1e-9)
	assert.InDelta(t, result.GrandTotal().Revenue, sum, 1e-9)
}

func TestAggregate_MesInvalido(t *testing.T) {
	idx, err := NewIndex(registry.New(), rows())
	require.NoError(t, err)

	_, err = Aggregate(idx, timelines(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}

func TestSegmentProductMatrix(t *testing.T) {
	idx, err := NewIndex(registry.New(), rows())
	require.NoError(t, err)
	result, err := Aggregate(idx, timelines(), month)
	require.NoError(t, err)

	matrix := SegmentProductMatrix(result)

	assert.Equal(t, []string{"SEG01", "SEG02", domain.SegmentUnassigned}, matrix.Segments)
	assert.Equal(t, []string{"DOM", "EXP"}, matrix.Products)
	assert.Equal(t, [][]float64{{100, 50}, {200, 0}, {0, 30}}, matrix.Revenue)
	assert.Equal(t, [][]float64{{1, 2}, {3, 0}, {0, 1}}, matrix.Volume)
}

func TestProductMix(t *testing.T) {
	idx, err := NewIndex(registry.New(), rows())
	require.NoError(t, err)
	result, err := Aggregate(idx, timelines(), month)
	require.NoError(t, err)

	tests := []struct {
		name    string
		segment string
		want    []domain.ProductShare
	}{
		{
			name:    "Todos os segmentos atribuídos",
			segment: "",
			want: []domain.ProductShare{
				{Product: "DOM", Revenue: 300, Percentage: 85.71},
				{Product: "EXP", Revenue: 50, Percentage: 14.29},
			},
		},
		{
			name:    "Segmento específico",
			segment: "SEG01",
			want: []domain.ProductShare{
				{Product: "DOM", Revenue: 100, Percentage: 66.67},
				{Product: "EXP", Revenue: 50, Percentage: 33.33},
			},
		},
		{
			name:    "Segmento sem receita",
			segment: "SEG99",
			want:    []domain.ProductShare{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductMix(result, tt.segment))
		})
	}
}

func TestTrailingTotals(t *testing.T) {
	idx, err := NewIndex(registry.New(), rows())
	require.NoError(t, err)

	totals, err := TrailingTotals(idx, month, 12)
	require.NoError(t, err)
	assert.Equal(t, metrics(110, 2), totals["E1"]["DOM"])
	assert.Equal(t, metrics(200, 3), totals["E2"]["DOM"])

	totals, err = TrailingTotals(idx, month, 1)
	require.NoError(t, err)
	assert.Equal(t, metrics(100, 1), totals["E1"]["DOM"])
}

func TestMonthWeigher(t *testing.T) {
	idx, err := NewIndex(registry.New(), rows())
	require.NoError(t, err)

	tests := []struct {
		name    string
		measure Measure
		product string
		entity  domain.Entity
		month   domain.Month
		want    float64
	}{
		{name: "receita de todos os produtos", measure: MeasureRevenue, entity: "E1", month: month, want: 150},
		{name: "volume de todos os produtos", measure: MeasureVolume, entity: "E1", month: month, want: 3},
		{name: "receita de um produto", measure: MeasureRevenue, product: "EXP", entity: "E1", month: month, want: 50},
		{name: "produto sem registro da entidade", measure: MeasureRevenue, product: "EXP", entity: "E2", month: month, want: 0},
		{name: "mês anterior", measure: MeasureVolume, product: "DOM", entity: "E1", month: 202410, want: 1},
		{name: "entidade sem receita", measure: MeasureRevenue, entity: "E9", month: month, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weigh := idx.MonthWeigher(tt.measure, tt.product)
			assert.Equal(t, tt.want, weigh(tt.entity, tt.month))
		})
	}
}

func TestTrailingWeigher(t *testing.T) {
	idx, err := NewIndex(registry.New(), rows())
	require.NoError(t, err)

	tests := []struct {
		name    string
		months  int
		measure Measure
		product string
		at      domain.Month
		want    float64
	}{
		{name: "receita TTM de todos os produtos", months: 12, measure: MeasureRevenue, at: month, want: 160},
		{name: "receita TTM de um produto", months: 12, measure: MeasureRevenue, product: "DOM", at: month, want: 110},
		{name: "volume TTM", months: 12, measure: MeasureVolume, at: month, want: 4},
		{name: "janela de um mês", months: 1, measure: MeasureRevenue, at: month, want: 150},
		{name: "mês não calculado pesa zero", months: 12, measure: MeasureRevenue, at: 202410, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weigh, err := TrailingWeigher(idx, tt.months, tt.measure, tt.product, month, month)
			require.NoError(t, err)
			assert.Equal(t, tt.want, weigh("E1", tt.at))
		})
	}

	_, err = TrailingWeigher(idx, 12, MeasureRevenue, "", 202413)
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}

func TestIndex_HasProduct(t *testing.T) {
	idx, err := NewIndex(registry.New(), rows())
	require.NoError(t, err)

	assert.True(t, idx.HasProduct("DOM"))
	assert.True(t, idx.HasProduct("EXP"))
	assert.False(t, idx.HasProduct("INT"))
	assert.False(t, idx.HasProduct(""))
}

func centRows(entities int) []domain.RevenueRow {
	input := make([]domain.RevenueRow, 0, entities)
	for i := 0; i < entities; i++ {
		input = append(input, domain.RevenueRow{
			EntityID: fmt.Sprintf("E%04d", i),
			Month:    month,
			Products: map[string]domain.ProductMetrics{
				"DOM": metrics(float64(i*37%10000)/100+0.01, 1),
				"EXP": metrics(float64(i*53%10000)/100+0.07, 1),
			},
		})
	}
	return input
}

func TestAggregate_SomasIdenticasEmExecucoesRepetidas(t *testing.T) {
	input := centRows(500)
	segments := make(domain.TimelineMap, len(input))
	for _, row := range input {
		entity := domain.Entity(row.EntityID)
		segments[entity] = domain.Timeline{{Entity: entity, Month: month, Segment: "SEG01"}}
	}

	idx, err := NewIndex(registry.New(), input)
	require.NoError(t, err)

	first, err := Aggregate(idx, segments, month)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		result, err := Aggregate(idx, segments, month)
		require.NoError(t, err)
		assert.Equal(t, first.Segments, result.Segments)
		assert.Equal(t, first.GrandTotal(), result.GrandTotal())
		assert.Equal(t, ProductMix(first, ""), ProductMix(result, ""))
	}

	again, err := NewIndex(registry.New(), input)
	require.NoError(t, err)
	result, err := Aggregate(again, segments, month)
	require.NoError(t, err)
	assert.Equal(t, first.Segments, result.Segments)
}

func TestIndexTotal_SomaExataIndependenteDaOrdem(t *testing.T) {
	products := map[string]domain.ProductMetrics{}
	for i, product := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		products[product] = metrics(float64(i+1)/10, 1)
	}

	idx, err := NewIndex(registry.New(), []domain.RevenueRow{{EntityID: "E1", Month: month, Products: products}})
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		assert.Equal(t, 2.8, idx.Total("E1", month))
	}

	record, ok := idx.Record("E1", month)
	require.True(t, ok)
	assert.Equal(t, 2.8, record.TotalRevenue())
}
