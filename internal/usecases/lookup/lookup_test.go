package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/internal/usecases/registry"
	"github.com/vfg2006/segment-insights-api/internal/usecases/revenue"
)

func fixture(t *testing.T) *Lookup {
	t.Helper()

	timelines := domain.TimelineMap{
		"E1": {
			{Entity: "E1", Month: 202406, Segment: "SEG01"},
			{Entity: "E1", Month: 202411, Segment: "SEG02"},
		},
	}
	idx, err := revenue.NewIndex(registry.New(), []domain.RevenueRow{
		{EntityID: "E1", Month: 202406, Products: map[string]domain.ProductMetrics{"DOM": {Revenue: 100, Volume: 1}}},
		{EntityID: "E1", Month: 202408, Products: map[string]domain.ProductMetrics{"DOM": {Revenue: 40, Volume: 1}, "EXP": {Revenue: 10}}},
		{EntityID: "E7", Month: 202408, Products: map[string]domain.ProductMetrics{"EXP": {Revenue: 5}}},
	})
	require.NoError(t, err)

	return New(registry.New(), timelines, idx)
}

func TestJourney(t *testing.T) {
	steps, err := fixture(t).Journey(" e1 ")
	require.NoError(t, err)

	require.Len(t, steps, 3)
	assert.Equal(t, domain.Month(202406), steps[0].Month)
	assert.Equal(t, "SEG01", steps[0].Segment)
	assert.True(t, steps[0].Assigned)
	assert.Equal(t, 100.0, steps[0].TotalRevenue)

	assert.Equal(t, domain.Month(202408), steps[1].Month)
	assert.Equal(t, domain.SegmentUnassigned, steps[1].Segment)
	assert.False(t, steps[1].Assigned)
	assert.Equal(t, 50.0, steps[1].TotalRevenue)
	assert.Len(t, steps[1].Products, 2)

	assert.Equal(t, domain.Month(202411), steps[2].Month)
	assert.Equal(t, "SEG02", steps[2].Segment)
	assert.Equal(t, 0.0, steps[2].TotalRevenue)
	assert.Nil(t, steps[2].Products)
}

func TestJourney_SomenteReceita(t *testing.T) {
	steps, err := fixture(t).Journey("E7")
	require.NoError(t, err)

	require.Len(t, steps, 1)
	assert.Equal(t, domain.SegmentUnassigned, steps[0].Segment)
	assert.Equal(t, 5.0, steps[0].TotalRevenue)
}

func TestJourney_Erros(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{name: "Entidade inexistente", raw: "E404", want: domain.ErrEntityNotFound},
		{name: "Identificador vazio", raw: "   ", want: domain.ErrInvalidEntityID},
		{name: "Identificador com caractere inválido", raw: "E#1", want: domain.ErrInvalidEntityID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture(t).Journey(tt.raw)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
