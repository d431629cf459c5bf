package analyzing

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/segment-insights-api/internal/config"
	"github.com/vfg2006/segment-insights-api/internal/domain"
)

func TestDataset_ConsultasNaoAlteramRegistro(t *testing.T) {
	data := &domain.SourceData{
		Base: []domain.SegmentRow{
			{EntityID: "e1", Month: 202401, Segment: "SEG01"},
			{EntityID: "e1", Month: 202402, Segment: "SEG01"},
		},
	}

	dataset, err := BuildDataset("csv", data, config.Analysis{RiskWindowMonths: 2, MaxConcurrentJobs: 1})
	require.NoError(t, err)

	service := NewService(nil, config.Analysis{MaxConcurrentJobs: 1})
	service.dataset.Store(dataset)

	before := dataset.registry.Size()

	ctx := context.Background()
	for i := 0; i < 1000; i++ {
		_, err := service.Journey(ctx, fmt.Sprintf("UNKNOWN%d", i))
		assert.ErrorIs(t, err, domain.ErrEntityNotFound)

		_, err = service.EntityRisk(ctx, fmt.Sprintf("other%d", i), 202402)
		assert.ErrorIs(t, err, domain.ErrEntityNotFound)
	}

	steps, err := service.Journey(ctx, " e1 ")
	require.NoError(t, err)
	assert.Len(t, steps, 2)

	assert.Equal(t, before, dataset.registry.Size())
}

func TestBuildDataset_BaseMonth(t *testing.T) {
	monthly := []domain.SegmentSnapshot{
		{Source: "curr_seg_202405.csv", Rows: []domain.SegmentRow{{EntityID: "e1", Month: 202405, Segment: "SEG02"}}},
		{Source: "curr_seg_202407.csv", Rows: []domain.SegmentRow{{EntityID: "e1", Month: 202407, Segment: "SEG01"}}},
	}

	tests := []struct {
		name string
		base []domain.SegmentRow
		want domain.Month
	}{
		{
			name: "mês do snapshot base mesmo com mensal anterior",
			base: []domain.SegmentRow{{EntityID: "e2", Month: 202406, Segment: "SEG01"}},
			want: 202406,
		},
		{
			name: "sem snapshot base usa o mês mais antigo",
			want: 202405,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &domain.SourceData{Base: tt.base, Monthly: monthly}

			dataset, err := BuildDataset("csv", data, config.Analysis{MonthlyPrecedence: true, RiskWindowMonths: 2, MaxConcurrentJobs: 1})
			require.NoError(t, err)
			assert.Equal(t, tt.want, dataset.Info().BaseMonth)
		})
	}
}
