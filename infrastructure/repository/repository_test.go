package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/segment-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/segment-insights-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestSnapshotsQuery(t *testing.T) {
	tests := []struct {
		name      string
		months    []domain.Month
		wantWhere bool
		wantArgs  int
	}{
		{
			name:      "sem filtro de meses",
			months:    nil,
			wantWhere: false,
			wantArgs:  0,
		},
		{
			name:      "com filtro de meses",
			months:    []domain.Month{202401, 202402},
			wantWhere: true,
			wantArgs:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := snapshotsQuery(tt.months)
			require.NoError(t, err)

			assert.Contains(t, query, "FROM segment_assignments sa")
			assert.Contains(t, query, "ORDER BY sa.source ASC, sa.month ASC, sa.entity_id ASC")
			assert.Equal(t, tt.wantWhere, strings.Contains(query, "WHERE"))
			assert.Len(t, args, tt.wantArgs)
			if tt.wantWhere {
				assert.Contains(t, query, "sa.month = ANY($1)")
			}
		})
	}
}

func TestRevenueQuery(t *testing.T) {
	query, args, err := revenueQuery([]domain.Month{202403})
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT rr.entity_id, rr.month, rr.metrics FROM revenue_records rr")
	assert.Contains(t, query, "rr.month = ANY($1)")
	assert.Len(t, args, 1)
}

func TestBatches(t *testing.T) {
	tests := []struct {
		name string
		n    int
		size int
		want [][2]int
	}{
		{name: "vazio", n: 0, size: 10, want: [][2]int{}},
		{name: "lote único parcial", n: 3, size: 10, want: [][2]int{{0, 3}}},
		{name: "lotes exatos", n: 4, size: 2, want: [][2]int{{0, 2}, {2, 4}}},
		{name: "último lote menor", n: 5, size: 2, want: [][2]int{{0, 2}, {2, 4}, {4, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, batches(tt.n, tt.size))
		})
	}
}

func TestSortedSnapshots(t *testing.T) {
	snapshots := sortedSnapshots(map[string]*domain.SegmentSnapshot{
		"curr_seg_202402": {Source: "curr_seg_202402"},
		"base":            {Source: "base"},
		"curr_seg_202401": {Source: "curr_seg_202401"},
	})

	require.Len(t, snapshots, 3)
	assert.Equal(t, "base", snapshots[0].Source)
	assert.Equal(t, "curr_seg_202401", snapshots[1].Source)
	assert.Equal(t, "curr_seg_202402", snapshots[2].Source)
}

func TestSource_Load(t *testing.T) {
	base := domain.SegmentSnapshot{
		Source: BaseSource,
		Rows:   []domain.SegmentRow{{EntityID: "1", Month: 202401, Segment: "A"}},
	}
	monthly := domain.SegmentSnapshot{
		Source: "curr_seg_202402",
		Rows:   []domain.SegmentRow{{EntityID: "1", Month: 202402, Segment: "B"}},
	}
	revenue := []domain.RevenueRow{{
		EntityID: "1",
		Month:    202402,
		Products: map[string]domain.ProductMetrics{"p1": {Revenue: 10, Volume: 1}},
	}}

	tests := []struct {
		name        string
		setupMocks  func(segments *mocks.MockSegmentAssignmentRepository, revenues *mocks.MockRevenueRecordRepository)
		wantErr     bool
		wantBase    int
		wantMonthly int
		wantRevenue int
	}{
		{
			name: "separa base e mensais",
			setupMocks: func(segments *mocks.MockSegmentAssignmentRepository, revenues *mocks.MockRevenueRecordRepository) {
				segments.EXPECT().ListSnapshots(gomock.Any(), gomock.Nil()).Return([]domain.SegmentSnapshot{base, monthly}, nil)
				revenues.EXPECT().List(gomock.Any(), gomock.Nil()).Return(revenue, nil)
			},
			wantBase:    1,
			wantMonthly: 1,
			wantRevenue: 1,
		},
		{
			name: "erro ao listar segmentos",
			setupMocks: func(segments *mocks.MockSegmentAssignmentRepository, revenues *mocks.MockRevenueRecordRepository) {
				segments.EXPECT().ListSnapshots(gomock.Any(), gomock.Any()).Return(nil, errors.New("conexão recusada"))
			},
			wantErr: true,
		},
		{
			name: "erro ao listar receita",
			setupMocks: func(segments *mocks.MockSegmentAssignmentRepository, revenues *mocks.MockRevenueRecordRepository) {
				segments.EXPECT().ListSnapshots(gomock.Any(), gomock.Any()).Return([]domain.SegmentSnapshot{base}, nil)
				revenues.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			segments := mocks.NewMockSegmentAssignmentRepository(ctrl)
			revenues := mocks.NewMockRevenueRecordRepository(ctrl)
			tt.setupMocks(segments, revenues)

			source := NewSource(segments, revenues)
			assert.Equal(t, "postgres", source.Name())

			data, err := source.Load(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, data)
				return
			}

			require.NoError(t, err)
			assert.Len(t, data.Base, tt.wantBase)
			assert.Len(t, data.Monthly, tt.wantMonthly)
			assert.Len(t, data.Revenue, tt.wantRevenue)
		})
	}
}
