package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/segment-insights-api/internal/domain"
)

// Source carrega o dataset completo a partir das tabelas do postgres
type Source struct {
	segments SegmentAssignmentRepository
	revenue  RevenueRecordRepository
}

func NewSource(segments SegmentAssignmentRepository, revenue RevenueRecordRepository) *Source {
	return &Source{
		segments: segments,
		revenue:  revenue,
	}
}

func (s *Source) Name() string {
	return "postgres"
}

// Load separa o snapshot base dos snapshots mensais pela coluna source
func (s *Source) Load(ctx context.Context) (*domain.SourceData, error) {
	snapshots, err := s.segments.ListSnapshots(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar atribuições de segmento: %w", err)
	}

	revenue, err := s.revenue.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar registros de receita: %w", err)
	}

	data := &domain.SourceData{Revenue: revenue}
	for _, snapshot := range snapshots {
		if snapshot.Source == BaseSource {
			data.Base = append(data.Base, snapshot.Rows...)
			continue
		}
		data.Monthly = append(data.Monthly, snapshot)
	}

	logrus.WithFields(logrus.Fields{
		"base_rows":     len(data.Base),
		"monthly_files": len(data.Monthly),
		"revenue_rows":  len(data.Revenue),
	}).Info("Dataset carregado do postgres")

	return data, nil
}
