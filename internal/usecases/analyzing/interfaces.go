package analyzing

import (
	"context"

	"github.com/vfg2006/segment-insights-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/analyzing.go -package=mocks

// DataSource carrega as tabelas de entrada (CSV ou PostgreSQL)
type DataSource interface {
	// Name identifica a origem nos logs e no resumo do dataset
	Name() string
	// Load lê base, snapshots mensais e receita já tipados
	Load(ctx context.Context) (*domain.SourceData, error)
}

// Analyzer é a superfície de consultas usada pela API e pelo agendador
type Analyzer interface {
	Reload(ctx context.Context) (*domain.DatasetInfo, error)
	Info(ctx context.Context) (*domain.DatasetInfo, error)
	Months(ctx context.Context) ([]domain.Month, error)

	Transitions(ctx context.Context, from, to domain.Month) (*domain.TransitionMatrix, error)
	Migrations(ctx context.Context, from, to domain.Month) ([]domain.Migration, error)
	WeightedTransitions(ctx context.Context, from, to domain.Month, weighting Weighting) (*domain.WeightedMatrix, error)
	Movements(ctx context.Context, from, to domain.Month) ([]domain.EntityMovement, error)
	Summary(ctx context.Context, from, to domain.Month, weighting Weighting) ([]domain.SummaryRow, error)
	Flows(ctx context.Context, from, to domain.Month, weighting Weighting) ([]domain.Flow, error)
	ComparePeriods(ctx context.Context, base domain.Month, months []domain.Month) ([]*domain.PeriodComparison, error)

	SegmentRevenue(ctx context.Context, month domain.Month) (*domain.SegmentRevenue, error)
	RevenueMatrix(ctx context.Context, month domain.Month) (*domain.SegmentProductMatrix, error)
	ProductMix(ctx context.Context, month domain.Month, segment string) ([]domain.ProductShare, error)

	Cohorts(ctx context.Context) ([]CohortSummary, error)
	Retention(ctx context.Context, segment string, origin domain.Month, months []domain.Month) (*RetentionReport, error)

	EntityRisk(ctx context.Context, entityID string, asOf domain.Month) (*domain.RiskScore, error)
	RiskRanking(ctx context.Context, asOf domain.Month, limit int) (*RiskReport, error)
	SegmentRisk(ctx context.Context, asOf domain.Month) ([]domain.RiskScore, error)

	Journey(ctx context.Context, entityID string) ([]domain.JourneyStep, error)
}
