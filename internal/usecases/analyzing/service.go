// Package analyzing expõe as análises de segmentação sobre um dataset imutável,
// recarregado de forma atômica a partir de uma DataSource
package analyzing

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/segment-insights-api/internal/config"
	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/internal/usecases/movement"
	"github.com/vfg2006/segment-insights-api/internal/usecases/revenue"
	"github.com/vfg2006/segment-insights-api/internal/usecases/risk"
	"github.com/vfg2006/segment-insights-api/pkg/log"
)

// CohortSummary descreve uma coorte sem a lista de entidades
type CohortSummary struct {
	Segment string       `json:"segment"`
	Origin  domain.Month `json:"origin"`
	Size    int          `json:"size"`
}

// RetentionReport reúne curva de retenção, detalhamento e variação de receita da coorte
type RetentionReport struct {
	Cohort        CohortSummary               `json:"cohort"`
	Points        []domain.RetentionPoint     `json:"points"`
	Breakdowns    []domain.CohortBreakdown    `json:"breakdowns"`
	RevenueChange *domain.CohortRevenueChange `json:"revenue_change,omitempty"`
}

// RiskReport é o ranking de risco das entidades em um mês
type RiskReport struct {
	AsOf         domain.Month            `json:"as_of"`
	Scores       []domain.RiskScore      `json:"scores"`
	Skipped      []domain.Entity         `json:"skipped"`
	Distribution domain.RiskDistribution `json:"distribution"`
}

type Service struct {
	source   DataSource
	cfg      config.Analysis
	dataset  atomic.Pointer[Dataset]
	reloadMu sync.Mutex
}

func NewService(source DataSource, cfg config.Analysis) *Service {
	if cfg.MaxConcurrentJobs <= 0 {
		cfg.MaxConcurrentJobs = 1
	}
	return &Service{source: source, cfg: cfg}
}

// Reload carrega a DataSource e troca o dataset apenas se a carga completa tiver sucesso
func (s *Service) Reload(ctx context.Context) (*domain.DatasetInfo, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	logger := log.ForContext(ctx)
	startTime := time.Now()

	data, err := s.source.Load(ctx)
	if err != nil {
		logger.WithError(err).WithField("source", s.source.Name()).Error("Erro ao carregar dados de segmentação")
		return nil, errors.Wrapf(err, "erro ao carregar dados de %s", s.source.Name())
	}

	dataset, err := BuildDataset(s.source.Name(), data, s.cfg)
	if err != nil {
		logger.WithError(err).Error("Erro ao montar dataset")
		return nil, err
	}

	s.dataset.Store(dataset)

	info := dataset.Info()
	logrus.WithFields(logrus.Fields{
		"source":   info.Source,
		"entities": info.Entities,
		"months":   len(info.Months),
		"products": len(info.Products),
		"duration": time.Since(startTime).String(),
	}).Info("Dataset de segmentação carregado")

	return &info, nil
}

func (s *Service) current() (*Dataset, error) {
	dataset := s.dataset.Load()
	if dataset == nil {
		return nil, domain.NewAnalysisError(domain.ErrDatasetNotLoaded, "", 0, "")
	}
	return dataset, nil
}

func (s *Service) Info(ctx context.Context) (*domain.DatasetInfo, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	info := dataset.Info()
	return &info, nil
}

// Months retorna os meses disponíveis (segmentação e receita) em ordem crescente
func (s *Service) Months(ctx context.Context) ([]domain.Month, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	return dataset.Info().Months, nil
}

func (s *Service) Transitions(ctx context.Context, from, to domain.Month) (*domain.TransitionMatrix, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	if err := dataset.requireMonths(from, to); err != nil {
		return nil, err
	}
	return movement.Transitions(dataset.timelines, from, to)
}

func (s *Service) Migrations(ctx context.Context, from, to domain.Month) ([]domain.Migration, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	if err := dataset.requireMonths(from, to); err != nil {
		return nil, err
	}
	return movement.Migrations(dataset.timelines, from, to)
}

// Summary gera a visão resumo por segmento com o peso escolhido
func (s *Service) Summary(ctx context.Context, from, to domain.Month, weighting Weighting) ([]domain.SummaryRow, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	if err := dataset.requireMonths(from, to); err != nil {
		return nil, err
	}

	weigh, err := dataset.weigher(weighting, from, to)
	if err != nil {
		return nil, err
	}
	return movement.Summarize(dataset.timelines, from, to, weigh)
}

// WeightedTransitions monta a matriz de transição somando a métrica escolhida
func (s *Service) WeightedTransitions(ctx context.Context, from, to domain.Month, weighting Weighting) (*domain.WeightedMatrix, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	if err := dataset.requireMonths(from, to); err != nil {
		return nil, err
	}

	weigh, err := dataset.weigher(weighting, from, to)
	if err != nil {
		return nil, err
	}

	matrix, err := movement.WeightedTransitions(dataset.timelines, from, to, weigh)
	if err != nil {
		return nil, err
	}
	weighting = weighting.normalized()
	matrix.Metric = string(weighting.Metric)
	matrix.Product = weighting.Product
	return matrix, nil
}

func (s *Service) Flows(ctx context.Context, from, to domain.Month, weighting Weighting) ([]domain.Flow, error) {
	matrix, err := s.WeightedTransitions(ctx, from, to, weighting)
	if err != nil {
		return nil, err
	}
	return movement.Flows(matrix), nil
}

// Movements classifica cada entidade presente em from ou to
func (s *Service) Movements(ctx context.Context, from, to domain.Month) ([]domain.EntityMovement, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	if err := dataset.requireMonths(from, to); err != nil {
		return nil, err
	}
	return movement.Classify(dataset.timelines, from, to)
}

func (s *Service) SegmentRevenue(ctx context.Context, month domain.Month) (*domain.SegmentRevenue, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	if err := dataset.requireMonths(month); err != nil {
		return nil, err
	}
	return revenue.Aggregate(dataset.revenue, dataset.timelines, month)
}

func (s *Service) RevenueMatrix(ctx context.Context, month domain.Month) (*domain.SegmentProductMatrix, error) {
	aggregated, err := s.SegmentRevenue(ctx, month)
	if err != nil {
		return nil, err
	}
	matrix := revenue.SegmentProductMatrix(aggregated)
	return &matrix, nil
}

func (s *Service) ProductMix(ctx context.Context, month domain.Month, segment string) ([]domain.ProductShare, error) {
	aggregated, err := s.SegmentRevenue(ctx, month)
	if err != nil {
		return nil, err
	}
	return revenue.ProductMix(aggregated, segment), nil
}

func (s *Service) Cohorts(ctx context.Context) ([]CohortSummary, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}

	cohorts := dataset.cohorts.BuildCohorts()
	summaries := make([]CohortSummary, 0, len(cohorts))
	for _, c := range cohorts {
		summaries = append(summaries, CohortSummary{Segment: c.Segment, Origin: c.Origin, Size: c.Size()})
	}
	return summaries, nil
}

// Retention calcula a curva da coorte; sem meses informados usa todos os meses do dataset
// a partir da origem
func (s *Service) Retention(ctx context.Context, segment string, origin domain.Month, months []domain.Month) (*RetentionReport, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	if err := dataset.requireMonths(origin); err != nil {
		return nil, err
	}

	c, ok := dataset.cohorts.Find(segment, origin)
	if !ok {
		return nil, domain.NewAnalysisError(domain.ErrEntityNotFound, "", origin, "coorte "+segment+" não encontrada")
	}

	if len(months) == 0 {
		months = dataset.Info().Months
	}
	for _, month := range months {
		if !month.Valid() {
			return nil, domain.NewAnalysisError(domain.ErrInvalidMonth, "", month, "")
		}
	}

	report := &RetentionReport{
		Cohort: CohortSummary{Segment: c.Segment, Origin: c.Origin, Size: c.Size()},
		Points: dataset.cohorts.RetentionCurve(c, months),
	}

	for _, point := range report.Points {
		breakdown, err := dataset.cohorts.Breakdown(c, point.Month)
		if err != nil {
			return nil, err
		}
		report.Breakdowns = append(report.Breakdowns, breakdown)
	}

	if len(report.Points) > 0 {
		last := report.Points[len(report.Points)-1].Month
		change, err := dataset.cohorts.RevenueChange(c, last)
		if err != nil {
			return nil, err
		}
		report.RevenueChange = &change
	}

	return report, nil
}

func (s *Service) EntityRisk(ctx context.Context, entityID string, asOf domain.Month) (*domain.RiskScore, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	if err := dataset.requireMonths(asOf); err != nil {
		return nil, err
	}

	entity, err := dataset.normalize(entityID)
	if err != nil {
		return nil, err
	}

	score, err := dataset.scorer.ScoreEntity(entity, asOf)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// RiskRanking avalia todas as entidades do mês; limit <= 0 retorna todas
func (s *Service) RiskRanking(ctx context.Context, asOf domain.Month, limit int) (*RiskReport, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	if err := dataset.requireMonths(asOf); err != nil {
		return nil, err
	}

	scores, skipped, err := dataset.scorer.ScoreAll(asOf)
	if err != nil {
		return nil, err
	}

	report := &RiskReport{
		AsOf:         asOf,
		Skipped:      skipped,
		Distribution: risk.Distribution(scores),
	}
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	report.Scores = scores

	return report, nil
}

func (s *Service) SegmentRisk(ctx context.Context, asOf domain.Month) ([]domain.RiskScore, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	if err := dataset.requireMonths(asOf); err != nil {
		return nil, err
	}
	return dataset.scorer.ScoreAllSegments(asOf)
}

func (s *Service) Journey(ctx context.Context, entityID string) ([]domain.JourneyStep, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	return dataset.lookup.Journey(entityID)
}

// laterMonths retorna os meses do dataset posteriores a base
func laterMonths(dataset *Dataset, base domain.Month) []domain.Month {
	months := make([]domain.Month, 0)
	for _, month := range dataset.Info().Months {
		if month > base {
			months = append(months, month)
		}
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
	return months
}
