package analyzing

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/segment-insights-api/internal/config"
	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/internal/usecases/cohort"
	"github.com/vfg2006/segment-insights-api/internal/usecases/lookup"
	"github.com/vfg2006/segment-insights-api/internal/usecases/registry"
	"github.com/vfg2006/segment-insights-api/internal/usecases/revenue"
	"github.com/vfg2006/segment-insights-api/internal/usecases/risk"
	"github.com/vfg2006/segment-insights-api/internal/usecases/timeline"
)

// Dataset é um snapshot imutável das tabelas carregadas e das estruturas derivadas.
// Pode ser compartilhado entre goroutines; uma recarga cria um novo Dataset.
type Dataset struct {
	info      domain.DatasetInfo
	registry  *registry.Registry
	queries   registry.ReadOnly
	timelines domain.TimelineMap
	revenue   *revenue.Index
	months    map[domain.Month]struct{}
	cohorts   *cohort.Engine
	scorer    *risk.Scorer
	lookup    *lookup.Lookup
	ttmMonths int
}

// BuildDataset normaliza as entradas e monta histórico, índice de receita, coortes e scorer
func BuildDataset(source string, data *domain.SourceData, cfg config.Analysis) (*Dataset, error) {
	if data == nil {
		return nil, errors.New("dados de entrada ausentes")
	}

	normalizer := registry.New()

	timelines, err := timeline.Build(normalizer, data.Base, data.Monthly, cfg.TimelineOptions())
	if err != nil {
		return nil, errors.Wrap(err, "erro ao montar histórico de segmentação")
	}

	index, err := revenue.NewIndex(normalizer, data.Revenue)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao indexar receita")
	}

	months := make(map[domain.Month]struct{})
	for _, month := range timelines.Months() {
		months[month] = struct{}{}
	}
	for _, month := range index.Months() {
		months[month] = struct{}{}
	}

	ordered := make([]domain.Month, 0, len(months))
	for month := range months {
		ordered = append(ordered, month)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	segments := make(map[string]struct{})
	for _, tl := range timelines {
		for _, assignment := range tl {
			segments[assignment.Segment] = struct{}{}
		}
	}

	info := domain.DatasetInfo{
		LoadedAt:      time.Now(),
		Source:        source,
		Entities:      len(timelines),
		Months:        ordered,
		Products:      index.Products(),
		RevenueRows:   len(data.Revenue),
		MonthlyFiles:  len(data.Monthly),
		SegmentsCount: len(segments),
	}
	info.BaseMonth = baseMonth(data.Base, timelines.Months())

	return &Dataset{
		info:      info,
		registry:  normalizer,
		queries:   normalizer.ReadOnly(),
		timelines: timelines,
		revenue:   index,
		months:    months,
		cohorts:   cohort.NewEngine(timelines, index),
		scorer:    risk.NewScorer(timelines, index, cfg.RiskOptions()),
		lookup:    lookup.New(normalizer.ReadOnly(), timelines, index),
		ttmMonths: cfg.TTMMonths,
	}, nil
}

// baseMonth é o mês da primeira linha válida do snapshot base; sem snapshot base vale
// o mês mais antigo do histórico
func baseMonth(base []domain.SegmentRow, timelineMonths []domain.Month) domain.Month {
	for _, row := range base {
		if row.Month.Valid() {
			return row.Month
		}
	}
	if len(timelineMonths) > 0 {
		return timelineMonths[0]
	}
	return 0
}

func (d *Dataset) Info() domain.DatasetInfo {
	info := d.info
	info.Months = append([]domain.Month{}, d.info.Months...)
	info.Products = append([]string{}, d.info.Products...)
	return info
}

// normalize trata identificadores vindos de consultas; o cache do registro só é
// preenchido durante BuildDataset
func (d *Dataset) normalize(raw string) (domain.Entity, error) {
	return d.queries.Normalize(raw)
}

// requireMonths valida o formato e a presença de cada mês no dataset
func (d *Dataset) requireMonths(months ...domain.Month) error {
	for _, month := range months {
		if !month.Valid() {
			return domain.NewAnalysisError(domain.ErrInvalidMonth, "", month, "")
		}
		if _, ok := d.months[month]; !ok {
			return domain.NewAnalysisError(domain.ErrUnknownMonth, "", month, "mês não disponível no dataset")
		}
	}
	return nil
}
