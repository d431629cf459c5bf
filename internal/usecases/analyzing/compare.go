package analyzing

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/internal/usecases/movement"
	"github.com/vfg2006/segment-insights-api/internal/usecases/revenue"
)

// ComparePeriods compara o mês base com cada mês informado (ou com todos os meses
// posteriores quando a lista é vazia). Cada par é processado em paralelo, limitado por
// MaxConcurrentJobs, sobre o mesmo dataset imutável. O resultado segue a ordem dos meses.
func (s *Service) ComparePeriods(ctx context.Context, base domain.Month, months []domain.Month) ([]*domain.PeriodComparison, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}

	if len(months) == 0 {
		months = laterMonths(dataset, base)
	}
	if err := dataset.requireMonths(append([]domain.Month{base}, months...)...); err != nil {
		return nil, err
	}

	startTime := time.Now()
	results := make([]*domain.PeriodComparison, len(months))
	errs := make([]error, len(months))

	// Criar um canal para controlar o número de workers concorrentes
	semaphore := make(chan struct{}, s.cfg.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for i, month := range months {
		if ctx.Err() != nil {
			errs[i] = ctx.Err()
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(i int, to domain.Month) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			results[i], errs[i] = comparePair(dataset, base, to)
		}(i, month)
	}

	// Aguardar todos os workers terminarem
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"from_month": base,
				"to_month":   months[i],
			}).Error("Erro ao comparar períodos")
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"from_month": base,
		"pairs":      len(months),
		"duration":   time.Since(startTime).String(),
	}).Info("Comparação de períodos concluída")

	return results, nil
}

func comparePair(dataset *Dataset, from, to domain.Month) (*domain.PeriodComparison, error) {
	matrix, err := movement.Transitions(dataset.timelines, from, to)
	if err != nil {
		return nil, err
	}

	migrations, err := movement.Migrations(dataset.timelines, from, to)
	if err != nil {
		return nil, err
	}

	summary, err := movement.Summarize(dataset.timelines, from, to, movement.CountWeigher)
	if err != nil {
		return nil, err
	}

	revenueSummary, err := movement.Summarize(dataset.timelines, from, to, dataset.revenue.MonthWeigher(revenue.MeasureRevenue, ""))
	if err != nil {
		return nil, err
	}

	return &domain.PeriodComparison{
		From:           from,
		To:             to,
		Transitions:    matrix,
		Migrations:     migrations,
		Summary:        summary,
		RevenueSummary: revenueSummary,
	}, nil
}
