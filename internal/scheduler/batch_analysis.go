package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/segment-insights-api/infrastructure/repository"
	"github.com/vfg2006/segment-insights-api/internal/config"
	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/segment-insights-api/pkg/utils"
)

var (
	ErrAnalysisRunning = errors.New("análise em lote já em andamento")
	ErrNoLaterMonths   = errors.New("nenhum mês posterior ao mês base")
)

// ReportExporter grava o resultado de cada comparação e retorna o caminho do arquivo
type ReportExporter interface {
	ExportComparison(info *domain.DatasetInfo, comparison *domain.PeriodComparison) (string, error)
}

// BatchAnalysisConfig representa a configuração do agendador de análise em lote
type BatchAnalysisConfig struct {
	CronSchedule string
	SyncEnabled  bool
	Timeout      time.Duration
}

// BatchAnalysisService compara o mês base com todos os meses posteriores e exporta os relatórios
type BatchAnalysisService struct {
	scheduler           *gocron.Scheduler
	config              BatchAnalysisConfig
	analyzer            analyzing.Analyzer
	exporter            ReportExporter
	runRepo             repository.AnalysisRunRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRun             *domain.AnalysisRun
}

// NewBatchAnalysisService cria o serviço; runRepo pode ser nil quando não há banco configurado
func NewBatchAnalysisService(
	analyzer analyzing.Analyzer,
	exporter ReportExporter,
	runRepo repository.AnalysisRunRepository,
	appConfig *config.Config,
) *BatchAnalysisService {
	batchConfig := BatchAnalysisConfig{
		CronSchedule: appConfig.BatchAnalysis.CronSchedule,
		SyncEnabled:  appConfig.BatchAnalysis.Enabled,
		Timeout:      30 * time.Minute,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": batchConfig.CronSchedule,
		"sync_enabled":  batchConfig.SyncEnabled,
		"export_dir":    appConfig.BatchAnalysis.ExportDir,
		"record_runs":   runRepo != nil,
	}).Info("Configuração do agendador de análise em lote carregada")

	return &BatchAnalysisService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    batchConfig,
		analyzer:  analyzer,
		exporter:  exporter,
		runRepo:   runRepo,
	}
}

// Start inicia o agendador
func (s *BatchAnalysisService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Análise em lote desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de análise em lote")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncBatchAnalysis(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar análise em lote: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de análise em lote")
		s.scheduler.Stop()
	}()

	return nil
}

// syncBatchAnalysis executa uma rodada agendada, registrando a falha apenas no log
func (s *BatchAnalysisService) syncBatchAnalysis(ctx context.Context) {
	run, err := s.RunNow(ctx)
	if err != nil {
		if errors.Is(err, ErrAnalysisRunning) {
			logrus.Info("Análise em lote já em andamento, ignorando")
			return
		}
		logrus.WithError(err).Error("Erro na análise em lote")
		return
	}

	logrus.WithFields(logrus.Fields{
		"run_id":     run.ID,
		"base_month": run.BaseMonth,
		"months":     len(run.Months),
	}).Info("Análise em lote finalizada")
}

// RunNow executa a análise imediatamente e bloqueia até o fim
func (s *BatchAnalysisService) RunNow(ctx context.Context) (*domain.AnalysisRun, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		return nil, ErrAnalysisRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	run, err := s.runAnalysis(ctx)

	s.syncMutex.Lock()
	s.lastRun = run
	s.syncMutex.Unlock()

	return run, err
}

func (s *BatchAnalysisService) runAnalysis(ctx context.Context) (*domain.AnalysisRun, error) {
	startTime := time.Now()

	info, err := s.analyzer.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter informações do dataset: %w", err)
	}

	base, later, err := comparisonMonths(info)
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID(utils.RunIDPrefix)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
	}

	run := &domain.AnalysisRun{
		ID:        id,
		BaseMonth: base,
		Months:    later,
		Status:    domain.AnalysisRunRunning,
		StartedAt: startTime,
	}

	if s.runRepo != nil {
		if err := s.runRepo.Create(ctx, run); err != nil {
			return nil, fmt.Errorf("erro ao registrar execução: %w", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"run_id":     run.ID,
		"base_month": base,
		"months":     len(later),
	}).Info("Iniciando análise em lote")

	paths, runErr := s.compareAndExport(ctx, info, base, later)

	completedAt := time.Now()
	run.CompletedAt = &completedAt
	run.ReportPath = strings.Join(paths, ",")
	run.Status = domain.AnalysisRunSuccess
	if runErr != nil {
		run.Status = domain.AnalysisRunError
		run.Error = runErr.Error()
	}

	if s.runRepo != nil {
		// Usa um contexto novo para registrar o fim mesmo após timeout
		if err := s.runRepo.Finish(context.WithoutCancel(ctx), run); err != nil {
			logrus.WithError(err).WithField("run_id", run.ID).Error("Erro ao finalizar registro da execução")
		}
	}

	logrus.WithFields(logrus.Fields{
		"run_id":   run.ID,
		"status":   run.Status,
		"reports":  len(paths),
		"duration": time.Since(startTime).String(),
	}).Info("Análise em lote concluída")

	return run, runErr
}

func (s *BatchAnalysisService) compareAndExport(ctx context.Context, info *domain.DatasetInfo, base domain.Month, months []domain.Month) ([]string, error) {
	comparisons, err := s.analyzer.ComparePeriods(ctx, base, months)
	if err != nil {
		return nil, fmt.Errorf("erro ao comparar períodos: %w", err)
	}

	paths := make([]string, 0, len(comparisons))
	for _, comparison := range comparisons {
		path, err := s.exporter.ExportComparison(info, comparison)
		if err != nil {
			return paths, fmt.Errorf("erro ao exportar comparação %s -> %s: %w", comparison.From, comparison.To, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// comparisonMonths usa o mês base do dataset, ou o primeiro mês disponível
func comparisonMonths(info *domain.DatasetInfo) (domain.Month, []domain.Month, error) {
	if len(info.Months) == 0 {
		return 0, nil, ErrNoLaterMonths
	}

	base := info.BaseMonth
	if base == 0 {
		base = info.Months[0]
	}

	later := make([]domain.Month, 0, len(info.Months))
	for _, month := range info.Months {
		if month > base {
			later = append(later, month)
		}
	}

	if len(later) == 0 {
		return base, nil, fmt.Errorf("%w: %s", ErrNoLaterMonths, base)
	}

	return base, later, nil
}

// TriggerManualSync inicia manualmente uma análise em lote
func (s *BatchAnalysisService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Análise em lote já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando análise em lote manual")
	go s.syncBatchAnalysis(context.Background())
}

// GetStatus retorna o status atual da análise em lote
func (s *BatchAnalysisService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	if s.lastRun != nil {
		status["last_run_id"] = s.lastRun.ID
		status["last_run_status"] = s.lastRun.Status
		if s.lastRun.Error != "" {
			status["last_run_error"] = s.lastRun.Error
		}
	}

	return status
}
