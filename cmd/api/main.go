package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/segment-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/segment-insights-api/infrastructure/exporter"
	"github.com/vfg2006/segment-insights-api/infrastructure/loader"
	"github.com/vfg2006/segment-insights-api/infrastructure/repository"
	"github.com/vfg2006/segment-insights-api/internal/api"
	"github.com/vfg2006/segment-insights-api/internal/api/handler"
	"github.com/vfg2006/segment-insights-api/internal/config"
	"github.com/vfg2006/segment-insights-api/internal/scheduler"
	"github.com/vfg2006/segment-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/segment-insights-api/internal/usecases/authenticating"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		pgConn  *postgres.Connection
		runRepo repository.AnalysisRunRepository
	)
	if cfg.NeedsDatabase() {
		pgConn = pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		if cfg.BatchAnalysis.RecordRuns {
			runRepo = repository.NewAnalysisRunRepository(pgConn)
		}
	}

	source, err := dataSource(cfg, pgConn)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar a origem de dados")
	}

	analyzer := analyzing.NewService(source, cfg.Analysis)

	// Uma falha na carga inicial não derruba a API: as consultas retornam 503 até um reload bem-sucedido
	if _, err := analyzer.Reload(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao carregar o dataset inicial")
	}

	authenticator := authenticating.NewService(cfg.Auth)

	batchAnalysisService := scheduler.NewBatchAnalysisService(
		analyzer,
		exporter.NewJSONExporter(cfg.BatchAnalysis.ExportDir),
		runRepo,
		cfg,
	)

	if err := batchAnalysisService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de análise em lote")
	} else {
		logrus.Info("Agendador de análise em lote iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		analyzer,
		authenticator,
		handler.CronJobServices{BatchAnalysisService: batchAnalysisService},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// dataSource escolhe a origem do dataset conforme DATA_SOURCE
func dataSource(cfg *config.Config, conn *postgres.Connection) (analyzing.DataSource, error) {
	if cfg.DataSource.Kind == "postgres" {
		return repository.NewSource(
			repository.NewSegmentAssignmentRepository(conn),
			repository.NewRevenueRecordRepository(conn),
		), nil
	}

	schema, err := loader.LoadSchemaFile(cfg.DataSource.SchemaFile, cfg.Schema)
	if err != nil {
		return nil, err
	}

	return loader.NewCSVLoader(cfg.DataSource.DataDir, schema), nil
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
