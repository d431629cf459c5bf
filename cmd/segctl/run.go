package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vfg2006/segment-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/segment-insights-api/infrastructure/exporter"
	"github.com/vfg2006/segment-insights-api/infrastructure/loader"
	"github.com/vfg2006/segment-insights-api/infrastructure/repository"
	"github.com/vfg2006/segment-insights-api/internal/config"
	"github.com/vfg2006/segment-insights-api/internal/scheduler"
	"github.com/vfg2006/segment-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/segment-insights-api/pkg/utils"
)

var runFlags struct {
	exportDir string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Executa uma análise em lote",
	Long: `Carrega o dataset, compara o mês base com todos os meses posteriores e grava um
relatório JSON por par de meses no diretório de exportação.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.exportDir, "export-dir", "", "Diretório dos relatórios (padrão: BATCH_ANALYSIS_EXPORT_DIR)")

	rootCmd.AddCommand(runCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runFlags.exportDir != "" {
		cfg.BatchAnalysis.ExportDir = runFlags.exportDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		conn    *postgres.Connection
		runRepo repository.AnalysisRunRepository
	)
	if cfg.NeedsDatabase() {
		conn, err = postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
		}
		defer conn.Close()

		if cfg.BatchAnalysis.RecordRuns {
			runRepo = repository.NewAnalysisRunRepository(conn)
		}
	}

	source, err := dataSource(cfg, conn)
	if err != nil {
		return err
	}

	analyzer := analyzing.NewService(source, cfg.Analysis)
	if _, err := analyzer.Reload(ctx); err != nil {
		return err
	}

	service := scheduler.NewBatchAnalysisService(analyzer, exporter.NewJSONExporter(cfg.BatchAnalysis.ExportDir), runRepo, cfg)

	run, err := service.RunNow(ctx)
	if run != nil {
		fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(run))
	}
	return err
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
