package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"sort"
	"time"

	_ "github.com/lib/pq"
	"github.com/vfg2006/segment-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/segment-insights-api/infrastructure/loader"
	"github.com/vfg2006/segment-insights-api/infrastructure/repository"
	"github.com/vfg2006/segment-insights-api/internal/config"
	"github.com/vfg2006/segment-insights-api/internal/domain"
)

type table struct {
	Name   string
	Create string
	Index  string
}

var tables = []table{
	{
		Name: "segment_assignments",
		Create: `CREATE TABLE segment_assignments (
			source     VARCHAR(255) NOT NULL,
			entity_id  VARCHAR(64)  NOT NULL,
			month      INTEGER      NOT NULL,
			segment    VARCHAR(64)  NOT NULL
		)`,
		Index: "CREATE INDEX IF NOT EXISTS segment_assignments_source_month_idx ON segment_assignments (source, month)",
	},
	{
		Name: "revenue_records",
		Create: `CREATE TABLE revenue_records (
			id         VARCHAR(21)  PRIMARY KEY,
			entity_id  VARCHAR(64)  NOT NULL,
			month      INTEGER      NOT NULL,
			metrics    JSONB        NOT NULL DEFAULT '{}'
		)`,
		Index: "CREATE INDEX IF NOT EXISTS revenue_records_month_idx ON revenue_records (month)",
	},
	{
		Name: "analysis_runs",
		Create: `CREATE TABLE analysis_runs (
			id            VARCHAR(21)  PRIMARY KEY,
			base_month    INTEGER      NOT NULL,
			months        INTEGER[]    NOT NULL,
			status        VARCHAR(16)  NOT NULL,
			report_path   TEXT,
			error         TEXT,
			started_at    TIMESTAMP    NOT NULL,
			completed_at  TIMESTAMP
		)`,
		Index: "CREATE INDEX IF NOT EXISTS analysis_runs_started_at_idx ON analysis_runs (started_at DESC)",
	},
}

func setupLogger() {
	// Configura o logger para incluir data, hora e arquivo
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

func createTable(db *sql.DB, t table) {
	log.Printf("Verificando tabela %s...", t.Name)

	// Verificar se a tabela já existe
	var tableExists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`, t.Name).Scan(&tableExists)
	if err != nil {
		log.Fatalf("ERRO ao verificar tabela %s: %v", t.Name, err)
	}

	if tableExists {
		log.Printf("Tabela %s já existe", t.Name)
	} else {
		if _, err := db.Exec(t.Create); err != nil {
			log.Fatalf("ERRO ao criar tabela %s: %v", t.Name, err)
		}
		log.Printf("Tabela %s criada com sucesso", t.Name)
	}

	if _, err := db.Exec(t.Index); err != nil {
		log.Printf("AVISO: Não foi possível criar índice da tabela %s: %v", t.Name, err)
	}
}

func importSegments(ctx context.Context, repo repository.SegmentAssignmentRepository, data *domain.SourceData) {
	snapshots := make([]domain.SegmentSnapshot, 0, len(data.Monthly)+1)
	if len(data.Base) > 0 {
		snapshots = append(snapshots, domain.SegmentSnapshot{Source: repository.BaseSource, Rows: data.Base})
	}
	snapshots = append(snapshots, data.Monthly...)

	log.Printf("Iniciando importação de %d snapshots de segmentação...", len(snapshots))
	startTime := time.Now()

	successCount := 0
	errorCount := 0

	for i, snapshot := range snapshots {
		inserted, err := repo.ReplaceSnapshot(ctx, snapshot)
		if err != nil {
			log.Printf("ERRO ao importar snapshot [%d/%d] %s: %v", i+1, len(snapshots), snapshot.Source, err)
			errorCount++
			continue
		}
		log.Printf("Snapshot %s importado: %d linhas", snapshot.Source, inserted)
		successCount++
	}

	elapsed := time.Since(startTime)
	log.Printf("Importação de segmentação concluída em %v. Sucesso: %d, Erros: %d", elapsed, successCount, errorCount)
}

func importRevenue(ctx context.Context, repo repository.RevenueRecordRepository, rows []domain.RevenueRow) {
	byMonth := make(map[domain.Month][]domain.RevenueRow)
	for _, row := range rows {
		byMonth[row.Month] = append(byMonth[row.Month], row)
	}

	months := make([]domain.Month, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	log.Printf("Iniciando importação de %d linhas de receita em %d meses...", len(rows), len(months))
	startTime := time.Now()

	successCount := 0
	errorCount := 0

	for i, month := range months {
		inserted, err := repo.ReplaceMonth(ctx, month, byMonth[month])
		if err != nil {
			log.Printf("ERRO ao importar receita [%d/%d] %s: %v", i+1, len(months), month, err)
			errorCount++
			continue
		}
		successCount++
		if i > 0 && i%6 == 0 {
			log.Printf("Progresso: %d/%d meses processados (%d linhas no último)", i+1, len(months), inserted)
		}
	}

	elapsed := time.Since(startTime)
	log.Printf("Importação de receita concluída em %v. Sucesso: %d, Erros: %d", elapsed, successCount, errorCount)
}

func main() {
	setupLogger()

	dataDir := flag.String("data-dir", "", "Diretório dos arquivos CSV (padrão: DATA_DIR)")
	schemaOnly := flag.Bool("schema-only", false, "Apenas cria as tabelas")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("ERRO ao carregar configuração: %v", err)
	}
	if *dataDir != "" {
		cfg.DataSource.DataDir = *dataDir
	}

	ctx := context.Background()

	log.Println("Conectando ao banco de dados...")
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer conn.Close()
	log.Println("Conexão com o banco de dados estabelecida com sucesso")

	for _, t := range tables {
		createTable(conn.DB, t)
	}

	if *schemaOnly {
		log.Println("Tabelas verificadas, importação ignorada")
		return
	}

	schema, err := loader.LoadSchemaFile(cfg.DataSource.SchemaFile, cfg.Schema)
	if err != nil {
		log.Fatalf("ERRO ao carregar schema dos arquivos: %v", err)
	}

	csvLoader := loader.NewCSVLoader(cfg.DataSource.DataDir, schema)

	report, err := csvLoader.Validate()
	if err != nil {
		log.Fatalf("ERRO ao validar arquivos: %v", err)
	}
	if report.HasErrors() {
		for _, file := range report.Files {
			for _, msg := range file.Errors {
				log.Printf("ERRO em %s: %s", file.File, msg)
			}
		}
		os.Exit(1)
	}

	startTime := time.Now()
	data, err := csvLoader.Load(ctx)
	if err != nil {
		log.Fatalf("ERRO ao ler arquivos de %s: %v", cfg.DataSource.DataDir, err)
	}
	log.Printf("Arquivos lidos: %d linhas base, %d snapshots mensais, %d linhas de receita",
		len(data.Base), len(data.Monthly), len(data.Revenue))

	importSegments(ctx, repository.NewSegmentAssignmentRepository(conn), data)
	importRevenue(ctx, repository.NewRevenueRecordRepository(conn), data.Revenue)

	elapsed := time.Since(startTime)
	log.Printf("Carga inicial concluída em %v!", elapsed)
}
