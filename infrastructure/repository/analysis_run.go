package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/segment-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/segment-insights-api/internal/domain"
)

const analysisRunsTable = "analysis_runs"

//go:generate mockgen -source=analysis_run.go -destination=mocks/analysis_run.go -package=mocks

type AnalysisRunRepository interface {
	Create(ctx context.Context, run *domain.AnalysisRun) error
	Finish(ctx context.Context, run *domain.AnalysisRun) error
	ListRecent(ctx context.Context, limit uint64) ([]domain.AnalysisRun, error)
}

type analysisRunRepository struct {
	conn *postgres.Connection
}

func NewAnalysisRunRepository(conn *postgres.Connection) AnalysisRunRepository {
	return &analysisRunRepository{
		conn: conn,
	}
}

func monthsToInts(months []domain.Month) []int64 {
	values := make([]int64, 0, len(months))
	for _, month := range months {
		values = append(values, int64(month))
	}
	return values
}

func (r *analysisRunRepository) Create(ctx context.Context, run *domain.AnalysisRun) error {
	query, args, err := squirrel.
		Insert(analysisRunsTable).
		Columns("id", "base_month", "months", "status", "started_at").
		Values(run.ID, int64(run.BaseMonth), pq.Array(monthsToInts(run.Months)), string(run.Status), run.StartedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao registrar execução %s: %w", run.ID, err)
	}

	return nil
}

func (r *analysisRunRepository) Finish(ctx context.Context, run *domain.AnalysisRun) error {
	completedAt := time.Now()
	if run.CompletedAt != nil {
		completedAt = *run.CompletedAt
	}

	query, args, err := squirrel.
		Update(analysisRunsTable).
		Set("status", string(run.Status)).
		Set("report_path", run.ReportPath).
		Set("error", run.Error).
		Set("completed_at", completedAt).
		Where(squirrel.Eq{"id": run.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao finalizar execução %s: %w", run.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("execução %s não encontrada", run.ID)
	}

	run.CompletedAt = &completedAt
	return nil
}

func (r *analysisRunRepository) ListRecent(ctx context.Context, limit uint64) ([]domain.AnalysisRun, error) {
	builder := squirrel.
		Select("id", "base_month", "months", "status", "report_path", "error", "started_at", "completed_at").
		From(analysisRunsTable).
		OrderBy("started_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.AnalysisRun, 0)
	for rows.Next() {
		var (
			run         domain.AnalysisRun
			baseMonth   int64
			months      pq.Int64Array
			status      string
			reportPath  sql.NullString
			runError    sql.NullString
			completedAt sql.NullTime
		)

		if err := rows.Scan(&run.ID, &baseMonth, &months, &status, &reportPath, &runError, &run.StartedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear execução: %w", err)
		}

		run.BaseMonth = domain.Month(baseMonth)
		run.Status = domain.AnalysisRunStatus(status)
		run.ReportPath = reportPath.String
		run.Error = runError.String
		for _, month := range months {
			run.Months = append(run.Months, domain.Month(month))
		}
		if completedAt.Valid {
			t := completedAt.Time
			run.CompletedAt = &t
		}

		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return runs, nil
}
