package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/segment-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const revenueRecordsTable = "revenue_records rr"

//go:generate mockgen -source=revenue_record.go -destination=mocks/revenue_record.go -package=mocks

type RevenueRecordRepository interface {
	List(ctx context.Context, months []domain.Month) ([]domain.RevenueRow, error)
	ReplaceMonth(ctx context.Context, month domain.Month, rows []domain.RevenueRow) (int64, error)
}

type revenueRecordRepository struct {
	conn *postgres.Connection
}

func NewRevenueRecordRepository(conn *postgres.Connection) RevenueRecordRepository {
	return &revenueRecordRepository{
		conn: conn,
	}
}

func revenueQuery(months []domain.Month) (string, []any, error) {
	builder := squirrel.
		Select("rr.entity_id, rr.month, rr.metrics").
		From(revenueRecordsTable).
		OrderBy("rr.month ASC", "rr.entity_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(months) > 0 {
		builder = builder.Where("rr.month = ANY(?)", pq.Array(monthsToInts(months)))
	}

	return builder.ToSql()
}

func (r *revenueRecordRepository) List(ctx context.Context, months []domain.Month) ([]domain.RevenueRow, error) {
	query, args, err := revenueQuery(months)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.RevenueRow, 0)
	for rows.Next() {
		var (
			record      domain.RevenueRow
			month       int64
			metricsJSON []byte
		)
		if err := rows.Scan(&record.EntityID, &month, &metricsJSON); err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de receita: %w", err)
		}
		record.Month = domain.Month(month)

		if len(metricsJSON) > 0 {
			if err := json.Unmarshal(metricsJSON, &record.Products); err != nil {
				return nil, fmt.Errorf("erro ao deserializar métricas: %w", err)
			}
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

// ReplaceMonth substitui todos os registros de receita do mês em uma transação
func (r *revenueRecordRepository) ReplaceMonth(ctx context.Context, month domain.Month, rows []domain.RevenueRow) (int64, error) {
	var inserted int64

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		deleteQuery, args, err := squirrel.
			Delete("revenue_records").
			Where(squirrel.Eq{"month": int64(month)}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, deleteQuery, args...); err != nil {
			return fmt.Errorf("erro ao remover receita do mês %s: %w", month, err)
		}

		for _, batch := range batches(len(rows), insertBatchSize) {
			n, err := insertRevenue(ctx, tx, rows[batch[0]:batch[1]])
			if err != nil {
				return err
			}
			inserted += n
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func insertRevenue(ctx context.Context, q postgres.Queryer, rows []domain.RevenueRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	builder := squirrel.StatementBuilder.
		Insert("revenue_records").
		Columns("id", "entity_id", "month", "metrics").
		PlaceholderFormat(squirrel.Dollar)

	for _, row := range rows {
		metricsJSON, err := json.Marshal(row.Products)
		if err != nil {
			return 0, fmt.Errorf("erro ao serializar métricas para JSON: %w", err)
		}

		id, err := utils.GenerateID(utils.RevenueIDPrefix)
		if err != nil {
			return 0, fmt.Errorf("erro ao gerar id: %w", err)
		}
		builder = builder.Values(id, row.EntityID, int64(row.Month), metricsJSON)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return result.RowsAffected()
}
