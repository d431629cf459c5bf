package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/segment-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/segment-insights-api/internal/domain"
)

const (
	segmentAssignmentsTable = "segment_assignments sa"

	// BaseSource identifica as linhas do snapshot base na coluna source
	BaseSource = "base"
)

//go:generate mockgen -source=segment_assignment.go -destination=mocks/segment_assignment.go -package=mocks

type SegmentAssignmentRepository interface {
	ListSnapshots(ctx context.Context, months []domain.Month) ([]domain.SegmentSnapshot, error)
	ListMonths(ctx context.Context) ([]domain.Month, error)
	ReplaceSnapshot(ctx context.Context, snapshot domain.SegmentSnapshot) (int64, error)
}

type segmentAssignmentRepository struct {
	conn *postgres.Connection
}

func NewSegmentAssignmentRepository(conn *postgres.Connection) SegmentAssignmentRepository {
	return &segmentAssignmentRepository{
		conn: conn,
	}
}

// snapshotsQuery monta a consulta das atribuições; meses vazios retornam tudo
func snapshotsQuery(months []domain.Month) (string, []any, error) {
	builder := squirrel.
		Select("sa.source, sa.entity_id, sa.month, sa.segment").
		From(segmentAssignmentsTable).
		OrderBy("sa.source ASC", "sa.month ASC", "sa.entity_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(months) > 0 {
		builder = builder.Where("sa.month = ANY(?)", pq.Array(monthsToInts(months)))
	}

	return builder.ToSql()
}

func (r *segmentAssignmentRepository) ListSnapshots(ctx context.Context, months []domain.Month) ([]domain.SegmentSnapshot, error) {
	query, args, err := snapshotsQuery(months)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	bySource := make(map[string]*domain.SegmentSnapshot)
	for rows.Next() {
		var (
			source string
			row    domain.SegmentRow
			month  int64
		)
		if err := rows.Scan(&source, &row.EntityID, &month, &row.Segment); err != nil {
			return nil, fmt.Errorf("erro ao escanear atribuição de segmento: %w", err)
		}
		row.Month = domain.Month(month)

		snapshot, ok := bySource[source]
		if !ok {
			snapshot = &domain.SegmentSnapshot{Source: source}
			bySource[source] = snapshot
		}
		snapshot.Rows = append(snapshot.Rows, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sortedSnapshots(bySource), nil
}

// sortedSnapshots ordena os snapshots pela origem, com o base primeiro
func sortedSnapshots(bySource map[string]*domain.SegmentSnapshot) []domain.SegmentSnapshot {
	snapshots := make([]domain.SegmentSnapshot, 0, len(bySource))
	for _, snapshot := range bySource {
		snapshots = append(snapshots, *snapshot)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		if (snapshots[i].Source == BaseSource) != (snapshots[j].Source == BaseSource) {
			return snapshots[i].Source == BaseSource
		}
		return snapshots[i].Source < snapshots[j].Source
	})
	return snapshots
}

func (r *segmentAssignmentRepository) ListMonths(ctx context.Context) ([]domain.Month, error) {
	query, args, err := squirrel.
		Select("DISTINCT sa.month").
		From(segmentAssignmentsTable).
		OrderBy("sa.month ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	months := make([]domain.Month, 0)
	for rows.Next() {
		var month int64
		if err := rows.Scan(&month); err != nil {
			return nil, fmt.Errorf("erro ao escanear mês: %w", err)
		}
		months = append(months, domain.Month(month))
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return months, nil
}

// ReplaceSnapshot apaga as linhas da mesma origem e insere o snapshot em uma transação
func (r *segmentAssignmentRepository) ReplaceSnapshot(ctx context.Context, snapshot domain.SegmentSnapshot) (int64, error) {
	var inserted int64

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		deleteQuery, args, err := squirrel.
			Delete("segment_assignments").
			Where(squirrel.Eq{"source": snapshot.Source}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, deleteQuery, args...); err != nil {
			return fmt.Errorf("erro ao remover snapshot %s: %w", snapshot.Source, err)
		}

		for _, batch := range batches(len(snapshot.Rows), insertBatchSize) {
			n, err := insertAssignments(ctx, tx, snapshot.Source, snapshot.Rows[batch[0]:batch[1]])
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

func insertAssignments(ctx context.Context, q postgres.Queryer, source string, rows []domain.SegmentRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	builder := squirrel.StatementBuilder.
		Insert("segment_assignments").
		Columns("source", "entity_id", "month", "segment").
		PlaceholderFormat(squirrel.Dollar)
	for _, row := range rows {
		builder = builder.Values(source, row.EntityID, int64(row.Month), row.Segment)
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

const insertBatchSize = 1000

// batches divide n linhas em intervalos [início, fim) de no máximo size linhas
func batches(n, size int) [][2]int {
	result := make([][2]int, 0, n/size+1)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		result = append(result, [2]int{start, end})
	}
	return result
}
