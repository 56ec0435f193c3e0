package console

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresExecutor runs console SQL on a pgx pool using the simple protocol,
// so multi-statement text and utility commands pass through untouched.
type PostgresExecutor struct {
	pool *pgxpool.Pool
}

// NewPostgresExecutor creates an executor on pool.
func NewPostgresExecutor(pool *pgxpool.Pool) *PostgresExecutor {
	return &PostgresExecutor{pool: pool}
}

func (e *PostgresExecutor) Exec(ctx context.Context, query string) (*Rows, error) {
	rows, err := e.pool.Query(ctx, query, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return nil, err
	}

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	records, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	return &Rows{Columns: columns, Rows: records, Affected: rows.CommandTag().RowsAffected()}, nil
}

func (e *PostgresExecutor) Tables(ctx context.Context) ([]string, error) {
	rows, err := e.pool.Query(ctx,
		`SELECT table_name::text FROM information_schema.tables
		 WHERE table_schema = 'public' ORDER BY table_name`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (e *PostgresExecutor) Columns(ctx context.Context, table string) ([]Column, error) {
	rows, err := e.pool.Query(ctx,
		`SELECT table_name::text, column_name::text, data_type::text, is_nullable::text
		 FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = $1
		 ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Column])
}
