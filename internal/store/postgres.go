package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/venapictures/studio/internal/entity"
)

// PostgresTable implements Table using pgxpool. Rows are ordered by the
// insert_seq sequence every table carries.
type PostgresTable[T entity.Record] struct {
	pool    *pgxpool.Pool
	schema  *Schema[T]
	columns string
}

// NewPostgresTable creates a Table backed by the given connection pool.
func NewPostgresTable[T entity.Record](pool *pgxpool.Pool, schema *Schema[T]) *PostgresTable[T] {
	names := schema.Columns()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = pgx.Identifier{n}.Sanitize()
	}
	return &PostgresTable[T]{pool: pool, schema: schema, columns: strings.Join(quoted, ", ")}
}

func (t *PostgresTable[T]) table() string {
	return pgx.Identifier{t.schema.Table()}.Sanitize()
}

// GetAll retrieves every row of the table.
func (t *PostgresTable[T]) GetAll(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY insert_seq", t.columns, t.table())

	rows, err := t.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", t.schema.Table(), err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("scanning %s rows: %w", t.schema.Table(), err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// GetByID retrieves a single row by id.
func (t *PostgresTable[T]) GetByID(ctx context.Context, id string) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", t.columns, t.table())

	rows, err := t.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.schema.Table(), err)
	}
	rec, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning %s row: %w", t.schema.Table(), err)
	}
	return &rec, nil
}

// Create inserts a row and returns it as stored.
func (t *PostgresTable[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if rec.RecordID() == "" {
		t.schema.SetID(&rec, uuid.NewString())
	}

	values := t.schema.Values(rec)
	placeholders := make([]string, len(values))
	for i := range values {
		values[i] = pgValue(values[i])
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.table(), t.columns, strings.Join(placeholders, ", "), t.columns)

	rows, err := t.pool.Query(ctx, query, values...)
	if err != nil {
		return zero, t.mapError("inserting", err)
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, t.mapError("inserting", err)
	}
	return created, nil
}

// Update sets the patched columns on the row with the given id. An empty
// patch returns the current row.
func (t *PostgresTable[T]) Update(ctx context.Context, id string, patch Patch) (T, error) {
	var zero T
	if err := t.schema.Check(patch); err != nil {
		return zero, err
	}

	if len(patch) == 0 {
		rec, err := t.GetByID(ctx, id)
		if err != nil {
			return zero, err
		}
		if rec == nil {
			return zero, ErrNotFound
		}
		return *rec, nil
	}

	var setClauses []string
	var args []any
	argIdx := 1
	for _, name := range sortedKeys(patch) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", pgx.Identifier{name}.Sanitize(), argIdx))
		args = append(args, pgValue(patch[name]))
		argIdx++
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		t.table(), strings.Join(setClauses, ", "), argIdx, t.columns)

	rows, err := t.pool.Query(ctx, query, args...)
	if err != nil {
		return zero, t.mapError("updating", err)
	}
	updated, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, t.mapError("updating", err)
	}
	return updated, nil
}

// Delete removes the row with the given id.
func (t *PostgresTable[T]) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.table())

	if _, err := t.pool.Exec(ctx, query, id); err != nil {
		return t.mapError("deleting", err)
	}
	return nil
}

func (t *PostgresTable[T]) mapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.Detail)
	}
	return fmt.Errorf("%s %s: %w", op, t.schema.Table(), err)
}

// pgValue sends decimals as text so Postgres parses them into numeric
// without a float round trip.
func pgValue(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return d.String()
	}
	return v
}
