// Package console runs operator SQL against the studio database and exports
// the results.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrEmptyQuery is returned when the query text is blank.
var ErrEmptyQuery = errors.New("query is empty")

// ErrQueryFailed wraps every error reported by the database for a query.
var ErrQueryFailed = errors.New("query failed")

// Rows is the raw outcome of one statement.
type Rows struct {
	Columns  []string
	Rows     []map[string]any
	Affected int64
}

// Column describes one column of a public table.
type Column struct {
	TableName  string `json:"tableName" db:"table_name"`
	ColumnName string `json:"columnName" db:"column_name"`
	DataType   string `json:"dataType" db:"data_type"`
	IsNullable string `json:"isNullable" db:"is_nullable"`
}

// Executor runs SQL text verbatim and browses the catalog.
type Executor interface {
	Exec(ctx context.Context, query string) (*Rows, error)
	Tables(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, table string) ([]Column, error)
}

// Result is what the console shows after running a query.
type Result struct {
	Columns       []string         `json:"columns"`
	Rows          []map[string]any `json:"rows"`
	RowCount      int64            `json:"rowCount"`
	ExecutionTime int64            `json:"executionTime"`
	Error         string           `json:"error,omitempty"`
}

// QuickQuery is a canned query offered next to the editor.
type QuickQuery struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Query       string `json:"query"`
}

// QuickQueries are the canned queries shown in the console.
var QuickQueries = []QuickQuery{
	{"All Users", "View all users", "SELECT * FROM users LIMIT 10;"},
	{"Active Projects", "Non-completed projects", "SELECT * FROM projects WHERE status != 'Selesai' LIMIT 10;"},
	{"Income Summary", "Total income stats", "SELECT COUNT(*) as total_transactions, SUM(amount) as total_amount FROM transactions WHERE type = 'Pemasukan';"},
	{"List Tables", "Show all tables", "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name;"},
}

// Console forwards queries to an Executor and times them.
type Console struct {
	exec    Executor
	timeout time.Duration
	now     func() time.Time
}

// New creates a Console. A zero timeout leaves statements unbounded.
func New(exec Executor, timeout time.Duration) *Console {
	return &Console{exec: exec, timeout: timeout, now: time.Now}
}

// Run executes query and reports the outcome. Database errors are carried in
// Result.Error and also returned wrapped in ErrQueryFailed.
func (c *Console) Run(ctx context.Context, query string) (Result, error) {
	if strings.TrimSpace(query) == "" {
		return Result{}, ErrEmptyQuery
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := c.now()
	rows, err := c.exec.Exec(ctx, query)
	elapsed := c.now().Sub(start).Milliseconds()

	if err != nil {
		slog.Warn("console query failed", "error", err, "ms", elapsed)
		return Result{Columns: []string{}, Rows: []map[string]any{}, ExecutionTime: elapsed, Error: err.Error()},
			fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	res := Result{Columns: rows.Columns, Rows: rows.Rows, ExecutionTime: elapsed}
	if res.Columns == nil {
		res.Columns = []string{}
	}
	if res.Rows == nil {
		res.Rows = []map[string]any{}
	}
	if len(res.Columns) > 0 {
		res.RowCount = int64(len(res.Rows))
	} else {
		res.RowCount = rows.Affected
	}
	slog.Info("console query", "rows", res.RowCount, "ms", elapsed)
	return res, nil
}

// Tables lists the public tables.
func (c *Console) Tables(ctx context.Context) ([]string, error) {
	tables, err := c.exec.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	return tables, nil
}

// Columns describes the columns of one public table in ordinal order.
func (c *Console) Columns(ctx context.Context, table string) ([]Column, error) {
	cols, err := c.exec.Columns(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("describing table %s: %w", table, err)
	}
	return cols, nil
}
