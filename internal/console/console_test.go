package console_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/venapictures/studio/internal/console"
)

type mockExecutor struct {
	execFn    func(ctx context.Context, query string) (*console.Rows, error)
	tablesFn  func(ctx context.Context) ([]string, error)
	columnsFn func(ctx context.Context, table string) ([]console.Column, error)
}

func (m *mockExecutor) Exec(ctx context.Context, query string) (*console.Rows, error) {
	return m.execFn(ctx, query)
}

func (m *mockExecutor) Tables(ctx context.Context) ([]string, error) {
	return m.tablesFn(ctx)
}

func (m *mockExecutor) Columns(ctx context.Context, table string) ([]console.Column, error) {
	return m.columnsFn(ctx, table)
}

func TestRun_SelectCountsReturnedRows(t *testing.T) {
	var got string
	exec := &mockExecutor{execFn: func(_ context.Context, q string) (*console.Rows, error) {
		got = q
		return &console.Rows{
			Columns:  []string{"id", "name"},
			Rows:     []map[string]any{{"id": "1", "name": "a"}, {"id": "2", "name": "b"}},
			Affected: 2,
		}, nil
	}}
	c := console.New(exec, 0)

	res, err := c.Run(context.Background(), "  SELECT id, name FROM clients; ")

	require.NoError(t, err)
	assert.Equal(t, "  SELECT id, name FROM clients; ", got)
	assert.Equal(t, int64(2), res.RowCount)
	assert.Equal(t, []string{"id", "name"}, res.Columns)
	assert.Empty(t, res.Error)
}

func TestRun_StatementUsesAffectedCount(t *testing.T) {
	exec := &mockExecutor{execFn: func(context.Context, string) (*console.Rows, error) {
		return &console.Rows{Affected: 3}, nil
	}}

	res, err := console.New(exec, 0).Run(context.Background(), "UPDATE assets SET status = 'IN_USE'")

	require.NoError(t, err)
	assert.Equal(t, int64(3), res.RowCount)
	assert.Equal(t, []string{}, res.Columns)
	assert.Equal(t, []map[string]any{}, res.Rows)
}

func TestRun_ErrorCarriedInResult(t *testing.T) {
	exec := &mockExecutor{execFn: func(context.Context, string) (*console.Rows, error) {
		return nil, errors.New(`relation "nope" does not exist`)
	}}

	res, err := console.New(exec, 0).Run(context.Background(), "SELECT * FROM nope")

	require.ErrorIs(t, err, console.ErrQueryFailed)
	assert.Equal(t, `relation "nope" does not exist`, res.Error)
	assert.Zero(t, res.RowCount)
}

func TestRun_Empty(t *testing.T) {
	exec := &mockExecutor{execFn: func(context.Context, string) (*console.Rows, error) {
		t.Fatal("executor must not be called")
		return nil, nil
	}}

	_, err := console.New(exec, 0).Run(context.Background(), "   \n")
	assert.ErrorIs(t, err, console.ErrEmptyQuery)
}

func TestRun_AppliesTimeout(t *testing.T) {
	exec := &mockExecutor{execFn: func(ctx context.Context, _ string) (*console.Rows, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return &console.Rows{}, nil
	}}

	_, err := console.New(exec, time.Second).Run(context.Background(), "SELECT 1")
	require.NoError(t, err)
}

func TestColumns_WrapsError(t *testing.T) {
	exec := &mockExecutor{columnsFn: func(context.Context, string) ([]console.Column, error) {
		return nil, errors.New("boom")
	}}

	_, err := console.New(exec, 0).Columns(context.Background(), "clients")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clients")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	res := console.Result{Columns: []string{"n"}, Rows: []map[string]any{{"n": 1}}}

	require.NoError(t, console.WriteJSON(&buf, res))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, float64(1), rows[0]["n"])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	res := console.Result{
		Columns: []string{"name", "tags"},
		Rows: []map[string]any{
			{"name": "Kamera", "tags": []string{"a", "b"}},
		},
	}

	require.NoError(t, console.WriteXLSX(&buf, res))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Result")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"name", "tags"}, rows[0])
	assert.Equal(t, []string{"Kamera", `["a","b"]`}, rows[1])
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "query-result-2026-10-15T09:30:00.xlsx", console.ExportFilename(now, console.FormatXLSX))
}
