package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venapictures/studio/internal/api/handler"
	"github.com/venapictures/studio/internal/console"
)

type mockRunner struct {
	runFn     func(ctx context.Context, query string) (console.Result, error)
	tablesFn  func(ctx context.Context) ([]string, error)
	columnsFn func(ctx context.Context, table string) ([]console.Column, error)
}

func (m *mockRunner) Run(ctx context.Context, query string) (console.Result, error) {
	return m.runFn(ctx, query)
}

func (m *mockRunner) Tables(ctx context.Context) ([]string, error) {
	return m.tablesFn(ctx)
}

func (m *mockRunner) Columns(ctx context.Context, table string) ([]console.Column, error) {
	return m.columnsFn(ctx, table)
}

func okRunner() *mockRunner {
	return &mockRunner{
		runFn: func(_ context.Context, query string) (console.Result, error) {
			if strings.TrimSpace(query) == "" {
				return console.Result{}, console.ErrEmptyQuery
			}
			return console.Result{
				Columns:  []string{"name"},
				Rows:     []map[string]any{{"name": "Andi"}},
				RowCount: 1,
			}, nil
		},
	}
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func envelopeOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestSQLHandler_Run(t *testing.T) {
	h := handler.NewSQLHandler(okRunner())
	w := httptest.NewRecorder()

	h.Run(w, postJSON("/api/sql", `{"query":"SELECT name FROM clients"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	data := envelopeOf(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["rowCount"])
	assert.Equal(t, []any{"name"}, data["columns"])
}

func TestSQLHandler_Run_EmptyQuery(t *testing.T) {
	h := handler.NewSQLHandler(okRunner())
	w := httptest.NewRecorder()

	h.Run(w, postJSON("/api/sql", `{"query":"   "}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", envelopeOf(t, w)["error"].(map[string]any)["code"])
}

func TestSQLHandler_Run_QueryFailedKeepsResult(t *testing.T) {
	runner := &mockRunner{runFn: func(context.Context, string) (console.Result, error) {
		res := console.Result{Error: `relation "nope" does not exist`, ExecutionTime: 3}
		return res, fmt.Errorf("%w: %s", console.ErrQueryFailed, res.Error)
	}}
	h := handler.NewSQLHandler(runner)
	w := httptest.NewRecorder()

	h.Run(w, postJSON("/api/sql", `{"query":"SELECT * FROM nope"}`))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := envelopeOf(t, w)
	e := env["error"].(map[string]any)
	assert.Equal(t, "QUERY_FAILED", e["code"])
	assert.Equal(t, `relation "nope" does not exist`, e["message"])
	assert.Equal(t, float64(3), env["data"].(map[string]any)["executionTime"])
}

func TestSQLHandler_Run_UnexpectedError(t *testing.T) {
	runner := &mockRunner{runFn: func(context.Context, string) (console.Result, error) {
		return console.Result{}, errors.New("pool closed")
	}}
	h := handler.NewSQLHandler(runner)
	w := httptest.NewRecorder()

	h.Run(w, postJSON("/api/sql", `{"query":"SELECT 1"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSQLHandler_Run_InvalidJSON(t *testing.T) {
	h := handler.NewSQLHandler(okRunner())
	w := httptest.NewRecorder()

	h.Run(w, postJSON("/api/sql", `{`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_JSON", envelopeOf(t, w)["error"].(map[string]any)["code"])
}

func TestSQLHandler_Quick(t *testing.T) {
	h := handler.NewSQLHandler(okRunner())
	w := httptest.NewRecorder()

	h.Quick(w, httptest.NewRequest(http.MethodGet, "/api/sql/quick", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, envelopeOf(t, w)["data"], len(console.QuickQueries))
}

func TestSQLHandler_Tables(t *testing.T) {
	runner := &mockRunner{tablesFn: func(context.Context) ([]string, error) {
		return []string{"clients", "projects"}, nil
	}}
	h := handler.NewSQLHandler(runner)
	w := httptest.NewRecorder()

	h.Tables(w, httptest.NewRequest(http.MethodGet, "/api/sql/tables", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"clients", "projects"}, envelopeOf(t, w)["data"])
}

func TestSQLHandler_Columns(t *testing.T) {
	runner := &mockRunner{columnsFn: func(_ context.Context, table string) ([]console.Column, error) {
		if table != "clients" {
			return nil, nil
		}
		return []console.Column{{TableName: "clients", ColumnName: "id", DataType: "text", IsNullable: "NO"}}, nil
	}}
	h := handler.NewSQLHandler(runner)
	r := chi.NewRouter()
	r.Get("/api/sql/tables/{table}/columns", h.Columns)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sql/tables/clients/columns", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	cols := envelopeOf(t, w)["data"].([]any)
	require.Len(t, cols, 1)
	assert.Equal(t, "id", cols[0].(map[string]any)["columnName"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sql/tables/ghosts/columns", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSQLHandler_ExportJSON(t *testing.T) {
	h := handler.NewSQLHandler(okRunner())
	w := httptest.NewRecorder()

	h.Export(w, postJSON("/api/sql/export", `{"query":"SELECT name FROM clients"}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="query-result-`)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `.json"`)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Equal(t, []map[string]any{{"name": "Andi"}}, rows)
}

func TestSQLHandler_ExportXLSX(t *testing.T) {
	h := handler.NewSQLHandler(okRunner())
	w := httptest.NewRecorder()

	h.Export(w, postJSON("/api/sql/export", `{"query":"SELECT name FROM clients","format":"xlsx"}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `.xlsx"`)
	// xlsx files are zip archives
	assert.Equal(t, []byte("PK"), w.Body.Bytes()[:2])
}

func TestSQLHandler_ExportRejectsUnknownFormat(t *testing.T) {
	runner := &mockRunner{runFn: func(context.Context, string) (console.Result, error) {
		t.Fatal("query must not run for an unknown format")
		return console.Result{}, nil
	}}
	h := handler.NewSQLHandler(runner)
	w := httptest.NewRecorder()

	h.Export(w, postJSON("/api/sql/export", `{"query":"SELECT 1","format":"csv"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
