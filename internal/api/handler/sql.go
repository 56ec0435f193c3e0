package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/venapictures/studio/internal/api/middleware"
	"github.com/venapictures/studio/internal/api/response"
	"github.com/venapictures/studio/internal/api/validation"
	"github.com/venapictures/studio/internal/console"
)

// QueryRunner runs operator SQL.
type QueryRunner interface {
	Run(ctx context.Context, query string) (console.Result, error)
	Tables(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, table string) ([]console.Column, error)
}

// SQLHandler serves the SQL console.
type SQLHandler struct {
	runner QueryRunner
	now    func() time.Time
}

// NewSQLHandler creates a new SQLHandler.
func NewSQLHandler(runner QueryRunner) *SQLHandler {
	return &SQLHandler{runner: runner, now: time.Now}
}

type sqlRequest struct {
	Query  string `json:"query"`
	Format string `json:"format"`
}

// Run handles POST /api/sql. A query the database rejects is answered with
// 422 and the result carrying the error text.
func (h *SQLHandler) Run(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req sqlRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, ok := h.run(w, r, req.Query, requestID)
	if !ok {
		return
	}
	response.Success(w, http.StatusOK, res, requestID)
}

// Quick handles GET /api/sql/quick.
func (h *SQLHandler) Quick(w http.ResponseWriter, r *http.Request) {
	response.SuccessList(w, http.StatusOK, console.QuickQueries, len(console.QuickQueries), middleware.GetRequestID(r.Context()))
}

// Tables handles GET /api/sql/tables.
func (h *SQLHandler) Tables(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	tables, err := h.runner.Tables(r.Context())
	if err != nil {
		slog.Error("listing tables", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tables", requestID)
		return
	}
	response.SuccessList(w, http.StatusOK, tables, len(tables), requestID)
}

// Columns handles GET /api/sql/tables/{table}/columns.
func (h *SQLHandler) Columns(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	cols, err := h.runner.Columns(r.Context(), chi.URLParam(r, "table"))
	if err != nil {
		slog.Error("listing columns", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list columns", requestID)
		return
	}
	if len(cols) == 0 {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Table not found", requestID)
		return
	}
	response.SuccessList(w, http.StatusOK, cols, len(cols), requestID)
}

// Export handles POST /api/sql/export, running the query and returning the
// rows as a JSON or XLSX download.
func (h *SQLHandler) Export(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req sqlRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Format == "" {
		req.Format = console.FormatJSON
	}
	var write func(*bytes.Buffer, console.Result) error
	var contentType string
	switch req.Format {
	case console.FormatJSON:
		contentType = "application/json"
		write = func(b *bytes.Buffer, res console.Result) error { return console.WriteJSON(b, res) }
	case console.FormatXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		write = func(b *bytes.Buffer, res console.Result) error { return console.WriteXLSX(b, res) }
	default:
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "format", Message: "format must be one of: json, xlsx"}}, requestID)
		return
	}

	res, ok := h.run(w, r, req.Query, requestID)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, res); err != nil {
		slog.Error("exporting query result", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export result", requestID)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+console.ExportFilename(h.now(), req.Format)+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("writing export", "error", err, "requestId", requestID)
	}
}

func (h *SQLHandler) run(w http.ResponseWriter, r *http.Request, query, requestID string) (console.Result, bool) {
	res, err := h.runner.Run(r.Context(), query)
	switch {
	case err == nil:
		return res, true
	case errors.Is(err, console.ErrEmptyQuery):
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "query", Message: "query is required"}}, requestID)
	case errors.Is(err, console.ErrQueryFailed):
		response.JSON(w, http.StatusUnprocessableEntity, response.Envelope{
			Data:  res,
			Error: &response.Error{Code: "QUERY_FAILED", Message: res.Error},
			Meta:  response.NewMeta(requestID),
		})
	default:
		slog.Error("running query", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to run query", requestID)
	}
	return res, false
}
