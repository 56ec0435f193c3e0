package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/venapictures/studio/internal/api/middleware"
	"github.com/venapictures/studio/internal/api/response"
	"github.com/venapictures/studio/internal/api/validation"
	"github.com/venapictures/studio/internal/crud"
	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/store"
	"github.com/venapictures/studio/internal/workspace"
)

// reserved query parameters that are not facet filters.
var reserved = map[string]bool{"q": true, "render": true}

// PatchHook rewrites a decoded patch before it is applied. creating is true
// for POST. Returned field errors are reported as a validation failure.
type PatchHook func(patch store.Patch, creating bool) ([]validation.FieldError, error)

// Presenter shapes a record for the response.
type Presenter[T entity.Record] func(r *http.Request, rec T) (any, error)

// EntityHandler serves list, get, create, update and delete for one entity.
// Every call goes through the session's collection, so the local list and
// the toast follow each mutation.
type EntityHandler[T entity.Record] struct {
	name       string
	schema     *store.Schema[T]
	collection func(*workspace.Shell) *crud.Collection[T]

	validate func(T) []validation.FieldError
	hook     PatchHook
	present  Presenter[T]
}

// EntityOption configures an EntityHandler.
type EntityOption[T entity.Record] func(*EntityHandler[T])

// WithValidator sets the rules checked on the record after create or patch.
func WithValidator[T entity.Record](fn func(T) []validation.FieldError) EntityOption[T] {
	return func(h *EntityHandler[T]) { h.validate = fn }
}

// WithPatchHook sets a hook run on every decoded patch.
func WithPatchHook[T entity.Record](fn PatchHook) EntityOption[T] {
	return func(h *EntityHandler[T]) { h.hook = fn }
}

// WithPresenter sets how records are rendered in responses.
func WithPresenter[T entity.Record](fn Presenter[T]) EntityOption[T] {
	return func(h *EntityHandler[T]) { h.present = fn }
}

// NewEntityHandler creates a handler for the entity called name, such as
// "client", backed by the collection picked from the session shell.
func NewEntityHandler[T entity.Record](name string, schema *store.Schema[T], collection func(*workspace.Shell) *crud.Collection[T], opts ...EntityOption[T]) *EntityHandler[T] {
	h := &EntityHandler[T]{name: name, schema: schema, collection: collection}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// List handles GET /api/<entity>. q searches free text; a query parameter
// naming a facet of the entity filters on it. Other parameters are ignored.
func (h *EntityHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	coll := h.collection(middleware.GetShell(r.Context()))

	query := r.URL.Query()
	facets := map[string]string{}
	for key := range query {
		if !reserved[key] && hasFacet[T](key) {
			facets[key] = query.Get(key)
		}
	}

	items := coll.Search(strings.TrimSpace(query.Get("q")), facets)
	out := make([]any, 0, len(items))
	for _, item := range items {
		v, err := h.render(r, item)
		if err != nil {
			h.internal(w, "render", err, requestID)
			return
		}
		out = append(out, v)
	}
	response.SuccessList(w, http.StatusOK, out, len(out), requestID)
}

func hasFacet[T entity.Record](name string) bool {
	var zero T
	f, ok := any(zero).(entity.Faceted)
	if !ok {
		return false
	}
	_, known := f.Facet(name)
	return known
}

// Get handles GET /api/<entity>/{id}.
func (h *EntityHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	item, ok := h.collection(middleware.GetShell(r.Context())).Get(chi.URLParam(r, "id"))
	if !ok {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", h.title()+" not found", requestID)
		return
	}
	v, err := h.render(r, item)
	if err != nil {
		h.internal(w, "render", err, requestID)
		return
	}
	response.Success(w, http.StatusOK, v, requestID)
}

// Create handles POST /api/<entity>. A client-supplied id is kept.
func (h *EntityHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	shell := middleware.GetShell(r.Context())

	var raw map[string]json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}
	var id string
	if msg, ok := raw["id"]; ok {
		if err := json.Unmarshal(msg, &id); err != nil {
			response.Err(w, http.StatusBadRequest, "VALIDATION_ERROR", "id must be a string", requestID)
			return
		}
		delete(raw, "id")
	}

	patch, ok := h.decode(w, raw, true, requestID)
	if !ok {
		return
	}
	var rec T
	if err := h.schema.Apply(&rec, patch); err != nil {
		response.Err(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), requestID)
		return
	}
	if id != "" {
		h.schema.SetID(&rec, id)
	}
	if !h.check(w, rec, requestID) {
		return
	}

	created, err := h.collection(shell).Create(r.Context(), rec)
	if err != nil {
		writeStoreError(w, err, h.name, currentToast(shell), requestID)
		return
	}
	h.respond(w, r, http.StatusCreated, created, currentToast(shell), requestID)
}

// Update handles PATCH /api/<entity>/{id}. Only the fields present in the
// body change; the patched record is validated as a whole.
func (h *EntityHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	shell := middleware.GetShell(r.Context())
	coll := h.collection(shell)
	id := chi.URLParam(r, "id")

	current, ok := coll.Get(id)
	if !ok {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", h.title()+" not found", requestID)
		return
	}

	var raw map[string]json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}
	patch, ok := h.decode(w, raw, false, requestID)
	if !ok {
		return
	}
	if len(patch) == 0 {
		response.Err(w, http.StatusBadRequest, "VALIDATION_ERROR", "At least one field must be provided", requestID)
		return
	}
	if err := h.schema.Apply(&current, patch); err != nil {
		response.Err(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), requestID)
		return
	}
	if !h.check(w, current, requestID) {
		return
	}

	updated, err := coll.Update(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, err, h.name, currentToast(shell), requestID)
		return
	}
	h.respond(w, r, http.StatusOK, updated, currentToast(shell), requestID)
}

// Delete handles DELETE /api/<entity>/{id}. Deleting an unknown id succeeds.
func (h *EntityHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	shell := middleware.GetShell(r.Context())

	if err := h.collection(shell).Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, h.name, currentToast(shell), requestID)
		return
	}
	response.Notice(w, http.StatusOK, nil, currentToast(shell), requestID)
}

func (h *EntityHandler[T]) decode(w http.ResponseWriter, raw map[string]json.RawMessage, creating bool, requestID string) (store.Patch, bool) {
	patch, err := h.schema.DecodePatch(raw)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), requestID)
		return nil, false
	}
	if h.hook != nil {
		errs, err := h.hook(patch, creating)
		if err != nil {
			h.internal(w, "prepare", err, requestID)
			return nil, false
		}
		if len(errs) > 0 {
			response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", errs, requestID)
			return nil, false
		}
	}
	return patch, true
}

func (h *EntityHandler[T]) check(w http.ResponseWriter, rec T, requestID string) bool {
	if h.validate == nil {
		return true
	}
	if errs := h.validate(rec); len(errs) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", errs, requestID)
		return false
	}
	return true
}

func (h *EntityHandler[T]) respond(w http.ResponseWriter, r *http.Request, status int, rec T, notice, requestID string) {
	v, err := h.render(r, rec)
	if err != nil {
		h.internal(w, "render", err, requestID)
		return
	}
	response.Notice(w, status, v, notice, requestID)
}

func (h *EntityHandler[T]) render(r *http.Request, rec T) (any, error) {
	if h.present == nil {
		return rec, nil
	}
	return h.present(r, rec)
}

func (h *EntityHandler[T]) internal(w http.ResponseWriter, op string, err error, requestID string) {
	slog.Error("entity handler failed", "entity", h.name, "op", op, "error", err, "requestId", requestID)
	response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process "+h.name, requestID)
}

func (h *EntityHandler[T]) title() string {
	return strings.ToUpper(h.name[:1]) + h.name[1:]
}
