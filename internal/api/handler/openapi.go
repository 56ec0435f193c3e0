package handler

import (
	"log/slog"
	"net/http"
	"sync"

	"sigs.k8s.io/yaml"

	"github.com/venapictures/studio/internal/api/middleware"
	"github.com/venapictures/studio/internal/api/response"
)

// OpenAPIHandler serves the API document in YAML and in JSON.
type OpenAPIHandler struct {
	doc []byte

	once    sync.Once
	jsonDoc []byte
	jsonErr error
}

// NewOpenAPIHandler creates a handler over the YAML document. The JSON form
// is produced on first request and cached.
func NewOpenAPIHandler(doc []byte) *OpenAPIHandler {
	return &OpenAPIHandler{doc: doc}
}

// JSON handles GET /openapi.json.
func (h *OpenAPIHandler) JSON(w http.ResponseWriter, r *http.Request) {
	h.once.Do(func() {
		h.jsonDoc, h.jsonErr = yaml.YAMLToJSON(h.doc)
	})
	if h.jsonErr != nil {
		slog.Error("converting openapi document", "error", h.jsonErr)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to convert OpenAPI document", middleware.GetRequestID(r.Context()))
		return
	}
	h.write(w, "application/json", h.jsonDoc)
}

// YAML handles GET /openapi.yaml.
func (h *OpenAPIHandler) YAML(w http.ResponseWriter, _ *http.Request) {
	h.write(w, "application/yaml", h.doc)
}

func (h *OpenAPIHandler) write(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Error("writing openapi document", "error", err)
	}
}
