package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/venapictures/studio/internal/api/middleware"
	"github.com/venapictures/studio/internal/api/response"
	"github.com/venapictures/studio/internal/api/validation"
	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/portal"
	"github.com/venapictures/studio/internal/promo"
)

// PortalService is the unauthenticated surface of the studio.
type PortalService interface {
	Client(ctx context.Context, accessID string) (*portal.ClientView, error)
	Freelancer(ctx context.Context, accessID string) (*portal.FreelancerView, error)
	ConfirmStage(ctx context.Context, accessID, projectID, stage string) (entity.Project, error)
	ConfirmSubStatus(ctx context.Context, accessID, projectID, subStatus, note string) (entity.Project, error)
	SignContract(ctx context.Context, accessID, contractID, signature string) (entity.Contract, error)
	UpdateRevision(ctx context.Context, projectID, revisionID string, upd portal.RevisionUpdate) (entity.Project, error)
	UpdateMemberRevision(ctx context.Context, accessID, projectID, revisionID string, upd portal.RevisionUpdate) (entity.Project, error)
	Book(ctx context.Context, req portal.BookingRequest) (*portal.BookingResult, error)
	CheckPromo(ctx context.Context, code string, total decimal.Decimal) (promo.Discount, error)
	SubmitLead(ctx context.Context, req portal.LeadRequest) (entity.Lead, error)
	SubmitSuggestion(ctx context.Context, req portal.SuggestionRequest) (entity.Lead, error)
	SubmitFeedback(ctx context.Context, req portal.FeedbackRequest) (entity.ClientFeedback, error)
}

// PortalHandler serves the client and freelancer portals and the public
// forms. None of these endpoints need a session.
type PortalHandler struct {
	svc PortalService
}

// NewPortalHandler creates a new PortalHandler.
func NewPortalHandler(svc PortalService) *PortalHandler {
	return &PortalHandler{svc: svc}
}

// Client handles GET /portal/{accessId}.
func (h *PortalHandler) Client(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	view, err := h.svc.Client(r.Context(), chi.URLParam(r, "accessId"))
	if err != nil {
		h.fail(w, err, "load client portal", requestID)
		return
	}
	response.Success(w, http.StatusOK, view, requestID)
}

type confirmRequest struct {
	ProjectID string `json:"projectId"`
	Stage     string `json:"stage"`
	SubStatus string `json:"subStatus"`
	Note      string `json:"note"`
}

// Confirm handles POST /portal/{accessId}/confirm. A body with a subStatus
// confirms that sub-status with a note; otherwise stage is confirmed.
func (h *PortalHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req confirmRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProjectID == "" {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "projectId", Message: "projectId is required"}}, requestID)
		return
	}

	accessID := chi.URLParam(r, "accessId")
	var (
		project entity.Project
		err     error
		msg     string
	)
	if req.SubStatus != "" {
		project, err = h.svc.ConfirmSubStatus(r.Context(), accessID, req.ProjectID, req.SubStatus, req.Note)
		msg = portal.MsgSubStatusConfirmed(req.SubStatus)
	} else {
		project, err = h.svc.ConfirmStage(r.Context(), accessID, req.ProjectID, req.Stage)
		msg = portal.MsgStageConfirmed
	}
	if err != nil {
		h.fail(w, err, "confirm", requestID)
		return
	}
	response.Notice(w, http.StatusOK, project, msg, requestID)
}

// SignContract handles POST /portal/{accessId}/contracts/{id}/sign.
func (h *PortalHandler) SignContract(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req signRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Signature) == "" {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "signature", Message: "signature is required"}}, requestID)
		return
	}

	contract, err := h.svc.SignContract(r.Context(), chi.URLParam(r, "accessId"), chi.URLParam(r, "id"), req.Signature)
	if err != nil {
		h.fail(w, err, "sign contract", requestID)
		return
	}
	response.Notice(w, http.StatusOK, contract, portal.MsgContractSigned, requestID)
}

// Freelancer handles GET /freelancer-portal/{accessId}.
func (h *PortalHandler) Freelancer(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	view, err := h.svc.Freelancer(r.Context(), chi.URLParam(r, "accessId"))
	if err != nil {
		h.fail(w, err, "load freelancer portal", requestID)
		return
	}
	response.Success(w, http.StatusOK, view, requestID)
}

type revisionRequest struct {
	ProjectID  string `json:"projectId"`
	RevisionID string `json:"revisionId"`
	portal.RevisionUpdate
}

// MemberRevision handles POST /freelancer-portal/{accessId}/revisions.
func (h *PortalHandler) MemberRevision(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	req, ok := h.decodeRevision(w, r, requestID)
	if !ok {
		return
	}
	project, err := h.svc.UpdateMemberRevision(r.Context(), chi.URLParam(r, "accessId"), req.ProjectID, req.RevisionID, req.RevisionUpdate)
	if err != nil {
		h.fail(w, err, "update revision", requestID)
		return
	}
	response.Notice(w, http.StatusOK, project, portal.MsgRevisionUpdated, requestID)
}

// Revision handles POST /public/revisions, the standalone revision form.
func (h *PortalHandler) Revision(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	req, ok := h.decodeRevision(w, r, requestID)
	if !ok {
		return
	}
	project, err := h.svc.UpdateRevision(r.Context(), req.ProjectID, req.RevisionID, req.RevisionUpdate)
	if err != nil {
		h.fail(w, err, "update revision", requestID)
		return
	}
	response.Notice(w, http.StatusOK, project, portal.MsgRevisionUpdated, requestID)
}

// Book handles POST /public/booking.
func (h *PortalHandler) Book(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req portal.BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ClientName = strings.TrimSpace(req.ClientName)
	if errs := validation.Booking(req); len(errs) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", errs, requestID)
		return
	}

	res, err := h.svc.Book(r.Context(), req)
	if err != nil {
		h.fail(w, err, "book", requestID)
		return
	}
	response.Notice(w, http.StatusCreated, res, portal.MsgBookingReceived, requestID)
}

// CheckPromo handles GET /public/promo/{code}?total=, previewing a discount
// on the booking form.
func (h *PortalHandler) CheckPromo(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	total, err := decimal.NewFromString(r.URL.Query().Get("total"))
	if err != nil || total.IsNegative() {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "total", Message: "total must be a non-negative number"}}, requestID)
		return
	}

	d, err := h.svc.CheckPromo(r.Context(), chi.URLParam(r, "code"), total)
	if err != nil {
		h.fail(w, err, "check promo", requestID)
		return
	}
	response.Success(w, http.StatusOK, d, requestID)
}

// Lead handles POST /public/leads.
func (h *PortalHandler) Lead(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req portal.LeadRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validation.LeadForm(req); len(errs) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", errs, requestID)
		return
	}

	lead, err := h.svc.SubmitLead(r.Context(), req)
	if err != nil {
		h.fail(w, err, "submit lead", requestID)
		return
	}
	response.Notice(w, http.StatusCreated, lead, portal.MsgLeadReceived, requestID)
}

// Suggestion handles POST /public/suggestions.
func (h *PortalHandler) Suggestion(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req portal.SuggestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validation.Suggestion(req); len(errs) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", errs, requestID)
		return
	}

	lead, err := h.svc.SubmitSuggestion(r.Context(), req)
	if err != nil {
		h.fail(w, err, "submit suggestion", requestID)
		return
	}
	response.Notice(w, http.StatusCreated, lead, portal.MsgLeadReceived, requestID)
}

// Feedback handles POST /public/feedback.
func (h *PortalHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req portal.FeedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validation.Feedback(req); len(errs) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", errs, requestID)
		return
	}

	fb, err := h.svc.SubmitFeedback(r.Context(), req)
	if err != nil {
		h.fail(w, err, "submit feedback", requestID)
		return
	}
	response.Notice(w, http.StatusCreated, fb, portal.MsgFeedbackReceived, requestID)
}

func (h *PortalHandler) decodeRevision(w http.ResponseWriter, r *http.Request, requestID string) (revisionRequest, bool) {
	var req revisionRequest
	if !decodeJSON(w, r, &req) {
		return req, false
	}
	if errs := validation.Revision(req.ProjectID, req.RevisionID, req.RevisionUpdate); len(errs) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", errs, requestID)
		return req, false
	}
	return req, true
}

func (h *PortalHandler) fail(w http.ResponseWriter, err error, op, requestID string) {
	switch {
	case errors.Is(err, portal.ErrPortalNotFound):
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portal not found", requestID)
	case errors.Is(err, portal.ErrUnknownPackage):
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "packageId", Message: "package does not exist"}}, requestID)
	case errors.Is(err, promo.ErrNotApplicable):
		response.ErrWithDetails(w, http.StatusUnprocessableEntity, "PROMO_NOT_APPLICABLE", "Kode promo tidak valid",
			[]validation.FieldError{{Field: "promoCode", Message: err.Error()}}, requestID)
	case errors.Is(err, portal.ErrInvalidStage), errors.Is(err, portal.ErrInvalidStatus), errors.Is(err, portal.ErrInvalidRating):
		response.Err(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), requestID)
	default:
		slog.Error("portal request failed", "op", op, "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to "+op, requestID)
	}
}
