package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venapictures/studio/internal/api/handler"
	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/portal"
	"github.com/venapictures/studio/internal/promo"
)

// mockPortal panics on any method the test did not stub.
type mockPortal struct {
	handler.PortalService

	clientFn           func(ctx context.Context, accessID string) (*portal.ClientView, error)
	confirmStageFn     func(ctx context.Context, accessID, projectID, stage string) (entity.Project, error)
	confirmSubStatusFn func(ctx context.Context, accessID, projectID, subStatus, note string) (entity.Project, error)
	memberRevisionFn   func(ctx context.Context, accessID, projectID, revisionID string, upd portal.RevisionUpdate) (entity.Project, error)
	bookFn             func(ctx context.Context, req portal.BookingRequest) (*portal.BookingResult, error)
	checkPromoFn       func(ctx context.Context, code string, total decimal.Decimal) (promo.Discount, error)
	feedbackFn         func(ctx context.Context, req portal.FeedbackRequest) (entity.ClientFeedback, error)
}

func (m *mockPortal) Client(ctx context.Context, accessID string) (*portal.ClientView, error) {
	return m.clientFn(ctx, accessID)
}

func (m *mockPortal) ConfirmStage(ctx context.Context, accessID, projectID, stage string) (entity.Project, error) {
	return m.confirmStageFn(ctx, accessID, projectID, stage)
}

func (m *mockPortal) ConfirmSubStatus(ctx context.Context, accessID, projectID, subStatus, note string) (entity.Project, error) {
	return m.confirmSubStatusFn(ctx, accessID, projectID, subStatus, note)
}

func (m *mockPortal) UpdateMemberRevision(ctx context.Context, accessID, projectID, revisionID string, upd portal.RevisionUpdate) (entity.Project, error) {
	return m.memberRevisionFn(ctx, accessID, projectID, revisionID, upd)
}

func (m *mockPortal) Book(ctx context.Context, req portal.BookingRequest) (*portal.BookingResult, error) {
	return m.bookFn(ctx, req)
}

func (m *mockPortal) CheckPromo(ctx context.Context, code string, total decimal.Decimal) (promo.Discount, error) {
	return m.checkPromoFn(ctx, code, total)
}

func (m *mockPortal) SubmitFeedback(ctx context.Context, req portal.FeedbackRequest) (entity.ClientFeedback, error) {
	return m.feedbackFn(ctx, req)
}

func portalRouter(svc handler.PortalService) http.Handler {
	h := handler.NewPortalHandler(svc)
	r := chi.NewRouter()
	r.Get("/portal/{accessId}", h.Client)
	r.Post("/portal/{accessId}/confirm", h.Confirm)
	r.Post("/freelancer-portal/{accessId}/revisions", h.MemberRevision)
	r.Post("/public/booking", h.Book)
	r.Get("/public/promo/{code}", h.CheckPromo)
	r.Post("/public/feedback", h.Feedback)
	return r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	e, ok := envelopeOf(t, w)["error"].(map[string]any)
	require.True(t, ok, "expected an error envelope: %s", w.Body.String())
	return e["code"].(string)
}

func TestPortalHandler_Client(t *testing.T) {
	svc := &mockPortal{clientFn: func(_ context.Context, accessID string) (*portal.ClientView, error) {
		if accessID != "CLIENT001" {
			return nil, portal.ErrPortalNotFound
		}
		return &portal.ClientView{Client: entity.Client{ID: "c1", Name: "Andi"}}, nil
	}}
	r := portalRouter(svc)

	w := serve(r, http.MethodGet, "/portal/CLIENT001", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := envelopeOf(t, w)["data"].(map[string]any)
	assert.Equal(t, "Andi", data["client"].(map[string]any)["name"])

	w = serve(r, http.MethodGet, "/portal/ZZZ", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestPortalHandler_Confirm(t *testing.T) {
	var gotStage, gotSub, gotNote string
	svc := &mockPortal{
		confirmStageFn: func(_ context.Context, _, projectID, stage string) (entity.Project, error) {
			gotStage = stage
			if stage == "painting" {
				return entity.Project{}, fmt.Errorf("%w: %q", portal.ErrInvalidStage, stage)
			}
			return entity.Project{ID: projectID}, nil
		},
		confirmSubStatusFn: func(_ context.Context, _, projectID, subStatus, note string) (entity.Project, error) {
			gotSub, gotNote = subStatus, note
			return entity.Project{ID: projectID}, nil
		},
	}
	r := portalRouter(svc)

	w := serve(r, http.MethodPost, "/portal/CLIENT001/confirm", `{"projectId":"p1","stage":"editing"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "editing", gotStage)
	assert.Equal(t, portal.MsgStageConfirmed, envelopeOf(t, w)["meta"].(map[string]any)["notification"])

	w = serve(r, http.MethodPost, "/portal/CLIENT001/confirm", `{"projectId":"p1","subStatus":"Cetak Album","note":"Sudah oke"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cetak Album", gotSub)
	assert.Equal(t, "Sudah oke", gotNote)
	assert.Equal(t, portal.MsgSubStatusConfirmed("Cetak Album"), envelopeOf(t, w)["meta"].(map[string]any)["notification"])

	w = serve(r, http.MethodPost, "/portal/CLIENT001/confirm", `{"projectId":"p1","stage":"painting"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/portal/CLIENT001/confirm", `{"stage":"editing"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestPortalHandler_MemberRevision(t *testing.T) {
	var got portal.RevisionUpdate
	svc := &mockPortal{memberRevisionFn: func(_ context.Context, accessID, projectID, revisionID string, upd portal.RevisionUpdate) (entity.Project, error) {
		got = upd
		if accessID != "TM001" {
			return entity.Project{}, portal.ErrPortalNotFound
		}
		return entity.Project{ID: projectID}, nil
	}}
	r := portalRouter(svc)

	w := serve(r, http.MethodPost, "/freelancer-portal/TM001/revisions",
		`{"projectId":"p1","revisionId":"r1","status":"Selesai","driveLink":"https://drive.example/x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Selesai", got.Status)
	assert.Equal(t, "https://drive.example/x", got.DriveLink)
	assert.Equal(t, portal.MsgRevisionUpdated, envelopeOf(t, w)["meta"].(map[string]any)["notification"])

	w = serve(r, http.MethodPost, "/freelancer-portal/TM001/revisions", `{"projectId":"p1","revisionId":"r1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/freelancer-portal/NOPE/revisions", `{"projectId":"p1","revisionId":"r1","status":"Selesai"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPortalHandler_BookErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unknown package", fmt.Errorf("%w: pkg9", portal.ErrUnknownPackage), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad promo", fmt.Errorf("%w: expired", promo.ErrNotApplicable), http.StatusUnprocessableEntity, "PROMO_NOT_APPLICABLE"},
		{"storage", errors.New("disk full"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockPortal{bookFn: func(context.Context, portal.BookingRequest) (*portal.BookingResult, error) {
				return nil, tc.err
			}}

			w := serve(portalRouter(svc), http.MethodPost, "/public/booking",
				`{"clientName":"Citra","whatsapp":"0811","date":"2026-12-01","packageId":"pkg9","promoCode":"X"}`)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, errorCode(t, w))
		})
	}
}

func TestPortalHandler_BookTrimsName(t *testing.T) {
	var got portal.BookingRequest
	svc := &mockPortal{bookFn: func(_ context.Context, req portal.BookingRequest) (*portal.BookingResult, error) {
		got = req
		return &portal.BookingResult{Client: entity.Client{Name: req.ClientName}}, nil
	}}

	w := serve(portalRouter(svc), http.MethodPost, "/public/booking",
		`{"clientName":"  Citra  ","email":"citra@example.com","date":"2026-12-01","packageId":"pkg1"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Citra", got.ClientName)
	assert.Equal(t, portal.MsgBookingReceived, envelopeOf(t, w)["meta"].(map[string]any)["notification"])
}

func TestPortalHandler_CheckPromo(t *testing.T) {
	svc := &mockPortal{checkPromoFn: func(_ context.Context, code string, total decimal.Decimal) (promo.Discount, error) {
		amount := total.Div(decimal.NewFromInt(10))
		return promo.Discount{Code: code, Amount: amount, Total: total.Sub(amount)}, nil
	}}
	r := portalRouter(svc)

	w := serve(r, http.MethodGet, "/public/promo/HEMAT10?total=1000000", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := envelopeOf(t, w)["data"].(map[string]any)
	assert.Equal(t, "HEMAT10", data["code"])
	assert.Equal(t, "900000", data["total"])

	w = serve(r, http.MethodGet, "/public/promo/HEMAT10?total=-5", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodGet, "/public/promo/HEMAT10", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPortalHandler_FeedbackRating(t *testing.T) {
	called := false
	svc := &mockPortal{feedbackFn: func(_ context.Context, req portal.FeedbackRequest) (entity.ClientFeedback, error) {
		called = true
		return entity.ClientFeedback{ClientName: req.ClientName, Rating: req.Rating}, nil
	}}
	r := portalRouter(svc)

	w := serve(r, http.MethodPost, "/public/feedback", `{"clientName":"Dewi","rating":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)

	w = serve(r, http.MethodPost, "/public/feedback", `{"clientName":"Dewi","rating":4}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, called)
}
