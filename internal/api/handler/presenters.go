package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/venapictures/studio/internal/api/middleware"
	"github.com/venapictures/studio/internal/api/response"
	"github.com/venapictures/studio/internal/api/validation"
	"github.com/venapictures/studio/internal/auth"
	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/money"
	"github.com/venapictures/studio/internal/sop"
	"github.com/venapictures/studio/internal/store"
)

// PasswordHook hashes a plain-text password in a user patch and requires
// one on create. Values that already are bcrypt hashes pass through.
func PasswordHook(cost int) PatchHook {
	return func(patch store.Patch, creating bool) ([]validation.FieldError, error) {
		pw, _ := patch["password"].(string)
		if pw == "" {
			if creating {
				return []validation.FieldError{{Field: "password", Message: "password is required"}}, nil
			}
			delete(patch, "password")
			return nil, nil
		}
		if auth.IsHashed(pw) {
			return nil, nil
		}
		hash, err := auth.HashPassword(pw, cost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		patch["password"] = hash
		return nil, nil
	}
}

type assetView struct {
	entity.Asset
	PurchasePriceDisplay string `json:"purchasePriceDisplay"`
}

// PresentAsset adds the rupiah-formatted purchase price.
func PresentAsset(_ *http.Request, a entity.Asset) (any, error) {
	return assetView{Asset: a, PurchasePriceDisplay: money.FormatIDR(a.PurchasePrice)}, nil
}

// PresentSOP renders the markdown content to HTML when ?render=html is set.
func PresentSOP(r *http.Request, doc entity.SOP) (any, error) {
	if !strings.EqualFold(r.URL.Query().Get("render"), "html") {
		return doc, nil
	}
	return sop.Render(doc)
}

type assetSummary struct {
	Count        int            `json:"count"`
	TotalValue   string         `json:"totalValue"`
	TotalDisplay string         `json:"totalDisplay"`
	ByStatus     map[string]int `json:"byStatus"`
}

// AssetSummary handles GET /api/assets/summary with the statistics shown at
// the top of the asset page.
func AssetSummary(w http.ResponseWriter, r *http.Request) {
	assets := middleware.GetShell(r.Context()).Assets.Items()

	byStatus := make(map[string]int, len(entity.AssetStatuses))
	for _, s := range entity.AssetStatuses {
		byStatus[s] = 0
	}
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.PurchasePrice)
		byStatus[a.Status]++
	}

	response.Success(w, http.StatusOK, assetSummary{
		Count:        len(assets),
		TotalValue:   total.String(),
		TotalDisplay: money.FormatIDR(total),
		ByStatus:     byStatus,
	}, middleware.GetRequestID(r.Context()))
}
