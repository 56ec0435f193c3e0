// Package promo computes promo code discounts and retires codes that can no
// longer be redeemed.
package promo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/venapictures/studio/internal/entity"
)

// ErrNotApplicable is returned when a code cannot be redeemed for an order.
var ErrNotApplicable = errors.New("promo code not applicable")

var hundred = decimal.NewFromInt(100)

// Discount is the outcome of applying a code to an order total.
type Discount struct {
	CodeID string          `json:"codeId"`
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
	Total  decimal.Decimal `json:"total"`
}

// Find returns the code whose text matches, ignoring case and surrounding space.
func Find(codes []entity.PromoCode, code string) (entity.PromoCode, bool) {
	code = strings.TrimSpace(code)
	for _, c := range codes {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return entity.PromoCode{}, false
}

// Apply computes the discount code grants on an order of orderTotal at now.
// The discount never exceeds the order total.
func Apply(code entity.PromoCode, orderTotal decimal.Decimal, now time.Time) (Discount, error) {
	if reason := Unusable(code, now); reason != "" {
		return Discount{}, fmt.Errorf("%w: %s", ErrNotApplicable, reason)
	}
	if code.MinOrderAmount.IsPositive() && orderTotal.LessThan(code.MinOrderAmount) {
		return Discount{}, fmt.Errorf("%w: order below minimum %s", ErrNotApplicable, code.MinOrderAmount)
	}

	var amount decimal.Decimal
	switch code.DiscountType {
	case entity.DiscountPercentage:
		amount = orderTotal.Mul(code.DiscountValue).Div(hundred).Round(0)
	case entity.DiscountFixed:
		amount = code.DiscountValue
	default:
		return Discount{}, fmt.Errorf("%w: unknown discount type %q", ErrNotApplicable, code.DiscountType)
	}
	if amount.GreaterThan(orderTotal) {
		amount = orderTotal
	}

	return Discount{
		CodeID: code.ID,
		Code:   code.Code,
		Amount: amount,
		Total:  orderTotal.Sub(amount),
	}, nil
}

// Unusable returns why the code cannot be redeemed at now, or "" if it can.
// A zero MaxUsage means unlimited; empty dates leave that side open.
func Unusable(code entity.PromoCode, now time.Time) string {
	if !code.IsActive {
		return "inactive"
	}
	if code.MaxUsage > 0 && code.UsageCount >= code.MaxUsage {
		return "usage limit reached"
	}
	if from, ok := parseDate(code.ValidFrom, false); ok && now.Before(from) {
		return "not yet valid"
	}
	if until, ok := parseDate(code.ValidUntil, true); ok && !now.Before(until) {
		return "expired"
	}
	return ""
}

// parseDate accepts RFC 3339 timestamps and plain dates. A plain date used as
// an end bound covers the whole day.
func parseDate(s string, endOfDay bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return t, true
}
