package validation

import (
	"strings"

	"github.com/venapictures/studio/internal/portal"
)

// Login validates the login form.
func Login(email, password string) []FieldError {
	var errs []FieldError
	errs = required(errs, "email", email)
	if password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}
	return errs
}

// Booking validates the public booking form.
func Booking(req portal.BookingRequest) []FieldError {
	var errs []FieldError
	errs = required(errs, "clientName", req.ClientName)
	errs = required(errs, "packageId", req.PackageID)
	errs = required(errs, "date", req.Date)
	if strings.TrimSpace(req.Whatsapp) == "" && strings.TrimSpace(req.Email) == "" {
		errs = append(errs, FieldError{Field: "whatsapp", Message: "whatsapp or email is required"})
	}
	errs = nonNegative(errs, "downPayment", req.DownPayment)
	return errs
}

// LeadForm validates the public lead form.
func LeadForm(req portal.LeadRequest) []FieldError {
	var errs []FieldError
	errs = required(errs, "name", req.Name)
	errs = required(errs, "whatsapp", req.Whatsapp)
	return errs
}

// Suggestion validates the public suggestion form.
func Suggestion(req portal.SuggestionRequest) []FieldError {
	var errs []FieldError
	errs = required(errs, "name", req.Name)
	errs = required(errs, "suggestion", req.Suggestion)
	return errs
}

// Feedback validates the public feedback form.
func Feedback(req portal.FeedbackRequest) []FieldError {
	var errs []FieldError
	errs = required(errs, "clientName", req.ClientName)
	errs = between(errs, "rating", req.Rating, 1, 5)
	return errs
}

// Revision validates a freelancer's revision report.
func Revision(projectID, revisionID string, upd portal.RevisionUpdate) []FieldError {
	var errs []FieldError
	errs = required(errs, "projectId", projectID)
	errs = required(errs, "revisionId", revisionID)
	errs = required(errs, "status", upd.Status)
	return errs
}
