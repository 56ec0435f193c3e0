package portal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/venapictures/studio/internal/entity"
)

// ErrInvalidRating is returned for a feedback rating outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// LeadRequest is the public lead form.
type LeadRequest struct {
	Name           string `json:"name"`
	Whatsapp       string `json:"whatsapp"`
	Location       string `json:"location"`
	EventDate      string `json:"eventDate"`
	EventType      string `json:"eventType"`
	ContactChannel string `json:"contactChannel"`
	Notes          string `json:"notes"`
}

// SubmitLead records a prospect from the public lead form.
func (s *Service) SubmitLead(ctx context.Context, req LeadRequest) (entity.Lead, error) {
	channel := req.ContactChannel
	if channel == "" {
		channel = ChannelWebsite
	}
	var notes []string
	if req.EventType != "" {
		notes = append(notes, "Jenis acara: "+req.EventType)
	}
	if req.EventDate != "" {
		notes = append(notes, "Tanggal acara: "+req.EventDate)
	}
	if req.Notes != "" {
		notes = append(notes, req.Notes)
	}

	lead, err := s.tables.Leads.Create(ctx, entity.Lead{
		Name:           req.Name,
		ContactChannel: channel,
		Location:       req.Location,
		Status:         LeadStatusDiscuss,
		Date:           s.today(),
		Notes:          strings.Join(notes, "\n"),
		Whatsapp:       req.Whatsapp,
	})
	if err != nil {
		return entity.Lead{}, fmt.Errorf("creating lead: %w", err)
	}
	return lead, nil
}

// SuggestionRequest is the public suggestion form.
type SuggestionRequest struct {
	Name       string `json:"name"`
	Whatsapp   string `json:"whatsapp"`
	Location   string `json:"location"`
	Suggestion string `json:"suggestion"`
}

// SubmitSuggestion records a suggestion as a lead so it shows up in the
// prospect pipeline.
func (s *Service) SubmitSuggestion(ctx context.Context, req SuggestionRequest) (entity.Lead, error) {
	lead, err := s.tables.Leads.Create(ctx, entity.Lead{
		Name:           req.Name,
		ContactChannel: ChannelSuggestion,
		Location:       req.Location,
		Status:         LeadStatusDiscuss,
		Date:           s.today(),
		Notes:          "Saran: " + req.Suggestion,
		Whatsapp:       req.Whatsapp,
	})
	if err != nil {
		return entity.Lead{}, fmt.Errorf("creating suggestion: %w", err)
	}
	return lead, nil
}

// FeedbackRequest is the public feedback form.
type FeedbackRequest struct {
	ClientName string `json:"clientName"`
	Rating     int    `json:"rating"`
	Feedback   string `json:"feedback"`
}

// Satisfaction maps a 1..5 rating to its label.
func Satisfaction(rating int) string {
	switch {
	case rating >= 5:
		return "Sangat Puas"
	case rating == 4:
		return "Puas"
	case rating == 3:
		return "Biasa"
	default:
		return "Tidak Puas"
	}
}

// SubmitFeedback records client feedback.
func (s *Service) SubmitFeedback(ctx context.Context, req FeedbackRequest) (entity.ClientFeedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return entity.ClientFeedback{}, ErrInvalidRating
	}
	fb, err := s.tables.ClientFeedback.Create(ctx, entity.ClientFeedback{
		ClientName:   req.ClientName,
		Satisfaction: Satisfaction(req.Rating),
		Rating:       req.Rating,
		Feedback:     req.Feedback,
		Date:         s.today(),
	})
	if err != nil {
		return entity.ClientFeedback{}, fmt.Errorf("creating feedback: %w", err)
	}
	return fb, nil
}
