package reserbox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DedupWindow is the rolling window within which a second submission from the
// same contact (normalized email or phone) is rejected as a duplicate.
const DedupWindow = 24 * time.Hour

var (
	ErrDuplicateLead = errors.New("a request from this contact was already received")
	ErrLeadNotFound  = errors.New("lead not found")
)

// MissingFieldError reports a required submission field that was empty after
// trimming. It is user-correctable and maps to a client error at the edge.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Lead lifecycle statuses. The intake path only ever writes StatusNew; the
// remaining transitions belong to the sales follow-up tooling.
const (
	StatusNew           = "new"
	StatusContacted     = "contacted"
	StatusDemoScheduled = "demo_scheduled"
	StatusConverted     = "converted"
	StatusLost          = "lost"
)

type Lead struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	BusinessName  string    `json:"business_name"`
	Industry      string    `json:"industry"`
	EmployeeCount string    `json:"employee_count"`
	City          string    `json:"city"`
	Plan          string    `json:"plan"`
	HowFound      string    `json:"how_found"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewLead is the raw contact-form submission before normalization.
type NewLead struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	BusinessName  string `json:"business_name"`
	Industry      string `json:"industry"`
	EmployeeCount string `json:"employee_count"`
	City          string `json:"city"`
	Plan          string `json:"plan"`
	HowFound      string `json:"how_found"`
	Message       string `json:"message"`
}

// Validate checks the required fields. It runs before any persistence
// attempt so an invalid submission never creates a partial lead.
func (nl NewLead) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", nl.Name},
		{"email", nl.Email},
		{"phone", nl.Phone},
		{"business_name", nl.BusinessName},
		{"industry", nl.Industry},
		{"plan", nl.Plan},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return MissingFieldError{Field: r.field}
		}
	}
	return nil
}

// Lead builds the persistable record: contact fields normalized, free text
// trimmed, status new.
func (nl NewLead) Lead(id string, now time.Time) Lead {
	return Lead{
		ID:            id,
		Name:          strings.TrimSpace(nl.Name),
		Email:         NormalizeEmail(nl.Email),
		Phone:         NormalizePhone(nl.Phone),
		BusinessName:  strings.TrimSpace(nl.BusinessName),
		Industry:      nl.Industry,
		EmployeeCount: nl.EmployeeCount,
		City:          strings.TrimSpace(nl.City),
		Plan:          nl.Plan,
		HowFound:      nl.HowFound,
		Message:       strings.TrimSpace(nl.Message),
		Status:        StatusNew,
		CreatedAt:     now,
	}
}

// NormalizeEmail lowercases and trims, so dedup comparisons are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips everything but digits.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type LeadService interface {
	// Create inserts the lead unless another lead with the same normalized
	// email or phone exists within DedupWindow, in which case it returns
	// ErrDuplicateLead and inserts nothing.
	Create(ctx context.Context, lead Lead) error
	// List returns up to limit leads, newest first, optionally filtered by
	// status ("" means all).
	List(ctx context.Context, status string, limit int) ([]Lead, error)
}
