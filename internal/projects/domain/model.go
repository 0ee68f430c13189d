package domain

import (
	"math"
	"strings"
	"time"
)

// Project is one client inquiry tracked through the quoting lifecycle.
// It is storage-agnostic and used across repository and HTTP layers.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Company     string     `json:"company"`
	ServiceType string     `json:"serviceType"`
	Budget      string     `json:"budget"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Quote       *float64   `json:"quote"`
	SubmittedAt time.Time  `json:"submittedAt"`
	QuotedAt    *time.Time `json:"quotedAt,omitempty"`
}

// Status is the quote state of a project.
type Status string

const (
	StatusPending  Status = "pending"
	StatusQuoted   Status = "quoted"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// QuoteStatuses lists the statuses an operator may set. Pending is only
// ever assigned at creation.
var QuoteStatuses = []Status{StatusQuoted, StatusAccepted, StatusRejected}

// IsQuoteStatus reports whether s may be applied by a quote update.
func (s Status) IsQuoteStatus() bool {
	for _, qs := range QuoteStatuses {
		if s == qs {
			return true
		}
	}
	return false
}

// SubmitRequest carries the fields of a new inquiry.
type SubmitRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	ServiceType string `json:"serviceType"`
	Budget      string `json:"budget"`
	Description string `json:"description"`
}

// Validate checks every required field is present and non-blank.
func (r SubmitRequest) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", r.Name},
		{"email", r.Email},
		{"serviceType", r.ServiceType},
		{"budget", r.Budget},
		{"description", r.Description},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.field)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Field: strings.Join(missing, ","), Reason: "is required"}
	}
	return nil
}

// QuoteRequest carries an operator quote for an existing project.
type QuoteRequest struct {
	Amount float64
	Status Status
}

// Validate checks the amount is a positive finite number and the status is
// one an operator may set.
func (r QuoteRequest) Validate() error {
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) || r.Amount <= 0 {
		return &ValidationError{Field: "quote", Reason: "must be a positive number"}
	}
	if !r.Status.IsQuoteStatus() {
		return &ValidationError{Field: "status", Reason: "must be one of quoted, accepted, rejected"}
	}
	return nil
}
