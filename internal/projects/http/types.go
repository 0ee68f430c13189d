package http

import (
	"context"

	"github.com/studioline/intake-backend/internal/projects/domain"
	"github.com/studioline/intake-backend/internal/projects/repository"
)

// ProjectRepository is the storage behaviour the handlers depend on.
type ProjectRepository interface {
	Create(ctx context.Context, req domain.SubmitRequest) (string, error)
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	ApplyQuote(ctx context.Context, id string, req domain.QuoteRequest) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	Metrics() *repository.Metrics
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	repo ProjectRepository
}

func New(repo ProjectRepository) *Handler {
	return &Handler{repo: repo}
}

// quoteReq uses pointers so an absent field can be told apart from a zero one.
type quoteReq struct {
	Quote  *float64 `json:"quote"`
	Status *string  `json:"status"`
}

const (
	msgSubmitted     = "Project submitted successfully. We will review and send you a quote within 24 hours."
	msgQuoteSent     = "Quote sent successfully"
	msgDeleted       = "Project deleted successfully"
	msgInvalidBody   = "invalid request body"
	msgMissingFields = "Missing required fields"
	msgQuoteRequired = "Quote and status are required"
	msgNotFound      = "Project not found"
	msgSubmitFailed  = "Failed to submit project"
	msgListFailed    = "Failed to fetch projects"
	msgGetFailed     = "Failed to fetch project"
	msgQuoteFailed   = "Failed to update quote"
	msgDeleteFailed  = "Failed to delete project"
)
