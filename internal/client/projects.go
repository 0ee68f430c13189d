package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/studioline/intake-backend/internal/projects/domain"
	"github.com/studioline/intake-backend/internal/projects/repository"
)

// SubmitResponse is returned by Submit.
type SubmitResponse struct {
	Success   bool   `json:"success"`
	ProjectID string `json:"projectId"`
	Message   string `json:"message"`
}

// Submit files a new inquiry and returns the assigned id.
func (c *Client) Submit(ctx context.Context, req domain.SubmitRequest) (*SubmitResponse, error) {
	var resp SubmitResponse
	if err := c.do(ctx, http.MethodPost, "/projects", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns every inquiry, newest first.
func (c *Client) List(ctx context.Context) ([]domain.Project, error) {
	var resp struct {
		Projects []domain.Project `json:"projects"`
	}
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

func (c *Client) Get(ctx context.Context, id string) (*domain.Project, error) {
	var resp struct {
		Project *domain.Project `json:"project"`
	}
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Project, nil
}

// SendQuote attaches a quote and status to an inquiry and returns the
// updated record.
func (c *Client) SendQuote(ctx context.Context, id string, amount float64, status domain.Status) (*domain.Project, error) {
	body := struct {
		Quote  float64       `json:"quote"`
		Status domain.Status `json:"status"`
	}{Quote: amount, Status: status}

	var resp struct {
		Project *domain.Project `json:"project"`
	}
	if err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id)+"/quote", body, &resp); err != nil {
		return nil, err
	}
	return resp.Project, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil)
}

// Metrics returns the server's repository counters.
func (c *Client) Metrics(ctx context.Context) (*repository.MetricsSnapshot, error) {
	var resp struct {
		Metrics repository.MetricsSnapshot `json:"metrics"`
	}
	if err := c.do(ctx, http.MethodGet, "/metrics", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Metrics, nil
}
