package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studioline/intake-backend/internal/bootstrap"
	"github.com/studioline/intake-backend/internal/kvstore"
	"github.com/studioline/intake-backend/internal/projects/domain"
	"github.com/studioline/intake-backend/internal/projects/repository"
)

const testToken = "test-token"

func setupTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store := kvstore.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { store.Close() })

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "project-intake",
		Version:     "test",
		APIPrefix:   "/api/v1",
		APIToken:    testToken,
		CORSOrigins: []string{"*"},
		Store:       store,
		Projects:    repository.NewProjectRepository(store),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return New(testToken, WithServer(srv.URL+"/api/v1/"), WithTimeout(5*time.Second))
}

func sampleRequest() domain.SubmitRequest {
	return domain.SubmitRequest{
		Name:        "Ana",
		Email:       "ana@example.com",
		Company:     "Acme",
		ServiceType: "web-dev",
		Budget:      "10k-25k",
		Description: "Landing page",
	}
}

func TestClient_ProjectLifecycle(t *testing.T) {
	c := setupTestClient(t)
	ctx := context.Background()

	sub, err := c.Submit(ctx, sampleRequest())
	require.NoError(t, err)
	assert.True(t, sub.Success)
	require.NotEmpty(t, sub.ProjectID)

	items, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.StatusPending, items[0].Status)
	assert.Nil(t, items[0].Quote)

	p, err := c.SendQuote(ctx, sub.ProjectID, 18000, domain.StatusQuoted)
	require.NoError(t, err)
	require.NotNil(t, p.Quote)
	assert.Equal(t, 18000.0, *p.Quote)
	assert.Equal(t, domain.StatusQuoted, p.Status)
	assert.NotNil(t, p.QuotedAt)

	got, err := c.Get(ctx, sub.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuoted, got.Status)

	require.NoError(t, c.Delete(ctx, sub.ProjectID))

	_, err = c.Get(ctx, sub.ProjectID)
	assert.True(t, IsNotFound(err))

	m, err := c.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.Creates)
	assert.Equal(t, int64(1), m.Quotes)
	assert.Equal(t, int64(1), m.Deletes)
}

func TestClient_Errors(t *testing.T) {
	c := setupTestClient(t)
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		req := sampleRequest()
		req.Email = " "
		_, err := c.Submit(ctx, req)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Contains(t, apiErr.Message, "email")
	})

	t.Run("quote unknown project", func(t *testing.T) {
		_, err := c.SendQuote(ctx, "missing", 100, domain.StatusQuoted)
		assert.True(t, IsNotFound(err))
	})

	t.Run("wrong token", func(t *testing.T) {
		bad := New("nope", WithServer(c.ServerURL()))
		_, err := bad.List(ctx)
		assert.True(t, IsUnauthorized(err))
	})

	t.Run("unreachable server", func(t *testing.T) {
		dead := New(testToken, WithServer("http://127.0.0.1:1"), WithTimeout(time.Second))
		_, err := dead.Health(ctx)

		var connErr *ConnectionError
		assert.ErrorAs(t, err, &connErr)
	})
}

func TestClient_Health(t *testing.T) {
	c := setupTestClient(t)

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "up", h.Store)
	assert.Equal(t, "project-intake", h.Service)
}
