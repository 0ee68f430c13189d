package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studioline/intake-backend/internal/kvstore"
	"github.com/studioline/intake-backend/internal/projects/domain"
	"github.com/studioline/intake-backend/internal/projects/repository"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)

	store := kvstore.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	repo := repository.NewProjectRepository(store)

	router := gin.New()
	New(repo).Register(router.Group("/api/v1"))

	t.Cleanup(func() {
		store.Close()
		mr.Close()
	})
	return router, mr
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var out map[string]interface{}
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	}
	return rr, out
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Ana",
		"email":       "a@x.com",
		"serviceType": "web-dev",
		"budget":      "10k-25k",
		"description": "Landing page",
	}
}

func TestCreateProject(t *testing.T) {
	router, mr := setupTestRouter(t)

	t.Run("created", func(t *testing.T) {
		rr, body := doJSON(t, router, http.MethodPost, "/api/v1/projects", validBody())
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["projectId"])
		assert.Equal(t, msgSubmitted, body["message"])
	})

	t.Run("missing field", func(t *testing.T) {
		before := mr.Keys()
		b := validBody()
		delete(b, "budget")

		rr, body := doJSON(t, router, http.MethodPost, "/api/v1/projects", b)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, msgMissingFields, body["error"])
		assert.Equal(t, before, mr.Keys())
	})

	t.Run("blank field", func(t *testing.T) {
		b := validBody()
		b["name"] = "   "

		rr, _ := doJSON(t, router, http.MethodPost, "/api/v1/projects", b)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		rr, body := doJSON(t, router, http.MethodPost, "/api/v1/projects", "{not json")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, msgInvalidBody, body["error"])
	})

	t.Run("store failure", func(t *testing.T) {
		mr.SetError("ERR injected failure")
		defer mr.SetError("")

		rr, body := doJSON(t, router, http.MethodPost, "/api/v1/projects", validBody())
		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, msgSubmitFailed, body["error"])
		assert.NotEmpty(t, body["details"])
	})
}

func TestListProjects(t *testing.T) {
	router, _ := setupTestRouter(t)

	rr, body := doJSON(t, router, http.MethodGet, "/api/v1/projects", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []interface{}{}, body["projects"])

	for _, name := range []string{"first", "second"} {
		b := validBody()
		b["name"] = name
		rr, _ := doJSON(t, router, http.MethodPost, "/api/v1/projects", b)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr, body = doJSON(t, router, http.MethodGet, "/api/v1/projects", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	projects := body["projects"].([]interface{})
	require.Len(t, projects, 2)
	assert.Equal(t, "second", projects[0].(map[string]interface{})["name"])
	assert.Equal(t, "first", projects[1].(map[string]interface{})["name"])
}

func TestGetProject(t *testing.T) {
	router, _ := setupTestRouter(t)

	rr, body := doJSON(t, router, http.MethodGet, "/api/v1/projects/unknown", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, msgNotFound, body["error"])

	_, created := doJSON(t, router, http.MethodPost, "/api/v1/projects", validBody())
	id := created["projectId"].(string)

	rr, body = doJSON(t, router, http.MethodGet, "/api/v1/projects/"+id, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	project := body["project"].(map[string]interface{})
	assert.Equal(t, id, project["id"])
	assert.Equal(t, string(domain.StatusPending), project["status"])
	assert.Nil(t, project["quote"])
}

func TestSendQuote(t *testing.T) {
	router, _ := setupTestRouter(t)

	_, created := doJSON(t, router, http.MethodPost, "/api/v1/projects", validBody())
	id := created["projectId"].(string)
	path := "/api/v1/projects/" + id + "/quote"

	t.Run("quoted", func(t *testing.T) {
		rr, body := doJSON(t, router, http.MethodPut, path, map[string]interface{}{"quote": 8000, "status": "quoted"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, msgQuoteSent, body["message"])

		project := body["project"].(map[string]interface{})
		assert.Equal(t, 8000.0, project["quote"])
		assert.Equal(t, "quoted", project["status"])
		assert.NotEmpty(t, project["quotedAt"])
	})

	t.Run("missing fields", func(t *testing.T) {
		for _, b := range []map[string]interface{}{
			{"status": "quoted"},
			{"quote": 100},
			{"quote": 100, "status": ""},
		} {
			rr, body := doJSON(t, router, http.MethodPut, path, b)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, msgQuoteRequired, body["error"])
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		rr, _ := doJSON(t, router, http.MethodPut, path, map[string]interface{}{"quote": -5, "status": "quoted"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr, _ = doJSON(t, router, http.MethodPut, path, map[string]interface{}{"quote": 5, "status": "pending"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr, _ = doJSON(t, router, http.MethodPut, path, map[string]interface{}{"quote": "5", "status": "quoted"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		rr, body := doJSON(t, router, http.MethodPut, "/api/v1/projects/nope/quote",
			map[string]interface{}{"quote": 100, "status": "accepted"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, msgNotFound, body["error"])
	})
}

func TestDeleteProject(t *testing.T) {
	router, _ := setupTestRouter(t)

	_, created := doJSON(t, router, http.MethodPost, "/api/v1/projects", validBody())
	id := created["projectId"].(string)

	for i := 0; i < 2; i++ {
		rr, body := doJSON(t, router, http.MethodDelete, "/api/v1/projects/"+id, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, msgDeleted, body["message"])
	}

	rr, _ := doJSON(t, router, http.MethodGet, "/api/v1/projects/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetrics(t *testing.T) {
	router, _ := setupTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/projects", validBody())

	rr, body := doJSON(t, router, http.MethodGet, "/api/v1/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	metrics := body["metrics"].(map[string]interface{})
	assert.Equal(t, 1.0, metrics["creates"])
	assert.Equal(t, 0.0, metrics["storeErrors"])
}
