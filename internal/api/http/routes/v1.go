package routes

import (
	"github.com/gin-gonic/gin"

	httpapi "github.com/studioline/intake-backend/internal/api/http"
	"github.com/studioline/intake-backend/internal/api/http/middleware"
	"github.com/studioline/intake-backend/internal/kvstore"
	projectshttp "github.com/studioline/intake-backend/internal/projects/http"
	"github.com/studioline/intake-backend/internal/projects/repository"
)

type V1Deps struct {
	Prefix      string
	Token       string
	ServiceName string
	Version     string
	Store       kvstore.Store
	Projects    *repository.ProjectRepository
	Limiter     *middleware.RateLimiter
}

// RegisterV1 mounts every endpoint under the service prefix behind bearer auth.
func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group(dep.Prefix)
	api.Use(middleware.BearerAuth(dep.Token))

	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store).RegisterRoutes(api)

	projectshttp.New(dep.Projects).Register(api, dep.Limiter.Middleware())
}
