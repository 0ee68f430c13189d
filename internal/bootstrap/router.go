package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/studioline/intake-backend/internal/api/http/middleware"
	"github.com/studioline/intake-backend/internal/api/http/routes"
	"github.com/studioline/intake-backend/internal/kvstore"
	"github.com/studioline/intake-backend/internal/projects/repository"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	APIPrefix   string
	APIToken    string
	CORSOrigins []string
	Store       kvstore.Store
	Projects    *repository.ProjectRepository
	Limiter     *middleware.RateLimiter
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS first so preflight never reaches authentication.
	r.Use(middleware.CORS(dep.CORSOrigins))
	r.Use(middleware.RequestIDMiddleware())

	routes.RegisterV1(r, routes.V1Deps{
		Prefix:      dep.APIPrefix,
		Token:       dep.APIToken,
		ServiceName: dep.ServiceName,
		Version:     dep.Version,
		Store:       dep.Store,
		Projects:    dep.Projects,
		Limiter:     dep.Limiter,
	})

	return r
}
