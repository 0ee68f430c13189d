package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/studioline/intake-backend/config"
	"github.com/studioline/intake-backend/internal/api/http/middleware"
	"github.com/studioline/intake-backend/internal/kvstore"
	"github.com/studioline/intake-backend/internal/projects/reconcile"
	"github.com/studioline/intake-backend/internal/projects/repository"
)

// App holds the long-lived components of the API process.
type App struct {
	Store     kvstore.Store
	Projects  *repository.ProjectRepository
	Limiter   *middleware.RateLimiter
	Scheduler *reconcile.Scheduler
	Router    *gin.Engine
}

// NewApp opens the store and wires everything on top of it. On failure any
// component already started is released before the error is returned.
func NewApp(ctx context.Context, cfg *config.Config) (app *App, err error) {
	store, err := OpenStore(ctx, cfg, StoreOptions{})
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	app = &App{Store: store}
	defer func() {
		if err != nil {
			app.Close()
			app = nil
		}
	}()

	app.Projects = repository.NewProjectRepository(store)
	app.Limiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
		RatePerSecond: cfg.RateLimit.RatePerSecond,
		Burst:         cfg.RateLimit.Burst,
	})

	if cfg.Reconcile.Schedule != "" {
		scheduler := reconcile.NewScheduler(app.Projects)
		if err := scheduler.Start(cfg.Reconcile.Schedule); err != nil {
			return nil, fmt.Errorf("reconcile: %w", err)
		}
		app.Scheduler = scheduler
	}

	app.Router = BuildRouter(RouterDeps{
		ServiceName: cfg.App.ServiceName,
		Version:     cfg.App.Version,
		APIPrefix:   cfg.Server.APIPrefix,
		APIToken:    cfg.Auth.Token,
		CORSOrigins: cfg.Server.CORSOrigins,
		Store:       store,
		Projects:    app.Projects,
		Limiter:     app.Limiter,
	})

	return app, nil
}

// Close stops background work, then releases the store.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Limiter != nil {
		a.Limiter.Stop()
	}
	if a.Store != nil {
		a.Store.Close()
	}
}
