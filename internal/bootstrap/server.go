package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/skytrip/flightcrm/api"
	"github.com/skytrip/flightcrm/config"
	"github.com/skytrip/flightcrm/internal/auth"
	"github.com/skytrip/flightcrm/internal/logger"
	"github.com/skytrip/flightcrm/internal/metrics"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Admin        *api.AdminHandler
	Packages     *api.PackageHandler
	Applications *api.ApplicationHandler
	Messages     *api.MessageHandler
}

// NewRouter assembles the gin engine: public routes, the admin group behind
// bearer-token auth, metrics and swagger.
func NewRouter(cfg *config.Config, log logger.Logger, m *metrics.Metrics, tokens *auth.TokenManager, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if m != nil {
		router.Use(m.Middleware())
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFile("/swagger.json", cfg.HTTP.SwaggerDir+"/swagger.json")
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger.json"))))
	}

	public := router.Group("/")
	admin := router.Group("/", api.AdminAuth(tokens))

	h.Admin.Register(public.Group("/admin"))
	h.Packages.Register(public, admin)
	h.Applications.Register(public, admin)
	h.Messages.Register(public, admin)

	log.Info("routes mounted", "count", len(router.Routes()))
	return router
}

// Run serves the HTTP API and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, log logger.Logger, router *gin.Engine) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info("http server started", "address", cfg.HTTP.Address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
