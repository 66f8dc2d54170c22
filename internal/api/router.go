package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/fatukunda/partytime/internal/app"
	iauth "github.com/fatukunda/partytime/internal/auth"
	"github.com/fatukunda/partytime/internal/handlers"
	"github.com/fatukunda/partytime/internal/middleware"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, tokens *iauth.TokenService, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	if cfg.Monitoring.Health.Enabled {
		r.GET("/health", handlers.Health())
	}
	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	requireAuth := middleware.Auth(tokens)

	if err := registerUserRoutes(r, db, tokens, requireAuth); err != nil {
		return nil, err
	}
	if err := registerPartyRoutes(r, db, requireAuth); err != nil {
		return nil, err
	}
	if err := registerRequestRoutes(r, db, requireAuth); err != nil {
		return nil, err
	}

	return r, nil
}
