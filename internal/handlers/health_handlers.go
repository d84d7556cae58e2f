package handlers

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"catalogstore/internal/caching"
)

// HealthHandlers handles health check endpoints
type HealthHandlers struct {
	db       *pgxpool.Pool
	cacheSvc caching.CacheService
}

func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{
		db:       db,
		cacheSvc: cacheSvc,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck handles GET /health/ready and verifies the backing services
// are reachable.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()

	health := &HealthStatus{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}
	code := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		health.Services["database"] = "unreachable: " + err.Error()
		health.Status = "not ready"
		code = http.StatusServiceUnavailable
	} else {
		health.Services["database"] = "ok"
	}

	if err := h.cacheSvc.Ping(ctx); err != nil {
		// The cache is best-effort; report but stay ready.
		health.Services["redis"] = "unreachable: " + err.Error()
	} else {
		health.Services["redis"] = "ok"
	}

	return c.JSON(code, health)
}
