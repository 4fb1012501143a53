package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"conferenceplanner/internal/delivery/http/helpers"
)

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthController serves liveness checks.
type HealthController struct {
	Logger *slog.Logger
	DB     Pinger
}

// NewHealthController creates a HealthController with the given logger and store.
func NewHealthController(logger *slog.Logger, db Pinger) *HealthController {
	return &HealthController{
		Logger: logger,
		DB:     db,
	}
}

// Healthz godoc
// @Summary Health check
// @Description Reports whether the service and its database are up.
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains a status message"
// @Failure 503 {object} helpers.APIResponse "error.code: internal_error"
// @Router /healthz [get]
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()
	if err := c.DB.PingContext(ctx); err != nil {
		c.Logger.ErrorContext(r.Context(), "health check failed", "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeInternalError, "database unreachable")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
