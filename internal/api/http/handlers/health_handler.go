package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/attendance-service/internal/api/dto"
	"github.com/spec-kit/attendance-service/internal/persistence"
	apperrors "github.com/spec-kit/attendance-service/pkg/util/errorutil"
)

const readyTimeout = 2 * time.Second

// Pinger is a dependency that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName  string
	version      string
	dependencies map[string]Pinger
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, dependencies map[string]Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, dependencies: dependencies}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok"})
}

// Ready reports service readiness by checking dependencies. Dependencies
// that were never configured are reported as disabled and do not fail it.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
	defer cancel()

	depStatus := make(map[string]string, len(h.dependencies))
	failed := map[string]any{}

	for name, dep := range h.dependencies {
		err := dep.Ping(ctx)
		switch {
		case err == nil:
			depStatus[name] = "ok"
		case errors.Is(err, persistence.ErrNotConfigured):
			depStatus[name] = "disabled"
		default:
			depStatus[name] = err.Error()
			failed[name] = err.Error()
		}
	}

	if len(failed) > 0 {
		return apperrors.NewDependencyUnavailable("one or more dependencies unavailable", failed)
	}

	return c.JSON(dto.ReadinessResponse{
		Status:       "ready",
		Service:      h.serviceName,
		Version:      h.version,
		Dependencies: depStatus,
	})
}
