// Package health provides health checking functionality for the medicine API.
package health

import (
	"context"
	"fmt"

	"github.com/giygas/medic-api/interfaces"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	store         interfaces.RecordStore
	geminiEnabled bool
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(store interfaces.RecordStore, geminiEnabled bool) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		store:         store,
		geminiEnabled: geminiEnabled,
	}
}

// HealthCheck reports unhealthy when the store cannot be reached and degraded
// when it answers pings but cannot be counted.
func (h *HealthCheckerImpl) HealthCheck(ctx context.Context) (status string, data map[string]any, err error) {
	data = map[string]any{
		"api_version": "1.0",
		"ai_enabled":  h.geminiEnabled,
	}

	if err := h.store.Ping(ctx); err != nil {
		data["database"] = "unreachable"
		return StatusUnhealthy, data, fmt.Errorf("record store ping: %w", err)
	}
	data["database"] = "ok"

	count, err := h.store.Count(ctx)
	if err != nil {
		data["records"] = nil
		return StatusDegraded, data, nil
	}
	data["records"] = count

	return StatusHealthy, data, nil
}
