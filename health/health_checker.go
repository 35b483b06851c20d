// Package health provides health checking for the interactions API.
package health

import (
	"net/http"
	"time"

	"github.com/medsafe/interactions-api/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore interfaces.DataStore
}

// NewHealthChecker creates a new health checker with injected dependencies.
func NewHealthChecker(dataStore interfaces.DataStore) interfaces.HealthChecker {
	return &HealthCheckerImpl{dataStore: dataStore}
}

// HealthCheck derives status from data availability. The knowledge base is
// load-once, so the only unhealthy condition is an empty formulary; a
// formulary without interactions is degraded but serviceable.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	drugs := h.dataStore.GetDrugs()
	interactions := h.dataStore.GetInteractions()
	loadedAt := h.dataStore.GetLoadedAt()
	uptime := time.Since(h.dataStore.GetServerStartTime())

	switch {
	case len(drugs) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case len(interactions) == 0:
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"dataset_loaded_at": loadedAt.Format(time.RFC3339),
		"uptime_seconds":    int64(uptime.Seconds()),
		"medications":       len(drugs),
		"interactions":      len(interactions),
	}

	return status, data, httpStatus
}
