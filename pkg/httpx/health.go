package httpx

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (storage backends and the EventBus all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks holds the set of dependencies to probe in the health endpoint.
// A nil checker is reported as "disabled" and never degrades the status.
type HealthChecks struct {
	StorageDriver string
	Storage       HealthChecker
	EventBus      HealthChecker
}

type healthResponse struct {
	Status        string `json:"status"`
	StorageDriver string `json:"storage_driver,omitempty"`
	Storage       string `json:"storage"`
	EventBus      string `json:"event_bus"`
}

// HealthHandler returns an http.HandlerFunc that probes all registered
// HealthCheckers and reports degraded status if any of them fail.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", StorageDriver: checks.StorageDriver}
		resp.Storage = probe(ctx, checks.Storage, &resp.Status)
		resp.EventBus = probe(ctx, checks.EventBus, &resp.Status)

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}

func probe(ctx context.Context, c HealthChecker, overall *string) string {
	if c == nil {
		return "disabled"
	}
	if err := c.Ping(ctx); err != nil {
		*overall = "degraded"
		return "unreachable"
	}
	return "ok"
}
