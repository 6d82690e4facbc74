package api

import (
	"context"
	"net/http"
	"time"

	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/models/entities"
)

// HealthCheckHandler handles GET /healthCheck
func (h *Handlers) HealthCheckHandler(upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		services := make(map[string]entities.ServiceStatus)

		if h.deps.SQL != nil {
			services["postgres"] = checkStatus("Postgres Connected", h.deps.SQL.PingContext(ctx))
		}
		if h.deps.Redis != nil {
			services["redis"] = checkStatus("Redis Connected", h.deps.Redis.Ping(ctx).Err())
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		common.RespondSuccess(w, initTime, "Health check", resp, code)
	}
}

func checkStatus(okDetails string, err error) entities.ServiceStatus {
	if err != nil {
		return entities.ServiceStatus{Status: "down", Details: err.Error()}
	}
	return entities.ServiceStatus{Status: "ok", Details: okDetails}
}
