package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mentorhub/backend/internal/auth"
	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/logging"
	"mentorhub/backend/internal/models/dtos"
)

// ListApplications handles GET /api/v1/admin/applications?status=pending&track=mentor
func (h *Handlers) ListApplications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		status := constants.ApplicationStatus(r.URL.Query().Get("status"))
		if status == "" {
			status = constants.ApplicationPending
		}

		apps, err := h.deps.Services.Onboarding.ListByStatus(r.Context(), status, constants.Track(r.URL.Query().Get("track")))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		views := make([]dtos.ApplicationView, 0, len(apps))
		for i := range apps {
			views = append(views, dtos.NewApplicationView(&apps[i]))
		}
		common.RespondSuccess(w, initTime, "Applications", views)
	}
}

// DecideApplication handles POST /api/v1/admin/applications/{id}/decision
func (h *Handlers) DecideApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.DecisionRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		app, err := h.deps.Services.Onboarding.Decide(r.Context(), auth.PrincipalID(r.Context()),
			chi.URLParam(r, "id"), constants.ApplicationStatus(req.Decision))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Decision recorded", dtos.NewApplicationView(app))
	}
}

// GrantRole handles POST /api/v1/admin/roles
func (h *Handlers) GrantRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RoleChangeRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		assignment, err := h.deps.Services.Roles.Grant(r.Context(), auth.PrincipalID(r.Context()),
			req.PrincipalID, constants.Role(req.Role))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Role granted", dtos.NewRoleAssignmentView(assignment))
	}
}

// RevokeRole handles DELETE /api/v1/admin/roles
func (h *Handlers) RevokeRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RoleChangeRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		err := h.deps.Services.Roles.Withdraw(r.Context(), auth.PrincipalID(r.Context()),
			req.PrincipalID, constants.Role(req.Role))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Role revoked", nil)
	}
}

// PrincipalRoles handles GET /api/v1/admin/principals/{id}/roles
func (h *Handlers) PrincipalRoles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		roles, err := h.deps.Services.Roles.RolesOf(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Roles", roles)
	}
}

// AdminStats handles GET /api/v1/admin/stats
func (h *Handlers) AdminStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if h.deps.Repo.Stats == nil {
			common.RespondErrorCode(w, initTime, constants.ErrCodeStoreUnavailable,
				"Statistics are not available", http.StatusServiceUnavailable)
			return
		}

		stats, err := h.deps.Repo.Stats.Snapshot(r.Context())
		if err != nil {
			logging.Error("Failed to load lifecycle stats", "error", err)
			common.RespondErrorCode(w, initTime, constants.ErrCodeStoreUnavailable,
				constants.GetErrorMessage(constants.ErrCodeStoreUnavailable), http.StatusServiceUnavailable)
			return
		}

		common.RespondSuccess(w, initTime, "Lifecycle stats", stats)
	}
}
