package api

import (
	"net/http"
	"time"

	"mentorhub/backend/internal/auth"
	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
)

// CandidateProgress handles GET /api/v1/progress/candidate
func (h *Handlers) CandidateProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		view, err := h.deps.Services.Roadmaps.CandidateProgress(r.Context(), auth.PrincipalID(r.Context()))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Candidate progress", view)
	}
}

// PollProgress handles GET /api/v1/progress/poll?since=RFC3339. A missing since returns everything.
func (h *Handlers) PollProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var since time.Time
		if raw := r.URL.Query().Get("since"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				common.RespondErrorCode(w, initTime, constants.ErrCodeValidationFailed,
					"since must be an RFC3339 timestamp", http.StatusBadRequest)
				return
			}
			since = parsed
		}

		view, err := h.deps.Services.Roadmaps.ProgressSince(r.Context(), auth.PrincipalID(r.Context()), since)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Progress changes", view)
	}
}
