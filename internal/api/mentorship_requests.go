package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mentorhub/backend/internal/auth"
	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/models/dtos"
	gormModels "mentorhub/backend/internal/models/gorm"
)

func requestViews(reqs []gormModels.MentorshipRequest) []dtos.MentorshipRequestView {
	out := make([]dtos.MentorshipRequestView, 0, len(reqs))
	for i := range reqs {
		out = append(out, dtos.NewMentorshipRequestView(&reqs[i]))
	}
	return out
}

// CreateMentorshipRequest handles POST /api/v1/mentorship-requests
func (h *Handlers) CreateMentorshipRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateMentorshipRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		created, err := h.deps.Services.Requests.Create(r.Context(), auth.PrincipalID(r.Context()),
			req.MentorID, req.Message, req.SelectedSkills)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Mentorship request sent", dtos.NewMentorshipRequestView(created), http.StatusCreated)
	}
}

// ListMentorshipRequests handles GET /api/v1/mentorship-requests?as=mentor&status=pending.
// Without as=mentor the caller's own requests as a candidate are listed.
func (h *Handlers) ListMentorshipRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		principalID := auth.PrincipalID(r.Context())

		var (
			reqs []gormModels.MentorshipRequest
			err  error
		)
		if r.URL.Query().Get("as") == "mentor" {
			reqs, err = h.deps.Services.Requests.ListForMentor(r.Context(), principalID,
				constants.RequestStatus(r.URL.Query().Get("status")))
		} else {
			reqs, err = h.deps.Services.Requests.ListForCandidate(r.Context(), principalID)
		}
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Mentorship requests", requestViews(reqs))
	}
}

// GetMentorshipRequest handles GET /api/v1/mentorship-requests/{id}
func (h *Handlers) GetMentorshipRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		req, err := h.deps.Services.Requests.Get(r.Context(), auth.PrincipalID(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Mentorship request", dtos.NewMentorshipRequestView(req))
	}
}

// DecideMentorshipRequest handles POST /api/v1/mentorship-requests/{id}/decision
func (h *Handlers) DecideMentorshipRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var body dtos.DecisionRequest
		if !decodeBody(w, r, initTime, &body) {
			return
		}

		req, err := h.deps.Services.Requests.Decide(r.Context(), auth.PrincipalID(r.Context()),
			chi.URLParam(r, "id"), constants.RequestStatus(body.Decision))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Decision recorded", dtos.NewMentorshipRequestView(req))
	}
}

// CancelMentorshipRequest handles POST /api/v1/mentorship-requests/{id}/cancel
func (h *Handlers) CancelMentorshipRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		req, err := h.deps.Services.Requests.Cancel(r.Context(), auth.PrincipalID(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Mentorship request cancelled", dtos.NewMentorshipRequestView(req))
	}
}
