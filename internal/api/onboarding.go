package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mentorhub/backend/internal/auth"
	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/models/dtos"
)

// OnboardingStatus handles GET /api/v1/onboarding/{track}/status
func (h *Handlers) OnboardingStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		track, ok := parseTrack(w, initTime, chi.URLParam(r, "track"))
		if !ok {
			return
		}

		view, err := h.deps.Services.Onboarding.StatusFor(r.Context(), auth.PrincipalID(r.Context()), track)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Application status", view)
	}
}

// OnboardingGate handles GET /api/v1/onboarding/{track}/gate. The admin track is accepted here.
func (h *Handlers) OnboardingGate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		view, err := h.deps.Services.Onboarding.Gate(r.Context(), auth.PrincipalID(r.Context()),
			constants.Track(chi.URLParam(r, "track")))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Gate evaluated", view)
	}
}

// SubmitApplication handles POST /api/v1/onboarding/{track}
func (h *Handlers) SubmitApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		track, ok := parseTrack(w, initTime, chi.URLParam(r, "track"))
		if !ok {
			return
		}
		var req dtos.ApplicationPayloadRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		app, created, err := h.deps.Services.Onboarding.Submit(r.Context(), auth.PrincipalID(r.Context()), track, req.Payload)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		if created {
			common.RespondSuccess(w, initTime, "Application submitted", dtos.NewApplicationView(app), http.StatusCreated)
			return
		}
		common.RespondSuccess(w, initTime, "Application already exists", dtos.NewApplicationView(app))
	}
}

// CompleteProfile handles PUT /api/v1/onboarding/{track}/profile
func (h *Handlers) CompleteProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		track, ok := parseTrack(w, initTime, chi.URLParam(r, "track"))
		if !ok {
			return
		}
		var req dtos.ApplicationPayloadRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		app, err := h.deps.Services.Onboarding.CompleteProfile(r.Context(), auth.PrincipalID(r.Context()), track, req.Payload)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Profile saved", dtos.NewApplicationView(app))
	}
}

// ApplicationHistory handles GET /api/v1/onboarding/{track}/history
func (h *Handlers) ApplicationHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		track, ok := parseTrack(w, initTime, chi.URLParam(r, "track"))
		if !ok {
			return
		}

		revs, err := h.deps.Services.Onboarding.History(r.Context(), auth.PrincipalID(r.Context()), track)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Application history", dtos.NewRevisionViews(revs))
	}
}
