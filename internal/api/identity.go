package api

import (
	"net/http"
	"strings"
	"time"

	"mentorhub/backend/internal/auth"
	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/models/dtos"
)

// SignUp handles POST /api/v1/auth/signup
func (h *Handlers) SignUp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SignUpRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		resp, err := h.deps.Services.Identity.SignUp(r.Context(), req.Email, req.Password, req.DisplayName, constants.Track(req.Track))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Signed up", resp, http.StatusCreated)
	}
}

// SignIn handles POST /api/v1/auth/signin
func (h *Handlers) SignIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SignInRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		resp, err := h.deps.Services.Identity.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Signed in", resp)
	}
}

// SignOut handles POST /api/v1/auth/signout
func (h *Handlers) SignOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		h.deps.Services.Identity.SignOut(auth.SessionID(r.Context()))
		common.RespondSuccess(w, initTime, "Signed out", nil)
	}
}

// GetMe handles GET /api/v1/me
func (h *Handlers) GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		view, err := h.deps.Services.Identity.Profile(r.Context(), auth.PrincipalID(r.Context()))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Profile fetched", view)
	}
}

// UpdateMe handles PATCH /api/v1/me
func (h *Handlers) UpdateMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateProfileRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		view, err := h.deps.Services.Identity.UpdateProfile(r.Context(), auth.PrincipalID(r.Context()), req.DisplayName)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Profile updated", view)
	}
}

// RegisterMe handles POST /api/v1/me/register, re-running registration for a track.
func (h *Handlers) RegisterMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		principalID := auth.PrincipalID(r.Context())

		var req dtos.RegisterRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}
		track, ok := parseTrack(w, initTime, req.Track)
		if !ok {
			return
		}

		fullName := strings.TrimSpace(req.DisplayName)
		if fullName == "" {
			profile, err := h.deps.Services.Identity.Profile(r.Context(), principalID)
			if err != nil {
				respondServiceError(w, r, initTime, err)
				return
			}
			fullName = profile.DisplayName
		}

		resp, err := h.deps.Services.Registration.EnsureRegistered(r.Context(), principalID, track, fullName)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Registration complete", resp)
	}
}
