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

// CreateRoadmap handles POST /api/v1/roadmaps
func (h *Handlers) CreateRoadmap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateRoadmapRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		view, err := h.deps.Services.Roadmaps.Create(r.Context(), auth.PrincipalID(r.Context()), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Roadmap created", view, http.StatusCreated)
	}
}

// ListRoadmaps handles GET /api/v1/roadmaps
func (h *Handlers) ListRoadmaps() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		views, err := h.deps.Services.Roadmaps.ListForPrincipal(r.Context(), auth.PrincipalID(r.Context()))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Roadmaps", views)
	}
}

// GetRoadmap handles GET /api/v1/roadmaps/{id}
func (h *Handlers) GetRoadmap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		view, err := h.deps.Services.Roadmaps.Get(r.Context(), auth.PrincipalID(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Roadmap", view)
	}
}

// UpdateRoadmap handles PUT /api/v1/roadmaps/{id}
func (h *Handlers) UpdateRoadmap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateRoadmapRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		view, err := h.deps.Services.Roadmaps.Update(r.Context(), auth.PrincipalID(r.Context()), chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Roadmap updated", view)
	}
}

// UpdateMilestoneProgress handles PATCH /api/v1/roadmaps/{id}/milestones/{milestone}/progress
func (h *Handlers) UpdateMilestoneProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ProgressUpdateRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}
		if req.Progress == nil {
			common.RespondErrorCode(w, initTime, constants.ErrCodeValidationFailed, constants.MsgProgressRequired, http.StatusBadRequest)
			return
		}

		view, err := h.deps.Services.Roadmaps.UpdateMilestoneProgress(r.Context(), auth.PrincipalID(r.Context()),
			chi.URLParam(r, "id"), chi.URLParam(r, "milestone"), *req.Progress, req.ExpectedVersion)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Progress updated", view)
	}
}

// ListComments handles GET /api/v1/roadmaps/{id}/milestones/{milestone}/comments
func (h *Handlers) ListComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		comments, err := h.deps.Services.Roadmaps.ListComments(r.Context(), auth.PrincipalID(r.Context()),
			chi.URLParam(r, "id"), chi.URLParam(r, "milestone"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		views := make([]dtos.CommentView, 0, len(comments))
		for i := range comments {
			views = append(views, dtos.NewCommentView(&comments[i]))
		}
		common.RespondSuccess(w, initTime, "Comments", views)
	}
}

// AddComment handles POST /api/v1/roadmaps/{id}/milestones/{milestone}/comments
func (h *Handlers) AddComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CommentRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		c, err := h.deps.Services.Roadmaps.AddComment(r.Context(), auth.PrincipalID(r.Context()),
			chi.URLParam(r, "id"), chi.URLParam(r, "milestone"), req.Comment)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Comment added", dtos.NewCommentView(c), http.StatusCreated)
	}
}

// DeleteComment handles DELETE /api/v1/roadmaps/{id}/comments/{comment_id}
func (h *Handlers) DeleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		err := h.deps.Services.Roadmaps.DeleteComment(r.Context(), auth.PrincipalID(r.Context()),
			chi.URLParam(r, "id"), chi.URLParam(r, "comment_id"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Comment deleted", nil)
	}
}
