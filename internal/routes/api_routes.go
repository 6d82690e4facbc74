package routes

import (
	"github.com/go-chi/chi/v5"

	"mentorhub/backend/internal/api"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, handlers *api.Handlers) {
	limiter := middleware.NewRateLimiter(deps.Config.RateLimit.PerSecond, deps.Config.RateLimit.Burst)

	r.Route("/api/v1", func(v1 chi.Router) {
		// Public
		v1.Group(func(public chi.Router) {
			public.Use(limiter.Middleware)
			public.Post("/auth/signup", handlers.SignUp())
			public.Post("/auth/signin", handlers.SignIn())
		})

		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(deps.Services.Identity))

			authed.Post("/auth/signout", handlers.SignOut())
			authed.Get("/me", handlers.GetMe())
			authed.Patch("/me", handlers.UpdateMe())
			authed.Post("/me/register", handlers.RegisterMe())

			authed.Route("/onboarding/{track}", func(ob chi.Router) {
				ob.Post("/", handlers.SubmitApplication())
				ob.Get("/status", handlers.OnboardingStatus())
				ob.Get("/gate", handlers.OnboardingGate())
				ob.Put("/profile", handlers.CompleteProfile())
				ob.Get("/history", handlers.ApplicationHistory())
			})

			authed.Route("/mentorship-requests", func(mr chi.Router) {
				mr.Post("/", handlers.CreateMentorshipRequest())
				mr.Get("/", handlers.ListMentorshipRequests())
				mr.Get("/{id}", handlers.GetMentorshipRequest())
				mr.Post("/{id}/decision", handlers.DecideMentorshipRequest())
				mr.Post("/{id}/cancel", handlers.CancelMentorshipRequest())
			})

			authed.Route("/roadmaps", func(rm chi.Router) {
				rm.Post("/", handlers.CreateRoadmap())
				rm.Get("/", handlers.ListRoadmaps())
				rm.Get("/{id}", handlers.GetRoadmap())
				rm.Put("/{id}", handlers.UpdateRoadmap())
				rm.Patch("/{id}/milestones/{milestone}/progress", handlers.UpdateMilestoneProgress())
				rm.Get("/{id}/milestones/{milestone}/comments", handlers.ListComments())
				rm.Post("/{id}/milestones/{milestone}/comments", handlers.AddComment())
				rm.Delete("/{id}/comments/{comment_id}", handlers.DeleteComment())
			})

			authed.Get("/progress/candidate", handlers.CandidateProgress())
			authed.Get("/progress/poll", handlers.PollProgress())

			// Admin-only group
			authed.Group(func(admin chi.Router) {
				admin.Use(middleware.RequireAnyRole(deps.Services.Roles, constants.RoleAdmin, constants.RoleSuperAdmin))

				admin.Get("/admin/applications", handlers.ListApplications())
				admin.Post("/admin/applications/{id}/decision", handlers.DecideApplication())
				admin.Post("/admin/roles", handlers.GrantRole())
				admin.Delete("/admin/roles", handlers.RevokeRole())
				admin.Get("/admin/principals/{id}/roles", handlers.PrincipalRoles())
				admin.Get("/admin/stats", handlers.AdminStats())
			})
		})
	})
}
