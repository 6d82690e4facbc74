package services

import (
	"context"
	"testing"

	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/models/dtos"
)

// TestLifecycle walks a candidate from sign-up to a finished roadmap
func TestLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.admin(t, "root", constants.RoleAdmin)
	mentor := env.approvedMentor(t, "mentor", "go", "sql")

	signup, err := env.identity.SignUp(ctx, "cand@example.com", "long-password", "Cand", constants.TrackCandidate)
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	candidate := signup.Principal.ID

	state := func() constants.GateState {
		t.Helper()
		view, err := env.onboarding.Gate(ctx, candidate, constants.TrackCandidate)
		if err != nil {
			t.Fatalf("Gate failed: %v", err)
		}
		return constants.GateState(view.State)
	}

	if got := state(); got != constants.GatePending {
		t.Fatalf("Expected pending after sign-up, got %s", got)
	}

	pending, err := env.onboarding.ListByStatus(ctx, constants.ApplicationPending, constants.TrackCandidate)
	if err != nil || len(pending) != 1 {
		t.Fatalf("Expected one pending candidate application, got %d / %v", len(pending), err)
	}
	if _, err := env.onboarding.Decide(ctx, admin, pending[0].ID, constants.ApplicationApproved); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if got := state(); got != constants.GateIncomplete {
		t.Fatalf("Expected incomplete after approval, got %s", got)
	}

	_, err = env.onboarding.CompleteProfile(ctx, candidate, constants.TrackCandidate, map[string]interface{}{
		"full_name": "Cand",
		"goals":     []string{"backend"},
	})
	if err != nil {
		t.Fatalf("CompleteProfile failed: %v", err)
	}
	if got := state(); got != constants.GateReady {
		t.Fatalf("Expected ready after completing profile, got %s", got)
	}

	req, err := env.requests.Create(ctx, candidate, mentor, "teach me", []string{"go"})
	if err != nil {
		t.Fatalf("Create request failed: %v", err)
	}
	if _, err := env.requests.Decide(ctx, mentor, req.ID, constants.RequestAccepted); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	rm, err := env.roadmaps.Create(ctx, mentor, dtos.CreateRoadmapRequest{
		CandidateID:         candidate,
		MentorshipRequestID: req.ID,
		Title:               "Go",
		Milestones:          []dtos.MilestoneInput{{Title: "Tour", EstimatedHours: 4}, {Title: "Service", EstimatedHours: 8}},
	})
	if err != nil {
		t.Fatalf("Create roadmap failed: %v", err)
	}

	for i := range rm.Milestones {
		if _, err := env.roadmaps.UpdateMilestoneProgress(ctx, candidate, rm.ID, rm.Milestones[i].ID, 100, nil); err != nil {
			t.Fatalf("Progress update failed: %v", err)
		}
	}

	agg, err := env.roadmaps.CandidateProgress(ctx, candidate)
	if err != nil {
		t.Fatalf("CandidateProgress failed: %v", err)
	}
	if agg.AverageProgress != 100 || agg.CompletedHours != 12 || agg.CompletedMilestones != 2 {
		t.Errorf("Expected finished roadmap, got %+v", agg)
	}

	for _, eventType := range []string{
		constants.EventPrincipalRegistered,
		constants.EventApplicationDecided,
		constants.EventRequestCreated,
		constants.EventRoadmapCreated,
		constants.EventMilestoneProgress,
	} {
		if env.events.count(eventType) == 0 {
			t.Errorf("Expected at least one %s event", eventType)
		}
	}
}
