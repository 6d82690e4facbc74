package services

import (
	"context"
	"testing"

	"mentorhub/backend/internal/constants"
)

func TestOnboarding_SubmitTwiceIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, created, err := env.onboarding.Submit(ctx, "p1", constants.TrackCandidate, map[string]interface{}{"full_name": "Ana"})
	if err != nil || !created {
		t.Fatalf("Expected first submit to create, created=%v err=%v", created, err)
	}

	second, created, err := env.onboarding.Submit(ctx, "p1", constants.TrackCandidate, map[string]interface{}{"full_name": "Other"})
	if err != nil {
		t.Fatalf("Second submit failed: %v", err)
	}
	if created {
		t.Error("Expected second submit to be a no-op")
	}
	if second.ID != first.ID || second.Payload != first.Payload {
		t.Errorf("Expected the original application back, got %+v", second)
	}

	pending, err := env.onboarding.ListByStatus(ctx, constants.ApplicationPending, constants.TrackCandidate)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("Expected exactly one pending application, got %d", len(pending))
	}
}

func TestOnboarding_SubmitRejectsUnknownTrack(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.onboarding.Submit(context.Background(), "p1", constants.TrackAdmin, nil)
	if !IsKind(err, KindValidationFailed) {
		t.Errorf("Expected ValidationFailed, got %v", err)
	}
}

func TestOnboarding_DecideApprovedIgnoresCompleteness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.admin(t, "admin", constants.RoleAdmin)
	app, _, _ := env.onboarding.Submit(ctx, "p1", constants.TrackCandidate, map[string]interface{}{"full_name": "Ana"})

	if _, err := env.onboarding.Decide(ctx, admin, app.ID, constants.ApplicationApproved); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	status, err := env.onboarding.StatusFor(ctx, "p1", constants.TrackCandidate)
	if err != nil {
		t.Fatalf("StatusFor failed: %v", err)
	}
	if status.Status != string(constants.ApplicationApproved) {
		t.Errorf("Expected approved, got %s", status.Status)
	}
	if status.IsProfileComplete {
		t.Error("Expected a single-key payload to be incomplete")
	}
}

func TestOnboarding_DecideRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	app, _, _ := env.onboarding.Submit(ctx, "p1", constants.TrackCandidate, nil)

	if _, err := env.onboarding.Decide(ctx, "p1", app.ID, constants.ApplicationApproved); !IsKind(err, KindAuthorizationDenied) {
		t.Errorf("Expected AuthorizationDenied, got %v", err)
	}
}

func TestOnboarding_RedecideOverwritesAndCounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.admin(t, "admin", constants.RoleAdmin)
	app, _, _ := env.onboarding.Submit(ctx, "p1", constants.TrackMentor, nil)

	if _, err := env.onboarding.Decide(ctx, admin, app.ID, constants.ApplicationRejected); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	// same decision again changes nothing
	if _, err := env.onboarding.Decide(ctx, admin, app.ID, constants.ApplicationRejected); err != nil {
		t.Fatalf("Repeated decide failed: %v", err)
	}
	got, err := env.onboarding.Decide(ctx, admin, app.ID, constants.ApplicationApproved)
	if err != nil {
		t.Fatalf("Overwriting decide failed: %v", err)
	}
	if got.Status != constants.ApplicationApproved {
		t.Errorf("Expected approved after overwrite, got %s", got.Status)
	}

	history, err := env.onboarding.History(ctx, "p1", constants.TrackMentor)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 3 {
		t.Errorf("Expected 3 revisions (submit, reject, approve), got %d", len(history))
	}
	if n := env.events.count(constants.EventApplicationDecided); n != 2 {
		t.Errorf("Expected 2 APPLICATION_DECIDED events, got %d", n)
	}
}

func TestOnboarding_CompleteProfileValidatesSchema(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.onboarding.Submit(ctx, "p1", constants.TrackMentor, map[string]interface{}{"full_name": "Bo"})

	_, err := env.onboarding.CompleteProfile(ctx, "p1", constants.TrackMentor, map[string]interface{}{
		"full_name": "Bo",
		"skills":    []string{},
	})
	if !IsKind(err, KindValidationFailed) {
		t.Errorf("Expected empty skills to fail validation, got %v", err)
	}

	app, err := env.onboarding.CompleteProfile(ctx, "p1", constants.TrackMentor, map[string]interface{}{
		"full_name": "Bo",
		"skills":    []string{"go"},
	})
	if err != nil {
		t.Fatalf("CompleteProfile failed: %v", err)
	}
	if app.Status != constants.ApplicationApproved {
		t.Errorf("Expected completion to approve, got %s", app.Status)
	}
}

func TestOnboarding_CompleteProfileFlagOff(t *testing.T) {
	env := newTestEnv(t)
	env.onboarding.completionApproves = false
	ctx := context.Background()

	env.onboarding.Submit(ctx, "p1", constants.TrackCandidate, map[string]interface{}{"full_name": "Ana"})

	app, err := env.onboarding.CompleteProfile(ctx, "p1", constants.TrackCandidate, map[string]interface{}{
		"full_name": "Ana",
		"headline":  "Backend learner",
	})
	if err != nil {
		t.Fatalf("CompleteProfile failed: %v", err)
	}
	if app.Status != constants.ApplicationPending {
		t.Errorf("Expected status untouched, got %s", app.Status)
	}
}

func TestOnboarding_CompleteProfileWithoutApplication(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.onboarding.CompleteProfile(context.Background(), "ghost", constants.TrackCandidate, map[string]interface{}{
		"full_name": "Ghost",
		"headline":  "x",
	})
	if !IsKind(err, KindNotFound) {
		t.Errorf("Expected NotFound, got %v", err)
	}
}

func TestOnboarding_GateStates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.admin(t, "admin", constants.RoleAdmin)

	gate := func(principal string, track constants.Track) constants.GateState {
		t.Helper()
		view, err := env.onboarding.Gate(ctx, principal, track)
		if err != nil {
			t.Fatalf("Gate failed: %v", err)
		}
		return constants.GateState(view.State)
	}

	if got := gate("stranger", constants.TrackCandidate); got != constants.GateDenied {
		t.Errorf("Expected denied without role, got %s", got)
	}

	env.roles.Assign(ctx, "p1", constants.RoleCandidate, nil)
	if got := gate("p1", constants.TrackCandidate); got != constants.GateIncomplete {
		t.Errorf("Expected incomplete without application, got %s", got)
	}

	app, _, _ := env.onboarding.Submit(ctx, "p1", constants.TrackCandidate, map[string]interface{}{"full_name": "Ana"})
	if got := gate("p1", constants.TrackCandidate); got != constants.GatePending {
		t.Errorf("Expected pending, got %s", got)
	}

	env.onboarding.Decide(ctx, admin, app.ID, constants.ApplicationRejected)
	if got := gate("p1", constants.TrackCandidate); got != constants.GateRejected {
		t.Errorf("Expected rejected, got %s", got)
	}

	if got := gate(admin, constants.TrackAdmin); got != constants.GateReady {
		t.Errorf("Expected admin gate ready for admin, got %s", got)
	}
	if got := gate("p1", constants.TrackAdmin); got != constants.GateDenied {
		t.Errorf("Expected admin gate denied for candidate, got %s", got)
	}
}

func TestOnboarding_MentorSkillsNeedApproval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.onboarding.Submit(ctx, "m1", constants.TrackMentor, map[string]interface{}{"full_name": "M", "skills": []string{"go"}})

	if _, err := env.onboarding.MentorSkills(ctx, "m1"); !IsKind(err, KindValidationFailed) {
		t.Errorf("Expected pending mentor to have no published skills, got %v", err)
	}

	mentor := env.approvedMentor(t, "mentor", " go ", "sql", "go")
	skills, err := env.onboarding.MentorSkills(ctx, mentor)
	if err != nil {
		t.Fatalf("MentorSkills failed: %v", err)
	}
	if len(skills) != 2 || skills[0] != "go" || skills[1] != "sql" {
		t.Errorf("Expected normalized skills [go sql], got %v", skills)
	}
}

func TestIsProfileComplete(t *testing.T) {
	cases := map[string]bool{
		``:                           false,
		`{}`:                         false,
		`{"full_name":"A"}`:          false,
		`{"full_name":"A","bio":""}`: true,
		`not json`:                   false,
	}
	for payload, want := range cases {
		if got := IsProfileComplete(payload); got != want {
			t.Errorf("IsProfileComplete(%q) = %v, want %v", payload, got, want)
		}
	}
}
