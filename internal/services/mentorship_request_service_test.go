package services

import (
	"context"
	"testing"

	"mentorhub/backend/internal/constants"
)

func TestRequests_EmptySkillsFailValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mentor := env.approvedMentor(t, "mentor", "go")
	candidate := env.register(t, "candidate", constants.TrackCandidate)

	for _, skills := range [][]string{nil, {}, {" ", ""}} {
		if _, err := env.requests.Create(ctx, candidate, mentor, "hi", skills); !IsKind(err, KindValidationFailed) {
			t.Errorf("Expected ValidationFailed for %v, got %v", skills, err)
		}
	}
}

func TestRequests_SkillsMustBeOffered(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mentor := env.approvedMentor(t, "mentor", "go")
	candidate := env.register(t, "candidate", constants.TrackCandidate)

	if _, err := env.requests.Create(ctx, candidate, mentor, "hi", []string{"go", "rust"}); !IsKind(err, KindValidationFailed) {
		t.Errorf("Expected ValidationFailed for unoffered skill, got %v", err)
	}

	req, err := env.requests.Create(ctx, candidate, mentor, "hi", []string{" go", "go "})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(req.SelectedSkills) != 1 || req.SelectedSkills[0] != "go" {
		t.Errorf("Expected deduplicated skills [go], got %v", req.SelectedSkills)
	}
}

func TestRequests_DuplicateInAnyState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mentor := env.approvedMentor(t, "mentor", "go")
	candidate := env.register(t, "candidate", constants.TrackCandidate)

	req, err := env.requests.Create(ctx, candidate, mentor, "hi", []string{"go"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	states := []func() error{
		func() error { return nil },
		func() error {
			_, err := env.requests.Decide(ctx, mentor, req.ID, constants.RequestRejected)
			return err
		},
		func() error {
			_, err := env.requests.Decide(ctx, mentor, req.ID, constants.RequestAccepted)
			return err
		},
	}
	for i, enter := range states {
		if err := enter(); err != nil {
			t.Fatalf("State %d transition failed: %v", i, err)
		}
		if _, err := env.requests.Create(ctx, candidate, mentor, "again", []string{"go"}); !IsKind(err, KindDuplicateRequest) {
			t.Errorf("State %d: expected DuplicateRequest, got %v", i, err)
		}
	}
}

func TestRequests_DuplicateAfterMentorRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.admin(t, "admin", constants.RoleAdmin)
	mentor := env.approvedMentor(t, "mentor", "go")
	candidate := env.register(t, "candidate", constants.TrackCandidate)

	if _, err := env.requests.Create(ctx, candidate, mentor, "hi", []string{"go"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	app, _, err := env.onboarding.Submit(ctx, mentor, constants.TrackMentor, nil)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := env.onboarding.Decide(ctx, admin, app.ID, constants.ApplicationRejected); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	if _, err := env.requests.Create(ctx, candidate, mentor, "again", []string{"go"}); !IsKind(err, KindDuplicateRequest) {
		t.Errorf("Expected DuplicateRequest once the mentor is rejected, got %v", err)
	}
}

func TestRequests_CancelledStillBlocksDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mentor := env.approvedMentor(t, "mentor", "go")
	candidate := env.register(t, "candidate", constants.TrackCandidate)

	req, _ := env.requests.Create(ctx, candidate, mentor, "hi", []string{"go"})

	if _, err := env.requests.Cancel(ctx, mentor, req.ID); !IsKind(err, KindAuthorizationDenied) {
		t.Errorf("Expected mentor cancel to be denied, got %v", err)
	}

	cancelled, err := env.requests.Cancel(ctx, candidate, req.ID)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.Status != constants.RequestCancelled {
		t.Errorf("Expected cancelled, got %s", cancelled.Status)
	}

	if _, err := env.requests.Create(ctx, candidate, mentor, "again", []string{"go"}); !IsKind(err, KindDuplicateRequest) {
		t.Errorf("Expected DuplicateRequest after cancel, got %v", err)
	}
	if _, err := env.requests.Decide(ctx, mentor, req.ID, constants.RequestAccepted); !IsKind(err, KindConflict) {
		t.Errorf("Expected Conflict deciding a cancelled request, got %v", err)
	}
}

func TestRequests_CancelOnlyPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	candidate, _, requestID := env.acceptedPair(t)

	if _, err := env.requests.Cancel(ctx, candidate, requestID); !IsKind(err, KindConflict) {
		t.Errorf("Expected Conflict cancelling an accepted request, got %v", err)
	}
}

func TestRequests_Preconditions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mentor := env.approvedMentor(t, "mentor", "go")
	candidate := env.register(t, "candidate", constants.TrackCandidate)
	pendingMentor := env.register(t, "pending", constants.TrackMentor)

	if _, err := env.requests.Create(ctx, mentor, mentor, "", []string{"go"}); !IsKind(err, KindValidationFailed) {
		t.Errorf("Expected self request to fail validation, got %v", err)
	}
	if _, err := env.requests.Create(ctx, mentor, pendingMentor, "", []string{"go"}); !IsKind(err, KindAuthorizationDenied) {
		t.Errorf("Expected request without candidate role to be denied, got %v", err)
	}
	if _, err := env.requests.Create(ctx, candidate, pendingMentor, "", []string{"go"}); !IsKind(err, KindValidationFailed) {
		t.Errorf("Expected unapproved mentor to fail validation, got %v", err)
	}
	if _, err := env.requests.Create(ctx, candidate, candidate, "", []string{"go"}); !IsKind(err, KindValidationFailed) {
		t.Errorf("Expected self request to fail validation, got %v", err)
	}
	if _, err := env.requests.Create(ctx, candidate, "nobody", "", []string{"go"}); !IsKind(err, KindNotFound) {
		t.Errorf("Expected unknown mentor to be NotFound, got %v", err)
	}
}

func TestRequests_DecideOnlyByAddressedMentor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mentor := env.approvedMentor(t, "mentor", "go")
	other := env.approvedMentor(t, "other", "go")
	candidate := env.register(t, "candidate", constants.TrackCandidate)
	req, _ := env.requests.Create(ctx, candidate, mentor, "hi", []string{"go"})

	if _, err := env.requests.Decide(ctx, other, req.ID, constants.RequestAccepted); !IsKind(err, KindAuthorizationDenied) {
		t.Errorf("Expected AuthorizationDenied, got %v", err)
	}
	if _, err := env.requests.Decide(ctx, mentor, req.ID, constants.RequestPending); !IsKind(err, KindValidationFailed) {
		t.Errorf("Expected pending to be an invalid decision, got %v", err)
	}

	pending, _ := env.requests.ListForMentor(ctx, mentor, constants.RequestPending)
	if len(pending) != 1 {
		t.Errorf("Expected 1 pending request, got %d", len(pending))
	}

	env.requests.Decide(ctx, mentor, req.ID, constants.RequestAccepted)
	got, err := env.requests.Decide(ctx, mentor, req.ID, constants.RequestAccepted)
	if err != nil || got.Status != constants.RequestAccepted {
		t.Errorf("Expected repeated accept to be a no-op, got %v / %v", got, err)
	}
	if n := env.events.count(constants.EventRequestDecided); n != 1 {
		t.Errorf("Expected one REQUEST_DECIDED event, got %d", n)
	}

	mine, _ := env.requests.ListForCandidate(ctx, candidate)
	if len(mine) != 1 {
		t.Errorf("Expected candidate to see 1 request, got %d", len(mine))
	}
	if _, err := env.requests.Get(ctx, other, req.ID); !IsKind(err, KindAuthorizationDenied) {
		t.Errorf("Expected outsider Get to be denied, got %v", err)
	}
}
