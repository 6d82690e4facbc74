package services

import (
	"context"
	"testing"

	"mentorhub/backend/internal/constants"
	gormModels "mentorhub/backend/internal/models/gorm"
)

func TestRegistration_EnsureRegisteredSteps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := &gormModels.Principal{Email: "ana@example.com", DisplayName: "Ana"}
	if err := env.principals.Create(ctx, p); err != nil {
		t.Fatalf("Create principal failed: %v", err)
	}

	resp, err := env.registration.EnsureRegistered(ctx, p.ID, constants.TrackCandidate, "")
	if err != nil {
		t.Fatalf("EnsureRegistered failed: %v", err)
	}
	if !resp.Status {
		t.Error("Expected status true")
	}

	wantSteps := []string{"principal_check", "role_assignment", "application_submit"}
	if len(resp.Steps) != len(wantSteps) {
		t.Fatalf("Expected %d steps, got %d", len(wantSteps), len(resp.Steps))
	}
	for i, name := range wantSteps {
		if resp.Steps[i].Name != name || !resp.Steps[i].Status {
			t.Errorf("Step %d: expected %s to succeed, got %+v", i, name, resp.Steps[i])
		}
	}

	status, err := env.onboarding.StatusFor(ctx, p.ID, constants.TrackCandidate)
	if err != nil {
		t.Fatalf("StatusFor failed: %v", err)
	}
	if status.Status != string(constants.ApplicationPending) {
		t.Errorf("Expected pending application, got %s", status.Status)
	}
}

func TestRegistration_RetryAfterPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := &gormModels.Principal{Email: "bo@example.com", DisplayName: "Bo"}
	env.principals.Create(ctx, p)

	// a previous run stopped after the role was written
	if _, err := env.roles.Assign(ctx, p.ID, constants.RoleMentor, nil); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	resp, err := env.registration.EnsureRegistered(ctx, p.ID, constants.TrackMentor, "Bo")
	if err != nil {
		t.Fatalf("EnsureRegistered failed: %v", err)
	}
	if resp.Steps[1].Message != "Role already assigned" {
		t.Errorf("Expected role step to be skipped, got %q", resp.Steps[1].Message)
	}
	if resp.Steps[2].Message != "Application submitted" {
		t.Errorf("Expected application to be submitted, got %q", resp.Steps[2].Message)
	}

	again, err := env.registration.EnsureRegistered(ctx, p.ID, constants.TrackMentor, "Bo")
	if err != nil {
		t.Fatalf("Second EnsureRegistered failed: %v", err)
	}
	if again.Steps[2].Message != "Application already exists" {
		t.Errorf("Expected application step to be skipped, got %q", again.Steps[2].Message)
	}
	if n := env.events.count(constants.EventPrincipalRegistered); n != 1 {
		t.Errorf("Expected one PRINCIPAL_REGISTERED event, got %d", n)
	}
}

func TestRegistration_UnknownPrincipal(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.registration.EnsureRegistered(context.Background(), "missing", constants.TrackCandidate, "X")
	if !IsKind(err, KindNotFound) {
		t.Fatalf("Expected NotFound, got %v", err)
	}
	if resp.Status || len(resp.Steps) != 1 || resp.Steps[0].Status {
		t.Errorf("Expected failed principal_check step, got %+v", resp)
	}
}
