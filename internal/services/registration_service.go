package services

import (
	"context"
	"strings"

	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/db/repositories"
	"mentorhub/backend/internal/logging"
	"mentorhub/backend/internal/metrics"
	"mentorhub/backend/internal/models/dtos"
)

// RegistrationService brings a principal to the registered state on a track.
// Each step checks before it writes, so a failed run is finished by calling it again.
type RegistrationService struct {
	principals *repositories.PrincipalRepository
	roles      *RoleRegistryService
	onboarding *OnboardingService
	events     common.EventPublisher
	metrics    *metrics.MetricsRegistry
}

func NewRegistrationService(
	principals *repositories.PrincipalRepository,
	roles *RoleRegistryService,
	onboarding *OnboardingService,
	events common.EventPublisher,
	m *metrics.MetricsRegistry,
) *RegistrationService {
	return &RegistrationService{
		principals: principals,
		roles:      roles,
		onboarding: onboarding,
		events:     events,
		metrics:    m,
	}
}

// EnsureRegistered runs principal_check -> role_assignment -> application_submit in that order
func (svc *RegistrationService) EnsureRegistered(ctx context.Context, principalID string, track constants.Track, fullName string) (*dtos.RegistrationResponse, error) {
	resp := &dtos.RegistrationResponse{
		PrincipalID: principalID,
		Track:       string(track),
	}

	fail := func(err error, message string) (*dtos.RegistrationResponse, error) {
		step := &resp.Steps[len(resp.Steps)-1]
		step.Status = false
		step.Message = message
		logging.Warn("Registration step failed", "principal_id", principalID, "step", step.Name, "error", err)
		return resp, err
	}

	if !track.Valid() {
		resp.Steps = append(resp.Steps, dtos.RegistrationStep{Name: "principal_check"})
		return fail(validationErr("unknown track %q", track), "Unknown onboarding track")
	}

	// STEP 1: Principal exists
	resp.Steps = append(resp.Steps, dtos.RegistrationStep{
		Name:    "principal_check",
		Status:  true,
		Message: "Principal found",
	})

	principal, err := svc.principals.GetByID(ctx, principalID)
	if err != nil {
		return fail(storeErr(err), "Principal not found")
	}

	// STEP 2: Role for the track
	resp.Steps = append(resp.Steps, dtos.RegistrationStep{
		Name:    "role_assignment",
		Status:  true,
		Message: "Role assigned",
	})

	role := track.Role()
	held, err := svc.roles.HasAnyRole(ctx, principalID, role)
	if err != nil {
		return fail(err, "Failed to read roles")
	}
	if held {
		resp.Steps[1].Message = "Role already assigned"
	} else if _, err := svc.roles.Assign(ctx, principalID, role, nil); err != nil {
		return fail(err, "Failed to assign role")
	}

	// STEP 3: Onboarding application
	resp.Steps = append(resp.Steps, dtos.RegistrationStep{
		Name:    "application_submit",
		Status:  true,
		Message: "Application submitted",
	})

	name := strings.TrimSpace(fullName)
	if name == "" {
		name = principal.DisplayName
	}

	app, created, err := svc.onboarding.Submit(ctx, principalID, track, map[string]interface{}{"full_name": name})
	if err != nil {
		return fail(err, "Failed to submit application")
	}
	if !created {
		resp.Steps[2].Message = "Application already exists"
	}

	resp.Status = true

	if created {
		svc.metrics.RegistrationsTotal.WithLabelValues(string(track)).Inc()
		publish(ctx, svc.events, constants.EventPrincipalRegistered, principalID, principalID, map[string]interface{}{
			"track":          track,
			"application_id": app.ID,
		})
		logging.Info("Principal registered", "principal_id", principalID, "track", track)
	}

	return resp, nil
}
