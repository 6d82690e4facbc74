package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/db/repositories"
	"mentorhub/backend/internal/logging"
	"mentorhub/backend/internal/metrics"
	"mentorhub/backend/internal/models/dtos"
	gormModels "mentorhub/backend/internal/models/gorm"

	"golang.org/x/sync/errgroup"
)

// OnboardingService runs the per-track application workflow and derives the dashboard gate from it
type OnboardingService struct {
	apps      *repositories.ApplicationRepository
	roles     *RoleRegistryService
	validator *ProfileValidator
	events    common.EventPublisher
	metrics   *metrics.MetricsRegistry

	// completion of a profile forces status=approved
	completionApproves bool
}

func NewOnboardingService(
	apps *repositories.ApplicationRepository,
	roles *RoleRegistryService,
	validator *ProfileValidator,
	events common.EventPublisher,
	m *metrics.MetricsRegistry,
	completionApproves bool,
) *OnboardingService {
	return &OnboardingService{
		apps:               apps,
		roles:              roles,
		validator:          validator,
		events:             events,
		metrics:            m,
		completionApproves: completionApproves,
	}
}

// payloadKeyCount returns the number of top-level keys of a JSON object payload
func payloadKeyCount(payload string) int {
	if payload == "" {
		return 0
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return 0
	}
	return len(obj)
}

// IsProfileComplete is the completeness heuristic: more than one payload key.
func IsProfileComplete(payload string) bool {
	return payloadKeyCount(payload) > 1
}

func encodePayload(payload map[string]interface{}) (string, error) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", validationErr("payload is not serializable: %v", err)
	}
	return string(data), nil
}

// Submit creates a pending application for (principalID, track). When one already exists it is
// returned unchanged and created is false.
func (s *OnboardingService) Submit(ctx context.Context, principalID string, track constants.Track, payload map[string]interface{}) (app *gormModels.OnboardingApplication, created bool, err error) {
	if !track.Valid() {
		return nil, false, validationErr("unknown track %q", track)
	}

	existing, err := s.apps.GetCurrent(ctx, principalID, track)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, storeErr(err)
	}

	encoded, err := encodePayload(payload)
	if err != nil {
		return nil, false, err
	}

	app = &gormModels.OnboardingApplication{
		PrincipalID: principalID,
		Track:       track,
		Status:      constants.ApplicationPending,
		Payload:     encoded,
	}
	if err := s.apps.Create(ctx, app, principalID, "submitted"); err != nil {
		// lost a race against the unique (principal, track) index
		if existing, getErr := s.apps.GetCurrent(ctx, principalID, track); getErr == nil {
			return existing, false, nil
		}
		return nil, false, storeErr(err)
	}

	logging.Info("Onboarding application submitted", "principal_id", principalID, "track", track, "application_id", app.ID)
	return app, true, nil
}

// Decide records an admin decision. Repeating the current decision is a no-op; a different
// decision replaces the earlier one.
func (s *OnboardingService) Decide(ctx context.Context, adminID, applicationID string, decision constants.ApplicationStatus) (*gormModels.OnboardingApplication, error) {
	if !decision.IsDecision() {
		return nil, validationErr("decision must be approved or rejected, got %q", decision)
	}

	isAdmin, err := s.roles.HasAnyRole(ctx, adminID, constants.RoleAdmin, constants.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, deniedErr("admin role required")
	}

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, storeErr(err)
	}

	if app.Status == decision {
		return app, nil
	}

	previous := app.Status
	now := time.Now()
	app.Status = decision
	app.DecidedBy = &adminID
	app.DecidedAt = &now

	if err := s.apps.Save(ctx, app, adminID, "decided"); err != nil {
		return nil, storeErr(err)
	}

	if previous.IsDecision() {
		logging.Warn("Application decision overwritten",
			"application_id", app.ID, "from", previous, "to", decision, "admin_id", adminID)
		s.metrics.DecisionOverwrites.WithLabelValues("application").Inc()
	}
	s.metrics.ApplicationDecisions.WithLabelValues(string(app.Track), string(decision)).Inc()

	publish(ctx, s.events, constants.EventApplicationDecided, adminID, app.ID, map[string]interface{}{
		"principal_id": app.PrincipalID,
		"track":        app.Track,
		"status":       decision,
		"previous":     previous,
	})

	return app, nil
}

// CompleteProfile replaces the payload with a schema-valid full profile.
func (s *OnboardingService) CompleteProfile(ctx context.Context, principalID string, track constants.Track, payload map[string]interface{}) (*gormModels.OnboardingApplication, error) {
	if !track.Valid() {
		return nil, validationErr("unknown track %q", track)
	}

	encoded, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(ctx, track, []byte(encoded)); err != nil {
		return nil, err
	}

	app, err := s.apps.GetCurrent(ctx, principalID, track)
	if err != nil {
		return nil, storeErr(err)
	}

	previous := app.Status
	app.Payload = encoded
	if s.completionApproves && app.Status != constants.ApplicationApproved {
		app.Status = constants.ApplicationApproved
		if previous == constants.ApplicationRejected {
			logging.Warn("Profile completion approved a rejected application",
				"application_id", app.ID, "principal_id", principalID)
		}
	}

	if err := s.apps.Save(ctx, app, principalID, "profile_completed"); err != nil {
		return nil, storeErr(err)
	}

	publish(ctx, s.events, constants.EventProfileCompleted, principalID, app.ID, map[string]interface{}{
		"track":    track,
		"status":   app.Status,
		"previous": previous,
	})

	return app, nil
}

func (s *OnboardingService) StatusFor(ctx context.Context, principalID string, track constants.Track) (*dtos.ApplicationStatusView, error) {
	if !track.Valid() {
		return nil, validationErr("unknown track %q", track)
	}

	app, err := s.apps.GetCurrent(ctx, principalID, track)
	if err != nil {
		return nil, storeErr(err)
	}

	return &dtos.ApplicationStatusView{
		Track:             string(track),
		Status:            string(app.Status),
		IsProfileComplete: IsProfileComplete(app.Payload),
		Revision:          app.Revision,
	}, nil
}

// History returns every revision of the principal's application on track
func (s *OnboardingService) History(ctx context.Context, principalID string, track constants.Track) ([]gormModels.ApplicationRevision, error) {
	app, err := s.apps.GetCurrent(ctx, principalID, track)
	if err != nil {
		return nil, storeErr(err)
	}

	revs, err := s.apps.ListRevisions(ctx, app.ID)
	if err != nil {
		return nil, storeErr(err)
	}
	return revs, nil
}

func (s *OnboardingService) ListByStatus(ctx context.Context, status constants.ApplicationStatus, track constants.Track) ([]gormModels.OnboardingApplication, error) {
	if track != "" && !track.Valid() {
		return nil, validationErr("unknown track %q", track)
	}

	apps, err := s.apps.ListByStatus(ctx, status, track)
	if err != nil {
		return nil, storeErr(err)
	}
	return apps, nil
}

// Gate derives the dashboard state for principalID on track:
// role missing -> denied; no application -> incomplete; pending/rejected as is;
// approved -> ready once the profile is complete, incomplete before.
func (s *OnboardingService) Gate(ctx context.Context, principalID string, track constants.Track) (*dtos.GateView, error) {
	if track == constants.TrackAdmin {
		roles, err := s.roles.RolesOf(ctx, principalID)
		if err != nil {
			return nil, err
		}
		view := &dtos.GateView{Track: string(track), State: string(constants.GateDenied), Roles: roleStrings(roles)}
		if containsAnyRole(roles, constants.RoleAdmin, constants.RoleSuperAdmin) {
			view.State = string(constants.GateReady)
		}
		return view, nil
	}

	if !track.Valid() {
		return nil, validationErr("unknown track %q", track)
	}

	var (
		roles []constants.Role
		app   *gormModels.OnboardingApplication
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roles, err = s.roles.RolesOf(gctx, principalID)
		return err
	})
	g.Go(func() error {
		var err error
		app, err = s.apps.GetCurrent(gctx, principalID, track)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		if err != nil {
			return storeErr(err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &dtos.GateView{Track: string(track), Roles: roleStrings(roles)}
	if app != nil {
		view.Status = string(app.Status)
		view.IsProfileComplete = IsProfileComplete(app.Payload)
	}

	switch {
	case !containsAnyRole(roles, track.Role()):
		view.State = string(constants.GateDenied)
	case app == nil:
		view.State = string(constants.GateIncomplete)
	case app.Status == constants.ApplicationPending:
		view.State = string(constants.GatePending)
	case app.Status == constants.ApplicationRejected:
		view.State = string(constants.GateRejected)
	case !view.IsProfileComplete:
		view.State = string(constants.GateIncomplete)
	default:
		view.State = string(constants.GateReady)
	}

	return view, nil
}

// MentorSkills returns the skills published in the mentor's approved application.
func (s *OnboardingService) MentorSkills(ctx context.Context, mentorID string) ([]string, error) {
	app, err := s.apps.GetCurrent(ctx, mentorID, constants.TrackMentor)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, validationErr(constants.MsgMentorNotApproved)
	}
	if err != nil {
		return nil, storeErr(err)
	}
	if app.Status != constants.ApplicationApproved {
		return nil, validationErr(constants.MsgMentorNotApproved)
	}

	var profile struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal([]byte(app.Payload), &profile); err != nil {
		logging.Warn("Mentor payload has no readable skills", "mentor_id", mentorID, "error", err)
		return []string{}, nil
	}
	return common.NormalizeSet(profile.Skills), nil
}

func (s *OnboardingService) GetApplication(ctx context.Context, applicationID string) (*gormModels.OnboardingApplication, error) {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, storeErr(err)
	}
	return app, nil
}

func roleStrings(roles []constants.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}
