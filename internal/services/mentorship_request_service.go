package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/db/repositories"
	"mentorhub/backend/internal/logging"
	"mentorhub/backend/internal/metrics"
	gormModels "mentorhub/backend/internal/models/gorm"
)

// MentorshipRequestService is the candidate -> mentor request ledger
type MentorshipRequestService struct {
	requests   *repositories.MentorshipRequestRepository
	roles      *RoleRegistryService
	onboarding *OnboardingService
	events     common.EventPublisher
	metrics    *metrics.MetricsRegistry
}

func NewMentorshipRequestService(
	requests *repositories.MentorshipRequestRepository,
	roles *RoleRegistryService,
	onboarding *OnboardingService,
	events common.EventPublisher,
	m *metrics.MetricsRegistry,
) *MentorshipRequestService {
	return &MentorshipRequestService{
		requests:   requests,
		roles:      roles,
		onboarding: onboarding,
		events:     events,
		metrics:    m,
	}
}

// Create files a pending request. Any earlier request for the pair, whatever its status, blocks a new one.
func (s *MentorshipRequestService) Create(ctx context.Context, candidateID, mentorID, message string, selectedSkills []string) (*gormModels.MentorshipRequest, error) {
	mentorID = strings.TrimSpace(mentorID)
	if mentorID == "" {
		return nil, validationErr("mentor_id is required")
	}
	if candidateID == mentorID {
		return nil, validationErr("cannot request mentorship from yourself")
	}

	skills := common.NormalizeSet(selectedSkills)
	if len(skills) == 0 {
		return nil, validationErr(constants.MsgSkillsRequired)
	}

	isCandidate, err := s.roles.HasAnyRole(ctx, candidateID, constants.RoleCandidate)
	if err != nil {
		return nil, err
	}
	if !isCandidate {
		return nil, deniedErr("candidate role required")
	}

	if _, err := s.requests.GetByPair(ctx, candidateID, mentorID); err == nil {
		return nil, newError(KindDuplicateRequest, constants.MsgDuplicateRequest, nil)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storeErr(err)
	}

	isMentor, err := s.roles.HasAnyRole(ctx, mentorID, constants.RoleMentor)
	if err != nil {
		return nil, err
	}
	if !isMentor {
		return nil, newError(KindNotFound, "mentor not found", nil)
	}

	offered, err := s.onboarding.MentorSkills(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	offeredSet := gormModels.StringList(offered)
	for _, skill := range skills {
		if !offeredSet.Contains(skill) {
			return nil, validationErr("%s: %s", constants.MsgSkillNotOffered, skill)
		}
	}

	req := &gormModels.MentorshipRequest{
		CandidateID:    candidateID,
		MentorID:       mentorID,
		Message:        strings.TrimSpace(message),
		SelectedSkills: gormModels.StringList(skills),
		Status:         constants.RequestPending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		if _, getErr := s.requests.GetByPair(ctx, candidateID, mentorID); getErr == nil {
			return nil, newError(KindDuplicateRequest, constants.MsgDuplicateRequest, nil)
		}
		return nil, storeErr(err)
	}

	s.metrics.RequestTransitions.WithLabelValues(string(constants.RequestPending)).Inc()
	publish(ctx, s.events, constants.EventRequestCreated, candidateID, req.ID, map[string]interface{}{
		"mentor_id": mentorID,
		"skills":    skills,
	})
	logging.Info("Mentorship request created", "request_id", req.ID, "candidate_id", candidateID, "mentor_id", mentorID)

	return req, nil
}

// Decide lets the addressed mentor accept or reject. Repeating the current decision is a no-op;
// a different decision replaces the earlier one.
func (s *MentorshipRequestService) Decide(ctx context.Context, mentorID, requestID string, decision constants.RequestStatus) (*gormModels.MentorshipRequest, error) {
	if !decision.IsDecision() {
		return nil, validationErr("decision must be accepted or rejected, got %q", decision)
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, storeErr(err)
	}
	if req.MentorID != mentorID {
		return nil, deniedErr("only the addressed mentor can decide this request")
	}
	if req.Status == constants.RequestCancelled {
		return nil, newError(KindConflict, "request was cancelled by the candidate", nil)
	}
	if req.Status == decision {
		return req, nil
	}

	previous := req.Status
	now := time.Now()
	if err := s.requests.UpdateStatus(ctx, req.ID, decision, &now); err != nil {
		return nil, storeErr(err)
	}
	req.Status = decision
	req.DecidedAt = &now

	if previous.IsDecision() {
		logging.Warn("Mentorship request decision overwritten",
			"request_id", req.ID, "from", previous, "to", decision, "mentor_id", mentorID)
		s.metrics.DecisionOverwrites.WithLabelValues("mentorship_request").Inc()
	}
	s.metrics.RequestTransitions.WithLabelValues(string(decision)).Inc()
	publish(ctx, s.events, constants.EventRequestDecided, mentorID, req.ID, map[string]interface{}{
		"candidate_id": req.CandidateID,
		"status":       decision,
		"previous":     previous,
	})

	return req, nil
}

// Cancel withdraws a pending request on behalf of its candidate. The pair stays blocked.
func (s *MentorshipRequestService) Cancel(ctx context.Context, candidateID, requestID string) (*gormModels.MentorshipRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, storeErr(err)
	}
	if req.CandidateID != candidateID {
		return nil, deniedErr("only the requesting candidate can cancel this request")
	}
	if req.Status == constants.RequestCancelled {
		return req, nil
	}
	if req.Status != constants.RequestPending {
		return nil, newError(KindConflict, "only pending requests can be cancelled", nil)
	}

	now := time.Now()
	if err := s.requests.UpdateStatus(ctx, req.ID, constants.RequestCancelled, &now); err != nil {
		return nil, storeErr(err)
	}
	req.Status = constants.RequestCancelled
	req.DecidedAt = &now

	s.metrics.RequestTransitions.WithLabelValues(string(constants.RequestCancelled)).Inc()
	publish(ctx, s.events, constants.EventRequestCancelled, candidateID, req.ID, map[string]interface{}{
		"mentor_id": req.MentorID,
	})

	return req, nil
}

// Get returns a request visible to its candidate, its mentor or an admin
func (s *MentorshipRequestService) Get(ctx context.Context, principalID, requestID string) (*gormModels.MentorshipRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, storeErr(err)
	}
	if req.CandidateID == principalID || req.MentorID == principalID {
		return req, nil
	}

	isAdmin, err := s.roles.HasAnyRole(ctx, principalID, constants.RoleAdmin, constants.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, deniedErr("not a party to this request")
	}
	return req, nil
}

func (s *MentorshipRequestService) ListForCandidate(ctx context.Context, candidateID string) ([]gormModels.MentorshipRequest, error) {
	reqs, err := s.requests.ListForCandidate(ctx, candidateID)
	if err != nil {
		return nil, storeErr(err)
	}
	return reqs, nil
}

func (s *MentorshipRequestService) ListForMentor(ctx context.Context, mentorID string, status constants.RequestStatus) ([]gormModels.MentorshipRequest, error) {
	reqs, err := s.requests.ListForMentor(ctx, mentorID, status)
	if err != nil {
		return nil, storeErr(err)
	}
	return reqs, nil
}

// IsAcceptedPair reports whether requestID links mentorID and candidateID and is accepted.
// It is the only condition under which a roadmap may be created.
func (s *MentorshipRequestService) IsAcceptedPair(ctx context.Context, mentorID, candidateID, requestID string) (bool, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeErr(err)
	}

	return req.MentorID == mentorID &&
		req.CandidateID == candidateID &&
		req.Status == constants.RequestAccepted, nil
}
