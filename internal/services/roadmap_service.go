package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
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

// milestoneIndexPrefix marks a positional milestone reference ("index:2" is the third milestone
// in the current order).
const milestoneIndexPrefix = "index:"

// RoadmapService owns roadmaps, their milestones and milestone comments
type RoadmapService struct {
	roadmaps     *repositories.RoadmapRepository
	comments     *repositories.CommentRepository
	requests     *MentorshipRequestService
	roles        *RoleRegistryService
	events       common.EventPublisher
	metrics      *metrics.MetricsRegistry
	pollInterval time.Duration
}

func NewRoadmapService(
	roadmaps *repositories.RoadmapRepository,
	comments *repositories.CommentRepository,
	requests *MentorshipRequestService,
	roles *RoleRegistryService,
	events common.EventPublisher,
	m *metrics.MetricsRegistry,
	pollInterval time.Duration,
) *RoadmapService {
	return &RoadmapService{
		roadmaps:     roadmaps,
		comments:     comments,
		requests:     requests,
		roles:        roles,
		events:       events,
		metrics:      m,
		pollInterval: pollInterval,
	}
}

// Create stores a mentor-authored roadmap for an accepted mentorship request
func (s *RoadmapService) Create(ctx context.Context, mentorID string, in dtos.CreateRoadmapRequest) (*dtos.RoadmapView, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationErr("title is required")
	}
	if in.CandidateID == "" || in.MentorshipRequestID == "" {
		return nil, validationErr("candidate_id and mentorship_request_id are required")
	}

	drafts, err := normalizeMilestones(in.Milestones)
	if err != nil {
		return nil, err
	}

	accepted, err := s.requests.IsAcceptedPair(ctx, mentorID, in.CandidateID, in.MentorshipRequestID)
	if err != nil {
		return nil, err
	}
	if !accepted {
		return nil, newError(KindAuthorizationDenied, constants.MsgRequestNotAccepted, nil)
	}

	rm := &gormModels.LearningRoadmap{
		MentorID:            mentorID,
		CandidateID:         in.CandidateID,
		MentorshipRequestID: in.MentorshipRequestID,
		Title:               title,
		Description:         strings.TrimSpace(in.Description),
		Skills:              gormModels.StringList(common.NormalizeSet(in.Skills)),
	}
	for _, d := range drafts {
		m := d.Milestone
		m.ID = ""
		rm.Milestones = append(rm.Milestones, m)
	}

	if err := s.roadmaps.Create(ctx, rm); err != nil {
		return nil, storeErr(err)
	}

	logging.Info("Roadmap created", "roadmap_id", rm.ID, "mentor_id", mentorID, "candidate_id", in.CandidateID)
	publish(ctx, s.events, constants.EventRoadmapCreated, mentorID, rm.ID, map[string]interface{}{
		"candidate_id": in.CandidateID,
		"milestones":   len(rm.Milestones),
	})

	view := BuildRoadmapView(rm)
	return &view, nil
}

// Get returns the roadmap with its derived progress
func (s *RoadmapService) Get(ctx context.Context, principalID, roadmapID string) (*dtos.RoadmapView, error) {
	rm, err := s.load(ctx, principalID, roadmapID)
	if err != nil {
		return nil, err
	}
	view := BuildRoadmapView(rm)
	return &view, nil
}

// ListForPrincipal returns roadmaps where principalID is the mentor or the candidate
func (s *RoadmapService) ListForPrincipal(ctx context.Context, principalID string) ([]dtos.RoadmapView, error) {
	var asCandidate, asMentor []gormModels.LearningRoadmap

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		asCandidate, err = s.roadmaps.ListForCandidate(gctx, principalID)
		return err
	})
	g.Go(func() error {
		var err error
		asMentor, err = s.roadmaps.ListForMentor(gctx, principalID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storeErr(err)
	}

	views := make([]dtos.RoadmapView, 0, len(asCandidate)+len(asMentor))
	seen := make(map[string]bool, cap(views))
	for _, list := range [][]gormModels.LearningRoadmap{asMentor, asCandidate} {
		for i := range list {
			if seen[list[i].ID] {
				continue
			}
			seen[list[i].ID] = true
			views = append(views, BuildRoadmapView(&list[i]))
		}
	}
	return views, nil
}

// Update lets the roadmap's mentor rewrite metadata and milestones. Milestones sent with their
// id keep their comments, and their progress unless new progress is given.
func (s *RoadmapService) Update(ctx context.Context, mentorID, roadmapID string, in dtos.UpdateRoadmapRequest) (*dtos.RoadmapView, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationErr("title is required")
	}

	drafts, err := normalizeMilestones(in.Milestones)
	if err != nil {
		return nil, err
	}

	rm, err := s.roadmaps.GetByID(ctx, roadmapID)
	if err != nil {
		return nil, storeErr(err)
	}
	if rm.MentorID != mentorID {
		return nil, deniedErr("only the roadmap's mentor can edit it")
	}

	current := make(map[string]gormModels.Milestone, len(rm.Milestones))
	for _, m := range rm.Milestones {
		current[m.ID] = m
	}

	milestones := make([]gormModels.Milestone, 0, len(drafts))
	for _, d := range drafts {
		m := d.Milestone
		if m.ID != "" {
			existing, ok := current[m.ID]
			if !ok {
				return nil, validationErr("milestone %s does not belong to this roadmap", m.ID)
			}
			// progress on a kept milestone belongs to the candidate
			m.Progress = existing.Progress
		}
		milestones = append(milestones, m)
	}

	rm.Title = title
	rm.Description = strings.TrimSpace(in.Description)
	rm.Skills = gormModels.StringList(common.NormalizeSet(in.Skills))
	rm.Milestones = milestones

	removed, err := s.roadmaps.Replace(ctx, rm, in.ExpectedVersion)
	if err != nil {
		return nil, s.writeErr(err)
	}

	if len(removed) > 0 {
		logging.Info("Roadmap milestones removed", "roadmap_id", rm.ID, "milestone_ids", removed)
	}
	publish(ctx, s.events, constants.EventRoadmapUpdated, mentorID, rm.ID, map[string]interface{}{
		"version": rm.Version,
		"removed": removed,
	})

	return s.Get(ctx, mentorID, rm.ID)
}

// UpdateMilestoneProgress records the candidate's progress on one milestone, clamped to [0, 100].
// milestoneRef is a milestone id or "index:N".
func (s *RoadmapService) UpdateMilestoneProgress(ctx context.Context, candidateID, roadmapID, milestoneRef string, progress int, expectedVersion *int) (*dtos.RoadmapView, error) {
	rm, err := s.roadmaps.GetByID(ctx, roadmapID)
	if err != nil {
		return nil, storeErr(err)
	}
	if rm.CandidateID != candidateID {
		return nil, deniedErr("only the roadmap's candidate can update progress")
	}

	milestone, err := resolveMilestone(rm, milestoneRef)
	if err != nil {
		return nil, err
	}

	clamped := ClampProgress(progress)
	version, err := s.roadmaps.UpdateMilestoneProgress(ctx, rm.ID, milestone.ID, clamped, expectedVersion)
	if err != nil {
		return nil, s.writeErr(err)
	}

	s.metrics.MilestoneUpdatesTotal.Inc()
	publish(ctx, s.events, constants.EventMilestoneProgress, candidateID, rm.ID, map[string]interface{}{
		"milestone_id": milestone.ID,
		"progress":     clamped,
		"version":      version,
	})

	return s.Get(ctx, candidateID, rm.ID)
}

func (s *RoadmapService) AddComment(ctx context.Context, principalID, roadmapID, milestoneRef, comment string) (*gormModels.MilestoneComment, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, validationErr("comment is required")
	}

	rm, err := s.load(ctx, principalID, roadmapID)
	if err != nil {
		return nil, err
	}
	milestone, err := resolveMilestone(rm, milestoneRef)
	if err != nil {
		return nil, err
	}

	c := &gormModels.MilestoneComment{
		RoadmapID:   rm.ID,
		MilestoneID: milestone.ID,
		UserID:      principalID,
		Comment:     comment,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, storeErr(err)
	}
	return c, nil
}

// DeleteComment removes a comment; anyone with access to the roadmap may delete any comment.
func (s *RoadmapService) DeleteComment(ctx context.Context, principalID, roadmapID, commentID string) error {
	if _, err := s.load(ctx, principalID, roadmapID); err != nil {
		return err
	}

	existed, err := s.comments.Delete(ctx, roadmapID, commentID)
	if err != nil {
		return storeErr(err)
	}
	if !existed {
		return newError(KindNotFound, fmt.Sprintf("comment %s not found", commentID), nil)
	}
	return nil
}

func (s *RoadmapService) ListComments(ctx context.Context, principalID, roadmapID, milestoneRef string) ([]gormModels.MilestoneComment, error) {
	rm, err := s.load(ctx, principalID, roadmapID)
	if err != nil {
		return nil, err
	}
	milestone, err := resolveMilestone(rm, milestoneRef)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListForMilestone(ctx, rm.ID, milestone.ID)
	if err != nil {
		return nil, storeErr(err)
	}
	return comments, nil
}

// CandidateProgress aggregates progress across every roadmap of the candidate
func (s *RoadmapService) CandidateProgress(ctx context.Context, candidateID string) (*dtos.CandidateProgressView, error) {
	rms, err := s.roadmaps.ListForCandidate(ctx, candidateID)
	if err != nil {
		return nil, storeErr(err)
	}

	results := make([]RoadmapProgress, len(rms))
	for i := range rms {
		results[i] = ComputeRoadmapProgress(rms[i].Milestones)
	}

	view := AggregateCandidate(candidateID, results)
	return &view, nil
}

// ProgressSince serves the mentor polling loop: roadmaps changed after since, with the
// interval the client should wait before asking again.
func (s *RoadmapService) ProgressSince(ctx context.Context, mentorID string, since time.Time) (*dtos.ProgressPollView, error) {
	now := time.Now()

	rms, err := s.roadmaps.ListUpdatedSince(ctx, mentorID, since)
	if err != nil {
		return nil, storeErr(err)
	}

	views := make([]dtos.RoadmapView, 0, len(rms))
	for i := range rms {
		views = append(views, BuildRoadmapView(&rms[i]))
	}

	return &dtos.ProgressPollView{
		Roadmaps:            views,
		ServerTime:          now,
		PollIntervalSeconds: int(s.pollInterval / time.Second),
	}, nil
}

// load fetches a roadmap readable by principalID: its mentor, its candidate or an admin.
func (s *RoadmapService) load(ctx context.Context, principalID, roadmapID string) (*gormModels.LearningRoadmap, error) {
	rm, err := s.roadmaps.GetByID(ctx, roadmapID)
	if err != nil {
		return nil, storeErr(err)
	}
	if rm.MentorID == principalID || rm.CandidateID == principalID {
		return rm, nil
	}

	isAdmin, err := s.roles.HasAnyRole(ctx, principalID, constants.RoleAdmin, constants.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, deniedErr("no access to this roadmap")
	}
	return rm, nil
}

func (s *RoadmapService) writeErr(err error) error {
	if errors.Is(err, repositories.ErrVersionConflict) {
		s.metrics.VersionConflictsTotal.Inc()
	}
	return storeErr(err)
}

// resolveMilestone maps a milestone id or "index:N" (0-based, current order) to a milestone.
func resolveMilestone(rm *gormModels.LearningRoadmap, ref string) (*gormModels.Milestone, error) {
	if strings.HasPrefix(ref, milestoneIndexPrefix) {
		idx, err := strconv.Atoi(strings.TrimPrefix(ref, milestoneIndexPrefix))
		if err != nil || idx < 0 || idx >= len(rm.Milestones) {
			return nil, newError(KindNotFound, fmt.Sprintf("milestone %s not found", ref), nil)
		}
		return &rm.Milestones[idx], nil
	}

	for i := range rm.Milestones {
		if rm.Milestones[i].ID == ref {
			return &rm.Milestones[i], nil
		}
	}
	return nil, newError(KindNotFound, fmt.Sprintf("milestone %s not found", ref), nil)
}
