package services

import (
	"math"
	"sort"
	"strings"

	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/models/dtos"
	gormModels "mentorhub/backend/internal/models/gorm"
)

// RoadmapProgress is derived from milestones on every read and never stored.
type RoadmapProgress struct {
	Progress            int
	CompletedHours      float64
	TotalHours          float64
	CompletedMilestones int
	TotalMilestones     int
}

// ClampProgress bounds p to [0, 100]
func ClampProgress(p int) int {
	if p < constants.MinProgress {
		return constants.MinProgress
	}
	if p > constants.MaxProgress {
		return constants.MaxProgress
	}
	return p
}

// ComputeRoadmapProgress returns round(mean(progress)), the hours weighted by progress and the
// completed milestone count.
func ComputeRoadmapProgress(milestones []gormModels.Milestone) RoadmapProgress {
	var (
		out RoadmapProgress
		sum int
	)
	out.TotalMilestones = len(milestones)
	if len(milestones) == 0 {
		return out
	}

	for _, m := range milestones {
		sum += m.Progress
		out.TotalHours += m.EstimatedHours
		out.CompletedHours += float64(m.Progress) / 100 * m.EstimatedHours
		if m.IsCompleted() {
			out.CompletedMilestones++
		}
	}
	out.Progress = int(math.Round(float64(sum) / float64(len(milestones))))

	return out
}

// AggregateCandidate folds per-roadmap progress into candidate-level metrics
func AggregateCandidate(candidateID string, roadmaps []RoadmapProgress) dtos.CandidateProgressView {
	view := dtos.CandidateProgressView{CandidateID: candidateID, Roadmaps: len(roadmaps)}
	if len(roadmaps) == 0 {
		return view
	}

	sum := 0
	for _, p := range roadmaps {
		sum += p.Progress
		view.CompletedHours += p.CompletedHours
		view.TotalHours += p.TotalHours
		view.CompletedMilestones += p.CompletedMilestones
		view.TotalMilestones += p.TotalMilestones
	}
	view.AverageProgress = int(math.Round(float64(sum) / float64(len(roadmaps))))

	return view
}

func BuildRoadmapView(rm *gormModels.LearningRoadmap) dtos.RoadmapView {
	p := ComputeRoadmapProgress(rm.Milestones)

	milestones := make([]dtos.MilestoneView, 0, len(rm.Milestones))
	for _, m := range rm.Milestones {
		milestones = append(milestones, dtos.MilestoneView{
			ID:             m.ID,
			Order:          m.Position,
			Title:          m.Title,
			Description:    m.Description,
			EstimatedHours: m.EstimatedHours,
			Progress:       m.Progress,
			IsCompleted:    m.IsCompleted(),
		})
	}

	skills := []string(rm.Skills)
	if skills == nil {
		skills = []string{}
	}

	return dtos.RoadmapView{
		ID:                  rm.ID,
		MentorID:            rm.MentorID,
		CandidateID:         rm.CandidateID,
		MentorshipRequestID: rm.MentorshipRequestID,
		Title:               rm.Title,
		Description:         rm.Description,
		Skills:              skills,
		Version:             rm.Version,
		Progress:            p.Progress,
		CompletedHours:      p.CompletedHours,
		TotalHours:          p.TotalHours,
		CompletedMilestones: p.CompletedMilestones,
		Milestones:          milestones,
		CreatedAt:           rm.CreatedAt,
		UpdatedAt:           rm.UpdatedAt,
	}
}

// milestoneDraft is a validated milestone input; progressSet is false when the author sent
// neither progress nor is_completed.
type milestoneDraft struct {
	gormModels.Milestone
	progressSet bool
}

// normalizeMilestones validates authored milestones and returns them in position order.
// Orders must be a permutation of 1..n, or all omitted, in which case list order is used.
func normalizeMilestones(in []dtos.MilestoneInput) ([]milestoneDraft, error) {
	if len(in) == 0 {
		return nil, validationErr(constants.MsgMilestonesRequired)
	}

	withOrder := 0
	for _, m := range in {
		if m.Order != nil {
			withOrder++
		}
	}
	if withOrder != 0 && withOrder != len(in) {
		return nil, validationErr(constants.MsgMilestoneOrder)
	}

	seenOrder := make(map[int]bool, len(in))
	seenID := make(map[string]bool, len(in))
	drafts := make([]milestoneDraft, 0, len(in))

	for i, m := range in {
		position := i + 1
		if m.Order != nil {
			position = *m.Order
			if position < 1 || position > len(in) || seenOrder[position] {
				return nil, validationErr(constants.MsgMilestoneOrder)
			}
		}
		seenOrder[position] = true

		title := strings.TrimSpace(m.Title)
		if title == "" {
			return nil, validationErr("milestone %d needs a title", position)
		}
		if m.EstimatedHours < 0 {
			return nil, validationErr("milestone %d has negative estimated_hours", position)
		}
		if m.ID != "" {
			if seenID[m.ID] {
				return nil, validationErr("milestone %s listed twice", m.ID)
			}
			seenID[m.ID] = true
		}

		d := milestoneDraft{
			Milestone: gormModels.Milestone{
				ID:             m.ID,
				Position:       position,
				Title:          title,
				Description:    strings.TrimSpace(m.Description),
				EstimatedHours: m.EstimatedHours,
			},
		}
		switch {
		case m.Progress != nil:
			d.Progress = ClampProgress(*m.Progress)
			d.progressSet = true
		case m.IsCompleted != nil:
			if *m.IsCompleted {
				d.Progress = constants.MaxProgress
			}
			d.progressSet = true
		}

		drafts = append(drafts, d)
	}

	sort.Slice(drafts, func(i, j int) bool { return drafts[i].Position < drafts[j].Position })
	return drafts, nil
}
