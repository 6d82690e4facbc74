package repositories

import (
	"context"
	"fmt"
	"time"

	"mentorhub/backend/internal/constants"
	gormModels "mentorhub/backend/internal/models/gorm"

	"gorm.io/gorm"
)

type MentorshipRequestRepository struct {
	db *gorm.DB
}

func NewMentorshipRequestRepository(db *gorm.DB) *MentorshipRequestRepository {
	return &MentorshipRequestRepository{db: db}
}

func (r *MentorshipRequestRepository) GetByID(ctx context.Context, id string) (*gormModels.MentorshipRequest, error) {
	var req gormModels.MentorshipRequest

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&req).Error

	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("mentorship request %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch mentorship request: %w", err)
	}
	return &req, nil
}

// GetByPair returns the request between candidateID and mentorID in any status
func (r *MentorshipRequestRepository) GetByPair(ctx context.Context, candidateID, mentorID string) (*gormModels.MentorshipRequest, error) {
	var req gormModels.MentorshipRequest

	err := r.db.WithContext(ctx).
		Where("candidate_id = ? AND mentor_id = ?", candidateID, mentorID).
		First(&req).Error

	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("mentorship request %s->%s: %w", candidateID, mentorID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch mentorship request: %w", err)
	}
	return &req, nil
}

func (r *MentorshipRequestRepository) Create(ctx context.Context, req *gormModels.MentorshipRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create mentorship request: %w", err)
	}
	return nil
}

func (r *MentorshipRequestRepository) UpdateStatus(ctx context.Context, id string, status constants.RequestStatus, decidedAt *time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.MentorshipRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_at": decidedAt,
		})

	if res.Error != nil {
		return fmt.Errorf("failed to update mentorship request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("mentorship request %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *MentorshipRequestRepository) ListForCandidate(ctx context.Context, candidateID string) ([]gormModels.MentorshipRequest, error) {
	var reqs []gormModels.MentorshipRequest

	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Find(&reqs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list mentorship requests: %w", err)
	}
	return reqs, nil
}

// ListForMentor returns requests addressed to mentorID, optionally filtered by status
func (r *MentorshipRequestRepository) ListForMentor(ctx context.Context, mentorID string, status constants.RequestStatus) ([]gormModels.MentorshipRequest, error) {
	var reqs []gormModels.MentorshipRequest

	q := r.db.WithContext(ctx).Where("mentor_id = ?", mentorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list mentorship requests: %w", err)
	}
	return reqs, nil
}
