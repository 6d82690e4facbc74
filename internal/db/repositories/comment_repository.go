package repositories

import (
	"context"
	"fmt"

	gormModels "mentorhub/backend/internal/models/gorm"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *gormModels.MilestoneComment) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// Delete removes a comment of roadmapID; it reports whether a row existed.
func (r *CommentRepository) Delete(ctx context.Context, roadmapID, commentID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND roadmap_id = ?", commentID, roadmapID).
		Delete(&gormModels.MilestoneComment{})

	if res.Error != nil {
		return false, fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListForMilestone returns the thread of one milestone, oldest first
func (r *CommentRepository) ListForMilestone(ctx context.Context, roadmapID, milestoneID string) ([]gormModels.MilestoneComment, error) {
	var comments []gormModels.MilestoneComment

	err := r.db.WithContext(ctx).
		Where("roadmap_id = ? AND milestone_id = ?", roadmapID, milestoneID).
		Order("created_at ASC").
		Find(&comments).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
