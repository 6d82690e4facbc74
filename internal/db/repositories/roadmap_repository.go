package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	gormModels "mentorhub/backend/internal/models/gorm"

	"gorm.io/gorm"
)

// RoadmapRepository persists roadmaps with their milestones. Every write bumps the roadmap version.
type RoadmapRepository struct {
	db *gorm.DB
}

func NewRoadmapRepository(db *gorm.DB) *RoadmapRepository {
	return &RoadmapRepository{db: db}
}

func orderedMilestones(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the roadmap and its milestones in one transaction
func (r *RoadmapRepository) Create(ctx context.Context, rm *gormModels.LearningRoadmap) error {
	rm.Version = 1
	if err := r.db.WithContext(ctx).Create(rm).Error; err != nil {
		return fmt.Errorf("failed to create roadmap: %w", err)
	}
	return nil
}

func (r *RoadmapRepository) GetByID(ctx context.Context, id string) (*gormModels.LearningRoadmap, error) {
	var rm gormModels.LearningRoadmap

	err := r.db.WithContext(ctx).
		Preload("Milestones", orderedMilestones).
		Where("id = ?", id).
		First(&rm).Error

	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("roadmap %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch roadmap: %w", err)
	}
	return &rm, nil
}

func (r *RoadmapRepository) ListForCandidate(ctx context.Context, candidateID string) ([]gormModels.LearningRoadmap, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("candidate_id = ?", candidateID))
}

func (r *RoadmapRepository) ListForMentor(ctx context.Context, mentorID string) ([]gormModels.LearningRoadmap, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("mentor_id = ?", mentorID))
}

// ListUpdatedSince returns the mentor's roadmaps touched after since
func (r *RoadmapRepository) ListUpdatedSince(ctx context.Context, mentorID string, since time.Time) ([]gormModels.LearningRoadmap, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("mentor_id = ? AND updated_at > ?", mentorID, since))
}

func (r *RoadmapRepository) list(_ context.Context, q *gorm.DB) ([]gormModels.LearningRoadmap, error) {
	var rms []gormModels.LearningRoadmap

	err := q.Preload("Milestones", orderedMilestones).
		Order("updated_at DESC").
		Find(&rms).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list roadmaps: %w", err)
	}
	return rms, nil
}

// UpdateMilestoneProgress writes progress for one milestone and returns the new roadmap version.
// When expectedVersion is set and stale the write is rejected with ErrVersionConflict.
func (r *RoadmapRepository) UpdateMilestoneProgress(ctx context.Context, roadmapID, milestoneID string, progress int, expectedVersion *int) (int, error) {
	var version int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&gormModels.Milestone{}).
			Where("id = ? AND roadmap_id = ?", milestoneID, roadmapID).
			Update("progress", progress)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("milestone %s: %w", milestoneID, ErrNotFound)
		}

		v, err := bumpVersion(tx, roadmapID, expectedVersion, nil)
		version = v
		return err
	})

	if err != nil {
		return 0, wrapWriteErr("failed to update milestone progress", err)
	}
	return version, nil
}

// Replace rewrites roadmap metadata and its milestone list. Milestones whose id already belongs
// to the roadmap are updated in place; the rest are inserted. Milestones missing from rm are
// deleted together with their comments. It returns the ids of removed milestones.
func (r *RoadmapRepository) Replace(ctx context.Context, rm *gormModels.LearningRoadmap, expectedVersion *int) ([]string, error) {
	var removed []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := bumpVersion(tx, rm.ID, expectedVersion, map[string]interface{}{
			"title":       rm.Title,
			"description": rm.Description,
			"skills":      rm.Skills,
		})
		if err != nil {
			return err
		}
		rm.Version = v

		var existing []string
		if err := tx.Model(&gormModels.Milestone{}).
			Where("roadmap_id = ?", rm.ID).
			Pluck("id", &existing).Error; err != nil {
			return err
		}

		owned := make(map[string]bool, len(existing))
		for _, id := range existing {
			owned[id] = true
		}

		kept := make(map[string]bool, len(rm.Milestones))
		for i := range rm.Milestones {
			m := &rm.Milestones[i]
			m.RoadmapID = rm.ID

			if m.ID != "" && owned[m.ID] {
				kept[m.ID] = true
				if err := tx.Model(&gormModels.Milestone{}).
					Where("id = ?", m.ID).
					Updates(map[string]interface{}{
						"position":        m.Position,
						"title":           m.Title,
						"description":     m.Description,
						"estimated_hours": m.EstimatedHours,
						"progress":        m.Progress,
					}).Error; err != nil {
					return err
				}
				continue
			}

			m.ID = ""
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}

		for _, id := range existing {
			if !kept[id] {
				removed = append(removed, id)
			}
		}
		if len(removed) == 0 {
			return nil
		}

		if err := tx.Where("milestone_id IN ?", removed).Delete(&gormModels.MilestoneComment{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", removed).Delete(&gormModels.Milestone{}).Error
	})

	if err != nil {
		return nil, wrapWriteErr("failed to replace roadmap", err)
	}
	return removed, nil
}

// bumpVersion increments the roadmap version, applying extra column updates in the same statement.
func bumpVersion(tx *gorm.DB, roadmapID string, expectedVersion *int, extra map[string]interface{}) (int, error) {
	updates := map[string]interface{}{
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now(),
	}
	for k, v := range extra {
		updates[k] = v
	}

	q := tx.Model(&gormModels.LearningRoadmap{}).Where("id = ?", roadmapID)
	if expectedVersion != nil {
		q = q.Where("version = ?", *expectedVersion)
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}

	var current gormModels.LearningRoadmap
	err := tx.Select("version").Where("id = ?", roadmapID).First(&current).Error
	if err != nil {
		if notFound(err) {
			return 0, fmt.Errorf("roadmap %s: %w", roadmapID, ErrNotFound)
		}
		return 0, err
	}

	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("roadmap %s at version %d: %w", roadmapID, current.Version, ErrVersionConflict)
	}
	return current.Version, nil
}

func wrapWriteErr(msg string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrVersionConflict) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
