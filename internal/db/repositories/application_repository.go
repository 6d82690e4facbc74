package repositories

import (
	"context"
	"fmt"

	"mentorhub/backend/internal/constants"
	gormModels "mentorhub/backend/internal/models/gorm"

	"gorm.io/gorm"
)

// ApplicationRepository persists onboarding applications and their revision history.
type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// GetCurrent returns the current application for (principalID, track)
func (r *ApplicationRepository) GetCurrent(ctx context.Context, principalID string, track constants.Track) (*gormModels.OnboardingApplication, error) {
	var app gormModels.OnboardingApplication

	err := r.db.WithContext(ctx).
		Where("principal_id = ? AND track = ?", principalID, track).
		First(&app).Error

	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("%s application for principal %s: %w", track, principalID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}

	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*gormModels.OnboardingApplication, error) {
	var app gormModels.OnboardingApplication

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&app).Error

	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("application %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}

	return &app, nil
}

// Create inserts the application together with its first revision
func (r *ApplicationRepository) Create(ctx context.Context, app *gormModels.OnboardingApplication, actorID, reason string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app.Revision = 1
		if err := tx.Create(app).Error; err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}
		return tx.Create(revisionOf(app, actorID, reason)).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// Save bumps the revision counter, writes status and payload, and appends a revision row.
func (r *ApplicationRepository) Save(ctx context.Context, app *gormModels.OnboardingApplication, actorID, reason string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app.Revision++
		res := tx.Model(&gormModels.OnboardingApplication{}).
			Where("id = ?", app.ID).
			Updates(map[string]interface{}{
				"status":     app.Status,
				"payload":    app.Payload,
				"revision":   app.Revision,
				"decided_by": app.DecidedBy,
				"decided_at": app.DecidedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("application %s: %w", app.ID, ErrNotFound)
		}
		return tx.Create(revisionOf(app, actorID, reason)).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save application: %w", err)
	}
	return nil
}

// ListRevisions returns the application history, oldest first
func (r *ApplicationRepository) ListRevisions(ctx context.Context, applicationID string) ([]gormModels.ApplicationRevision, error) {
	var revs []gormModels.ApplicationRevision

	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("revision ASC").
		Find(&revs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch application revisions: %w", err)
	}
	return revs, nil
}

// ListByStatus returns applications with the given status, optionally filtered by track
func (r *ApplicationRepository) ListByStatus(ctx context.Context, status constants.ApplicationStatus, track constants.Track) ([]gormModels.OnboardingApplication, error) {
	var apps []gormModels.OnboardingApplication

	q := r.db.WithContext(ctx).Where("status = ?", status)
	if track != "" {
		q = q.Where("track = ?", track)
	}

	if err := q.Order("created_at ASC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func revisionOf(app *gormModels.OnboardingApplication, actorID, reason string) *gormModels.ApplicationRevision {
	return &gormModels.ApplicationRevision{
		ApplicationID: app.ID,
		Revision:      app.Revision,
		Status:        app.Status,
		Payload:       app.Payload,
		ActorID:       actorID,
		Reason:        reason,
	}
}
