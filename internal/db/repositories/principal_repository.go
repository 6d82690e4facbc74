package repositories

import (
	"context"
	"fmt"

	gormModels "mentorhub/backend/internal/models/gorm"

	"gorm.io/gorm"
)

type PrincipalRepository struct {
	db *gorm.DB
}

// NewPrincipalRepository creates a new GORM-based principal repository
func NewPrincipalRepository(db *gorm.DB) *PrincipalRepository {
	return &PrincipalRepository{db: db}
}

func (r *PrincipalRepository) Create(ctx context.Context, p *gormModels.Principal) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create principal: %w", err)
	}
	return nil
}

func (r *PrincipalRepository) GetByID(ctx context.Context, id string) (*gormModels.Principal, error) {
	var p gormModels.Principal

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error

	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("principal %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch principal: %w", err)
	}

	return &p, nil
}

func (r *PrincipalRepository) GetByEmail(ctx context.Context, email string) (*gormModels.Principal, error) {
	var p gormModels.Principal

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&p).Error

	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("principal with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch principal: %w", err)
	}

	return &p, nil
}

// UpdateDisplayName changes the owner-editable display field.
func (r *PrincipalRepository) UpdateDisplayName(ctx context.Context, id, displayName string) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Principal{}).
		Where("id = ?", id).
		Update("display_name", displayName)

	if res.Error != nil {
		return fmt.Errorf("failed to update principal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("principal %s: %w", id, ErrNotFound)
	}
	return nil
}
