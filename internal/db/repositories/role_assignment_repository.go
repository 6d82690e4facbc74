package repositories

import (
	"context"
	"fmt"

	"mentorhub/backend/internal/constants"
	gormModels "mentorhub/backend/internal/models/gorm"

	"gorm.io/gorm"
)

// RoleAssignmentRepository manages principal role rows with GORM
type RoleAssignmentRepository struct {
	db *gorm.DB
}

// NewRoleAssignmentRepository creates a new role assignment repository
func NewRoleAssignmentRepository(db *gorm.DB) *RoleAssignmentRepository {
	return &RoleAssignmentRepository{db: db}
}

// Get retrieves the assignment of role to principalID
func (r *RoleAssignmentRepository) Get(ctx context.Context, principalID string, role constants.Role) (*gormModels.RoleAssignment, error) {
	var ra gormModels.RoleAssignment

	err := r.db.WithContext(ctx).
		Where("principal_id = ? AND role = ?", principalID, role).
		First(&ra).Error

	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("role %s for principal %s: %w", role, principalID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch role assignment: %w", err)
	}

	return &ra, nil
}

func (r *RoleAssignmentRepository) Create(ctx context.Context, ra *gormModels.RoleAssignment) error {
	if err := r.db.WithContext(ctx).Create(ra).Error; err != nil {
		return fmt.Errorf("failed to create role assignment: %w", err)
	}
	return nil
}

// Delete removes the assignment; it reports whether a row existed.
func (r *RoleAssignmentRepository) Delete(ctx context.Context, principalID string, role constants.Role) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("principal_id = ? AND role = ?", principalID, role).
		Delete(&gormModels.RoleAssignment{})

	if res.Error != nil {
		return false, fmt.Errorf("failed to delete role assignment: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListRoles returns the roles held by principalID
func (r *RoleAssignmentRepository) ListRoles(ctx context.Context, principalID string) ([]constants.Role, error) {
	var roles []constants.Role

	err := r.db.WithContext(ctx).
		Model(&gormModels.RoleAssignment{}).
		Where("principal_id = ?", principalID).
		Order("role ASC").
		Pluck("role", &roles).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}
