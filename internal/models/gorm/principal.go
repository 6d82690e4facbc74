package gorm

import (
	"mentorhub/backend/internal/constants"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Principal struct {
	ID           string    `gorm:"column:id;primaryKey;type:uuid"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	DisplayName  string    `gorm:"column:display_name"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Roles []RoleAssignment `gorm:"foreignKey:PrincipalID"`
}

// TableName specifies the table name for GORM
func (Principal) TableName() string {
	return "principals"
}

func (p *Principal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type RoleAssignment struct {
	ID          string         `gorm:"column:id;primaryKey;type:uuid"`
	PrincipalID string         `gorm:"column:principal_id;type:uuid;uniqueIndex:idx_principal_role"`
	Role        constants.Role `gorm:"column:role;type:varchar(32);uniqueIndex:idx_principal_role"`
	GrantedBy   *string        `gorm:"column:granted_by;type:uuid"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (RoleAssignment) TableName() string {
	return "role_assignments"
}

func (r *RoleAssignment) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
