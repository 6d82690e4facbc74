package gorm

import (
	"mentorhub/backend/internal/constants"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OnboardingApplication is the single current row for a (principal, track) pair.
// Every change also appends an ApplicationRevision.
type OnboardingApplication struct {
	ID          string                      `gorm:"column:id;primaryKey;type:uuid"`
	PrincipalID string                      `gorm:"column:principal_id;type:uuid;uniqueIndex:idx_principal_track"`
	Track       constants.Track             `gorm:"column:track;type:varchar(16);uniqueIndex:idx_principal_track"`
	Status      constants.ApplicationStatus `gorm:"column:status;type:varchar(16);index"`
	Payload     string                      `gorm:"column:payload;type:text"`
	Revision    int                         `gorm:"column:revision;default:1"`
	DecidedBy   *string                     `gorm:"column:decided_by;type:uuid"`
	DecidedAt   *time.Time                  `gorm:"column:decided_at"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (OnboardingApplication) TableName() string {
	return "onboarding_applications"
}

func (a *OnboardingApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type ApplicationRevision struct {
	ID            string                      `gorm:"column:id;primaryKey;type:uuid"`
	ApplicationID string                      `gorm:"column:application_id;type:uuid;uniqueIndex:idx_application_revision"`
	Revision      int                         `gorm:"column:revision;uniqueIndex:idx_application_revision"`
	Status        constants.ApplicationStatus `gorm:"column:status;type:varchar(16)"`
	Payload       string                      `gorm:"column:payload;type:text"`
	ActorID       string                      `gorm:"column:actor_id;type:uuid"`
	Reason        string                      `gorm:"column:reason"`
	CreatedAt     time.Time                   `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ApplicationRevision) TableName() string {
	return "application_revisions"
}

func (r *ApplicationRevision) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
