package gorm

import (
	"mentorhub/backend/internal/constants"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MentorshipRequest struct {
	ID             string                  `gorm:"column:id;primaryKey;type:uuid"`
	CandidateID    string                  `gorm:"column:candidate_id;type:uuid;uniqueIndex:idx_request_pair"`
	MentorID       string                  `gorm:"column:mentor_id;type:uuid;uniqueIndex:idx_request_pair;index"`
	Message        string                  `gorm:"column:message;type:text"`
	SelectedSkills StringList              `gorm:"column:selected_skills;type:text"`
	Status         constants.RequestStatus `gorm:"column:status;type:varchar(16);index"`
	DecidedAt      *time.Time              `gorm:"column:decided_at"`
	CreatedAt      time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MentorshipRequest) TableName() string {
	return "mentorship_requests"
}

func (m *MentorshipRequest) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
