package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearningRoadmap struct {
	ID                  string     `gorm:"column:id;primaryKey;type:uuid"`
	MentorID            string     `gorm:"column:mentor_id;type:uuid;index"`
	CandidateID         string     `gorm:"column:candidate_id;type:uuid;index"`
	MentorshipRequestID string     `gorm:"column:mentorship_request_id;type:uuid;index"`
	Title               string     `gorm:"column:title"`
	Description         string     `gorm:"column:description;type:text"`
	Skills              StringList `gorm:"column:skills;type:text"`
	Version             int        `gorm:"column:version;default:1"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime;index"`

	// Relationships
	Milestones []Milestone `gorm:"foreignKey:RoadmapID"`
}

// TableName specifies the table name for GORM
func (LearningRoadmap) TableName() string {
	return "learning_roadmaps"
}

func (r *LearningRoadmap) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Milestone is one step of a roadmap. Completion is derived from Progress, never stored.
type Milestone struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid"`
	RoadmapID      string    `gorm:"column:roadmap_id;type:uuid;index"`
	Position       int       `gorm:"column:position"`
	Title          string    `gorm:"column:title"`
	Description    string    `gorm:"column:description;type:text"`
	EstimatedHours float64   `gorm:"column:estimated_hours"`
	Progress       int       `gorm:"column:progress;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Milestone) TableName() string {
	return "roadmap_milestones"
}

func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// IsCompleted reports whether the milestone reached full progress.
func (m Milestone) IsCompleted() bool {
	return m.Progress >= 100
}

type MilestoneComment struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid"`
	RoadmapID   string    `gorm:"column:roadmap_id;type:uuid;index:idx_comment_milestone"`
	MilestoneID string    `gorm:"column:milestone_id;type:uuid;index:idx_comment_milestone"`
	UserID      string    `gorm:"column:user_id;type:uuid"`
	Comment     string    `gorm:"column:comment;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (MilestoneComment) TableName() string {
	return "milestone_comments"
}

func (c *MilestoneComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
