package dtos

import (
	"encoding/json"
	"time"

	gormModels "mentorhub/backend/internal/models/gorm"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Code         string `json:"code,omitempty"`
	Data         any    `json:"data,omitempty"`
}

type RegistrationStep struct {
	Name    string `json:"name"`
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type RegistrationResponse struct {
	PrincipalID string             `json:"principal_id"`
	Track       string             `json:"track"`
	Status      bool               `json:"status"`
	Steps       []RegistrationStep `json:"steps"`
}

type PrincipalView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token        string                `json:"token"`
	ExpiresAt    time.Time             `json:"expires_at"`
	Principal    PrincipalView         `json:"principal"`
	Registration *RegistrationResponse `json:"registration,omitempty"`
}

type ApplicationStatusView struct {
	Track             string `json:"track"`
	Status            string `json:"status"`
	IsProfileComplete bool   `json:"is_profile_complete"`
	Revision          int    `json:"revision"`
}

// GateView is the named state a gated dashboard renders
type GateView struct {
	Track             string   `json:"track"`
	State             string   `json:"state"`
	Status            string   `json:"status,omitempty"`
	IsProfileComplete bool     `json:"is_profile_complete"`
	Roles             []string `json:"roles"`
}

type ApplicationView struct {
	ID          string          `json:"id"`
	PrincipalID string          `json:"principal_id"`
	Track       string          `json:"track"`
	Status      string          `json:"status"`
	Payload     json.RawMessage `json:"payload"`
	Revision    int             `json:"revision"`
	DecidedBy   *string         `json:"decided_by,omitempty"`
	DecidedAt   *time.Time      `json:"decided_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewApplicationView(a *gormModels.OnboardingApplication) ApplicationView {
	return ApplicationView{
		ID:          a.ID,
		PrincipalID: a.PrincipalID,
		Track:       string(a.Track),
		Status:      string(a.Status),
		Payload:     rawPayload(a.Payload),
		Revision:    a.Revision,
		DecidedBy:   a.DecidedBy,
		DecidedAt:   a.DecidedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type RevisionView struct {
	Revision  int             `json:"revision"`
	Status    string          `json:"status"`
	Payload   json.RawMessage `json:"payload"`
	ActorID   string          `json:"actor_id"`
	Reason    string          `json:"reason"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewRevisionViews(revs []gormModels.ApplicationRevision) []RevisionView {
	out := make([]RevisionView, 0, len(revs))
	for _, r := range revs {
		out = append(out, RevisionView{
			Revision:  r.Revision,
			Status:    string(r.Status),
			Payload:   rawPayload(r.Payload),
			ActorID:   r.ActorID,
			Reason:    r.Reason,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

func rawPayload(p string) json.RawMessage {
	if p == "" {
		return json.RawMessage("{}")
	}
	return json.RawMessage(p)
}

type MentorshipRequestView struct {
	ID             string     `json:"id"`
	CandidateID    string     `json:"candidate_id"`
	MentorID       string     `json:"mentor_id"`
	Message        string     `json:"message"`
	SelectedSkills []string   `json:"selected_skills"`
	Status         string     `json:"status"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func NewMentorshipRequestView(m *gormModels.MentorshipRequest) MentorshipRequestView {
	skills := []string(m.SelectedSkills)
	if skills == nil {
		skills = []string{}
	}
	return MentorshipRequestView{
		ID:             m.ID,
		CandidateID:    m.CandidateID,
		MentorID:       m.MentorID,
		Message:        m.Message,
		SelectedSkills: skills,
		Status:         string(m.Status),
		DecidedAt:      m.DecidedAt,
		CreatedAt:      m.CreatedAt,
	}
}

type MilestoneView struct {
	ID             string  `json:"id"`
	Order          int     `json:"order"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	EstimatedHours float64 `json:"estimated_hours"`
	Progress       int     `json:"progress"`
	IsCompleted    bool    `json:"is_completed"`
}

type RoadmapView struct {
	ID                  string          `json:"id"`
	MentorID            string          `json:"mentor_id"`
	CandidateID         string          `json:"candidate_id"`
	MentorshipRequestID string          `json:"mentorship_request_id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Skills              []string        `json:"skills"`
	Version             int             `json:"version"`
	Progress            int             `json:"progress"`
	CompletedHours      float64         `json:"completed_hours"`
	TotalHours          float64         `json:"total_hours"`
	CompletedMilestones int             `json:"completed_milestones"`
	Milestones          []MilestoneView `json:"milestones"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type CommentView struct {
	ID          string    `json:"id"`
	MilestoneID string    `json:"milestone_id"`
	UserID      string    `json:"user_id"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCommentView(c *gormModels.MilestoneComment) CommentView {
	return CommentView{
		ID:          c.ID,
		MilestoneID: c.MilestoneID,
		UserID:      c.UserID,
		Comment:     c.Comment,
		CreatedAt:   c.CreatedAt,
	}
}

type CandidateProgressView struct {
	CandidateID         string  `json:"candidate_id"`
	Roadmaps            int     `json:"roadmaps"`
	AverageProgress     int     `json:"average_progress"`
	CompletedHours      float64 `json:"completed_hours"`
	TotalHours          float64 `json:"total_hours"`
	CompletedMilestones int     `json:"completed_milestones"`
	TotalMilestones     int     `json:"total_milestones"`
}

// ProgressPollView answers one mentor poll
type ProgressPollView struct {
	Roadmaps            []RoadmapView `json:"roadmaps"`
	ServerTime          time.Time     `json:"server_time"`
	PollIntervalSeconds int           `json:"poll_interval_seconds"`
}

type RoleAssignmentView struct {
	PrincipalID string    `json:"principal_id"`
	Role        string    `json:"role"`
	GrantedBy   *string   `json:"granted_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewRoleAssignmentView(a *gormModels.RoleAssignment) RoleAssignmentView {
	return RoleAssignmentView{
		PrincipalID: a.PrincipalID,
		Role:        string(a.Role),
		GrantedBy:   a.GrantedBy,
		CreatedAt:   a.CreatedAt,
	}
}
