package dtos

type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Track       string `json:"track"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

type RegisterRequest struct {
	Track       string `json:"track"`
	DisplayName string `json:"display_name"`
}

// ApplicationPayloadRequest carries a free-form onboarding profile
type ApplicationPayloadRequest struct {
	Payload map[string]interface{} `json:"payload"`
}

type DecisionRequest struct {
	Decision string `json:"decision"`
}

type RoleChangeRequest struct {
	PrincipalID string `json:"principal_id"`
	Role        string `json:"role"`
}

type CreateMentorshipRequest struct {
	MentorID       string   `json:"mentor_id"`
	Message        string   `json:"message"`
	SelectedSkills []string `json:"selected_skills"`
}

// MilestoneInput is a mentor-authored milestone. Order is 1-based; when every
// milestone omits it the list order is used. IsCompleted without Progress means 100.
type MilestoneInput struct {
	ID             string  `json:"id,omitempty"`
	Order          *int    `json:"order,omitempty"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	EstimatedHours float64 `json:"estimated_hours"`
	Progress       *int    `json:"progress,omitempty"`
	IsCompleted    *bool   `json:"is_completed,omitempty"`
}

type CreateRoadmapRequest struct {
	CandidateID         string           `json:"candidate_id"`
	MentorshipRequestID string           `json:"mentorship_request_id"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	Skills              []string         `json:"skills"`
	Milestones          []MilestoneInput `json:"milestones"`
}

type UpdateRoadmapRequest struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Skills          []string         `json:"skills"`
	Milestones      []MilestoneInput `json:"milestones"`
	ExpectedVersion *int             `json:"expected_version,omitempty"`
}

type ProgressUpdateRequest struct {
	Progress        *int `json:"progress"`
	ExpectedVersion *int `json:"expected_version,omitempty"`
}

type CommentRequest struct {
	Comment string `json:"comment"`
}
