package constants

// Error codes returned in API error envelopes
const (
	ErrCodeAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	ErrCodeAuthorizationDenied    = "AUTHORIZATION_DENIED"
	ErrCodeValidationFailed       = "VALIDATION_FAILED"
	ErrCodeDuplicateRequest       = "DUPLICATE_REQUEST"
	ErrCodeNotFound               = "NOT_FOUND"
	ErrCodeStoreUnavailable       = "STORE_UNAVAILABLE"
	ErrCodeAssignmentFailed       = "ASSIGNMENT_FAILED"
	ErrCodeConflict               = "CONFLICT"
)

var ErrorMessages = map[string]string{
	ErrCodeAuthenticationRequired: "You need to sign in first",
	ErrCodeAuthorizationDenied:    "You are not allowed to do that",
	ErrCodeValidationFailed:       "Some of the submitted fields are invalid",
	ErrCodeDuplicateRequest:       "This already exists",
	ErrCodeNotFound:               "The requested record was not found",
	ErrCodeStoreUnavailable:       "The data store is unavailable. Please try again",
	ErrCodeAssignmentFailed:       "The role could not be assigned. Please try again",
	ErrCodeConflict:               "Someone else changed this in the meantime. Reload and retry",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := ErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}

const (
	MsgSkillsRequired      = "Select at least one skill"
	MsgSkillNotOffered     = "Mentor does not offer skill"
	MsgDuplicateRequest    = "You already sent a request to this mentor"
	MsgMentorNotApproved   = "Mentor is not approved yet"
	MsgRequestNotAccepted  = "Roadmaps can only be created for accepted mentorship requests"
	MsgMilestonesRequired  = "A roadmap needs at least one milestone"
	MsgMilestoneOrder      = "Milestone order must be dense and start at 1"
	MsgEmailTaken          = "An account with this email already exists"
	MsgInvalidCredentials  = "Invalid email or password"
	MsgRoadmapVersionStale = "Roadmap was modified by someone else"
	MsgProgressRequired    = "progress is required"
)
