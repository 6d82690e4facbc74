package constants

// Lifecycle event types published to the lifecycle stream
const (
	EventPrincipalRegistered = "PRINCIPAL_REGISTERED"
	EventRoleAssigned        = "ROLE_ASSIGNED"
	EventRoleRevoked         = "ROLE_REVOKED"
	EventApplicationDecided  = "APPLICATION_DECIDED"
	EventProfileCompleted    = "PROFILE_COMPLETED"
	EventRequestCreated      = "REQUEST_CREATED"
	EventRequestDecided      = "REQUEST_DECIDED"
	EventRequestCancelled    = "REQUEST_CANCELLED"
	EventRoadmapCreated      = "ROADMAP_CREATED"
	EventRoadmapUpdated      = "ROADMAP_UPDATED"
	EventMilestoneProgress   = "MILESTONE_PROGRESS"
)
