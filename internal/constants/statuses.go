package constants

// ApplicationStatus is the state of an onboarding application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) IsDecision() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// RequestStatus is the state of a mentorship request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) IsDecision() bool {
	return s == RequestAccepted || s == RequestRejected
}

// GateState is the named state a gated dashboard renders.
type GateState string

const (
	GateDenied     GateState = "denied"
	GatePending    GateState = "pending"
	GateRejected   GateState = "rejected"
	GateIncomplete GateState = "incomplete"
	GateReady      GateState = "ready"
)

const (
	// MaxProgress and MinProgress bound a milestone's progress percentage.
	MaxProgress = 100
	MinProgress = 0
)
