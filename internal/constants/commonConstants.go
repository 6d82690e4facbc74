package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixRoles   CachePrefix = "ROLES_"
	CachePrefixSession CachePrefix = "SESSION_"
)

const (
	// LifecycleStream is the Redis stream lifecycle events are appended to.
	LifecycleStream = "mentorhub:lifecycle"

	// LifecycleStreamMaxLen caps the stream (approximate trim on XADD).
	LifecycleStreamMaxLen = 10000
)
