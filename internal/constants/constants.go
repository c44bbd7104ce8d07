package constants

// Context keys shared between middleware and handlers.
const (
	ContextKeyUserID      = "user_id"
	ContextKeyCurrentUser = "current_user"
	ContextKeyRequestID   = "request_id"
	ContextKeyLogger      = "logger"
)

const (
	HeaderRequestID = "X-Request-Id"
	BearerPrefix    = "Bearer "
)

// Pagination bounds.
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

const (
	MinPasswordLength = 6
	// BcryptCost is fixed so hashes stay comparable across deployments.
	BcryptCost = 10
	// MinSearchQueryLength guards the directory against overly broad scans.
	MinSearchQueryLength = 2
)

const DefaultEventColor = "#8B5CF6"

// MaxAIGeneratedTasks caps how many tasks a single generate request may create.
const MaxAIGeneratedTasks = 20
