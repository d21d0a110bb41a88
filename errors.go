package navguard

import "errors"

var (
	// ErrRedisRequired is an exported constant or variable used by the session guard.
	ErrRedisRequired = errors.New("redis client required")
	// ErrRouterRequired is an exported constant or variable used by the session guard.
	ErrRouterRequired = errors.New("router required")
	// ErrBuilderUsed is an exported constant or variable used by the session guard.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrInvalidExpiryMargin is an exported constant or variable used by the session guard.
	ErrInvalidExpiryMargin = errors.New("invalid expiry margin")
	// ErrInvalidKeyPrefix is an exported constant or variable used by the session guard.
	ErrInvalidKeyPrefix = errors.New("invalid storage key prefix")
	// ErrInvalidAuditBuffer is an exported constant or variable used by the session guard.
	ErrInvalidAuditBuffer = errors.New("invalid audit buffer size")
)
