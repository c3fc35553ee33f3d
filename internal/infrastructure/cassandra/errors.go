package cassandra

import "errors"

// Sentinel errors for store operations.
//
// These errors can be checked using errors.Is() for specific handling:
//
//	if errors.Is(err, cassandra.ErrNotConnected) {
//	    // Handle disconnected state
//	}
var (
	// ErrNotConnected indicates the client has no open session.
	ErrNotConnected = errors.New("cassandra: not connected")

	// ErrConnectionFailed indicates the initial connection attempt failed.
	ErrConnectionFailed = errors.New("cassandra: connection failed")

	// ErrInvalidConfig indicates the cluster configuration is unusable.
	ErrInvalidConfig = errors.New("cassandra: invalid configuration")
)
