package interfaces

import "errors"

// Domain errors for the interfaces package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, interfaces.ErrUnknownValueType) {
//	    // handle unsupported type
//	}
var (
	// ErrUnknownValueType is returned when a value type has no storage column.
	ErrUnknownValueType = errors.New("interfaces: unknown value type")

	// ErrUnknownStorageKind is returned when a descriptor resolves to no
	// supported storage layout.
	ErrUnknownStorageKind = errors.New("interfaces: unknown storage kind")

	// ErrEndpointNotFound is returned when a path matches no endpoint of the
	// interface version.
	ErrEndpointNotFound = errors.New("interfaces: endpoint not found")
)
