// Package interfaces describes the dynamically-typed telemetry schema and
// resolves it onto concrete storage locations.
//
// An interface version declares a set of endpoints, each with a value type.
// The resolver maps every descriptor to exactly one of three storage kinds
// and every value type to exactly one storage column. The mapping is a
// closed, statically-built table: no column identifiers are ever derived at
// runtime from incoming data.
//
// # Key Types
//
//   - ValueType: the closed set of endpoint value types
//   - StorageKind: individual datastream, individual property, or object
//     datastream
//   - Endpoint: a single interface endpoint descriptor
//   - Descriptor: an immutable published interface version
//
// Descriptors are immutable once published; publication itself is handled
// by the realm management subsystem, not here.
package interfaces
