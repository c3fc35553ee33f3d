// Package datastream plans time-series and property retrieval queries.
//
// Given a published interface descriptor and retrieval options, the builder
// produces an immutable query.Plan dispatched over the three storage kinds
// (individual datastream, individual property, object datastream). Plans are
// pure values; the caller hands them to the store executor and streams rows
// lazily from the result. A result sequence is finite and non-restartable:
// resuming requires a fresh plan with an updated lower bound.
//
// The package also owns timestamp normalisation: calendar timestamps and
// microsecond counts both normalise to a millisecond epoch plus a
// sub-millisecond remainder, preserving ordering precision finer than the
// store's native column resolution.
package datastream
