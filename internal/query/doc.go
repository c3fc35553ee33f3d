// Package query provides the planned-operation values shared by every
// planner in the data access core.
//
// Planners never touch the store. They produce Statement, Batch, and Plan
// values that a single executor (internal/infrastructure/cassandra) consumes
// at the system boundary. This keeps planning pure and unit-testable without
// a live cluster.
//
// # Key Types
//
//   - Statement: one rendered CQL statement with positional arguments
//   - Batch: an ordered statement list executed as an atomic logged batch
//   - Plan: an immutable select plan built by pure transformations
//     (Where, OrderBy, Limit) and rendered with Build()
//
// # Usage
//
//	plan := query.NewPlan("individual_datastreams").
//	    Select("value_timestamp", "double_value").
//	    Where("device_id", query.Eq, deviceID).
//	    Where("value_timestamp", query.Gte, since).
//	    OrderBy(query.Descending, "value_timestamp").
//	    Limit(100)
//	stmt := plan.Build()
package query
