package datastream

import (
	"fmt"
	"time"

	"github.com/noaccOS/astarte/internal/device"
	"github.com/noaccOS/astarte/internal/interfaces"
	"github.com/noaccOS/astarte/internal/query"
)

// RetrieveOptions narrows a value retrieval.
//
// Since is an inclusive lower bound, SinceAfter an exclusive one; when both
// are set, Since takes precedence. To is an exclusive upper bound. All
// configured bounds combine with logical AND. Limit caps the row count;
// zero means the configured maximum.
type RetrieveOptions struct {
	Since      *time.Time
	SinceAfter *time.Time
	To         *time.Time
	Limit      int
}

// hasLowerBound reports whether any lower bound is configured.
func (o RetrieveOptions) hasLowerBound() bool {
	return o.Since != nil || o.SinceAfter != nil
}

// datastreamClustering is the ordering triple for individual datastreams.
var datastreamClustering = []string{
	"value_timestamp",
	"reception_timestamp",
	"reception_timestamp_submillis",
}

// objectClustering is the ordering pair for object datastream tables.
var objectClustering = []string{
	"reception_timestamp",
	"reception_timestamp_submillis",
}

// RetrieveValues plans the retrieval of values for one endpoint path.
//
// The plan dispatches on the descriptor's storage kind:
//   - individual datastream: ordered time series restricted by the
//     timestamp bounds in opts
//   - individual property: the single latest value, no ordering
//   - object datastream: wide rows from the per-interface table, restricted
//     by the timestamp bounds on reception time
//
// When opts.Limit is set and no lower bound is configured, the plan orders
// descending and applies the limit, returning the most recent N values
// without a full partition scan. Otherwise it orders ascending. The
// effective limit is min(requested or maxLimit, maxLimit).
//
// Parameters:
//   - descriptor: Published interface version owning the endpoint
//   - deviceID: Device whose values are retrieved
//   - path: Concrete endpoint path
//   - opts: Range bounds and limit
//   - maxLimit: Configured maximum row count per retrieval
//
// Returns:
//   - query.Plan: Immutable select plan for the executor
//   - error: Resolution failure (unknown endpoint, type, or storage kind)
func RetrieveValues(descriptor interfaces.Descriptor, deviceID device.ID, path string, opts RetrieveOptions, maxLimit int) (query.Plan, error) {
	kind, err := interfaces.StorageKindOf(descriptor)
	if err != nil {
		return query.Plan{}, err
	}

	table, err := interfaces.TableName(descriptor)
	if err != nil {
		return query.Plan{}, err
	}

	switch kind {
	case interfaces.IndividualDatastream:
		return individualDatastreamPlan(descriptor, deviceID, path, table, opts, maxLimit)
	case interfaces.IndividualProperty:
		return individualPropertyPlan(descriptor, deviceID, path, table)
	case interfaces.ObjectDatastream:
		return objectDatastreamPlan(descriptor, deviceID, path, table, opts, maxLimit)
	}
	return query.Plan{}, fmt.Errorf("%w: %v", interfaces.ErrUnknownStorageKind, kind)
}

// individualDatastreamPlan plans an ordered time-series read.
func individualDatastreamPlan(descriptor interfaces.Descriptor, deviceID device.ID, path, table string, opts RetrieveOptions, maxLimit int) (query.Plan, error) {
	endpoint, err := interfaces.EndpointForPath(descriptor, path)
	if err != nil {
		return query.Plan{}, err
	}
	column, err := interfaces.ColumnFor(endpoint.ValueType)
	if err != nil {
		return query.Plan{}, err
	}

	plan := query.NewPlan(table).
		Select(append(append([]string(nil), datastreamClustering...), column)...).
		Where("device_id", query.Eq, deviceID.UUID()).
		Where("interface_id", query.Eq, descriptor.ID).
		Where("endpoint_id", query.Eq, endpoint.ID).
		Where("path", query.Eq, path)

	plan = applyTimeBounds(plan, "value_timestamp", opts)
	plan = applyOrdering(plan, datastreamClustering, opts)
	return plan.Limit(effectiveLimit(opts.Limit, maxLimit)), nil
}

// individualPropertyPlan plans the read of the single latest value.
func individualPropertyPlan(descriptor interfaces.Descriptor, deviceID device.ID, path, table string) (query.Plan, error) {
	endpoint, err := interfaces.EndpointForPath(descriptor, path)
	if err != nil {
		return query.Plan{}, err
	}
	column, err := interfaces.ColumnFor(endpoint.ValueType)
	if err != nil {
		return query.Plan{}, err
	}

	return query.NewPlan(table).
		Select(column).
		Where("device_id", query.Eq, deviceID.UUID()).
		Where("interface_id", query.Eq, descriptor.ID).
		Where("endpoint_id", query.Eq, endpoint.ID).
		Where("path", query.Eq, path), nil
}

// objectDatastreamPlan plans a wide-row read from the per-interface table.
func objectDatastreamPlan(descriptor interfaces.Descriptor, deviceID device.ID, path, table string, opts RetrieveOptions, maxLimit int) (query.Plan, error) {
	columns := append([]string(nil), objectClustering...)
	for _, endpoint := range descriptor.Endpoints {
		columns = append(columns, ObjectColumn(endpoint.Path))
	}

	plan := query.NewPlan(table).
		Select(columns...).
		Where("device_id", query.Eq, deviceID.UUID()).
		Where("path", query.Eq, path)

	plan = applyTimeBounds(plan, "reception_timestamp", opts)
	plan = applyOrdering(plan, objectClustering, opts)
	return plan.Limit(effectiveLimit(opts.Limit, maxLimit)), nil
}

// applyTimeBounds adds the configured range filters on the given column.
// Since (inclusive) takes precedence over SinceAfter (exclusive); To is
// always exclusive.
func applyTimeBounds(plan query.Plan, column string, opts RetrieveOptions) query.Plan {
	switch {
	case opts.Since != nil:
		plan = plan.Where(column, query.Gte, opts.Since.UnixMilli())
	case opts.SinceAfter != nil:
		plan = plan.Where(column, query.Gt, opts.SinceAfter.UnixMilli())
	}
	if opts.To != nil {
		plan = plan.Where(column, query.Lt, opts.To.UnixMilli())
	}
	return plan
}

// applyOrdering chooses the result ordering.
//
// An explicit limit with no lower bound means the caller wants the most
// recent N values: order descending so the store stops after N rows instead
// of scanning the whole partition. Every other shape orders ascending.
func applyOrdering(plan query.Plan, clustering []string, opts RetrieveOptions) query.Plan {
	if opts.Limit > 0 && !opts.hasLowerBound() {
		return plan.OrderBy(query.Descending, clustering...)
	}
	return plan.OrderBy(query.Ascending, clustering...)
}

// effectiveLimit clamps the requested limit to the configured maximum.
func effectiveLimit(requested, maxLimit int) int {
	if requested <= 0 || requested > maxLimit {
		return maxLimit
	}
	return requested
}
