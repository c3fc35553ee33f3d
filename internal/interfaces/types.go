package interfaces

import (
	"time"

	"github.com/google/uuid"
)

// ValueType identifies the type of values flowing through an endpoint.
type ValueType string

// Scalar and array value types. The set is closed: adding a type requires a
// matching storage column in the deployment schema.
const (
	TypeDouble           ValueType = "double"
	TypeInteger          ValueType = "integer"
	TypeBoolean          ValueType = "boolean"
	TypeLongInteger      ValueType = "longinteger"
	TypeString           ValueType = "string"
	TypeBinaryBlob       ValueType = "binaryblob"
	TypeDateTime         ValueType = "datetime"
	TypeDoubleArray      ValueType = "doublearray"
	TypeIntegerArray     ValueType = "integerarray"
	TypeBooleanArray     ValueType = "booleanarray"
	TypeLongIntegerArray ValueType = "longintegerarray"
	TypeStringArray      ValueType = "stringarray"
	TypeBinaryBlobArray  ValueType = "binaryblobarray"
	TypeDateTimeArray    ValueType = "datetimearray"
)

// AllValueTypes returns every supported value type.
func AllValueTypes() []ValueType {
	return []ValueType{
		TypeDouble, TypeInteger, TypeBoolean, TypeLongInteger,
		TypeString, TypeBinaryBlob, TypeDateTime,
		TypeDoubleArray, TypeIntegerArray, TypeBooleanArray,
		TypeLongIntegerArray, TypeStringArray, TypeBinaryBlobArray,
		TypeDateTimeArray,
	}
}

// Valid reports whether the value type is a member of the closed set.
func (v ValueType) Valid() bool {
	_, ok := valueColumns[v]
	return ok
}

// Type identifies the interface semantics.
type Type string

const (
	// TypeDatastream interfaces carry a time series of values.
	TypeDatastream Type = "datastream"
	// TypeProperties interfaces carry a single latest value per path.
	TypeProperties Type = "properties"
)

// Aggregation identifies how endpoint values are grouped on the wire.
type Aggregation string

const (
	// AggregationIndividual sends each endpoint value on its own.
	AggregationIndividual Aggregation = "individual"
	// AggregationObject sends all endpoint values of one event together.
	AggregationObject Aggregation = "object"
)

// StorageKind is the closed set of storage layouts a descriptor can
// resolve to. Every logical value lands in exactly one of the three.
type StorageKind int

const (
	// IndividualDatastream stores a time series keyed by
	// (device, interface, endpoint, path).
	IndividualDatastream StorageKind = iota
	// IndividualProperty stores the single latest value per
	// (device, interface, endpoint, path).
	IndividualProperty
	// ObjectDatastream stores one wide row per reception event, combining
	// the interface's endpoints as columns.
	ObjectDatastream
)

// String returns the storage kind's wire name.
func (k StorageKind) String() string {
	switch k {
	case IndividualDatastream:
		return "individual_datastream"
	case IndividualProperty:
		return "individual_property"
	case ObjectDatastream:
		return "object_datastream"
	}
	return "unknown"
}

// Endpoint is one endpoint descriptor of a published interface version.
type Endpoint struct {
	ID                uuid.UUID
	Path              string
	ValueType         ValueType
	ExplicitTimestamp bool
	TTL               time.Duration // zero means no expiry
}

// Descriptor is an immutable published interface version.
type Descriptor struct {
	ID          uuid.UUID
	Name        string
	Major       int
	Minor       int
	Type        Type
	Aggregation Aggregation
	Endpoints   []Endpoint
}
