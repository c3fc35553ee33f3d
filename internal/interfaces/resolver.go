package interfaces

import (
	"fmt"
	"strconv"
	"strings"
)

// valueColumns is the fixed mapping from value type to storage column.
// It is built once and never extended at runtime: an unknown type is an
// error, not a new column.
var valueColumns = map[ValueType]string{
	TypeDouble:           "double_value",
	TypeInteger:          "integer_value",
	TypeBoolean:          "boolean_value",
	TypeLongInteger:      "longinteger_value",
	TypeString:           "string_value",
	TypeBinaryBlob:       "binaryblob_value",
	TypeDateTime:         "datetime_value",
	TypeDoubleArray:      "doublearray_value",
	TypeIntegerArray:     "integerarray_value",
	TypeBooleanArray:     "booleanarray_value",
	TypeLongIntegerArray: "longintegerarray_value",
	TypeStringArray:      "stringarray_value",
	TypeBinaryBlobArray:  "binaryblobarray_value",
	TypeDateTimeArray:    "datetimearray_value",
}

// ColumnFor resolves a value type to its storage column.
//
// Parameters:
//   - valueType: Endpoint value type to resolve
//
// Returns:
//   - string: Storage column holding values of this type
//   - error: ErrUnknownValueType if the type is not in the closed set
func ColumnFor(valueType ValueType) (string, error) {
	column, ok := valueColumns[valueType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownValueType, valueType)
	}
	return column, nil
}

// StorageKindOf resolves a descriptor to one of the three storage layouts.
//
// Properties interfaces always store individually; datastream interfaces
// store individually or as wide object rows depending on aggregation.
func StorageKindOf(d Descriptor) (StorageKind, error) {
	switch d.Type {
	case TypeProperties:
		return IndividualProperty, nil
	case TypeDatastream:
		switch d.Aggregation {
		case AggregationIndividual, "":
			return IndividualDatastream, nil
		case AggregationObject:
			return ObjectDatastream, nil
		}
	}
	return 0, fmt.Errorf("%w: type %q aggregation %q",
		ErrUnknownStorageKind, d.Type, d.Aggregation)
}

// TableName resolves the table owning a descriptor's values.
//
// Individual datastreams and properties share fixed tables. Object
// datastreams get a per-interface table derived from the interface name
// and major version, e.g. "com.example.Sensors" v1 becomes
// "com_example_sensors_v1".
func TableName(d Descriptor) (string, error) {
	kind, err := StorageKindOf(d)
	if err != nil {
		return "", err
	}

	switch kind {
	case IndividualDatastream:
		return "individual_datastreams", nil
	case IndividualProperty:
		return "individual_properties", nil
	case ObjectDatastream:
		return objectTableName(d.Name, d.Major), nil
	}
	return "", fmt.Errorf("%w: %v", ErrUnknownStorageKind, kind)
}

// objectTableName derives the per-interface table for an object datastream.
func objectTableName(name string, major int) string {
	sanitised := strings.ToLower(strings.ReplaceAll(name, ".", "_"))
	return sanitised + "_v" + strconv.Itoa(major)
}

// EndpointForPath returns the endpoint descriptor matching a concrete path.
//
// Endpoint paths may contain parametric segments (e.g. "%{sensor_id}")
// matching any single path segment.
func EndpointForPath(d Descriptor, path string) (Endpoint, error) {
	for _, endpoint := range d.Endpoints {
		if pathMatches(endpoint.Path, path) {
			return endpoint, nil
		}
	}
	return Endpoint{}, fmt.Errorf("%w: %q on %s v%d",
		ErrEndpointNotFound, path, d.Name, d.Major)
}

// EndpointForLeaf returns the endpoint whose last path segment equals leaf.
// Used for object datastreams, where event keys are endpoint leaf names.
func EndpointForLeaf(d Descriptor, leaf string) (Endpoint, bool) {
	for _, endpoint := range d.Endpoints {
		segments := strings.Split(strings.Trim(endpoint.Path, "/"), "/")
		if len(segments) > 0 && segments[len(segments)-1] == leaf {
			return endpoint, true
		}
	}
	return Endpoint{}, false
}

// pathMatches reports whether a concrete path matches an endpoint pattern,
// segment by segment, treating "%{...}" segments as single-segment wildcards.
func pathMatches(pattern, path string) bool {
	patternSegments := strings.Split(strings.Trim(pattern, "/"), "/")
	pathSegments := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternSegments) != len(pathSegments) {
		return false
	}
	for i, segment := range patternSegments {
		if strings.HasPrefix(segment, "%{") && strings.HasSuffix(segment, "}") {
			continue
		}
		if segment != pathSegments[i] {
			return false
		}
	}
	return true
}
