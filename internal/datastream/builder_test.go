package datastream

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/noaccOS/astarte/internal/device"
	"github.com/noaccOS/astarte/internal/interfaces"
	"github.com/noaccOS/astarte/internal/query"
)

const testMaxLimit = 10000

func testDeviceID(t *testing.T) device.ID {
	t.Helper()
	var id device.ID
	id[0] = 0x42
	return id
}

func individualDescriptor(t *testing.T) interfaces.Descriptor {
	t.Helper()
	return interfaces.Descriptor{
		ID:          uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:        "com.example.Sensors",
		Major:       1,
		Type:        interfaces.TypeDatastream,
		Aggregation: interfaces.AggregationIndividual,
		Endpoints: []interfaces.Endpoint{
			{
				ID:        uuid.MustParse("22222222-2222-2222-2222-222222222222"),
				Path:      "/%{sensor_id}/value",
				ValueType: interfaces.TypeDouble,
			},
		},
	}
}

func propertyDescriptor(t *testing.T) interfaces.Descriptor {
	t.Helper()
	return interfaces.Descriptor{
		ID:   uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		Name: "com.example.Settings",
		Type: interfaces.TypeProperties,
		Endpoints: []interfaces.Endpoint{
			{
				ID:        uuid.MustParse("44444444-4444-4444-4444-444444444444"),
				Path:      "/threshold",
				ValueType: interfaces.TypeInteger,
			},
		},
	}
}

func objectDescriptor(t *testing.T) interfaces.Descriptor {
	t.Helper()
	return interfaces.Descriptor{
		ID:          uuid.MustParse("55555555-5555-5555-5555-555555555555"),
		Name:        "com.example.Weather",
		Major:       2,
		Type:        interfaces.TypeDatastream,
		Aggregation: interfaces.AggregationObject,
		Endpoints: []interfaces.Endpoint{
			{Path: "/temperature", ValueType: interfaces.TypeDouble},
			{Path: "/humidity", ValueType: interfaces.TypeDouble},
		},
	}
}

func TestRetrieveValues_MostRecentN(t *testing.T) {
	// An explicit limit with no lower bound rewrites to a descending scan.
	plan, err := RetrieveValues(individualDescriptor(t), testDeviceID(t), "/s1/value",
		RetrieveOptions{Limit: 5}, testMaxLimit)
	if err != nil {
		t.Fatalf("RetrieveValues() error = %v", err)
	}

	if plan.OrderDirection() != query.Descending {
		t.Errorf("OrderDirection() = %v, want Descending", plan.OrderDirection())
	}
	if plan.EffectiveLimit() != 5 {
		t.Errorf("EffectiveLimit() = %d, want 5", plan.EffectiveLimit())
	}

	stmt := plan.Build()
	want := "ORDER BY value_timestamp DESC, reception_timestamp DESC, reception_timestamp_submillis DESC LIMIT 5"
	if !strings.Contains(stmt.CQL, want) {
		t.Errorf("CQL = %q, want suffix %q", stmt.CQL, want)
	}
}

func TestRetrieveValues_AscendingWithSince(t *testing.T) {
	since := time.UnixMilli(1000)
	plan, err := RetrieveValues(individualDescriptor(t), testDeviceID(t), "/s1/value",
		RetrieveOptions{Since: &since, Limit: 5}, testMaxLimit)
	if err != nil {
		t.Fatalf("RetrieveValues() error = %v", err)
	}

	if plan.OrderDirection() != query.Ascending {
		t.Errorf("OrderDirection() = %v, want Ascending", plan.OrderDirection())
	}

	stmt := plan.Build()
	if !strings.Contains(stmt.CQL, "value_timestamp >= ?") {
		t.Errorf("CQL = %q, want inclusive lower bound", stmt.CQL)
	}
}

func TestRetrieveValues_SincePrecedence(t *testing.T) {
	since := time.UnixMilli(1000)
	after := time.UnixMilli(2000)
	plan, err := RetrieveValues(individualDescriptor(t), testDeviceID(t), "/s1/value",
		RetrieveOptions{Since: &since, SinceAfter: &after}, testMaxLimit)
	if err != nil {
		t.Fatalf("RetrieveValues() error = %v", err)
	}

	stmt := plan.Build()
	if !strings.Contains(stmt.CQL, "value_timestamp >= ?") {
		t.Errorf("CQL = %q, want since to win", stmt.CQL)
	}
	if strings.Contains(stmt.CQL, "value_timestamp > ?") {
		t.Errorf("CQL = %q, since_after must be ignored when since is set", stmt.CQL)
	}
}

func TestRetrieveValues_SinceAfterExclusive(t *testing.T) {
	after := time.UnixMilli(2000)
	to := time.UnixMilli(9000)
	plan, err := RetrieveValues(individualDescriptor(t), testDeviceID(t), "/s1/value",
		RetrieveOptions{SinceAfter: &after, To: &to}, testMaxLimit)
	if err != nil {
		t.Fatalf("RetrieveValues() error = %v", err)
	}

	stmt := plan.Build()
	if !strings.Contains(stmt.CQL, "value_timestamp > ?") {
		t.Errorf("CQL = %q, want exclusive lower bound", stmt.CQL)
	}
	if !strings.Contains(stmt.CQL, "value_timestamp < ?") {
		t.Errorf("CQL = %q, want exclusive upper bound", stmt.CQL)
	}
	if plan.OrderDirection() != query.Ascending {
		t.Errorf("OrderDirection() = %v, want Ascending with a lower bound", plan.OrderDirection())
	}
}

func TestRetrieveValues_LimitClamped(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"over maximum", testMaxLimit + 1, testMaxLimit},
		{"unset", 0, testMaxLimit},
		{"within", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := RetrieveValues(individualDescriptor(t), testDeviceID(t), "/s1/value",
				RetrieveOptions{Limit: tt.requested}, testMaxLimit)
			if err != nil {
				t.Fatalf("RetrieveValues() error = %v", err)
			}
			if plan.EffectiveLimit() != tt.want {
				t.Errorf("EffectiveLimit() = %d, want %d", plan.EffectiveLimit(), tt.want)
			}
		})
	}
}

func TestRetrieveValues_ValueColumn(t *testing.T) {
	plan, err := RetrieveValues(individualDescriptor(t), testDeviceID(t), "/s1/value",
		RetrieveOptions{}, testMaxLimit)
	if err != nil {
		t.Fatalf("RetrieveValues() error = %v", err)
	}

	columns := plan.Columns()
	if columns[len(columns)-1] != "double_value" {
		t.Errorf("value column = %q, want double_value", columns[len(columns)-1])
	}
	if plan.Table() != "individual_datastreams" {
		t.Errorf("Table() = %q, want individual_datastreams", plan.Table())
	}
}

func TestRetrieveValues_Property(t *testing.T) {
	plan, err := RetrieveValues(propertyDescriptor(t), testDeviceID(t), "/threshold",
		RetrieveOptions{}, testMaxLimit)
	if err != nil {
		t.Fatalf("RetrieveValues() error = %v", err)
	}

	if plan.Table() != "individual_properties" {
		t.Errorf("Table() = %q, want individual_properties", plan.Table())
	}
	if plan.OrderDirection() != "" {
		t.Errorf("property plan has ordering %v, want none", plan.OrderDirection())
	}
	if plan.EffectiveLimit() != 0 {
		t.Errorf("property plan has limit %d, want none", plan.EffectiveLimit())
	}
	if !strings.Contains(plan.Build().CQL, "integer_value") {
		t.Errorf("CQL = %q, want integer_value projection", plan.Build().CQL)
	}
}

func TestRetrieveValues_ObjectDatastream(t *testing.T) {
	plan, err := RetrieveValues(objectDescriptor(t), testDeviceID(t), "/",
		RetrieveOptions{Limit: 3}, testMaxLimit)
	if err != nil {
		t.Fatalf("RetrieveValues() error = %v", err)
	}

	if plan.Table() != "com_example_weather_v2" {
		t.Errorf("Table() = %q, want com_example_weather_v2", plan.Table())
	}

	stmt := plan.Build()
	for _, column := range []string{"v_temperature", "v_humidity", "reception_timestamp"} {
		if !strings.Contains(stmt.CQL, column) {
			t.Errorf("CQL = %q, missing column %q", stmt.CQL, column)
		}
	}
	if plan.OrderDirection() != query.Descending {
		t.Errorf("OrderDirection() = %v, want Descending for most-recent-N", plan.OrderDirection())
	}
}

func TestRetrieveValues_UnknownEndpoint(t *testing.T) {
	_, err := RetrieveValues(individualDescriptor(t), testDeviceID(t), "/nope",
		RetrieveOptions{}, testMaxLimit)
	if !errors.Is(err, interfaces.ErrEndpointNotFound) {
		t.Errorf("error = %v, want ErrEndpointNotFound", err)
	}
}
