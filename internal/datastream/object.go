package datastream

import (
	"strings"

	"github.com/noaccOS/astarte/internal/interfaces"
)

// Logger is the minimal logging interface used by this package.
// It matches the slog call shape so any structured logger fits.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// ObjectColumn derives the storage column for an object datastream endpoint.
// Columns are named from the endpoint's leaf segment with a "v_" prefix,
// e.g. "/temperature" is stored in "v_temperature".
func ObjectColumn(endpointPath string) string {
	trimmed := strings.Trim(endpointPath, "/")
	segments := strings.Split(trimmed, "/")
	leaf := segments[len(segments)-1]
	return "v_" + strings.ToLower(leaf)
}

// ObjectColumns builds the per-event column map for one object datastream
// reception event.
//
// Event keys are endpoint leaf names. A key matching no endpoint of the
// descriptor is skipped with a logged warning rather than failing the whole
// event: interface drift between a device and the published schema must not
// drop the well-formed part of an event.
//
// Parameters:
//   - descriptor: Published object datastream interface version
//   - event: Reception event keyed by endpoint leaf name
//   - log: Logger for skipped-key warnings; nil for silent operation
//
// Returns:
//   - map[string]any: Storage column to value, known endpoints only
func ObjectColumns(descriptor interfaces.Descriptor, event map[string]any, log Logger) map[string]any {
	if log == nil {
		log = noopLogger{}
	}

	columns := make(map[string]any, len(event))
	for key, value := range event {
		endpoint, ok := interfaces.EndpointForLeaf(descriptor, key)
		if !ok {
			log.Warn("object datastream key matches no endpoint, skipping",
				"interface", descriptor.Name,
				"key", key,
			)
			continue
		}
		columns[ObjectColumn(endpoint.Path)] = value
	}
	return columns
}
