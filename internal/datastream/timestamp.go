package datastream

import "time"

// microsPerMilli converts microsecond counts to the store's millisecond
// column resolution.
const microsPerMilli = 1000

// submillisModulus is the divisor for the sub-millisecond remainder column.
const submillisModulus = 100

// Timestamp is a normalised event timestamp: a millisecond epoch value plus
// a sub-millisecond remainder stored in a separate clustering column. The
// remainder preserves ordering between events that share a millisecond.
type Timestamp struct {
	Millis    int64
	Submillis int32
}

// TimestampFromTime normalises a calendar timestamp.
//
// Parameters:
//   - t: Calendar timestamp, any location
//
// Returns:
//   - Timestamp: Millisecond epoch value plus sub-millisecond remainder
func TimestampFromTime(t time.Time) Timestamp {
	return TimestampFromMicros(t.UnixMicro())
}

// TimestampFromMicros normalises an integer microsecond epoch count.
//
// Parameters:
//   - micros: Microseconds since the Unix epoch
//
// Returns:
//   - Timestamp: Millisecond epoch value plus sub-millisecond remainder
func TimestampFromMicros(micros int64) Timestamp {
	return Timestamp{
		Millis:    micros / microsPerMilli,
		Submillis: int32(micros % submillisModulus),
	}
}

// Time converts the millisecond component back to a UTC calendar timestamp.
// The sub-millisecond remainder is ordering metadata and is not restored.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(t.Millis).UTC()
}
