package device

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// idLength is the byte length of a device identifier.
const idLength = 16

// ID is a 128-bit device identifier.
//
// Externally a device id travels as unpadded URL-safe base64 (22 characters);
// inside the store it is a uuid partition key.
type ID [idLength]byte

// DecodeID parses an external device id representation.
//
// Parameters:
//   - encoded: Unpadded URL-safe base64 device id
//
// Returns:
//   - ID: Decoded identifier
//   - error: ErrInvalidDeviceID naming the input on malformed ids
func DecodeID(encoded string) (ID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidDeviceID, encoded)
	}
	if len(raw) != idLength {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidDeviceID, encoded)
	}

	var id ID
	copy(id[:], raw)
	return id, nil
}

// IDFromUUID converts a store partition key into an ID.
func IDFromUUID(u uuid.UUID) ID {
	return ID(u)
}

// Encode returns the external representation of the id.
func (id ID) Encode() string {
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// UUID returns the store partition key for the id.
func (id ID) UUID() uuid.UUID {
	return uuid.UUID(id)
}

// String implements fmt.Stringer using the external representation.
func (id ID) String() string {
	return id.Encode()
}
