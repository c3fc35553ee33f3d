package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrAliasAlreadyInUse) {
//	    // handle conflict case
//	}
var (
	// ErrInvalidDeviceID is returned when an external device id
	// representation cannot be decoded. The offending input is attached.
	ErrInvalidDeviceID = errors.New("device: invalid device id")

	// ErrDeviceNotFound is returned when a device id does not exist in the
	// realm. The offending id is attached.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrInvalidAlias is returned when an alias tag or value is empty.
	ErrInvalidAlias = errors.New("device: invalid alias")

	// ErrAliasTagNotFound is returned when deleting an alias tag the device
	// does not carry.
	ErrAliasTagNotFound = errors.New("device: alias tag not found")

	// ErrAliasAlreadyInUse is returned when another device in the realm
	// already owns a requested alias value.
	ErrAliasAlreadyInUse = errors.New("device: alias already in use")

	// ErrDatabaseInconsistency is returned when the name index and a device
	// record disagree. It signals corruption: the breach is reported, never
	// silently repaired, since auto-correction could reassign ownership.
	ErrDatabaseInconsistency = errors.New("device: database inconsistency")

	// ErrGroupExists is returned when creating a group whose name is taken.
	ErrGroupExists = errors.New("device: group already exists")

	// ErrGroupNotFound is returned when a referenced group does not exist.
	ErrGroupNotFound = errors.New("device: group not found")

	// ErrInvalidCursor is returned when a pagination cursor cannot be
	// decoded.
	ErrInvalidCursor = errors.New("device: invalid cursor")
)
