package device

import (
	"time"

	"github.com/google/uuid"
)

// Device is one device record as stored in the realm's devices table.
//
// Aliases and Groups are mirrored by the name index and the grouped-device
// index respectively; the planners in this package are the only writers of
// those mirrors and always mutate both sides in one batch. Introspection and
// the traffic counters are maintained by telemetry ingestion and carried
// opaquely here.
type Device struct {
	ID ID

	// Aliases maps alias tags to alias values. Values are unique across
	// the realm (enforced through the name index).
	Aliases map[string]string

	// Groups maps group names to the insertion identifier minted when the
	// device was last added to the group.
	Groups map[string]uuid.UUID

	// Introspection maps interface names to their declared major version.
	Introspection map[string]int

	// Traffic counters, owned by ingestion.
	TotalReceivedMsgs  int64
	TotalReceivedBytes int64

	Connected               bool
	LastConnection          *time.Time
	LastDisconnection       *time.Time
	LastSeenIP              string
	FirstRegistration       *time.Time
	FirstCredentialsRequest *time.Time

	// Credentials of the certificate issued during pairing, retained for
	// later revocation. Either both are set or both are empty.
	CertAuthorityKeyID string
	CertSerial         string
}

// HasAliasValue reports whether any alias tag of the device carries the
// given value.
func (d *Device) HasAliasValue(value string) bool {
	for _, v := range d.Aliases {
		if v == value {
			return true
		}
	}
	return false
}

// InGroup reports whether the device is a member of the named group.
func (d *Device) InGroup(groupName string) bool {
	_, ok := d.Groups[groupName]
	return ok
}
