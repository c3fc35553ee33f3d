package pairing

import (
	"context"
)

// Credentials identifies one issued device certificate at the authority.
type Credentials struct {
	// AuthorityKeyID is the issuing CA's key identifier.
	AuthorityKeyID string
	// Serial is the certificate serial number, as issued.
	Serial string
}

// IsZero reports whether no certificate was ever issued.
func (c Credentials) IsZero() bool {
	return c.AuthorityKeyID == "" && c.Serial == ""
}

// CertificateAuthority revokes issued device certificates.
type CertificateAuthority interface {
	Revoke(ctx context.Context, creds Credentials) error
}

// Logger defines the logging interface used by this package.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Revoke revokes a device's current certificate at the authority.
//
// A device that never requested credentials has zero-valued Credentials;
// that is a successful no-op. An authority failure is logged and
// swallowed: the certificate expires on its own and revocation must not
// block device cleanup.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - log: Logger for the non-fatal failure path
//   - ca: Certificate authority client
//   - creds: Credentials recorded on the device
func Revoke(ctx context.Context, log Logger, ca CertificateAuthority, creds Credentials) {
	if creds.IsZero() {
		return
	}

	if err := ca.Revoke(ctx, creds); err != nil {
		log.Warn("certificate revocation failed",
			"authority_key_id", creds.AuthorityKeyID,
			"serial", creds.Serial,
			"error", err,
		)
	}
}
