// Package pairing handles device credential bookkeeping.
//
// Devices authenticate with certificates issued by a certificate
// authority. The device record keeps the authority key id and the serial
// of the last issued certificate; when credentials are rotated or the
// device is wiped, the previous certificate is revoked here.
package pairing
