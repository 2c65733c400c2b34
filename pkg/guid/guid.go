// Package guid converts GEP signal identifiers between their on-the-wire
// byte order (mixed-endian, matching .NET's System.Guid layout) and the
// RFC 4122 byte order used by github.com/google/uuid everywhere else in
// this module.
//
// A GEP signal ID is transmitted as 16 bytes: the first three fields
// (4-byte, 2-byte, 2-byte) are little-endian on the wire, matching how
// .NET lays out a Guid in memory; the remaining 8 bytes are an opaque
// byte string and need no reordering. uuid.UUID keeps all fields in RFC
// 4122 (big-endian) order, so the boundary conversion swaps only the
// first three fields.
package guid

import "github.com/google/uuid"

// FromWireBytes decodes 16 wire bytes (publisher / .NET Guid layout) into
// an RFC 4122 uuid.UUID.
func FromWireBytes(b [16]byte) uuid.UUID {
	var u uuid.UUID
	u[0], u[1], u[2], u[3] = b[3], b[2], b[1], b[0]
	u[4], u[5] = b[5], b[4]
	u[6], u[7] = b[7], b[6]
	copy(u[8:], b[8:])
	return u
}

// ToWireBytes encodes a uuid.UUID back into the 16-byte .NET Guid wire
// layout, the inverse of FromWireBytes.
func ToWireBytes(u uuid.UUID) [16]byte {
	var b [16]byte
	b[3], b[2], b[1], b[0] = u[0], u[1], u[2], u[3]
	b[5], b[4] = u[4], u[5]
	b[7], b[6] = u[6], u[7]
	copy(b[8:], u[8:])
	return b
}
