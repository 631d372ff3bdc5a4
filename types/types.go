// Package types defines the core data types of the truchain ledger:
// account records, derived addressing, and instruction encoding.
//
// Wire-facing structs carry cramberry struct tags for deterministic
// binary serialization. Account records additionally use a byte-exact
// fixed-width layout (MarshalBinary/UnmarshalBinary) because account
// sizes are fixed at creation time from their field widths.
package types

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Hash is a 32-byte content digest. It is produced by an external
// hashing collaborator and treated as opaque by the ledger.
type Hash [32]byte

// Identity is a 32-byte ed25519 public key identifying a transaction
// signer. The zero value is the degenerate "default" identity, which
// is never a valid authority or endorser.
type Identity [32]byte

// IsZero reports whether id is the default identity.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

// Address returns the account address occupied by this identity.
// Identities and addresses share the same 32-byte space; derived
// addresses are the off-curve subset no identity can occupy.
func (id Identity) Address() Address {
	return Address(id)
}

// String returns the hex encoding of the identity.
func (id Identity) String() string {
	return hex.EncodeToString(id[:])
}

// IdentityFromBytes builds an Identity from a 32-byte slice.
func IdentityFromBytes(b []byte) (Identity, error) {
	if len(b) != len(Identity{}) {
		return Identity{}, fmt.Errorf("identity must be %d bytes, got %d", len(Identity{}), len(b))
	}
	var id Identity
	copy(id[:], b)
	return id, nil
}

// HashFromBytes builds a Hash from a 32-byte slice.
func HashFromBytes(b []byte) (Hash, error) {
	if len(b) != len(Hash{}) {
		return Hash{}, fmt.Errorf("hash must be %d bytes, got %d", len(Hash{}), len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// Role classifies an identity relative to the registered officials.
// Computed by a read-only scan; never consulted during mutation.
type Role uint8

const (
	RoleUser Role = iota
	RoleAdmin
	RoleOfficial
	RoleEndorser
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	case RoleOfficial:
		return "official"
	case RoleEndorser:
		return "endorser"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(r))
	}
}

// padBytes copies s into a fixed-width buffer, null-padding the tail.
// The caller must have validated len(s) <= len(dst).
func padBytes(dst []byte, s string) {
	copy(dst, s)
	for i := len(s); i < len(dst); i++ {
		dst[i] = 0
	}
}

// TrimPadding recovers the logical string from a null-padded
// fixed-width field by trimming trailing null bytes.
func TrimPadding(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}
