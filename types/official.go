package types

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// MaxNameLen is the fixed byte width of an official's name field.
const MaxNameLen = 32

// EndorserCount is the fixed size of every official's endorser panel.
// The 2-of-3 quorum rule depends on this being exactly three.
const EndorserCount = 3

// OfficialAccountSize is the byte width of a serialized Official
// account: official_id + name + authority + endorsers + bump.
// Accounts are allocated at exactly this size when created and are
// never resized.
const OfficialAccountSize = 8 + MaxNameLen + 32 + EndorserCount*32 + 1

// Official is the on-ledger record of one registering entity. It is
// created once by RegisterOfficial and immutable thereafter.
type Official struct {
	// OfficialID is the caller-chosen 64-bit key. Uniqueness is
	// enforced by address derivation, not a separate index.
	OfficialID uint64
	// Name holds UTF-8 bytes, null-padded to MaxNameLen.
	Name [MaxNameLen]byte
	// Authority is the sole identity permitted to register videos
	// under this official.
	Authority Identity
	// Endorsers are the exactly-three distinct identities permitted
	// to vote on this official's videos.
	Endorsers [EndorserCount]Identity
	// Bump is the disambiguation byte from address derivation.
	Bump uint8
}

// NameString returns the logical name with trailing padding removed.
func (o *Official) NameString() string {
	return TrimPadding(o.Name[:])
}

// SetName validates and stores a name into the fixed-width field.
func (o *Official) SetName(name string) error {
	if name == "" || len(name) > MaxNameLen || !utf8.ValidString(name) {
		return fmt.Errorf("official name must be non-empty, valid UTF-8, <= %d bytes", MaxNameLen)
	}
	padBytes(o.Name[:], name)
	return nil
}

// IsEndorser reports whether id is one of this official's endorsers.
func (o *Official) IsEndorser(id Identity) bool {
	for _, e := range o.Endorsers {
		if e == id {
			return true
		}
	}
	return false
}

// MarshalBinary serializes the record into its fixed account layout:
//
//	 8  official_id (little-endian)
//	32  name (null-padded)
//	32  authority
//	96  endorsers (3 x 32)
//	 1  bump
func (o *Official) MarshalBinary() ([]byte, error) {
	buf := make([]byte, OfficialAccountSize)
	binary.LittleEndian.PutUint64(buf[0:8], o.OfficialID)
	copy(buf[8:40], o.Name[:])
	copy(buf[40:72], o.Authority[:])
	off := 72
	for _, e := range o.Endorsers {
		copy(buf[off:off+32], e[:])
		off += 32
	}
	buf[off] = o.Bump
	return buf, nil
}

// UnmarshalBinary deserializes a fixed-layout Official account.
func (o *Official) UnmarshalBinary(data []byte) error {
	if len(data) != OfficialAccountSize {
		return fmt.Errorf("official account must be %d bytes, got %d", OfficialAccountSize, len(data))
	}
	o.OfficialID = binary.LittleEndian.Uint64(data[0:8])
	copy(o.Name[:], data[8:40])
	copy(o.Authority[:], data[40:72])
	off := 72
	for i := range o.Endorsers {
		copy(o.Endorsers[i][:], data[off:off+32])
		off += 32
	}
	o.Bump = data[off]
	return nil
}
