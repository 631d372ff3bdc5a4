package types

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"

	"filippo.io/edwards25519"
)

// Address is a 32-byte account address. Official and Video accounts
// live at derived addresses: one-way digests of their logical key that
// decode to no valid ed25519 point, so no party holds a corresponding
// private key and nobody can forge or hijack the account.
type Address [32]byte

// Derivation seed prefixes, fixed by the wire contract.
const (
	SeedOfficial = "official"
	SeedVideo    = "video"
)

// derivedAddressTag domain-separates derived addresses from every
// other use of SHA-256 in the system.
const derivedAddressTag = "TruChainDerivedAddress"

// ErrNoDerivedAddress is returned when no bump in 255..0 yields an
// off-curve address. With SHA-256 output roughly half of all candidates
// are off-curve, so all 256 landing on-curve does not happen in
// practice; the error exists because the search is bounded.
var ErrNoDerivedAddress = errors.New("types: no off-curve derived address for seeds")

// String returns the hex encoding of the address.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// Identity reinterprets the address as a signer identity. Only
// meaningful for addresses that are actual public keys (signer account
// references), never for derived addresses.
func (a Address) Identity() Identity {
	return Identity(a)
}

// OffCurve reports whether the address has no corresponding ed25519
// point, i.e. whether it lies outside the space of addresses an
// external private key can control.
func (a Address) OffCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return err != nil
}

// DeriveWithBump computes the candidate address for the given seeds
// and bump byte. Each seed is length-prefixed before hashing so that
// distinct seed lists can never collide by concatenation.
func DeriveWithBump(bump uint8, seeds ...[]byte) Address {
	h := sha256.New()
	for _, s := range seeds {
		var l [2]byte
		binary.LittleEndian.PutUint16(l[:], uint16(len(s)))
		h.Write(l[:])
		h.Write(s)
	}
	h.Write([]byte{bump})
	h.Write([]byte(derivedAddressTag))

	var a Address
	copy(a[:], h.Sum(nil))
	return a
}

// Derive finds the derived address for the given seeds: the candidate
// at the highest bump in 255..0 that is off-curve. Clients and the
// runtime run the same search and agree on "the" account for a logical
// key; the winning bump is stored in the account so later instructions
// can re-verify the address with a single hash.
func Derive(seeds ...[]byte) (Address, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		a := DeriveWithBump(uint8(bump), seeds...)
		if a.OffCurve() {
			return a, uint8(bump), nil
		}
	}
	return Address{}, 0, ErrNoDerivedAddress
}

// OfficialAddress derives the account address for an official id:
// derive("official", official_id as 8-byte little-endian).
func OfficialAddress(officialID uint64) (Address, uint8, error) {
	var idLE [8]byte
	binary.LittleEndian.PutUint64(idLE[:], officialID)
	return Derive([]byte(SeedOfficial), idLE[:])
}

// VideoAddress derives the account address for a video registered
// under an official: derive("video", official_address, video_hash).
func VideoAddress(official Address, videoHash Hash) (Address, uint8, error) {
	return Derive([]byte(SeedVideo), official[:], videoHash[:])
}

// officialSeeds returns the seed list for an official id, for
// re-verification against a stored bump.
func officialSeeds(officialID uint64) [][]byte {
	var idLE [8]byte
	binary.LittleEndian.PutUint64(idLE[:], officialID)
	return [][]byte{[]byte(SeedOfficial), idLE[:]}
}

// VerifyOfficialAddress checks that addr is the derivation for
// officialID at the stored bump.
func VerifyOfficialAddress(addr Address, officialID uint64, bump uint8) bool {
	seeds := officialSeeds(officialID)
	return addr == DeriveWithBump(bump, seeds...) && addr.OffCurve()
}

// VerifyVideoAddress checks that addr is the derivation for
// (official, videoHash) at the stored bump.
func VerifyVideoAddress(addr Address, official Address, videoHash Hash, bump uint8) bool {
	return addr == DeriveWithBump(bump, []byte(SeedVideo), official[:], videoHash[:]) && addr.OffCurve()
}
