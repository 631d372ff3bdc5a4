package types_test

import (
	"strings"
	"testing"

	"github.com/IBS27/truchain-sub001/types"
)

func testIdentity(n byte) types.Identity {
	var id types.Identity
	id[0] = n
	id[31] = n
	return id
}

func TestOfficialName(t *testing.T) {
	var o types.Official
	if err := o.SetName("Dept X"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if got := o.NameString(); got != "Dept X" {
		t.Errorf("NameString = %q, want %q", got, "Dept X")
	}

	// Exactly 32 bytes fits.
	max := strings.Repeat("a", types.MaxNameLen)
	if err := o.SetName(max); err != nil {
		t.Errorf("SetName(32 bytes): %v", err)
	}
	if got := o.NameString(); got != max {
		t.Errorf("NameString = %q, want full-width name", got)
	}

	if err := o.SetName(strings.Repeat("a", types.MaxNameLen+1)); err == nil {
		t.Error("SetName accepted a 33-byte name")
	}
	if err := o.SetName(""); err == nil {
		t.Error("SetName accepted an empty name")
	}
	if err := o.SetName("abc\xff\xfe"); err == nil {
		t.Error("SetName accepted invalid UTF-8")
	}
}

func TestOfficialIsEndorser(t *testing.T) {
	o := types.Official{
		Endorsers: [3]types.Identity{testIdentity(1), testIdentity(2), testIdentity(3)},
	}
	if !o.IsEndorser(testIdentity(2)) {
		t.Error("IsEndorser missed a member")
	}
	if o.IsEndorser(testIdentity(9)) {
		t.Error("IsEndorser matched a non-member")
	}
}

func TestOfficialBinaryRoundTrip(t *testing.T) {
	addr, bump, err := types.OfficialAddress(9)
	if err != nil {
		t.Fatalf("OfficialAddress: %v", err)
	}
	_ = addr

	o := types.Official{
		OfficialID: 9,
		Authority:  testIdentity(7),
		Endorsers:  [3]types.Identity{testIdentity(1), testIdentity(2), testIdentity(3)},
		Bump:       bump,
	}
	if err := o.SetName("Ministry of Records"); err != nil {
		t.Fatalf("SetName: %v", err)
	}

	data, err := o.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(data) != types.OfficialAccountSize {
		t.Fatalf("serialized size = %d, want %d", len(data), types.OfficialAccountSize)
	}

	var got types.Official
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got != o {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, o)
	}

	if err := got.UnmarshalBinary(data[:len(data)-1]); err == nil {
		t.Error("UnmarshalBinary accepted truncated data")
	}
}
