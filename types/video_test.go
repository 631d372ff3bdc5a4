package types_test

import (
	"testing"

	"github.com/IBS27/truchain-sub001/types"
)

func TestTallyStatus(t *testing.T) {
	cases := []struct {
		authentic, fake int
		want            types.VideoStatus
	}{
		{0, 0, types.StatusUnverified},
		{1, 0, types.StatusUnverified},
		{0, 1, types.StatusUnverified},
		{1, 1, types.StatusUnverified},
		{2, 0, types.StatusAuthentic},
		{2, 1, types.StatusAuthentic},
		{3, 0, types.StatusAuthentic},
		{0, 2, types.StatusDisputed},
		{1, 2, types.StatusDisputed},
		{0, 3, types.StatusDisputed},
	}
	for _, c := range cases {
		if got := types.TallyStatus(c.authentic, c.fake); got != c.want {
			t.Errorf("TallyStatus(%d, %d) = %s, want %s", c.authentic, c.fake, got, c.want)
		}
	}
}

func TestStatusOrderIndependent(t *testing.T) {
	votes := []types.Vote{
		{Endorser: testIdentity(1), IsAuthentic: true},
		{Endorser: testIdentity(2), IsAuthentic: false},
		{Endorser: testIdentity(3), IsAuthentic: true},
	}
	perms := [][3]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}

	var want types.VideoStatus
	for i, p := range perms {
		var v types.Video
		for _, idx := range p {
			if !v.AddVote(votes[idx]) {
				t.Fatal("AddVote failed under capacity")
			}
		}
		if i == 0 {
			want = v.Status
			continue
		}
		if v.Status != want {
			t.Errorf("permutation %v: status %s, want %s", p, v.Status, want)
		}
	}
	if want != types.StatusAuthentic {
		t.Errorf("2 authentic + 1 fake should settle Authentic, got %s", want)
	}
}

func TestMajoritySettledBeforeThirdVote(t *testing.T) {
	var v types.Video
	v.AddVote(types.Vote{Endorser: testIdentity(1), IsAuthentic: true})
	if v.Status != types.StatusUnverified {
		t.Fatalf("after 1 vote: %s, want unverified", v.Status)
	}
	v.AddVote(types.Vote{Endorser: testIdentity(2), IsAuthentic: true})
	if v.Status != types.StatusAuthentic {
		t.Fatalf("after 2 authentic votes: %s, want authentic", v.Status)
	}
	// The dissenting third vote is recorded but inert.
	v.AddVote(types.Vote{Endorser: testIdentity(3), IsAuthentic: false})
	if v.Status != types.StatusAuthentic {
		t.Fatalf("after dissenting third vote: %s, want authentic", v.Status)
	}
	if v.VoteCount != 3 {
		t.Fatalf("vote count = %d, want 3", v.VoteCount)
	}
}

func TestAddVoteCapacity(t *testing.T) {
	var v types.Video
	for i := byte(1); i <= 3; i++ {
		if !v.AddVote(types.Vote{Endorser: testIdentity(i)}) {
			t.Fatalf("vote %d rejected under capacity", i)
		}
	}
	before := v
	if v.AddVote(types.Vote{Endorser: testIdentity(4)}) {
		t.Fatal("AddVote accepted a fourth vote")
	}
	if v != before {
		t.Fatal("rejected vote mutated the record")
	}
}

func TestHasVoted(t *testing.T) {
	var v types.Video
	v.AddVote(types.Vote{Endorser: testIdentity(1), IsAuthentic: true})
	if !v.HasVoted(testIdentity(1)) {
		t.Error("HasVoted missed a recorded endorser")
	}
	if v.HasVoted(testIdentity(2)) {
		t.Error("HasVoted matched an endorser who has not voted")
	}
}

func TestVideoLocator(t *testing.T) {
	var v types.Video
	if err := v.SetLocator("QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"); err != nil {
		t.Fatalf("SetLocator: %v", err)
	}
	if got := v.LocatorString(); got != "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG" {
		t.Errorf("LocatorString = %q", got)
	}
	if err := v.SetLocator(""); err == nil {
		t.Error("SetLocator accepted an empty locator")
	}
	long := make([]byte, types.MaxLocatorLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if err := v.SetLocator(string(long)); err == nil {
		t.Error("SetLocator accepted a 65-byte locator")
	}
}

func TestVideoBinaryRoundTrip(t *testing.T) {
	official, _, _ := types.OfficialAddress(3)
	videoAddr, bump, err := types.VideoAddress(official, types.Hash{0xAB})
	if err != nil {
		t.Fatalf("VideoAddress: %v", err)
	}
	_ = videoAddr

	v := types.Video{
		Official:  official,
		VideoHash: types.Hash{0xAB},
		Timestamp: types.Timestamp{Seconds: 1700000000, Nanos: 123},
		Bump:      bump,
	}
	if err := v.SetLocator("loc123"); err != nil {
		t.Fatalf("SetLocator: %v", err)
	}
	v.AddVote(types.Vote{Endorser: testIdentity(1), IsAuthentic: true})
	v.AddVote(types.Vote{Endorser: testIdentity(2), IsAuthentic: false})

	data, err := v.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(data) != types.VideoAccountSize {
		t.Fatalf("serialized size = %d, want %d", len(data), types.VideoAccountSize)
	}

	var got types.Video
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got != v {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, v)
	}

	// Corrupted status byte must be rejected.
	bad := make([]byte, len(data))
	copy(bad, data)
	bad[len(bad)-2] = 9
	if err := got.UnmarshalBinary(bad); err == nil {
		t.Error("UnmarshalBinary accepted an invalid status byte")
	}
}
