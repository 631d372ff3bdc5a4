package types

import (
	"encoding/binary"
	"fmt"
)

// MaxLocatorLen is the fixed byte width of the content locator field.
const MaxLocatorLen = 64

// MaxVotes is the vote capacity of a video account. It equals
// EndorserCount: each endorser votes at most once.
const MaxVotes = EndorserCount

// VideoStatus is the derived authenticity status of a video. The wire
// values are fixed: Unverified=0, Authentic=1, Disputed=2.
type VideoStatus uint8

const (
	StatusUnverified VideoStatus = 0
	StatusAuthentic  VideoStatus = 1
	StatusDisputed   VideoStatus = 2
)

func (s VideoStatus) String() string {
	switch s {
	case StatusUnverified:
		return "unverified"
	case StatusAuthentic:
		return "authentic"
	case StatusDisputed:
		return "disputed"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// valid reports whether s is one of the three defined statuses.
func (s VideoStatus) valid() bool {
	return s <= StatusDisputed
}

// Vote is one endorser's recorded verdict on a video.
type Vote struct {
	Endorser    Identity `cramberry:"1"`
	IsAuthentic bool     `cramberry:"2"`
}

// voteWidth is the serialized width of one vote slot (endorser + flag).
const voteWidth = 32 + 1

// VideoAccountSize is the byte width of a serialized Video account:
// official + video_hash + content_locator + timestamp + vote count +
// vote slots + status + bump. The vote region is pre-allocated at full
// capacity so the account never grows.
const VideoAccountSize = 32 + 32 + MaxLocatorLen + 12 + 1 + MaxVotes*voteWidth + 1 + 1

// Video is the on-ledger record of one registered content item. It is
// created by RegisterVideo and mutated only by EndorseVideo, which
// appends exactly one vote and recomputes Status.
type Video struct {
	// Official is the address of the owning Official account.
	Official Address
	// VideoHash is the 32-byte content digest (externally produced).
	VideoHash Hash
	// ContentLocator holds the storage locator, null-padded.
	ContentLocator [MaxLocatorLen]byte
	// Timestamp is the ledger-assigned creation time, immutable.
	Timestamp Timestamp
	// VoteCount is the number of occupied vote slots.
	VoteCount uint8
	// Votes is the fixed-capacity, append-only vote array. Only the
	// first VoteCount slots are meaningful.
	Votes [MaxVotes]Vote
	// Status is derived from the votes; it is never set directly.
	Status VideoStatus
	// Bump is the disambiguation byte from address derivation.
	Bump uint8
}

// LocatorString returns the logical content locator with trailing
// padding removed.
func (v *Video) LocatorString() string {
	return TrimPadding(v.ContentLocator[:])
}

// SetLocator validates and stores a content locator.
func (v *Video) SetLocator(locator string) error {
	if locator == "" || len(locator) > MaxLocatorLen {
		return fmt.Errorf("content locator must be non-empty, <= %d bytes", MaxLocatorLen)
	}
	padBytes(v.ContentLocator[:], locator)
	return nil
}

// RecordedVotes returns the occupied vote slots in cast order.
func (v *Video) RecordedVotes() []Vote {
	return v.Votes[:v.VoteCount]
}

// HasVoted reports whether the identity already appears in the
// recorded votes.
func (v *Video) HasVoted(id Identity) bool {
	for _, vote := range v.RecordedVotes() {
		if vote.Endorser == id {
			return true
		}
	}
	return false
}

// AddVote appends a vote and recomputes the status. Returns false if
// the vote array is already at capacity; the record is unchanged in
// that case.
func (v *Video) AddVote(vote Vote) bool {
	if int(v.VoteCount) >= MaxVotes {
		return false
	}
	v.Votes[v.VoteCount] = vote
	v.VoteCount++
	v.RecomputeStatus()
	return true
}

// RecomputeStatus re-derives Status from the current vote tally.
func (v *Video) RecomputeStatus() {
	authentic := 0
	for _, vote := range v.RecordedVotes() {
		if vote.IsAuthentic {
			authentic++
		}
	}
	v.Status = TallyStatus(authentic, int(v.VoteCount)-authentic)
}

// TallyStatus maps a vote tally to a status by the 2-of-3 quorum rule.
// It is a pure function of the counts, independent of vote order, and
// monotone once a majority exists: a later dissenting vote is recorded
// but cannot reverse a settled outcome.
func TallyStatus(authentic, fake int) VideoStatus {
	switch {
	case authentic >= 2:
		return StatusAuthentic
	case fake >= 2:
		return StatusDisputed
	default:
		return StatusUnverified
	}
}

// MarshalBinary serializes the record into its fixed account layout:
//
//	32  official address
//	32  video_hash
//	64  content_locator (null-padded)
//	12  timestamp (8 seconds LE + 4 nanos LE)
//	 1  vote count
//	99  vote slots (3 x (32 endorser + 1 flag)), unused slots zeroed
//	 1  status
//	 1  bump
func (v *Video) MarshalBinary() ([]byte, error) {
	if int(v.VoteCount) > MaxVotes {
		return nil, fmt.Errorf("vote count %d exceeds capacity %d", v.VoteCount, MaxVotes)
	}
	if !v.Status.valid() {
		return nil, fmt.Errorf("invalid video status %d", v.Status)
	}
	buf := make([]byte, VideoAccountSize)
	copy(buf[0:32], v.Official[:])
	copy(buf[32:64], v.VideoHash[:])
	copy(buf[64:128], v.ContentLocator[:])
	binary.LittleEndian.PutUint64(buf[128:136], uint64(v.Timestamp.Seconds))
	binary.LittleEndian.PutUint32(buf[136:140], uint32(v.Timestamp.Nanos))
	buf[140] = v.VoteCount
	off := 141
	for i := 0; i < int(v.VoteCount); i++ {
		copy(buf[off:off+32], v.Votes[i].Endorser[:])
		if v.Votes[i].IsAuthentic {
			buf[off+32] = 1
		}
		off += voteWidth
	}
	off = 141 + MaxVotes*voteWidth
	buf[off] = byte(v.Status)
	buf[off+1] = v.Bump
	return buf, nil
}

// UnmarshalBinary deserializes a fixed-layout Video account.
func (v *Video) UnmarshalBinary(data []byte) error {
	if len(data) != VideoAccountSize {
		return fmt.Errorf("video account must be %d bytes, got %d", VideoAccountSize, len(data))
	}
	copy(v.Official[:], data[0:32])
	copy(v.VideoHash[:], data[32:64])
	copy(v.ContentLocator[:], data[64:128])
	v.Timestamp.Seconds = int64(binary.LittleEndian.Uint64(data[128:136]))
	v.Timestamp.Nanos = int32(binary.LittleEndian.Uint32(data[136:140]))
	v.VoteCount = data[140]
	if int(v.VoteCount) > MaxVotes {
		return fmt.Errorf("vote count %d exceeds capacity %d", v.VoteCount, MaxVotes)
	}
	off := 141
	for i := range v.Votes {
		v.Votes[i] = Vote{}
		if i < int(v.VoteCount) {
			copy(v.Votes[i].Endorser[:], data[off:off+32])
			v.Votes[i].IsAuthentic = data[off+32] == 1
		}
		off += voteWidth
	}
	off = 141 + MaxVotes*voteWidth
	v.Status = VideoStatus(data[off])
	if !v.Status.valid() {
		return fmt.Errorf("invalid video status %d", v.Status)
	}
	v.Bump = data[off+1]
	return nil
}
