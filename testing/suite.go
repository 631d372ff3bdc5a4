package truchaintest

import (
	"context"
	"sync"
	"testing"

	truchain "github.com/IBS27/truchain-sub001"
	"github.com/IBS27/truchain-sub001/types"
)

// RunConnectionSuite runs a standard conformance suite against a
// Connection implementation, exercising registration, vote admission,
// and quorum evaluation end to end.
//
// The factory should return a fresh connection for each test, backed
// by a runtime configured with the given admin identity. The suite
// closes each connection it opens.
func RunConnectionSuite(t *testing.T, factory func(admin types.Identity) truchain.Connection) {
	t.Helper()

	admin := NewKeypair(0xAD)
	authority := NewKeypair(0x01)
	e1, e2, e3 := NewKeypair(0x11), NewKeypair(0x12), NewKeypair(0x13)
	outsider := NewKeypair(0xEE)

	open := func(t *testing.T) *Harness {
		t.Helper()
		conn := factory(admin.Identity())
		t.Cleanup(func() { conn.Close() })
		return NewHarness(t, conn, admin)
	}

	t.Run("register_official_and_query", func(t *testing.T) {
		h := open(t)
		h.RegisterOfficial(7, "newsroom", authority, e1, e2, e3)

		official := h.Official(7)
		if official.OfficialID != 7 {
			t.Errorf("official id = %d, want 7", official.OfficialID)
		}
		if official.NameString() != "newsroom" {
			t.Errorf("name = %q, want %q", official.NameString(), "newsroom")
		}
		if official.Authority != authority.Identity() {
			t.Error("authority identity mismatch")
		}
		if !official.IsEndorser(e2.Identity()) {
			t.Error("endorser panel missing expected member")
		}
	})

	t.Run("non_admin_cannot_register_official", func(t *testing.T) {
		h := open(t)
		ins, err := types.NewRegisterOfficialInstruction(outsider.Identity(), types.RegisterOfficialArgs{
			OfficialID: 1,
			Name:       "impostor",
			Authority:  authority.Identity(),
			Endorsers:  []types.Identity{e1.Identity(), e2.Identity(), e3.Identity()},
		})
		if err != nil {
			t.Fatalf("build instruction: %v", err)
		}
		h.MustReject(truchain.CodeUnauthorizedAdmin, ins, outsider)
	})

	t.Run("register_video_and_query", func(t *testing.T) {
		h := open(t)
		h.RegisterOfficial(1, "newsroom", authority, e1, e2, e3)
		h.RegisterVideo(1, authority, TestHash(0xAA), "bafybeigdyrzt5video")

		video := h.Video(1, TestHash(0xAA))
		if video.Status != types.StatusUnverified {
			t.Errorf("new video status = %v, want %v", video.Status, types.StatusUnverified)
		}
		if video.VoteCount != 0 {
			t.Errorf("new video vote count = %d, want 0", video.VoteCount)
		}
		if video.LocatorString() != "bafybeigdyrzt5video" {
			t.Errorf("locator = %q", video.LocatorString())
		}
	})

	t.Run("duplicate_video_rejected", func(t *testing.T) {
		h := open(t)
		h.RegisterOfficial(1, "newsroom", authority, e1, e2, e3)
		h.RegisterVideo(1, authority, TestHash(0xAA), "bafybeigdyrzt5video")

		ins, err := types.NewRegisterVideoInstruction(1, authority.Identity(), types.RegisterVideoArgs{
			VideoHash:      TestHash(0xAA),
			ContentLocator: "bafybeigdyrzt5other",
		})
		if err != nil {
			t.Fatalf("build instruction: %v", err)
		}
		h.MustReject(truchain.CodeVideoAlreadyExists, ins, authority)
	})

	t.Run("two_authentic_votes_settle_authentic", func(t *testing.T) {
		h := open(t)
		h.RegisterOfficial(1, "newsroom", authority, e1, e2, e3)
		h.RegisterVideo(1, authority, TestHash(0xAA), "bafybeigdyrzt5video")

		h.Endorse(1, TestHash(0xAA), e1, true)
		if got := h.Video(1, TestHash(0xAA)).Status; got != types.StatusUnverified {
			t.Errorf("status after 1 vote = %v, want Unverified", got)
		}
		h.Endorse(1, TestHash(0xAA), e2, true)
		if got := h.Video(1, TestHash(0xAA)).Status; got != types.StatusAuthentic {
			t.Errorf("status after 2 authentic votes = %v, want Authentic", got)
		}
	})

	t.Run("two_fake_votes_settle_disputed", func(t *testing.T) {
		h := open(t)
		h.RegisterOfficial(1, "newsroom", authority, e1, e2, e3)
		h.RegisterVideo(1, authority, TestHash(0xAA), "bafybeigdyrzt5video")

		h.Endorse(1, TestHash(0xAA), e1, false)
		h.Endorse(1, TestHash(0xAA), e3, false)
		if got := h.Video(1, TestHash(0xAA)).Status; got != types.StatusDisputed {
			t.Errorf("status = %v, want Disputed", got)
		}
	})

	t.Run("dissenting_third_vote_recorded_but_inert", func(t *testing.T) {
		h := open(t)
		h.RegisterOfficial(1, "newsroom", authority, e1, e2, e3)
		h.RegisterVideo(1, authority, TestHash(0xAA), "bafybeigdyrzt5video")

		h.Endorse(1, TestHash(0xAA), e1, true)
		h.Endorse(1, TestHash(0xAA), e2, true)
		h.Endorse(1, TestHash(0xAA), e3, false)

		video := h.Video(1, TestHash(0xAA))
		if video.VoteCount != 3 {
			t.Errorf("vote count = %d, want 3", video.VoteCount)
		}
		if video.Status != types.StatusAuthentic {
			t.Errorf("status = %v, want Authentic", video.Status)
		}
	})

	t.Run("duplicate_vote_rejected", func(t *testing.T) {
		h := open(t)
		h.RegisterOfficial(1, "newsroom", authority, e1, e2, e3)
		h.RegisterVideo(1, authority, TestHash(0xAA), "bafybeigdyrzt5video")
		h.Endorse(1, TestHash(0xAA), e1, true)

		ins, err := types.NewEndorseVideoInstruction(1, TestHash(0xAA), e1.Identity(), types.EndorseVideoArgs{IsAuthentic: false})
		if err != nil {
			t.Fatalf("build instruction: %v", err)
		}
		h.MustReject(truchain.CodeAlreadyVoted, ins, e1)
	})

	t.Run("non_panel_endorser_rejected", func(t *testing.T) {
		h := open(t)
		h.RegisterOfficial(1, "newsroom", authority, e1, e2, e3)
		h.RegisterVideo(1, authority, TestHash(0xAA), "bafybeigdyrzt5video")

		ins, err := types.NewEndorseVideoInstruction(1, TestHash(0xAA), outsider.Identity(), types.EndorseVideoArgs{IsAuthentic: true})
		if err != nil {
			t.Fatalf("build instruction: %v", err)
		}
		h.MustReject(truchain.CodeUnauthorizedEndorser, ins, outsider)
	})

	t.Run("unsigned_submission_rejected", func(t *testing.T) {
		h := open(t)
		h.RegisterOfficial(1, "newsroom", authority, e1, e2, e3)

		ins, err := types.NewRegisterVideoInstruction(1, authority.Identity(), types.RegisterVideoArgs{
			VideoHash:      TestHash(0xAA),
			ContentLocator: "bafybeigdyrzt5video",
		})
		if err != nil {
			t.Fatalf("build instruction: %v", err)
		}
		err = h.Conn().Submit(context.Background(), types.SignedInstruction{Instruction: ins})
		if !truchain.IsCode(err, truchain.CodeMissingSignature) {
			t.Fatalf("expected missing-signature rejection, got %v", err)
		}
	})

	t.Run("role_classification", func(t *testing.T) {
		h := open(t)
		h.RegisterOfficial(1, "newsroom", authority, e1, e2, e3)

		if got := h.Role(admin.Identity()); got != types.RoleAdmin {
			t.Errorf("admin role = %v", got)
		}
		if got := h.Role(authority.Identity()); got != types.RoleOfficial {
			t.Errorf("authority role = %v", got)
		}
		if got := h.Role(e2.Identity()); got != types.RoleEndorser {
			t.Errorf("endorser role = %v", got)
		}
		if got := h.Role(outsider.Identity()); got != types.RoleUser {
			t.Errorf("outsider role = %v", got)
		}
	})

	t.Run("list_officials", func(t *testing.T) {
		h := open(t)
		h.RegisterOfficial(1, "alpha", authority, e1, e2, e3)
		h.RegisterOfficial(2, "beta", authority, e1, e2, e3)
		h.RegisterVideo(1, authority, TestHash(0xAA), "bafybeigdyrzt5video")

		officials, err := h.Conn().Officials(context.Background())
		if err != nil {
			t.Fatalf("list officials: %v", err)
		}
		if len(officials) != 2 {
			t.Fatalf("got %d officials, want 2", len(officials))
		}
	})

	t.Run("concurrent_queries", func(t *testing.T) {
		h := open(t)
		h.RegisterOfficial(1, "newsroom", authority, e1, e2, e3)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := h.Conn().Official(context.Background(), 1); err != nil {
					t.Errorf("concurrent query failed: %v", err)
				}
			}()
		}
		wg.Wait()
	})
}
