package server_test

import (
	"context"
	"testing"
	"time"

	truchain "github.com/IBS27/truchain-sub001"
	"github.com/IBS27/truchain-sub001/server"
	truchaintest "github.com/IBS27/truchain-sub001/testing"
	"github.com/IBS27/truchain-sub001/types"
)

var (
	adminKey     = truchaintest.NewKeypair(0xAD)
	authorityKey = truchaintest.NewKeypair(0x01)
	panelKeys    = []truchaintest.Keypair{
		truchaintest.NewKeypair(0x11),
		truchaintest.NewKeypair(0x12),
		truchaintest.NewKeypair(0x13),
	}
)

func officialIns(t *testing.T) types.Instruction {
	t.Helper()
	ins, err := types.NewRegisterOfficialInstruction(adminKey.Identity(), types.RegisterOfficialArgs{
		OfficialID: 1,
		Name:       "newsroom",
		Authority:  authorityKey.Identity(),
		Endorsers: []types.Identity{
			panelKeys[0].Identity(), panelKeys[1].Identity(), panelKeys[2].Identity(),
		},
	})
	if err != nil {
		t.Fatalf("build instruction: %v", err)
	}
	return ins
}

func TestSubmitVerifiesSignatures(t *testing.T) {
	ctx := context.Background()
	ins := officialIns(t)

	t.Run("valid_signature_commits", func(t *testing.T) {
		rt := server.NewRuntime(adminKey.Identity())
		tx, err := truchaintest.SignInstruction(ins, adminKey)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if err := rt.Submit(ctx, tx); err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if _, err := rt.Official(ctx, 1); err != nil {
			t.Fatalf("query after commit: %v", err)
		}
	})

	t.Run("no_signature", func(t *testing.T) {
		rt := server.NewRuntime(adminKey.Identity())
		err := rt.Submit(ctx, types.SignedInstruction{Instruction: ins})
		if !truchain.IsCode(err, truchain.CodeMissingSignature) {
			t.Fatalf("got %v, want missing-signature", err)
		}
	})

	t.Run("signature_by_other_key", func(t *testing.T) {
		rt := server.NewRuntime(adminKey.Identity())
		tx, err := truchaintest.SignInstruction(ins, truchaintest.NewKeypair(0xEE))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		err = rt.Submit(ctx, tx)
		if !truchain.IsCode(err, truchain.CodeMissingSignature) {
			t.Fatalf("got %v, want missing-signature", err)
		}
	})

	t.Run("forged_signature", func(t *testing.T) {
		rt := server.NewRuntime(adminKey.Identity())
		tx, err := truchaintest.SignInstruction(ins, adminKey)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		tx.Signatures[0].Signature[0] ^= 0xFF
		err = rt.Submit(ctx, tx)
		if !truchain.IsCode(err, truchain.CodeInvalidSignature) {
			t.Fatalf("got %v, want invalid-signature", err)
		}
	})

	t.Run("signature_over_altered_instruction", func(t *testing.T) {
		rt := server.NewRuntime(adminKey.Identity())
		tx, err := truchaintest.SignInstruction(ins, adminKey)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		tx.Instruction.Data[len(tx.Instruction.Data)-1] ^= 0x01
		err = rt.Submit(ctx, tx)
		if !truchain.IsCode(err, truchain.CodeInvalidSignature) {
			t.Fatalf("got %v, want invalid-signature", err)
		}
	})
}

func TestSubmitRejectionsLeaveStoreUntouched(t *testing.T) {
	ctx := context.Background()
	rt := server.NewRuntime(adminKey.Identity())

	tx, err := truchaintest.SignInstruction(officialIns(t), adminKey)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := rt.Submit(ctx, tx); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rt.Store().Len() != 1 {
		t.Fatalf("store has %d accounts, want 1", rt.Store().Len())
	}

	// Same id again: rejected, and the store must not change.
	if err := rt.Submit(ctx, tx); !truchain.IsCode(err, truchain.CodeOfficialAlreadyExists) {
		t.Fatalf("resubmit = %v, want official-already-exists", err)
	}
	if rt.Store().Len() != 1 {
		t.Fatalf("rejected submission changed store, %d accounts", rt.Store().Len())
	}
}

func TestRuntimeClock(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)
	rt := server.NewRuntime(adminKey.Identity(), server.WithClock(func() time.Time { return fixed }))

	tx, err := truchaintest.SignInstruction(officialIns(t), adminKey)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := rt.Submit(ctx, tx); err != nil {
		t.Fatalf("RegisterOfficial: %v", err)
	}

	vins, err := types.NewRegisterVideoInstruction(1, authorityKey.Identity(), types.RegisterVideoArgs{
		VideoHash:      truchaintest.TestHash(0xAA),
		ContentLocator: "bafybeigdyrzt5video",
	})
	if err != nil {
		t.Fatalf("build instruction: %v", err)
	}
	vtx, err := truchaintest.SignInstruction(vins, authorityKey)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := rt.Submit(ctx, vtx); err != nil {
		t.Fatalf("RegisterVideo: %v", err)
	}

	officialAddr, _, _ := types.OfficialAddress(1)
	video, err := rt.Video(ctx, officialAddr, truchaintest.TestHash(0xAA))
	if err != nil {
		t.Fatalf("query video: %v", err)
	}
	if video.Timestamp != types.TimeToTimestamp(fixed) {
		t.Fatalf("timestamp = %+v, want fixed clock value", video.Timestamp)
	}
}

func TestSubmitHonorsContext(t *testing.T) {
	rt := server.NewRuntime(adminKey.Identity())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tx, err := truchaintest.SignInstruction(officialIns(t), adminKey)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := rt.Submit(ctx, tx); err == nil {
		t.Fatal("Submit with canceled context succeeded")
	}
	if rt.Store().Len() != 0 {
		t.Fatal("canceled submission reached the store")
	}
}
