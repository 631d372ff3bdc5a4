// Command quorum walks the full ledger flow against an in-process
// connection: an admin registers an official with a three-member
// endorser panel, the official registers a video, and the panel votes
// it to a 2-of-3 verdict.
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"log"

	"github.com/IBS27/truchain-sub001/local"
	"github.com/IBS27/truchain-sub001/types"
)

type keypair struct {
	priv ed25519.PrivateKey
}

func newKeypair() keypair {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatalf("generate key: %v", err)
	}
	return keypair{priv: priv}
}

func (k keypair) identity() types.Identity {
	var id types.Identity
	copy(id[:], k.priv.Public().(ed25519.PublicKey))
	return id
}

func (k keypair) sign(ins types.Instruction) types.SignedInstruction {
	msg, err := ins.SignBytes()
	if err != nil {
		log.Fatalf("sign bytes: %v", err)
	}
	return types.SignedInstruction{
		Instruction: ins,
		Signatures: []types.SignerSig{
			{Signer: k.identity(), Signature: ed25519.Sign(k.priv, msg)},
		},
	}
}

func main() {
	ctx := context.Background()

	admin := newKeypair()
	authority := newKeypair()
	panel := []keypair{newKeypair(), newKeypair(), newKeypair()}

	conn := local.NewConnection(admin.identity())
	defer conn.Close()

	// Register the official with its fixed endorser panel.
	ins, err := types.NewRegisterOfficialInstruction(admin.identity(), types.RegisterOfficialArgs{
		OfficialID: 1,
		Name:       "evening newsroom",
		Authority:  authority.identity(),
		Endorsers: []types.Identity{
			panel[0].identity(), panel[1].identity(), panel[2].identity(),
		},
	})
	if err != nil {
		log.Fatalf("build RegisterOfficial: %v", err)
	}
	if err := conn.Submit(ctx, admin.sign(ins)); err != nil {
		log.Fatalf("RegisterOfficial: %v", err)
	}
	official, err := conn.Official(ctx, 1)
	if err != nil {
		log.Fatalf("query official: %v", err)
	}
	fmt.Printf("registered official %q (id %d)\n", official.NameString(), official.OfficialID)

	// Register a video under the official, keyed by its content hash.
	videoHash := types.Hash(sha256.Sum256([]byte("broadcast-2026-08-29.mp4")))
	ins, err = types.NewRegisterVideoInstruction(1, authority.identity(), types.RegisterVideoArgs{
		VideoHash:      videoHash,
		ContentLocator: "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi",
	})
	if err != nil {
		log.Fatalf("build RegisterVideo: %v", err)
	}
	if err := conn.Submit(ctx, authority.sign(ins)); err != nil {
		log.Fatalf("RegisterVideo: %v", err)
	}

	officialAddr, _, err := types.OfficialAddress(1)
	if err != nil {
		log.Fatalf("derive official address: %v", err)
	}

	// Panel votes: two authentic, one dissenting. The status settles
	// at the second vote; the third is recorded but changes nothing.
	for i, verdict := range []bool{true, true, false} {
		ins, err = types.NewEndorseVideoInstruction(1, videoHash, panel[i].identity(), types.EndorseVideoArgs{
			IsAuthentic: verdict,
		})
		if err != nil {
			log.Fatalf("build EndorseVideo: %v", err)
		}
		if err := conn.Submit(ctx, panel[i].sign(ins)); err != nil {
			log.Fatalf("EndorseVideo (voter %d): %v", i, err)
		}
		video, err := conn.Video(ctx, officialAddr, videoHash)
		if err != nil {
			log.Fatalf("query video: %v", err)
		}
		fmt.Printf("vote %d (authentic=%v): status=%s votes=%d\n",
			i+1, verdict, video.Status, video.VoteCount)
	}

	// A repeated vote is rejected with a stable code.
	ins, err = types.NewEndorseVideoInstruction(1, videoHash, panel[0].identity(), types.EndorseVideoArgs{
		IsAuthentic: false,
	})
	if err != nil {
		log.Fatalf("build EndorseVideo: %v", err)
	}
	if err := conn.Submit(ctx, panel[0].sign(ins)); err != nil {
		fmt.Printf("repeat vote rejected: %v\n", err)
	}
}
