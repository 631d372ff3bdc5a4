package truchaintest

import (
	"context"
	"crypto/ed25519"
	"testing"

	truchain "github.com/IBS27/truchain-sub001"
	"github.com/IBS27/truchain-sub001/types"
)

// Keypair is a deterministic ed25519 signing key for tests.
type Keypair struct {
	priv ed25519.PrivateKey
}

// NewKeypair derives a keypair from a single seed byte. The same seed
// always yields the same identity, so tests can name actors by seed.
func NewKeypair(seed byte) Keypair {
	var s [ed25519.SeedSize]byte
	for i := range s {
		s[i] = seed
	}
	return Keypair{priv: ed25519.NewKeyFromSeed(s[:])}
}

// Identity returns the keypair's public identity.
func (k Keypair) Identity() types.Identity {
	var id types.Identity
	copy(id[:], k.priv.Public().(ed25519.PublicKey))
	return id
}

// Sign signs the given message bytes.
func (k Keypair) Sign(msg []byte) []byte {
	return ed25519.Sign(k.priv, msg)
}

// SignInstruction wraps an instruction in a submission envelope signed
// by the given keypairs.
func SignInstruction(ins types.Instruction, signers ...Keypair) (types.SignedInstruction, error) {
	msg, err := ins.SignBytes()
	if err != nil {
		return types.SignedInstruction{}, err
	}
	tx := types.SignedInstruction{Instruction: ins}
	for _, k := range signers {
		tx.Signatures = append(tx.Signatures, types.SignerSig{
			Signer:    k.Identity(),
			Signature: k.Sign(msg),
		})
	}
	return tx, nil
}

// Harness drives a Connection in tests: it builds, signs, and submits
// instructions, failing the test on unexpected errors.
type Harness struct {
	t     *testing.T
	conn  truchain.Connection
	Admin Keypair
}

// NewHarness wraps the given connection. The admin keypair must match
// the admin identity the connection's runtime was configured with.
func NewHarness(t *testing.T, conn truchain.Connection, admin Keypair) *Harness {
	t.Helper()
	return &Harness{t: t, conn: conn, Admin: admin}
}

// Conn returns the underlying connection for direct access.
func (h *Harness) Conn() truchain.Connection {
	return h.conn
}

// Submit signs the instruction with the given keypairs and submits it.
func (h *Harness) Submit(ins types.Instruction, signers ...Keypair) error {
	h.t.Helper()
	tx, err := SignInstruction(ins, signers...)
	if err != nil {
		h.t.Fatalf("sign instruction: %v", err)
	}
	return h.conn.Submit(context.Background(), tx)
}

// MustSubmit signs and submits, failing the test on any error.
func (h *Harness) MustSubmit(ins types.Instruction, signers ...Keypair) {
	h.t.Helper()
	if err := h.Submit(ins, signers...); err != nil {
		h.t.Fatalf("submit failed: %v", err)
	}
}

// MustReject signs and submits, failing the test unless the submission
// is rejected with the given code.
func (h *Harness) MustReject(code uint32, ins types.Instruction, signers ...Keypair) {
	h.t.Helper()
	err := h.Submit(ins, signers...)
	if err == nil {
		h.t.Fatalf("expected rejection with code %d, got commit", code)
	}
	if !truchain.IsCode(err, code) {
		h.t.Fatalf("expected rejection with code %d, got %v", code, err)
	}
}

// RegisterOfficial registers an official with the harness admin as
// signer, failing the test on error.
func (h *Harness) RegisterOfficial(officialID uint64, name string, authority Keypair, endorsers ...Keypair) {
	h.t.Helper()
	ids := make([]types.Identity, len(endorsers))
	for i, k := range endorsers {
		ids[i] = k.Identity()
	}
	ins, err := types.NewRegisterOfficialInstruction(h.Admin.Identity(), types.RegisterOfficialArgs{
		OfficialID: officialID,
		Name:       name,
		Authority:  authority.Identity(),
		Endorsers:  ids,
	})
	if err != nil {
		h.t.Fatalf("build RegisterOfficial: %v", err)
	}
	h.MustSubmit(ins, h.Admin)
}

// RegisterVideo registers a video under the given official, signed by
// its authority, failing the test on error.
func (h *Harness) RegisterVideo(officialID uint64, authority Keypair, videoHash types.Hash, locator string) {
	h.t.Helper()
	ins, err := types.NewRegisterVideoInstruction(officialID, authority.Identity(), types.RegisterVideoArgs{
		VideoHash:      videoHash,
		ContentLocator: locator,
	})
	if err != nil {
		h.t.Fatalf("build RegisterVideo: %v", err)
	}
	h.MustSubmit(ins, authority)
}

// Endorse submits one endorser vote, failing the test on error.
func (h *Harness) Endorse(officialID uint64, videoHash types.Hash, endorser Keypair, isAuthentic bool) {
	h.t.Helper()
	ins, err := types.NewEndorseVideoInstruction(officialID, videoHash, endorser.Identity(), types.EndorseVideoArgs{
		IsAuthentic: isAuthentic,
	})
	if err != nil {
		h.t.Fatalf("build EndorseVideo: %v", err)
	}
	h.MustSubmit(ins, endorser)
}

// Official loads an official, failing the test on error.
func (h *Harness) Official(officialID uint64) *types.Official {
	h.t.Helper()
	official, err := h.conn.Official(context.Background(), officialID)
	if err != nil {
		h.t.Fatalf("query official %d: %v", officialID, err)
	}
	return official
}

// Video loads a video by official id and content hash, failing the
// test on error.
func (h *Harness) Video(officialID uint64, videoHash types.Hash) *types.Video {
	h.t.Helper()
	addr, _, err := types.OfficialAddress(officialID)
	if err != nil {
		h.t.Fatalf("derive official address: %v", err)
	}
	video, err := h.conn.Video(context.Background(), addr, videoHash)
	if err != nil {
		h.t.Fatalf("query video: %v", err)
	}
	return video
}

// Role classifies an identity, failing the test on error.
func (h *Harness) Role(id types.Identity) types.Role {
	h.t.Helper()
	role, err := h.conn.Role(context.Background(), id)
	if err != nil {
		h.t.Fatalf("query role: %v", err)
	}
	return role
}

// TestHash returns a deterministic content hash for tests.
func TestHash(n byte) types.Hash {
	var hash types.Hash
	for i := range hash {
		hash[i] = n
	}
	return hash
}
