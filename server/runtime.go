// Package server provides the reference single-node ledger runtime: an
// in-memory account store plus the envelope checks the core processors
// assume their caller performs. The runtime verifies every required
// signature, stamps the ledger clock, and serializes instruction
// execution so each instruction observes and commits state atomically.
package server

import (
	"context"
	"crypto/ed25519"
	"sync"
	"time"

	truchain "github.com/IBS27/truchain-sub001"
	"github.com/IBS27/truchain-sub001/ledger"
	"github.com/IBS27/truchain-sub001/types"
)

// Runtime executes signed instructions against a MemStore.
type Runtime struct {
	mu    sync.Mutex
	store *MemStore
	proc  *ledger.Processor
	reg   *ledger.Registry
	now   func() time.Time
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithClock overrides the runtime clock. Instruction timestamps are
// read from this clock at execution time.
func WithClock(now func() time.Time) Option {
	return func(r *Runtime) { r.now = now }
}

// NewRuntime creates a runtime with an empty store. The admin identity
// is the only key allowed to register officials.
func NewRuntime(admin types.Identity, opts ...Option) *Runtime {
	store := NewMemStore()
	r := &Runtime{
		store: store,
		proc:  ledger.NewProcessor(admin),
		reg:   ledger.NewRegistry(store, admin),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the runtime's account store.
func (r *Runtime) Store() *MemStore {
	return r.store
}

// Submit verifies the envelope's signatures and executes the
// instruction. A non-nil error means nothing was committed.
func (r *Runtime) Submit(ctx context.Context, tx types.SignedInstruction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := verifySignatures(tx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.proc.Apply(r.store, tx.Instruction, types.TimeToTimestamp(r.now()))
}

// verifySignatures checks that every account flagged as a signer has a
// valid ed25519 signature over the instruction's sign bytes.
func verifySignatures(tx types.SignedInstruction) error {
	msg, err := tx.Instruction.SignBytes()
	if err != nil {
		return truchain.ErrInvalidInstruction
	}
	for _, ref := range tx.Instruction.Accounts {
		if !ref.IsSigner {
			continue
		}
		id := ref.Address.Identity()
		sig, ok := tx.SignatureFor(id)
		if !ok {
			return truchain.ErrMissingSignature
		}
		if !ed25519.Verify(ed25519.PublicKey(id[:]), msg, sig) {
			return truchain.ErrInvalidSignature
		}
	}
	return nil
}

// Official returns the official registered under the given id.
func (r *Runtime) Official(ctx context.Context, officialID uint64) (*types.Official, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.reg.Official(officialID)
}

// Video returns the video registered under (official address, hash).
func (r *Runtime) Video(ctx context.Context, official types.Address, videoHash types.Hash) (*types.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.reg.Video(official, videoHash)
}

// Officials lists every registered official in address order.
func (r *Runtime) Officials(ctx context.Context) ([]types.Official, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.reg.Officials()
}

// Videos lists every video registered under the given official account.
func (r *Runtime) Videos(ctx context.Context, official types.Address) ([]types.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.reg.Videos(official)
}

// Role classifies an identity against the registered officials.
func (r *Runtime) Role(ctx context.Context, id types.Identity) (types.Role, error) {
	if err := ctx.Err(); err != nil {
		return types.RoleUser, err
	}
	return r.reg.RoleOf(id)
}
