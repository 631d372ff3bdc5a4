// Package truchain defines the account model and quorum state machine
// for a video-authenticity ledger.
//
// A small set of trusted officials registers video content digests on
// the ledger, and a fixed panel of three endorsers per official votes
// on each video's authenticity. A video's status converges to Authentic
// or Disputed by 2-of-3 majority, evaluated as a pure function of the
// recorded vote tally.
//
// The core is a state-transition function: it is invoked once per
// instruction by an external ledger runtime that provides ordering and
// atomicity. Packages:
//
//   - types:   account records, derived addressing, instruction encoding
//   - ledger:  authorization guard, instruction processors, registry queries
//   - server:  reference single-node runtime (store, signatures, clock)
//   - local:   zero-copy in-process Connection adapter
//   - grpc:    gRPC transport using cramberry serialization
//   - testing: harness and mock store for application tests
package truchain

import (
	"context"

	"github.com/IBS27/truchain-sub001/types"
)

// Submitter accepts signed instructions for atomic execution.
//
// Submit returns nil when the instruction committed. A rejected
// instruction returns *Error carrying one of the stable codes in this
// package; no partial state change is observable after a rejection.
type Submitter interface {
	Submit(ctx context.Context, tx types.SignedInstruction) error
}

// Querier reads committed ledger state. All methods are read-only and
// safe for concurrent use with Submit.
type Querier interface {
	// Official returns the official registered under the given id.
	Official(ctx context.Context, officialID uint64) (*types.Official, error)

	// Video returns the video registered under (official address, hash).
	Video(ctx context.Context, official types.Address, videoHash types.Hash) (*types.Video, error)

	// Officials lists every registered official, ordered by account
	// address.
	Officials(ctx context.Context) ([]types.Official, error)

	// Videos lists every video registered under the given official
	// account, ordered by account address.
	Videos(ctx context.Context, official types.Address) ([]types.Video, error)

	// Role classifies an identity by scanning the registered officials.
	// Role detection is a read-only capability: it never participates
	// in mutation authorization.
	Role(ctx context.Context, id types.Identity) (types.Role, error)
}

// Connection is a transport-agnostic handle to a ledger runtime. Both
// the gRPC client and the in-process adapter implement this.
type Connection interface {
	Submitter
	Querier

	// Close terminates the connection.
	Close() error
}
