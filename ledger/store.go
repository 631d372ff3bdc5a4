// Package ledger implements the truchain state-transition core: the
// authorization guard, the three instruction processors, and the
// read-only registry queries.
//
// The core holds no locks and spawns no goroutines. It is invoked once
// per instruction by an external runtime that serializes writes and
// commits each instruction atomically. Every processor validates
// completely before touching the store and then performs exactly one
// mutation, so a rejected instruction can never leave partial state.
package ledger

import "github.com/IBS27/truchain-sub001/types"

// Store is the account storage the runtime provides to the core. The
// core does not specify a storage engine; it requires only these
// create-once, fixed-size semantics:
//
//   - Create fails with CodeAccountExists if the address is occupied.
//   - Put fails with CodeAccountNotFound for an absent address and
//     with CodeAccountSizeMismatch if len(data) differs from the size
//     allocated at creation. Accounts are never resized.
//   - Get returns a copy; mutating it does not affect stored state.
//   - Range visits accounts in ascending address order.
type Store interface {
	Get(addr types.Address) ([]byte, bool)
	Create(addr types.Address, data []byte) error
	Put(addr types.Address, data []byte) error
	Range(fn func(addr types.Address, data []byte) bool)
}
