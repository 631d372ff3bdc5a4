package server

import (
	"bytes"
	"sort"
	"sync"

	truchain "github.com/IBS27/truchain-sub001"
	"github.com/IBS27/truchain-sub001/types"
)

// MemStore is an in-memory account store. It implements ledger.Store
// with create-once and fixed-size semantics and is safe for concurrent
// use; the Runtime additionally serializes all writes.
type MemStore struct {
	mu       sync.RWMutex
	accounts map[types.Address][]byte
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{accounts: make(map[types.Address][]byte)}
}

// Get returns a copy of the account data at addr.
func (m *MemStore) Get(addr types.Address) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.accounts[addr]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// Create stores a new account at addr. The address must be vacant.
func (m *MemStore) Create(addr types.Address, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[addr]; ok {
		return truchain.ErrAccountExists
	}
	m.accounts[addr] = append([]byte(nil), data...)
	return nil
}

// Put overwrites an existing account at addr. The new data must match
// the account's size exactly; accounts never grow or shrink.
func (m *MemStore) Put(addr types.Address, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.accounts[addr]
	if !ok {
		return truchain.ErrAccountNotFound
	}
	if len(data) != len(old) {
		return truchain.ErrAccountSizeMismatch
	}
	m.accounts[addr] = append([]byte(nil), data...)
	return nil
}

// Range calls fn for every account in ascending address order, with a
// copy of each account's data, until fn returns false. The iteration
// runs over a snapshot of addresses taken at entry.
func (m *MemStore) Range(fn func(addr types.Address, data []byte) bool) {
	m.mu.RLock()
	addrs := make([]types.Address, 0, len(m.accounts))
	for addr := range m.accounts {
		addrs = append(addrs, addr)
	}
	m.mu.RUnlock()

	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})

	for _, addr := range addrs {
		data, ok := m.Get(addr)
		if !ok {
			continue
		}
		if !fn(addr, data) {
			return
		}
	}
}

// Len returns the number of accounts in the store.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts)
}
