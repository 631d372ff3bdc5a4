// Package truchaintest provides test utilities for ledger development:
// a configurable mock store, a signing test harness, and a conformance
// suite that any Connection implementation can be run against.
package truchaintest

import (
	"bytes"
	"sort"
	"sync"
	"sync/atomic"

	truchain "github.com/IBS27/truchain-sub001"
	"github.com/IBS27/truchain-sub001/ledger"
	"github.com/IBS27/truchain-sub001/types"
)

var _ ledger.Store = (*MockStore)(nil)

// MockStore is a configurable in-memory account store for processor
// testing. All methods are configurable via function fields;
// unconfigured methods fall through to a map-backed default with the
// standard create-once and fixed-size semantics.
type MockStore struct {
	mu       sync.Mutex
	accounts map[types.Address][]byte

	// Configurable handlers. If nil, the map-backed default is used.
	GetFn    func(types.Address) ([]byte, bool)
	CreateFn func(types.Address, []byte) error
	PutFn    func(types.Address, []byte) error
	RangeFn  func(func(types.Address, []byte) bool)

	// Call counters (atomic for concurrent access).
	GetCalls    atomic.Int64
	CreateCalls atomic.Int64
	PutCalls    atomic.Int64
	RangeCalls  atomic.Int64
}

// NewMockStore creates a MockStore with an empty backing map.
func NewMockStore() *MockStore {
	return &MockStore{accounts: make(map[types.Address][]byte)}
}

// Seed places an account directly into the backing map, bypassing the
// create-once check. Useful for arranging preexisting state.
func (m *MockStore) Seed(addr types.Address, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[addr] = append([]byte(nil), data...)
}

// Snapshot returns a copy of the backing map, for before/after
// comparisons in atomicity tests.
func (m *MockStore) Snapshot() map[types.Address][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[types.Address][]byte, len(m.accounts))
	for addr, data := range m.accounts {
		out[addr] = append([]byte(nil), data...)
	}
	return out
}

func (m *MockStore) Get(addr types.Address) ([]byte, bool) {
	m.GetCalls.Add(1)
	if m.GetFn != nil {
		return m.GetFn(addr)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.accounts[addr]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

func (m *MockStore) Create(addr types.Address, data []byte) error {
	m.CreateCalls.Add(1)
	if m.CreateFn != nil {
		return m.CreateFn(addr, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[addr]; ok {
		return truchain.ErrAccountExists
	}
	m.accounts[addr] = append([]byte(nil), data...)
	return nil
}

func (m *MockStore) Put(addr types.Address, data []byte) error {
	m.PutCalls.Add(1)
	if m.PutFn != nil {
		return m.PutFn(addr, data)
	}
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

func (m *MockStore) Range(fn func(types.Address, []byte) bool) {
	m.RangeCalls.Add(1)
	if m.RangeFn != nil {
		m.RangeFn(fn)
		return
	}
	snap := m.Snapshot()
	addrs := make([]types.Address, 0, len(snap))
	for addr := range snap {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})
	for _, addr := range addrs {
		if !fn(addr, snap[addr]) {
			return
		}
	}
}
