// Package local provides a zero-copy, in-process ledger connection.
//
// For applications compiled into the same binary as the ledger
// runtime, this adapter exposes the runtime behind the Connection
// interface with no serialization overhead.
package local

import (
	"context"

	truchain "github.com/IBS27/truchain-sub001"
	"github.com/IBS27/truchain-sub001/server"
	"github.com/IBS27/truchain-sub001/types"
)

// Compile-time interface check.
var _ truchain.Connection = (*Connection)(nil)

// Connection wraps an in-process Runtime.
type Connection struct {
	rt *server.Runtime
}

// NewConnection creates an in-process connection over a fresh runtime
// configured with the given admin identity.
func NewConnection(admin types.Identity, opts ...server.Option) *Connection {
	return &Connection{rt: server.NewRuntime(admin, opts...)}
}

// Wrap adapts an existing runtime.
func Wrap(rt *server.Runtime) *Connection {
	return &Connection{rt: rt}
}

func (c *Connection) Submit(ctx context.Context, tx types.SignedInstruction) error {
	return c.rt.Submit(ctx, tx)
}

func (c *Connection) Official(ctx context.Context, officialID uint64) (*types.Official, error) {
	return c.rt.Official(ctx, officialID)
}

func (c *Connection) Video(ctx context.Context, official types.Address, videoHash types.Hash) (*types.Video, error) {
	return c.rt.Video(ctx, official, videoHash)
}

func (c *Connection) Officials(ctx context.Context) ([]types.Official, error) {
	return c.rt.Officials(ctx)
}

func (c *Connection) Videos(ctx context.Context, official types.Address) ([]types.Video, error) {
	return c.rt.Videos(ctx, official)
}

func (c *Connection) Role(ctx context.Context, id types.Identity) (types.Role, error) {
	return c.rt.Role(ctx, id)
}

func (c *Connection) Close() error { return nil }

// Runtime returns the underlying runtime for advanced use cases.
func (c *Connection) Runtime() *server.Runtime {
	return c.rt
}
