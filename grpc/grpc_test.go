package truchaingrpc_test

import (
	"context"
	"net"
	"testing"
	"time"

	truchain "github.com/IBS27/truchain-sub001"
	truchaingrpc "github.com/IBS27/truchain-sub001/grpc"
	"github.com/IBS27/truchain-sub001/server"
	truchaintest "github.com/IBS27/truchain-sub001/testing"
	"github.com/IBS27/truchain-sub001/types"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// startServer starts a gRPC server on a random port and returns the
// listener address and a cleanup function.
func startServer(t *testing.T, gs *truchaingrpc.GRPCServer) (string, func()) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := grpc.NewServer()
	gs.Register(s)

	go func() {
		if err := s.Serve(lis); err != nil {
			// Ignore errors from graceful stop.
		}
	}()

	return lis.Addr().String(), func() {
		s.GracefulStop()
	}
}

func dial(t *testing.T, addr string) *truchaingrpc.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := truchaingrpc.Dial(ctx, addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return client
}

func TestGRPC_ConnectionConformance(t *testing.T) {
	truchaintest.RunConnectionSuite(t, func(admin types.Identity) truchain.Connection {
		gs := truchaingrpc.NewGRPCServer(server.NewRuntime(admin), nil)
		addr, cleanup := startServer(t, gs)
		t.Cleanup(cleanup)
		return dial(t, addr)
	})
}

func TestGRPC_RejectionCarriesStableCode(t *testing.T) {
	admin := truchaintest.NewKeypair(0xAD)
	outsider := truchaintest.NewKeypair(0xEE)

	gs := truchaingrpc.NewGRPCServer(server.NewRuntime(admin.Identity()), nil)
	addr, cleanup := startServer(t, gs)
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	ins, err := types.NewRegisterOfficialInstruction(outsider.Identity(), types.RegisterOfficialArgs{
		OfficialID: 1,
		Name:       "impostor",
		Authority:  outsider.Identity(),
		Endorsers: []types.Identity{
			truchaintest.NewKeypair(0x11).Identity(),
			truchaintest.NewKeypair(0x12).Identity(),
			truchaintest.NewKeypair(0x13).Identity(),
		},
	})
	if err != nil {
		t.Fatalf("build instruction: %v", err)
	}
	tx, err := truchaintest.SignInstruction(ins, outsider)
	if err != nil {
		t.Fatalf("sign instruction: %v", err)
	}

	err = client.Submit(context.Background(), tx)
	if err == nil {
		t.Fatal("expected rejection, got commit")
	}
	if !truchain.IsCode(err, truchain.CodeUnauthorizedAdmin) {
		t.Fatalf("expected code %d, got %v", truchain.CodeUnauthorizedAdmin, err)
	}
}

func TestGRPC_QueryMissingAccount(t *testing.T) {
	admin := truchaintest.NewKeypair(0xAD)
	gs := truchaingrpc.NewGRPCServer(server.NewRuntime(admin.Identity()), nil)
	addr, cleanup := startServer(t, gs)
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	_, err := client.Official(context.Background(), 404)
	if !truchain.IsCode(err, truchain.CodeAccountNotFound) {
		t.Fatalf("expected account-not-found, got %v", err)
	}
}

func TestGRPC_RecordRoundTrip(t *testing.T) {
	admin := truchaintest.NewKeypair(0xAD)
	authority := truchaintest.NewKeypair(0x01)
	e1, e2, e3 := truchaintest.NewKeypair(0x11), truchaintest.NewKeypair(0x12), truchaintest.NewKeypair(0x13)

	rt := server.NewRuntime(admin.Identity())
	gs := truchaingrpc.NewGRPCServer(rt, nil)
	addr, cleanup := startServer(t, gs)
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	h := truchaintest.NewHarness(t, client, admin)
	h.RegisterOfficial(9, "studio", authority, e1, e2, e3)
	h.RegisterVideo(9, authority, truchaintest.TestHash(0x42), "bafybeigdyrzt5roundtrip")

	// The record seen over the wire must equal the record the
	// in-process runtime holds.
	remote := h.Video(9, truchaintest.TestHash(0x42))
	officialAddr, _, err := types.OfficialAddress(9)
	if err != nil {
		t.Fatalf("derive official address: %v", err)
	}
	direct, err := rt.Video(context.Background(), officialAddr, truchaintest.TestHash(0x42))
	if err != nil {
		t.Fatalf("direct query: %v", err)
	}
	if *remote != *direct {
		t.Fatalf("wire record diverges from stored record:\n%+v\n%+v", remote, direct)
	}

	videos, err := client.Videos(context.Background(), officialAddr)
	if err != nil {
		t.Fatalf("list videos: %v", err)
	}
	if len(videos) != 1 || videos[0] != *direct {
		t.Fatalf("list videos mismatch: %+v", videos)
	}
}
