package truchaingrpc

import (
	"context"
	"errors"
	"log/slog"
	"net"

	truchain "github.com/IBS27/truchain-sub001"
	"github.com/IBS27/truchain-sub001/server"

	"google.golang.org/grpc"
)

// Compile-time interface check.
var _ LedgerServiceServer = (*GRPCServer)(nil)

// GRPCServer exposes a ledger runtime over gRPC. Rejections carry
// their stable code in the response body; a transport-level error is
// reserved for failures outside the ledger's error taxonomy.
type GRPCServer struct {
	rt  *server.Runtime
	log *slog.Logger
}

// NewGRPCServer creates a gRPC server wrapping the given runtime.
// A nil logger disables request logging.
func NewGRPCServer(rt *server.Runtime, log *slog.Logger) *GRPCServer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &GRPCServer{rt: rt, log: log}
}

// Register adds the ledger service to a gRPC server.
func (s *GRPCServer) Register(gs *grpc.Server) {
	RegisterLedgerServiceServer(gs, s)
}

// Serve starts the gRPC server on the given listener.
func (s *GRPCServer) Serve(lis net.Listener, opts ...grpc.ServerOption) error {
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs.Serve(lis)
}

// Runtime returns the underlying runtime for advanced use.
func (s *GRPCServer) Runtime() *server.Runtime {
	return s.rt
}

// status maps an operation error to the wire status pair. Errors
// outside the ledger taxonomy are returned as-is and surface as
// transport errors.
func status(err error) (uint32, string, error) {
	if err == nil {
		return 0, "", nil
	}
	var terr *truchain.Error
	if errors.As(err, &terr) {
		return terr.Code, terr.Msg, nil
	}
	return 0, "", err
}

func (s *GRPCServer) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	err := s.rt.Submit(ctx, req.Tx)
	code, msg, err := status(err)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		s.log.Debug("submission rejected", "code", code, "msg", msg)
	}
	return &SubmitResponse{Code: code, Msg: msg}, nil
}

func (s *GRPCServer) GetOfficial(ctx context.Context, req *OfficialRequest) (*OfficialResponse, error) {
	official, err := s.rt.Official(ctx, req.OfficialID)
	code, msg, err := status(err)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return &OfficialResponse{Code: code, Msg: msg}, nil
	}
	data, err := official.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &OfficialResponse{Account: data}, nil
}

func (s *GRPCServer) GetVideo(ctx context.Context, req *VideoRequest) (*VideoResponse, error) {
	video, err := s.rt.Video(ctx, req.Official, req.VideoHash)
	code, msg, err := status(err)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return &VideoResponse{Code: code, Msg: msg}, nil
	}
	data, err := video.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &VideoResponse{Account: data}, nil
}

func (s *GRPCServer) ListOfficials(ctx context.Context, _ *ListOfficialsRequest) (*ListOfficialsResponse, error) {
	officials, err := s.rt.Officials(ctx)
	code, msg, err := status(err)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return &ListOfficialsResponse{Code: code, Msg: msg}, nil
	}
	accounts := make([][]byte, len(officials))
	for i := range officials {
		accounts[i], err = officials[i].MarshalBinary()
		if err != nil {
			return nil, err
		}
	}
	return &ListOfficialsResponse{Accounts: accounts}, nil
}

func (s *GRPCServer) ListVideos(ctx context.Context, req *ListVideosRequest) (*ListVideosResponse, error) {
	videos, err := s.rt.Videos(ctx, req.Official)
	code, msg, err := status(err)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return &ListVideosResponse{Code: code, Msg: msg}, nil
	}
	accounts := make([][]byte, len(videos))
	for i := range videos {
		accounts[i], err = videos[i].MarshalBinary()
		if err != nil {
			return nil, err
		}
	}
	return &ListVideosResponse{Accounts: accounts}, nil
}

func (s *GRPCServer) GetRole(ctx context.Context, req *RoleRequest) (*RoleResponse, error) {
	role, err := s.rt.Role(ctx, req.Identity)
	code, msg, err := status(err)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return &RoleResponse{Code: code, Msg: msg}, nil
	}
	return &RoleResponse{Role: uint8(role)}, nil
}
