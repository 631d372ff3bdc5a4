package truchaingrpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
)

const serviceName = "truchain.v1.LedgerService"

// LedgerServiceServer is the server-side interface for the ledger gRPC
// service.
type LedgerServiceServer interface {
	Submit(context.Context, *SubmitRequest) (*SubmitResponse, error)
	GetOfficial(context.Context, *OfficialRequest) (*OfficialResponse, error)
	GetVideo(context.Context, *VideoRequest) (*VideoResponse, error)
	ListOfficials(context.Context, *ListOfficialsRequest) (*ListOfficialsResponse, error)
	ListVideos(context.Context, *ListVideosRequest) (*ListVideosResponse, error)
	GetRole(context.Context, *RoleRequest) (*RoleResponse, error)
}

// RegisterLedgerServiceServer registers the LedgerServiceServer on a
// gRPC server.
func RegisterLedgerServiceServer(s *grpc.Server, srv LedgerServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// --- Handler functions ---

func handlerSubmit(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(SubmitRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).Submit(ctx, req)
}

func handlerGetOfficial(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(OfficialRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).GetOfficial(ctx, req)
}

func handlerGetVideo(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(VideoRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).GetVideo(ctx, req)
}

func handlerListOfficials(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(ListOfficialsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).ListOfficials(ctx, req)
}

func handlerListVideos(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(ListVideosRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).ListVideos(ctx, req)
}

func handlerGetRole(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(RoleRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).GetRole(ctx, req)
}

// fullMethod builds the full gRPC method path.
func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

// serviceDesc is the manual gRPC service descriptor for the ledger.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Submit", Handler: handlerSubmit},
		{MethodName: "GetOfficial", Handler: handlerGetOfficial},
		{MethodName: "GetVideo", Handler: handlerGetVideo},
		{MethodName: "ListOfficials", Handler: handlerListOfficials},
		{MethodName: "ListVideos", Handler: handlerListVideos},
		{MethodName: "GetRole", Handler: handlerGetRole},
	},
	Metadata: "truchain/v1/service.cram",
}
