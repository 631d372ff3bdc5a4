package truchaingrpc

import (
	"context"
	"fmt"

	truchain "github.com/IBS27/truchain-sub001"
	"github.com/IBS27/truchain-sub001/types"

	"google.golang.org/grpc"
)

// Compile-time interface check.
var _ truchain.Connection = (*Client)(nil)

// Client implements truchain.Connection for remote ledgers over gRPC
// using cramberry serialization. Rejection codes in response bodies
// are rebuilt into the same typed errors an in-process connection
// returns, so callers handle both transports identically.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a remote ledger.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(CramberryCodec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("truchain client: dial %s: %w", addr, err)
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

// wireError rebuilds a typed ledger error from a wire status pair.
func wireError(code uint32, msg string) error {
	if code == 0 {
		return nil
	}
	return &truchain.Error{Code: code, Msg: msg}
}

func (c *Client) Submit(ctx context.Context, tx types.SignedInstruction) error {
	req := &SubmitRequest{Tx: tx}
	resp := new(SubmitResponse)
	if err := c.cc.Invoke(ctx, fullMethod("Submit"), req, resp); err != nil {
		return err
	}
	return wireError(resp.Code, resp.Msg)
}

func (c *Client) Official(ctx context.Context, officialID uint64) (*types.Official, error) {
	req := &OfficialRequest{OfficialID: officialID}
	resp := new(OfficialResponse)
	if err := c.cc.Invoke(ctx, fullMethod("GetOfficial"), req, resp); err != nil {
		return nil, err
	}
	if err := wireError(resp.Code, resp.Msg); err != nil {
		return nil, err
	}
	official := new(types.Official)
	if err := official.UnmarshalBinary(resp.Account); err != nil {
		return nil, fmt.Errorf("truchain client: decode official account: %w", err)
	}
	return official, nil
}

func (c *Client) Video(ctx context.Context, official types.Address, videoHash types.Hash) (*types.Video, error) {
	req := &VideoRequest{Official: official, VideoHash: videoHash}
	resp := new(VideoResponse)
	if err := c.cc.Invoke(ctx, fullMethod("GetVideo"), req, resp); err != nil {
		return nil, err
	}
	if err := wireError(resp.Code, resp.Msg); err != nil {
		return nil, err
	}
	video := new(types.Video)
	if err := video.UnmarshalBinary(resp.Account); err != nil {
		return nil, fmt.Errorf("truchain client: decode video account: %w", err)
	}
	return video, nil
}

func (c *Client) Officials(ctx context.Context) ([]types.Official, error) {
	req := &ListOfficialsRequest{}
	resp := new(ListOfficialsResponse)
	if err := c.cc.Invoke(ctx, fullMethod("ListOfficials"), req, resp); err != nil {
		return nil, err
	}
	if err := wireError(resp.Code, resp.Msg); err != nil {
		return nil, err
	}
	officials := make([]types.Official, len(resp.Accounts))
	for i, data := range resp.Accounts {
		if err := officials[i].UnmarshalBinary(data); err != nil {
			return nil, fmt.Errorf("truchain client: decode official account %d: %w", i, err)
		}
	}
	return officials, nil
}

func (c *Client) Videos(ctx context.Context, official types.Address) ([]types.Video, error) {
	req := &ListVideosRequest{Official: official}
	resp := new(ListVideosResponse)
	if err := c.cc.Invoke(ctx, fullMethod("ListVideos"), req, resp); err != nil {
		return nil, err
	}
	if err := wireError(resp.Code, resp.Msg); err != nil {
		return nil, err
	}
	videos := make([]types.Video, len(resp.Accounts))
	for i, data := range resp.Accounts {
		if err := videos[i].UnmarshalBinary(data); err != nil {
			return nil, fmt.Errorf("truchain client: decode video account %d: %w", i, err)
		}
	}
	return videos, nil
}

func (c *Client) Role(ctx context.Context, id types.Identity) (types.Role, error) {
	req := &RoleRequest{Identity: id}
	resp := new(RoleResponse)
	if err := c.cc.Invoke(ctx, fullMethod("GetRole"), req, resp); err != nil {
		return types.RoleUser, err
	}
	if err := wireError(resp.Code, resp.Msg); err != nil {
		return types.RoleUser, err
	}
	return types.Role(resp.Role), nil
}
