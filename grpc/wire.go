package truchaingrpc

import "github.com/IBS27/truchain-sub001/types"

// Transport wrapper types for the RPC boundaries. Every response
// carries a status pair: code 0 means success, any other value is one
// of the stable rejection codes from the root package, reconstructed
// client-side as a typed error. Account records travel as their
// canonical fixed-width binary encoding rather than as field-level
// messages, so the bytes a client sees are exactly the bytes the
// ledger stores.

// SubmitRequest wraps a signed instruction for Submitter.Submit.
type SubmitRequest struct {
	Tx types.SignedInstruction `cramberry:"1"`
}

// SubmitResponse reports the outcome of a submission.
type SubmitResponse struct {
	Code uint32 `cramberry:"1"`
	Msg  string `cramberry:"2"`
}

// OfficialRequest asks for the official registered under an id.
type OfficialRequest struct {
	OfficialID uint64 `cramberry:"1"`
}

// OfficialResponse carries one Official account record.
type OfficialResponse struct {
	Code    uint32 `cramberry:"1"`
	Msg     string `cramberry:"2"`
	Account []byte `cramberry:"3"`
}

// VideoRequest asks for the video registered under (official, hash).
type VideoRequest struct {
	Official  types.Address `cramberry:"1"`
	VideoHash types.Hash    `cramberry:"2"`
}

// VideoResponse carries one Video account record.
type VideoResponse struct {
	Code    uint32 `cramberry:"1"`
	Msg     string `cramberry:"2"`
	Account []byte `cramberry:"3"`
}

// ListOfficialsRequest is the (empty) request for Querier.Officials.
type ListOfficialsRequest struct{}

// ListOfficialsResponse carries every Official account record in
// ascending address order.
type ListOfficialsResponse struct {
	Code     uint32   `cramberry:"1"`
	Msg      string   `cramberry:"2"`
	Accounts [][]byte `cramberry:"3"`
}

// ListVideosRequest asks for all videos under one official account.
type ListVideosRequest struct {
	Official types.Address `cramberry:"1"`
}

// ListVideosResponse carries the matching Video account records in
// ascending address order.
type ListVideosResponse struct {
	Code     uint32   `cramberry:"1"`
	Msg      string   `cramberry:"2"`
	Accounts [][]byte `cramberry:"3"`
}

// RoleRequest asks for the role classification of an identity.
type RoleRequest struct {
	Identity types.Identity `cramberry:"1"`
}

// RoleResponse carries the role classification.
type RoleResponse struct {
	Code uint32 `cramberry:"1"`
	Msg  string `cramberry:"2"`
	Role uint8  `cramberry:"3"`
}
