package truchain

import (
	"errors"
	"fmt"
)

// Error codes form a flat, stable numeric namespace so client software
// can branch on code without string matching. Codes 1-10 mirror the
// on-chain program's error enum order; codes 11 and up are conditions
// surfaced by the runtime and store.
const (
	CodeUnauthorizedOfficial  uint32 = 1
	CodeUnauthorizedEndorser  uint32 = 2
	CodeAlreadyVoted          uint32 = 3
	CodeTooManyVotes          uint32 = 4
	CodeVideoAlreadyExists    uint32 = 5
	CodeInvalidOfficialName   uint32 = 6
	CodeInvalidIpfsCid        uint32 = 7
	CodeInvalidEndorserCount  uint32 = 8
	CodeDuplicateEndorsers    uint32 = 9
	CodeInvalidEndorser       uint32 = 10
	CodeOfficialAlreadyExists uint32 = 11
	CodeAccountNotFound       uint32 = 12
	CodeMissingSignature      uint32 = 13
	CodeInvalidSignature      uint32 = 14
	CodeInvalidInstruction    uint32 = 15
	CodeWrongAccountAddress   uint32 = 16
	CodeAccountExists         uint32 = 17
	CodeUnauthorizedAdmin     uint32 = 18
	CodeAccountSizeMismatch   uint32 = 19
)

// Error is a rejected-instruction error with a stable (code, message)
// pair. Every rejection aborts the entire instruction; the ledger never
// exposes partial state alongside an Error.
type Error struct {
	Code uint32
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("truchain: %s (code %d)", e.Msg, e.Code)
}

// Predefined errors, one per taxonomy entry. The messages are part of
// the wire contract and must not change between releases.
var (
	ErrUnauthorizedOfficial  = &Error{CodeUnauthorizedOfficial, "only the official's authority can register videos"}
	ErrUnauthorizedEndorser  = &Error{CodeUnauthorizedEndorser, "only approved endorsers can vote on videos"}
	ErrAlreadyVoted          = &Error{CodeAlreadyVoted, "this endorser has already voted on this video"}
	ErrTooManyVotes          = &Error{CodeTooManyVotes, "maximum number of votes reached for this video"}
	ErrVideoAlreadyExists    = &Error{CodeVideoAlreadyExists, "video already registered for this official"}
	ErrInvalidOfficialName   = &Error{CodeInvalidOfficialName, "invalid official name (must be non-empty, <= 32 bytes UTF-8)"}
	ErrInvalidIpfsCid        = &Error{CodeInvalidIpfsCid, "invalid content locator (must be non-empty and <= 64 bytes)"}
	ErrInvalidEndorserCount  = &Error{CodeInvalidEndorserCount, "must provide exactly 3 endorsers"}
	ErrDuplicateEndorsers    = &Error{CodeDuplicateEndorsers, "duplicate endorsers not allowed - each endorser must be unique"}
	ErrInvalidEndorser       = &Error{CodeInvalidEndorser, "invalid endorser identity - cannot be the default identity"}
	ErrOfficialAlreadyExists = &Error{CodeOfficialAlreadyExists, "official already registered under this id"}
	ErrAccountNotFound       = &Error{CodeAccountNotFound, "account not found"}
	ErrMissingSignature      = &Error{CodeMissingSignature, "required signer did not sign the instruction"}
	ErrInvalidSignature      = &Error{CodeInvalidSignature, "signature verification failed"}
	ErrInvalidInstruction    = &Error{CodeInvalidInstruction, "malformed instruction"}
	ErrWrongAccountAddress   = &Error{CodeWrongAccountAddress, "account address does not match its derivation"}
	ErrAccountExists         = &Error{CodeAccountExists, "account already exists at this address"}
	ErrUnauthorizedAdmin     = &Error{CodeUnauthorizedAdmin, "only the admin identity can register officials"}
	ErrAccountSizeMismatch   = &Error{CodeAccountSizeMismatch, "account data size is fixed at creation"}
)

// CodeOf extracts the stable code from an error, unwrapping as needed.
// Returns 0 if the error carries no code (including nil).
func CodeOf(err error) uint32 {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// IsCode reports whether err carries the given stable code.
func IsCode(err error, code uint32) bool {
	return CodeOf(err) == code
}
