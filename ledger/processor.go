package ledger

import (
	"fmt"

	truchain "github.com/IBS27/truchain-sub001"
	"github.com/IBS27/truchain-sub001/types"
)

// Processor executes one instruction against a Store. It is the pure
// state-transition function of the ledger: the caller provides the
// store, the instruction, and the ledger time, and guarantees
// serialized, atomic invocation.
//
// The admin identity is an explicit constructor parameter, not ambient
// state: it is consulted only by the RegisterOfficial authorization
// check.
type Processor struct {
	admin types.Identity
}

// NewProcessor creates a processor with the given admin identity.
func NewProcessor(admin types.Identity) *Processor {
	return &Processor{admin: admin}
}

// Admin returns the configured admin identity.
func (p *Processor) Admin() types.Identity {
	return p.admin
}

// Apply dispatches an instruction to its processor. Any returned error
// means the instruction was rejected with no state change.
func (p *Processor) Apply(st Store, ins types.Instruction, now types.Timestamp) error {
	op, ok := ins.Op()
	if !ok {
		return truchain.ErrInvalidInstruction
	}
	switch op {
	case types.OpRegisterOfficial:
		return p.registerOfficial(st, ins)
	case types.OpRegisterVideo:
		return p.registerVideo(st, ins, now)
	case types.OpEndorseVideo:
		return p.endorseVideo(st, ins)
	default:
		return truchain.ErrInvalidInstruction
	}
}

// registerOfficial creates an Official account.
// Accounts: [0] new official (writable), [1] admin (signer).
func (p *Processor) registerOfficial(st Store, ins types.Instruction) error {
	if err := requireAccounts(ins, 2); err != nil {
		return err
	}
	var args types.RegisterOfficialArgs
	if err := ins.DecodeArgs(&args); err != nil {
		return truchain.ErrInvalidInstruction
	}

	signer, err := signerIdentity(ins, 1)
	if err != nil {
		return err
	}
	if signer != p.admin {
		return truchain.ErrUnauthorizedAdmin
	}

	if err := validateOfficialName(args.Name); err != nil {
		return err
	}
	if err := validateEndorsers(args.Endorsers); err != nil {
		return err
	}

	expected, bump, err := types.OfficialAddress(args.OfficialID)
	if err != nil {
		return fmt.Errorf("derive official address: %w", err)
	}
	if ins.Accounts[0].Address != expected {
		return truchain.ErrWrongAccountAddress
	}

	official := types.Official{
		OfficialID: args.OfficialID,
		Authority:  args.Authority,
		Bump:       bump,
	}
	copy(official.Endorsers[:], args.Endorsers)
	if err := official.SetName(args.Name); err != nil {
		return truchain.ErrInvalidOfficialName
	}

	data, err := official.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode official account: %w", err)
	}
	if err := st.Create(expected, data); err != nil {
		if truchain.IsCode(err, truchain.CodeAccountExists) {
			return truchain.ErrOfficialAlreadyExists
		}
		return err
	}
	return nil
}

// registerVideo creates a Video account under an existing official.
// Accounts: [0] official, [1] new video (writable), [2] authority
// (signer).
func (p *Processor) registerVideo(st Store, ins types.Instruction, now types.Timestamp) error {
	if err := requireAccounts(ins, 3); err != nil {
		return err
	}
	var args types.RegisterVideoArgs
	if err := ins.DecodeArgs(&args); err != nil {
		return truchain.ErrInvalidInstruction
	}

	official, err := loadOfficial(st, ins.Accounts[0].Address)
	if err != nil {
		return err
	}

	signer, err := signerIdentity(ins, 2)
	if err != nil {
		return err
	}
	if signer != official.Authority {
		return truchain.ErrUnauthorizedOfficial
	}

	if err := validateContentLocator(args.ContentLocator); err != nil {
		return err
	}

	expected, bump, err := types.VideoAddress(ins.Accounts[0].Address, args.VideoHash)
	if err != nil {
		return fmt.Errorf("derive video address: %w", err)
	}
	if ins.Accounts[1].Address != expected {
		return truchain.ErrWrongAccountAddress
	}

	video := types.Video{
		Official:  ins.Accounts[0].Address,
		VideoHash: args.VideoHash,
		Timestamp: now,
		Status:    types.StatusUnverified,
		Bump:      bump,
	}
	if err := video.SetLocator(args.ContentLocator); err != nil {
		return truchain.ErrInvalidIpfsCid
	}

	data, err := video.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode video account: %w", err)
	}
	if err := st.Create(expected, data); err != nil {
		if truchain.IsCode(err, truchain.CodeAccountExists) {
			return truchain.ErrVideoAlreadyExists
		}
		return err
	}
	return nil
}

// endorseVideo appends one vote to a Video and recomputes its status.
// Accounts: [0] official, [1] video (writable), [2] endorser (signer).
func (p *Processor) endorseVideo(st Store, ins types.Instruction) error {
	if err := requireAccounts(ins, 3); err != nil {
		return err
	}
	var args types.EndorseVideoArgs
	if err := ins.DecodeArgs(&args); err != nil {
		return truchain.ErrInvalidInstruction
	}

	official, err := loadOfficial(st, ins.Accounts[0].Address)
	if err != nil {
		return err
	}
	video, err := loadVideo(st, ins.Accounts[1].Address)
	if err != nil {
		return err
	}
	if video.Official != ins.Accounts[0].Address {
		return truchain.ErrUnauthorizedOfficial
	}

	endorser, err := signerIdentity(ins, 2)
	if err != nil {
		return err
	}
	if !official.IsEndorser(endorser) {
		return truchain.ErrUnauthorizedEndorser
	}
	if video.HasVoted(endorser) {
		return truchain.ErrAlreadyVoted
	}
	// Unreachable with a 3-endorser panel, but the vote count is
	// stored independently of the panel, so it is guarded explicitly.
	if int(video.VoteCount) >= types.MaxVotes {
		return truchain.ErrTooManyVotes
	}

	if !video.AddVote(types.Vote{Endorser: endorser, IsAuthentic: args.IsAuthentic}) {
		return truchain.ErrTooManyVotes
	}

	data, err := video.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode video account: %w", err)
	}
	return st.Put(ins.Accounts[1].Address, data)
}

// loadOfficial reads and decodes an Official account, verifying the
// address matches its stored derivation.
func loadOfficial(st Store, addr types.Address) (*types.Official, error) {
	data, ok := st.Get(addr)
	if !ok {
		return nil, truchain.ErrAccountNotFound
	}
	var official types.Official
	if err := official.UnmarshalBinary(data); err != nil {
		return nil, truchain.ErrAccountNotFound
	}
	if !types.VerifyOfficialAddress(addr, official.OfficialID, official.Bump) {
		return nil, truchain.ErrWrongAccountAddress
	}
	return &official, nil
}

// loadVideo reads and decodes a Video account, verifying the address
// matches its stored derivation.
func loadVideo(st Store, addr types.Address) (*types.Video, error) {
	data, ok := st.Get(addr)
	if !ok {
		return nil, truchain.ErrAccountNotFound
	}
	var video types.Video
	if err := video.UnmarshalBinary(data); err != nil {
		return nil, truchain.ErrAccountNotFound
	}
	if !types.VerifyVideoAddress(addr, video.Official, video.VideoHash, video.Bump) {
		return nil, truchain.ErrWrongAccountAddress
	}
	return &video, nil
}
