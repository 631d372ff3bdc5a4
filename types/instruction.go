package types

import (
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
)

// Instruction discriminators. The first byte of Instruction.Data
// selects the operation; the remainder is the cramberry-encoded
// argument tuple.
const (
	OpRegisterOfficial byte = 0x01
	OpRegisterVideo    byte = 0x02
	OpEndorseVideo     byte = 0x03
)

// AccountRef names one account an instruction touches, with flags for
// whether its key must have signed the transaction and whether the
// instruction mutates it. The per-instruction account order is part of
// the wire contract.
type AccountRef struct {
	Address    Address `cramberry:"1"`
	IsSigner   bool    `cramberry:"2"`
	IsWritable bool    `cramberry:"3"`
}

// Instruction is one typed message submitted to the ledger: a
// discriminated argument payload plus the fixed-order account list.
type Instruction struct {
	Data     []byte       `cramberry:"1"`
	Accounts []AccountRef `cramberry:"2"`
}

// Op returns the instruction discriminator, or false for an empty
// payload.
func (ins Instruction) Op() (byte, bool) {
	if len(ins.Data) == 0 {
		return 0, false
	}
	return ins.Data[0], true
}

// DecodeArgs deserializes the argument tuple into v.
func (ins Instruction) DecodeArgs(v any) error {
	if len(ins.Data) < 1 {
		return fmt.Errorf("instruction has no payload")
	}
	if err := cramberry.Unmarshal(ins.Data[1:], v); err != nil {
		return fmt.Errorf("decode instruction args: %w", err)
	}
	return nil
}

// SignBytes returns the canonical byte encoding of the instruction,
// the message every required signer signs. Cramberry encoding is
// deterministic, so all parties derive identical sign bytes.
func (ins Instruction) SignBytes() ([]byte, error) {
	data, err := cramberry.Marshal(ins)
	if err != nil {
		return nil, fmt.Errorf("encode instruction sign bytes: %w", err)
	}
	return data, nil
}

func encodeInstruction(op byte, args any, accounts []AccountRef) (Instruction, error) {
	payload, err := cramberry.Marshal(args)
	if err != nil {
		return Instruction{}, fmt.Errorf("encode instruction args: %w", err)
	}
	data := make([]byte, 1+len(payload))
	data[0] = op
	copy(data[1:], payload)
	return Instruction{Data: data, Accounts: accounts}, nil
}

// RegisterOfficialArgs is the argument tuple for OpRegisterOfficial.
type RegisterOfficialArgs struct {
	OfficialID uint64     `cramberry:"1"`
	Name       string     `cramberry:"2"`
	Authority  Identity   `cramberry:"3"`
	Endorsers  []Identity `cramberry:"4"`
}

// RegisterVideoArgs is the argument tuple for OpRegisterVideo.
type RegisterVideoArgs struct {
	VideoHash      Hash   `cramberry:"1"`
	ContentLocator string `cramberry:"2"`
}

// EndorseVideoArgs is the argument tuple for OpEndorseVideo.
type EndorseVideoArgs struct {
	IsAuthentic bool `cramberry:"1"`
}

// NewRegisterOfficialInstruction builds a RegisterOfficial instruction.
// Account order: [0] the new Official account (writable), [1] the
// admin (signer).
func NewRegisterOfficialInstruction(admin Identity, args RegisterOfficialArgs) (Instruction, error) {
	official, _, err := OfficialAddress(args.OfficialID)
	if err != nil {
		return Instruction{}, err
	}
	return encodeInstruction(OpRegisterOfficial, args, []AccountRef{
		{Address: official, IsWritable: true},
		{Address: admin.Address(), IsSigner: true},
	})
}

// NewRegisterVideoInstruction builds a RegisterVideo instruction.
// Account order: [0] the Official account, [1] the new Video account
// (writable), [2] the official's authority (signer).
func NewRegisterVideoInstruction(officialID uint64, authority Identity, args RegisterVideoArgs) (Instruction, error) {
	official, _, err := OfficialAddress(officialID)
	if err != nil {
		return Instruction{}, err
	}
	video, _, err := VideoAddress(official, args.VideoHash)
	if err != nil {
		return Instruction{}, err
	}
	return encodeInstruction(OpRegisterVideo, args, []AccountRef{
		{Address: official},
		{Address: video, IsWritable: true},
		{Address: authority.Address(), IsSigner: true},
	})
}

// NewEndorseVideoInstruction builds an EndorseVideo instruction.
// Account order: [0] the Official account, [1] the Video account
// (writable), [2] the voting endorser (signer).
func NewEndorseVideoInstruction(officialID uint64, videoHash Hash, endorser Identity, args EndorseVideoArgs) (Instruction, error) {
	official, _, err := OfficialAddress(officialID)
	if err != nil {
		return Instruction{}, err
	}
	video, _, err := VideoAddress(official, videoHash)
	if err != nil {
		return Instruction{}, err
	}
	return encodeInstruction(OpEndorseVideo, args, []AccountRef{
		{Address: official},
		{Address: video, IsWritable: true},
		{Address: endorser.Address(), IsSigner: true},
	})
}

// SignerSig pairs a signer identity with its ed25519 signature over
// the instruction's sign bytes.
type SignerSig struct {
	Signer    Identity `cramberry:"1"`
	Signature []byte   `cramberry:"2"`
}

// SignedInstruction is the submission envelope: the instruction plus
// one signature per required signer. The runtime verifies a valid
// signature exists for every account flagged IsSigner before the
// instruction reaches the processor.
type SignedInstruction struct {
	Instruction Instruction `cramberry:"1"`
	Signatures  []SignerSig `cramberry:"2"`
}

// SignatureFor returns the signature bytes for the given signer, or
// false if the envelope carries none.
func (si SignedInstruction) SignatureFor(id Identity) ([]byte, bool) {
	for _, s := range si.Signatures {
		if s.Signer == id {
			return s.Signature, true
		}
	}
	return nil, false
}
