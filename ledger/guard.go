package ledger

import (
	"unicode/utf8"

	truchain "github.com/IBS27/truchain-sub001"
	"github.com/IBS27/truchain-sub001/types"
)

// The authorization guard: small composable predicates shared by the
// processors. All of them run strictly before any field mutation.

// signerIdentity returns the identity of the account at index idx,
// requiring its IsSigner flag. The runtime has already verified the
// cryptographic signature for every flagged account; the flag is the
// core's view of "this identity authorized the instruction".
func signerIdentity(ins types.Instruction, idx int) (types.Identity, error) {
	if idx >= len(ins.Accounts) {
		return types.Identity{}, truchain.ErrInvalidInstruction
	}
	ref := ins.Accounts[idx]
	if !ref.IsSigner {
		return types.Identity{}, truchain.ErrMissingSignature
	}
	return ref.Address.Identity(), nil
}

// requireAccounts checks the instruction carries exactly n account
// references, per its fixed wire contract.
func requireAccounts(ins types.Instruction, n int) error {
	if len(ins.Accounts) != n {
		return truchain.ErrInvalidInstruction
	}
	return nil
}

// validateEndorsers checks the panel shape: exactly three entries,
// pairwise distinct, none the default identity.
func validateEndorsers(endorsers []types.Identity) error {
	if len(endorsers) != types.EndorserCount {
		return truchain.ErrInvalidEndorserCount
	}
	for i, e := range endorsers {
		if e.IsZero() {
			return truchain.ErrInvalidEndorser
		}
		for j := i + 1; j < len(endorsers); j++ {
			if e == endorsers[j] {
				return truchain.ErrDuplicateEndorsers
			}
		}
	}
	return nil
}

// validateOfficialName checks the fixed-width name field shape.
func validateOfficialName(name string) error {
	if name == "" || len(name) > types.MaxNameLen || !utf8.ValidString(name) {
		return truchain.ErrInvalidOfficialName
	}
	return nil
}

// validateContentLocator checks the fixed-width locator field shape.
func validateContentLocator(locator string) error {
	if locator == "" || len(locator) > types.MaxLocatorLen {
		return truchain.ErrInvalidIpfsCid
	}
	return nil
}
