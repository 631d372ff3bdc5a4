package ledger

import (
	"github.com/IBS27/truchain-sub001/types"
)

// Registry answers read queries against a Store. It never mutates
// state; the caller guarantees the store is not written concurrently
// with a query.
type Registry struct {
	st    Store
	admin types.Identity
}

// NewRegistry creates a registry over the given store. The admin
// identity is needed only to answer role queries.
func NewRegistry(st Store, admin types.Identity) *Registry {
	return &Registry{st: st, admin: admin}
}

// Official loads the official registered under the given id.
func (r *Registry) Official(officialID uint64) (*types.Official, error) {
	addr, _, err := types.OfficialAddress(officialID)
	if err != nil {
		return nil, err
	}
	return loadOfficial(r.st, addr)
}

// Video loads the video registered under the given official account
// with the given content hash.
func (r *Registry) Video(official types.Address, videoHash types.Hash) (*types.Video, error) {
	addr, _, err := types.VideoAddress(official, videoHash)
	if err != nil {
		return nil, err
	}
	return loadVideo(r.st, addr)
}

// Officials returns every registered official, in ascending account
// address order. Official accounts are recognized by their fixed
// record size; Video accounts have a different size and are skipped.
func (r *Registry) Officials() ([]types.Official, error) {
	var out []types.Official
	var decodeErr error
	r.st.Range(func(addr types.Address, data []byte) bool {
		if len(data) != types.OfficialAccountSize {
			return true
		}
		var official types.Official
		if err := official.UnmarshalBinary(data); err != nil {
			decodeErr = err
			return false
		}
		out = append(out, official)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return out, nil
}

// Videos returns every video registered under the given official
// account, in ascending account address order.
func (r *Registry) Videos(official types.Address) ([]types.Video, error) {
	var out []types.Video
	var decodeErr error
	r.st.Range(func(addr types.Address, data []byte) bool {
		if len(data) != types.VideoAccountSize {
			return true
		}
		var video types.Video
		if err := video.UnmarshalBinary(data); err != nil {
			decodeErr = err
			return false
		}
		if video.Official == official {
			out = append(out, video)
		}
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return out, nil
}

// RoleOf classifies an identity. Admin takes precedence, then official
// authority, then endorser; an identity holding several of those hats
// reports the highest. An identity holding none is a plain user.
func (r *Registry) RoleOf(id types.Identity) (types.Role, error) {
	if id == r.admin {
		return types.RoleAdmin, nil
	}
	role := types.RoleUser
	var decodeErr error
	r.st.Range(func(addr types.Address, data []byte) bool {
		if len(data) != types.OfficialAccountSize {
			return true
		}
		var official types.Official
		if err := official.UnmarshalBinary(data); err != nil {
			decodeErr = err
			return false
		}
		if official.Authority == id {
			// Nothing below admin outranks authority; stop here.
			role = types.RoleOfficial
			return false
		}
		if official.IsEndorser(id) {
			// Keep scanning: a later official may hold id as authority.
			role = types.RoleEndorser
		}
		return true
	})
	if decodeErr != nil {
		return types.RoleUser, decodeErr
	}
	return role, nil
}
