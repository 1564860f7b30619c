package registry

import "github.com/landchain/titleledger/pkg/identity"

// OwnerIndex is the secondary index mapping an owner to the set of land ids
// it currently holds. It is kept consistent with the primary store by the
// service: every transfer removes from the old owner's set and inserts into
// the new owner's in the same committed step.
type OwnerIndex struct {
	byOwner map[identity.Identity][]LandID
}

// NewOwnerIndex creates an empty index.
func NewOwnerIndex() *OwnerIndex {
	return &OwnerIndex{byOwner: make(map[identity.Identity][]LandID)}
}

// Insert appends id to owner's set. Callers never double-insert.
func (x *OwnerIndex) Insert(owner identity.Identity, id LandID) {
	x.byOwner[owner] = append(x.byOwner[owner], id)
}

// Remove deletes id from owner's set by overwriting it with the set's last
// element and shrinking by one. Removal is O(1) and reorders the set; the
// index carries no ordering guarantee. The caller's invariant guarantees id
// is present.
func (x *OwnerIndex) Remove(owner identity.Identity, id LandID) {
	set := x.byOwner[owner]
	for i, held := range set {
		if held == id {
			last := len(set) - 1
			set[i] = set[last]
			set = set[:last]
			break
		}
	}
	if len(set) == 0 {
		delete(x.byOwner, owner)
		return
	}
	x.byOwner[owner] = set
}

// ListFor returns a copy of owner's current set. An unknown owner yields an
// empty set.
func (x *OwnerIndex) ListFor(owner identity.Identity) []LandID {
	return append([]LandID{}, x.byOwner[owner]...)
}
