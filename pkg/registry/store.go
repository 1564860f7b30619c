package registry

import (
	"strconv"

	"github.com/landchain/titleledger/pkg/errors"
)

// LandStore is the primary store, keyed by land id. It keeps a parallel id
// slice so listing preserves registration order. Records are never deleted.
type LandStore struct {
	lands map[LandID]*Land
	ids   []LandID
}

// NewLandStore creates an empty store.
func NewLandStore() *LandStore {
	return &LandStore{lands: make(map[LandID]*Land)}
}

// Has reports whether id is registered.
func (s *LandStore) Has(id LandID) bool {
	_, ok := s.lands[id]
	return ok
}

// Insert adds a new land record. It fails with a StateConflictError when the
// id is already registered.
func (s *LandStore) Insert(land *Land) error {
	if s.Has(land.ID) {
		return errors.NewStateConflictError("land", land.ID.String(), "id already registered")
	}
	s.lands[land.ID] = land
	s.ids = append(s.ids, land.ID)
	return nil
}

// Get returns the mutable record for id, or a NotFoundError.
func (s *LandStore) Get(id LandID) (*Land, error) {
	land, ok := s.lands[id]
	if !ok {
		return nil, errors.NewNotFoundError("land", id.String())
	}
	return land, nil
}

// Snapshot returns a copy of the record for id, safe to hand to callers.
func (s *LandStore) Snapshot(id LandID) (Land, error) {
	land, err := s.Get(id)
	if err != nil {
		return Land{}, err
	}
	return *land, nil
}

// ListIDs returns all registered ids in registration order.
func (s *LandStore) ListIDs() []LandID {
	return append([]LandID{}, s.ids...)
}

// Count returns the number of registered lands.
func (s *LandStore) Count() int {
	return len(s.ids)
}

// String renders a land id for error context.
func (id LandID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
