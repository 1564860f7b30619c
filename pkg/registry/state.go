package registry

import (
	"github.com/landchain/titleledger/pkg/errors"
	"github.com/landchain/titleledger/pkg/identity"
)

// State is a full export of the ledger: admin, every land in registration
// order, and every history sequence. The owner index is derived state and is
// rebuilt on restore rather than exported.
type State struct {
	Admin   identity.Identity           `json:"admin"`
	Lands   []Land                      `json:"lands"`
	History map[LandID][]OwnershipRecord `json:"history"`
}

// ExportState returns a deep copy of the current ledger state, suitable for
// checkpointing.
func (s *Service) ExportState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exportLocked()
}

// exportLocked builds the state copy; callers hold at least the read lock.
func (s *Service) exportLocked() State {
	st := State{
		Admin:   s.access.Admin(),
		Lands:   make([]Land, 0, s.lands.Count()),
		History: make(map[LandID][]OwnershipRecord, s.lands.Count()),
	}
	for _, id := range s.lands.ids {
		st.Lands = append(st.Lands, *s.lands.lands[id])
		st.History[id] = append([]OwnershipRecord{}, s.history.records[id]...)
	}
	return st
}

// RestoreState replaces the ledger contents with st, rebuilding the owner
// index from the land records. It validates the core invariants before
// touching current state; a restore either applies fully or not at all.
func (s *Service) RestoreState(st State) error {
	if st.Admin.IsZero() {
		return errors.NewInvalidArgumentError("admin", "restored admin cannot be the zero identity", nil)
	}

	lands := NewLandStore()
	index := NewOwnerIndex()
	history := NewHistoryLog()

	for i := range st.Lands {
		land := st.Lands[i]
		if land.Owner.IsZero() {
			return errors.NewInvalidArgumentError("owner", "restored land has zero owner", land.ID.String())
		}
		seq := st.History[land.ID]
		if len(seq) == 0 {
			return errors.NewInvalidArgumentError("history", "restored land has empty history", land.ID.String())
		}
		if seq[len(seq)-1].Owner != land.Owner {
			return errors.NewInvalidArgumentError("history", "history tail does not match current owner", land.ID.String())
		}

		copied := land
		if err := lands.Insert(&copied); err != nil {
			return err
		}
		index.Insert(land.Owner, land.ID)
		for _, rec := range seq {
			history.Append(land.ID, rec)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = NewAccessController(st.Admin)
	s.lands = lands
	s.index = index
	s.history = history
	return nil
}
