package registry

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/landchain/titleledger/pkg/errors"
	"github.com/landchain/titleledger/pkg/events"
	"github.com/landchain/titleledger/pkg/identity"
	"github.com/landchain/titleledger/pkg/logging"
)

// Emitter receives committed ledger events. The event bus satisfies this; a
// nil emitter disables emission (used during state restore).
type Emitter interface {
	Emit(evt events.Event)
}

// Config carries construction-time settings for the ledger.
type Config struct {
	// Admin is the initial administrator, normally the deploying identity.
	Admin identity.Identity

	// Policy selects whether verification survives a transfer. Empty means
	// PolicyReset.
	Policy VerificationPolicy
}

// Service is the title ledger: a single state machine recording land
// parcels, gating attestation and transfer, and preserving a permanent
// history of every ownership event.
//
// Every mutating call is serialized behind one mutex, so given any arrival
// order each operation applies as one indivisible step and reads observe only
// fully-committed state. All validation happens before the first mutation;
// a rejected operation has zero side effects.
type Service struct {
	mu sync.RWMutex

	access  *AccessController
	lands   *LandStore
	index   *OwnerIndex
	history *HistoryLog

	policy  VerificationPolicy
	logger  *logging.ColoredLogger
	emitter Emitter

	// now is the ledger clock, swappable in tests.
	now func() time.Time

	// commitHook, when set, runs under the write lock after every successful
	// mutation with a copy of the committed state. Used for best-effort
	// state checkpointing.
	commitHook func(State)
}

// NewService creates an empty ledger with cfg.Admin as administrator.
func NewService(logger *logging.ColoredLogger, cfg Config, emitter Emitter) (*Service, error) {
	if cfg.Admin.IsZero() {
		return nil, errors.NewInvalidArgumentError("admin", "initial admin cannot be the zero identity", nil)
	}
	policy := cfg.Policy
	if policy == "" {
		policy = PolicyReset
	}
	if !policy.Valid() {
		return nil, errors.NewInvalidArgumentError("policy", "unknown verification policy", string(policy))
	}

	return &Service{
		access:  NewAccessController(cfg.Admin),
		lands:   NewLandStore(),
		index:   NewOwnerIndex(),
		history: NewHistoryLog(),
		policy:  policy,
		logger:  logger,
		emitter: emitter,
		now:     time.Now,
	}, nil
}

// SetCommitHook installs a function invoked under the write lock after every
// successful mutation with a copy of the committed state.
func (s *Service) SetCommitHook(hook func(State)) {
	s.mu.Lock()
	s.commitHook = hook
	s.mu.Unlock()
}

// Policy returns the configured verification policy.
func (s *Service) Policy() VerificationPolicy {
	return s.policy
}

// Admin returns the current administrator identity.
func (s *Service) Admin() identity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access.Admin()
}

// IsAdmin reports whether caller currently holds admin rights.
func (s *Service) IsAdmin(caller identity.Identity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access.IsAdmin(caller)
}

// RegisterLand creates a new land record owned by owner, appends the first
// ownership record, and indexes the land under owner. Admin only.
func (s *Service) RegisterLand(caller identity.Identity, id LandID, owner identity.Identity, sizeSqFt uint64, location, titleNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.access.RequireAdmin(caller, "registerLand"); err != nil {
		return err
	}
	if owner.IsZero() {
		return errors.NewInvalidArgumentError("owner", "owner cannot be the zero identity", nil)
	}
	if s.lands.Has(id) {
		return errors.NewStateConflictError("land", id.String(), "id already registered")
	}

	now := s.now().UTC()
	land := &Land{
		ID:           id,
		Owner:        owner,
		SizeSqFt:     sizeSqFt,
		Location:     location,
		TitleNumber:  titleNumber,
		Verified:     false,
		RegisteredAt: now,
	}
	if err := s.lands.Insert(land); err != nil {
		return err
	}
	s.history.Append(id, OwnershipRecord{Owner: owner, Timestamp: now, VerifiedAtTime: false})
	s.index.Insert(owner, id)

	s.logger.ComponentInfo(logging.ComponentRegistry, "land registered",
		zap.Uint64("land_id", uint64(id)),
		zap.String("owner", owner.Hex()),
		zap.Uint64("size_sqft", sizeSqFt),
	)
	s.emit(events.Event{Kind: events.KindLandRegistered, LandID: uint64(id), Owner: owner, Timestamp: now})
	s.committed()
	return nil
}

// VerifyLand attests the current ownership claim of id. It flips the
// verified flag and marks the most recent history record; it does not append
// a new one. Admin only; verifying twice is a conflict.
func (s *Service) VerifyLand(caller identity.Identity, id LandID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.access.RequireAdmin(caller, "verifyLand"); err != nil {
		return err
	}
	land, err := s.lands.Get(id)
	if err != nil {
		return err
	}
	if land.Verified {
		return errors.NewStateConflictError("land", id.String(), "already verified")
	}

	now := s.now().UTC()
	land.Verified = true
	if err := s.history.AmendLastVerified(id, true); err != nil {
		// The registration invariant guarantees at least one record.
		return errors.NewInternalError("history missing for registered land", err)
	}

	s.logger.ComponentInfo(logging.ComponentRegistry, "land verified",
		zap.Uint64("land_id", uint64(id)),
		zap.String("owner", land.Owner.Hex()),
	)
	s.emit(events.Event{Kind: events.KindLandVerified, LandID: uint64(id), Owner: land.Owner, Timestamp: now})
	s.committed()
	return nil
}

// TransferOwnership passes title of id from the caller to newOwner. The land
// must be verified at call time. Under PolicyReset the verified flag clears,
// so the new owner must be re-verified before transferring again. The owner
// index and history update in the same committed step.
func (s *Service) TransferOwnership(caller identity.Identity, id LandID, newOwner identity.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	land, err := s.lands.Get(id)
	if err != nil {
		return err
	}
	if err := s.access.RequireOwner(caller, land, "transferOwnership"); err != nil {
		return err
	}
	if !land.Verified {
		return errors.NewStateConflictError("land", id.String(), "not verified")
	}
	if newOwner.IsZero() {
		return errors.NewInvalidArgumentError("newOwner", "new owner cannot be the zero identity", nil)
	}
	if newOwner == land.Owner {
		return errors.NewInvalidArgumentError("newOwner", "new owner equals current owner", newOwner.Hex())
	}

	now := s.now().UTC()
	oldOwner := land.Owner
	land.Owner = newOwner
	if s.policy == PolicyReset {
		land.Verified = false
	}
	s.index.Remove(oldOwner, id)
	s.index.Insert(newOwner, id)
	s.history.Append(id, OwnershipRecord{Owner: newOwner, Timestamp: now, VerifiedAtTime: land.Verified})

	s.logger.ComponentInfo(logging.ComponentRegistry, "ownership transferred",
		zap.Uint64("land_id", uint64(id)),
		zap.String("old_owner", oldOwner.Hex()),
		zap.String("new_owner", newOwner.Hex()),
	)
	s.emit(events.Event{Kind: events.KindOwnershipTransferred, LandID: uint64(id), Owner: newOwner, PrevOwner: oldOwner, Timestamp: now})
	s.committed()
	return nil
}

// TransferAdmin reassigns admin rights to newAdmin. Admin only.
func (s *Service) TransferAdmin(caller, newAdmin identity.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldAdmin := s.access.Admin()
	if err := s.access.SetAdmin(caller, newAdmin); err != nil {
		return err
	}

	now := s.now().UTC()
	s.logger.ComponentInfo(logging.ComponentRegistry, "admin changed",
		zap.String("old_admin", oldAdmin.Hex()),
		zap.String("new_admin", newAdmin.Hex()),
	)
	s.emit(events.Event{Kind: events.KindAdminChanged, Owner: newAdmin, PrevOwner: oldAdmin, Timestamp: now})
	s.committed()
	return nil
}

// GetLandDetails returns a snapshot of the land record.
func (s *Service) GetLandDetails(id LandID) (Land, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lands.Snapshot(id)
}

// GetOwnershipHistory returns the ordered ownership record sequence for id,
// oldest first.
func (s *Service) GetOwnershipHistory(id LandID) ([]OwnershipRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Get(id)
}

// GetOwnerLands returns the set of land ids owner currently holds. The set
// carries no ordering guarantee.
func (s *Service) GetOwnerLands(owner identity.Identity) []LandID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.ListFor(owner)
}

// GetAllLandIDs returns every registered id in registration order.
func (s *Service) GetAllLandIDs() []LandID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lands.ListIDs()
}

// GetLandCount returns the number of registered lands.
func (s *Service) GetLandCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lands.Count()
}

// IsOwner reports whether addr holds title to id.
func (s *Service) IsOwner(id LandID, addr identity.Identity) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	land, err := s.lands.Get(id)
	if err != nil {
		return false, err
	}
	return land.Owner == addr, nil
}

func (s *Service) emit(evt events.Event) {
	if s.emitter == nil {
		return
	}
	s.emitter.Emit(evt)
}

func (s *Service) committed() {
	if s.commitHook != nil {
		s.commitHook(s.exportLocked())
	}
}
