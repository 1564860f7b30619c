package events

import (
	"time"

	"github.com/landchain/titleledger/pkg/identity"
)

// Kind names a ledger state transition.
type Kind string

const (
	// KindLandRegistered is emitted when the admin registers a new land.
	KindLandRegistered Kind = "land.registered"

	// KindLandVerified is emitted when the admin attests the current
	// ownership claim.
	KindLandVerified Kind = "land.verified"

	// KindOwnershipTransferred is emitted when title passes to a new owner.
	KindOwnershipTransferred Kind = "ownership.transferred"

	// KindAdminChanged is emitted when admin rights move to a new identity.
	KindAdminChanged Kind = "admin.changed"
)

// Event is one committed ledger state transition, observed after the write it
// describes is fully applied. Sinks must treat events as immutable.
type Event struct {
	// ID is a unique event id assigned at emission.
	ID string `json:"id"`

	// Kind names the transition.
	Kind Kind `json:"kind"`

	// LandID is the affected land, zero for admin changes.
	LandID uint64 `json:"land_id,omitempty"`

	// Owner is the identity holding title after the transition. For admin
	// changes it is the new admin.
	Owner identity.Identity `json:"owner"`

	// PrevOwner is set on transfers (the outgoing owner) and admin changes
	// (the outgoing admin).
	PrevOwner identity.Identity `json:"prev_owner,omitempty"`

	// Timestamp is the ledger time of the transition.
	Timestamp time.Time `json:"timestamp"`
}

// Sink receives committed events. Implementations must not block for long;
// the bus delivers events on a single dispatch goroutine.
type Sink interface {
	HandleEvent(evt Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(evt Event) error

// HandleEvent implements Sink.
func (f SinkFunc) HandleEvent(evt Event) error {
	return f(evt)
}
