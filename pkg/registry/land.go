package registry

import (
	"time"

	"github.com/landchain/titleledger/pkg/identity"
)

// LandID identifies a registered land parcel. Ids are assigned exactly once
// and never reused.
type LandID uint64

// Land is the core record: a parcel with its current owner and verification
// status. Owner changes only through transfer; Verified changes only through
// verification and transfer; records are never deleted.
type Land struct {
	ID           LandID            `json:"id"`
	Owner        identity.Identity `json:"owner"`
	SizeSqFt     uint64            `json:"size_sqft"`
	Location     string            `json:"location"`
	TitleNumber  string            `json:"title_number"`
	Verified     bool              `json:"verified"`
	RegisteredAt time.Time         `json:"registered_at"`
}

// OwnershipRecord is an immutable snapshot appended to a land's history at
// registration and at every transfer. VerifiedAtTime is the single field that
// may be amended afterwards, and only on the most recent record.
type OwnershipRecord struct {
	Owner          identity.Identity `json:"owner"`
	Timestamp      time.Time         `json:"timestamp"`
	VerifiedAtTime bool              `json:"verified_at_time"`
}

// VerificationPolicy selects what happens to a land's verified flag when
// ownership changes. The observed source systems disagree, so the choice is
// explicit configuration rather than a hard-coded rule.
type VerificationPolicy string

const (
	// PolicyReset clears the verified flag on every transfer; each new owner
	// must be re-verified before transferring again. This is the default.
	PolicyReset VerificationPolicy = "reset"

	// PolicyCarry preserves the verified flag across transfers.
	PolicyCarry VerificationPolicy = "carry"
)

// Valid reports whether the policy is a known value.
func (p VerificationPolicy) Valid() bool {
	return p == PolicyReset || p == PolicyCarry
}
