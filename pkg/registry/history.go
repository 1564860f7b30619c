package registry

import "github.com/landchain/titleledger/pkg/errors"

// HistoryLog is the append-only audit trail: one ordered sequence of
// ownership records per land, oldest first. Past entries are never removed or
// reordered; the only permitted mutation is amending the verification flag on
// the most recent entry.
type HistoryLog struct {
	records map[LandID][]OwnershipRecord
}

// NewHistoryLog creates an empty log.
func NewHistoryLog() *HistoryLog {
	return &HistoryLog{records: make(map[LandID][]OwnershipRecord)}
}

// Append adds a record to the end of id's sequence.
func (h *HistoryLog) Append(id LandID, record OwnershipRecord) {
	h.records[id] = append(h.records[id], record)
}

// AmendLastVerified flips the verification flag on the most recent record.
// This is the single sanctioned in-place edit: verification attests the
// current claim, so it marks the entry that introduced it rather than
// appending a new one.
func (h *HistoryLog) AmendLastVerified(id LandID, verified bool) error {
	seq := h.records[id]
	if len(seq) == 0 {
		return errors.NewNotFoundError("history", id.String())
	}
	seq[len(seq)-1].VerifiedAtTime = verified
	return nil
}

// Get returns a copy of the full ordered sequence for id, or a NotFoundError
// when the land has never been registered.
func (h *HistoryLog) Get(id LandID) ([]OwnershipRecord, error) {
	seq, ok := h.records[id]
	if !ok {
		return nil, errors.NewNotFoundError("history", id.String())
	}
	return append([]OwnershipRecord{}, seq...), nil
}

// Len returns the number of records for id.
func (h *HistoryLog) Len(id LandID) int {
	return len(h.records[id])
}
