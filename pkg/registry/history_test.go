package registry

import (
	"testing"
	"time"

	"github.com/landchain/titleledger/pkg/errors"
)

func TestHistoryAppendAndGet(t *testing.T) {
	h := NewHistoryLog()
	t0 := time.Now().UTC()
	h.Append(1, OwnershipRecord{Owner: ownerX, Timestamp: t0})
	h.Append(1, OwnershipRecord{Owner: ownerY, Timestamp: t0.Add(time.Minute)})

	seq, err := h.Get(1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(seq) != 2 {
		t.Fatalf("expected 2 records, got %d", len(seq))
	}
	if seq[0].Owner != ownerX || seq[1].Owner != ownerY {
		t.Error("records out of order")
	}
}

func TestHistoryGetUnknownLand(t *testing.T) {
	h := NewHistoryLog()
	if _, err := h.Get(42); !errors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestHistoryAmendLastVerified(t *testing.T) {
	h := NewHistoryLog()
	h.Append(1, OwnershipRecord{Owner: ownerX})
	h.Append(1, OwnershipRecord{Owner: ownerY})

	if err := h.AmendLastVerified(1, true); err != nil {
		t.Fatalf("AmendLastVerified failed: %v", err)
	}

	seq, _ := h.Get(1)
	if seq[0].VerifiedAtTime {
		t.Error("amend must not touch earlier records")
	}
	if !seq[1].VerifiedAtTime {
		t.Error("amend should flip the most recent record")
	}
}

func TestHistoryAmendEmptySequence(t *testing.T) {
	h := NewHistoryLog()
	if err := h.AmendLastVerified(5, true); !errors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestHistoryGetReturnsCopy(t *testing.T) {
	h := NewHistoryLog()
	h.Append(1, OwnershipRecord{Owner: ownerX})

	seq, _ := h.Get(1)
	seq[0].Owner = ownerY

	fresh, _ := h.Get(1)
	if fresh[0].Owner != ownerX {
		t.Error("Get must return a copy, not the backing slice")
	}
}
