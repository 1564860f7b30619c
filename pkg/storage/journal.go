package storage

import (
	"time"

	"go.uber.org/zap"

	"github.com/landchain/titleledger/pkg/errors"
	"github.com/landchain/titleledger/pkg/events"
	"github.com/landchain/titleledger/pkg/identity"
	"github.com/landchain/titleledger/pkg/logging"
)

// AppendEvent appends a committed event to the durable journal. The journal
// is append-only: rows are never updated or deleted.
func (s *Store) AppendEvent(evt events.Event) error {
	prev := ""
	if !evt.PrevOwner.IsZero() {
		prev = evt.PrevOwner.Hex()
	}
	_, err := s.db.Exec(`INSERT INTO journal(event_id, kind, land_id, owner, prev_owner, ts)
		VALUES(?, ?, ?, ?, ?, ?)`,
		evt.ID, string(evt.Kind), evt.LandID, evt.Owner.Hex(), prev,
		evt.Timestamp.Format(time.RFC3339Nano),
	)
	if err != nil {
		return errors.NewStorageError("append", "failed to append journal event", err)
	}
	return nil
}

// HandleEvent implements events.Sink so the store can subscribe directly to
// the event bus. Journal failures are reported to the bus, which logs them;
// they never affect the committed write.
func (s *Store) HandleEvent(evt events.Event) error {
	return s.AppendEvent(evt)
}

// ListEvents returns journaled events for a land, oldest first. landID zero
// lists all events. limit bounds the result; zero means no bound.
func (s *Store) ListEvents(landID uint64, limit int) ([]events.Event, error) {
	query := `SELECT event_id, kind, land_id, owner, prev_owner, ts FROM journal`
	args := []interface{}{}
	if landID != 0 {
		query += ` WHERE land_id = ?`
		args = append(args, landID)
	}
	query += ` ORDER BY seq`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.NewStorageError("list", "failed to query journal", err)
	}
	defer rows.Close()

	var out []events.Event
	for rows.Next() {
		var (
			evt   events.Event
			kind  string
			owner string
			prev  string
			ts    string
		)
		if err := rows.Scan(&evt.ID, &kind, &evt.LandID, &owner, &prev, &ts); err != nil {
			return nil, errors.NewStorageError("list", "failed to scan journal row", err)
		}
		evt.Kind = events.Kind(kind)
		if evt.Owner, err = identity.Parse(owner); err != nil {
			return nil, errors.NewStorageError("list", "corrupt journal owner", err)
		}
		if prev != "" {
			if evt.PrevOwner, err = identity.Parse(prev); err != nil {
				return nil, errors.NewStorageError("list", "corrupt journal prev owner", err)
			}
		}
		if evt.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, errors.NewStorageError("list", "corrupt journal timestamp", err)
		}
		out = append(out, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("list", "failed to iterate journal", err)
	}
	return out, nil
}

// EventCount returns the number of journaled events.
func (s *Store) EventCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM journal`).Scan(&n); err != nil {
		return 0, errors.NewStorageError("count", "failed to count journal", err)
	}
	return n, nil
}

// LogJournalSize logs the journal length at startup for operator visibility.
func (s *Store) LogJournalSize() {
	n, err := s.EventCount()
	if err != nil {
		s.logger.ComponentWarn(logging.ComponentStorage, "failed to read journal size", zap.Error(err))
		return
	}
	s.logger.ComponentInfo(logging.ComponentStorage, "event journal loaded", zap.Int("events", n))
}
