package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/landchain/titleledger/pkg/errors"
	"github.com/landchain/titleledger/pkg/identity"
	"github.com/landchain/titleledger/pkg/logging"
	"github.com/landchain/titleledger/pkg/registry"
)

const schema = `
CREATE TABLE IF NOT EXISTS lands (
	id INTEGER PRIMARY KEY,
	position INTEGER NOT NULL,
	owner TEXT NOT NULL,
	size_sqft INTEGER NOT NULL,
	location TEXT NOT NULL,
	title_number TEXT NOT NULL,
	verified INTEGER NOT NULL,
	registered_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS history (
	land_id INTEGER NOT NULL,
	seq INTEGER NOT NULL,
	owner TEXT NOT NULL,
	ts TEXT NOT NULL,
	verified_at_time INTEGER NOT NULL,
	PRIMARY KEY (land_id, seq)
);
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS journal (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	land_id INTEGER NOT NULL,
	owner TEXT NOT NULL,
	prev_owner TEXT NOT NULL DEFAULT '',
	ts TEXT NOT NULL
);
`

// Store checkpoints ledger state and journals committed events in a local
// sqlite database. The core state machine stays in memory; the store exists
// so a restart reconstructs identical state from the last checkpoint.
type Store struct {
	db     *sql.DB
	logger *logging.ColoredLogger
	path   string
}

// Open creates or opens the ledger database under dataDir.
func Open(logger *logging.ColoredLogger, dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, errors.NewStorageError("open", fmt.Sprintf("failed to create data dir %s", dataDir), err)
	}

	path := filepath.Join(dataDir, "ledger.db")
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, errors.NewStorageError("open", fmt.Sprintf("failed to open %s", path), err)
	}
	// The whole ledger serializes writes already; one connection avoids
	// sqlite lock contention.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewStorageError("init", "failed to initialize schema", err)
	}

	logger.ComponentInfo(logging.ComponentStorage, "ledger database opened", zap.String("path", path))
	return &Store{db: db, logger: logger, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SaveState replaces the persisted checkpoint with st in one transaction.
func (s *Store) SaveState(st registry.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.NewStorageError("checkpoint", "failed to begin transaction", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM lands", "DELETE FROM history"} {
		if _, err := tx.Exec(stmt); err != nil {
			return errors.NewStorageError("checkpoint", "failed to clear tables", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta(key, value) VALUES('admin', ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value`, st.Admin.Hex()); err != nil {
		return errors.NewStorageError("checkpoint", "failed to save admin", err)
	}

	landStmt, err := tx.Prepare(`INSERT INTO lands(id, position, owner, size_sqft, location, title_number, verified, registered_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.NewStorageError("checkpoint", "failed to prepare land insert", err)
	}
	defer landStmt.Close()

	histStmt, err := tx.Prepare(`INSERT INTO history(land_id, seq, owner, ts, verified_at_time)
		VALUES(?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.NewStorageError("checkpoint", "failed to prepare history insert", err)
	}
	defer histStmt.Close()

	for pos, land := range st.Lands {
		if _, err := landStmt.Exec(
			uint64(land.ID), pos, land.Owner.Hex(), land.SizeSqFt,
			land.Location, land.TitleNumber, boolToInt(land.Verified),
			land.RegisteredAt.Format(time.RFC3339Nano),
		); err != nil {
			return errors.NewStorageError("checkpoint", fmt.Sprintf("failed to save land %d", land.ID), err)
		}
		for seq, rec := range st.History[land.ID] {
			if _, err := histStmt.Exec(
				uint64(land.ID), seq, rec.Owner.Hex(),
				rec.Timestamp.Format(time.RFC3339Nano), boolToInt(rec.VerifiedAtTime),
			); err != nil {
				return errors.NewStorageError("checkpoint", fmt.Sprintf("failed to save history for land %d", land.ID), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageError("checkpoint", "failed to commit", err)
	}
	return nil
}

// LoadState reads the persisted checkpoint. ok is false when the database
// holds no checkpoint yet.
func (s *Store) LoadState() (st registry.State, ok bool, err error) {
	var adminHex string
	row := s.db.QueryRow(`SELECT value FROM meta WHERE key='admin'`)
	if scanErr := row.Scan(&adminHex); scanErr != nil {
		if scanErr == sql.ErrNoRows {
			return registry.State{}, false, nil
		}
		return registry.State{}, false, errors.NewStorageError("load", "failed to read admin", scanErr)
	}
	adminID, err := identity.Parse(adminHex)
	if err != nil {
		return registry.State{}, false, errors.NewStorageError("load", "corrupt admin address", err)
	}
	st.Admin = adminID
	st.History = make(map[registry.LandID][]registry.OwnershipRecord)

	rows, err := s.db.Query(`SELECT id, owner, size_sqft, location, title_number, verified, registered_at
		FROM lands ORDER BY position`)
	if err != nil {
		return registry.State{}, false, errors.NewStorageError("load", "failed to read lands", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       uint64
			ownerHex string
			verified int
			regAt    string
			land     registry.Land
		)
		if err := rows.Scan(&id, &ownerHex, &land.SizeSqFt, &land.Location, &land.TitleNumber, &verified, &regAt); err != nil {
			return registry.State{}, false, errors.NewStorageError("load", "failed to scan land", err)
		}
		land.ID = registry.LandID(id)
		land.Verified = verified != 0
		if land.Owner, err = identity.Parse(ownerHex); err != nil {
			return registry.State{}, false, errors.NewStorageError("load", fmt.Sprintf("corrupt owner for land %d", id), err)
		}
		if land.RegisteredAt, err = time.Parse(time.RFC3339Nano, regAt); err != nil {
			return registry.State{}, false, errors.NewStorageError("load", fmt.Sprintf("corrupt timestamp for land %d", id), err)
		}
		st.Lands = append(st.Lands, land)
	}
	if err := rows.Err(); err != nil {
		return registry.State{}, false, errors.NewStorageError("load", "failed to iterate lands", err)
	}

	histRows, err := s.db.Query(`SELECT land_id, owner, ts, verified_at_time FROM history ORDER BY land_id, seq`)
	if err != nil {
		return registry.State{}, false, errors.NewStorageError("load", "failed to read history", err)
	}
	defer histRows.Close()

	for histRows.Next() {
		var (
			landID   uint64
			ownerHex string
			ts       string
			vat      int
			rec      registry.OwnershipRecord
		)
		if err := histRows.Scan(&landID, &ownerHex, &ts, &vat); err != nil {
			return registry.State{}, false, errors.NewStorageError("load", "failed to scan history", err)
		}
		if rec.Owner, err = identity.Parse(ownerHex); err != nil {
			return registry.State{}, false, errors.NewStorageError("load", fmt.Sprintf("corrupt history owner for land %d", landID), err)
		}
		if rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return registry.State{}, false, errors.NewStorageError("load", fmt.Sprintf("corrupt history timestamp for land %d", landID), err)
		}
		rec.VerifiedAtTime = vat != 0
		id := registry.LandID(landID)
		st.History[id] = append(st.History[id], rec)
	}
	if err := histRows.Err(); err != nil {
		return registry.State{}, false, errors.NewStorageError("load", "failed to iterate history", err)
	}

	return st, true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
