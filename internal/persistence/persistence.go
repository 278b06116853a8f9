package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"time"

	"github.com/humidistat/humidistat/internal/settings"
	"github.com/humidistat/humidistat/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketSettings = "settings"
	KeySnapshot    = "snapshot"

	// FormatVersion is bumped whenever the layout of settings.Snapshot changes incompatibly
	FormatVersion = 1
)

var (
	ErrNoRecord        = errors.New("no stored settings")
	ErrVersionMismatch = errors.New("stored settings format version mismatch")
	ErrChecksum        = errors.New("stored settings checksum mismatch")
)

// Record is the stored form of a settings snapshot
type Record struct {
	Version  int             `json:"version"`
	Checksum uint32          `json:"checksum"`
	Saved    time.Time       `json:"saved"`
	Payload  json.RawMessage `json:"payload"`
}

// Snapshot decodes and verifies the payload of the record
func (r Record) Snapshot() (settings.Snapshot, error) {
	var snapshot settings.Snapshot
	if r.Version != FormatVersion {
		return snapshot, fmt.Errorf("%w: got %d, expected %d", ErrVersionMismatch, r.Version, FormatVersion)
	}
	if crc32.ChecksumIEEE(r.Payload) != r.Checksum {
		return snapshot, ErrChecksum
	}
	err := json.Unmarshal(r.Payload, &snapshot)
	return snapshot, err
}

func newRecord(snapshot settings.Snapshot) (Record, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Version:  FormatVersion,
		Checksum: crc32.ChecksumIEEE(payload),
		Saved:    time.Now(),
		Payload:  payload,
	}, nil
}

// Store keeps the settings snapshot in a bbolt database
type Store struct {
	dbPath string
}

func NewStore(dbPath string) *Store {
	return &Store{
		dbPath: dbPath,
	}
}

func (s *Store) Path() string {
	return s.dbPath
}

// Init creates the parent directory of the database file
func (s *Store) Init() (err error) {
	parentDir := filepath.Dir(s.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) open() (db *bolt.DB, err error) {
	db, err = bolt.Open(s.dbPath, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Load returns the stored snapshot if a valid one exists.
// A missing, outdated or corrupt record yields the compiled-in defaults and false.
func (s *Store) Load() (settings.Snapshot, bool) {
	record, err := s.LoadRecord()
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			ui.Info("No stored settings found, using defaults")
		} else {
			ui.Warning("Unable to read stored settings, using defaults: %v", err)
		}
		return settings.Defaults(), false
	}

	snapshot, err := record.Snapshot()
	if err != nil {
		ui.Warning("Ignoring stored settings, using defaults: %v", err)
		return settings.Defaults(), false
	}
	return snapshot, true
}

// LoadRecord returns the raw stored record without verifying it
func (s *Store) LoadRecord() (Record, error) {
	var record Record

	db, err := s.open()
	if err != nil {
		return record, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSettings))
		if b == nil {
			return ErrNoRecord
		}
		v := b.Get([]byte(KeySnapshot))
		if v == nil {
			return ErrNoRecord
		}
		return json.Unmarshal(v, &record)
	})
	return record, err
}

// Save stores the given snapshot, replacing any previous record
func (s *Store) Save(snapshot settings.Snapshot) error {
	record, err := newRecord(snapshot)
	if err != nil {
		return err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketSettings))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		return b.Put([]byte(KeySnapshot), data)
	})
}

// Reset returns the compiled-in defaults. The stored record is kept, so a
// reset that is never saved is undone by the next restart.
func (s *Store) Reset() settings.Snapshot {
	return settings.Defaults()
}

// Delete removes the stored record
func (s *Store) Delete() error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSettings))
		if b == nil {
			return nil
		}
		if b.Get([]byte(KeySnapshot)) == nil {
			return nil
		}
		return b.Delete([]byte(KeySnapshot))
	})
}
