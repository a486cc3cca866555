// Package statestore persists participant state blobs and the set of
// participants that were active when the host last shut down.
package statestore

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"samplehost/internal/domain"
)

const (
	schemaVersion = 1

	metaBucketName         = "meta"
	participantsBucketName = "participants"
	schemaVersionKey       = "schema_version"
	stateKey               = "state"
	activeKey              = "active"
	updatedAtKey           = "updated_at"
)

var (
	ErrStoreClosed     = errors.New("participant state store is closed")
	ErrInvalidName     = errors.New("participant name is required")
	ErrInvalidSnapshot = errors.New("participant state must be valid JSON")
)

type Store struct {
	mu     sync.RWMutex
	db     *bolt.DB
	path   string
	closed bool
}

func Open(path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("state path is required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("ensure state dir: %w", err)
	}
	options := &bolt.Options{Timeout: time.Second}
	db, err := bolt.Open(trimmed, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, path: trimmed}, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// LoadState returns the saved blob for name, or nil when none was saved.
func (s *Store) LoadState(name string) (json.RawMessage, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	var state json.RawMessage
	err := s.view(func(tx *bolt.Tx) error {
		bucket := participantBucket(tx, name)
		if bucket == nil {
			return nil
		}
		if raw := bucket.Get([]byte(stateKey)); len(raw) > 0 {
			state = append(json.RawMessage(nil), raw...)
		}
		return nil
	})
	return state, err
}

// SaveState stores state for name. A nil state removes the saved blob.
func (s *Store) SaveState(name string, state json.RawMessage) error {
	if err := validateName(name); err != nil {
		return err
	}
	if state != nil && !json.Valid(state) {
		return ErrInvalidSnapshot
	}
	return s.update(func(tx *bolt.Tx) error {
		bucket, err := ensureParticipantBucket(tx, name)
		if err != nil {
			return err
		}
		if state == nil {
			if err := bucket.Delete([]byte(stateKey)); err != nil {
				return fmt.Errorf("delete state %s: %w", name, err)
			}
		} else if err := bucket.Put([]byte(stateKey), state); err != nil {
			return fmt.Errorf("write state %s: %w", name, err)
		}
		return writeUpdatedAt(bucket)
	})
}

// SetActive records whether name is active. Activation order is preserved
// for ActiveParticipants.
func (s *Store) SetActive(name string, active bool) error {
	if err := validateName(name); err != nil {
		return err
	}
	return s.update(func(tx *bolt.Tx) error {
		bucket, err := ensureParticipantBucket(tx, name)
		if err != nil {
			return err
		}
		if !active {
			if err := bucket.Delete([]byte(activeKey)); err != nil {
				return fmt.Errorf("clear active %s: %w", name, err)
			}
			return writeUpdatedAt(bucket)
		}
		if bucket.Get([]byte(activeKey)) != nil {
			return nil
		}
		seq, err := tx.Bucket([]byte(participantsBucketName)).NextSequence()
		if err != nil {
			return fmt.Errorf("next activation sequence: %w", err)
		}
		if err := bucket.Put([]byte(activeKey), encodeSeq(seq)); err != nil {
			return fmt.Errorf("write active %s: %w", name, err)
		}
		return writeUpdatedAt(bucket)
	})
}

// ActiveParticipants lists active participants in activation order.
func (s *Store) ActiveParticipants() ([]string, error) {
	type entry struct {
		name string
		seq  uint64
	}
	var entries []entry
	err := s.view(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(participantsBucketName))
		if root == nil {
			return fmt.Errorf("missing participants bucket")
		}
		return root.ForEachBucket(func(key []byte) error {
			raw := root.Bucket(key).Get([]byte(activeKey))
			if len(raw) != 8 {
				return nil
			}
			entries = append(entries, entry{name: string(key), seq: binary.BigEndian.Uint64(raw)})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.name)
	}
	return names, nil
}

// Record summarizes what is stored for one participant.
type Record struct {
	Name      string          `json:"name"`
	Active    bool            `json:"active"`
	State     json.RawMessage `json:"state,omitempty"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
}

func (s *Store) Records() ([]Record, error) {
	var records []Record
	err := s.view(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(participantsBucketName))
		if root == nil {
			return fmt.Errorf("missing participants bucket")
		}
		return root.ForEachBucket(func(key []byte) error {
			bucket := root.Bucket(key)
			record := Record{
				Name:      string(key),
				Active:    bucket.Get([]byte(activeKey)) != nil,
				UpdatedAt: string(bucket.Get([]byte(updatedAtKey))),
			}
			if raw := bucket.Get([]byte(stateKey)); len(raw) > 0 {
				record.State = append(json.RawMessage(nil), raw...)
			}
			records = append(records, record)
			return nil
		})
	})
	return records, err
}

// Forget removes everything stored for name.
func (s *Store) Forget(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return s.update(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(participantsBucketName))
		if root == nil || root.Bucket([]byte(name)) == nil {
			return nil
		}
		return root.DeleteBucket([]byte(name))
	})
}

func (s *Store) view(fn func(*bolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.db.View(fn)
}

func (s *Store) update(fn func(*bolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.db.Update(fn)
}

func ensureSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists([]byte(metaBucketName))
		if err != nil {
			return fmt.Errorf("create meta bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(participantsBucketName)); err != nil {
			return fmt.Errorf("create participants bucket: %w", err)
		}
		current := meta.Get([]byte(schemaVersionKey))
		if len(current) == 8 {
			if version := binary.BigEndian.Uint64(current); version > schemaVersion {
				return fmt.Errorf("state db schema version %d is newer than supported %d", version, schemaVersion)
			}
		}
		return meta.Put([]byte(schemaVersionKey), encodeSeq(schemaVersion))
	})
}

func participantBucket(tx *bolt.Tx, name string) *bolt.Bucket {
	root := tx.Bucket([]byte(participantsBucketName))
	if root == nil {
		return nil
	}
	return root.Bucket([]byte(name))
}

func ensureParticipantBucket(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	root := tx.Bucket([]byte(participantsBucketName))
	if root == nil {
		return nil, fmt.Errorf("missing participants bucket")
	}
	bucket, err := root.CreateBucketIfNotExists([]byte(name))
	if err != nil {
		return nil, fmt.Errorf("create participant bucket: %w", err)
	}
	return bucket, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}

func writeUpdatedAt(bucket *bolt.Bucket) error {
	value := time.Now().UTC().Format(time.RFC3339Nano)
	return bucket.Put([]byte(updatedAtKey), []byte(value))
}

func encodeSeq(seq uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	return buf
}

var _ domain.ParticipantStateStore = (*Store)(nil)
