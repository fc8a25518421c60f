// Package store implements the file-backed message store, the single source
// of truth for the board. The entire collection lives in one JSON file whose
// content is replaced in full on every mutation; there is no append-in-place
// and no write-ahead log.
//
// Read policy is fail-soft: a missing or corrupt file is treated as an empty
// collection. The failure is logged and retained so the health endpoint can
// surface a degraded-storage signal, but it is never raised to callers.
//
// Every mutation is a load-mutate-save sequence guarded by one process-wide
// mutex, so a client delete and a background sweep cannot clobber each
// other's write.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/boardkit/go-board-backend/internal/domain"
)

// Store persists the message collection to a single JSON file.
// It is safe for concurrent use.
type Store struct {
	path string
	log  zerolog.Logger

	mu      sync.Mutex
	lastID  int64 // monotonic guard for millisecond-epoch IDs
	loadErr error // last fail-soft read failure, nil when healthy
}

// New returns a Store backed by the JSON file at path.
func New(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log.With().Str("component", "store").Logger()}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Load reads and parses the backing file. On any read or parse failure it
// returns an empty collection; the error is logged and recorded, never
// propagated.
func (s *Store) Load() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load is the lock-free core of Load; callers must hold s.mu.
func (s *Store) load() []domain.Message {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// First run: no file yet is the normal empty state.
			s.loadErr = nil
			return []domain.Message{}
		}
		s.loadErr = err
		s.log.Error().Err(err).Str("path", s.path).Msg("read data file failed; treating as empty")
		return []domain.Message{}
	}

	var msgs []domain.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		s.loadErr = fmt.Errorf("parse %s: %w", s.path, err)
		s.log.Error().Err(err).Str("path", s.path).Msg("data file corrupt; treating as empty")
		return []domain.Message{}
	}
	s.loadErr = nil
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return msgs
}

// Save serializes the full collection and overwrites the backing file.
func (s *Store) Save(msgs []domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(msgs)
}

// save is the lock-free core of Save; callers must hold s.mu.
func (s *Store) save(msgs []domain.Message) error {
	if msgs == nil {
		msgs = []domain.Message{}
	}
	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		s.log.Error().Err(err).Msg("marshal messages failed")
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.log.Error().Err(err).Str("dir", dir).Msg("create data dir failed")
			return err
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("write data file failed")
		return err
	}
	return nil
}

// Append constructs a Message with a fresh ID and current UTC timestamp,
// appends it to the collection, and persists. The caller is responsible for
// text validation; Append stores text verbatim.
func (s *Store) Append(text string) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	msg := domain.Message{
		ID:        s.nextID(now),
		Text:      text,
		Timestamp: domain.FormatTimestamp(now),
	}

	msgs := s.load()
	msgs = append(msgs, msg)
	if err := s.save(msgs); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// DeleteByID removes the message with the given id. It reports whether a
// message was removed; when nothing matches, no write is performed.
func (s *Store) DeleteByID(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.load()
	kept := msgs[:0]
	for _, m := range msgs {
		// id is unique, but filter defensively rather than stopping at one.
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(msgs) {
		return false, nil
	}
	if err := s.save(kept); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAll overwrites the collection with an empty one. It succeeds even
// when the board is already empty.
func (s *Store) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save([]domain.Message{})
}

// DeleteOlderThan removes every message whose creation time is before
// cutoff and returns the number removed. Messages with unparseable
// timestamps count as infinitely old and are removed.
func (s *Store) DeleteOlderThan(cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.load()
	kept := make([]domain.Message, 0, len(msgs))
	for _, m := range msgs {
		if !m.CreatedAt().Before(cutoff) {
			kept = append(kept, m)
		}
	}
	removed := len(msgs) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.save(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// LoadError returns the failure recorded by the most recent read, or nil
// when the last read succeeded. Used by the health endpoint to surface
// silent fail-soft recoveries.
func (s *Store) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// nextID issues a millisecond-epoch ID that is strictly greater than any ID
// issued before it by this process, so two appends inside the same
// millisecond still sort by insertion order.
func (s *Store) nextID(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return strconv.FormatInt(ms, 10)
}
