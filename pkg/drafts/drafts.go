// Package drafts keeps the user's private draft notes in memory and mirrors
// every change to the durable store before reporting success.
package drafts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"

	"tableflip.dev/unsent/pkg/store"
)

// Key is the store key holding the serialized draft list.
const Key = "drafts/list"

// Draft is a private note. Drafts are never edited in place.
type Draft struct {
	ID      string    `json:"id"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

// ValidationError reports input rejected before any state change.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "drafts: " + e.Reason
}

var (
	// ErrEmptyContent is returned by Create for blank content.
	ErrEmptyContent = &ValidationError{Reason: "draft content is empty"}
	// ErrNotFound is returned for unknown draft ids.
	ErrNotFound = errors.New("drafts: draft not found")
)

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the time source used for ids and dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger for recovered storage problems.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// Store is the in-memory draft list synchronized with a store.KV.
type Store struct {
	kv     store.KV
	drafts []Draft
	lastID int64
	now    func() time.Time
	log    zerolog.Logger
}

// New loads the persisted drafts. A missing, unreadable or malformed value
// yields an empty list; nothing is written until the next mutation.
func New(kv store.KV, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.Reload()
	return s
}

// Reload replaces the in-memory list with the persisted one.
func (s *Store) Reload() {
	s.drafts = s.load()
	s.lastID = 0
	for _, d := range s.drafts {
		if n, err := strconv.ParseInt(d.ID, 10, 64); err == nil && n > s.lastID {
			s.lastID = n
		}
	}
}

func (s *Store) load() []Draft {
	raw, ok, err := s.kv.Get(Key)
	if err != nil {
		s.log.Warn().Err(err).Msg("drafts unreadable, starting empty")
		return []Draft{}
	}
	if !ok || len(bytes.TrimSpace(raw)) == 0 {
		return []Draft{}
	}
	var list []Draft
	if err := json.Unmarshal(raw, &list); err != nil {
		s.log.Warn().Err(err).Msg("drafts malformed, starting empty")
		return []Draft{}
	}
	for i, d := range list {
		if d.ID == "" || strings.TrimSpace(d.Content) == "" {
			s.log.Warn().Int("index", i).Msg("drafts contain an invalid record, starting empty")
			return []Draft{}
		}
	}
	if list == nil {
		list = []Draft{}
	}
	return list
}

func (s *Store) save(list []Draft) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("drafts: encode: %w", err)
	}
	if err := s.kv.Put(Key, data); err != nil {
		return fmt.Errorf("drafts: persist: %w", err)
	}
	return nil
}

// Create stores a new draft with the trimmed content.
func (s *Store) Create(content string) (Draft, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Draft{}, ErrEmptyContent
	}
	now := s.now()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	d := Draft{ID: strconv.FormatInt(id, 10), Content: content, Date: now}

	next := make([]Draft, len(s.drafts), len(s.drafts)+1)
	copy(next, s.drafts)
	next = append(next, d)
	if err := s.save(next); err != nil {
		return Draft{}, err
	}
	s.drafts = next
	s.lastID = id
	return d, nil
}

// List returns the drafts in creation order.
func (s *Store) List() []Draft {
	out := make([]Draft, len(s.drafts))
	copy(out, s.drafts)
	return out
}

func (s *Store) Len() int {
	return len(s.drafts)
}

// RestoreContent returns the content of draft id. The draft is unchanged.
func (s *Store) RestoreContent(id string) (string, error) {
	for _, d := range s.drafts {
		if d.ID == id {
			return d.Content, nil
		}
	}
	return "", ErrNotFound
}

// Delete removes draft id.
func (s *Store) Delete(id string) error {
	idx := -1
	for i, d := range s.drafts {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	next := make([]Draft, 0, len(s.drafts)-1)
	next = append(next, s.drafts[:idx]...)
	next = append(next, s.drafts[idx+1:]...)
	if err := s.save(next); err != nil {
		return err
	}
	s.drafts = next
	return nil
}

// Export writes the drafts as indented JSON to path, replacing it atomically.
func (s *Store) Export(path string) error {
	data, err := json.MarshalIndent(s.drafts, "", "  ")
	if err != nil {
		return fmt.Errorf("drafts: encode: %w", err)
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("drafts: export %s: %w", path, err)
	}
	return nil
}
