// Package taskstore owns the dashboard's task list and keeps it in sync with
// a durable storage slot.
//
// Every mutator persists the whole list before returning. Persistence
// failures are logged and swallowed: the in-memory list stays authoritative
// for the rest of the session.
//
// A Store is not safe for concurrent use. Callers drive it from a single
// goroutine (a CLI command or the TUI update loop).
package taskstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/idilsaglam/dash/internal/model"
	"github.com/idilsaglam/dash/internal/store"
)

// DefaultKey is the storage slot the task list lives in.
const DefaultKey = "tasks-list-project-web"

// Store holds the canonical task list.
type Store struct {
	slots store.Slots
	key   string
	log   *slog.Logger
	newID func() string
	tasks []model.Task
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage slot key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for load and persist failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithIDFunc replaces the id generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New returns an empty Store bound to slots. Call Load to read persisted state.
func New(slots store.Slots, opts ...Option) *Store {
	s := &Store{
		slots: slots,
		key:   DefaultKey,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID: uuid.NewString,
		tasks: []model.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open is New followed by Load.
func Open(slots store.Slots, opts ...Option) *Store {
	s := New(slots, opts...)
	s.Load()
	return s
}

// Key returns the storage slot key.
func (s *Store) Key() string { return s.key }

// Load replaces the in-memory list with the persisted one. A missing slot
// yields an empty list; unreadable or malformed data is logged and also
// yields an empty list.
func (s *Store) Load() []model.Task {
	s.tasks = []model.Task{}

	b, err := s.slots.Get(s.key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("task list unreadable, starting empty", "key", s.key, "error", err)
		}
		return s.Tasks()
	}

	var raw []model.Task
	if err := json.Unmarshal(b, &raw); err != nil {
		s.log.Warn("task list malformed, starting empty", "key", s.key, "error", err)
		return s.Tasks()
	}
	if raw == nil {
		// JSON null decodes without error.
		s.log.Warn("task list malformed, starting empty", "key", s.key, "error", "null list")
		return s.Tasks()
	}

	s.tasks = s.sanitize(raw)
	s.log.Debug("task list loaded", "key", s.key, "count", len(s.tasks))
	return s.Tasks()
}

// sanitize enforces the list invariants on decoded records: trimmed
// non-empty text and unique ids. Fresh ids avoid every id present in raw,
// so a later record is never shadowed by an assigned one.
func (s *Store) sanitize(raw []model.Task) []model.Task {
	taken := make(map[string]bool, len(raw))
	for _, t := range raw {
		if t.ID != "" {
			taken[t.ID] = true
		}
	}

	out := make([]model.Task, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, t := range raw {
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			s.log.Warn("dropping task with empty text", "index", i, "id", t.ID)
			continue
		}
		if t.ID == "" {
			t.ID = s.freshID(taken)
			taken[t.ID] = true
			s.log.Warn("assigned id to task without one", "index", i, "id", t.ID)
		}
		if seen[t.ID] {
			s.log.Warn("dropping task with duplicate id", "index", i, "id", t.ID)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

func (s *Store) freshID(taken map[string]bool) string {
	for {
		id := s.newID()
		if id != "" && !taken[id] {
			return id
		}
	}
}

func (s *Store) liveIDs() map[string]bool {
	ids := make(map[string]bool, len(s.tasks))
	for _, t := range s.tasks {
		ids[t.ID] = true
	}
	return ids
}

// Tasks returns a copy of the current list in insertion order.
func (s *Store) Tasks() []model.Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// Get returns the task with id.
func (s *Store) Get(id string) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// Stats counts completed and pending tasks.
func (s *Store) Stats() (done, pending int) {
	for _, t := range s.tasks {
		if t.Complete {
			done++
		} else {
			pending++
		}
	}
	return done, pending
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

// Add appends a new pending task. Text is trimmed; empty text is ignored
// and nothing is persisted.
func (s *Store) Add(text string) (model.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, false
	}
	t := model.Task{ID: s.freshID(s.liveIDs()), Text: text}
	s.tasks = append(s.tasks, t)
	s.persistOrLog("add")
	return t, true
}

// Toggle flips the completion flag of the task with id. Unknown ids are a
// no-op and nothing is persisted.
func (s *Store) Toggle(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i] = s.tasks[i].Toggled()
	s.persistOrLog("toggle")
	return true
}

// Remove deletes the task with id and persists, whether or not a task
// matched. It reports whether a task was removed.
func (s *Store) Remove(id string) bool {
	n := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
	s.persistOrLog("remove")
	return len(s.tasks) != n
}

// Persist writes the whole list to the storage slot.
func (s *Store) Persist() error {
	b, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.slots.Set(s.key, b); err != nil {
		return fmt.Errorf("write slot %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) persistOrLog(op string) {
	if err := s.Persist(); err != nil {
		s.log.Error("persist failed, keeping in-memory list", "op", op, "count", len(s.tasks), "error", err)
	}
}
