// Package store owns the authoritative note and category lists and keeps the
// persistent key-value store in step with them. Every mutation writes through
// before returning.
package store

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/jotter/internal/db"
	"github.com/hpungsan/jotter/internal/errors"
	"github.com/hpungsan/jotter/internal/logger"
	"github.com/hpungsan/jotter/internal/note"
)

// KV is the backing store the Store persists into.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetMany(ctx context.Context, entries map[string]string) error
}

// Store holds the note list (most recent first) and the ordered category set.
// The mutex only matters for the autosave goroutine; callers see a synchronous API.
type Store struct {
	mu sync.Mutex

	kv           KV
	now          func() time.Time
	log          *logger.Logger
	defaultTheme note.Theme

	notes      []note.Note
	categories []string
	theme      note.Theme
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for load fallbacks and autosave failures.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithDefaultTheme sets the theme used when none has been persisted.
func WithDefaultTheme(t note.Theme) Option {
	return func(s *Store) { s.defaultTheme = t }
}

// New creates an empty Store. Call Load to read persisted state.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:           kv,
		now:          time.Now,
		log:          logger.NewNop(),
		defaultTheme: note.ThemeLight,
		notes:        []note.Note{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.theme = s.defaultTheme
	s.categories = slices.Clone(note.DefaultCategories)
	return s
}

// Load reads notes, categories and theme from the backing store.
// Malformed entries fall back to an empty note list, the default categories
// and the default theme. Only read failures of the store itself are returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notesRaw, ok, err := s.kv.Get(ctx, db.KeyNotes)
	if err != nil {
		return err
	}
	s.notes = []note.Note{}
	if ok {
		var notes []note.Note
		if err := json.Unmarshal([]byte(notesRaw), &notes); err != nil {
			s.logFor(ctx).Warn(ctx, "persisted notes unreadable, starting empty", zap.Error(err))
		} else if notes != nil {
			s.notes = notes
		}
	}

	categoriesRaw, ok, err := s.kv.Get(ctx, db.KeyCategories)
	if err != nil {
		return err
	}
	var categories []string
	if ok {
		if err := json.Unmarshal([]byte(categoriesRaw), &categories); err != nil {
			s.logFor(ctx).Warn(ctx, "persisted categories unreadable, reseeding defaults", zap.Error(err))
			categories = nil
		}
	}
	seeded := len(categories) == 0
	if seeded {
		categories = slices.Clone(note.DefaultCategories)
	}
	s.categories = categories

	themeRaw, ok, err := s.kv.Get(ctx, db.KeyTheme)
	if err != nil {
		return err
	}
	s.theme = s.defaultTheme
	if ok {
		if t, valid := note.ParseTheme(themeRaw); valid {
			s.theme = t
		} else {
			s.logFor(ctx).Warn(ctx, "persisted theme invalid, using default", zap.String("theme", themeRaw))
		}
	}

	s.logFor(ctx).Debug(ctx, "store loaded",
		zap.Int("notes", len(s.notes)),
		zap.Int("categories", len(s.categories)),
		zap.String("theme", string(s.theme)),
	)

	if seeded {
		return s.persistLocked(ctx)
	}
	return nil
}

// Persist writes the full note list, category list and theme to the backing store.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	notesJSON, err := json.Marshal(s.notes)
	if err != nil {
		return errors.NewInternal(err)
	}
	categoriesJSON, err := json.Marshal(s.categories)
	if err != nil {
		return errors.NewInternal(err)
	}

	return s.kv.SetMany(ctx, map[string]string{
		db.KeyNotes:      string(notesJSON),
		db.KeyCategories: string(categoriesJSON),
		db.KeyTheme:      string(s.theme),
	})
}

// Notes returns a copy of the note list in insertion order (most recent first).
func (s *Store) Notes() []note.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return note.Clone(s.notes)
}

// Categories returns a copy of the category set in order.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories)
}

// Get returns the note with the given id.
func (s *Store) Get(id int64) (note.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.notes[i], true
	}
	return note.Note{}, false
}

// Theme returns the current theme.
func (s *Store) Theme() note.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// logFor prefers the logger carried by ctx, so request-scoped fields reach store log lines.
func (s *Store) logFor(ctx context.Context) *logger.Logger {
	return logger.Log(ctx, s.log)
}

func (s *Store) indexLocked(id int64) int {
	return slices.IndexFunc(s.notes, func(n note.Note) bool { return n.ID == id })
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

// Create builds a new note stamped with the current time, inserts it at the
// front of the list and persists. A blank title becomes note.DefaultTitle and
// a blank category note.Uncategorized.
func (s *Store) Create(ctx context.Context, title string, content note.Content, category string) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowMillis()
	n := note.Note{
		ID:         s.nextIDLocked(now),
		Title:      note.ResolveTitle(title),
		Content:    content,
		Category:   note.ResolveCategory(category),
		CreatedAt:  now,
		LastEdited: now,
	}

	s.notes = slices.Insert(s.notes, 0, n)

	if err := s.persistLocked(ctx); err != nil {
		return n, err
	}
	return n, nil
}

// nextIDLocked returns now, or one past the largest id when now is already taken
// (two creations inside the same millisecond).
func (s *Store) nextIDLocked(now int64) int64 {
	if s.indexLocked(now) < 0 {
		return now
	}
	maxID := now
	for _, n := range s.notes {
		maxID = max(maxID, n.ID)
	}
	return maxID + 1
}

// Update replaces title, content and category of the note with the given id and
// stamps LastEdited. ID, CreatedAt and IsPinned are preserved. An unknown id is
// a silent no-op.
func (s *Store) Update(ctx context.Context, id int64, title string, content note.Content, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		s.logFor(ctx).Debug(ctx, "update of unknown note ignored", zap.Int64("id", id))
		return nil
	}

	n := &s.notes[i]
	n.Title = note.ResolveTitle(title)
	n.Content = content
	n.Category = note.ResolveCategory(category)
	n.LastEdited = max(s.nowMillis(), n.LastEdited, n.CreatedAt)

	return s.persistLocked(ctx)
}

// Delete removes the note with the given id. An unknown id is a silent no-op.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		s.logFor(ctx).Debug(ctx, "delete of unknown note ignored", zap.Int64("id", id))
		return nil
	}
	s.notes = slices.Delete(s.notes, i, i+1)

	return s.persistLocked(ctx)
}

// TogglePin flips IsPinned on the note with the given id. An unknown id is a silent no-op.
func (s *Store) TogglePin(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		s.logFor(ctx).Debug(ctx, "pin toggle of unknown note ignored", zap.Int64("id", id))
		return nil
	}
	s.notes[i].IsPinned = !s.notes[i].IsPinned

	return s.persistLocked(ctx)
}

// AddCategory appends a trimmed category name. Empty and already present
// (case-sensitive) names fail with DUPLICATE_CATEGORY and leave the set unchanged.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" || slices.Contains(s.categories, name) {
		return errors.NewDuplicateCategory(name)
	}
	s.categories = append(s.categories, name)

	return s.persistLocked(ctx)
}

// SetTheme stores the theme preference.
func (s *Store) SetTheme(ctx context.Context, t note.Theme) error {
	if _, ok := note.ParseTheme(string(t)); !ok {
		return errors.NewInvalidRequest("theme must be one of: light, dark")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = t
	return s.persistLocked(ctx)
}

// ToggleTheme switches between light and dark and returns the new theme.
func (s *Store) ToggleTheme(ctx context.Context) (note.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = s.theme.Toggle()
	return s.theme, s.persistLocked(ctx)
}
