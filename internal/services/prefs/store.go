// Package prefs holds the process-wide theme and language state.
package prefs

import (
	"sync"

	"DashPull/internal/domain/models"
)

// Listener is called with the previous and current preferences after a change.
type Listener func(prev, cur models.Preferences)

type subscription struct {
	id uint64
	fn Listener
}

// Store is safe for concurrent use. Listeners run synchronously in
// registration order, outside the store lock, and only when a value changed.
type Store struct {
	mu     sync.Mutex
	cur    models.Preferences
	subs   []subscription
	nextID uint64
}

// NewStore creates a store with the default preferences.
func NewStore() *Store {
	return &Store{cur: models.DefaultPreferences()}
}

// Current returns a snapshot.
func (s *Store) Current() models.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Subscribe registers fn and returns a func that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Set applies a partial update and reports whether anything changed.
func (s *Store) Set(u models.PreferencesUpdate) bool {
	s.mu.Lock()
	prev := s.cur
	next := prev
	if u.Theme != "" {
		next.Theme = models.NormalizeTheme(u.Theme)
	}
	if u.Lang != "" {
		next.Lang = models.NormalizeLang(u.Lang)
	}
	if next == prev {
		s.mu.Unlock()
		return false
	}
	s.cur = next
	subs := append([]subscription(nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(prev, next)
	}
	return true
}

// SetTheme changes the theme.
func (s *Store) SetTheme(theme string) bool {
	return s.Set(models.PreferencesUpdate{Theme: theme})
}

// SetLanguage changes the language.
func (s *Store) SetLanguage(lang string) bool {
	return s.Set(models.PreferencesUpdate{Lang: lang})
}
