// SPDX-License-Identifier: GPL-3.0-or-later
package ratelimit

import (
	"sync"
	"time"

	"github.com/CrawX/go-imap-webmail/domain"
)

type window struct {
	count   int
	resetAt time.Time
}

// Store is an in-process fixed window counter per key.
type Store struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

var _ domain.RateLimiter = &Store{}

func NewStore() *Store {
	return &Store{
		windows: map[string]*window{},
		now:     time.Now,
	}
}

// current returns the live window for key, starting a new one when the
// previous one ran out. Callers hold mu.
func (s *Store) current(key string, length time.Duration, now time.Time) *window {
	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(length)}
		s.windows[key] = w
	}
	return w
}

// Allow counts one attempt against key. Once limit attempts were counted in the
// current window it refuses and reports how long until the window resets.
func (s *Store) Allow(key string, limit int, length time.Duration) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w := s.current(key, length, now)
	if w.count >= limit {
		return false, w.resetAt.Sub(now)
	}

	w.count++
	return true, 0
}

// Check reports whether key is still below limit without counting anything.
func (s *Store) Check(key string, limit int, length time.Duration) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) || w.count < limit {
		return true, 0
	}
	return false, w.resetAt.Sub(now)
}

// Hit counts one attempt against key.
func (s *Store) Hit(key string, length time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current(key, length, s.now()).count++
}

func (s *Store) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, key)
}

// Sweep forgets expired windows and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dropped := 0
	for key, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, key)
			dropped++
		}
	}
	return dropped
}
