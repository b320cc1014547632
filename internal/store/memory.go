package store

import (
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when no session exists for the given id.
	ErrNotFound = errors.New("no search session")
)

// DefaultRecentSearches seeds every new session.
var DefaultRecentSearches = []string{"New York", "London", "Tokyo", "Paris", "Sydney"}

// SearchHistory holds the recent searches of one session, most recent first.
type SearchHistory struct {
	Cities   []string
	LastSeen time.Time
}

// MemoryStore is a concurrency-safe in-memory store of recent city searches,
// keyed by session id.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id, value: history
	data map[string]*SearchHistory

	maxEntries int           // recent searches kept per session
	maxAge     time.Duration // idle sessions older than this are pruned (0 = never)

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore.
// If maxEntries is <= 0, len(DefaultRecentSearches) is used.
func NewMemoryStore(maxEntries int, maxAge time.Duration) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = len(DefaultRecentSearches)
	}
	return &MemoryStore{
		data:       make(map[string]*SearchHistory),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

func (s *MemoryStore) session(id string) *SearchHistory {
	history, ok := s.data[id]
	if !ok {
		seed := DefaultRecentSearches
		if len(seed) > s.maxEntries {
			seed = seed[:s.maxEntries]
		}
		history = &SearchHistory{Cities: append([]string(nil), seed...)}
		s.data[id] = history
	}
	history.LastSeen = s.now()
	return history
}

// Recent returns the session's recent searches, creating a seeded session on
// first use.
func (s *MemoryStore) Recent(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.session(id).Cities...)
}

// Add records a successful search. A city already present is left where it
// is; otherwise it is prepended and the oldest entry falls off.
func (s *MemoryStore) Add(id, city string) []string {
	city = strings.TrimSpace(city)

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.session(id)
	if city == "" {
		return append([]string(nil), history.Cities...)
	}
	for _, c := range history.Cities {
		if c == city {
			return append([]string(nil), history.Cities...)
		}
	}

	keep := history.Cities
	if len(keep) > s.maxEntries-1 {
		keep = keep[:s.maxEntries-1]
	}
	history.Cities = append([]string{city}, keep...)
	return append([]string(nil), history.Cities...)
}

// Get returns the recent searches of an existing session.
func (s *MemoryStore) Get(id string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]string(nil), history.Cities...), nil
}

// Prune drops sessions idle for longer than maxAge and returns how many
// were removed.
func (s *MemoryStore) Prune() int {
	if s.maxAge <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, history := range s.data {
		if history.LastSeen.Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
