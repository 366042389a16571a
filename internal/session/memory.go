// Package session keeps short-lived server-side state in memory.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry[T any] struct {
	value    T
	lastUsed time.Time
}

// MemoryStore is a concurrency-safe map of values that expire after ttl
// without access. A zero ttl keeps values forever.
type MemoryStore[T any] struct {
	mu  sync.RWMutex
	m   map[string]*entry[T]
	ttl time.Duration
	now func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewMemoryStore[T any](ttl time.Duration) *MemoryStore[T] {
	return &MemoryStore[T]{
		m:      map[string]*entry[T]{},
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
}

// Get returns the value and refreshes its expiry.
func (s *MemoryStore[T]) Get(_ context.Context, id string) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[id]
	if !ok || s.expired(e) {
		var zero T
		return zero, false, nil
	}
	e.lastUsed = s.now()
	return e.value, true, nil
}

func (s *MemoryStore[T]) Put(_ context.Context, id string, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = &entry[T]{value: v, lastUsed: s.now()}
	return nil
}

func (s *MemoryStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

// Len returns the number of stored values, expired ones included.
func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

func (s *MemoryStore[T]) NewID() string {
	return uuid.New().String()
}

func (s *MemoryStore[T]) expired(e *entry[T]) bool {
	return s.ttl > 0 && s.now().Sub(e.lastUsed) > s.ttl
}

// Cleanup removes expired values and returns how many were removed.
func (s *MemoryStore[T]) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.m {
		if s.expired(e) {
			delete(s.m, id)
			removed++
		}
	}
	return removed
}

// StartCleanup runs Cleanup every interval until Stop is called.
func (s *MemoryStore[T]) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.Cleanup(); n > 0 {
					log.Printf("Session cleanup: removed %d expired sessions", n)
				}
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (s *MemoryStore[T]) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}
