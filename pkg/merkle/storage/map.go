package storage

import "sync"

// Map is an in-memory, mutex-guarded Storage backed by a Go map. It never
// itself fails; it exists to give trees a zero-dependency backend for tests
// and small working sets.
type Map[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]V
}

// NewMap returns an empty in-memory Storage.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]V)}
}

func (s *Map[K, V]) Insert(k K, v V) (prev V, hadPrev bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, hadPrev = s.m[k]
	s.m[k] = v
	return prev, hadPrev, nil
}

func (s *Map[K, V]) Remove(k K) (removed V, hadPrev bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, hadPrev = s.m[k]
	delete(s.m, k)
	return removed, hadPrev, nil
}

func (s *Map[K, V]) Get(k K) (v V, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok = s.m[k]
	return v, ok, nil
}

func (s *Map[K, V]) ContainsKey(k K) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[k]
	return ok, nil
}

// Len returns the number of stored entries. Not part of the Storage
// contract; a convenience for tests.
func (s *Map[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
