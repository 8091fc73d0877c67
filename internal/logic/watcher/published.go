package watcher

import (
	"sync"

	"k8s.io/apimachinery/pkg/util/sets"
)

// PublishedSet holds the UIDs a watcher has already emitted.
type PublishedSet struct {
	mu   sync.RWMutex
	uids sets.Set[string]
}

func NewPublishedSet() *PublishedSet {
	return &PublishedSet{uids: sets.New[string]()}
}

func (s *PublishedSet) Has(uid string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.uids.Has(uid)
}

func (s *PublishedSet) Insert(uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uids.Insert(uid)
}

// Delete removes uid and reports whether it was present.
func (s *PublishedSet) Delete(uid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.uids.Has(uid) {
		return false
	}

	s.uids.Delete(uid)

	return true
}

func (s *PublishedSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.uids.Len()
}
