// Package planstore keeps recently generated meal plans in memory so the
// download action serves exactly the text that was rendered.
package planstore

import (
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// FileName and ContentType describe the downloadable plan.
const (
	FileName    = "personalized_meal_plan.txt"
	ContentType = "text/plain"
)

// Store is a bounded, concurrency-safe map from plan id to plan text.
// The oldest plans are evicted first.
type Store struct {
	cache *lru.Cache[string, string]
}

func New(size int) (*Store, error) {
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan cache: %w", err)
	}
	return &Store{cache: cache}, nil
}

// Put stores the plan text and returns its id.
func (s *Store) Put(text string) string {
	id := uuid.New().String()
	s.cache.Add(id, text)
	return id
}

// Get returns the text stored under id, if it has not been evicted.
func (s *Store) Get(id string) (string, bool) {
	return s.cache.Get(id)
}

func (s *Store) Len() int {
	return s.cache.Len()
}
