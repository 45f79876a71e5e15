// Package memory provides the process-local record store.
package memory

import (
	"context"
	"sync"

	"github.com/loyalty-tools/receipt-points/pkg/store/records"
)

type store struct {
	mu      sync.RWMutex
	records map[string]int64
}

func NewStore() records.Store {
	return &store{records: make(map[string]int64)}
}

func (s *store) Put(_ context.Context, id string, points int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; exists {
		return records.ErrDuplicateID
	}

	s.records[id] = points
	return nil
}

func (s *store) Get(_ context.Context, id string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points, exists := s.records[id]
	if !exists {
		return 0, records.ErrNotFound
	}
	return points, nil
}
