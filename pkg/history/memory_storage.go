package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development, tests, and single-process deployments.
type MemoryStorage struct {
	records map[string][]Record // scope -> records
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory record storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string][]Record),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		return ErrMissingID
	}
	if rec.Scope == "" {
		return ErrMissingScope
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	s.records[rec.Scope] = append(s.records[rec.Scope], rec)
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, scope, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records[scope] {
		if r.ID == id {
			// Return a copy to prevent external mutation of stored data.
			rec := r
			return &rec, nil
		}
	}

	return nil, ErrRecordNotFound
}

func (s *MemoryStorage) List(ctx context.Context, scope string, opts ListOptions) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, exists := s.records[scope]
	if !exists {
		return []Record{}, nil
	}

	var filtered []Record
	for _, r := range records {
		if !matches(r, opts) {
			continue
		}
		filtered = append(filtered, r)
	}

	// Newest first.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	start := opts.Offset
	if start > len(filtered) {
		return []Record{}, nil
	}

	end := start + opts.Limit
	if opts.Limit == 0 || end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, scope string, ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, exists := s.records[scope]
	if !exists {
		return nil
	}

	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	for i := range records {
		if _, ok := idSet[records[i].ID]; ok {
			records[i].MarkAsRead()
		}
	}

	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, scope string, ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, exists := s.records[scope]
	if !exists {
		return nil
	}

	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	kept := records[:0]
	for _, r := range records {
		if _, ok := idSet[r.ID]; !ok {
			kept = append(kept, r)
		}
	}

	s.records[scope] = kept
	return nil
}

func (s *MemoryStorage) CountUnread(ctx context.Context, scope string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, r := range s.records[scope] {
		if !r.Read && !r.IsExpired() {
			count++
		}
	}

	return count, nil
}

// matches applies ListOptions filters to a single record.
func matches(r Record, opts ListOptions) bool {
	if r.IsExpired() {
		return false
	}
	if opts.OnlyUnread && r.Read {
		return false
	}
	if len(opts.Types) > 0 {
		found := false
		for _, t := range opts.Types {
			if r.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if opts.Since != nil && r.CreatedAt.Before(*opts.Since) {
		return false
	}
	return true
}
