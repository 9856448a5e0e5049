package gallery

import (
	"sync"
	"time"
)

// VisibilityFilter decides whether an asset appears in one visitor's view.
// Filters are immutable snapshots: mutations to the store after a filter is
// taken do not affect it.
type VisibilityFilter interface {
	Visible(assetID string) bool
}

type exclusionFilter map[string]struct{}

func (f exclusionFilter) Visible(assetID string) bool {
	_, hidden := f[assetID]
	return !hidden
}

// ExclusionStore tracks, per visitor, the set of asset identifiers the
// visitor has hidden from their own view. State is process-lifetime only;
// nothing is persisted across restarts. The store is the only shared mutable
// state in the service and is safe for concurrent use.
type ExclusionStore struct {
	mu       sync.RWMutex
	excluded map[string]map[string]struct{}
	lastSeen map[string]time.Time

	now func() time.Time
}

func NewExclusionStore() *ExclusionStore {
	return &ExclusionStore{
		excluded: make(map[string]map[string]struct{}),
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
	}
}

// EnsureVisitor lazily initializes an empty exclusion set for a newly seen
// identity. Redundant calls are harmless.
func (s *ExclusionStore) EnsureVisitor(visitorID string) error {
	if visitorID == "" {
		return ErrNoIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.excluded[visitorID]; !ok {
		s.excluded[visitorID] = make(map[string]struct{})
	}
	s.lastSeen[visitorID] = s.now()
	return nil
}

// Exclude hides an asset from the visitor's view. Idempotent; the asset id
// is not validated against the repository, hiding an unknown id is a no-op
// from every other visitor's perspective.
func (s *ExclusionStore) Exclude(visitorID, assetID string) error {
	if visitorID == "" {
		return ErrNoIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.excluded[visitorID]
	if !ok {
		set = make(map[string]struct{})
		s.excluded[visitorID] = set
	}
	set[assetID] = struct{}{}
	s.lastSeen[visitorID] = s.now()
	return nil
}

// IsExcluded reports whether the visitor has hidden the asset.
func (s *ExclusionStore) IsExcluded(visitorID, assetID string) (bool, error) {
	if visitorID == "" {
		return false, ErrNoIdentity
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.excluded[visitorID]
	if !ok {
		return false, nil
	}
	_, hidden := set[assetID]
	return hidden, nil
}

// FilterFor returns an immutable snapshot of the visitor's exclusion set as
// a VisibilityFilter for view building.
func (s *ExclusionStore) FilterFor(visitorID string) (VisibilityFilter, error) {
	if visitorID == "" {
		return nil, ErrNoIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen[visitorID] = s.now()

	snapshot := make(exclusionFilter, len(s.excluded[visitorID]))
	for id := range s.excluded[visitorID] {
		snapshot[id] = struct{}{}
	}
	return snapshot, nil
}

// Prune drops entries for visitors idle longer than maxIdle and returns the
// number of visitors removed. Pruning a visitor only forgets their
// exclusions; the underlying assets are untouched.
func (s *ExclusionStore) Prune(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for visitorID, seen := range s.lastSeen {
		if seen.Before(cutoff) {
			delete(s.excluded, visitorID)
			delete(s.lastSeen, visitorID)
			removed++
		}
	}
	return removed
}
