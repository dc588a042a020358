package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/five82/ledgerdesk/internal/ledger"
)

// Snapshot represents the latest stats available to the UI.
type Snapshot struct {
	Stats               ledger.Stats
	HasStats            bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive refresh failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// StatsFetcher is satisfied by *ledger.Client.
type StatsFetcher interface {
	FetchStats(ctx context.Context) (ledger.Stats, error)
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored stats. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(stats *ledger.Stats, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if stats != nil {
		s.snapshot.Stats = *stats
		s.snapshot.HasStats = true
	} else {
		s.snapshot.HasStats = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Refresh fetches stats once and records the result.
func (s *Store) Refresh(ctx context.Context, f StatsFetcher) error {
	stats, err := f.FetchStats(ctx)
	if err != nil {
		s.Update(nil, err)
		return err
	}
	s.Update(&stats, nil)
	return nil
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
