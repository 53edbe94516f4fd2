package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/voiceassist/backend/internal/domain"
)

const memoryCapacity = 100

// MemoryRepository implements domain.HistoryRepository in process memory,
// keeping the most recent commands. Used when no database is configured.
type MemoryRepository struct {
	mu        sync.RWMutex
	logs      []domain.CommandLog
	snapshots map[string]domain.WeatherSnapshot
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{snapshots: make(map[string]domain.WeatherSnapshot)}
}

// SaveCommandLog appends entry, evicting the oldest beyond capacity
func (r *MemoryRepository) SaveCommandLog(ctx context.Context, entry domain.CommandLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs = append(r.logs, entry)
	if len(r.logs) > memoryCapacity {
		evicted := r.logs[0]
		delete(r.snapshots, evicted.ID)
		r.logs = r.logs[1:]
	}
	return nil
}

// SaveWeatherSnapshot keeps the snapshot while its command is retained
func (r *MemoryRepository) SaveWeatherSnapshot(ctx context.Context, commandID string, data domain.WeatherSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[commandID] = data
	return nil
}

// GetRecentCommands returns retained commands in [from, to], newest first
func (r *MemoryRepository) GetRecentCommands(ctx context.Context, from, to time.Time) ([]domain.CommandLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []domain.CommandLog
	for i := len(r.logs) - 1; i >= 0; i-- {
		c := r.logs[i]
		if c.CreatedAt.Before(from) || c.CreatedAt.After(to) {
			continue
		}
		results = append(results, c)
	}
	return results, nil
}

// Snapshot returns the weather snapshot saved for a command
func (r *MemoryRepository) Snapshot(commandID string) (domain.WeatherSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.snapshots[commandID]
	return s, ok
}

// Health always returns nil in memory mode
func (r *MemoryRepository) Health(ctx context.Context) error {
	return nil
}
