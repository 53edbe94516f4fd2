package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/voiceassist/backend/internal/domain"
	"github.com/voiceassist/backend/pkg/utils"
)

const (
	defaultHistoryHours = 24
	maxHistoryHours     = 720 // 30 days
)

// HistoryService records handled commands without delaying responses
type HistoryService struct {
	repo HistoryRepository
	now  func() time.Time

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// NewHistoryService creates a new history service
func NewHistoryService(repo HistoryRepository) *HistoryService {
	return &HistoryService{repo: repo, now: time.Now}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *HistoryService) WaitBackground() {
	s.wgBg.Wait()
}

// RecordCommand persists a command and, for weather results, its snapshot
func (s *HistoryService) RecordCommand(source, input string, intent domain.Intent, result domain.CommandResult) {
	entry := domain.CommandLog{
		ID:        uuid.NewString(),
		Source:    source,
		Input:     input,
		Intent:    intent,
		Success:   result.Success,
		Message:   result.Message,
		CreatedAt: s.now(),
	}
	snapshot, hasWeather := result.Weather()

	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.SaveCommandLog(bgCtx, entry); err != nil {
			log.WithError(err).Warn("failed to save command log")
			return
		}
		if hasWeather {
			if err := s.repo.SaveWeatherSnapshot(bgCtx, entry.ID, snapshot); err != nil {
				log.WithError(err).Warn("failed to save weather snapshot")
			}
		}
	}()
}

// Recent returns commands from the last hours, clamped to 30 days.
// Non-positive hours select the default window.
func (s *HistoryService) Recent(ctx context.Context, hours int) ([]domain.CommandLog, error) {
	if hours <= 0 {
		hours = defaultHistoryHours
	}
	hours = utils.Clamp(hours, 1, maxHistoryHours)

	to := s.now()
	from := to.Add(-time.Duration(hours) * time.Hour)

	return s.repo.GetRecentCommands(ctx, from, to)
}
