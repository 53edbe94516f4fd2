package domain

import (
	"context"
	"time"
)

// Command sources recorded in the history
const (
	SourceChat    = "chat"
	SourceVoice   = "voice"
	SourceWeather = "weather"
)

// CommandLog is one handled command as persisted in the history
type CommandLog struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Input     string    `json:"input"`
	Intent    Intent    `json:"intent"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryRepository defines the interface for command history persistence
type HistoryRepository interface {
	// SaveCommandLog persists a handled command
	SaveCommandLog(ctx context.Context, entry CommandLog) error

	// SaveWeatherSnapshot persists a weather lookup result
	SaveWeatherSnapshot(ctx context.Context, commandID string, data WeatherSnapshot) error

	// GetRecentCommands retrieves commands handled in [from, to], newest first
	GetRecentCommands(ctx context.Context, from, to time.Time) ([]CommandLog, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error
}
