package service

import (
	"context"

	"github.com/voiceassist/backend/internal/domain"
)

// HistoryRepository is re-exported from domain for convenience
type HistoryRepository = domain.HistoryRepository

// WeatherCache is an optional snapshot cache in front of the weather provider
type WeatherCache interface {
	Get(ctx context.Context, city string) (domain.WeatherSnapshot, bool, error)
	Set(ctx context.Context, city string, snapshot domain.WeatherSnapshot) error
}

// WeatherFetcher looks up current weather for a city
type WeatherFetcher interface {
	FetchWeather(ctx context.Context, city string) domain.CommandResult
}
