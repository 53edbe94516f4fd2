package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"github.com/voiceassist/backend/internal/domain"
	"github.com/voiceassist/backend/internal/metrics"
	"github.com/voiceassist/backend/pkg/utils"
)

const (
	msgWeatherTimeout = "Weather service is taking too long to respond. Please try again."
	msgWeatherFailed  = "Sorry, I couldn't fetch the weather information right now."
)

var errNoConditions = errors.New("weather: response has no conditions")

// WeatherService handles weather data fetching
type WeatherService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      WeatherCache
	location   *time.Location
	metrics    *metrics.Metrics
}

// WeatherOption customizes a WeatherService
type WeatherOption func(*WeatherService)

// WithCache puts a snapshot cache in front of the provider
func WithCache(cache WeatherCache) WeatherOption {
	return func(s *WeatherService) { s.cache = cache }
}

// WithLocation sets the zone used for sunrise and sunset times
func WithLocation(loc *time.Location) WeatherOption {
	return func(s *WeatherService) { s.location = loc }
}

// WithWeatherMetrics records lookup outcomes
func WithWeatherMetrics(m *metrics.Metrics) WeatherOption {
	return func(s *WeatherService) { s.metrics = m }
}

// NewWeatherService creates a new weather service
func NewWeatherService(apiKey, baseURL string, timeout time.Duration, opts ...WeatherOption) *WeatherService {
	s := &WeatherService{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		location: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchWeather looks up current weather for city. Provider failures are
// reported in the result, never as raw errors.
func (s *WeatherService) FetchWeather(ctx context.Context, city string) domain.CommandResult {
	if snapshot, ok := s.cached(ctx, city); ok {
		s.metrics.ObserveWeather(metrics.WeatherCached)
		return domain.Succeed(Summarize(snapshot), snapshot)
	}

	snapshot, status, err := s.fetch(ctx, city)
	switch {
	case err != nil && isTimeout(err):
		log.WithField("city", city).Warn("weather provider timed out")
		s.metrics.ObserveWeather(metrics.WeatherTimeout)
		return domain.Fail(msgWeatherTimeout)
	case err != nil:
		log.WithFields(log.Fields{"city": city, "error": err}).Error("weather lookup failed")
		s.metrics.ObserveWeather(metrics.WeatherError)
		return domain.Fail(msgWeatherFailed)
	case status != http.StatusOK:
		log.WithFields(log.Fields{"city": city, "status": status}).Info("weather provider rejected city")
		s.metrics.ObserveWeather(metrics.WeatherNotFound)
		return domain.Fail(fmt.Sprintf("Could not find weather data for %s. Please check the city name.", city))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, city, snapshot); err != nil {
			log.WithError(err).Warn("failed to cache weather")
		}
	}

	s.metrics.ObserveWeather(metrics.WeatherOK)
	return domain.Succeed(Summarize(snapshot), snapshot)
}

func (s *WeatherService) cached(ctx context.Context, city string) (domain.WeatherSnapshot, bool) {
	if s.cache == nil {
		return domain.WeatherSnapshot{}, false
	}
	snapshot, ok, err := s.cache.Get(ctx, city)
	if err != nil {
		log.WithError(err).Warn("weather cache unavailable")
		return domain.WeatherSnapshot{}, false
	}
	return snapshot, ok
}

// fetch returns the provider status; the snapshot is only valid for 200
func (s *WeatherService) fetch(ctx context.Context, city string) (domain.WeatherSnapshot, int, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", s.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherSnapshot{}, 0, fmt.Errorf("weather: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.WeatherSnapshot{}, 0, fmt.Errorf("weather: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.WeatherSnapshot{}, resp.StatusCode, nil
	}

	var owResp domain.OpenWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		return domain.WeatherSnapshot{}, resp.StatusCode, fmt.Errorf("weather: failed to decode response: %w", err)
	}

	snapshot, err := s.toSnapshot(owResp)
	return snapshot, resp.StatusCode, err
}

func (s *WeatherService) toSnapshot(owResp domain.OpenWeatherResponse) (domain.WeatherSnapshot, error) {
	if len(owResp.Weather) == 0 {
		return domain.WeatherSnapshot{}, errNoConditions
	}

	return domain.WeatherSnapshot{
		City:         owResp.Name,
		Country:      owResp.Sys.Country,
		Temperature:  utils.RoundInt(owResp.Main.Temp),
		FeelsLike:    utils.RoundInt(owResp.Main.FeelsLike),
		Humidity:     owResp.Main.Humidity,
		Pressure:     owResp.Main.Pressure,
		Description:  utils.TitleCase(owResp.Weather[0].Description),
		Icon:         owResp.Weather[0].Icon,
		WindSpeed:    owResp.Wind.Speed,
		VisibilityKM: float64(owResp.Visibility) / 1000,
		Sunrise:      time.Unix(owResp.Sys.Sunrise, 0).In(s.location).Format("15:04"),
		Sunset:       time.Unix(owResp.Sys.Sunset, 0).In(s.location).Format("15:04"),
	}, nil
}

// Summarize renders the one-sentence spoken summary of a snapshot
func Summarize(w domain.WeatherSnapshot) string {
	return fmt.Sprintf(
		"The weather in %s is %d°C with %s. It feels like %d°C with %d%% humidity.",
		w.City, w.Temperature, w.Description, w.FeelsLike, w.Humidity,
	)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
