package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/voiceassist/backend/internal/domain"
)

const parisPayload = `{
	"name": "Paris",
	"main": {"temp": 18.4, "feels_like": 17.9, "humidity": 60, "pressure": 1012},
	"weather": [{"description": "clear sky", "icon": "01d"}],
	"wind": {"speed": 3.6},
	"visibility": 10000,
	"sys": {"country": "FR", "sunrise": 1700000000, "sunset": 1700030000}
}`

func newProvider(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestWeatherService_FetchWeather_Success(t *testing.T) {
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(parisPayload))
	})

	svc := NewWeatherService("test-key", srv.URL, time.Second, WithLocation(time.UTC))
	result := svc.FetchWeather(context.Background(), "Paris")

	require.True(t, result.Success)
	assert.Equal(t, "The weather in Paris is 18°C with Clear Sky. It feels like 18°C with 60% humidity.", result.Message)

	snapshot, ok := result.Weather()
	require.True(t, ok)
	assert.Equal(t, domain.WeatherSnapshot{
		City:         "Paris",
		Country:      "FR",
		Temperature:  18,
		FeelsLike:    18,
		Humidity:     60,
		Pressure:     1012,
		Description:  "Clear Sky",
		Icon:         "01d",
		WindSpeed:    3.6,
		VisibilityKM: 10,
		Sunrise:      "22:13",
		Sunset:       "06:33",
	}, snapshot)
}

func TestWeatherService_FetchWeather_Idempotent(t *testing.T) {
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(parisPayload))
	})

	svc := NewWeatherService("k", srv.URL, time.Second, WithLocation(time.UTC))
	first := svc.FetchWeather(context.Background(), "paris")
	second := svc.FetchWeather(context.Background(), "paris")

	assert.Equal(t, first, second)
}

func TestWeatherService_FetchWeather_NotFound(t *testing.T) {
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	})

	svc := NewWeatherService("k", srv.URL, time.Second)
	result := svc.FetchWeather(context.Background(), "atlantis")

	assert.False(t, result.Success)
	assert.Nil(t, result.Data)
	assert.Equal(t, "Could not find weather data for atlantis. Please check the city name.", result.Message)
}

func TestWeatherService_FetchWeather_ServerErrorIsNotFound(t *testing.T) {
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	svc := NewWeatherService("k", srv.URL, time.Second)
	result := svc.FetchWeather(context.Background(), "paris")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Could not find weather data for paris")
}

func TestWeatherService_FetchWeather_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	svc := NewWeatherService("k", srv.URL, 50*time.Millisecond)
	result := svc.FetchWeather(context.Background(), "paris")

	assert.False(t, result.Success)
	assert.Equal(t, msgWeatherTimeout, result.Message)
	assert.NotContains(t, result.Message, "Could not find")
}

func TestWeatherService_FetchWeather_MalformedPayload(t *testing.T) {
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "Paris", "weather": []}`))
	})

	svc := NewWeatherService("k", srv.URL, time.Second)
	result := svc.FetchWeather(context.Background(), "paris")

	assert.False(t, result.Success)
	assert.Equal(t, msgWeatherFailed, result.Message)
}

func TestWeatherService_FetchWeather_Unreachable(t *testing.T) {
	svc := NewWeatherService("k", "http://127.0.0.1:1", time.Second)
	result := svc.FetchWeather(context.Background(), "paris")

	assert.False(t, result.Success)
	assert.Equal(t, msgWeatherFailed, result.Message)
}

type MockWeatherCache struct {
	mock.Mock
}

func (m *MockWeatherCache) Get(ctx context.Context, city string) (domain.WeatherSnapshot, bool, error) {
	args := m.Called(ctx, city)
	return args.Get(0).(domain.WeatherSnapshot), args.Bool(1), args.Error(2)
}

func (m *MockWeatherCache) Set(ctx context.Context, city string, snapshot domain.WeatherSnapshot) error {
	args := m.Called(ctx, city, snapshot)
	return args.Error(0)
}

func TestWeatherService_FetchWeather_CacheHit(t *testing.T) {
	cached := domain.WeatherSnapshot{City: "Oslo", Temperature: 2, FeelsLike: -1, Humidity: 80, Description: "Snow"}
	cache := new(MockWeatherCache)
	cache.On("Get", mock.Anything, "oslo").Return(cached, true, nil)

	svc := NewWeatherService("k", "http://127.0.0.1:1", time.Second, WithCache(cache))
	result := svc.FetchWeather(context.Background(), "oslo")

	require.True(t, result.Success)
	assert.Equal(t, "The weather in Oslo is 2°C with Snow. It feels like -1°C with 80% humidity.", result.Message)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestWeatherService_FetchWeather_CacheFaultFallsThrough(t *testing.T) {
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(parisPayload))
	})
	cache := new(MockWeatherCache)
	cache.On("Get", mock.Anything, "paris").Return(domain.WeatherSnapshot{}, false, errors.New("redis down"))
	cache.On("Set", mock.Anything, "paris", mock.AnythingOfType("domain.WeatherSnapshot")).Return(errors.New("redis down"))

	svc := NewWeatherService("k", srv.URL, time.Second, WithCache(cache))
	result := svc.FetchWeather(context.Background(), "paris")

	assert.True(t, result.Success)
	cache.AssertExpectations(t)
}
