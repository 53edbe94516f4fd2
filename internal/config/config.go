package config

import (
	"errors"
	"net"
	"os"
	"strconv"
	"time"
)

// ErrMissingWeatherAPIKey is returned by Load when WEATHER_API_KEY is unset
var ErrMissingWeatherAPIKey = errors.New("config: WEATHER_API_KEY environment variable is required")

const (
	DefaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"
	DefaultTTSCommand = "espeak -s 150 -a 80"
)

// Config holds the process configuration, read from the environment
type Config struct {
	WeatherAPIKey   string
	WeatherURL      string
	WeatherTimeout  time.Duration
	WeatherCacheTTL time.Duration

	Host string
	Port string
	Env  string

	DatabaseURL string
	RedisURL    string

	SpeechLanguage    string
	SpeechMaxDuration time.Duration
	TTSCommand        string
	MaxUploadBytes    int

	LogLevel string
	LogFile  string
}

// Load reads the configuration. A missing weather API key is fatal.
func Load() (*Config, error) {
	cfg := &Config{
		WeatherAPIKey:   getEnv("WEATHER_API_KEY", ""),
		WeatherURL:      getEnv("WEATHER_API_URL", DefaultWeatherURL),
		WeatherTimeout:  getDuration("WEATHER_TIMEOUT", 10*time.Second),
		WeatherCacheTTL: getDuration("WEATHER_CACHE_TTL", 10*time.Minute),

		Host: getEnv("HOST", "0.0.0.0"),
		Port: getEnv("PORT", "5000"),
		Env:  getEnv("GO_ENV", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		SpeechLanguage:    getEnv("SPEECH_LANGUAGE", "en-US"),
		SpeechMaxDuration: getDuration("SPEECH_MAX_DURATION", 60*time.Second),
		TTSCommand:        getEnv("TTS_COMMAND", DefaultTTSCommand),
		MaxUploadBytes:    getInt("MAX_UPLOAD_BYTES", 10*1024*1024),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}

	if cfg.WeatherAPIKey == "" {
		return nil, ErrMissingWeatherAPIKey
	}

	return cfg, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}
