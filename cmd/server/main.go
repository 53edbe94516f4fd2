package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/voiceassist/backend/internal/cache"
	"github.com/voiceassist/backend/internal/config"
	"github.com/voiceassist/backend/internal/delivery/http"
	"github.com/voiceassist/backend/internal/logging"
	"github.com/voiceassist/backend/internal/metrics"
	"github.com/voiceassist/backend/internal/repository/postgres"
	"github.com/voiceassist/backend/internal/service"
	"github.com/voiceassist/backend/internal/speech"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	// Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Startup aborted: %v", err)
	}

	logFile, err := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()
	if envErr != nil {
		log.Info("No .env file found, using system environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	m := metrics.New()

	// Dependency Injection: Repositories
	historyRepo, closeHistory := openHistory(ctx, cfg.DatabaseURL)
	defer closeHistory()

	// Dependency Injection: Services
	weatherOpts := []service.WeatherOption{service.WithWeatherMetrics(m)}
	if cfg.RedisURL != "" {
		weatherCache, err := cache.NewWeatherCache(ctx, cfg.RedisURL, cfg.WeatherCacheTTL)
		if err != nil {
			log.WithError(err).Warn("Weather cache disabled")
		} else {
			defer weatherCache.Close()
			weatherOpts = append(weatherOpts, service.WithCache(weatherCache))
			log.Info("Connected to Redis weather cache")
		}
	}
	weatherSvc := service.NewWeatherService(cfg.WeatherAPIKey, cfg.WeatherURL, cfg.WeatherTimeout, weatherOpts...)
	router := service.NewRouter(weatherSvc, m)
	historySvc := service.NewHistoryService(historyRepo)

	recognizer, err := speech.NewGoogleRecognizer(context.Background(), cfg.SpeechLanguage, cfg.SpeechMaxDuration)
	if err != nil {
		log.WithError(err).Warn("Speech recognition unavailable")
	}
	defer recognizer.Close()

	engine, engineErr := speech.NewExecEngine(cfg.TTSCommand)
	speaker := speech.NewSpeaker(engine, engineErr)

	// Fiber App
	app := http.NewApp(http.AppConfig{
		BodyLimit: cfg.MaxUploadBytes,
		AccessLog: log.StandardLogger().Writer(),
	}, http.Dependencies{
		Weather:    weatherSvc,
		Router:     router,
		Recognizer: recognizer,
		Speaker:    speaker,
		History:    historySvc,
		Metrics:    m,
	})

	// Graceful shutdown
	go func() {
		log.WithFields(log.Fields{
			"addr":           cfg.Addr(),
			"text_to_speech": speaker.Enabled(),
			"voice":          recognizer.Available(),
		}).Info("Voice assistant API starting")
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Warnf("Server forced to shutdown: %v", err)
	}
	historySvc.WaitBackground()
	log.Info("Server exited gracefully")
}

// openHistory connects to PostgreSQL, falling back to in-memory history
func openHistory(ctx context.Context, databaseURL string) (service.HistoryRepository, func()) {
	noop := func() {}
	if databaseURL == "" {
		log.Info("DATABASE_URL not set, keeping command history in memory")
		return postgres.NewMemoryRepository(), noop
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		log.WithError(err).Warn("Could not connect to database, keeping command history in memory")
		return postgres.NewMemoryRepository(), noop
	}

	repo := postgres.NewPostgresRepository(pool)
	if err := repo.Health(ctx); err != nil {
		log.WithError(err).Warn("Could not connect to database, keeping command history in memory")
		pool.Close()
		return postgres.NewMemoryRepository(), noop
	}
	if err := repo.Migrate(ctx); err != nil {
		log.WithError(err).Warn("Could not apply history schema, keeping command history in memory")
		pool.Close()
		return postgres.NewMemoryRepository(), noop
	}

	log.Info("Connected to PostgreSQL")
	return repo, pool.Close
}
