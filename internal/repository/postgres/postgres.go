package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voiceassist/backend/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS command_logs (
		id         UUID PRIMARY KEY,
		source     TEXT NOT NULL,
		input      TEXT NOT NULL,
		intent     TEXT NOT NULL,
		success    BOOLEAN NOT NULL,
		message    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS command_logs_created_at_idx ON command_logs (created_at);

	CREATE TABLE IF NOT EXISTS weather_snapshots (
		command_id    UUID NOT NULL REFERENCES command_logs (id) ON DELETE CASCADE,
		city          TEXT NOT NULL,
		country       TEXT NOT NULL,
		temperature   INTEGER NOT NULL,
		feels_like    INTEGER NOT NULL,
		humidity      INTEGER NOT NULL,
		pressure      INTEGER NOT NULL,
		description   TEXT NOT NULL,
		icon          TEXT NOT NULL,
		wind_speed    DOUBLE PRECISION NOT NULL,
		visibility_km DOUBLE PRECISION NOT NULL,
		sunrise       TEXT NOT NULL,
		sunset        TEXT NOT NULL
	);
`

// PostgresRepository implements domain.HistoryRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Migrate creates the history tables if they do not exist
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to apply schema: %w", err)
	}
	return nil
}

// SaveCommandLog persists a handled command to PostgreSQL
func (r *PostgresRepository) SaveCommandLog(ctx context.Context, entry domain.CommandLog) error {
	query := `
		INSERT INTO command_logs (id, source, input, intent, success, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.Source, entry.Input, string(entry.Intent), entry.Success, entry.Message, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save command log: %w", err)
	}

	return nil
}

// SaveWeatherSnapshot persists the weather payload of a command
func (r *PostgresRepository) SaveWeatherSnapshot(ctx context.Context, commandID string, data domain.WeatherSnapshot) error {
	query := `
		INSERT INTO weather_snapshots (
			command_id, city, country, temperature, feels_like, humidity, pressure,
			description, icon, wind_speed, visibility_km, sunrise, sunset
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		commandID, data.City, data.Country, data.Temperature, data.FeelsLike, data.Humidity, data.Pressure,
		data.Description, data.Icon, data.WindSpeed, data.VisibilityKM, data.Sunrise, data.Sunset,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save weather snapshot: %w", err)
	}

	return nil
}

// GetRecentCommands retrieves command history from PostgreSQL
func (r *PostgresRepository) GetRecentCommands(ctx context.Context, from, to time.Time) ([]domain.CommandLog, error) {
	query := `
		SELECT id::text, source, input, intent, success, message, created_at
		FROM command_logs
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query command logs: %w", err)
	}
	defer rows.Close()

	var results []domain.CommandLog
	for rows.Next() {
		var c domain.CommandLog
		var intent string
		if err := rows.Scan(&c.ID, &c.Source, &c.Input, &intent, &c.Success, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan command row: %w", err)
		}
		c.Intent = domain.Intent(intent)
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate command rows: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
