package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"moodspots/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const searchLogSchema = `
	CREATE TABLE IF NOT EXISTS search_logs (
		id               BIGSERIAL PRIMARY KEY,
		search_id        TEXT NOT NULL UNIQUE,
		mood             TEXT NOT NULL,
		lat              DOUBLE PRECISION NOT NULL,
		lng              DOUBLE PRECISION NOT NULL,
		provider         TEXT NOT NULL,
		categories       JSONB NOT NULL DEFAULT '[]',
		outcome          TEXT NOT NULL,
		result_count     INTEGER NOT NULL DEFAULT 0,
		place_ids        JSONB NOT NULL DEFAULT '[]',
		response_time_ms BIGINT NOT NULL DEFAULT 0,
		clicked_place_id TEXT,
		action           TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// PostgresRepository writes the search and feedback log
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", withBinaryParameters(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// withBinaryParameters makes lib/pq skip the unnamed prepared statement round
// trip, which fails behind transaction-mode poolers
// ("unnamed prepared statement does not exist")
func withBinaryParameters(dsn string) string {
	if strings.Contains(dsn, "binary_parameters") {
		return dsn
	}
	if !strings.Contains(dsn, "?") {
		return dsn + "?binary_parameters=yes"
	}
	return dsn + "&binary_parameters=yes"
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the search_logs table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, searchLogSchema); err != nil {
		return fmt.Errorf("failed to create search_logs: %w", err)
	}
	return nil
}

// LogSearch logs one gateway search
func (r *PostgresRepository) LogSearch(ctx context.Context, entry *model.SearchLog) error {
	query := `
		INSERT INTO search_logs (
			search_id, mood, lat, lng, provider, categories,
			outcome, result_count, place_ids, response_time_ms
		) VALUES (
			:search_id, :mood, :lat, :lng, :provider, :categories,
			:outcome, :result_count, :place_ids, :response_time_ms
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// LogFeedback logs user feedback/action against a previous search
func (r *PostgresRepository) LogFeedback(ctx context.Context, searchID, placeID, action string) error {
	query := `
		UPDATE search_logs
		SET clicked_place_id = $2, action = $3
		WHERE search_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, searchID, placeID, action)
	if err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	return nil
}
