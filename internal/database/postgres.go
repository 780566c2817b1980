package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ConnectDB opens a pooled connection to Postgres and verifies it.
func ConnectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify database connection: %v", err)
	}

	return db, nil
}

// InitSchema creates the webhooks table and its indexes if they do not
// exist yet. webhook_type is nullable: records captured before
// classification existed have none.
func InitSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS webhooks (
			id SERIAL PRIMARY KEY,
			path VARCHAR(500) NOT NULL,
			method VARCHAR(10) NOT NULL,
			headers JSONB,
			body JSONB,
			query_params JSONB,
			source_ip VARCHAR(45),
			webhook_type TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_webhooks_created_at ON webhooks (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_webhooks_path ON webhooks (path)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}
	}
	return nil
}
