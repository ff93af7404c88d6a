package utils

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var DB *sql.DB

// InitDB initializes the PostgreSQL database connection
func InitDB(logger *zap.Logger) error {
	host := MustGetEnv("POSTGRES_HOST")
	port := GetEnvOrDefault("POSTGRES_PORT", "5432")
	user := MustGetEnv("POSTGRES_USER")
	password := MustGetEnv("POSTGRES_PASSWORD")
	dbname := MustGetEnv("POSTGRES_DB")
	sslmode := GetEnvOrDefault("POSTGRES_SSLMODE", "disable")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established successfully")

	return nil
}

// CreateSchema creates the bleu_results table and its indexes if they don't exist
func CreateSchema(logger *zap.Logger) error {
	if DB == nil {
		return fmt.Errorf("database connection is nil; call InitDB first")
	}

	ctx := context.Background()

	_, err := DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS bleu_results (
			id SERIAL PRIMARY KEY,
			job VARCHAR(255) NOT NULL,
			bleu DOUBLE PRECISION NOT NULL,
			precision_1 DOUBLE PRECISION NOT NULL,
			precision_2 DOUBLE PRECISION NOT NULL,
			precision_3 DOUBLE PRECISION NOT NULL,
			precision_4 DOUBLE PRECISION NOT NULL,
			brevity_penalty DOUBLE PRECISION NOT NULL,
			reference_length INT NOT NULL,
			translation_length INT NOT NULL,
			records INT NOT NULL,
			group_count INT NOT NULL,
			skipped_lines INT NOT NULL DEFAULT 0,
			grouping_strategy TEXT NOT NULL,
			reference_policy TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(job)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create bleu_results table: %w", err)
	}

	_, err = DB.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_bleu_results_job ON bleu_results(job);
		CREATE INDEX IF NOT EXISTS idx_bleu_results_created_at ON bleu_results(created_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Info("Database schema created successfully")
	return nil
}

// CloseDB closes the database connection
func CloseDB(logger *zap.Logger) error {
	if DB != nil {
		logger.Info("Closing database connection")
		return DB.Close()
	}
	return nil
}
