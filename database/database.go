package database

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/mager/thalamus/config"
	"go.uber.org/zap"
)

// ProvideDatabase provides a postgres client
func ProvideDatabase(logger *zap.SugaredLogger, cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection", zap.Error(err))
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		logger.Error("Failed to ping database", zap.Error(err))
		return nil, err
	}

	return db, nil
}

// RecordRejection stores one rejection event for the offline trainer.
// Feedback rows are analytics input, not serving state; losing one is not
// worth failing the request over, so callers log errors and move on.
func RecordRejection(ctx context.Context, db *sql.DB, sessionID, rejectedID, replacementID string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO rejections (session_id, rejected_track_id, replacement_track_id, created_at)
		 VALUES ($1, $2, $3, NOW())`,
		sessionID, rejectedID, replacementID)
	return err
}

var Options = ProvideDatabase
