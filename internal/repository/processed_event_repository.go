package repository

import (
	"context"
	"database/sql"
)

// ProcessedEventRepo records the ids of broker messages that have already
// been applied, so a redelivered payment message does not act twice.
type ProcessedEventRepo struct {
	db *sql.DB
}

// NewProcessedEventRepo returns a new ProcessedEventRepo bound to the given database.
func NewProcessedEventRepo(db *sql.DB) *ProcessedEventRepo { return &ProcessedEventRepo{db: db} }

// Seen reports whether eventID has been recorded.
func (r *ProcessedEventRepo) Seen(ctx context.Context, eventID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM processed_events WHERE event_id = ?`, eventID).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// Record stores eventID for bookingID.  It returns ErrAlreadyProcessed
// when the id was stored before.
func (r *ProcessedEventRepo) Record(ctx context.Context, eventID string, bookingID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO processed_events (event_id, booking_id) VALUES (?, ?)`, eventID, bookingID)
	if isDuplicate(err) {
		return ErrAlreadyProcessed
	}
	return err
}
