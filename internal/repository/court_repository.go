package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/court-reservation/internal/model"
)

// CourtRepo reads courts.  Courts are created and edited by the court
// management service; the scheduler only needs their status, owner and
// operating hours.
type CourtRepo struct {
	db *sql.DB
}

// NewCourtRepo returns a new CourtRepo bound to the given database.
func NewCourtRepo(db *sql.DB) *CourtRepo { return &CourtRepo{db: db} }

// FindByID returns the court with the given id or ErrNotFound.
func (r *CourtRepo) FindByID(ctx context.Context, id uint64) (*model.Court, error) {
	const q = `SELECT id, owner_id, name, status, opening_time, closing_time, created_at, updated_at
        FROM courts WHERE id = ?`
	var c model.Court
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Status, &c.OpeningTime, &c.ClosingTime,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}
