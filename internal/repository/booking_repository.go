package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/court-reservation/internal/model"
)

// BookingRepo persists court bookings in MySQL.  Alongside the bookings
// table it maintains booking_slots, one row per time bucket held by an
// active booking.  The primary key of booking_slots is
// (court_id, booking_date, slot_start), so the database itself refuses a
// second active booking on the same bucket even if two transactions pass
// the conflict count at the same moment.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `b.id, b.booking_reference, b.user_id, b.court_id, b.booking_date,
       b.start_time, b.end_time, b.total_amount_cents, b.status, b.notes,
       b.created_at, b.updated_at`

// activeStatusSQL lists the statuses that hold a slot.
const activeStatusSQL = `('PENDING','CONFIRMED')`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var (
		b     model.Booking
		notes sql.NullString
	)
	if err := row.Scan(
		&b.ID, &b.Reference, &b.UserID, &b.CourtID, &b.BookingDate,
		&b.StartTime, &b.EndTime, &b.TotalAmountCents, &b.Status, &notes,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if notes.Valid {
		n := notes.String
		b.Notes = &n
	}
	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]model.Booking, error) {
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func day(t time.Time) string { return t.Format(model.DateLayout) }

// retryable tags transient driver errors with ErrRetryable.
func retryable(op string, err error) error {
	if isTransient(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrRetryable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Create inserts b and claims its time buckets in one transaction.
//
// The transaction first counts overlapping active bookings with
// SELECT ... FOR UPDATE, which takes next-key locks on the
// (court_id, booking_date) index range so a concurrent creator for the same
// court and day waits.  It then inserts the booking and one booking_slots
// row per bucket.  A duplicate key on booking_slots means a concurrent
// writer won and is reported as ErrConflict; a duplicate booking reference,
// a deadlock or a lock wait timeout is reported as ErrRetryable.  On
// success b.ID, b.CreatedAt and b.UpdatedAt are filled in.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking, buckets []model.ClockTime) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var n int64
	const lock = `SELECT COUNT(*) FROM bookings
        WHERE court_id = ? AND booking_date = ? AND status IN ` + activeStatusSQL + `
          AND start_time < ? AND end_time > ?
        FOR UPDATE`
	if err := tx.QueryRowContext(ctx, lock, b.CourtID, day(b.BookingDate), b.EndTime, b.StartTime).Scan(&n); err != nil {
		return retryable("lock conflicting bookings", err)
	}
	if n > 0 {
		return ErrConflict
	}

	var notes any
	if b.Notes != nil {
		notes = *b.Notes
	}
	const ins = `INSERT INTO bookings
        (booking_reference, user_id, court_id, booking_date, start_time, end_time, total_amount_cents, status, notes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins,
		b.Reference, b.UserID, b.CourtID, day(b.BookingDate), b.StartTime, b.EndTime,
		b.TotalAmountCents, string(b.Status), notes)
	if err != nil {
		if isDuplicate(err) {
			// the only unique key on bookings is booking_reference
			return fmt.Errorf("insert booking: %w: %v", ErrRetryable, err)
		}
		return retryable("insert booking", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	if len(buckets) > 0 {
		var sb strings.Builder
		sb.WriteString(`INSERT INTO booking_slots (court_id, booking_date, slot_start, booking_id) VALUES `)
		args := make([]any, 0, len(buckets)*4)
		for i, t := range buckets {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString("(?, ?, ?, ?)")
			args = append(args, b.CourtID, day(b.BookingDate), t, b.ID)
		}
		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			if isDuplicate(err) {
				return ErrConflict
			}
			return retryable("claim slots", err)
		}
	}

	if err := tx.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM bookings WHERE id = ?`, b.ID,
	).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return retryable("commit booking", err)
	}
	committed = true
	return nil
}

// FindByID returns the booking with the given id or ErrNotFound.
func (r *BookingRepo) FindByID(ctx context.Context, id uint64) (*model.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id = ?`, id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// FindByReference returns the booking with the given booking reference.
func (r *BookingRepo) FindByReference(ctx context.Context, ref string) (*model.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.booking_reference = ?`, ref)
	b, err := scanBooking(row)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// FindByCourtAndDate returns every booking of a court on a day, in any
// status, ordered by start time.
func (r *BookingRepo) FindByCourtAndDate(ctx context.Context, courtID uint64, date time.Time) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings b
        WHERE b.court_id = ? AND b.booking_date = ?
        ORDER BY b.start_time, b.id`
	rows, err := r.db.QueryContext(ctx, q, courtID, day(date))
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

// CountConflicting counts PENDING and CONFIRMED bookings on the court and
// day whose slot overlaps [start, end), ignoring excludeID.  Intervals that
// only touch do not count.
func (r *BookingRepo) CountConflicting(ctx context.Context, courtID uint64, date time.Time, start, end model.ClockTime, excludeID uint64) (int64, error) {
	const q = `SELECT COUNT(*) FROM bookings
        WHERE court_id = ? AND booking_date = ? AND status IN ` + activeStatusSQL + `
          AND start_time < ? AND end_time > ? AND id <> ?`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, courtID, day(date), end, start, excludeID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// FindByStatusCreatedBefore returns bookings in status created strictly
// before the given instant, oldest first.  A non-zero ownerID restricts
// the result to that owner's courts.
func (r *BookingRepo) FindByStatusCreatedBefore(ctx context.Context, status model.Status, before time.Time, ownerID uint64) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings b`
	args := []any{}
	if ownerID != 0 {
		q += ` JOIN courts c ON c.id = b.court_id`
	}
	q += ` WHERE b.status = ? AND b.created_at < ?`
	args = append(args, string(status), before.UTC())
	if ownerID != 0 {
		q += ` AND c.owner_id = ?`
		args = append(args, ownerID)
	}
	q += ` ORDER BY b.created_at, b.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

// FindUpcoming returns the CONFIRMED bookings of a user on date whose start
// lies in [from, to), ordered by start time.
func (r *BookingRepo) FindUpcoming(ctx context.Context, userID uint64, date time.Time, from, to model.ClockTime) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings b
        WHERE b.user_id = ? AND b.booking_date = ? AND b.status = 'CONFIRMED'
          AND b.start_time >= ? AND b.start_time < ?
        ORDER BY b.start_time`
	rows, err := r.db.QueryContext(ctx, q, userID, day(date), from, to)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

// List returns one page of bookings matching f, newest first, together
// with the total number of matches.
func (r *BookingRepo) List(ctx context.Context, f model.BookingFilter) ([]model.Booking, int64, error) {
	f.Normalize()
	from := ` FROM bookings b`
	var (
		where []string
		args  []any
	)
	if f.OwnerID != 0 {
		from += ` JOIN courts c ON c.id = b.court_id`
		where = append(where, `c.owner_id = ?`)
		args = append(args, f.OwnerID)
	}
	if f.UserID != 0 {
		where = append(where, `b.user_id = ?`)
		args = append(args, f.UserID)
	}
	if f.CourtID != 0 {
		where = append(where, `b.court_id = ?`)
		args = append(args, f.CourtID)
	}
	if f.Status != "" {
		where = append(where, `b.status = ?`)
		args = append(args, string(f.Status))
	}
	if f.From != nil {
		where = append(where, `b.booking_date >= ?`)
		args = append(args, day(*f.From))
	}
	if f.To != nil {
		where = append(where, `b.booking_date <= ?`)
		args = append(args, day(*f.To))
	}
	if len(where) > 0 {
		from += ` WHERE ` + strings.Join(where, ` AND `)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Booking{}, 0, nil
	}
	q := `SELECT ` + bookingColumns + from + ` ORDER BY b.created_at DESC, b.id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, f.Size, f.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	list, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// SumAmountByCourt totals bookings in the given statuses on ownerID's
// courts with booking_date in [start, end], grouped by court.
func (r *BookingRepo) SumAmountByCourt(ctx context.Context, ownerID uint64, start, end time.Time, statuses []model.Status) ([]model.CourtRevenue, error) {
	if len(statuses) == 0 {
		return []model.CourtRevenue{}, nil
	}
	args := []any{ownerID, day(start), day(end)}
	marks := make([]string, len(statuses))
	for i, st := range statuses {
		marks[i] = "?"
		args = append(args, string(st))
	}
	q := `SELECT c.id, c.name, COUNT(b.id), COALESCE(SUM(b.total_amount_cents), 0)
        FROM bookings b
        JOIN courts c ON c.id = b.court_id
        WHERE c.owner_id = ? AND b.booking_date BETWEEN ? AND ?
          AND b.status IN (` + strings.Join(marks, ",") + `)
        GROUP BY c.id, c.name
        ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.CourtRevenue{}
	for rows.Next() {
		var cr model.CourtRevenue
		if err := rows.Scan(&cr.CourtID, &cr.CourtName, &cr.Bookings, &cr.TotalCents); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByStatus counts the bookings of a court per status.  Statuses with
// no bookings are absent from the map.
func (r *BookingRepo) CountByStatus(ctx context.Context, courtID uint64) (map[model.Status]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM bookings WHERE court_id = ? GROUP BY status`, courtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[model.Status]int64{}
	for rows.Next() {
		var (
			st model.Status
			n  int64
		)
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[st] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves booking id from status from to status to.  The
// update only applies while the row is still in from; otherwise
// ErrStaleStatus is returned (or ErrNotFound when the row does not exist).
// Moving into a terminal status releases the booking's slot buckets in the
// same transaction.  The updated booking is returned.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, from, to model.Status) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
		string(to), id, string(from))
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		var current string
		if err := tx.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = ?`, id).Scan(&current); err != nil {
			return nil, notFound(err)
		}
		return nil, ErrStaleStatus
	}
	if to.Terminal() {
		if _, err := tx.ExecContext(ctx, `DELETE FROM booking_slots WHERE booking_id = ?`, id); err != nil {
			return nil, err
		}
	}
	b, err := scanBooking(tx.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}
