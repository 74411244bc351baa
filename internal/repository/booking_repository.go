package repository

import (
	"context"
	"database/sql"

	"github.com/lumapark/venue-booking/internal/model"
)

// BookingRepo persists confirmed walk-in bookings.  Slot times are
// stored as the venue-local HH:MM strings the visitor selected, next
// to the calendar date, so overlap checks compare lexicographically.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking and populates its generated id.  The
// reference number must already be assigned by the caller.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (reference_no, venue_id, party_size, res_date, start_time, end_time,
		first_name, last_name, phone, email, total_minor, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.ReferenceNo, b.VenueID, b.PartySize, b.Date, b.StartTime, b.EndTime,
		b.Contact.FirstName, b.Contact.LastName, b.Contact.Phone, nullStr(b.Contact.Email),
		b.TotalMinor, string(b.Status),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetByReference returns the booking for a reference number.
func (r *BookingRepo) GetByReference(ctx context.Context, ref string) (model.Booking, error) {
	const q = `SELECT id, reference_no, venue_id, party_size, res_date, start_time, end_time,
		first_name, last_name, phone, email, total_minor, status, created_at
		FROM bookings WHERE reference_no = ?`
	var (
		b     model.Booking
		email sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, ref).Scan(
		&b.ID, &b.ReferenceNo, &b.VenueID, &b.PartySize, &b.Date, &b.StartTime, &b.EndTime,
		&b.Contact.FirstName, &b.Contact.LastName, &b.Contact.Phone, &email,
		&b.TotalMinor, &b.Status, &b.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	b.Contact.Email = email.String
	return b, nil
}

// HasOverlap reports whether a non-cancelled booking already occupies
// any part of the requested slot on the same venue and date.
func (r *BookingRepo) HasOverlap(ctx context.Context, venueID, date, start, end string) (bool, error) {
	const q = `SELECT COUNT(*) FROM bookings
		WHERE venue_id = ? AND res_date = ? AND status <> 'CANCELLED'
		AND start_time < ? AND end_time > ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, venueID, date, end, start).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateStatusByReference moves a booking to a new lifecycle status.
func (r *BookingRepo) UpdateStatusByReference(ctx context.Context, ref string, status model.BookingStatus) error {
	const q = `UPDATE bookings SET status = ? WHERE reference_no = ?`
	res, err := r.db.ExecContext(ctx, q, string(status), ref)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ListByDate returns the bookings of one date for the admin overview.
func (r *BookingRepo) ListByDate(ctx context.Context, date string) ([]model.Booking, error) {
	const q = `SELECT id, reference_no, venue_id, party_size, res_date, start_time, end_time,
		first_name, last_name, phone, email, total_minor, status, created_at
		FROM bookings WHERE res_date = ? ORDER BY start_time, id`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		var (
			b     model.Booking
			email sql.NullString
		)
		if err := rows.Scan(
			&b.ID, &b.ReferenceNo, &b.VenueID, &b.PartySize, &b.Date, &b.StartTime, &b.EndTime,
			&b.Contact.FirstName, &b.Contact.LastName, &b.Contact.Phone, &email,
			&b.TotalMinor, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		b.Contact.Email = email.String
		out = append(out, b)
	}
	return out, rows.Err()
}
