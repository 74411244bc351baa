package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"github.com/lumapark/venue-booking/internal/model"
)

// EventRepo provides CRUD operations for events and their ticket
// types.  Bilingual text fields are stored as paired _tr/_en columns;
// ticket prices are stored in minor currency units.  All timestamp
// columns are assumed to be UTC.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, slug, category, title_tr, title_en, description_tr, description_en,
	location_tr, location_en, starts_at, ends_at, image_path, published`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var (
		e         model.Event
		endsAt    sql.NullTime
		imagePath sql.NullString
	)
	err := row.Scan(
		&e.ID, &e.Slug, &e.Category,
		&e.Title.TR, &e.Title.EN,
		&e.Description.TR, &e.Description.EN,
		&e.Location.TR, &e.Location.EN,
		&e.StartsAt, &endsAt, &imagePath, &e.Published,
	)
	if err != nil {
		return model.Event{}, err
	}
	if endsAt.Valid {
		t := endsAt.Time
		e.EndsAt = &t
	}
	e.ImagePath = imagePath.String
	return e, nil
}

// ListPublished returns published events, optionally filtered by
// category and excluding one event id (the page's own event), capped
// at limit.  Ticket types are not loaded for list responses.
func (r *EventRepo) ListPublished(ctx context.Context, category string, excludeID uint64, limit int) ([]model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE published = 1`
	args := []any{}
	if category != "" {
		q += ` AND category = ?`
		args = append(args, category)
	}
	if excludeID != 0 {
		q += ` AND id <> ?`
		args = append(args, excludeID)
	}
	q += ` ORDER BY starts_at ASC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ListAll returns every event regardless of published state, newest
// first, for the admin CMS.
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events ORDER BY starts_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetByID returns one event with its ticket types loaded.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return model.Event{}, ErrEventNotFound
	}
	if err != nil {
		return model.Event{}, err
	}
	e.TicketTypes, err = r.TicketTypesByEvent(ctx, e.ID)
	return e, err
}

// GetBySlug returns one published event with its ticket types loaded.
func (r *EventRepo) GetBySlug(ctx context.Context, slug string) (model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE slug = ? AND published = 1`
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, slug))
	if err == sql.ErrNoRows {
		return model.Event{}, ErrEventNotFound
	}
	if err != nil {
		return model.Event{}, err
	}
	e.TicketTypes, err = r.TicketTypesByEvent(ctx, e.ID)
	return e, err
}

// TicketTypesByEvent loads the ticket types of an event in their
// configured display order.
func (r *EventRepo) TicketTypesByEvent(ctx context.Context, eventID uint64) ([]model.TicketType, error) {
	const q = `SELECT id, name_tr, name_en, description_tr, description_en, price_minor,
		max_per_order, variant, is_sold_out, is_coming_soon
		FROM ticket_types WHERE event_id = ? ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	types := make([]model.TicketType, 0)
	for rows.Next() {
		var (
			t          model.TicketType
			descTR     sql.NullString
			descEN     sql.NullString
			priceMinor int64
		)
		if err := rows.Scan(
			&t.ID, &t.Name.TR, &t.Name.EN, &descTR, &descEN,
			&priceMinor, &t.MaxPerOrder, &t.Variant, &t.IsSoldOut, &t.IsComingSoon,
		); err != nil {
			return nil, err
		}
		if descTR.Valid || descEN.Valid {
			t.Description = &model.LocalizedText{TR: descTR.String, EN: descEN.String}
		}
		t.Price = decimal.NewFromInt(priceMinor).Div(decimal.NewFromInt(100))
		types = append(types, t)
	}
	return types, rows.Err()
}

// CreateTx inserts an event and its ticket types within the scope of
// an existing transaction.  The generated id is populated on the
// event.  The caller must commit or rollback.
func (r *EventRepo) CreateTx(ctx context.Context, tx *sql.Tx, e *model.Event) error {
	const q = `INSERT INTO events (slug, category, title_tr, title_en, description_tr, description_en,
		location_tr, location_en, starts_at, ends_at, image_path, published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		e.Slug, e.Category,
		e.Title.TR, e.Title.EN,
		e.Description.TR, e.Description.EN,
		e.Location.TR, e.Location.EN,
		e.StartsAt.UTC(), nullTime(e.EndsAt), nullStr(e.ImagePath), e.Published,
	)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return r.ReplaceTicketTypesTx(ctx, tx, e.ID, e.TicketTypes)
}

// UpdateTx rewrites an event and replaces its ticket types within a
// transaction.
func (r *EventRepo) UpdateTx(ctx context.Context, tx *sql.Tx, e *model.Event) error {
	const q = `UPDATE events SET slug = ?, category = ?, title_tr = ?, title_en = ?,
		description_tr = ?, description_en = ?, location_tr = ?, location_en = ?,
		starts_at = ?, ends_at = ?, image_path = ?, published = ? WHERE id = ?`
	res, err := tx.ExecContext(ctx, q,
		e.Slug, e.Category,
		e.Title.TR, e.Title.EN,
		e.Description.TR, e.Description.EN,
		e.Location.TR, e.Location.EN,
		e.StartsAt.UTC(), nullTime(e.EndsAt), nullStr(e.ImagePath), e.Published,
		e.ID,
	)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the row is missing or nothing changed; verify it exists.
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, e.ID).Scan(&one); err == sql.ErrNoRows {
			return ErrEventNotFound
		} else if err != nil {
			return err
		}
	}
	return r.ReplaceTicketTypesTx(ctx, tx, e.ID, e.TicketTypes)
}

// ReplaceTicketTypesTx deletes and re-inserts the event's ticket types
// in one bulk statement, preserving their order via sort_order.
func (r *EventRepo) ReplaceTicketTypesTx(ctx context.Context, tx *sql.Tx, eventID uint64, types []model.TicketType) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM ticket_types WHERE event_id = ?`, eventID); err != nil {
		return err
	}
	if len(types) == 0 {
		return nil
	}
	q := `INSERT INTO ticket_types (id, event_id, name_tr, name_en, description_tr, description_en,
		price_minor, max_per_order, variant, is_sold_out, is_coming_soon, sort_order) VALUES `
	args := make([]any, 0, len(types)*12)
	for i, t := range types {
		if i > 0 {
			q += ","
		}
		q += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		var descTR, descEN any
		if t.Description != nil {
			descTR, descEN = t.Description.TR, t.Description.EN
		}
		args = append(args, t.ID, eventID, t.Name.TR, t.Name.EN, descTR, descEN,
			t.Price.Mul(decimal.NewFromInt(100)).IntPart(), t.MaxPerOrder, string(t.Variant),
			t.IsSoldOut, t.IsComingSoon, i)
	}
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// Delete removes an event; ticket types cascade via the foreign key.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// isDuplicate reports whether err is a MySQL duplicate-key violation.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
