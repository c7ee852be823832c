package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingStatus is the four-state booking lifecycle.
type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "pending-payment"
	StatusPending        BookingStatus = "pending"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusRejected       BookingStatus = "rejected"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusPending, StatusConfirmed, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo enforces the lifecycle: pending-payment may move to any
// later state, pending only forward to confirmed/rejected, and the two
// final states never move again.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPendingPayment:
		return next == StatusPending || next == StatusConfirmed || next == StatusRejected
	case StatusPending:
		return next == StatusConfirmed || next == StatusRejected
	}
	return false
}

// ExtraSelection references an Extra from the catalog with a quantity.
type ExtraSelection struct {
	ExtraID  string `json:"extra_id"`
	Quantity int    `json:"quantity"`
}

// RecurringDetails is the recurrence rule of a recurring booking. Weeks is
// informational; occurrence math always derives from the date range and
// weekday set.
type RecurringDetails struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Weeks     int      `json:"weeks"`
	Days      []string `json:"days"`
}

// Booking represents a court booking, one-off or recurring. Dates holds one
// ISO date per occurrence; Price is per occurrence.
type Booking struct {
	ID        string            `json:"id"`
	Reference string            `json:"reference"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Phone     string            `json:"phone"`
	Email     string            `json:"email"`
	CourtID   string            `json:"court_id"`
	TariffID  *string           `json:"tariff_id,omitempty"`
	Dates     []string          `json:"dates"`
	Time      string            `json:"time"`
	Duration  float64           `json:"duration"`
	Price     int               `json:"price"`
	Status    BookingStatus     `json:"status"`
	Recurring *RecurringDetails `json:"recurring_details,omitempty"`
	Extras    []ExtraSelection  `json:"extras"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// IsRecurring reports whether the booking carries a recurrence rule.
func (b *Booking) IsRecurring() bool {
	return b.Recurring != nil
}

// StartClock returns the "HH:MM" start of the booking's time range.
func (b *Booking) StartClock() string {
	for i := 0; i < len(b.Time); i++ {
		if b.Time[i] == '-' {
			return b.Time[:i]
		}
	}
	return b.Time
}

// BookingFilter narrows List results.
type BookingFilter struct {
	Status  *BookingStatus
	CourtID *string
	Date    *string
	Page    int
	Limit   int
}

type BookingStore struct {
	db *pgxpool.Pool
}

func (s *BookingStore) Create(ctx context.Context, booking *Booking) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	extras, err := json.Marshal(booking.Extras)
	if err != nil {
		return err
	}
	var recurring []byte
	if booking.Recurring != nil {
		if recurring, err = json.Marshal(booking.Recurring); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO bookings
			(id, reference, first_name, last_name, phone, email, court_id, tariff_id,
			 dates, time_range, duration, price, status, extras, recurring)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING created_at, updated_at`

	return s.db.QueryRow(ctx, query,
		booking.ID,
		booking.Reference,
		booking.FirstName,
		booking.LastName,
		booking.Phone,
		booking.Email,
		booking.CourtID,
		booking.TariffID,
		booking.Dates,
		booking.Time,
		booking.Duration,
		booking.Price,
		booking.Status,
		extras,
		recurring,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
}

const bookingColumns = `
	id, reference, first_name, last_name, phone, email, court_id, tariff_id,
	dates, time_range, duration, price, status, extras, recurring,
	created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var extras, recurring []byte
	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.FirstName,
		&b.LastName,
		&b.Phone,
		&b.Email,
		&b.CourtID,
		&b.TariffID,
		&b.Dates,
		&b.Time,
		&b.Duration,
		&b.Price,
		&b.Status,
		&extras,
		&recurring,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(extras) > 0 {
		if err := json.Unmarshal(extras, &b.Extras); err != nil {
			return nil, err
		}
	}
	if len(recurring) > 0 {
		b.Recurring = &RecurringDetails{}
		if err := json.Unmarshal(recurring, b.Recurring); err != nil {
			return nil, err
		}
	}
	return &b, nil
}

func (s *BookingStore) GetByID(ctx context.Context, id string) (*Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingStore) List(ctx context.Context, filter BookingFilter) ([]Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT` + bookingColumns + ` FROM bookings WHERE true`
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.CourtID != nil {
		args = append(args, *filter.CourtID)
		query += fmt.Sprintf(" AND court_id = $%d", len(args))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		query += fmt.Sprintf(" AND $%d = ANY(dates)", len(args))
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// GetByDate returns every booking with an occurrence on the given ISO date,
// regardless of status; the schedule view filters rejected ones itself.
func (s *BookingStore) GetByDate(ctx context.Context, date string) ([]Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT` + bookingColumns + ` FROM bookings WHERE $1 = ANY(dates) ORDER BY time_range`

	rows, err := s.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (s *BookingStore) UpdateStatus(ctx context.Context, id string, status BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`

	res, err := s.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveDate strikes a single occurrence from a recurring booking without
// touching its status.
func (s *BookingStore) RemoveDate(ctx context.Context, bookingID, date string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE bookings
		SET dates = array_remove(dates, $1), updated_at = NOW()
		WHERE id = $2 AND $1 = ANY(dates)`

	res, err := s.db.Exec(ctx, query, date, bookingID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
