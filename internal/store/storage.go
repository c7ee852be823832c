package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Bookings interface {
		Create(context.Context, *Booking) error
		GetByID(context.Context, string) (*Booking, error)
		List(context.Context, BookingFilter) ([]Booking, error)
		GetByDate(context.Context, string) ([]Booking, error)
		UpdateStatus(context.Context, string, BookingStatus) error
		RemoveDate(ctx context.Context, bookingID, date string) error
	}
	Courts interface {
		Create(context.Context, *Court) error
		GetByID(context.Context, string) (*Court, error)
		List(ctx context.Context, includeHidden bool) ([]Court, error)
		Update(context.Context, *Court) error
		Delete(context.Context, string) error
		ToggleVisibility(context.Context, string) (bool, error)
		SetImageURL(ctx context.Context, courtID, url string) error
		AddPriceSlot(ctx context.Context, courtID string, slot *PriceSlot) error
		UpdatePriceSlot(ctx context.Context, courtID string, slot *PriceSlot) error
		DeletePriceSlot(ctx context.Context, courtID, slotID string) error
	}
	Tariffs interface {
		Create(context.Context, *Tariff) error
		GetByID(context.Context, string) (*Tariff, error)
		List(context.Context) ([]Tariff, error)
		Update(context.Context, *Tariff) error
		Delete(context.Context, string) error
		ToggleActive(context.Context, string) (bool, error)
	}
	Extras interface {
		Create(context.Context, *Extra) error
		GetByID(context.Context, string) (*Extra, error)
		List(context.Context) ([]Extra, error)
		Update(context.Context, *Extra) error
		Delete(context.Context, string) error
	}
	Organization interface {
		Get(context.Context) (*Organization, error)
		Update(context.Context, *Organization) error
	}
	Staff interface {
		GetByID(context.Context, string) (*Staff, error)
		GetByEmail(context.Context, string) (*Staff, error)
		SetRefreshToken(ctx context.Context, staffID, refreshToken string) error
	}
}

// NewStorage wires the Postgres-backed stores. NewMemoryStorage is the
// seeded in-memory alternative used when no database is configured.
func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Bookings:     &BookingStore{db},
		Courts:       &CourtStore{db},
		Tariffs:      &TariffStore{db},
		Extras:       &ExtraStore{db},
		Organization: &OrganizationStore{db},
		Staff:        &StaffStore{db},
	}
}
