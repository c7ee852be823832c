package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Organization is the venue profile. There is exactly one row; RefundHours
// is the cutoff used when counting refundable sessions of a recurring
// booking.
type Organization struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Street      string `json:"street"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	OpenTime    string `json:"open_time"`
	CloseTime   string `json:"close_time"`
	RefundHours int    `json:"refund_hours"`
}

type OrganizationStore struct {
	db *pgxpool.Pool
}

func (s *OrganizationStore) Get(ctx context.Context) (*Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT name, description, street, phone, email, open_time, close_time, refund_hours
		FROM organization
		LIMIT 1`

	var o Organization
	err := s.db.QueryRow(ctx, query).Scan(
		&o.Name, &o.Description, &o.Street, &o.Phone,
		&o.Email, &o.OpenTime, &o.CloseTime, &o.RefundHours,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (s *OrganizationStore) Update(ctx context.Context, org *Organization) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE organization
		SET name=$1, description=$2, street=$3, phone=$4, email=$5,
		    open_time=$6, close_time=$7, refund_hours=$8`

	res, err := s.db.Exec(ctx, query,
		org.Name, org.Description, org.Street, org.Phone,
		org.Email, org.OpenTime, org.CloseTime, org.RefundHours,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
