package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Staff is an admin user of the booking desk.
type Staff struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Password     password `json:"-"`
	RefreshToken string   `json:"-"`
}

type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.text = &text
	p.hash = hash
	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

// Hash exposes the stored hash for persistence.
func (p *password) Hash() []byte {
	return p.hash
}

// SetHash installs an already-hashed password, used when loading rows.
func (p *password) SetHash(hash []byte) {
	p.hash = hash
}

type StaffStore struct {
	db *pgxpool.Pool
}

func (s *StaffStore) GetByID(ctx context.Context, id string) (*Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT id, name, email, password, refresh_token FROM staff WHERE id = $1`

	return s.scanStaff(s.db.QueryRow(ctx, query, id))
}

func (s *StaffStore) GetByEmail(ctx context.Context, email string) (*Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT id, name, email, password, refresh_token FROM staff WHERE email = $1`

	return s.scanStaff(s.db.QueryRow(ctx, query, email))
}

func (s *StaffStore) scanStaff(row pgx.Row) (*Staff, error) {
	var st Staff
	var hash []byte
	err := row.Scan(&st.ID, &st.Name, &st.Email, &hash, &st.RefreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	st.Password.SetHash(hash)
	return &st, nil
}

func (s *StaffStore) SetRefreshToken(ctx context.Context, staffID, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `UPDATE staff SET refresh_token = $1 WHERE id = $2`

	res, err := s.db.Exec(ctx, query, refreshToken, staffID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
