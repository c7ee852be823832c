package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Extra is a bookable add-on. Unit drives pricing: "hour" extras scale with
// session duration, anything else is charged flat per quantity.
type Extra struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Price  int    `json:"price"`
	Unit   string `json:"unit"`
	Amount int    `json:"amount"`
}

type ExtraStore struct {
	db *pgxpool.Pool
}

func (s *ExtraStore) Create(ctx context.Context, extra *Extra) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `INSERT INTO extras (id, title, price, unit, amount) VALUES ($1,$2,$3,$4,$5)`

	_, err := s.db.Exec(ctx, query, extra.ID, extra.Title, extra.Price, extra.Unit, extra.Amount)
	return err
}

func (s *ExtraStore) GetByID(ctx context.Context, id string) (*Extra, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var e Extra
	err := s.db.QueryRow(ctx,
		`SELECT id, title, price, unit, amount FROM extras WHERE id = $1`, id,
	).Scan(&e.ID, &e.Title, &e.Price, &e.Unit, &e.Amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (s *ExtraStore) List(ctx context.Context) ([]Extra, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, `SELECT id, title, price, unit, amount FROM extras ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Extra
	for rows.Next() {
		var e Extra
		if err := rows.Scan(&e.ID, &e.Title, &e.Price, &e.Unit, &e.Amount); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *ExtraStore) Update(ctx context.Context, extra *Extra) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `UPDATE extras SET title=$1, price=$2, unit=$3, amount=$4 WHERE id=$5`

	res, err := s.db.Exec(ctx, query, extra.Title, extra.Price, extra.Unit, extra.Amount, extra.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ExtraStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx, `DELETE FROM extras WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
