package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Tariff is a named price table that can be attached to courts. A booking
// made under a tariff resolves its price against the tariff's table instead
// of the court's.
type Tariff struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Prices   PriceTable `json:"prices"`
	CourtIDs []string   `json:"court_ids"`
	IsActive bool       `json:"is_active"`
}

type TariffStore struct {
	db *pgxpool.Pool
}

const ownerTariff = "tariff"

func (s *TariffStore) Create(ctx context.Context, tariff *Tariff) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO tariffs (id, title, court_ids, is_active) VALUES ($1,$2,$3,$4)`
	if _, err := tx.Exec(ctx, query, tariff.ID, tariff.Title, tariff.CourtIDs, tariff.IsActive); err != nil {
		return err
	}
	if err := insertSlots(ctx, tx, ownerTariff, tariff.ID, tariff.Prices); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *TariffStore) GetByID(ctx context.Context, id string) (*Tariff, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var t Tariff
	err := s.db.QueryRow(ctx,
		`SELECT id, title, court_ids, is_active FROM tariffs WHERE id = $1`, id,
	).Scan(&t.ID, &t.Title, &t.CourtIDs, &t.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if t.Prices, err = loadSlots(ctx, s.db, ownerTariff, t.ID); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TariffStore) List(ctx context.Context) ([]Tariff, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, `SELECT id, title, court_ids, is_active FROM tariffs ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tariff
	for rows.Next() {
		var t Tariff
		if err := rows.Scan(&t.ID, &t.Title, &t.CourtIDs, &t.IsActive); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Prices, err = loadSlots(ctx, s.db, ownerTariff, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *TariffStore) Update(ctx context.Context, tariff *Tariff) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx,
		`UPDATE tariffs SET title=$1, court_ids=$2, is_active=$3 WHERE id=$4`,
		tariff.Title, tariff.CourtIDs, tariff.IsActive, tariff.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM price_slots WHERE owner_kind=$1 AND owner_id=$2`, ownerTariff, tariff.ID,
	); err != nil {
		return err
	}
	if err := insertSlots(ctx, tx, ownerTariff, tariff.ID, tariff.Prices); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *TariffStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx, `DELETE FROM tariffs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	_, err = s.db.Exec(ctx,
		`DELETE FROM price_slots WHERE owner_kind=$1 AND owner_id=$2`, ownerTariff, id)
	return err
}

func (s *TariffStore) ToggleActive(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `UPDATE tariffs SET is_active = NOT is_active WHERE id = $1 RETURNING is_active`

	var active bool
	if err := s.db.QueryRow(ctx, query, id).Scan(&active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}
	return active, nil
}
