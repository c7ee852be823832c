package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PriceSlot is one priced interval in a day group's table. From/To are
// "HH:MM"; the interval is half-open, lower bound inclusive.
type PriceSlot struct {
	ID       string `json:"id"`
	DayGroup string `json:"day_group"`
	From     string `json:"from"`
	To       string `json:"to"`
	Price    int    `json:"price"`
}

// PriceTable holds a court's (or tariff's) per-day-group slot lists, ordered
// by start time. Within one group the intervals are expected not to overlap.
type PriceTable struct {
	Weekdays []PriceSlot `json:"weekdays"`
	Weekends []PriceSlot `json:"weekends"`
}

// ForDayGroup returns the slot list for "weekdays" or "weekends".
func (t PriceTable) ForDayGroup(group string) []PriceSlot {
	if group == "weekends" {
		return t.Weekends
	}
	return t.Weekdays
}

// Court is a bookable court with its two price tables.
type Court struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CoverType string     `json:"cover_type"`
	SportType string     `json:"sport_type"`
	IsIndoor  bool       `json:"is_indoor"`
	IsVisible bool       `json:"is_visible"`
	Street    string     `json:"street"`
	ImageURL  string     `json:"image_url"`
	Prices    PriceTable `json:"prices"`
}

type CourtStore struct {
	db *pgxpool.Pool
}

const ownerCourt = "court"

func (s *CourtStore) Create(ctx context.Context, court *Court) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO courts (id, name, cover_type, sport_type, is_indoor, is_visible, street, image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	if _, err := tx.Exec(ctx, query,
		court.ID, court.Name, court.CoverType, court.SportType,
		court.IsIndoor, court.IsVisible, court.Street, court.ImageURL,
	); err != nil {
		return err
	}

	if err := insertSlots(ctx, tx, ownerCourt, court.ID, court.Prices); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertSlots(ctx context.Context, tx pgx.Tx, ownerKind, ownerID string, prices PriceTable) error {
	query := `
		INSERT INTO price_slots (id, owner_kind, owner_id, day_group, from_time, to_time, price)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	for _, slot := range append(prices.Weekdays, prices.Weekends...) {
		if _, err := tx.Exec(ctx, query,
			slot.ID, ownerKind, ownerID, slot.DayGroup, slot.From, slot.To, slot.Price,
		); err != nil {
			return err
		}
	}
	return nil
}

func loadSlots(ctx context.Context, db *pgxpool.Pool, ownerKind, ownerID string) (PriceTable, error) {
	query := `
		SELECT id, day_group, from_time, to_time, price
		FROM price_slots
		WHERE owner_kind = $1 AND owner_id = $2
		ORDER BY from_time`

	rows, err := db.Query(ctx, query, ownerKind, ownerID)
	if err != nil {
		return PriceTable{}, err
	}
	defer rows.Close()

	var table PriceTable
	for rows.Next() {
		var slot PriceSlot
		if err := rows.Scan(&slot.ID, &slot.DayGroup, &slot.From, &slot.To, &slot.Price); err != nil {
			return PriceTable{}, err
		}
		if slot.DayGroup == "weekends" {
			table.Weekends = append(table.Weekends, slot)
		} else {
			table.Weekdays = append(table.Weekdays, slot)
		}
	}
	return table, rows.Err()
}

func (s *CourtStore) GetByID(ctx context.Context, id string) (*Court, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, name, cover_type, sport_type, is_indoor, is_visible, street, image_url
		FROM courts WHERE id = $1`

	var c Court
	err := s.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.CoverType, &c.SportType,
		&c.IsIndoor, &c.IsVisible, &c.Street, &c.ImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if c.Prices, err = loadSlots(ctx, s.db, ownerCourt, c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CourtStore) List(ctx context.Context, includeHidden bool) ([]Court, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, name, cover_type, sport_type, is_indoor, is_visible, street, image_url
		FROM courts`
	if !includeHidden {
		query += ` WHERE is_visible`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Court
	for rows.Next() {
		var c Court
		if err := rows.Scan(
			&c.ID, &c.Name, &c.CoverType, &c.SportType,
			&c.IsIndoor, &c.IsVisible, &c.Street, &c.ImageURL,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Prices, err = loadSlots(ctx, s.db, ownerCourt, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Update replaces the court row and its entire slot table, mirroring the
// whole-object replace semantics of the management UI.
func (s *CourtStore) Update(ctx context.Context, court *Court) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE courts
		SET name=$1, cover_type=$2, sport_type=$3, is_indoor=$4, is_visible=$5, street=$6, image_url=$7
		WHERE id=$8`
	res, err := tx.Exec(ctx, query,
		court.Name, court.CoverType, court.SportType,
		court.IsIndoor, court.IsVisible, court.Street, court.ImageURL, court.ID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM price_slots WHERE owner_kind=$1 AND owner_id=$2`, ownerCourt, court.ID,
	); err != nil {
		return err
	}
	if err := insertSlots(ctx, tx, ownerCourt, court.ID, court.Prices); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *CourtStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx, `DELETE FROM courts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	_, err = s.db.Exec(ctx,
		`DELETE FROM price_slots WHERE owner_kind=$1 AND owner_id=$2`, ownerCourt, id)
	return err
}

func (s *CourtStore) ToggleVisibility(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `UPDATE courts SET is_visible = NOT is_visible WHERE id = $1 RETURNING is_visible`

	var visible bool
	if err := s.db.QueryRow(ctx, query, id).Scan(&visible); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}
	return visible, nil
}

func (s *CourtStore) SetImageURL(ctx context.Context, courtID, url string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx, `UPDATE courts SET image_url = $1 WHERE id = $2`, url, courtID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CourtStore) AddPriceSlot(ctx context.Context, courtID string, slot *PriceSlot) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO price_slots (id, owner_kind, owner_id, day_group, from_time, to_time, price)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := s.db.Exec(ctx, query,
		slot.ID, ownerCourt, courtID, slot.DayGroup, slot.From, slot.To, slot.Price)
	return err
}

func (s *CourtStore) UpdatePriceSlot(ctx context.Context, courtID string, slot *PriceSlot) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE price_slots
		SET day_group=$1, from_time=$2, to_time=$3, price=$4
		WHERE id=$5 AND owner_kind=$6 AND owner_id=$7`
	res, err := s.db.Exec(ctx, query,
		slot.DayGroup, slot.From, slot.To, slot.Price, slot.ID, ownerCourt, courtID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CourtStore) DeletePriceSlot(ctx context.Context, courtID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx,
		`DELETE FROM price_slots WHERE id=$1 AND owner_kind=$2 AND owner_id=$3`,
		slotID, ownerCourt, courtID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
