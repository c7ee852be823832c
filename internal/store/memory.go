package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// memoryDB is the shared state behind the in-memory stores. It backs local
// development and tests when no database is configured.
type memoryDB struct {
	mu       sync.RWMutex
	bookings map[string]*Booking
	courts   map[string]*Court
	tariffs  map[string]*Tariff
	extras   map[string]*Extra
	org      *Organization
	staff    map[string]*Staff
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		bookings: map[string]*Booking{},
		courts:   map[string]*Court{},
		tariffs:  map[string]*Tariff{},
		extras:   map[string]*Extra{},
		staff:    map[string]*Staff{},
	}
}

type MemoryBookingStore struct {
	db *memoryDB
}

func (s *MemoryBookingStore) Create(_ context.Context, booking *Booking) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.bookings[booking.ID]; ok {
		return ErrConflict
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	clone := cloneBooking(booking)
	s.db.bookings[booking.ID] = &clone
	return nil
}

func (s *MemoryBookingStore) GetByID(_ context.Context, id string) (*Booking, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	b, ok := s.db.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := cloneBooking(b)
	return &clone, nil
}

func (s *MemoryBookingStore) List(_ context.Context, filter BookingFilter) ([]Booking, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var out []Booking
	for _, b := range s.db.bookings {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.CourtID != nil && b.CourtID != *filter.CourtID {
			continue
		}
		if filter.Date != nil && !containsDate(b.Dates, *filter.Date) {
			continue
		}
		out = append(out, cloneBooking(b))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Limit > 0 {
		offset := (filter.Page - 1) * filter.Limit
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
		if len(out) > filter.Limit {
			out = out[:filter.Limit]
		}
	}
	return out, nil
}

func (s *MemoryBookingStore) GetByDate(_ context.Context, date string) ([]Booking, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var out []Booking
	for _, b := range s.db.bookings {
		if containsDate(b.Dates, date) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

func (s *MemoryBookingStore) UpdateStatus(_ context.Context, id string, status BookingStatus) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	b, ok := s.db.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryBookingStore) RemoveDate(_ context.Context, bookingID, date string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	b, ok := s.db.bookings[bookingID]
	if !ok {
		return ErrNotFound
	}
	if !containsDate(b.Dates, date) {
		return ErrNotFound
	}
	kept := b.Dates[:0]
	for _, d := range b.Dates {
		if d != date {
			kept = append(kept, d)
		}
	}
	b.Dates = kept
	b.UpdatedAt = time.Now()
	return nil
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func cloneBooking(b *Booking) Booking {
	clone := *b
	clone.Dates = append([]string(nil), b.Dates...)
	clone.Extras = append([]ExtraSelection(nil), b.Extras...)
	if b.Recurring != nil {
		rec := *b.Recurring
		rec.Days = append([]string(nil), b.Recurring.Days...)
		clone.Recurring = &rec
	}
	return clone
}

type MemoryCourtStore struct {
	db *memoryDB
}

func (s *MemoryCourtStore) Create(_ context.Context, court *Court) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.courts[court.ID]; ok {
		return ErrConflict
	}
	clone := cloneCourt(court)
	s.db.courts[court.ID] = &clone
	return nil
}

func (s *MemoryCourtStore) GetByID(_ context.Context, id string) (*Court, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	c, ok := s.db.courts[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := cloneCourt(c)
	return &clone, nil
}

func (s *MemoryCourtStore) List(_ context.Context, includeHidden bool) ([]Court, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var out []Court
	for _, c := range s.db.courts {
		if !includeHidden && !c.IsVisible {
			continue
		}
		out = append(out, cloneCourt(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryCourtStore) Update(_ context.Context, court *Court) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.courts[court.ID]; !ok {
		return ErrNotFound
	}
	clone := cloneCourt(court)
	s.db.courts[court.ID] = &clone
	return nil
}

func (s *MemoryCourtStore) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.courts[id]; !ok {
		return ErrNotFound
	}
	delete(s.db.courts, id)
	return nil
}

func (s *MemoryCourtStore) ToggleVisibility(_ context.Context, id string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.courts[id]
	if !ok {
		return false, ErrNotFound
	}
	c.IsVisible = !c.IsVisible
	return c.IsVisible, nil
}

func (s *MemoryCourtStore) SetImageURL(_ context.Context, courtID, url string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.courts[courtID]
	if !ok {
		return ErrNotFound
	}
	c.ImageURL = url
	return nil
}

func (s *MemoryCourtStore) AddPriceSlot(_ context.Context, courtID string, slot *PriceSlot) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.courts[courtID]
	if !ok {
		return ErrNotFound
	}
	if slot.DayGroup == "weekends" {
		c.Prices.Weekends = append(c.Prices.Weekends, *slot)
	} else {
		c.Prices.Weekdays = append(c.Prices.Weekdays, *slot)
	}
	return nil
}

func (s *MemoryCourtStore) UpdatePriceSlot(_ context.Context, courtID string, slot *PriceSlot) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.courts[courtID]
	if !ok {
		return ErrNotFound
	}
	if !removeSlot(&c.Prices, slot.ID) {
		return ErrNotFound
	}
	if slot.DayGroup == "weekends" {
		c.Prices.Weekends = append(c.Prices.Weekends, *slot)
	} else {
		c.Prices.Weekdays = append(c.Prices.Weekdays, *slot)
	}
	sortSlots(&c.Prices)
	return nil
}

func (s *MemoryCourtStore) DeletePriceSlot(_ context.Context, courtID, slotID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.courts[courtID]
	if !ok {
		return ErrNotFound
	}
	if !removeSlot(&c.Prices, slotID) {
		return ErrNotFound
	}
	return nil
}

func removeSlot(table *PriceTable, slotID string) bool {
	for _, list := range []*[]PriceSlot{&table.Weekdays, &table.Weekends} {
		for i, slot := range *list {
			if slot.ID == slotID {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return true
			}
		}
	}
	return false
}

func sortSlots(table *PriceTable) {
	sort.Slice(table.Weekdays, func(i, j int) bool { return table.Weekdays[i].From < table.Weekdays[j].From })
	sort.Slice(table.Weekends, func(i, j int) bool { return table.Weekends[i].From < table.Weekends[j].From })
}

func cloneCourt(c *Court) Court {
	clone := *c
	clone.Prices = clonePriceTable(c.Prices)
	return clone
}

func clonePriceTable(t PriceTable) PriceTable {
	return PriceTable{
		Weekdays: append([]PriceSlot(nil), t.Weekdays...),
		Weekends: append([]PriceSlot(nil), t.Weekends...),
	}
}

type MemoryTariffStore struct {
	db *memoryDB
}

func (s *MemoryTariffStore) Create(_ context.Context, tariff *Tariff) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.tariffs[tariff.ID]; ok {
		return ErrConflict
	}
	clone := cloneTariff(tariff)
	s.db.tariffs[tariff.ID] = &clone
	return nil
}

func (s *MemoryTariffStore) GetByID(_ context.Context, id string) (*Tariff, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	t, ok := s.db.tariffs[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := cloneTariff(t)
	return &clone, nil
}

func (s *MemoryTariffStore) List(_ context.Context) ([]Tariff, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var out []Tariff
	for _, t := range s.db.tariffs {
		out = append(out, cloneTariff(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *MemoryTariffStore) Update(_ context.Context, tariff *Tariff) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.tariffs[tariff.ID]; !ok {
		return ErrNotFound
	}
	clone := cloneTariff(tariff)
	s.db.tariffs[tariff.ID] = &clone
	return nil
}

func (s *MemoryTariffStore) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.tariffs[id]; !ok {
		return ErrNotFound
	}
	delete(s.db.tariffs, id)
	return nil
}

func (s *MemoryTariffStore) ToggleActive(_ context.Context, id string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t, ok := s.db.tariffs[id]
	if !ok {
		return false, ErrNotFound
	}
	t.IsActive = !t.IsActive
	return t.IsActive, nil
}

func cloneTariff(t *Tariff) Tariff {
	clone := *t
	clone.Prices = clonePriceTable(t.Prices)
	clone.CourtIDs = append([]string(nil), t.CourtIDs...)
	return clone
}

type MemoryExtraStore struct {
	db *memoryDB
}

func (s *MemoryExtraStore) Create(_ context.Context, extra *Extra) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.extras[extra.ID]; ok {
		return ErrConflict
	}
	clone := *extra
	s.db.extras[extra.ID] = &clone
	return nil
}

func (s *MemoryExtraStore) GetByID(_ context.Context, id string) (*Extra, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	e, ok := s.db.extras[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (s *MemoryExtraStore) List(_ context.Context) ([]Extra, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var out []Extra
	for _, e := range s.db.extras {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *MemoryExtraStore) Update(_ context.Context, extra *Extra) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.extras[extra.ID]; !ok {
		return ErrNotFound
	}
	clone := *extra
	s.db.extras[extra.ID] = &clone
	return nil
}

func (s *MemoryExtraStore) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.extras[id]; !ok {
		return ErrNotFound
	}
	delete(s.db.extras, id)
	return nil
}

type MemoryOrganizationStore struct {
	db *memoryDB
}

func (s *MemoryOrganizationStore) Get(_ context.Context) (*Organization, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if s.db.org == nil {
		return nil, ErrNotFound
	}
	clone := *s.db.org
	return &clone, nil
}

func (s *MemoryOrganizationStore) Update(_ context.Context, org *Organization) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	clone := *org
	s.db.org = &clone
	return nil
}

type MemoryStaffStore struct {
	db *memoryDB
}

func (s *MemoryStaffStore) GetByID(_ context.Context, id string) (*Staff, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	st, ok := s.db.staff[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *st
	return &clone, nil
}

func (s *MemoryStaffStore) GetByEmail(_ context.Context, email string) (*Staff, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, st := range s.db.staff {
		if st.Email == email {
			clone := *st
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStaffStore) SetRefreshToken(_ context.Context, staffID, refreshToken string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	st, ok := s.db.staff[staffID]
	if !ok {
		return ErrNotFound
	}
	st.RefreshToken = refreshToken
	return nil
}
