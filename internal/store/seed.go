package store

import "time"

// NewMemoryStorage returns fully in-memory stores pre-seeded with demo data,
// used when DB_ADDR is not configured. The seed mirrors a small venue with
// three courts, four tariffs and a handful of extras.
func NewMemoryStorage() Storage {
	db := newMemoryDB()
	seed(db)
	return Storage{
		Bookings:     &MemoryBookingStore{db},
		Courts:       &MemoryCourtStore{db},
		Tariffs:      &MemoryTariffStore{db},
		Extras:       &MemoryExtraStore{db},
		Organization: &MemoryOrganizationStore{db},
		Staff:        &MemoryStaffStore{db},
	}
}

func seed(db *memoryDB) {
	courts := []*Court{
		{
			ID:        "court-1",
			Name:      "Корт №1",
			CoverType: "hard",
			SportType: "tennis",
			IsIndoor:  false,
			IsVisible: true,
			Street:    "Сибирский тракт, 34Б",
			Prices: PriceTable{
				Weekdays: []PriceSlot{
					{ID: "court-1-wd-morning", DayGroup: "weekdays", From: "08:00", To: "16:00", Price: 1700},
					{ID: "court-1-wd-evening", DayGroup: "weekdays", From: "16:00", To: "21:00", Price: 2000},
					{ID: "court-1-wd-night", DayGroup: "weekdays", From: "21:00", To: "23:00", Price: 1700},
				},
				Weekends: []PriceSlot{
					{ID: "court-1-we-prime", DayGroup: "weekends", From: "08:00", To: "23:00", Price: 1700},
				},
			},
		},
		{
			ID:        "court-2",
			Name:      "Корт №2",
			CoverType: "hard",
			SportType: "tennis",
			IsIndoor:  false,
			IsVisible: true,
			Street:    "Сибирский тракт, 34Б",
			Prices: PriceTable{
				Weekdays: []PriceSlot{
					{ID: "court-2-wd-day", DayGroup: "weekdays", From: "10:00", To: "16:00", Price: 2200},
					{ID: "court-2-wd-evening", DayGroup: "weekdays", From: "16:00", To: "22:00", Price: 2600},
				},
				Weekends: []PriceSlot{
					{ID: "court-2-we-full", DayGroup: "weekends", From: "09:00", To: "23:00", Price: 3200},
				},
			},
		},
		{
			ID:        "court-3",
			Name:      "Корт №3",
			CoverType: "hard",
			SportType: "tennis",
			IsIndoor:  false,
			IsVisible: true,
			Street:    "Сибирский тракт, 34Б",
			Prices: PriceTable{
				Weekdays: []PriceSlot{
					{ID: "court-3-wd-morning", DayGroup: "weekdays", From: "07:00", To: "11:00", Price: 1600},
					{ID: "court-3-wd-day", DayGroup: "weekdays", From: "11:00", To: "17:00", Price: 1900},
				},
				Weekends: []PriceSlot{
					{ID: "court-3-we-day", DayGroup: "weekends", From: "08:00", To: "20:00", Price: 2500},
				},
			},
		},
	}
	for _, c := range courts {
		db.courts[c.ID] = c
	}

	tariffs := []*Tariff{
		{
			ID:       "tariff-single-visit",
			Title:    "Разовое посещение",
			CourtIDs: []string{"court-1", "court-2", "court-3"},
			IsActive: true,
			Prices: PriceTable{
				Weekdays: []PriceSlot{
					{ID: "single-wd-any", DayGroup: "weekdays", From: "08:00", To: "23:00", Price: 2000},
				},
				Weekends: []PriceSlot{
					{ID: "single-we-any", DayGroup: "weekends", From: "08:00", To: "23:00", Price: 2500},
				},
			},
		},
		{
			ID:       "tariff-student",
			Title:    "Студенческий тариф",
			CourtIDs: []string{"court-1", "court-3"},
			IsActive: true,
			Prices: PriceTable{
				Weekdays: []PriceSlot{
					{ID: "student-wd-day", DayGroup: "weekdays", From: "10:00", To: "17:00", Price: 1000},
				},
				Weekends: []PriceSlot{
					{ID: "student-we-day", DayGroup: "weekends", From: "10:00", To: "17:00", Price: 1400},
				},
			},
		},
		{
			ID:       "tariff-many-visit",
			Title:    "Несколько визитов",
			CourtIDs: []string{"court-1", "court-2", "court-3"},
			IsActive: true,
			Prices: PriceTable{
				Weekdays: []PriceSlot{
					{ID: "many-wd-day", DayGroup: "weekdays", From: "10:00", To: "17:00", Price: 1000},
				},
				Weekends: []PriceSlot{
					{ID: "many-we-day", DayGroup: "weekends", From: "10:00", To: "17:00", Price: 1400},
				},
			},
		},
		{
			ID:       "tariff-subscription",
			Title:    "Абонемент",
			CourtIDs: []string{"court-1", "court-2", "court-3"},
			IsActive: true,
			Prices: PriceTable{
				Weekdays: []PriceSlot{
					{ID: "sub-wd-morning", DayGroup: "weekdays", From: "08:00", To: "12:00", Price: 1200},
					{ID: "sub-wd-evening", DayGroup: "weekdays", From: "18:00", To: "22:00", Price: 1500},
				},
				Weekends: []PriceSlot{
					{ID: "sub-we-day", DayGroup: "weekends", From: "09:00", To: "21:00", Price: 1800},
				},
			},
		},
	}
	for _, t := range tariffs {
		db.tariffs[t.ID] = t
	}

	extras := []*Extra{
		{ID: "extra-racket-rental", Title: "Аренда ракетки", Price: 300, Unit: "hour", Amount: 5},
		{ID: "extra-coach-session", Title: "Услуга тренера", Price: 2000, Unit: "service", Amount: 1},
		{ID: "extra-ball-set", Title: "Набор мячей", Price: 150, Unit: "pcs", Amount: 1},
		{ID: "extra-locker-rental", Title: "Аренда ячейки", Price: 200, Unit: "day", Amount: 1},
		{ID: "extra-monthly-parking", Title: "Парковка (месяц)", Price: 5000, Unit: "month", Amount: 1},
	}
	for _, e := range extras {
		db.extras[e.ID] = e
	}

	bookings := []*Booking{
		{
			ID:        "booking-1",
			Reference: "BK-N3XK7P2Q",
			FirstName: "Алексей",
			LastName:  "Иванов",
			Phone:     "+7 (900) 123-45-67",
			Email:     "alexey.ivanov@example.com",
			CourtID:   "court-1",
			Dates:     []string{"2025-11-22"},
			Time:      "09:00-11:00",
			Duration:  2,
			Price:     3600,
			Status:    StatusConfirmed,
			CreatedAt: time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:        "booking-2",
			Reference: "BK-T8WM4R6V",
			FirstName: "Мария",
			LastName:  "Соколова",
			Phone:     "+7 (921) 555-66-77",
			Email:     "maria.sokolova@example.com",
			CourtID:   "court-2",
			Dates:     []string{"2025-11-23"},
			Time:      "18:00-20:00",
			Duration:  2,
			Price:     5200,
			Status:    StatusPending,
			CreatedAt: time.Date(2025, 11, 12, 9, 30, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 11, 12, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:        "booking-3",
			Reference: "BK-J5ZD9H3L",
			FirstName: "Дмитрий",
			LastName:  "Кузнецов",
			Phone:     "+7 (916) 777-88-99",
			Email:     "dmitry.k@example.com",
			CourtID:   "court-3",
			Dates: []string{
				"2025-11-24", "2025-11-26", "2025-11-28",
				"2025-12-01", "2025-12-03", "2025-12-05",
				"2025-12-08", "2025-12-10", "2025-12-12",
				"2025-12-15", "2025-12-17", "2025-12-19",
				"2025-12-22",
			},
			Time:     "07:00-09:00",
			Duration: 2,
			Price:    3200,
			Status:   StatusConfirmed,
			Recurring: &RecurringDetails{
				StartDate: "2025-11-24",
				EndDate:   "2025-12-22",
				Weeks:     4,
				Days:      []string{"Mon", "Wed", "Fri"},
			},
			CreatedAt: time.Date(2025, 11, 14, 16, 45, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 11, 14, 16, 45, 0, 0, time.UTC),
		},
	}
	for _, b := range bookings {
		db.bookings[b.ID] = b
	}

	db.org = &Organization{
		Name:        "Корт-Центр",
		Description: "Теннисный центр с тремя открытыми кортами",
		Street:      "Сибирский тракт, 34Б",
		Phone:       "+7 (343) 200-10-20",
		Email:       "info@court-center.example.com",
		OpenTime:    "08:00",
		CloseTime:   "23:00",
		RefundHours: 24,
	}

	admin := &Staff{ID: "staff-admin", Name: "Администратор", Email: "admin@court-center.example.com"}
	// Default development credentials, override in production via the staff table.
	_ = admin.Password.Set("admin123")
	db.staff[admin.ID] = admin
}
