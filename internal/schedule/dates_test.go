package schedule

import (
	"reflect"
	"testing"
	"time"
)

func TestGenerateRecurringDates(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		days     []Weekday
		fallback string
		want     []string
	}{
		{
			// Jan 6 2025 is a Monday.
			name:  "inclusive range keeps matching weekdays",
			start: "2025-01-06",
			end:   "2025-01-12",
			days:  []Weekday{Mon, Wed},
			want:  []string{"2025-01-06", "2025-01-08"},
		},
		{
			name:  "two full weeks",
			start: "2025-01-06",
			end:   "2025-01-19",
			days:  []Weekday{Mon, Fri},
			want:  []string{"2025-01-06", "2025-01-10", "2025-01-13", "2025-01-17"},
		},
		{
			name:  "end date itself matches",
			start: "2025-01-06",
			end:   "2025-01-12",
			days:  []Weekday{Sun},
			want:  []string{"2025-01-12"},
		},
		{
			name:     "empty weekday set falls back to start date",
			start:    "2025-01-06",
			end:      "2025-01-12",
			days:     nil,
			fallback: "2025-02-01",
			want:     []string{"2025-01-06"},
		},
		{
			name:  "range without selected weekday falls back to start date",
			start: "2025-01-07",
			end:   "2025-01-08",
			days:  []Weekday{Sat},
			want:  []string{"2025-01-07"},
		},
		{
			name:     "unparseable start yields fallback",
			start:    "not-a-date",
			end:      "2025-01-12",
			days:     []Weekday{Mon},
			fallback: "2025-01-06",
			want:     []string{"2025-01-06"},
		},
		{
			name:     "unparseable end yields fallback",
			start:    "2025-01-06",
			end:      "06.01.2025",
			days:     []Weekday{Mon},
			fallback: "2025-01-06",
			want:     []string{"2025-01-06"},
		},
		{
			name:  "inverted range falls back to start date",
			start: "2025-01-12",
			end:   "2025-01-06",
			days:  []Weekday{Mon},
			want:  []string{"2025-01-12"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateRecurringDates(tt.start, tt.end, tt.days, tt.fallback)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountOccurrences(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		days  []Weekday
		want  int
	}{
		{"single week two days", "2025-01-06", "2025-01-12", []Weekday{Mon, Wed}, 2},
		{"every day of one week", "2025-01-06", "2025-01-12", []Weekday{Mon, Tue, Wed, Thu, Fri, Sat, Sun}, 7},
		{"partial trailing week", "2025-01-06", "2025-01-15", []Weekday{Mon, Wed}, 4},
		{"no matches", "2025-01-07", "2025-01-08", []Weekday{Sun}, 0},
		{"inverted range", "2025-01-12", "2025-01-06", []Weekday{Mon}, 0},
		{"bad input", "xx", "2025-01-12", []Weekday{Mon}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountOccurrences(tt.start, tt.end, tt.days); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

// The stored weeks*len(days) shortcut overcounts whenever the range is not
// a whole number of weeks; the iterative count is authoritative.
func TestCountOccurrencesDisagreesWithWeeksProduct(t *testing.T) {
	start, end := "2025-01-06", "2025-01-14" // Mon .. Tue, 9 days
	days := []Weekday{Wed, Fri}

	iterated := CountOccurrences(start, end, days)
	product := Weeks(start, end) * len(days)

	if iterated != 2 {
		t.Fatalf("iterated count = %d, want 2", iterated)
	}
	if product == iterated {
		t.Fatalf("expected weeks product (%d) to differ from iterated count for a ragged range", product)
	}
}

func TestWeeks(t *testing.T) {
	tests := []struct {
		start string
		end   string
		want  int
	}{
		{"2025-01-06", "2025-01-12", 1},
		{"2025-01-06", "2025-01-13", 2},
		{"2025-01-06", "2025-01-06", 1},
		{"2025-11-24", "2025-12-22", 5},
		{"2025-01-12", "2025-01-06", 0},
	}

	for _, tt := range tests {
		if got := Weeks(tt.start, tt.end); got != tt.want {
			t.Errorf("Weeks(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestRemainingSessionsRefundCutoff(t *testing.T) {
	// Jan 8 2025 is a Wednesday.
	days := []Weekday{Wed, Thu, Fri}
	now := time.Date(2025, 1, 8, 10, 0, 0, 0, time.Local)

	// Thursday 10:00 is exactly now+24h and must count; Wednesday 10:00 is
	// now itself and must not.
	got, ok := RemainingSessions("2025-01-06", "2025-01-10", days, "10:00", "2025-01-06", now, 24)
	if !ok {
		t.Fatal("expected ok")
	}
	if got != 2 {
		t.Errorf("remaining = %d, want 2 (Thu and Fri)", got)
	}

	// Shifting the session one minute earlier puts Thursday at now+23h59m,
	// inside the refund window.
	got, ok = RemainingSessions("2025-01-06", "2025-01-10", days, "09:59", "2025-01-06", now, 24)
	if !ok {
		t.Fatal("expected ok")
	}
	if got != 1 {
		t.Errorf("remaining = %d, want 1 (Fri only)", got)
	}
}

func TestRemainingSessions(t *testing.T) {
	days := []Weekday{Mon, Wed, Fri}

	t.Run("iteration starts at the latest of start, current and today", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local)

		// Recurrence starts in the future; today is irrelevant.
		got, ok := RemainingSessions("2025-01-06", "2025-01-12", days, "10:00", "2025-01-06", now, 24)
		if !ok || got != 3 {
			t.Errorf("got %d ok=%v, want 3 true", got, ok)
		}

		// Inspecting a mid-range occurrence skips earlier ones.
		got, ok = RemainingSessions("2025-01-06", "2025-01-12", days, "10:00", "2025-01-08", now, 24)
		if !ok || got != 2 {
			t.Errorf("got %d ok=%v, want 2 true", got, ok)
		}
	})

	t.Run("zero when iteration start is past the end", func(t *testing.T) {
		now := time.Date(2025, 2, 1, 8, 0, 0, 0, time.Local)
		got, ok := RemainingSessions("2025-01-06", "2025-01-12", days, "10:00", "2025-01-06", now, 24)
		if !ok || got != 0 {
			t.Errorf("got %d ok=%v, want 0 true", got, ok)
		}
	})

	t.Run("not computable on malformed input", func(t *testing.T) {
		now := time.Now()
		if _, ok := RemainingSessions("bogus", "2025-01-12", days, "10:00", "2025-01-06", now, 24); ok {
			t.Error("expected ok=false for bad start date")
		}
		if _, ok := RemainingSessions("2025-01-06", "2025-01-12", days, "25:00", "2025-01-06", now, 24); ok {
			t.Error("expected ok=false for bad clock time")
		}
		if _, ok := RemainingSessions("2025-01-06", "2025-01-12", nil, "10:00", "2025-01-06", now, 24); ok {
			t.Error("expected ok=false for empty weekday set")
		}
	})
}

func TestMinutesOfDay(t *testing.T) {
	tests := []struct {
		clock   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := MinutesOfDay(tt.clock)
		if (err != nil) != tt.wantErr {
			t.Errorf("MinutesOfDay(%q) error = %v, wantErr %v", tt.clock, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("MinutesOfDay(%q) = %d, want %d", tt.clock, got, tt.want)
		}
	}
}
