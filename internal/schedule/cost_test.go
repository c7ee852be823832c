package schedule

import "testing"

func TestSplitTimeRange(t *testing.T) {
	start, end, err := SplitTimeRange("09:00-11:00")
	if err != nil {
		t.Fatal(err)
	}
	if start != "09:00" || end != "11:00" {
		t.Errorf("got (%q, %q)", start, end)
	}

	if _, _, err := SplitTimeRange("09:00"); err == nil {
		t.Error("expected error for range without separator")
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		start   string
		end     string
		want    float64
		wantErr bool
	}{
		{"10:00", "11:00", 1, false},
		{"09:00", "11:30", 2.5, false},
		{"08:00", "08:30", 0.5, false},
		{"11:00", "10:00", -1, false}, // callers validate the >= 1h minimum
		{"10:00", "oops", 0, true},
	}

	for _, tt := range tests {
		got, err := Duration(tt.start, tt.end)
		if (err != nil) != tt.wantErr {
			t.Errorf("Duration(%q, %q) error = %v", tt.start, tt.end, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Duration(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestExtraCost(t *testing.T) {
	// Hourly extra: quantity 2, price 300, over a 3-hour session.
	if got := ExtraCost("hour", 300, 2, 3); got != 1800 {
		t.Errorf("hourly extra = %v, want 1800", got)
	}

	// Flat service extra ignores duration entirely.
	if got := ExtraCost("service", 2000, 1, 3); got != 2000 {
		t.Errorf("service extra = %v, want 2000", got)
	}
	if got := ExtraCost("pcs", 150, 4, 0.5); got != 600 {
		t.Errorf("pcs extra = %v, want 600", got)
	}
}

func TestTotalForOccurrences(t *testing.T) {
	if got := TotalForOccurrences(3200, 12); got != 38400 {
		t.Errorf("got %v, want 38400", got)
	}
	if got := TotalForOccurrences(450.5, 0); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestRoundPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{1700.4, 1700},
		{1700.5, 1701},
		{2550, 2550},
		{-0.4, 0},
	}

	for _, tt := range tests {
		if got := RoundPrice(tt.in); got != tt.want {
			t.Errorf("RoundPrice(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
