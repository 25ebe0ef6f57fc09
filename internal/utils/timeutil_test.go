package utils

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		clock   string
		want    int
		wantErr bool
	}{
		{"06:00", 360, false},
		{"00:00", 0, false},
		{"23:30", 1410, false},
		{"9:15", 540 + 15, false},
		{"24:00", 0, true},
		{"invalid", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.clock)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %d", tt.clock, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tt.clock, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.clock, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{360, "06:00"},
		{0, "00:00"},
		{1410, "23:30"},
		{725, "12:05"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.minutes); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestAddClock(t *testing.T) {
	got, err := AddClock("06:30", 45)
	if err != nil {
		t.Fatalf("AddClock failed: %v", err)
	}
	if got != "07:15" {
		t.Errorf("AddClock(06:30, 45) = %q, want 07:15", got)
	}
}

func TestDiffMinutes(t *testing.T) {
	got, err := DiffMinutes("09:00", "12:00")
	if err != nil {
		t.Fatalf("DiffMinutes failed: %v", err)
	}
	if got != 180 {
		t.Errorf("DiffMinutes(09:00, 12:00) = %d, want 180", got)
	}

	// Negative differences are the caller's problem to interpret, but the
	// arithmetic must stay consistent.
	got, err = DiffMinutes("12:00", "09:00")
	if err != nil {
		t.Fatalf("DiffMinutes failed: %v", err)
	}
	if got != -180 {
		t.Errorf("DiffMinutes(12:00, 09:00) = %d, want -180", got)
	}
}

func TestNormalizeDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"monday", "Monday", false},
		{"Mon", "Monday", false},
		{" FRIDAY ", "Friday", false},
		{"daily", "daily", false},
		{"someday", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeDay(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeDay(%q): expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeDay(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeDay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDayMatches(t *testing.T) {
	if !DayMatches("Monday", "Monday") {
		t.Error("expected Monday to match Monday")
	}
	if !DayMatches("daily", "Wednesday") {
		t.Error("expected daily to match any weekday")
	}
	if DayMatches("Monday", "Tuesday") {
		t.Error("expected Monday not to match Tuesday")
	}
}
