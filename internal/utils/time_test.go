package utils

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		to   time.Time
		want int
	}{
		{name: "same instant", to: base, want: 0},
		{name: "later same day", to: base.Add(5 * time.Hour), want: 0},
		{name: "next day before wall clock", to: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), want: 0},
		{name: "next day at wall clock", to: time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC), want: 1},
		{name: "sixty days", to: base.AddDate(0, 0, 60), want: 60},
		{name: "across month boundary", to: time.Date(2026, 4, 2, 15, 0, 0, 0, time.UTC), want: 23},
		{name: "one day back", to: base.AddDate(0, 0, -1), want: -1},
		{name: "earlier previous day partial", to: time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(base, tt.to); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysBetweenAcrossDSTChange(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// 2026-03-08 is 23 hours long in New York
	from := time.Date(2026, 3, 2, 23, 30, 0, 0, ny)
	if got := DaysBetween(from, time.Date(2026, 3, 9, 23, 30, 0, 0, ny)); got != 7 {
		t.Errorf("DaysBetween() across spring forward = %d, want 7", got)
	}

	noon := time.Date(2026, 3, 7, 12, 0, 0, 0, ny)
	if got := DaysBetween(noon, time.Date(2026, 3, 8, 12, 0, 0, 0, ny)); got != 1 {
		t.Errorf("DaysBetween() over the short day = %d, want 1", got)
	}
	if got := DaysBetween(noon, time.Date(2026, 3, 8, 11, 59, 0, 0, ny)); got != 0 {
		t.Errorf("DaysBetween() before wall clock = %d, want 0", got)
	}
}

func TestDaysBetweenFarFuture(t *testing.T) {
	from := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2500, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := DaysBetween(from, to); got != 173002 {
		t.Errorf("DaysBetween() = %d, want 173002", got)
	}
	if got := DaysBetween(to, from); got != -173002 {
		t.Errorf("DaysBetween() reversed = %d, want -173002", got)
	}
}

func TestHoursBetween(t *testing.T) {
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	if got := HoursBetween(start, start.Add(90*time.Minute)); got != 1 {
		t.Errorf("HoursBetween() = %d, want 1", got)
	}
	if got := HoursBetween(start, start.Add(-30*time.Hour)); got != -30 {
		t.Errorf("HoursBetween() = %d, want -30", got)
	}
}

func TestStartOfDayAndDayKey(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	ts := time.Date(2026, 7, 4, 23, 59, 59, 0, loc)

	sod := StartOfDay(ts)
	if sod.Hour() != 0 || sod.Minute() != 0 || sod.Day() != 4 {
		t.Errorf("StartOfDay() = %v, want midnight of July 4", sod)
	}
	if sod.Location() != loc {
		t.Errorf("StartOfDay() changed location")
	}
	if got := DayKey(ts); got != "2026-07-04" {
		t.Errorf("DayKey() = %q, want 2026-07-04", got)
	}
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2026-02-28")
	if err != nil {
		t.Fatalf("ParseDay() error = %v", err)
	}
	if DayKey(day) != "2026-02-28" {
		t.Errorf("ParseDay() round trip = %q", DayKey(day))
	}

	if _, err := ParseDay("28/02/2026"); err == nil {
		t.Error("ParseDay() expected error for invalid format")
	}
}

func TestValidateHour(t *testing.T) {
	for _, h := range []int{0, 8, 23} {
		if !ValidateHour(h) {
			t.Errorf("ValidateHour(%d) = false, want true", h)
		}
	}
	for _, h := range []int{-1, 24} {
		if ValidateHour(h) {
			t.Errorf("ValidateHour(%d) = true, want false", h)
		}
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	got, err := ExpandPath("~/.config/puffless/puffless.db")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if got != "/home/tester/.config/puffless/puffless.db" {
		t.Errorf("ExpandPath() = %q", got)
	}

	got, _ = ExpandPath("/tmp/other.db")
	if got != "/tmp/other.db" {
		t.Errorf("ExpandPath() modified absolute path: %q", got)
	}
}
