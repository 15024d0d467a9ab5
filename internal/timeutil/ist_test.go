package timeutil

import (
	"testing"
	"time"
)

func TestStartOfDayConvertsToIST(t *testing.T) {
	// 2026-03-09 20:30 UTC is already 2026-03-10 02:00 IST.
	utc := time.Date(2026, 3, 9, 20, 30, 0, 0, time.UTC)
	got := StartOfDay(utc)

	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 10 {
		t.Fatalf("StartOfDay(%v) = %v, want 2026-03-10 in IST", utc, got)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestStartOfMonth(t *testing.T) {
	got := StartOfMonth(time.Date(2026, 3, 15, 10, 30, 0, 0, IST))
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, IST)
	if !got.Equal(want) {
		t.Fatalf("StartOfMonth = %v, want %v", got, want)
	}
}

func TestMonthStartsBackChronological(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, IST)
	starts := MonthStartsBack(now, 6)

	if len(starts) != 6 {
		t.Fatalf("expected 6 starts, got %d", len(starts))
	}
	if starts[0].Month() != time.October || starts[0].Year() != 2025 {
		t.Fatalf("first bucket = %v, want Oct 2025", starts[0])
	}
	if starts[5].Month() != time.March || starts[5].Year() != 2026 {
		t.Fatalf("last bucket = %v, want Mar 2026", starts[5])
	}
	for i := 1; i < len(starts); i++ {
		if !starts[i].After(starts[i-1]) {
			t.Fatalf("buckets not chronological at %d: %v then %v", i, starts[i-1], starts[i])
		}
	}
}

func TestDayStartsBackIncludesToday(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 59, 0, 0, IST)
	starts := DayStartsBack(now, 30)

	if len(starts) != 30 {
		t.Fatalf("expected 30 starts, got %d", len(starts))
	}
	last := starts[len(starts)-1]
	if last.Day() != 15 || last.Month() != time.March {
		t.Fatalf("last bucket = %v, want 15 Mar", last)
	}
	if starts[0].Day() != 14 || starts[0].Month() != time.February {
		t.Fatalf("first bucket = %v, want 14 Feb", starts[0])
	}
}

func TestParseInIST(t *testing.T) {
	d, err := ParseInIST(DateLayout, "2026-05-01")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if d.Location().String() != IST.String() {
		t.Fatalf("expected IST location, got %v", d.Location())
	}

	if _, err := ParseInIST(DateLayout, "01/05/2026"); err == nil {
		t.Fatal("expected parse error for wrong layout")
	}
}

func TestLabels(t *testing.T) {
	d := time.Date(2026, 1, 2, 0, 0, 0, 0, IST)
	if got := MonthLabel(d); got != "Jan 2026" {
		t.Fatalf("MonthLabel = %q", got)
	}
	if got := DayLabel(d); got != "02 Jan" {
		t.Fatalf("DayLabel = %q", got)
	}
}
