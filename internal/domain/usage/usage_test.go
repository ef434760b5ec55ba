package usage

import (
	"testing"
	"time"
)

func TestNewDailyCount_Truncates(t *testing.T) {
	ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	d := NewDailyCount(ts, 7)

	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !d.Day().Equal(want) {
		t.Errorf("Day() = %v, want %v", d.Day(), want)
	}
	if d.Searches() != 7 {
		t.Errorf("Searches() = %d", d.Searches())
	}
}

func TestReport_Total(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	r := NewReport("settings", []DailyCount{
		NewDailyCount(day, 3),
		NewDailyCount(day.AddDate(0, 0, 1), 4),
	})

	if r.Index() != "settings" {
		t.Errorf("Index() = %q", r.Index())
	}
	if len(r.Days()) != 2 {
		t.Fatalf("Days() len = %d", len(r.Days()))
	}
	if r.Total() != 7 {
		t.Errorf("Total() = %d, want 7", r.Total())
	}
}

func TestTruncateToDay_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2026, 3, 15, 1, 0, 0, 0, loc)

	got := TruncateToDay(ts)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("TruncateToDay() = %v, want %v", got, want)
	}
}
