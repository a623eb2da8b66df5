package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSessionDuration(t *testing.T) {
	start := time.Date(2025, 1, 2, 14, 40, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	s := Session{Start: start, End: &end}
	m, ok := s.DurationMinutes()
	if !ok || m != 90 {
		t.Fatalf("expected 90 minutes got %v ok=%v", m, ok)
	}
}

func TestSessionDurationAbsentOrNonPositive(t *testing.T) {
	start := time.Date(2025, 1, 2, 14, 40, 0, 0, time.UTC)
	if _, ok := (Session{Start: start}).Duration(); ok {
		t.Fatalf("nil end must not yield a duration")
	}
	same := start
	if _, ok := (Session{Start: start, End: &same}).Duration(); ok {
		t.Fatalf("zero duration must be rejected")
	}
	before := start.Add(-time.Minute)
	if _, ok := (Session{Start: start, End: &before}).Duration(); ok {
		t.Fatalf("negative duration must be rejected")
	}
}

func TestSessionDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	s := Session{Start: time.Date(2025, 3, 9, 23, 59, 0, 0, loc)}
	if got := DateKey(s.Date()); got != "2025-03-09" {
		t.Fatalf("unexpected date %s", got)
	}
}

func TestDateRangeDays(t *testing.T) {
	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		r    DateRange
		want int
	}{
		{"single", DateRange{Start: jan1, End: jan1}, 1},
		{"three", DateRange{Start: jan1, End: jan1.AddDate(0, 0, 2)}, 3},
		{"leap", DateRange{Start: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}, 3},
		{"inverted", DateRange{Start: jan1.AddDate(0, 0, 5), End: jan1}, 0},
		{"inverted by one", DateRange{Start: jan1.AddDate(0, 0, 1), End: jan1}, 0},
	}
	for _, c := range cases {
		if got := c.r.Days(); got != c.want {
			t.Errorf("%s: expected %d got %d", c.name, c.want, got)
		}
	}
}

func TestDateRangeDatesAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	r := DateRange{Start: time.Date(2025, 3, 29, 0, 0, 0, 0, loc), End: time.Date(2025, 3, 31, 0, 0, 0, 0, loc)}
	dates := r.Dates()
	if len(dates) != 3 {
		t.Fatalf("expected 3 dates got %d", len(dates))
	}
	want := []string{"2025-03-29", "2025-03-30", "2025-03-31"}
	for i, d := range dates {
		if DateKey(d) != want[i] {
			t.Errorf("date %d: expected %s got %s", i, want[i], DateKey(d))
		}
	}
}

func TestDateRangeContains(t *testing.T) {
	r := NewDateRange(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), time.Date(2025, 1, 3, 1, 0, 0, 0, time.UTC))
	if !r.Contains(time.Date(2025, 1, 3, 23, 59, 0, 0, time.UTC)) {
		t.Fatalf("end day must be inclusive")
	}
	if r.Contains(time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("day after range must be excluded")
	}
	if !r.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start day must be inclusive")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-03", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Month() != time.February || d.Day() != 3 {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseDate("03/02/2025", time.UTC); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestDateRangeDaysBeyondDurationLimit(t *testing.T) {
	r := DateRange{
		Start: time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if got := r.Days(); got != 739252 {
		t.Fatalf("expected 739252 days got %d", got)
	}
	dates := r.Dates()
	if got := DateKey(dates[len(dates)-1]); got != "2025-01-01" {
		t.Fatalf("expected last date 2025-01-01 got %s", got)
	}
	if got := DateKey(dates[0]); got != "0001-01-01" {
		t.Fatalf("expected first date 0001-01-01 got %s", got)
	}
}

func TestDateRangeZero(t *testing.T) {
	var r DateRange
	if r.Days() != 0 || len(r.Dates()) != 0 {
		t.Fatalf("unset range must be empty")
	}
}

func TestDateRangeJSON(t *testing.T) {
	r := NewDateRange(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"start":"2025-01-01","end":"2025-01-03","days":3}` {
		t.Fatalf("unexpected json %s", data)
	}
	data, _ = json.Marshal(DateRange{})
	if string(data) != `{"start":"","end":"","days":0}` {
		t.Fatalf("unexpected json for zero range %s", data)
	}
}
