package dayctx

import (
	"testing"
	"time"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestResolveExplicitDay(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC)

	ctx := Resolve("2024-01-03", now, loc)

	if ctx.Day != "2024-01-03" {
		t.Errorf("Day = %q, want %q", ctx.Day, "2024-01-03")
	}
	if ctx.Weekday != time.Wednesday {
		t.Errorf("Weekday = %v, want Wednesday", ctx.Weekday)
	}
	if ctx.Now.Hour() != 12 {
		t.Errorf("explicit day should resolve to noon, got hour %d", ctx.Now.Hour())
	}
}

func TestResolveInvalidDayFallsBackToNow(t *testing.T) {
	loc := mustLoc(t)
	// 23:30 UTC on June 15 is still June 15 in New York (19:30 EDT).
	now := time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC)

	for _, bad := range []string{"", "not-a-day", "2024-13-40", "2024/01/03", "03-01-2024"} {
		ctx := Resolve(bad, now, loc)
		if ctx.Day != "2024-06-15" {
			t.Errorf("Resolve(%q).Day = %q, want 2024-06-15", bad, ctx.Day)
		}
	}
}

func TestResolveAnchorsToFixedZone(t *testing.T) {
	loc := mustLoc(t)
	// 02:00 UTC on June 16 is 22:00 on June 15 in New York: "today" must be
	// the 15th regardless of the server's locale.
	now := time.Date(2024, 6, 16, 2, 0, 0, 0, time.UTC)

	ctx := Resolve("", now, loc)
	if ctx.Day != "2024-06-15" {
		t.Errorf("Day = %q, want 2024-06-15", ctx.Day)
	}
	if ctx.Weekday != time.Saturday {
		t.Errorf("Weekday = %v, want Saturday", ctx.Weekday)
	}
}

func TestDayOf(t *testing.T) {
	loc := mustLoc(t)
	ctx := Resolve("2024-01-03", time.Now(), loc)

	late := time.Date(2024, 3, 10, 3, 30, 0, 0, time.UTC) // 22:30 Mar 9 in NY
	if got := ctx.DayOf(late); got != "2024-03-09" {
		t.Errorf("DayOf = %q, want 2024-03-09", got)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		day  string
		n    int
		want string
	}{
		{"2024-01-31", 1, "2024-02-01"},
		{"2024-02-28", 1, "2024-02-29"}, // leap year
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-01-03", 7, "2024-01-10"},
		{"2024-01-03", -1, "2024-01-02"},
		{"garbage", 1, ""},
	}
	for _, tt := range tests {
		if got := AddDays(tt.day, tt.n); got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.day, tt.n, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	if !Valid("2024-01-03") {
		t.Error("expected 2024-01-03 to be valid")
	}
	for _, bad := range []string{"", "2024-1-3", "2024-13-01", "tomorrow"} {
		if Valid(bad) {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
}
