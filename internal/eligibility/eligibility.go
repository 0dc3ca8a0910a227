// Package eligibility decides, for any (chore, kid, day), whether a chore is
// currently actionable. Nothing here stores status: every answer is derived
// from the chore definition plus the completion ledger plus a day context, so
// recurring chores reopen lazily as the day advances rather than by any
// background job.
package eligibility

import (
	"time"

	"github.com/pfell/starboard/internal/dayctx"
	"github.com/pfell/starboard/internal/model"
)

// DebounceWindow closes a perpetual chore briefly after each completion to
// swallow duplicate taps. It is a heuristic, not a guarantee: two devices
// completing within the same window still race, and that is accepted.
const DebounceWindow = 5000 * time.Millisecond

// Open reports whether the chore can be completed by the kid right now,
// in the given day context.
func Open(c *model.Chore, kidID string, ledger []model.Completion, ctx dayctx.Context) bool {
	if c.Archived || !c.AssignedTo(kidID) {
		return false
	}
	switch c.Type {
	case model.ChoreOneOff:
		return openOneOff(c, kidID, ledger, ctx)
	case model.ChoreRepeated:
		return openRepeated(c, kidID, ledger, ctx)
	case model.ChorePerpetual:
		return openPerpetual(c, kidID, ledger, ctx)
	}
	return false
}

// A one-off chore is pending from its scheduled day until the kid has any
// completion on or before the viewed day, then done for good.
func openOneOff(c *model.Chore, kidID string, ledger []model.Completion, ctx dayctx.Context) bool {
	if c.ScheduledFor != "" && c.ScheduledFor > ctx.Day {
		return false
	}
	for i := range ledger {
		e := &ledger[i]
		if e.ChoreID == c.ID && e.KidID == kidID && ctx.DayOf(e.Timestamp) <= ctx.Day {
			return false
		}
	}
	return true
}

func openRepeated(c *model.Chore, kidID string, ledger []model.Completion, ctx dayctx.Context) bool {
	if Paused(c, ctx.Day) {
		return false
	}
	if SnoozedFor(c, kidID, ctx.Day) {
		return false
	}
	if c.ScheduledFor != "" && c.ScheduledFor > ctx.Day {
		return false
	}
	if !weekdayAllowed(c.Schedule, ctx.Weekday) {
		return false
	}
	// A completion closes the chore until its next scheduled day. For daily
	// cadence that is simply tomorrow; for weekly it is a sliding window that
	// reopens on the next allowed weekday after the completion, regardless of
	// month or calendar-week boundaries.
	for i := range ledger {
		e := &ledger[i]
		if e.ChoreID != c.ID || e.KidID != kidID {
			continue
		}
		done := ctx.DayOf(e.Timestamp)
		if done > ctx.Day {
			continue
		}
		if ctx.Day < nextDue(done, c.Schedule) {
			return false
		}
	}
	return true
}

// A perpetual chore is always open except for a short wall-clock debounce
// after each completion. This is the only rule driven by real time rather
// than the calendar day, so it measures against ctx.Wall: viewing an
// explicit day must not freeze the age of past completions at noon.
func openPerpetual(c *model.Chore, kidID string, ledger []model.Completion, ctx dayctx.Context) bool {
	for i := range ledger {
		e := &ledger[i]
		if e.ChoreID != c.ID || e.KidID != kidID {
			continue
		}
		age := ctx.Wall.Sub(e.Timestamp)
		if age >= 0 && age < DebounceWindow {
			return false
		}
	}
	return true
}

// Paused reports whether the chore is paused through the given day. Pausing
// applies only to repeated chores.
func Paused(c *model.Chore, day string) bool {
	return c.Type == model.ChoreRepeated && c.PausedUntil != "" && c.PausedUntil >= day
}

// SnoozedFor reports whether the chore is snoozed away from the given day for
// the given kid. A snooze targets the day the chore is deferred TO, so it
// expires on its own once that day arrives.
func SnoozedFor(c *model.Chore, kidID, day string) bool {
	if c.Type != model.ChoreRepeated {
		return false
	}
	target := c.SnoozeTarget(kidID)
	return target != "" && target > day
}

func weekdayAllowed(sched *model.Schedule, wd time.Weekday) bool {
	if sched == nil || len(sched.DaysOfWeek) == 0 {
		return true
	}
	for _, d := range sched.DaysOfWeek {
		if time.Weekday(d) == wd {
			return true
		}
	}
	return false
}

// nextDue returns the first day strictly after done on which the schedule
// fires again, scanning forward at most seven days. With no weekday
// restriction that is the next day.
func nextDue(done string, sched *model.Schedule) string {
	for i := 1; i <= 7; i++ {
		cand := dayctx.AddDays(done, i)
		if cand == "" {
			return ""
		}
		if weekdayAllowed(sched, dayctx.WeekdayOf(cand)) {
			return cand
		}
	}
	return dayctx.AddDays(done, 7)
}

// CompletedOn reports whether the kid completed the chore on exactly the
// given day.
func CompletedOn(choreID, kidID string, ledger []model.Completion, ctx dayctx.Context) bool {
	for i := range ledger {
		e := &ledger[i]
		if e.ChoreID == choreID && e.KidID == kidID && ctx.DayOf(e.Timestamp) == ctx.Day {
			return true
		}
	}
	return false
}
