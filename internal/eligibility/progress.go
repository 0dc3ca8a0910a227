package eligibility

import (
	"github.com/pfell/starboard/internal/dayctx"
	"github.com/pfell/starboard/internal/model"
)

// Progress is a kid's chore tally for one day.
type Progress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Skipped   int `json:"skipped"`
	Remaining int `json:"remaining"`
}

// Expected reports whether the chore belongs in the kid's plan for the day,
// regardless of whether it has already been actioned. This is the progress
// predicate, distinct from Open: a daily chore completed this morning is no
// longer open but was still expected today. Perpetual chores carry no daily
// obligation and are never expected.
func Expected(c *model.Chore, kidID string, ctx dayctx.Context) bool {
	if c.Archived || !c.AssignedTo(kidID) {
		return false
	}
	switch c.Type {
	case model.ChoreOneOff:
		return c.ScheduledFor == "" || c.ScheduledFor <= ctx.Day
	case model.ChoreRepeated:
		if Paused(c, ctx.Day) {
			return false
		}
		if c.ScheduledFor != "" && c.ScheduledFor > ctx.Day {
			return false
		}
		return weekdayAllowed(c.Schedule, ctx.Weekday)
	}
	return false
}

// DayProgress tallies the kid's expected chores for the day into completed,
// skipped (snoozed away from today), and remaining (still open) buckets.
// One-off chores finished on an earlier day have left the plan and are not
// counted.
func DayProgress(st *model.FamilyState, kidID string, ctx dayctx.Context) Progress {
	var p Progress
	for i := range st.Chores {
		c := &st.Chores[i]
		if !Expected(c, kidID, ctx) {
			continue
		}
		if c.Type == model.ChoreOneOff && doneBefore(c.ID, kidID, st.Completions, ctx) {
			continue
		}
		p.Total++
		switch {
		case CompletedOn(c.ID, kidID, st.Completions, ctx):
			p.Completed++
		case SnoozedFor(c, kidID, ctx.Day):
			p.Skipped++
		case Open(c, kidID, st.Completions, ctx):
			p.Remaining++
		}
	}
	return p
}

func doneBefore(choreID, kidID string, ledger []model.Completion, ctx dayctx.Context) bool {
	for i := range ledger {
		e := &ledger[i]
		if e.ChoreID == choreID && e.KidID == kidID && ctx.DayOf(e.Timestamp) < ctx.Day {
			return true
		}
	}
	return false
}
