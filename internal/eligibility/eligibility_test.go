package eligibility

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pfell/starboard/internal/dayctx"
	"github.com/pfell/starboard/internal/model"
)

var testLoc = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
	return loc
}()

func ctxFor(t *testing.T, day string) dayctx.Context {
	t.Helper()
	ctx := dayctx.Resolve(day, time.Now(), testLoc)
	if ctx.Day != day {
		t.Fatalf("bad test day %q", day)
	}
	return ctx
}

func completionOn(choreID, kidID, day string) model.Completion {
	d, err := time.ParseInLocation(dayctx.DayFormat, day, testLoc)
	if err != nil {
		panic(err)
	}
	return model.Completion{
		ID:        uuid.NewString(),
		ChoreID:   choreID,
		KidID:     kidID,
		Kind:      model.KindChore,
		Timestamp: d.Add(10 * time.Hour),
	}
}

func TestOneOffLifecycle(t *testing.T) {
	c := &model.Chore{
		ID:           "c1",
		KidIDs:       []string{"k1", "k2"},
		Type:         model.ChoreOneOff,
		ScheduledFor: "2024-01-05",
	}

	if Open(c, "k1", nil, ctxFor(t, "2024-01-04")) {
		t.Error("open before scheduled day")
	}
	if !Open(c, "k1", nil, ctxFor(t, "2024-01-05")) {
		t.Error("closed on scheduled day")
	}
	if !Open(c, "k1", nil, ctxFor(t, "2024-02-01")) {
		t.Error("closed well after scheduled day")
	}

	ledger := []model.Completion{completionOn("c1", "k1", "2024-01-05")}
	if Open(c, "k1", ledger, ctxFor(t, "2024-01-06")) {
		t.Error("open for k1 after k1 completed")
	}
	if !Open(c, "k2", ledger, ctxFor(t, "2024-01-06")) {
		t.Error("closed for k2 although only k1 completed")
	}
	if Open(c, "k3", nil, ctxFor(t, "2024-01-06")) {
		t.Error("open for an unassigned kid")
	}
}

func TestWeeklyReopenWindow(t *testing.T) {
	// Wednesday-only chore. 2024-01-03 is a Wednesday.
	c := &model.Chore{
		ID:       "c1",
		KidIDs:   []string{"k1"},
		Type:     model.ChoreRepeated,
		Schedule: &model.Schedule{Cadence: model.CadenceWeekly, DaysOfWeek: []int{3}},
	}

	if !Open(c, "k1", nil, ctxFor(t, "2024-01-03")) {
		t.Fatal("closed on its scheduled Wednesday")
	}
	if Open(c, "k1", nil, ctxFor(t, "2024-01-04")) {
		t.Error("open on Thursday with no completion")
	}

	ledger := []model.Completion{completionOn("c1", "k1", "2024-01-03")}
	closed := []string{"2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09"}
	for _, day := range closed {
		if Open(c, "k1", ledger, ctxFor(t, day)) {
			t.Errorf("open on %s inside the reopen window", day)
		}
	}
	if !Open(c, "k1", ledger, ctxFor(t, "2024-01-10")) {
		t.Error("closed on the following Wednesday")
	}
}

func TestWeeklyWindowSlidesAcrossMonthBoundary(t *testing.T) {
	// 2024-01-31 is a Wednesday; the window must reopen 2024-02-07.
	c := &model.Chore{
		ID:       "c1",
		KidIDs:   []string{"k1"},
		Type:     model.ChoreRepeated,
		Schedule: &model.Schedule{Cadence: model.CadenceWeekly, DaysOfWeek: []int{3}},
	}
	ledger := []model.Completion{completionOn("c1", "k1", "2024-01-31")}

	if Open(c, "k1", ledger, ctxFor(t, "2024-02-06")) {
		t.Error("open the Tuesday after a month-boundary completion")
	}
	if !Open(c, "k1", ledger, ctxFor(t, "2024-02-07")) {
		t.Error("closed on the Wednesday after a month-boundary completion")
	}
}

func TestDailyClosesForRestOfDay(t *testing.T) {
	c := &model.Chore{
		ID:       "c1",
		KidIDs:   []string{"k1"},
		Type:     model.ChoreRepeated,
		Schedule: &model.Schedule{Cadence: model.CadenceDaily},
	}
	ledger := []model.Completion{completionOn("c1", "k1", "2024-01-05")}

	if Open(c, "k1", ledger, ctxFor(t, "2024-01-05")) {
		t.Error("open again on the completion day")
	}
	if !Open(c, "k1", ledger, ctxFor(t, "2024-01-06")) {
		t.Error("closed past the next day boundary")
	}
}

func TestPauseSuppressesRepeatedOnly(t *testing.T) {
	repeated := &model.Chore{
		ID:          "r1",
		KidIDs:      []string{"k1"},
		Type:        model.ChoreRepeated,
		Schedule:    &model.Schedule{Cadence: model.CadenceDaily},
		PausedUntil: "2024-01-10",
	}
	oneOff := &model.Chore{
		ID:          "o1",
		KidIDs:      []string{"k1"},
		Type:        model.ChoreOneOff,
		PausedUntil: "2024-01-10",
	}
	perpetual := &model.Chore{
		ID:          "p1",
		KidIDs:      []string{"k1"},
		Type:        model.ChorePerpetual,
		PausedUntil: "2024-01-10",
	}

	for _, day := range []string{"2024-01-05", "2024-01-10"} {
		ctx := ctxFor(t, day)
		if Open(repeated, "k1", nil, ctx) {
			t.Errorf("repeated chore open on %s while paused through 2024-01-10", day)
		}
		if !Open(oneOff, "k1", nil, ctx) {
			t.Errorf("one-off chore affected by pausedUntil on %s", day)
		}
		if !Open(perpetual, "k1", nil, ctx) {
			t.Errorf("perpetual chore affected by pausedUntil on %s", day)
		}
	}

	if !Open(repeated, "k1", nil, ctxFor(t, "2024-01-11")) {
		t.Error("repeated chore still closed the day after the pause ends")
	}
}

func TestSnoozeDefersToTargetDay(t *testing.T) {
	global := &model.Chore{
		ID:           "c1",
		KidIDs:       []string{"k1", "k2"},
		Type:         model.ChoreRepeated,
		Schedule:     &model.Schedule{Cadence: model.CadenceDaily},
		SnoozedUntil: "2024-01-06",
	}
	if Open(global, "k1", nil, ctxFor(t, "2024-01-05")) {
		t.Error("open on the snoozed-away day")
	}
	if !Open(global, "k1", nil, ctxFor(t, "2024-01-06")) {
		t.Error("closed on the snooze target day")
	}

	perKid := &model.Chore{
		ID:             "c2",
		KidIDs:         []string{"k1", "k2"},
		Type:           model.ChoreRepeated,
		Schedule:       &model.Schedule{Cadence: model.CadenceDaily},
		SnoozedForKids: map[string]string{"k1": "2024-01-06"},
	}
	ctx := ctxFor(t, "2024-01-05")
	if Open(perKid, "k1", nil, ctx) {
		t.Error("open for the snoozed kid")
	}
	if !Open(perKid, "k2", nil, ctx) {
		t.Error("closed for a kid who was not snoozed")
	}
}

func TestPerpetualDebounce(t *testing.T) {
	c := &model.Chore{ID: "c1", KidIDs: []string{"k1"}, Type: model.ChorePerpetual}
	ctx := dayctx.Resolve("", time.Date(2024, 1, 5, 15, 0, 0, 0, testLoc), testLoc)

	recent := []model.Completion{{
		ID: "e1", ChoreID: "c1", KidID: "k1", Kind: model.KindChore,
		Timestamp: ctx.Now.Add(-3 * time.Second),
	}}
	if Open(c, "k1", recent, ctx) {
		t.Error("open 3s after a completion, inside the debounce window")
	}

	settled := []model.Completion{{
		ID: "e1", ChoreID: "c1", KidID: "k1", Kind: model.KindChore,
		Timestamp: ctx.Now.Add(-6 * time.Second),
	}}
	if !Open(c, "k1", settled, ctx) {
		t.Error("closed 6s after a completion, past the debounce window")
	}

	other := []model.Completion{{
		ID: "e1", ChoreID: "c1", KidID: "k2", Kind: model.KindChore,
		Timestamp: ctx.Now.Add(-1 * time.Second),
	}}
	if !Open(c, "k1", other, ctx) {
		t.Error("another kid's completion debounced this kid")
	}
}

func TestPerpetualDebounceOnViewedDay(t *testing.T) {
	// Viewing an explicit day pins Now to noon, but the debounce still runs
	// against the real clock.
	c := &model.Chore{ID: "c1", KidIDs: []string{"k1"}, Type: model.ChorePerpetual}
	now := time.Date(2024, 1, 5, 15, 0, 0, 0, testLoc)
	ctx := dayctx.Resolve("2024-01-04", now, testLoc)

	recent := []model.Completion{{
		ID: "e1", ChoreID: "c1", KidID: "k1", Kind: model.KindChore,
		Timestamp: now.Add(-3 * time.Second),
	}}
	if Open(c, "k1", recent, ctx) {
		t.Error("open 3s after a completion while viewing another day")
	}

	settled := []model.Completion{{
		ID: "e1", ChoreID: "c1", KidID: "k1", Kind: model.KindChore,
		Timestamp: now.Add(-6 * time.Second),
	}}
	if !Open(c, "k1", settled, ctx) {
		t.Error("closed 6s after a completion while viewing another day")
	}
}

func TestArchivedNeverOpen(t *testing.T) {
	c := &model.Chore{ID: "c1", KidIDs: []string{"k1"}, Type: model.ChorePerpetual, Archived: true}
	if Open(c, "k1", nil, ctxFor(t, "2024-01-05")) {
		t.Error("archived chore open")
	}
	if Expected(c, "k1", ctxFor(t, "2024-01-05")) {
		t.Error("archived chore expected")
	}
}

func TestExpectedIsNotOpen(t *testing.T) {
	c := &model.Chore{
		ID:       "c1",
		KidIDs:   []string{"k1"},
		Type:     model.ChoreRepeated,
		Schedule: &model.Schedule{Cadence: model.CadenceDaily},
	}
	ctx := ctxFor(t, "2024-01-05")
	ledger := []model.Completion{completionOn("c1", "k1", "2024-01-05")}

	if Open(c, "k1", ledger, ctx) {
		t.Error("open after completing today")
	}
	if !Expected(c, "k1", ctx) {
		t.Error("no longer expected after completing today")
	}

	perpetual := &model.Chore{ID: "p1", KidIDs: []string{"k1"}, Type: model.ChorePerpetual}
	if Expected(perpetual, "k1", ctx) {
		t.Error("perpetual chore counted as expected")
	}
}

func TestDayProgress(t *testing.T) {
	st := &model.FamilyState{
		Kids: []model.Kid{{ID: "k1", Name: "Ada"}},
		Chores: []model.Chore{
			{ID: "done", KidIDs: []string{"k1"}, Type: model.ChoreRepeated,
				Schedule: &model.Schedule{Cadence: model.CadenceDaily}},
			{ID: "snoozed", KidIDs: []string{"k1"}, Type: model.ChoreRepeated,
				Schedule: &model.Schedule{Cadence: model.CadenceDaily}, SnoozedUntil: "2024-01-06"},
			{ID: "open", KidIDs: []string{"k1"}, Type: model.ChoreOneOff, ScheduledFor: "2024-01-01"},
			{ID: "old", KidIDs: []string{"k1"}, Type: model.ChoreOneOff, ScheduledFor: "2024-01-01"},
			{ID: "future", KidIDs: []string{"k1"}, Type: model.ChoreOneOff, ScheduledFor: "2024-02-01"},
			{ID: "praise", KidIDs: []string{"k1"}, Type: model.ChorePerpetual},
		},
		Completions: []model.Completion{
			completionOn("done", "k1", "2024-01-05"),
			completionOn("old", "k1", "2024-01-02"),
		},
	}

	p := DayProgress(st, "k1", ctxFor(t, "2024-01-05"))
	want := Progress{Total: 3, Completed: 1, Skipped: 1, Remaining: 1}
	if p != want {
		t.Errorf("DayProgress = %+v, want %+v", p, want)
	}
}
