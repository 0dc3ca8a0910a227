package family

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pfell/starboard/internal/dayctx"
	"github.com/pfell/starboard/internal/eligibility"
	"github.com/pfell/starboard/internal/ledger"
	"github.com/pfell/starboard/internal/model"
)

// CreateChoreInput carries the fields a new chore definition needs.
type CreateChoreInput struct {
	Title            string
	Emoji            string
	Stars            int
	KidIDs           []string
	Type             model.ChoreType
	ScheduledFor     string
	Schedule         *model.Schedule
	RequiresApproval bool
	TimeOfDay        model.TimeOfDay
}

// CreateChore validates and appends a chore definition. Invalid input (empty
// title, no valid kid, negative stars, unknown type) is a silent no-op
// returning nil.
func (s *Service) CreateChore(ctx context.Context, in CreateChoreInput) (*model.Chore, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.Stars < 0 {
		return nil, nil
	}
	switch in.Type {
	case model.ChoreOneOff, model.ChoreRepeated, model.ChorePerpetual:
	default:
		return nil, nil
	}

	// Keep only kid ids that exist in the roster; a chore with no valid kid
	// is invalid.
	var kids []string
	for _, id := range in.KidIDs {
		if st.KidByID(id) != nil {
			kids = append(kids, id)
		}
	}
	if len(kids) == 0 {
		return nil, nil
	}

	now := s.now().In(s.loc)
	scheduled := in.ScheduledFor
	if !dayctx.Valid(scheduled) {
		scheduled = s.Today("").Day
	}

	c := model.Chore{
		ID:               uuid.NewString(),
		KidIDs:           kids,
		Title:            in.Title,
		Emoji:            in.Emoji,
		Stars:            in.Stars,
		Type:             in.Type,
		ScheduledFor:     scheduled,
		RequiresApproval: in.RequiresApproval,
		TimeOfDay:        in.TimeOfDay,
		CreatedAt:        now,
	}
	if in.Type == model.ChoreRepeated {
		c.Schedule = normalizeSchedule(in.Schedule)
	}
	st.Chores = append(st.Chores, c)

	if _, err := s.commit(ctx, st, before, fmt.Sprintf("New chore: %s (%d⭐)", c.Title, c.Stars)); err != nil {
		return nil, err
	}
	return &c, nil
}

func normalizeSchedule(sched *model.Schedule) *model.Schedule {
	if sched == nil {
		return &model.Schedule{Cadence: model.CadenceDaily}
	}
	out := &model.Schedule{Cadence: sched.Cadence}
	if out.Cadence != model.CadenceDaily && out.Cadence != model.CadenceWeekly {
		out.Cadence = model.CadenceDaily
	}
	for _, d := range sched.DaysOfWeek {
		if d >= 0 && d <= 6 {
			out.DaysOfWeek = append(out.DaysOfWeek, d)
		}
	}
	return out
}

// UpdateChoreInput carries the editable descriptive fields of a chore. Nil
// fields stay as they are, so a caller can change the title without knowing
// the current star value.
type UpdateChoreInput struct {
	Title            *string
	Emoji            *string
	Stars            *int
	RequiresApproval *bool
	TimeOfDay        *model.TimeOfDay
}

// UpdateChore edits a chore definition in place. Scheduling moves through
// RescheduleChore and the kid set through AssignChore; this covers the rest.
// An unknown chore, a blank title, or negative stars is a silent no-op.
func (s *Service) UpdateChore(ctx context.Context, choreID string, in UpdateChoreInput) (bool, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	c := st.ChoreByID(choreID)
	if c == nil {
		return false, nil
	}
	title := c.Title
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
		if title == "" {
			return false, nil
		}
	}
	if in.Stars != nil && *in.Stars < 0 {
		return false, nil
	}

	c.Title = title
	if in.Emoji != nil {
		c.Emoji = *in.Emoji
	}
	if in.Stars != nil {
		c.Stars = *in.Stars
	}
	if in.RequiresApproval != nil {
		c.RequiresApproval = *in.RequiresApproval
	}
	if in.TimeOfDay != nil {
		c.TimeOfDay = *in.TimeOfDay
	}

	return s.commit(ctx, st, before, fmt.Sprintf("Updated %s", c.Title))
}

// CompleteResult reports how many stars a completion awarded; zero means the
// call was a no-op.
type CompleteResult struct {
	Awarded int `json:"awarded"`
}

// CompleteChore appends a ledger row for the kid if the chore is open for
// them in the given day context. Completing a chore that is closed, unknown,
// or not theirs awards nothing.
func (s *Service) CompleteChore(ctx context.Context, choreID, kidID, day string) (CompleteResult, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return CompleteResult{}, err
	}

	dc := s.Today(day)
	c := st.ChoreByID(choreID)
	if c == nil || !eligibility.Open(c, kidID, st.Completions, dc) {
		return CompleteResult{}, nil
	}

	// Perpetual completions carry the real clock even when an explicit day
	// was requested: the debounce measures elapsed time, and stamping every
	// same-day completion at the identical noon would block the chore after
	// the first one.
	ts := dc.Now
	if c.Type == model.ChorePerpetual {
		ts = dc.Wall
	}
	entry := model.Completion{
		ID:           uuid.NewString(),
		ChoreID:      c.ID,
		KidID:        kidID,
		Kind:         model.KindChore,
		Timestamp:    ts,
		StarsAwarded: c.Stars,
	}
	st.Completions = append(st.Completions, entry)

	// A one-off chore is terminal once every assigned kid has completed it.
	if c.Type == model.ChoreOneOff && allKidsDone(c, st.Completions, dc) {
		ts := entry.Timestamp
		c.CompletedAt = &ts
	}

	summary := fmt.Sprintf("%s completed %s (+%d⭐)", s.kidName(st, kidID), c.Title, c.Stars)
	if _, err := s.commit(ctx, st, before, summary); err != nil {
		return CompleteResult{}, err
	}
	return CompleteResult{Awarded: c.Stars}, nil
}

func allKidsDone(c *model.Chore, entries []model.Completion, dc dayctx.Context) bool {
	for _, kid := range c.KidIDs {
		done := false
		for i := range entries {
			e := &entries[i]
			if e.ChoreID == c.ID && e.KidID == kid && dc.DayOf(e.Timestamp) <= dc.Day {
				done = true
				break
			}
		}
		if !done {
			return false
		}
	}
	return true
}

// UndoResult reports the stars removed by an undo; zero delta means nothing
// was found to undo.
type UndoResult struct {
	Delta int `json:"delta"`
}

// UndoCompletion removes the matching ledger row outright, making undo a
// true inverse rather than a compensating entry. With a completion id the
// match is exact (scoped to chore/kid/day); without one, the first row for
// (chore, kid, day) goes.
func (s *Service) UndoCompletion(ctx context.Context, choreID, kidID, day, completionID string) (UndoResult, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return UndoResult{}, err
	}

	dc := s.Today(day)
	i, ok := ledger.FindUndo(st.Completions, choreID, kidID, dc.Day, completionID, dc)
	if !ok {
		return UndoResult{}, nil
	}
	delta := st.Completions[i].StarsAwarded
	st.Completions = ledger.Remove(st.Completions, i)

	// Undoing may reopen a terminal one-off chore.
	if c := st.ChoreByID(choreID); c != nil && c.Type == model.ChoreOneOff && c.CompletedAt != nil {
		if !allKidsDone(c, st.Completions, dc) {
			c.CompletedAt = nil
		}
	}

	summary := fmt.Sprintf("%s undid a completion (-%d⭐)", s.kidName(st, kidID), delta)
	if _, err := s.commit(ctx, st, before, summary); err != nil {
		return UndoResult{}, err
	}
	return UndoResult{Delta: delta}, nil
}

// PauseChore pauses a repeated chore through untilDay inclusive. An empty
// untilDay clears the pause. Non-repeated or unknown chores are no-ops.
func (s *Service) PauseChore(ctx context.Context, choreID, untilDay string) (bool, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	c := st.ChoreByID(choreID)
	if c == nil || c.Type != model.ChoreRepeated {
		return false, nil
	}
	if untilDay != "" && !dayctx.Valid(untilDay) {
		return false, nil
	}
	c.PausedUntil = untilDay

	return s.commit(ctx, st, before, fmt.Sprintf("Paused %s", c.Title))
}

// PauseAll pauses every repeated chore through untilDay inclusive and
// returns how many chores it touched.
func (s *Service) PauseAll(ctx context.Context, untilDay string) (int, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if !dayctx.Valid(untilDay) {
		return 0, nil
	}

	count := 0
	for i := range st.Chores {
		c := &st.Chores[i]
		if c.Type == model.ChoreRepeated && !c.Archived && c.PausedUntil != untilDay {
			c.PausedUntil = untilDay
			count++
		}
	}

	if _, err := s.commit(ctx, st, before, fmt.Sprintf("Paused all chores through %s", untilDay)); err != nil {
		return 0, err
	}
	return count, nil
}

// SnoozeChore defers a repeated chore to the next day, for one kid when
// kidID is set or for everyone when it is empty. The snooze expires on its
// own once the target day arrives.
func (s *Service) SnoozeChore(ctx context.Context, choreID, kidID, day string) (bool, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	c := st.ChoreByID(choreID)
	if c == nil || c.Type != model.ChoreRepeated {
		return false, nil
	}
	if kidID != "" && !c.AssignedTo(kidID) {
		return false, nil
	}

	target := dayctx.AddDays(s.Today(day).Day, 1)
	if kidID == "" {
		c.SnoozedUntil = target
	} else {
		if c.SnoozedForKids == nil {
			c.SnoozedForKids = make(map[string]string)
		}
		c.SnoozedForKids[kidID] = target
	}

	return s.commit(ctx, st, before, fmt.Sprintf("Snoozed %s to %s", c.Title, target))
}

// RescheduleChore moves a chore's start day and, for repeated chores,
// replaces its schedule when one is given.
func (s *Service) RescheduleChore(ctx context.Context, choreID, day string, sched *model.Schedule) (bool, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	c := st.ChoreByID(choreID)
	if c == nil {
		return false, nil
	}
	if day != "" {
		if !dayctx.Valid(day) {
			return false, nil
		}
		c.ScheduledFor = day
	}
	if sched != nil && c.Type == model.ChoreRepeated {
		c.Schedule = normalizeSchedule(sched)
	}

	return s.commit(ctx, st, before, fmt.Sprintf("Rescheduled %s", c.Title))
}

// ArchiveChore hides a chore from every surface. Its ledger rows stay put;
// balances never change because a chore went away.
func (s *Service) ArchiveChore(ctx context.Context, choreID string) (bool, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	c := st.ChoreByID(choreID)
	if c == nil {
		return false, nil
	}
	c.Archived = true

	return s.commit(ctx, st, before, fmt.Sprintf("Archived %s", c.Title))
}

// AssignChore replaces the chore's kid set. An empty resulting set is
// invalid and leaves the chore untouched.
func (s *Service) AssignChore(ctx context.Context, choreID string, kidIDs []string) (bool, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	c := st.ChoreByID(choreID)
	if c == nil {
		return false, nil
	}
	var kids []string
	for _, id := range kidIDs {
		if st.KidByID(id) != nil {
			kids = append(kids, id)
		}
	}
	if len(kids) == 0 {
		return false, nil
	}
	c.KidIDs = kids

	return s.commit(ctx, st, before, fmt.Sprintf("Reassigned %s", c.Title))
}
