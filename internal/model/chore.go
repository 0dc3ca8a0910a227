package model

import (
	"slices"
	"time"
)

type ChoreType string

const (
	ChoreOneOff    ChoreType = "one-off"
	ChoreRepeated  ChoreType = "repeated"
	ChorePerpetual ChoreType = "perpetual"
)

type Cadence string

const (
	CadenceDaily  Cadence = "daily"
	CadenceWeekly Cadence = "weekly"
)

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// Schedule is the repetition rule for a repeated chore. An empty DaysOfWeek
// means every day allowed by the cadence.
type Schedule struct {
	Cadence    Cadence `json:"cadence"`
	DaysOfWeek []int   `json:"daysOfWeek,omitempty"` // 0=Sunday .. 6=Saturday
}

// Chore is a task definition, not an occurrence. All day fields
// (ScheduledFor, PausedUntil, snooze targets) are YYYY-MM-DD strings in the
// family timezone, never raw timestamps.
type Chore struct {
	ID           string    `json:"id"`
	KidIDs       []string  `json:"kidIds"`
	Title        string    `json:"title"`
	Emoji        string    `json:"emoji,omitempty"`
	Stars        int       `json:"stars"`
	Type         ChoreType `json:"type"`
	ScheduledFor string    `json:"scheduledFor,omitempty"`
	Schedule     *Schedule `json:"schedule,omitempty"`

	// PausedUntil hides a repeated chore from everyone through this day,
	// inclusive. Snooze targets name the day the chore is deferred TO; a
	// snooze expires on its own once that day arrives.
	PausedUntil    string            `json:"pausedUntil,omitempty"`
	SnoozedUntil   string            `json:"snoozedUntil,omitempty"`
	SnoozedForKids map[string]string `json:"snoozedForKids,omitempty"`

	RequiresApproval bool      `json:"requiresApproval,omitempty"`
	TimeOfDay        TimeOfDay `json:"timeOfDay,omitempty"`
	Archived         bool      `json:"archived,omitempty"`

	// CompletedAt is set on a one-off chore only once every assigned kid has
	// completed it, and cleared again if an undo makes that false.
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// AssignedTo reports whether the chore applies to the given kid.
func (c *Chore) AssignedTo(kidID string) bool {
	return slices.Contains(c.KidIDs, kidID)
}

// SnoozeTarget returns the day this chore is snoozed to for the given kid:
// the per-kid entry if present, otherwise the global one. Empty means not
// snoozed.
func (c *Chore) SnoozeTarget(kidID string) string {
	if day, ok := c.SnoozedForKids[kidID]; ok {
		return day
	}
	return c.SnoozedUntil
}
