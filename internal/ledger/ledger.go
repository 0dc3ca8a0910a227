// Package ledger folds the append-only completion ledger. Balances are always
// derived by summing rows, never read from a stored total, so they can never
// drift from the ledger itself. O(rows) per read is fine at family scale.
package ledger

import (
	"slices"

	"github.com/pfell/starboard/internal/dayctx"
	"github.com/pfell/starboard/internal/model"
)

// Balance sums the signed star deltas of every ledger row for the kid.
// Chore credits, manual adjustments, and redemption debits all count the
// same way.
func Balance(entries []model.Completion, kidID string) int {
	total := 0
	for i := range entries {
		if entries[i].KidID == kidID {
			total += entries[i].StarsAwarded
		}
	}
	return total
}

// FindUndo locates the ledger row an undo should remove: the chore row with
// the given id if it matches (chore, kid, day), otherwise the first chore row
// matching (chore, kid, day), supporting "undo whatever happened today" when
// the caller has no id. Only chore rows qualify; adjustments and redemption
// debits are never reached, so a redemption's debit cannot be removed while
// its redemption record survives. When several same-day rows exist for a
// perpetual chore and no id is given, whichever comes first in document order
// is removed; callers must not rely on which one.
func FindUndo(entries []model.Completion, choreID, kidID, day, completionID string, ctx dayctx.Context) (int, bool) {
	matches := func(e *model.Completion) bool {
		return e.Kind == model.KindChore && e.ChoreID == choreID && e.KidID == kidID &&
			ctx.DayOf(e.Timestamp) == day
	}
	if completionID != "" {
		for i := range entries {
			if entries[i].ID == completionID && matches(&entries[i]) {
				return i, true
			}
		}
		return 0, false
	}
	for i := range entries {
		if matches(&entries[i]) {
			return i, true
		}
	}
	return 0, false
}

// Remove deletes the row at index i, preserving order. Undo is a true
// inverse: the row disappears entirely rather than being offset by a
// compensating entry.
func Remove(entries []model.Completion, i int) []model.Completion {
	return slices.Delete(entries, i, i+1)
}

// RedeemedBy reports whether the kid has ever redeemed the reward.
func RedeemedBy(redemptions []model.RewardRedemption, rewardID, kidID string) bool {
	for i := range redemptions {
		if redemptions[i].RewardID == rewardID && redemptions[i].KidID == kidID {
			return true
		}
	}
	return false
}
