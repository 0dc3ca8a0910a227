package model

import "time"

// LedgerKind tags what a ledger row represents. Balances sum every kind the
// same way; the tag exists so callers never have to sniff id conventions.
type LedgerKind string

const (
	// KindChore is a real chore completion crediting the chore's stars.
	KindChore LedgerKind = "chore"
	// KindAdjustment is a manual star grant or deduction by a parent.
	KindAdjustment LedgerKind = "adjustment"
	// KindRedemption is the debit side of a reward redemption.
	KindRedemption LedgerKind = "redemption"
)

// Completion is one immutable row of the star ledger. ChoreID references a
// Chore for KindChore rows and a Reward for KindRedemption rows; the ledger
// keeps no referential integrity back to those lists, since chores and
// rewards may be archived after the fact.
type Completion struct {
	ID           string     `json:"id"`
	ChoreID      string     `json:"choreId,omitempty"`
	KidID        string     `json:"kidId"`
	Kind         LedgerKind `json:"kind"`
	Timestamp    time.Time  `json:"timestamp"`
	StarsAwarded int        `json:"starsAwarded"`
}

// RewardRedemption records that a kid spent stars on a reward. It is written
// in the same document update as the matching KindRedemption debit, so the
// two can never diverge.
type RewardRedemption struct {
	ID        string    `json:"id"`
	RewardID  string    `json:"rewardId"`
	KidID     string    `json:"kidId"`
	Timestamp time.Time `json:"timestamp"`
	Cost      int       `json:"cost"`
}
