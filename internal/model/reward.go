package model

import (
	"slices"
	"time"
)

type RewardType string

const (
	// RewardOneOff can be redeemed once per kid.
	RewardOneOff RewardType = "one-off"
	// RewardPerpetual can be redeemed any number of times.
	RewardPerpetual RewardType = "perpetual"
)

type Reward struct {
	ID        string     `json:"id"`
	KidIDs    []string   `json:"kidIds"`
	Title     string     `json:"title"`
	Emoji     string     `json:"emoji,omitempty"`
	Cost      int        `json:"cost"`
	Type      RewardType `json:"type"`
	Archived  bool       `json:"archived,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// AssignedTo reports whether the reward is available to the given kid.
func (r *Reward) AssignedTo(kidID string) bool {
	return slices.Contains(r.KidIDs, kidID)
}
