package model

// Settings holds the handful of family-wide knobs that live inside the
// document rather than the environment.
type Settings struct {
	// ParentPINHash is a bcrypt hash of the parent PIN, or empty when no PIN
	// has been set.
	ParentPINHash string `json:"parentPinHash,omitempty"`
}

// FamilyState is the single persisted document. Every mutation reads the
// whole document, changes an in-memory copy, and writes the whole document
// back; no component persists a partial patch. The completions list is the
// sole source of truth for star balances — there is no stored running total
// anywhere.
type FamilyState struct {
	Kids              []Kid              `json:"kids"`
	Chores            []Chore            `json:"chores"`
	Completions       []Completion       `json:"completions"`
	Rewards           []Reward           `json:"rewards"`
	RewardRedemptions []RewardRedemption `json:"rewardRedemptions"`
	Settings          Settings           `json:"settings"`
}

// NewFamilyState returns an empty document with non-nil slices so it
// serializes as [] rather than null.
func NewFamilyState() *FamilyState {
	return &FamilyState{
		Kids:              []Kid{},
		Chores:            []Chore{},
		Completions:       []Completion{},
		Rewards:           []Reward{},
		RewardRedemptions: []RewardRedemption{},
	}
}

// ChoreByID returns a pointer into the Chores slice, or nil.
func (s *FamilyState) ChoreByID(id string) *Chore {
	for i := range s.Chores {
		if s.Chores[i].ID == id {
			return &s.Chores[i]
		}
	}
	return nil
}

// KidByID returns a pointer into the Kids slice, or nil.
func (s *FamilyState) KidByID(id string) *Kid {
	for i := range s.Kids {
		if s.Kids[i].ID == id {
			return &s.Kids[i]
		}
	}
	return nil
}

// RewardByID returns a pointer into the Rewards slice, or nil.
func (s *FamilyState) RewardByID(id string) *Reward {
	for i := range s.Rewards {
		if s.Rewards[i].ID == id {
			return &s.Rewards[i]
		}
	}
	return nil
}
