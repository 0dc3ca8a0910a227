package family

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pfell/starboard/internal/ledger"
	"github.com/pfell/starboard/internal/model"
)

// CreateRewardInput carries the fields a new reward needs.
type CreateRewardInput struct {
	Title  string
	Emoji  string
	Cost   int
	KidIDs []string
	Type   model.RewardType
}

// CreateReward validates and appends a reward. Invalid input is a silent
// no-op returning nil.
func (s *Service) CreateReward(ctx context.Context, in CreateRewardInput) (*model.Reward, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.Cost < 0 {
		return nil, nil
	}
	if in.Type != model.RewardOneOff && in.Type != model.RewardPerpetual {
		return nil, nil
	}
	var kids []string
	for _, id := range in.KidIDs {
		if st.KidByID(id) != nil {
			kids = append(kids, id)
		}
	}
	if len(kids) == 0 {
		return nil, nil
	}

	r := model.Reward{
		ID:        uuid.NewString(),
		KidIDs:    kids,
		Title:     in.Title,
		Emoji:     in.Emoji,
		Cost:      in.Cost,
		Type:      in.Type,
		CreatedAt: s.now().In(s.loc),
	}
	st.Rewards = append(st.Rewards, r)

	if _, err := s.commit(ctx, st, before, fmt.Sprintf("New reward: %s (%d⭐)", r.Title, r.Cost)); err != nil {
		return nil, err
	}
	return &r, nil
}

// ArchiveReward takes a reward off the board. Past redemptions keep their
// ledger rows.
func (s *Service) ArchiveReward(ctx context.Context, rewardID string) (bool, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	r := st.RewardByID(rewardID)
	if r == nil {
		return false, nil
	}
	r.Archived = true

	return s.commit(ctx, st, before, fmt.Sprintf("Archived reward %s", r.Title))
}

// RedeemResult reports whether a redemption went through.
type RedeemResult struct {
	Success bool `json:"success"`
}

// RedeemReward spends a kid's stars on a reward. It succeeds only when the
// reward is assigned to the kid, not archived, perpetual or never redeemed
// by this kid, and the derived balance covers the cost. On success the debit
// ledger row and the redemption record land in the same write, so the two
// can never diverge.
func (s *Service) RedeemReward(ctx context.Context, rewardID, kidID string) (RedeemResult, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return RedeemResult{}, err
	}

	r := st.RewardByID(rewardID)
	if r == nil || r.Archived || !r.AssignedTo(kidID) {
		return RedeemResult{}, nil
	}
	if r.Type == model.RewardOneOff && ledger.RedeemedBy(st.RewardRedemptions, r.ID, kidID) {
		return RedeemResult{}, nil
	}
	if ledger.Balance(st.Completions, kidID) < r.Cost {
		return RedeemResult{}, nil
	}

	ts := s.now().In(s.loc)
	st.Completions = append(st.Completions, model.Completion{
		ID:           uuid.NewString(),
		ChoreID:      r.ID,
		KidID:        kidID,
		Kind:         model.KindRedemption,
		Timestamp:    ts,
		StarsAwarded: -r.Cost,
	})
	st.RewardRedemptions = append(st.RewardRedemptions, model.RewardRedemption{
		ID:        uuid.NewString(),
		RewardID:  r.ID,
		KidID:     kidID,
		Timestamp: ts,
		Cost:      r.Cost,
	})

	summary := fmt.Sprintf("%s redeemed %s (-%d⭐)", s.kidName(st, kidID), r.Title, r.Cost)
	if _, err := s.commit(ctx, st, before, summary); err != nil {
		return RedeemResult{}, err
	}
	return RedeemResult{Success: true}, nil
}
