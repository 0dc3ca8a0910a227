package family

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pfell/starboard/internal/model"
)

// AddKid appends a kid to the roster. Rosters are set up once and then only
// renamed or recolored; there is no delete.
func (s *Service) AddKid(ctx context.Context, name, color string) (*model.Kid, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	k := model.Kid{ID: uuid.NewString(), Name: name, Color: color}
	st.Kids = append(st.Kids, k)

	if _, err := s.commit(ctx, st, before, fmt.Sprintf("%s joined the board", k.Name)); err != nil {
		return nil, err
	}
	return &k, nil
}

// RenameKid changes a kid's display name.
func (s *Service) RenameKid(ctx context.Context, kidID, name string) (bool, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	k := st.KidByID(kidID)
	name = strings.TrimSpace(name)
	if k == nil || name == "" {
		return false, nil
	}
	old := k.Name
	k.Name = name

	return s.commit(ctx, st, before, fmt.Sprintf("%s is now %s", old, name))
}

// RecolorKid changes a kid's board color.
func (s *Service) RecolorKid(ctx context.Context, kidID, color string) (bool, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	k := st.KidByID(kidID)
	if k == nil || color == "" {
		return false, nil
	}
	k.Color = color

	return s.commit(ctx, st, before, "")
}

// AdjustStars appends a manual adjustment row to the ledger. The delta may
// be negative; a zero delta or unknown kid is a no-op.
func (s *Service) AdjustStars(ctx context.Context, kidID string, delta int, reason string) (bool, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	if delta == 0 || st.KidByID(kidID) == nil {
		return false, nil
	}
	st.Completions = append(st.Completions, model.Completion{
		ID:           uuid.NewString(),
		KidID:        kidID,
		Kind:         model.KindAdjustment,
		Timestamp:    s.now().In(s.loc),
		StarsAwarded: delta,
	})

	summary := fmt.Sprintf("%s: %+d⭐", s.kidName(st, kidID), delta)
	if reason != "" {
		summary += " (" + reason + ")"
	}
	return s.commit(ctx, st, before, summary)
}
