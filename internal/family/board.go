package family

import (
	"context"
	"sort"

	"github.com/pfell/starboard/internal/eligibility"
	"github.com/pfell/starboard/internal/ledger"
	"github.com/pfell/starboard/internal/model"
)

// KidBoard is one kid's view for a day: the chores they can act on now plus
// their progress tally and current balance.
type KidBoard struct {
	Kid      model.Kid            `json:"kid"`
	Open     []model.Chore        `json:"open"`
	Progress eligibility.Progress `json:"progress"`
	Balance  int                  `json:"balance"`
}

var timeOfDayRank = map[model.TimeOfDay]int{
	model.Morning:   0,
	model.Afternoon: 1,
	model.Evening:   2,
	model.Night:     3,
}

// Board assembles the kid-facing view for a day. An invalid or empty day
// means today. Open chores sort by time-of-day bucket, then title; the
// bucket never affects eligibility, only ordering.
func (s *Service) Board(ctx context.Context, day string) ([]KidBoard, error) {
	st, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	dc := s.Today(day)

	boards := make([]KidBoard, 0, len(st.Kids))
	for _, kid := range st.Kids {
		b := KidBoard{
			Kid:      kid,
			Open:     []model.Chore{},
			Progress: eligibility.DayProgress(st, kid.ID, dc),
			Balance:  ledger.Balance(st.Completions, kid.ID),
		}
		for i := range st.Chores {
			c := &st.Chores[i]
			if eligibility.Open(c, kid.ID, st.Completions, dc) {
				b.Open = append(b.Open, *c)
			}
		}
		sort.SliceStable(b.Open, func(i, j int) bool {
			ri, rj := timeOfDayRank[b.Open[i].TimeOfDay], timeOfDayRank[b.Open[j].TimeOfDay]
			if ri != rj {
				return ri < rj
			}
			return b.Open[i].Title < b.Open[j].Title
		})
		boards = append(boards, b)
	}
	return boards, nil
}
