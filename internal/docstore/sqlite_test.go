package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/pfell/starboard/internal/database"
	"github.com/pfell/starboard/internal/model"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteStore(db)
}

func TestGetAbsentReturnsNil(t *testing.T) {
	s := setupStore(t)
	st, err := s.Get(context.Background(), "family")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if st != nil {
		t.Fatalf("expected nil for absent document, got %+v", st)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	st := model.NewFamilyState()
	st.Kids = append(st.Kids, model.Kid{ID: "k1", Name: "Ada", Color: "teal"})
	st.Chores = append(st.Chores, model.Chore{
		ID:           "c1",
		KidIDs:       []string{"k1"},
		Title:        "Feed the cat",
		Stars:        2,
		Type:         model.ChoreRepeated,
		Schedule:     &model.Schedule{Cadence: model.CadenceWeekly, DaysOfWeek: []int{1, 3, 5}},
		ScheduledFor: "2024-01-01",
		CreatedAt:    time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	})
	st.Completions = append(st.Completions, model.Completion{
		ID: "e1", ChoreID: "c1", KidID: "k1", Kind: model.KindChore,
		Timestamp: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), StarsAwarded: 2,
	})

	if err := s.Set(ctx, "family", st); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.Get(ctx, "family")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected document after set")
	}
	if len(got.Kids) != 1 || got.Kids[0].Name != "Ada" {
		t.Errorf("kids = %+v", got.Kids)
	}
	if len(got.Chores) != 1 || got.Chores[0].Schedule == nil {
		t.Fatalf("chores = %+v", got.Chores)
	}
	if got.Chores[0].Schedule.Cadence != model.CadenceWeekly {
		t.Errorf("cadence = %q", got.Chores[0].Schedule.Cadence)
	}
	if len(got.Completions) != 1 || got.Completions[0].StarsAwarded != 2 {
		t.Errorf("completions = %+v", got.Completions)
	}
}

func TestSetOverwritesWholeDocument(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	first := model.NewFamilyState()
	first.Kids = append(first.Kids, model.Kid{ID: "k1", Name: "Ada"})
	if err := s.Set(ctx, "family", first); err != nil {
		t.Fatalf("set: %v", err)
	}

	second := model.NewFamilyState()
	second.Kids = append(second.Kids, model.Kid{ID: "k2", Name: "Ben"})
	if err := s.Set(ctx, "family", second); err != nil {
		t.Fatalf("set again: %v", err)
	}

	got, err := s.Get(ctx, "family")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Kids) != 1 || got.Kids[0].ID != "k2" {
		t.Errorf("expected the second document to fully replace the first, got %+v", got.Kids)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	a := model.NewFamilyState()
	a.Kids = append(a.Kids, model.Kid{ID: "k1", Name: "Ada"})
	if err := s.Set(ctx, "family-a", a); err != nil {
		t.Fatalf("set a: %v", err)
	}

	got, err := s.Get(ctx, "family-b")
	if err != nil {
		t.Fatalf("get b: %v", err)
	}
	if got != nil {
		t.Errorf("key family-b should be empty, got %+v", got)
	}
}
