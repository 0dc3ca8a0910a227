// Package family is the lifecycle controller for the single persisted family
// document. Every mutating operation follows the same transaction shape: load
// the full document, apply one logical mutation to the in-memory copy,
// compare marshaled before/after snapshots, and skip the write and all side
// effects when nothing changed. Bad input and state conflicts are therefore
// silent no-ops returning zero results, never errors; only persistence
// failures propagate.
//
// The store offers last-writer-wins semantics on the one document and this
// package deliberately adds no locking on top: within an operation the read
// and write run back-to-back with nothing awaited in between, which keeps
// the lost-update window small but not zero. Accepted at family scale.
package family

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pfell/starboard/internal/dayctx"
	"github.com/pfell/starboard/internal/docstore"
	"github.com/pfell/starboard/internal/eligibility"
	"github.com/pfell/starboard/internal/ledger"
	"github.com/pfell/starboard/internal/model"
)

// Notifier delivers a human-readable summary of a committed mutation.
// Delivery is best-effort: failures are logged and never affect the already
// committed state change.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Service owns all reads and writes of the family document.
type Service struct {
	store    docstore.Store
	key      string
	loc      *time.Location
	now      func() time.Time
	notifier Notifier
	logger   *slog.Logger
}

func NewService(store docstore.Store, key string, loc *time.Location, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		key:      key,
		loc:      loc,
		now:      time.Now,
		notifier: notifier,
		logger:   logger,
	}
}

// WithClock overrides the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Location returns the fixed family timezone.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Today resolves the day context for an optional explicit day string.
func (s *Service) Today(explicitDay string) dayctx.Context {
	return dayctx.Resolve(explicitDay, s.now(), s.loc)
}

// load reads the document, seeding an empty one on first use.
func (s *Service) load(ctx context.Context) (*model.FamilyState, []byte, error) {
	st, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, nil, fmt.Errorf("load family document: %w", err)
	}
	if st == nil {
		st = model.NewFamilyState()
	}
	before, err := json.Marshal(st)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot family document: %w", err)
	}
	return st, before, nil
}

// commit writes the document back if the mutation changed anything, then
// fires the notification. Returns whether a write happened.
func (s *Service) commit(ctx context.Context, st *model.FamilyState, before []byte, summary string) (bool, error) {
	after, err := json.Marshal(st)
	if err != nil {
		return false, fmt.Errorf("snapshot family document: %w", err)
	}
	if bytes.Equal(before, after) {
		return false, nil
	}
	if err := s.store.Set(ctx, s.key, st); err != nil {
		return false, fmt.Errorf("persist family document: %w", err)
	}
	if summary != "" && s.notifier != nil {
		if err := s.notifier.Notify(ctx, summary); err != nil {
			s.logger.Warn("notification failed", "error", err)
		}
	}
	return true, nil
}

// Snapshot returns the full document for read-only callers, including the
// automation surface that wants kids/chores/completions/rewards in one shot.
func (s *Service) Snapshot(ctx context.Context) (*model.FamilyState, error) {
	st, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Balance derives the kid's star balance by folding the ledger.
func (s *Service) Balance(ctx context.Context, kidID string) (int, error) {
	st, _, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return ledger.Balance(st.Completions, kidID), nil
}

// Progress tallies a kid's day. An invalid or empty day means today.
func (s *Service) Progress(ctx context.Context, kidID, day string) (eligibility.Progress, error) {
	st, _, err := s.load(ctx)
	if err != nil {
		return eligibility.Progress{}, err
	}
	return eligibility.DayProgress(st, kidID, s.Today(day)), nil
}

func (s *Service) kidName(st *model.FamilyState, kidID string) string {
	if k := st.KidByID(kidID); k != nil {
		return k.Name
	}
	return kidID
}
