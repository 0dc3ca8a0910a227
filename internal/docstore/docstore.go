// Package docstore persists the family document as a single JSON value under
// a single key. Get and Set are each atomic for that key; there is no
// cross-request locking, so two concurrent writers race and the last write
// wins. That is an accepted limitation at family-scale traffic, not a bug to
// lock away.
package docstore

import (
	"context"

	"github.com/pfell/starboard/internal/model"
)

// Store is the persistence contract the lifecycle controller depends on.
// Get returns (nil, nil) when no document exists yet.
type Store interface {
	Get(ctx context.Context, key string) (*model.FamilyState, error)
	Set(ctx context.Context, key string, st *model.FamilyState) error
}
