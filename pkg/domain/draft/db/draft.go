package db

import (
	"context"

	"github.com/trialkeep/trialkeep/pkg/domain"
)

type DraftInterface interface {
	// Put stages a draft.
	//
	// A draft is unique per (user, target resource) and, for creation
	// drafts, per (user, group, resource type). Putting over an
	// existing draft replaces its payload and bumps modified_on;
	// otherwise a new draft is inserted. Ids and timestamps are
	// reported in the returned Draft.
	Put(ctx context.Context, draft domain.Draft) (domain.Draft, error)

	// Get fetches one draft by id.
	Get(ctx context.Context, draftID int64) (domain.Draft, error)

	// GetByTarget fetches the user's draft targeting a resource.
	GetByTarget(ctx context.Context, userID int64, target domain.ResourceRef) (domain.Draft, error)

	// Remove discards a draft. A missing draft is DoesNotExist.
	Remove(ctx context.Context, draftID int64) error

	// Existence probes a draft by id.
	Existence(ctx context.Context, draftID int64) (domain.ExistenceResult, error)
}
