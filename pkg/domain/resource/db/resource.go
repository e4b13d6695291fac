package db

import (
	"context"

	"github.com/trialkeep/trialkeep/pkg/domain"
)

type ResourceInterface interface {
	// Get retrieves resource identities by id.
	//
	// args:
	//     - ctx: context
	//     - []int64: resource ids
	//
	// returns:
	//     - map[int64]domain.Resource : mapping from resource id to identity.
	//       Missing ids are simply absent from the map.
	//     - error
	Get(ctx context.Context, resourceIDs []int64) (map[int64]domain.Resource, error)

	// Existence probes resources by id.
	//
	// A resource with a delete lock probes as Deleted; an unknown id as
	// DoesNotExist. Absence is a result, never an error.
	Existence(ctx context.Context, resourceIDs []int64) (map[int64]domain.ExistenceResult, error)

	// SnapshotExistence probes snapshots by snapshot id. A snapshot is
	// Deleted when its owning resource is.
	SnapshotExistence(ctx context.Context, snapshotIDs []int64) (map[int64]domain.ExistenceResult, error)

	// AssertExists checks one resource against a deletion policy and
	// returns the precise typed error on violation.
	AssertExists(ctx context.Context, ref domain.ResourceRef, policy domain.DeletionPolicy) error

	// AssertDoesNotExist is the mirror of AssertExists.
	AssertDoesNotExist(ctx context.Context, ref domain.ResourceRef, policy domain.DeletionPolicy) error

	// AssertAllExist demands every resource satisfy the policy.
	AssertAllExist(ctx context.Context, refs []domain.ResourceRef, policy domain.DeletionPolicy) error

	// AssertModifiable refuses with a ReadOnly error when the resource
	// carries a readonly lock. A missing resource carries no lock, so
	// it passes.
	AssertModifiable(ctx context.Context, ref domain.ResourceRef) error

	// LockTypes lists the locks on a resource. A missing resource has none.
	LockTypes(ctx context.Context, ref domain.ResourceRef) ([]domain.LockType, error)

	// AddLockTypes attaches locks to a resource, idempotently, after
	// the lock state machine admits each of them.
	//
	// When ref is an in-memory *domain.Resource that has never been
	// persisted, the identity row is created in the same transaction,
	// so a resource can be born already deleted or readonly. The
	// created id is written back into the given Resource.
	AddLockTypes(ctx context.Context, ref domain.ResourceRef, locks ...domain.LockType) error

	// Delete soft-deletes a resource by adding a delete lock.
	//
	// Unlike AddLockTypes it demands a persisted resource. Deleting an
	// already-deleted resource is a no-op.
	Delete(ctx context.Context, ref domain.ResourceRef) error

	// SetChildren replaces the dependency edge set of parent.
	//
	// Every child must exist and not be deleted, each edge must be
	// admitted by the parent/child type allow-list, and no edge may
	// close a cycle.
	SetChildren(ctx context.Context, parent domain.ResourceRef, children []domain.ResourceRef) error

	// AppendChildren adds edges, skipping ones already present.
	AppendChildren(ctx context.Context, parent domain.ResourceRef, children []domain.ResourceRef) error

	// UnlinkChild removes one edge. Removing an absent edge is a no-op.
	UnlinkChild(ctx context.Context, parent domain.ResourceRef, child domain.ResourceRef) error

	// Children lists the direct child identities of parent,
	// deleted ones included.
	Children(ctx context.Context, parent domain.ResourceRef) ([]domain.Resource, error)

	// SetTags replaces the tag set of a resource.
	SetTags(ctx context.Context, ref domain.ResourceRef, tags []string) error

	// Tags lists the tags of a resource, sorted.
	Tags(ctx context.Context, ref domain.ResourceRef) ([]string, error)

	// Share grants (or updates) another group's access to a resource.
	Share(ctx context.Context, share domain.SharedResource) error

	// Shares lists the grants on a resource.
	Shares(ctx context.Context, ref domain.ResourceRef) ([]domain.SharedResource, error)
}
