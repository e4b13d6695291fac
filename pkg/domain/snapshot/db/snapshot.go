package db

import (
	"context"
	"fmt"

	"github.com/trialkeep/trialkeep/pkg/domain"
	domerr "github.com/trialkeep/trialkeep/pkg/domain/errors"
	"github.com/trialkeep/trialkeep/pkg/domain/search"
)

// ListQuery selects, orders and pages the latest snapshots of one kind.
type ListQuery struct {
	// GroupID scopes the listing to one owning group. Zero lists
	// across groups.
	GroupID int64

	// Policy filters by deletion state. The zero value is PolicyAny.
	Policy domain.DeletionPolicy

	// Search clauses, AND-ed together.
	Search []search.Clause

	// SortBy names a key from the kind's sort allow-list.
	// Empty sorts by created_on.
	SortBy     string
	Descending bool

	// Offset/Limit page the result. Limit == 0 means no limit.
	Offset int64
	Limit  int64
}

// Page is one page of a listing plus the total match count.
type Page[S domain.Snapshot] struct {
	Total int64
	Items []S
}

// UnsupportedSort : a ListQuery names a sort key outside the allow-list.
type UnsupportedSort struct {
	Key string
}

var _ error = UnsupportedSort{}

func (e UnsupportedSort) Error() string {
	return fmt.Sprintf("unsupported sort key: %s", e.Key)
}
func (e UnsupportedSort) Unwrap() error {
	return domerr.ErrSortParameter
}

type SnapshotInterface[S domain.Snapshot] interface {
	// NewResource creates a resource identity together with its first
	// snapshot, in one transaction.
	//
	// Preconditions: the owning group and the creating user exist and
	// are not deleted, the user is a member of the group, and the
	// claimed name is free among the group's latest snapshots of this
	// kind. Ids and timestamps are written back into snap.
	NewResource(ctx context.Context, snap S) (S, error)

	// NewSnapshot appends a new version to an existing resource.
	//
	// The resource must be live and not readonly; rows are never
	// updated, only inserted.
	NewSnapshot(ctx context.Context, snap S) (S, error)

	// Latest fetches the latest snapshot of each resource satisfying
	// the policy. Violating or missing ids are simply absent from the
	// result; absence is not an error.
	Latest(ctx context.Context, resourceIDs []int64, policy domain.DeletionPolicy) (map[int64]S, error)

	// LatestOne is Latest for a single resource, with precise errors:
	// a missing resource, a policy violation and a kind mismatch each
	// get their own typed error.
	LatestOne(ctx context.Context, ref domain.ResourceRef, policy domain.DeletionPolicy) (S, error)

	// ByName resolves names to latest snapshots within one group.
	// Unmatched names are absent from the result.
	ByName(ctx context.Context, groupID int64, names []string, policy domain.DeletionPolicy) (map[string]S, error)

	// OneByName is ByName for a single name: DoesNotExist when nothing
	// matches, TooMany when the name is ambiguous.
	OneByName(ctx context.Context, groupID int64, name string, policy domain.DeletionPolicy) (S, error)

	// LatestChildren fetches the latest snapshots of parent's direct
	// children of this kind.
	LatestChildren(ctx context.Context, parent domain.ResourceRef, policy domain.DeletionPolicy) ([]S, error)

	// List pages over latest snapshots.
	List(ctx context.Context, q ListQuery) (Page[S], error)
}
