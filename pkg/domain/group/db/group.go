package db

import (
	"context"

	"github.com/trialkeep/trialkeep/pkg/domain"
)

type GroupInterface interface {
	// NewUser registers a user.
	//
	// args:
	//     - ctx: context
	//     - username, email
	//
	// returns:
	//     - domain.User: the persisted user, id and timestamp filled
	//     - error: AlreadyExists when the username is taken
	NewUser(ctx context.Context, username string, email string) (domain.User, error)

	// NewGroup registers a group.
	//
	// returns:
	//     - domain.Group: the persisted group
	//     - error: AlreadyExists when the name is taken
	NewGroup(ctx context.Context, name string) (domain.Group, error)

	// AddMember upserts a user's membership in a group.
	//
	// Both the user and the group must exist and not be deleted.
	AddMember(ctx context.Context, m domain.Membership) error

	// Membership fetches the permission set of a user in a group.
	//
	// returns:
	//     - domain.Membership
	//     - error: NotInGroup when no membership row exists
	Membership(ctx context.Context, groupID int64, userID int64) (domain.Membership, error)

	// UserExistence probes users by id. Missing ids map to DoesNotExist;
	// absence is a result, not an error.
	UserExistence(ctx context.Context, userIDs []int64) (map[int64]domain.ExistenceResult, error)

	// GroupExistence probes groups by id.
	GroupExistence(ctx context.Context, groupIDs []int64) (map[int64]domain.ExistenceResult, error)

	// DeleteUser soft-deletes a user by inserting a delete lock.
	// Idempotent: deleting a deleted user is a no-op.
	DeleteUser(ctx context.Context, userID int64) error

	// DeleteGroup soft-deletes a group. Resources owned by the group
	// are left as they are; visibility is the caller's policy.
	DeleteGroup(ctx context.Context, groupID int64) error
}
