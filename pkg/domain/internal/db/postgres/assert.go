package postgres

import (
	"context"
	"strconv"

	kpool "github.com/trialkeep/trialkeep/pkg/conn/postgres/pool"
	"github.com/trialkeep/trialkeep/pkg/domain"
	kpgerr "github.com/trialkeep/trialkeep/pkg/domain/errors/dberrors/postgres"
)

// Identity renders a numeric id the way typed errors carry it.
func Identity(id int64) string {
	return strconv.FormatInt(id, 10)
}

// AssertResources verifies that every resource satisfies the policy,
// translating any violation into a typed error for that resource.
func AssertResources(ctx context.Context, conn kpool.Queryer, policy domain.DeletionPolicy, ids ...int64) error {
	probed, err := ResourceExistence(ctx, conn, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if verdict := domain.CheckExistence(OneOf(probed, id), policy); verdict != nil {
			return kpgerr.ForExistence(verdict, "resources", Identity(id))
		}
	}
	return nil
}

// AssertUsers is AssertResources for users.
func AssertUsers(ctx context.Context, conn kpool.Queryer, policy domain.DeletionPolicy, ids ...int64) error {
	probed, err := UserExistence(ctx, conn, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if verdict := domain.CheckExistence(OneOf(probed, id), policy); verdict != nil {
			return kpgerr.ForExistence(verdict, "users", Identity(id))
		}
	}
	return nil
}

// AssertGroups is AssertResources for groups.
func AssertGroups(ctx context.Context, conn kpool.Queryer, policy domain.DeletionPolicy, ids ...int64) error {
	probed, err := GroupExistence(ctx, conn, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if verdict := domain.CheckExistence(OneOf(probed, id), policy); verdict != nil {
			return kpgerr.ForExistence(verdict, "groups", Identity(id))
		}
	}
	return nil
}

// AssertMember verifies that the user belongs to the group.
func AssertMember(ctx context.Context, conn kpool.Queryer, groupID, userID int64) (domain.Membership, error) {
	m, found, err := MembershipOf(ctx, conn, groupID, userID)
	if err != nil {
		return domain.Membership{}, err
	}
	if !found {
		return domain.Membership{}, kpgerr.NotInGroup{UserID: userID, GroupID: groupID}
	}
	return m, nil
}

// AssertModifiable refuses with a ReadOnly error when the resource
// carries a readonly lock. A resource with no row carries no lock, so
// it passes.
func AssertModifiable(ctx context.Context, conn kpool.Queryer, resourceID int64) error {
	locks, err := LockTypesOf(ctx, conn, resourceID)
	if err != nil {
		return err
	}
	if domain.HasLock(locks, domain.LockReadOnly) {
		return kpgerr.ReadOnly{Identity: Identity(resourceID)}
	}
	return nil
}

// AssertWritable verifies that the resource exists, is not deleted and
// is modifiable. New snapshots and metadata writes go through this gate.
func AssertWritable(ctx context.Context, conn kpool.Queryer, resourceID int64) error {
	if err := AssertResources(ctx, conn, domain.PolicyNotDeleted, resourceID); err != nil {
		return err
	}
	return AssertModifiable(ctx, conn, resourceID)
}
