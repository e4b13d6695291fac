// Package postgres holds query helpers shared between the domain areas'
// postgres repositories. Everything here expects to run on the caller's
// connection or transaction; nothing acquires from a pool.
package postgres

import (
	"context"
	"fmt"

	kpool "github.com/trialkeep/trialkeep/pkg/conn/postgres/pool"
	"github.com/trialkeep/trialkeep/pkg/domain"
)

// lockedExistence probes one entity table with its lock sidecar in a
// single outer-join query. Requested ids missing from the result map
// simply do not exist.
func lockedExistence(
	ctx context.Context, conn kpool.Queryer,
	table, idColumn, lockTable string, ids []int64,
) (map[int64]domain.ExistenceResult, error) {
	if len(ids) == 0 {
		return map[int64]domain.ExistenceResult{}, nil
	}

	rows, err := conn.Query(
		ctx,
		fmt.Sprintf(
			`
			select
				"t".%[1]s,
				bool_or("l"."lock_type" = 'delete') is true as "deleted"
			from %[2]s as "t"
			left outer join %[3]s as "l" using (%[1]s)
			where "t".%[1]s = any($1::bigint[])
			group by "t".%[1]s
			`,
			idColumn, table, lockTable,
		),
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[int64]domain.ExistenceResult{}
	for rows.Next() {
		var id int64
		var deleted bool
		if err := rows.Scan(&id, &deleted); err != nil {
			return nil, err
		}
		if deleted {
			result[id] = domain.Deleted
		} else {
			result[id] = domain.Exists
		}
	}
	return result, rows.Err()
}

// ResourceExistence probes resources against their delete locks.
func ResourceExistence(ctx context.Context, conn kpool.Queryer, ids []int64) (map[int64]domain.ExistenceResult, error) {
	return lockedExistence(ctx, conn, `"resources"`, `"resource_id"`, `"resource_locks"`, ids)
}

// UserExistence probes users against user_locks.
func UserExistence(ctx context.Context, conn kpool.Queryer, ids []int64) (map[int64]domain.ExistenceResult, error) {
	return lockedExistence(ctx, conn, `"users"`, `"user_id"`, `"user_locks"`, ids)
}

// GroupExistence probes groups against group_locks.
func GroupExistence(ctx context.Context, conn kpool.Queryer, ids []int64) (map[int64]domain.ExistenceResult, error) {
	return lockedExistence(ctx, conn, `"groups"`, `"group_id"`, `"group_locks"`, ids)
}

// OneOf reduces a batch probe to the result for a single id.
func OneOf(m map[int64]domain.ExistenceResult, id int64) domain.ExistenceResult {
	if r, ok := m[id]; ok {
		return r
	}
	return domain.DoesNotExist
}

// AllOf reduces a batch probe to per-id results in the order requested.
func AllOf(m map[int64]domain.ExistenceResult, ids []int64) []domain.ExistenceResult {
	results := make([]domain.ExistenceResult, len(ids))
	for i, id := range ids {
		results[i] = OneOf(m, id)
	}
	return results
}

// SnapshotExistence probes snapshots; a snapshot counts as deleted when
// its owning resource carries a delete lock.
func SnapshotExistence(ctx context.Context, conn kpool.Queryer, snapshotIDs []int64) (map[int64]domain.ExistenceResult, error) {
	if len(snapshotIDs) == 0 {
		return map[int64]domain.ExistenceResult{}, nil
	}

	rows, err := conn.Query(
		ctx,
		`
		select
			"s"."snapshot_id",
			bool_or("l"."lock_type" = 'delete') is true as "deleted"
		from "resource_snapshots" as "s"
		left outer join "resource_locks" as "l" using ("resource_id")
		where "s"."snapshot_id" = any($1::bigint[])
		group by "s"."snapshot_id"
		`,
		snapshotIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[int64]domain.ExistenceResult{}
	for rows.Next() {
		var id int64
		var deleted bool
		if err := rows.Scan(&id, &deleted); err != nil {
			return nil, err
		}
		if deleted {
			result[id] = domain.Deleted
		} else {
			result[id] = domain.Exists
		}
	}
	return result, rows.Err()
}

// DraftExistence probes drafts. Drafts have no lock sidecar, so the
// outcome is binary.
func DraftExistence(ctx context.Context, conn kpool.Queryer, draftID int64) (domain.ExistenceResult, error) {
	var found bool
	if err := conn.QueryRow(
		ctx,
		`select exists (select 1 from "draft_resources" where "draft_id" = $1)`,
		draftID,
	).Scan(&found); err != nil {
		return domain.DoesNotExist, err
	}
	if found {
		return domain.Exists, nil
	}
	return domain.DoesNotExist, nil
}

// ResourceTypeOf reads the declared type of a resource.
func ResourceTypeOf(ctx context.Context, conn kpool.Queryer, resourceID int64) (domain.ResourceType, error) {
	var raw string
	if err := conn.QueryRow(
		ctx,
		`select "resource_type" from "resources" where "resource_id" = $1`,
		resourceID,
	).Scan(&raw); err != nil {
		return "", err
	}
	return domain.AsResourceType(raw)
}

// LockTypesOf lists the lock types attached to a resource.
// A missing resource has no locks.
func LockTypesOf(ctx context.Context, conn kpool.Queryer, resourceID int64) ([]domain.LockType, error) {
	rows, err := conn.Query(
		ctx,
		`select "lock_type" from "resource_locks" where "resource_id" = $1`,
		resourceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locks := []domain.LockType{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		lt, err := domain.AsLockType(raw)
		if err != nil {
			return nil, err
		}
		locks = append(locks, lt)
	}
	return locks, rows.Err()
}

// MembershipOf fetches a user's membership in a group, if any.
func MembershipOf(ctx context.Context, conn kpool.Queryer, groupID, userID int64) (domain.Membership, bool, error) {
	m := domain.Membership{GroupID: groupID, UserID: userID}
	var found bool
	if err := conn.QueryRow(
		ctx,
		`
		select
			count(*) = 1,
			bool_or("read") is true, bool_or("write") is true,
			bool_or("share_read") is true, bool_or("share_write") is true
		from "memberships"
		where "group_id" = $1 and "user_id" = $2
		`,
		groupID, userID,
	).Scan(&found, &m.Read, &m.Write, &m.ShareRead, &m.ShareWrite); err != nil {
		return domain.Membership{}, false, err
	}
	if !found {
		return domain.Membership{}, false, nil
	}
	return m, true, nil
}
