package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	kpool "github.com/trialkeep/trialkeep/pkg/conn/postgres/pool"
	"github.com/trialkeep/trialkeep/pkg/domain"
	domerr "github.com/trialkeep/trialkeep/pkg/domain/errors"
	kpgerr "github.com/trialkeep/trialkeep/pkg/domain/errors/dberrors/postgres"
	kpgintr "github.com/trialkeep/trialkeep/pkg/domain/internal/db/postgres"
)

type resourcePG struct { // implements db.ResourceInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *resourcePG {
	return &resourcePG{pool: pool}
}

func (r *resourcePG) Get(ctx context.Context, resourceIDs []int64) (map[int64]domain.Resource, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return getResources(ctx, conn, resourceIDs)
}

func getResources(ctx context.Context, conn kpool.Queryer, resourceIDs []int64) (map[int64]domain.Resource, error) {
	if len(resourceIDs) == 0 {
		return map[int64]domain.Resource{}, nil
	}

	rows, err := conn.Query(
		ctx,
		`
		select "resource_id", "group_id", "resource_type", "created_on"
		from "resources"
		where "resource_id" = any($1::bigint[])
		`,
		resourceIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[int64]domain.Resource{}
	for rows.Next() {
		var res domain.Resource
		var rawType string
		if err := rows.Scan(&res.ID, &res.GroupID, &rawType, &res.CreatedOn); err != nil {
			return nil, err
		}
		if res.Type, err = domain.AsResourceType(rawType); err != nil {
			return nil, err
		}
		result[res.ID] = res
	}
	return result, rows.Err()
}

func (r *resourcePG) Existence(ctx context.Context, resourceIDs []int64) (map[int64]domain.ExistenceResult, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return kpgintr.ResourceExistence(ctx, conn, resourceIDs)
}

func (r *resourcePG) SnapshotExistence(ctx context.Context, snapshotIDs []int64) (map[int64]domain.ExistenceResult, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return kpgintr.SnapshotExistence(ctx, conn, snapshotIDs)
}

func (r *resourcePG) AssertExists(ctx context.Context, ref domain.ResourceRef, policy domain.DeletionPolicy) error {
	id, err := kpgintr.RefOf(ref)
	if err != nil {
		return err
	}
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return kpgintr.AssertResources(ctx, conn, policy, id)
}

func (r *resourcePG) AssertDoesNotExist(ctx context.Context, ref domain.ResourceRef, policy domain.DeletionPolicy) error {
	id, ok := ref.ResourceRef()
	if !ok {
		return nil // what was never saved surely does not exist
	}
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	probed, err := kpgintr.ResourceExistence(ctx, conn, []int64{id})
	if err != nil {
		return err
	}
	verdict := domain.CheckNonExistence(kpgintr.OneOf(probed, id), policy)
	return kpgerr.ForExistence(verdict, "resources", kpgintr.Identity(id))
}

func (r *resourcePG) AssertAllExist(ctx context.Context, refs []domain.ResourceRef, policy domain.DeletionPolicy) error {
	ids := make([]int64, len(refs))
	for i, ref := range refs {
		id, err := kpgintr.RefOf(ref)
		if err != nil {
			return err
		}
		ids[i] = id
	}
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return kpgintr.AssertResources(ctx, conn, policy, ids...)
}

func (r *resourcePG) AssertModifiable(ctx context.Context, ref domain.ResourceRef) error {
	id, ok := ref.ResourceRef()
	if !ok {
		return nil // no lock can exist on what was never saved
	}
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return kpgintr.AssertModifiable(ctx, conn, id)
}

func (r *resourcePG) LockTypes(ctx context.Context, ref domain.ResourceRef) ([]domain.LockType, error) {
	id, ok := ref.ResourceRef()
	if !ok {
		return []domain.LockType{}, nil
	}
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return kpgintr.LockTypesOf(ctx, conn, id)
}

func (r *resourcePG) AddLockTypes(ctx context.Context, ref domain.ResourceRef, locks ...domain.LockType) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	id, ok := ref.ResourceRef()
	if !ok {
		// a resource may be born already locked. That needs the full
		// identity, not just an id.
		res, isResource := ref.(*domain.Resource)
		if !isResource {
			return kpgerr.DoesNotExist{Table: "resources", Identity: "(unsaved)"}
		}
		if id, err = createIdentity(ctx, tx, res); err != nil {
			return err
		}
		res.ID = id
	} else {
		if err := lockRow(ctx, tx, id); err != nil {
			return err
		}
	}

	current, err := kpgintr.LockTypesOf(ctx, tx, id)
	if err != nil {
		return err
	}
	for _, lt := range locks {
		if domain.HasLock(current, lt) {
			continue
		}
		if err := domain.CanAddLock(current, lt); err != nil {
			return forLockState(err, id)
		}
		if _, err := tx.Exec(
			ctx,
			`insert into "resource_locks" ("resource_id", "lock_type") values ($1, $2)`,
			id, lt.String(),
		); err != nil {
			return err
		}
		current = append(current, lt)
	}
	return tx.Commit(ctx)
}

func (r *resourcePG) Delete(ctx context.Context, ref domain.ResourceRef) error {
	id, err := kpgintr.RefOf(ref)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockRow(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.Exec(
		ctx,
		`
		insert into "resource_locks" ("resource_id", "lock_type")
		values ($1, 'delete')
		on conflict do nothing
		`,
		id,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// createIdentity persists a fresh identity row and reports its id.
func createIdentity(ctx context.Context, tx kpool.Tx, res *domain.Resource) (int64, error) {
	if _, err := domain.AsResourceType(res.Type.String()); err != nil {
		return 0, err
	}
	if err := kpgintr.AssertGroups(ctx, tx, domain.PolicyNotDeleted, res.GroupID); err != nil {
		return 0, err
	}
	var id int64
	if err := tx.QueryRow(
		ctx,
		`
		insert into "resources" ("group_id", "resource_type")
		values ($1, $2)
		returning "resource_id"
		`,
		res.GroupID, res.Type.String(),
	).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// lockRow takes a row lock on the resource, serializing concurrent
// lock/edge/snapshot writers against it. A missing row is DoesNotExist.
func lockRow(ctx context.Context, tx kpool.Tx, resourceID int64) error {
	var found int64
	err := tx.QueryRow(
		ctx,
		`select "resource_id" from "resources" where "resource_id" = $1 for update`,
		resourceID,
	).Scan(&found)
	if err != nil {
		if isNoRows(err) {
			return kpgerr.DoesNotExist{Table: "resources", Identity: kpgintr.Identity(resourceID)}
		}
		return err
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// forLockState turns a lock state machine verdict into its typed form.
func forLockState(verdict error, resourceID int64) error {
	switch {
	case errors.Is(verdict, domerr.ErrDeleted):
		return kpgerr.IsDeleted{Table: "resources", Identity: kpgintr.Identity(resourceID)}
	case errors.Is(verdict, domerr.ErrReadOnlyLock):
		return kpgerr.ReadOnly{Identity: kpgintr.Identity(resourceID)}
	default:
		return verdict
	}
}
