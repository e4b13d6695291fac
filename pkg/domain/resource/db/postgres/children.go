package postgres

import (
	"context"
	"fmt"

	kpool "github.com/trialkeep/trialkeep/pkg/conn/postgres/pool"
	"github.com/trialkeep/trialkeep/pkg/domain"
	kpgerr "github.com/trialkeep/trialkeep/pkg/domain/errors/dberrors/postgres"
	kpgintr "github.com/trialkeep/trialkeep/pkg/domain/internal/db/postgres"
	"github.com/trialkeep/trialkeep/pkg/utils/slices"
)

func (r *resourcePG) SetChildren(ctx context.Context, parent domain.ResourceRef, children []domain.ResourceRef) error {
	return r.withParent(ctx, parent, children, func(ctx context.Context, tx kpool.Tx, parentID int64, childIDs []int64) error {
		if _, err := tx.Exec(
			ctx,
			`delete from "resource_dependencies" where "parent_id" = $1`,
			parentID,
		); err != nil {
			return err
		}
		return insertEdges(ctx, tx, parentID, childIDs)
	})
}

func (r *resourcePG) AppendChildren(ctx context.Context, parent domain.ResourceRef, children []domain.ResourceRef) error {
	return r.withParent(ctx, parent, children, insertEdges)
}

func (r *resourcePG) UnlinkChild(ctx context.Context, parent domain.ResourceRef, child domain.ResourceRef) error {
	parentID, err := kpgintr.RefOf(parent)
	if err != nil {
		return err
	}
	childID, err := kpgintr.RefOf(child)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockRow(ctx, tx, parentID); err != nil {
		return err
	}
	if err := kpgintr.AssertWritable(ctx, tx, parentID); err != nil {
		return err
	}
	// absent edge: nothing to do
	if _, err := tx.Exec(
		ctx,
		`delete from "resource_dependencies" where "parent_id" = $1 and "child_id" = $2`,
		parentID, childID,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *resourcePG) Children(ctx context.Context, parent domain.ResourceRef) ([]domain.Resource, error) {
	parentID, err := kpgintr.RefOf(parent)
	if err != nil {
		return nil, err
	}
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "r"."resource_id", "r"."group_id", "r"."resource_type", "r"."created_on"
		from "resource_dependencies" as "d"
		inner join "resources" as "r" on "r"."resource_id" = "d"."child_id"
		where "d"."parent_id" = $1
		order by "r"."resource_id"
		`,
		parentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	children := []domain.Resource{}
	for rows.Next() {
		var res domain.Resource
		var rawType string
		if err := rows.Scan(&res.ID, &res.GroupID, &rawType, &res.CreatedOn); err != nil {
			return nil, err
		}
		if res.Type, err = domain.AsResourceType(rawType); err != nil {
			return nil, err
		}
		children = append(children, res)
	}
	return children, rows.Err()
}

// withParent wraps an edge mutation: one tx, parent row-locked and
// modifiable, children deduped, live, type-checked and acyclic.
func (r *resourcePG) withParent(
	ctx context.Context, parent domain.ResourceRef, children []domain.ResourceRef,
	mutate func(context.Context, kpool.Tx, int64, []int64) error,
) error {
	parentID, err := kpgintr.RefOf(parent)
	if err != nil {
		return err
	}
	childIDs := []int64{}
	for _, c := range children {
		id, err := kpgintr.RefOf(c)
		if err != nil {
			return err
		}
		childIDs = append(childIDs, id)
	}
	childIDs = slices.Deduped(childIDs)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockRow(ctx, tx, parentID); err != nil {
		return err
	}
	if err := kpgintr.AssertWritable(ctx, tx, parentID); err != nil {
		return err
	}
	if err := kpgintr.AssertResources(ctx, tx, domain.PolicyNotDeleted, childIDs...); err != nil {
		return err
	}
	for _, childID := range childIDs {
		if err := checkAcyclic(ctx, tx, parentID, childID); err != nil {
			return err
		}
	}
	if err := checkEdgeTypes(ctx, tx, parentID, childIDs); err != nil {
		return err
	}

	if err := mutate(ctx, tx, parentID, childIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertEdges(ctx context.Context, tx kpool.Tx, parentID int64, childIDs []int64) error {
	for _, childID := range childIDs {
		if _, err := tx.Exec(
			ctx,
			`
			insert into "resource_dependencies" ("parent_id", "child_id")
			values ($1, $2)
			on conflict do nothing
			`,
			parentID, childID,
		); err != nil {
			return err
		}
	}
	return nil
}

// checkEdgeTypes verifies each parent -> child pair against the
// "resource_dependency_types" allow-list table.
func checkEdgeTypes(ctx context.Context, tx kpool.Tx, parentID int64, childIDs []int64) error {
	if len(childIDs) == 0 {
		return nil
	}
	rows, err := tx.Query(
		ctx,
		`
		select "c"."resource_id", "p"."resource_type", "c"."resource_type"
		from "resources" as "p"
		inner join "resources" as "c" on "c"."resource_id" = any($2::bigint[])
		where "p"."resource_id" = $1
			and not exists (
				select 1 from "resource_dependency_types" as "t"
				where "t"."parent_type" = "p"."resource_type"
					and "t"."child_type" = "c"."resource_type"
			)
		order by "c"."resource_id"
		`,
		parentID, childIDs,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var childID int64
		var rawParentType, rawChildType string
		if err := rows.Scan(&childID, &rawParentType, &rawChildType); err != nil {
			return err
		}
		parentType, err := domain.AsResourceType(rawParentType)
		if err != nil {
			return err
		}
		childType, err := domain.AsResourceType(rawChildType)
		if err != nil {
			return err
		}
		return kpgerr.TypeMismatch{
			Expected: parentType,
			Actual:   childType,
			Identity: fmt.Sprintf("dependency %d -> %d", parentID, childID),
		}
	}
	return rows.Err()
}

// checkAcyclic refuses the edge parent -> child when parent is already
// reachable from child. Runs inside the tx holding the parent row lock.
func checkAcyclic(ctx context.Context, tx kpool.Tx, parentID, childID int64) error {
	if parentID == childID {
		return kpgerr.DependencyCycle{ParentID: parentID, ChildID: childID}
	}
	var closes bool
	if err := tx.QueryRow(
		ctx,
		`
		with recursive "reach" ("resource_id") as (
			select "child_id" from "resource_dependencies" where "parent_id" = $1
			union
			select "d"."child_id"
			from "resource_dependencies" as "d"
			inner join "reach" as "r" on "d"."parent_id" = "r"."resource_id"
		)
		select exists (select 1 from "reach" where "resource_id" = $2)
		`,
		childID, parentID,
	).Scan(&closes); err != nil {
		return err
	}
	if closes {
		return kpgerr.DependencyCycle{ParentID: parentID, ChildID: childID}
	}
	return nil
}
