package postgres

import (
	"context"

	"github.com/trialkeep/trialkeep/pkg/domain"
	kpgintr "github.com/trialkeep/trialkeep/pkg/domain/internal/db/postgres"
	"github.com/trialkeep/trialkeep/pkg/utils/slices"
)

func (r *resourcePG) SetTags(ctx context.Context, ref domain.ResourceRef, tags []string) error {
	resourceID, err := kpgintr.RefOf(ref)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockRow(ctx, tx, resourceID); err != nil {
		return err
	}
	if err := kpgintr.AssertWritable(ctx, tx, resourceID); err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`delete from "resource_tags" where "resource_id" = $1`,
		resourceID,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(
		ctx,
		`
		insert into "resource_tags" ("resource_id", "tag")
		select $1, unnest($2::varchar[])
		`,
		resourceID, slices.Deduped(tags),
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *resourcePG) Tags(ctx context.Context, ref domain.ResourceRef) ([]string, error) {
	resourceID, err := kpgintr.RefOf(ref)
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
		`select "tag" from "resource_tags" where "resource_id" = $1 order by "tag"`,
		resourceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *resourcePG) Share(ctx context.Context, share domain.SharedResource) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := kpgintr.AssertResources(ctx, tx, domain.PolicyNotDeleted, share.ResourceID); err != nil {
		return err
	}
	if err := kpgintr.AssertGroups(ctx, tx, domain.PolicyNotDeleted, share.GroupID); err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`
		insert into "shared_resources" ("resource_id", "group_id", "read", "write")
		values ($1, $2, $3, $4)
		on conflict ("resource_id", "group_id") do update
			set "read" = excluded."read", "write" = excluded."write"
		`,
		share.ResourceID, share.GroupID, share.Read, share.Write,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *resourcePG) Shares(ctx context.Context, ref domain.ResourceRef) ([]domain.SharedResource, error) {
	resourceID, err := kpgintr.RefOf(ref)
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
		select "resource_id", "group_id", "read", "write"
		from "shared_resources"
		where "resource_id" = $1
		order by "group_id"
		`,
		resourceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shares := []domain.SharedResource{}
	for rows.Next() {
		var s domain.SharedResource
		if err := rows.Scan(&s.ResourceID, &s.GroupID, &s.Read, &s.Write); err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	return shares, rows.Err()
}
