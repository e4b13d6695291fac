package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	pgerrcode "github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	kpool "github.com/trialkeep/trialkeep/pkg/conn/postgres/pool"
	"github.com/trialkeep/trialkeep/pkg/domain"
	kpgerr "github.com/trialkeep/trialkeep/pkg/domain/errors/dberrors/postgres"
	kpgintr "github.com/trialkeep/trialkeep/pkg/domain/internal/db/postgres"
	"github.com/trialkeep/trialkeep/pkg/domain/snapshot"
)

type snapshotPG[S domain.Snapshot] struct { // implements db.SnapshotInterface[S]
	kind snapshot.Kind[S]
	pool kpool.Pool
}

func New[S domain.Snapshot](kind snapshot.Kind[S], pool kpool.Pool) *snapshotPG[S] {
	return &snapshotPG[S]{kind: kind, pool: pool}
}

// deletedPred tests, per snapshot row alias "s", whether the owning
// resource carries a delete lock.
const deletedPred = `exists (
	select 1 from "resource_locks" as "l"
	where "l"."resource_id" = "s"."resource_id" and "l"."lock_type" = 'delete'
)`

func policyPred(policy domain.DeletionPolicy) string {
	switch policy {
	case domain.PolicyNotDeleted:
		return "not " + deletedPred
	case domain.PolicyDeleted:
		return deletedPred
	default:
		return ""
	}
}

// selectList is the column list every snapshot query yields, in the
// order scanRows consumes.
func (p *snapshotPG[S]) selectList() string {
	cols := []string{
		`"s"."snapshot_id"`, `"s"."resource_id"`, `"s"."resource_type"`,
		`"s"."created_by"`, `"s"."description"`, `"s"."created_on"`,
		`"r"."group_id"`,
	}
	for _, c := range p.kind.Columns {
		cols = append(cols, `"t"."`+c+`"`)
	}
	return strings.Join(cols, ", ")
}

func (p *snapshotPG[S]) fromJoins() string {
	return fmt.Sprintf(
		`from "resource_snapshots" as "s"
		inner join "%s" as "t" using ("snapshot_id")
		inner join "resources" as "r" on "r"."resource_id" = "s"."resource_id"`,
		p.kind.Table,
	)
}

func (p *snapshotPG[S]) scanRows(rows pgx.Rows) ([]S, error) {
	defer rows.Close()

	out := []S{}
	for rows.Next() {
		s := p.kind.New()
		core := s.Core()
		var rawType string
		dest := append(
			[]any{
				&core.ID, &core.ResourceID, &rawType,
				&core.CreatedBy, &core.Description, &core.CreatedOn,
				&core.GroupID,
			},
			p.kind.Fields(s)...,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		t, err := domain.AsResourceType(rawType)
		if err != nil {
			return nil, err
		}
		core.Type = t
		out = append(out, s)
	}
	return out, rows.Err()
}

// latest selects the newest snapshot per resource. Extra where
// predicates and their bind values are appended by the caller.
func (p *snapshotPG[S]) latest(
	ctx context.Context, conn kpool.Queryer,
	where []string, args []any,
) ([]S, error) {
	conds := ""
	if len(where) > 0 {
		conds = "where " + strings.Join(where, " and ")
	}
	rows, err := conn.Query(
		ctx,
		fmt.Sprintf(
			`
			select distinct on ("s"."resource_id") %s
			%s
			%s
			order by "s"."resource_id", "s"."created_on" desc, "s"."snapshot_id" desc
			`,
			p.selectList(), p.fromJoins(), conds,
		),
		args...,
	)
	if err != nil {
		return nil, err
	}
	return p.scanRows(rows)
}

func (p *snapshotPG[S]) Latest(ctx context.Context, resourceIDs []int64, policy domain.DeletionPolicy) (map[int64]S, error) {
	if len(resourceIDs) == 0 {
		return map[int64]S{}, nil
	}
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return p.latestOn(ctx, conn, resourceIDs, policy)
}

func (p *snapshotPG[S]) latestOn(
	ctx context.Context, conn kpool.Queryer,
	resourceIDs []int64, policy domain.DeletionPolicy,
) (map[int64]S, error) {
	where := []string{`"s"."resource_id" = any($1::bigint[])`}
	if pred := policyPred(policy); pred != "" {
		where = append(where, pred)
	}
	found, err := p.latest(ctx, conn, where, []any{resourceIDs})
	if err != nil {
		return nil, err
	}

	result := map[int64]S{}
	for _, s := range found {
		result[s.Core().ResourceID] = s
	}
	return result, nil
}

func (p *snapshotPG[S]) LatestOne(ctx context.Context, ref domain.ResourceRef, policy domain.DeletionPolicy) (S, error) {
	var zero S
	id, err := kpgintr.RefOf(ref)
	if err != nil {
		return zero, err
	}
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return zero, err
	}
	defer conn.Release()

	found, err := p.latestOn(ctx, conn, []int64{id}, policy)
	if err != nil {
		return zero, err
	}
	if s, ok := found[id]; ok {
		return s, nil
	}

	// nothing matched. Probe the identity so the caller learns which
	// precondition failed, not just "no rows".
	if err := kpgintr.AssertResources(ctx, conn, policy, id); err != nil {
		return zero, err
	}
	got, err := kpgintr.ResourceTypeOf(ctx, conn, id)
	if err != nil {
		return zero, err
	}
	if got != p.kind.Type {
		return zero, kpgerr.TypeMismatch{
			Expected: p.kind.Type,
			Actual:   got,
			Identity: kpgintr.Identity(id),
		}
	}
	// the identity satisfies the policy but has no snapshot rows;
	// treat it as absent from this kind's table.
	return zero, kpgerr.DoesNotExist{Table: p.kind.Table, Identity: kpgintr.Identity(id)}
}

func (p *snapshotPG[S]) ByName(ctx context.Context, groupID int64, names []string, policy domain.DeletionPolicy) (map[string]S, error) {
	if len(names) == 0 {
		return map[string]S{}, nil
	}
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	where := []string{
		`"r"."group_id" = $1`,
		`"r"."resource_type" = $2`,
	}
	if pred := policyPred(policy); pred != "" {
		where = append(where, pred)
	}
	rows, err := conn.Query(
		ctx,
		fmt.Sprintf(
			`
			with "latest" as (
				select distinct on ("s"."resource_id") %s
				%s
				where %s
				order by "s"."resource_id", "s"."created_on" desc, "s"."snapshot_id" desc
			)
			select * from "latest" where "%s" = any($3::varchar[])
			`,
			p.selectList(), p.fromJoins(), strings.Join(where, " and "), p.kind.NameColumn,
		),
		groupID, p.kind.Type.String(), names,
	)
	if err != nil {
		return nil, err
	}
	found, err := p.scanRows(rows)
	if err != nil {
		return nil, err
	}

	result := map[string]S{}
	for _, s := range found {
		name := s.ResourceName()
		if _, dup := result[name]; dup {
			return nil, kpgerr.TooMany{Table: p.kind.Table, Identity: name, Expected: 1}
		}
		result[name] = s
	}
	return result, nil
}

func (p *snapshotPG[S]) OneByName(ctx context.Context, groupID int64, name string, policy domain.DeletionPolicy) (S, error) {
	var zero S
	found, err := p.ByName(ctx, groupID, []string{name}, policy)
	if err != nil {
		return zero, err
	}
	s, ok := found[name]
	if !ok {
		return zero, kpgerr.DoesNotExist{Table: p.kind.Table, Identity: name}
	}
	return s, nil
}

func (p *snapshotPG[S]) LatestChildren(ctx context.Context, parent domain.ResourceRef, policy domain.DeletionPolicy) ([]S, error) {
	parentID, err := kpgintr.RefOf(parent)
	if err != nil {
		return nil, err
	}
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	where := []string{
		`"s"."resource_id" in (
			select "child_id" from "resource_dependencies" where "parent_id" = $1
		)`,
		`"r"."resource_type" = $2`,
	}
	if pred := policyPred(policy); pred != "" {
		where = append(where, pred)
	}
	return p.latest(ctx, conn, where, []any{parentID, p.kind.Type.String()})
}

func (p *snapshotPG[S]) NewResource(ctx context.Context, snap S) (S, error) {
	var zero S
	core := snap.Core()
	groupID, ok := core.OwnerGroup()
	if !ok {
		return zero, kpgerr.NotInGroup{UserID: core.CreatedBy}
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return zero, err
	}
	defer tx.Rollback(ctx)

	if err := kpgintr.AssertGroups(ctx, tx, domain.PolicyNotDeleted, groupID); err != nil {
		return zero, err
	}
	if err := kpgintr.AssertUsers(ctx, tx, domain.PolicyNotDeleted, core.CreatedBy); err != nil {
		return zero, err
	}
	if _, err := kpgintr.AssertMember(ctx, tx, groupID, core.CreatedBy); err != nil {
		return zero, err
	}
	if err := p.assertNameAvailable(ctx, tx, groupID, snap.ResourceName(), 0); err != nil {
		return zero, err
	}

	var resourceID int64
	if err := tx.QueryRow(
		ctx,
		`
		insert into "resources" ("group_id", "resource_type")
		values ($1, $2)
		returning "resource_id"
		`,
		groupID, p.kind.Type.String(),
	).Scan(&resourceID); err != nil {
		return zero, err
	}

	core.ResourceID = resourceID
	core.GroupID = groupID
	if err := p.insertSnapshot(ctx, tx, snap); err != nil {
		return zero, err
	}
	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}
	return snap, nil
}

func (p *snapshotPG[S]) NewSnapshot(ctx context.Context, snap S) (S, error) {
	var zero S
	core := snap.Core()
	resourceID, err := kpgintr.RefOf(snap)
	if err != nil {
		return zero, err
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return zero, err
	}
	defer tx.Rollback(ctx)

	// serialize appends per resource
	var groupID int64
	var rawType string
	if err := tx.QueryRow(
		ctx,
		`select "group_id", "resource_type" from "resources" where "resource_id" = $1 for update`,
		resourceID,
	).Scan(&groupID, &rawType); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, kpgerr.DoesNotExist{Table: "resources", Identity: kpgintr.Identity(resourceID)}
		}
		return zero, err
	}
	if rawType != p.kind.Type.String() {
		actual, _ := domain.AsResourceType(rawType)
		return zero, kpgerr.TypeMismatch{
			Expected: p.kind.Type,
			Actual:   actual,
			Identity: kpgintr.Identity(resourceID),
		}
	}

	if err := kpgintr.AssertWritable(ctx, tx, resourceID); err != nil {
		return zero, err
	}
	if err := kpgintr.AssertUsers(ctx, tx, domain.PolicyNotDeleted, core.CreatedBy); err != nil {
		return zero, err
	}
	if _, err := kpgintr.AssertMember(ctx, tx, groupID, core.CreatedBy); err != nil {
		return zero, err
	}
	if err := p.assertNameAvailable(ctx, tx, groupID, snap.ResourceName(), resourceID); err != nil {
		return zero, err
	}

	core.ResourceID = resourceID
	core.GroupID = groupID
	if err := p.insertSnapshot(ctx, tx, snap); err != nil {
		return zero, err
	}
	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}
	return snap, nil
}

// insertSnapshot appends the core and subtype rows, writing ids and
// the timestamp back into snap.
func (p *snapshotPG[S]) insertSnapshot(ctx context.Context, tx kpool.Tx, snap S) error {
	core := snap.Core()
	if err := tx.QueryRow(
		ctx,
		`
		insert into "resource_snapshots"
			("resource_id", "resource_type", "created_by", "description")
		values ($1, $2, $3, $4)
		returning "snapshot_id", "created_on"
		`,
		core.ResourceID, p.kind.Type.String(), core.CreatedBy, core.Description,
	).Scan(&core.ID, &core.CreatedOn); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// two appends in the same instant lost the (resource, created_on) race
			return kpgerr.AlreadyExists{
				Table:    "resource_snapshots",
				Identity: kpgintr.Identity(core.ResourceID),
			}
		}
		return err
	}
	core.Type = p.kind.Type

	placeholders := make([]string, 0, len(p.kind.Columns)+2)
	for i := 0; i < len(p.kind.Columns)+2; i++ {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}
	columns := append([]string{`"snapshot_id"`, `"resource_id"`}, p.kind.Columns...)
	for i := 2; i < len(columns); i++ {
		columns[i] = `"` + columns[i] + `"`
	}
	args := append([]any{core.ID, core.ResourceID}, p.kind.Values(snap)...)
	if _, err := tx.Exec(
		ctx,
		fmt.Sprintf(
			`insert into "%s" (%s) values (%s)`,
			p.kind.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
		),
		args...,
	); err != nil {
		return err
	}
	return nil
}

// assertNameAvailable refuses a name already claimed by another live
// resource's latest snapshot in the same group and kind.
func (p *snapshotPG[S]) assertNameAvailable(
	ctx context.Context, tx kpool.Tx,
	groupID int64, name string, excludeResourceID int64,
) error {
	var taken bool
	if err := tx.QueryRow(
		ctx,
		fmt.Sprintf(
			`
			with "latest" as (
				select distinct on ("s"."resource_id")
					"t"."%s" as "name"
				from "resource_snapshots" as "s"
				inner join "%s" as "t" using ("snapshot_id")
				inner join "resources" as "r" on "r"."resource_id" = "s"."resource_id"
				where "r"."group_id" = $1
					and "r"."resource_type" = $2
					and "s"."resource_id" <> $3
					and not %s
				order by "s"."resource_id", "s"."created_on" desc, "s"."snapshot_id" desc
			)
			select exists (select 1 from "latest" where "name" = $4)
			`,
			p.kind.NameColumn, p.kind.Table, deletedPred,
		),
		groupID, p.kind.Type.String(), excludeResourceID, name,
	).Scan(&taken); err != nil {
		return err
	}
	if taken {
		return kpgerr.AlreadyExists{Table: p.kind.Table, Identity: name}
	}
	return nil
}
