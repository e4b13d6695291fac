package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/trialkeep/trialkeep/pkg/domain/search"
	kdb "github.com/trialkeep/trialkeep/pkg/domain/snapshot/db"
)

func (p *snapshotPG[S]) List(ctx context.Context, q kdb.ListQuery) (kdb.Page[S], error) {
	var zero kdb.Page[S]

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "created_on"
	}
	sortExpr, ok := p.kind.Sort[sortBy]
	if !ok {
		return zero, kdb.UnsupportedSort{Key: sortBy}
	}
	direction := "asc"
	if q.Descending {
		direction = "desc"
	}

	// identity-level restrictions select which resources compete;
	// the search restricts the picked latest snapshots afterwards, so
	// an old version matching the terms never surfaces a resource.
	b := search.NewBuilder()
	scope := []string{
		fmt.Sprintf(`"r"."resource_type" = %s`, b.Bind(p.kind.Type.String())),
	}
	if q.GroupID != 0 {
		scope = append(scope, fmt.Sprintf(`"r"."group_id" = %s`, b.Bind(q.GroupID)))
	}
	if pred := policyPred(q.Policy); pred != "" {
		scope = append(scope, pred)
	}

	match := "true"
	if cond, err := search.Translate(q.Search, p.kind.Search, b); err != nil {
		return zero, err
	} else if cond != "" {
		match = cond
	}

	base := fmt.Sprintf(
		`
		with "picked" as (
			select distinct on ("s"."resource_id") "s"."snapshot_id"
			from "resource_snapshots" as "s"
			inner join "resources" as "r" on "r"."resource_id" = "s"."resource_id"
			where %s
			order by "s"."resource_id", "s"."created_on" desc, "s"."snapshot_id" desc
		)
		`,
		strings.Join(scope, " and "),
	)
	joins := fmt.Sprintf(
		`
		from "picked"
		inner join "resource_snapshots" as "s" using ("snapshot_id")
		inner join "%s" as "t" using ("snapshot_id")
		inner join "resources" as "r" on "r"."resource_id" = "s"."resource_id"
		`,
		p.kind.Table,
	)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return zero, err
	}
	defer conn.Release()

	var total int64
	if err := conn.QueryRow(
		ctx,
		base+`select count(*) `+joins+` where `+match,
		b.Args()...,
	).Scan(&total); err != nil {
		return zero, err
	}

	paging := ""
	if q.Limit > 0 {
		paging = fmt.Sprintf(" limit %d", q.Limit)
	}
	if q.Offset > 0 {
		paging += fmt.Sprintf(" offset %d", q.Offset)
	}
	rows, err := conn.Query(
		ctx,
		base+fmt.Sprintf(
			`
			select %s
			%s
			where %s
			order by %s %s, "s"."snapshot_id" %s%s
			`,
			p.selectList(), joins, match,
			sortExpr, direction, direction, paging,
		),
		b.Args()...,
	)
	if err != nil {
		return zero, err
	}
	items, err := p.scanRows(rows)
	if err != nil {
		return zero, err
	}

	return kdb.Page[S]{Total: total, Items: items}, nil
}
