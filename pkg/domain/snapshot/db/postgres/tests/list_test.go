package tests_test

import (
	"context"
	"errors"
	"testing"

	"github.com/trialkeep/trialkeep/pkg/conn/postgres/pool/testenv"
	"github.com/trialkeep/trialkeep/pkg/domain"
	domerr "github.com/trialkeep/trialkeep/pkg/domain/errors"
	kpggroup "github.com/trialkeep/trialkeep/pkg/domain/group/db/postgres"
	kpgresource "github.com/trialkeep/trialkeep/pkg/domain/resource/db/postgres"
	"github.com/trialkeep/trialkeep/pkg/domain/search"
	kdb "github.com/trialkeep/trialkeep/pkg/domain/snapshot/db"
	"github.com/trialkeep/trialkeep/pkg/utils/cmp"
	"github.com/trialkeep/trialkeep/pkg/utils/slices"
	"github.com/trialkeep/trialkeep/pkg/utils/try"
)

func names(items []*domain.Queue) []string {
	return slices.Map(items, func(q *domain.Queue) string { return q.Name })
}

func TestList(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("it pages over latest snapshots", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		for _, name := range []string{"alpha", "beta", "gamma", "delta", "epsilon"} {
			try.To(testee.NewResource(ctx, aQueue(f, name, ""))).OrFatal(t)
		}

		page1 := try.To(testee.List(ctx, kdb.ListQuery{
			GroupID: f.Group.ID, Policy: domain.PolicyNotDeleted,
			SortBy: "name", Limit: 2,
		})).OrFatal(t)
		if page1.Total != 5 {
			t.Errorf("wrong total: %d", page1.Total)
		}
		if !cmp.SliceEq(names(page1.Items), []string{"alpha", "beta"}) {
			t.Errorf("wrong page: %v", names(page1.Items))
		}

		page2 := try.To(testee.List(ctx, kdb.ListQuery{
			GroupID: f.Group.ID, Policy: domain.PolicyNotDeleted,
			SortBy: "name", Limit: 2, Offset: 2,
		})).OrFatal(t)
		if !cmp.SliceEq(names(page2.Items), []string{"delta", "epsilon"}) {
			t.Errorf("wrong page: %v", names(page2.Items))
		}

		descending := try.To(testee.List(ctx, kdb.ListQuery{
			GroupID: f.Group.ID, Policy: domain.PolicyNotDeleted,
			SortBy: "name", Descending: true, Limit: 1,
		})).OrFatal(t)
		if !cmp.SliceEq(names(descending.Items), []string{"gamma"}) {
			t.Errorf("wrong page: %v", names(descending.Items))
		}
	})

	t.Run("pages are stable without an explicit sort key", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		for _, name := range []string{"q1", "q2", "q3", "q4", "q5", "q6"} {
			try.To(testee.NewResource(ctx, aQueue(f, name, ""))).OrFatal(t)
		}

		query := kdb.ListQuery{
			GroupID: f.Group.ID, Policy: domain.PolicyNotDeleted,
			Limit: 2, Offset: 2,
		}
		once := try.To(testee.List(ctx, query)).OrFatal(t)
		again := try.To(testee.List(ctx, query)).OrFatal(t)

		if len(once.Items) != 2 {
			t.Fatalf("wrong page size: %d", len(once.Items))
		}
		if !cmp.SliceEq(names(once.Items), names(again.Items)) {
			t.Errorf("pages differ: %v != %v", names(once.Items), names(again.Items))
		}
	})

	t.Run("each resource appears once, as its latest version", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		res := try.To(testee.NewResource(ctx, aQueue(f, "v1-name", "first"))).OrFatal(t)
		v2 := aQueue(f, "v2-name", "second")
		v2.ResourceID = res.ResourceID
		try.To(testee.NewSnapshot(ctx, v2)).OrFatal(t)

		page := try.To(testee.List(ctx, kdb.ListQuery{
			GroupID: f.Group.ID, Policy: domain.PolicyNotDeleted,
		})).OrFatal(t)
		if page.Total != 1 || !cmp.SliceEq(names(page.Items), []string{"v2-name"}) {
			t.Errorf("wrong result: total=%d items=%v", page.Total, names(page.Items))
		}
	})

	t.Run("the search sees only latest versions", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		// "antique" is the old name of a renamed resource
		res := try.To(testee.NewResource(ctx, aQueue(f, "antique", ""))).OrFatal(t)
		renamed := aQueue(f, "modern", "")
		renamed.ResourceID = res.ResourceID
		try.To(testee.NewSnapshot(ctx, renamed)).OrFatal(t)
		try.To(testee.NewResource(ctx, aQueue(f, "antique-2", ""))).OrFatal(t)

		page := try.To(testee.List(ctx, kdb.ListQuery{
			GroupID: f.Group.ID, Policy: domain.PolicyNotDeleted,
			Search: []search.Clause{{Field: "name", Terms: []string{"antique*"}}},
			SortBy: "name",
		})).OrFatal(t)
		if !cmp.SliceEq(names(page.Items), []string{"antique-2"}) {
			t.Errorf("wrong result: %v", names(page.Items))
		}
	})

	t.Run("an unscoped clause matches name or description", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		try.To(testee.NewResource(ctx, aQueue(f, "gpu-queue", "for training"))).OrFatal(t)
		try.To(testee.NewResource(ctx, aQueue(f, "training-queue", "spare"))).OrFatal(t)
		try.To(testee.NewResource(ctx, aQueue(f, "cpu-queue", "misc"))).OrFatal(t)

		page := try.To(testee.List(ctx, kdb.ListQuery{
			GroupID: f.Group.ID, Policy: domain.PolicyNotDeleted,
			Search: []search.Clause{{Terms: []string{"training"}}},
			SortBy: "name",
		})).OrFatal(t)
		if !cmp.SliceEq(names(page.Items), []string{"gpu-queue", "training-queue"}) {
			t.Errorf("wrong result: %v", names(page.Items))
		}
	})

	t.Run("the policy filters deleted resources", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		try.To(testee.NewResource(ctx, aQueue(f, "live", ""))).OrFatal(t)
		gone := try.To(testee.NewResource(ctx, aQueue(f, "gone", ""))).OrFatal(t)
		if err := kpgresource.New(pool).Delete(ctx, domain.ID(gone.ResourceID)); err != nil {
			t.Fatal(err)
		}

		for policy, expected := range map[domain.DeletionPolicy][]string{
			domain.PolicyNotDeleted: {"live"},
			domain.PolicyDeleted:    {"gone"},
			domain.PolicyAny:        {"gone", "live"},
		} {
			page := try.To(testee.List(ctx, kdb.ListQuery{
				GroupID: f.Group.ID, Policy: policy, SortBy: "name",
			})).OrFatal(t)
			if !cmp.SliceEq(names(page.Items), expected) {
				t.Errorf("%v: wrong result: %v", policy, names(page.Items))
			}
		}
	})

	t.Run("zero group id lists across groups", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		try.To(testee.NewResource(ctx, aQueue(f, "here", ""))).OrFatal(t)

		groups := kpggroup.New(pool)
		other := try.To(groups.NewGroup(ctx, "qa-team")).OrFatal(t)
		if err := groups.AddMember(ctx, domain.Membership{
			GroupID: other.ID, UserID: f.User.ID, Read: true, Write: true,
		}); err != nil {
			t.Fatal(err)
		}
		elsewhere := aQueue(fixture{User: f.User, Group: other}, "there", "")
		try.To(testee.NewResource(ctx, elsewhere)).OrFatal(t)

		page := try.To(testee.List(ctx, kdb.ListQuery{
			Policy: domain.PolicyNotDeleted, SortBy: "name",
		})).OrFatal(t)
		if !cmp.SliceEq(names(page.Items), []string{"here", "there"}) {
			t.Errorf("wrong result: %v", names(page.Items))
		}

		scoped := try.To(testee.List(ctx, kdb.ListQuery{
			GroupID: other.ID, Policy: domain.PolicyNotDeleted, SortBy: "name",
		})).OrFatal(t)
		if !cmp.SliceEq(names(scoped.Items), []string{"there"}) {
			t.Errorf("wrong result: %v", names(scoped.Items))
		}
	})

	t.Run("it refuses a sort key outside the allow-list", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := queues(pool)

		if _, err := testee.List(ctx, kdb.ListQuery{
			SortBy: "owner",
		}); !errors.Is(err, domerr.ErrSortParameter) {
			t.Errorf("wrong error: %v", err)
		}
	})

	t.Run("an unsearchable field is a parse error", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := queues(pool)

		if _, err := testee.List(ctx, kdb.ListQuery{
			Search: []search.Clause{{Field: "owner", Terms: []string{"alice"}}},
		}); !errors.Is(err, domerr.ErrSearchParse) {
			t.Errorf("wrong error: %v", err)
		}
	})
}
