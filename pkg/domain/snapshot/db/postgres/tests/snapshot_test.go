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
	"github.com/trialkeep/trialkeep/pkg/domain/snapshot"
	kpgsnapshot "github.com/trialkeep/trialkeep/pkg/domain/snapshot/db/postgres"
	"github.com/trialkeep/trialkeep/pkg/utils/try"
)

func TestNewResource(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("it creates an identity with its first snapshot", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		created := try.To(testee.NewResource(ctx, aQueue(f, "gpu-queue", "queue for gpu jobs"))).OrFatal(t)

		if created.ID == 0 || created.ResourceID == 0 {
			t.Fatalf("ids should be assigned: %+v", created.SnapshotCore)
		}
		if created.GroupID != f.Group.ID {
			t.Errorf("wrong group: %d", created.GroupID)
		}
		if created.CreatedOn.IsZero() {
			t.Error("timestamp should be assigned")
		}

		latest := try.To(testee.LatestOne(
			ctx, domain.ID(created.ResourceID), domain.PolicyNotDeleted,
		)).OrFatal(t)
		if latest.ID != created.ID || latest.Name != "gpu-queue" {
			t.Errorf("wrong latest: %+v", latest)
		}
		if latest.Description != "queue for gpu jobs" {
			t.Errorf("wrong description: %s", latest.Description)
		}
	})

	t.Run("it refuses a creator outside the group", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		outsider := try.To(kpggroup.New(pool).NewUser(ctx, "bob", "bob@example.com")).OrFatal(t)

		q := aQueue(f, "gpu-queue", "")
		q.CreatedBy = outsider.ID
		if _, err := testee.NewResource(ctx, q); !errors.Is(err, domerr.ErrNotInGroup) {
			t.Errorf("wrong error: %v", err)
		}
	})

	t.Run("it refuses a deleted group", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		if err := kpggroup.New(pool).DeleteGroup(ctx, f.Group.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := testee.NewResource(ctx, aQueue(f, "gpu-queue", "")); !errors.Is(err, domerr.ErrDeleted) {
			t.Errorf("wrong error: %v", err)
		}
	})

	t.Run("it refuses a deleted creator", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		if err := kpggroup.New(pool).DeleteUser(ctx, f.User.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := testee.NewResource(ctx, aQueue(f, "gpu-queue", "")); !errors.Is(err, domerr.ErrDeleted) {
			t.Errorf("wrong error: %v", err)
		}
	})
}

func TestNewSnapshot(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("it appends a version and the latest moves", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		first := try.To(testee.NewResource(ctx, aQueue(f, "gpu-queue", "v1"))).OrFatal(t)

		second := aQueue(f, "gpu-queue-v2", "v2")
		second.ResourceID = first.ResourceID
		second = try.To(testee.NewSnapshot(ctx, second)).OrFatal(t)

		if second.ID == first.ID {
			t.Error("a new snapshot row should be appended")
		}
		latest := try.To(testee.LatestOne(
			ctx, domain.ID(first.ResourceID), domain.PolicyNotDeleted,
		)).OrFatal(t)
		if latest.ID != second.ID || latest.Name != "gpu-queue-v2" {
			t.Errorf("wrong latest: %+v", latest)
		}

		// the first version is still on record
		existence := try.To(kpgresource.New(pool).SnapshotExistence(
			ctx, []int64{first.ID},
		)).OrFatal(t)
		if existence[first.ID] != domain.Exists {
			t.Errorf("first snapshot should survive: %v", existence[first.ID])
		}
	})

	t.Run("it refuses a readonly resource", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		first := try.To(testee.NewResource(ctx, aQueue(f, "frozen", ""))).OrFatal(t)
		if err := kpgresource.New(pool).AddLockTypes(
			ctx, domain.ID(first.ResourceID), domain.LockReadOnly,
		); err != nil {
			t.Fatal(err)
		}

		second := aQueue(f, "frozen-v2", "")
		second.ResourceID = first.ResourceID
		if _, err := testee.NewSnapshot(ctx, second); !errors.Is(err, domerr.ErrReadOnlyLock) {
			t.Errorf("wrong error: %v", err)
		}
	})

	t.Run("it refuses a deleted resource", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		first := try.To(testee.NewResource(ctx, aQueue(f, "gone", ""))).OrFatal(t)
		if err := kpgresource.New(pool).Delete(ctx, domain.ID(first.ResourceID)); err != nil {
			t.Fatal(err)
		}

		second := aQueue(f, "gone-v2", "")
		second.ResourceID = first.ResourceID
		if _, err := testee.NewSnapshot(ctx, second); !errors.Is(err, domerr.ErrDeleted) {
			t.Errorf("wrong error: %v", err)
		}
	})

	t.Run("it refuses an unknown resource", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		snap := aQueue(f, "nowhere", "")
		snap.ResourceID = 12345
		if _, err := testee.NewSnapshot(ctx, snap); !errors.Is(err, domerr.ErrDoesNotExist) {
			t.Errorf("wrong error: %v", err)
		}
	})

	t.Run("it refuses a resource of another kind", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)

		plugins := kpgsnapshot.New(snapshot.KindPlugin(), pool)
		plugin := try.To(plugins.NewResource(ctx, &domain.Plugin{
			SnapshotCore: domain.SnapshotCore{
				Type: domain.TypePlugin, GroupID: f.Group.ID, CreatedBy: f.User.ID,
			},
			Name: "tokenizer",
		})).OrFatal(t)

		snap := aQueue(f, "not-a-queue", "")
		snap.ResourceID = plugin.ResourceID
		if _, err := queues(pool).NewSnapshot(ctx, snap); !errors.Is(err, domerr.ErrTypeMismatch) {
			t.Errorf("wrong error: %v", err)
		}
	})

	t.Run("a resource may keep its own name across versions", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		first := try.To(testee.NewResource(ctx, aQueue(f, "gpu-queue", "v1"))).OrFatal(t)

		second := aQueue(f, "gpu-queue", "v2")
		second.ResourceID = first.ResourceID
		if _, err := testee.NewSnapshot(ctx, second); err != nil {
			t.Errorf("keeping the same name should be allowed: %v", err)
		}
	})

	t.Run("it refuses renaming onto a neighbour's name", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		try.To(testee.NewResource(ctx, aQueue(f, "gpu-queue", ""))).OrFatal(t)
		other := try.To(testee.NewResource(ctx, aQueue(f, "cpu-queue", ""))).OrFatal(t)

		rename := aQueue(f, "gpu-queue", "")
		rename.ResourceID = other.ResourceID
		if _, err := testee.NewSnapshot(ctx, rename); !errors.Is(err, domerr.ErrAlreadyExists) {
			t.Errorf("wrong error: %v", err)
		}
	})
}

func TestLatest(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("it maps each live resource to its newest snapshot", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		live := try.To(testee.NewResource(ctx, aQueue(f, "live", ""))).OrFatal(t)
		gone := try.To(testee.NewResource(ctx, aQueue(f, "gone", ""))).OrFatal(t)
		if err := kpgresource.New(pool).Delete(ctx, domain.ID(gone.ResourceID)); err != nil {
			t.Fatal(err)
		}

		ids := []int64{live.ResourceID, gone.ResourceID, 12345}

		notDeleted := try.To(testee.Latest(ctx, ids, domain.PolicyNotDeleted)).OrFatal(t)
		if len(notDeleted) != 1 || notDeleted[live.ResourceID] == nil {
			t.Errorf("wrong result: %v", notDeleted)
		}

		deleted := try.To(testee.Latest(ctx, ids, domain.PolicyDeleted)).OrFatal(t)
		if len(deleted) != 1 || deleted[gone.ResourceID] == nil {
			t.Errorf("wrong result: %v", deleted)
		}

		all := try.To(testee.Latest(ctx, ids, domain.PolicyAny)).OrFatal(t)
		if len(all) != 2 {
			t.Errorf("wrong result: %v", all)
		}
	})

	t.Run("LatestOne tells refusals apart", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		f := principals(ctx, t, pool)
		testee := queues(pool)

		gone := try.To(testee.NewResource(ctx, aQueue(f, "gone", ""))).OrFatal(t)
		if err := kpgresource.New(pool).Delete(ctx, domain.ID(gone.ResourceID)); err != nil {
			t.Fatal(err)
		}

		plugins := kpgsnapshot.New(snapshot.KindPlugin(), pool)
		plugin := try.To(plugins.NewResource(ctx, &domain.Plugin{
			SnapshotCore: domain.SnapshotCore{
				Type: domain.TypePlugin, GroupID: f.Group.ID, CreatedBy: f.User.ID,
			},
			Name: "tokenizer",
		})).OrFatal(t)

		if _, err := testee.LatestOne(ctx, domain.ID(12345), domain.PolicyNotDeleted); !errors.Is(err, domerr.ErrDoesNotExist) {
			t.Errorf("wrong error for unknown id: %v", err)
		}
		if _, err := testee.LatestOne(ctx, domain.ID(gone.ResourceID), domain.PolicyNotDeleted); !errors.Is(err, domerr.ErrDeleted) {
			t.Errorf("wrong error for deleted: %v", err)
		}
		if _, err := testee.LatestOne(ctx, domain.ID(plugin.ResourceID), domain.PolicyNotDeleted); !errors.Is(err, domerr.ErrTypeMismatch) {
			t.Errorf("wrong error for wrong kind: %v", err)
		}
	})
}
