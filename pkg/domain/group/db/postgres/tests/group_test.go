package tests_test

import (
	"context"
	"errors"
	"testing"

	"github.com/trialkeep/trialkeep/pkg/conn/postgres/pool/testenv"
	"github.com/trialkeep/trialkeep/pkg/domain"
	domerr "github.com/trialkeep/trialkeep/pkg/domain/errors"
	kpggroup "github.com/trialkeep/trialkeep/pkg/domain/group/db/postgres"
	"github.com/trialkeep/trialkeep/pkg/utils/try"
)

func TestNewUser(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("it registers a user", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpggroup.New(pool)

		user := try.To(testee.NewUser(ctx, "alice", "alice@example.com")).OrFatal(t)

		if user.ID == 0 {
			t.Error("id should be assigned")
		}
		if user.Username != "alice" || user.Email != "alice@example.com" {
			t.Errorf("wrong user: %+v", user)
		}
		if user.CreatedOn.IsZero() {
			t.Error("timestamp should be assigned")
		}

		existence := try.To(testee.UserExistence(ctx, []int64{user.ID})).OrFatal(t)
		if existence[user.ID] != domain.Exists {
			t.Errorf("wrong existence: %v", existence[user.ID])
		}
	})

	t.Run("it refuses a taken username", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpggroup.New(pool)

		try.To(testee.NewUser(ctx, "alice", "alice@example.com")).OrFatal(t)

		if _, err := testee.NewUser(ctx, "alice", "other@example.com"); !errors.Is(err, domerr.ErrAlreadyExists) {
			t.Errorf("wrong error: %v", err)
		}
	})
}

func TestNewGroup(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("it registers a group", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpggroup.New(pool)

		group := try.To(testee.NewGroup(ctx, "ml-team")).OrFatal(t)

		if group.ID == 0 {
			t.Error("id should be assigned")
		}
		if group.Name != "ml-team" {
			t.Errorf("wrong group: %+v", group)
		}

		existence := try.To(testee.GroupExistence(ctx, []int64{group.ID, group.ID + 100})).OrFatal(t)
		if existence[group.ID] != domain.Exists {
			t.Errorf("wrong existence: %v", existence[group.ID])
		}
		if existence[group.ID+100] != domain.DoesNotExist {
			t.Errorf("unknown id should be missing: %v", existence[group.ID+100])
		}
	})

	t.Run("it refuses a taken name", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpggroup.New(pool)

		try.To(testee.NewGroup(ctx, "ml-team")).OrFatal(t)

		if _, err := testee.NewGroup(ctx, "ml-team"); !errors.Is(err, domerr.ErrAlreadyExists) {
			t.Errorf("wrong error: %v", err)
		}
	})
}

func TestMembership(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("it grants and reads back a membership", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpggroup.New(pool)

		user := try.To(testee.NewUser(ctx, "alice", "alice@example.com")).OrFatal(t)
		group := try.To(testee.NewGroup(ctx, "ml-team")).OrFatal(t)

		granted := domain.Membership{
			GroupID: group.ID, UserID: user.ID,
			Read: true, Write: true,
		}
		if err := testee.AddMember(ctx, granted); err != nil {
			t.Fatal(err)
		}

		actual := try.To(testee.Membership(ctx, group.ID, user.ID)).OrFatal(t)
		if actual != granted {
			t.Errorf("wrong membership: got %+v, want %+v", actual, granted)
		}
	})

	t.Run("granting again updates the permission set", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpggroup.New(pool)

		user := try.To(testee.NewUser(ctx, "alice", "alice@example.com")).OrFatal(t)
		group := try.To(testee.NewGroup(ctx, "ml-team")).OrFatal(t)

		if err := testee.AddMember(ctx, domain.Membership{
			GroupID: group.ID, UserID: user.ID, Read: true,
		}); err != nil {
			t.Fatal(err)
		}
		updated := domain.Membership{
			GroupID: group.ID, UserID: user.ID,
			Read: true, Write: true, ShareRead: true, ShareWrite: true,
		}
		if err := testee.AddMember(ctx, updated); err != nil {
			t.Fatal(err)
		}

		actual := try.To(testee.Membership(ctx, group.ID, user.ID)).OrFatal(t)
		if actual != updated {
			t.Errorf("wrong membership: got %+v, want %+v", actual, updated)
		}
	})

	t.Run("a non-member is refused", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpggroup.New(pool)

		user := try.To(testee.NewUser(ctx, "mallory", "mallory@example.com")).OrFatal(t)
		group := try.To(testee.NewGroup(ctx, "ml-team")).OrFatal(t)

		if _, err := testee.Membership(ctx, group.ID, user.ID); !errors.Is(err, domerr.ErrNotInGroup) {
			t.Errorf("wrong error: %v", err)
		}
	})

	t.Run("it refuses membership in a deleted group", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpggroup.New(pool)

		user := try.To(testee.NewUser(ctx, "alice", "alice@example.com")).OrFatal(t)
		group := try.To(testee.NewGroup(ctx, "doomed")).OrFatal(t)
		if err := testee.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatal(err)
		}

		err := testee.AddMember(ctx, domain.Membership{
			GroupID: group.ID, UserID: user.ID, Read: true,
		})
		if !errors.Is(err, domerr.ErrDeleted) {
			t.Errorf("wrong error: %v", err)
		}
	})
}

func TestDeletePrincipals(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("deleting a user is soft and idempotent", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpggroup.New(pool)

		user := try.To(testee.NewUser(ctx, "alice", "alice@example.com")).OrFatal(t)

		if err := testee.DeleteUser(ctx, user.ID); err != nil {
			t.Fatal(err)
		}
		if err := testee.DeleteUser(ctx, user.ID); err != nil {
			t.Errorf("second delete should be a no-op: %v", err)
		}

		existence := try.To(testee.UserExistence(ctx, []int64{user.ID})).OrFatal(t)
		if existence[user.ID] != domain.Deleted {
			t.Errorf("wrong existence: %v", existence[user.ID])
		}
	})

	t.Run("deleting an unknown user is refused", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpggroup.New(pool)

		if err := testee.DeleteUser(ctx, 12345); !errors.Is(err, domerr.ErrDoesNotExist) {
			t.Errorf("wrong error: %v", err)
		}
	})

	t.Run("deleting a group is soft and idempotent", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpggroup.New(pool)

		group := try.To(testee.NewGroup(ctx, "doomed")).OrFatal(t)

		if err := testee.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatal(err)
		}
		if err := testee.DeleteGroup(ctx, group.ID); err != nil {
			t.Errorf("second delete should be a no-op: %v", err)
		}

		existence := try.To(testee.GroupExistence(ctx, []int64{group.ID})).OrFatal(t)
		if existence[group.ID] != domain.Deleted {
			t.Errorf("wrong existence: %v", existence[group.ID])
		}
	})
}
