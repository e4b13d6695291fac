package tests_test

import (
	"context"
	"testing"

	kpool "github.com/trialkeep/trialkeep/pkg/conn/postgres/pool"
	"github.com/trialkeep/trialkeep/pkg/domain"
	kpggroup "github.com/trialkeep/trialkeep/pkg/domain/group/db/postgres"
	"github.com/trialkeep/trialkeep/pkg/domain/snapshot"
	ksnapdb "github.com/trialkeep/trialkeep/pkg/domain/snapshot/db"
	kpgsnapshot "github.com/trialkeep/trialkeep/pkg/domain/snapshot/db/postgres"
	"github.com/trialkeep/trialkeep/pkg/utils/try"
)

type fixture struct {
	User  domain.User
	Group domain.Group
}

// principals registers one user, one group and a read/write membership.
func principals(ctx context.Context, t *testing.T, pool kpool.Pool) fixture {
	t.Helper()
	groups := kpggroup.New(pool)

	user := try.To(groups.NewUser(ctx, "alice", "alice@example.com")).OrFatal(t)
	group := try.To(groups.NewGroup(ctx, "ml-team")).OrFatal(t)
	if err := groups.AddMember(ctx, domain.Membership{
		GroupID: group.ID, UserID: user.ID, Read: true, Write: true,
	}); err != nil {
		t.Fatal(err)
	}
	return fixture{User: user, Group: group}
}

func queues(pool kpool.Pool) ksnapdb.SnapshotInterface[*domain.Queue] {
	return kpgsnapshot.New(snapshot.KindQueue(), pool)
}

func anEntryPoint(ctx context.Context, t *testing.T, pool kpool.Pool, f fixture, name string) *domain.EntryPoint {
	t.Helper()
	return try.To(kpgsnapshot.New(snapshot.KindEntryPoint(), pool).NewResource(
		ctx,
		&domain.EntryPoint{
			SnapshotCore: domain.SnapshotCore{
				Type: domain.TypeEntryPoint, GroupID: f.Group.ID, CreatedBy: f.User.ID,
			},
			Name:      name,
			TaskGraph: `{"tasks":[]}`,
		},
	)).OrFatal(t)
}

func aQueue(f fixture, name string, description string) *domain.Queue {
	return &domain.Queue{
		SnapshotCore: domain.SnapshotCore{
			Type: domain.TypeQueue, GroupID: f.Group.ID, CreatedBy: f.User.ID,
			Description: description,
		},
		Name: name,
	}
}
