package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	pgerrcode "github.com/jackc/pgerrcode"
	kpool "github.com/trialkeep/trialkeep/pkg/conn/postgres/pool"
	"github.com/trialkeep/trialkeep/pkg/domain"
	kpgerr "github.com/trialkeep/trialkeep/pkg/domain/errors/dberrors/postgres"
	kpgintr "github.com/trialkeep/trialkeep/pkg/domain/internal/db/postgres"
)

type groupPG struct { // implements db.GroupInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *groupPG {
	return &groupPG{pool: pool}
}

func (g *groupPG) NewUser(ctx context.Context, username string, email string) (domain.User, error) {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return domain.User{}, err
	}
	defer conn.Release()

	user := domain.User{Username: username, Email: email}
	err = conn.QueryRow(
		ctx,
		`
		insert into "users" ("username", "email")
		values ($1, $2)
		returning "user_id", "created_on"
		`,
		username, email,
	).Scan(&user.ID, &user.CreatedOn)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.User{}, kpgerr.AlreadyExists{Table: "users", Identity: username}
		}
		return domain.User{}, err
	}
	return user, nil
}

func (g *groupPG) NewGroup(ctx context.Context, name string) (domain.Group, error) {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return domain.Group{}, err
	}
	defer conn.Release()

	group := domain.Group{Name: name}
	err = conn.QueryRow(
		ctx,
		`
		insert into "groups" ("name")
		values ($1)
		returning "group_id", "created_on"
		`,
		name,
	).Scan(&group.ID, &group.CreatedOn)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.Group{}, kpgerr.AlreadyExists{Table: "groups", Identity: name}
		}
		return domain.Group{}, err
	}
	return group, nil
}

func (g *groupPG) AddMember(ctx context.Context, m domain.Membership) error {
	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := kpgintr.AssertGroups(ctx, tx, domain.PolicyNotDeleted, m.GroupID); err != nil {
		return err
	}
	if err := kpgintr.AssertUsers(ctx, tx, domain.PolicyNotDeleted, m.UserID); err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`
		insert into "memberships"
			("group_id", "user_id", "read", "write", "share_read", "share_write")
		values ($1, $2, $3, $4, $5, $6)
		on conflict ("group_id", "user_id") do update
			set "read" = excluded."read",
				"write" = excluded."write",
				"share_read" = excluded."share_read",
				"share_write" = excluded."share_write"
		`,
		m.GroupID, m.UserID, m.Read, m.Write, m.ShareRead, m.ShareWrite,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (g *groupPG) Membership(ctx context.Context, groupID int64, userID int64) (domain.Membership, error) {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return domain.Membership{}, err
	}
	defer conn.Release()

	return kpgintr.AssertMember(ctx, conn, groupID, userID)
}

func (g *groupPG) UserExistence(ctx context.Context, userIDs []int64) (map[int64]domain.ExistenceResult, error) {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return kpgintr.UserExistence(ctx, conn, userIDs)
}

func (g *groupPG) GroupExistence(ctx context.Context, groupIDs []int64) (map[int64]domain.ExistenceResult, error) {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return kpgintr.GroupExistence(ctx, conn, groupIDs)
}

func (g *groupPG) DeleteUser(ctx context.Context, userID int64) error {
	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// deleting twice is a no-op, but deleting a missing user is an error
	if err := kpgintr.AssertUsers(ctx, tx, domain.PolicyAny, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(
		ctx,
		`
		insert into "user_locks" ("user_id", "lock_type")
		values ($1, 'delete')
		on conflict do nothing
		`,
		userID,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (g *groupPG) DeleteGroup(ctx context.Context, groupID int64) error {
	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := kpgintr.AssertGroups(ctx, tx, domain.PolicyAny, groupID); err != nil {
		return err
	}
	if _, err := tx.Exec(
		ctx,
		`
		insert into "group_locks" ("group_id", "lock_type")
		values ($1, 'delete')
		on conflict do nothing
		`,
		groupID,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
