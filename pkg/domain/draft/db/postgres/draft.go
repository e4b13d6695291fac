package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	kpool "github.com/trialkeep/trialkeep/pkg/conn/postgres/pool"
	"github.com/trialkeep/trialkeep/pkg/domain"
	kpgerr "github.com/trialkeep/trialkeep/pkg/domain/errors/dberrors/postgres"
	kpgintr "github.com/trialkeep/trialkeep/pkg/domain/internal/db/postgres"
)

type draftPG struct { // implements db.DraftInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *draftPG {
	return &draftPG{pool: pool}
}

const draftColumns = `
	"draft_id", "user_id", "group_id", "resource_type",
	"target_id", "payload", "created_on", "modified_on"
`

func scanDraft(row pgx.Row) (domain.Draft, error) {
	var d domain.Draft
	var rawType string
	var payload pgtype.JSONB
	if err := row.Scan(
		&d.ID, &d.UserID, &d.GroupID, &rawType,
		&d.TargetID, &payload, &d.CreatedOn, &d.ModifiedOn,
	); err != nil {
		return domain.Draft{}, err
	}
	t, err := domain.AsResourceType(rawType)
	if err != nil {
		return domain.Draft{}, err
	}
	d.Type = t
	if payload.Status == pgtype.Present {
		d.Payload = payload.Bytes
	}
	return d, nil
}

func jsonbOf(payload []byte) pgtype.JSONB {
	if payload == nil {
		return pgtype.JSONB{Status: pgtype.Null}
	}
	return pgtype.JSONB{Bytes: payload, Status: pgtype.Present}
}

func (p *draftPG) Put(ctx context.Context, draft domain.Draft) (domain.Draft, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return domain.Draft{}, err
	}
	defer tx.Rollback(ctx)

	if err := kpgintr.AssertUsers(ctx, tx, domain.PolicyNotDeleted, draft.UserID); err != nil {
		return domain.Draft{}, err
	}
	if err := kpgintr.AssertGroups(ctx, tx, domain.PolicyNotDeleted, draft.GroupID); err != nil {
		return domain.Draft{}, err
	}
	if _, err := domain.AsResourceType(draft.Type.String()); err != nil {
		return domain.Draft{}, err
	}
	if draft.TargetID != nil {
		if err := kpgintr.AssertResources(ctx, tx, domain.PolicyNotDeleted, *draft.TargetID); err != nil {
			return domain.Draft{}, err
		}
	}

	existingID, err := findDraft(ctx, tx, draft)
	if err != nil {
		return domain.Draft{}, err
	}

	var row pgx.Row
	if existingID != 0 {
		row = tx.QueryRow(
			ctx,
			`
			update "draft_resources"
			set "payload" = $2, "modified_on" = now()
			where "draft_id" = $1
			returning `+draftColumns,
			existingID, jsonbOf(draft.Payload),
		)
	} else {
		row = tx.QueryRow(
			ctx,
			`
			insert into "draft_resources"
				("user_id", "group_id", "resource_type", "target_id", "payload")
			values ($1, $2, $3, $4, $5)
			returning `+draftColumns,
			draft.UserID, draft.GroupID, draft.Type.String(), draft.TargetID, jsonbOf(draft.Payload),
		)
	}
	stored, err := scanDraft(row)
	if err != nil {
		return domain.Draft{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Draft{}, err
	}
	return stored, nil
}

// findDraft locates the draft Put would replace, 0 when none.
func findDraft(ctx context.Context, tx kpool.Tx, draft domain.Draft) (int64, error) {
	var row pgx.Row
	if draft.TargetID != nil {
		row = tx.QueryRow(
			ctx,
			`
			select "draft_id" from "draft_resources"
			where "user_id" = $1 and "target_id" = $2
			for update
			`,
			draft.UserID, *draft.TargetID,
		)
	} else {
		row = tx.QueryRow(
			ctx,
			`
			select "draft_id" from "draft_resources"
			where "user_id" = $1 and "group_id" = $2
				and "resource_type" = $3 and "target_id" is null
			for update
			`,
			draft.UserID, draft.GroupID, draft.Type.String(),
		)
	}
	var id int64
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return id, nil
}

func (p *draftPG) Get(ctx context.Context, draftID int64) (domain.Draft, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return domain.Draft{}, err
	}
	defer conn.Release()

	d, err := scanDraft(conn.QueryRow(
		ctx,
		`select `+draftColumns+` from "draft_resources" where "draft_id" = $1`,
		draftID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Draft{}, kpgerr.DoesNotExist{
				Table: "draft_resources", Identity: kpgintr.Identity(draftID),
			}
		}
		return domain.Draft{}, err
	}
	return d, nil
}

func (p *draftPG) GetByTarget(ctx context.Context, userID int64, target domain.ResourceRef) (domain.Draft, error) {
	targetID, err := kpgintr.RefOf(target)
	if err != nil {
		return domain.Draft{}, err
	}
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return domain.Draft{}, err
	}
	defer conn.Release()

	d, err := scanDraft(conn.QueryRow(
		ctx,
		`select `+draftColumns+` from "draft_resources" where "user_id" = $1 and "target_id" = $2`,
		userID, targetID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Draft{}, kpgerr.DoesNotExist{
				Table: "draft_resources", Identity: kpgintr.Identity(targetID),
			}
		}
		return domain.Draft{}, err
	}
	return d, nil
}

func (p *draftPG) Remove(ctx context.Context, draftID int64) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`delete from "draft_resources" where "draft_id" = $1`,
		draftID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.DoesNotExist{
			Table: "draft_resources", Identity: kpgintr.Identity(draftID),
		}
	}
	return nil
}

func (p *draftPG) Existence(ctx context.Context, draftID int64) (domain.ExistenceResult, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return domain.DoesNotExist, err
	}
	defer conn.Release()

	return kpgintr.DraftExistence(ctx, conn, draftID)
}
