package mocks

import (
	"context"
	"errors"

	"github.com/trialkeep/trialkeep/pkg/domain"
	kdbdraft "github.com/trialkeep/trialkeep/pkg/domain/draft/db"
	dbmock "github.com/trialkeep/trialkeep/pkg/domain/internal/db/mock"
)

type DraftInterface struct {
	Impl struct {
		Put         func(context.Context, domain.Draft) (domain.Draft, error)
		Get         func(context.Context, int64) (domain.Draft, error)
		GetByTarget func(context.Context, int64, domain.ResourceRef) (domain.Draft, error)
		Remove      func(context.Context, int64) error
		Existence   func(context.Context, int64) (domain.ExistenceResult, error)
	}
	Calls struct {
		Put         dbmock.CallLog[domain.Draft]
		Get         dbmock.CallLog[struct{ DraftID int64 }]
		GetByTarget dbmock.CallLog[struct {
			UserID int64
			Target domain.ResourceRef
		}]
		Remove    dbmock.CallLog[struct{ DraftID int64 }]
		Existence dbmock.CallLog[struct{ DraftID int64 }]
	}
}

func NewDraftInterface() *DraftInterface {
	return &DraftInterface{}
}

var _ kdbdraft.DraftInterface = &DraftInterface{}

func (di *DraftInterface) Put(ctx context.Context, draft domain.Draft) (domain.Draft, error) {
	di.Calls.Put = append(di.Calls.Put, draft)
	if di.Impl.Put != nil {
		return di.Impl.Put(ctx, draft)
	}
	panic(errors.New("it should not be called"))
}

func (di *DraftInterface) Get(ctx context.Context, draftID int64) (domain.Draft, error) {
	di.Calls.Get = append(di.Calls.Get, struct{ DraftID int64 }{DraftID: draftID})
	if di.Impl.Get != nil {
		return di.Impl.Get(ctx, draftID)
	}
	panic(errors.New("it should not be called"))
}

func (di *DraftInterface) GetByTarget(ctx context.Context, userID int64, target domain.ResourceRef) (domain.Draft, error) {
	di.Calls.GetByTarget = append(di.Calls.GetByTarget, struct {
		UserID int64
		Target domain.ResourceRef
	}{UserID: userID, Target: target})
	if di.Impl.GetByTarget != nil {
		return di.Impl.GetByTarget(ctx, userID, target)
	}
	panic(errors.New("it should not be called"))
}

func (di *DraftInterface) Remove(ctx context.Context, draftID int64) error {
	di.Calls.Remove = append(di.Calls.Remove, struct{ DraftID int64 }{DraftID: draftID})
	if di.Impl.Remove != nil {
		return di.Impl.Remove(ctx, draftID)
	}
	panic(errors.New("it should not be called"))
}

func (di *DraftInterface) Existence(ctx context.Context, draftID int64) (domain.ExistenceResult, error) {
	di.Calls.Existence = append(di.Calls.Existence, struct{ DraftID int64 }{DraftID: draftID})
	if di.Impl.Existence != nil {
		return di.Impl.Existence(ctx, draftID)
	}
	panic(errors.New("it should not be called"))
}
