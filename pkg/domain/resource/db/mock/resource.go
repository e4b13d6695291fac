package mocks

import (
	"context"
	"errors"

	"github.com/trialkeep/trialkeep/pkg/domain"
	dbmock "github.com/trialkeep/trialkeep/pkg/domain/internal/db/mock"
	kdbresource "github.com/trialkeep/trialkeep/pkg/domain/resource/db"
)

type ResourceInterface struct {
	Impl struct {
		Get                func(context.Context, []int64) (map[int64]domain.Resource, error)
		Existence          func(context.Context, []int64) (map[int64]domain.ExistenceResult, error)
		SnapshotExistence  func(context.Context, []int64) (map[int64]domain.ExistenceResult, error)
		AssertExists       func(context.Context, domain.ResourceRef, domain.DeletionPolicy) error
		AssertDoesNotExist func(context.Context, domain.ResourceRef, domain.DeletionPolicy) error
		AssertAllExist     func(context.Context, []domain.ResourceRef, domain.DeletionPolicy) error
		AssertModifiable   func(context.Context, domain.ResourceRef) error
		LockTypes          func(context.Context, domain.ResourceRef) ([]domain.LockType, error)
		AddLockTypes       func(context.Context, domain.ResourceRef, ...domain.LockType) error
		Delete             func(context.Context, domain.ResourceRef) error
		SetChildren        func(context.Context, domain.ResourceRef, []domain.ResourceRef) error
		AppendChildren     func(context.Context, domain.ResourceRef, []domain.ResourceRef) error
		UnlinkChild        func(context.Context, domain.ResourceRef, domain.ResourceRef) error
		Children           func(context.Context, domain.ResourceRef) ([]domain.Resource, error)
		SetTags            func(context.Context, domain.ResourceRef, []string) error
		Tags               func(context.Context, domain.ResourceRef) ([]string, error)
		Share              func(context.Context, domain.SharedResource) error
		Shares             func(context.Context, domain.ResourceRef) ([]domain.SharedResource, error)
	}
	Calls struct {
		Get               dbmock.CallLog[struct{ ResourceIDs []int64 }]
		Existence         dbmock.CallLog[struct{ ResourceIDs []int64 }]
		SnapshotExistence dbmock.CallLog[struct{ SnapshotIDs []int64 }]
		AssertExists      dbmock.CallLog[struct {
			Ref    domain.ResourceRef
			Policy domain.DeletionPolicy
		}]
		AssertDoesNotExist dbmock.CallLog[struct {
			Ref    domain.ResourceRef
			Policy domain.DeletionPolicy
		}]
		AssertAllExist dbmock.CallLog[struct {
			Refs   []domain.ResourceRef
			Policy domain.DeletionPolicy
		}]
		AssertModifiable dbmock.CallLog[struct{ Ref domain.ResourceRef }]
		LockTypes        dbmock.CallLog[struct{ Ref domain.ResourceRef }]
		AddLockTypes     dbmock.CallLog[struct {
			Ref   domain.ResourceRef
			Locks []domain.LockType
		}]
		Delete      dbmock.CallLog[struct{ Ref domain.ResourceRef }]
		SetChildren dbmock.CallLog[struct {
			Parent   domain.ResourceRef
			Children []domain.ResourceRef
		}]
		AppendChildren dbmock.CallLog[struct {
			Parent   domain.ResourceRef
			Children []domain.ResourceRef
		}]
		UnlinkChild dbmock.CallLog[struct {
			Parent domain.ResourceRef
			Child  domain.ResourceRef
		}]
		Children dbmock.CallLog[struct{ Parent domain.ResourceRef }]
		SetTags  dbmock.CallLog[struct {
			Ref  domain.ResourceRef
			Tags []string
		}]
		Tags   dbmock.CallLog[struct{ Ref domain.ResourceRef }]
		Share  dbmock.CallLog[domain.SharedResource]
		Shares dbmock.CallLog[struct{ Ref domain.ResourceRef }]
	}
}

func NewResourceInterface() *ResourceInterface {
	return &ResourceInterface{}
}

var _ kdbresource.ResourceInterface = &ResourceInterface{}

func (ri *ResourceInterface) Get(ctx context.Context, resourceIDs []int64) (map[int64]domain.Resource, error) {
	ri.Calls.Get = append(ri.Calls.Get, struct{ ResourceIDs []int64 }{ResourceIDs: resourceIDs})
	if ri.Impl.Get != nil {
		return ri.Impl.Get(ctx, resourceIDs)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) Existence(ctx context.Context, resourceIDs []int64) (map[int64]domain.ExistenceResult, error) {
	ri.Calls.Existence = append(ri.Calls.Existence, struct{ ResourceIDs []int64 }{ResourceIDs: resourceIDs})
	if ri.Impl.Existence != nil {
		return ri.Impl.Existence(ctx, resourceIDs)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) SnapshotExistence(ctx context.Context, snapshotIDs []int64) (map[int64]domain.ExistenceResult, error) {
	ri.Calls.SnapshotExistence = append(ri.Calls.SnapshotExistence, struct{ SnapshotIDs []int64 }{SnapshotIDs: snapshotIDs})
	if ri.Impl.SnapshotExistence != nil {
		return ri.Impl.SnapshotExistence(ctx, snapshotIDs)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) AssertExists(ctx context.Context, ref domain.ResourceRef, policy domain.DeletionPolicy) error {
	ri.Calls.AssertExists = append(ri.Calls.AssertExists, struct {
		Ref    domain.ResourceRef
		Policy domain.DeletionPolicy
	}{Ref: ref, Policy: policy})
	if ri.Impl.AssertExists != nil {
		return ri.Impl.AssertExists(ctx, ref, policy)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) AssertDoesNotExist(ctx context.Context, ref domain.ResourceRef, policy domain.DeletionPolicy) error {
	ri.Calls.AssertDoesNotExist = append(ri.Calls.AssertDoesNotExist, struct {
		Ref    domain.ResourceRef
		Policy domain.DeletionPolicy
	}{Ref: ref, Policy: policy})
	if ri.Impl.AssertDoesNotExist != nil {
		return ri.Impl.AssertDoesNotExist(ctx, ref, policy)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) AssertAllExist(ctx context.Context, refs []domain.ResourceRef, policy domain.DeletionPolicy) error {
	ri.Calls.AssertAllExist = append(ri.Calls.AssertAllExist, struct {
		Refs   []domain.ResourceRef
		Policy domain.DeletionPolicy
	}{Refs: refs, Policy: policy})
	if ri.Impl.AssertAllExist != nil {
		return ri.Impl.AssertAllExist(ctx, refs, policy)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) AssertModifiable(ctx context.Context, ref domain.ResourceRef) error {
	ri.Calls.AssertModifiable = append(ri.Calls.AssertModifiable, struct{ Ref domain.ResourceRef }{Ref: ref})
	if ri.Impl.AssertModifiable != nil {
		return ri.Impl.AssertModifiable(ctx, ref)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) LockTypes(ctx context.Context, ref domain.ResourceRef) ([]domain.LockType, error) {
	ri.Calls.LockTypes = append(ri.Calls.LockTypes, struct{ Ref domain.ResourceRef }{Ref: ref})
	if ri.Impl.LockTypes != nil {
		return ri.Impl.LockTypes(ctx, ref)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) AddLockTypes(ctx context.Context, ref domain.ResourceRef, locks ...domain.LockType) error {
	ri.Calls.AddLockTypes = append(ri.Calls.AddLockTypes, struct {
		Ref   domain.ResourceRef
		Locks []domain.LockType
	}{Ref: ref, Locks: locks})
	if ri.Impl.AddLockTypes != nil {
		return ri.Impl.AddLockTypes(ctx, ref, locks...)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) Delete(ctx context.Context, ref domain.ResourceRef) error {
	ri.Calls.Delete = append(ri.Calls.Delete, struct{ Ref domain.ResourceRef }{Ref: ref})
	if ri.Impl.Delete != nil {
		return ri.Impl.Delete(ctx, ref)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) SetChildren(ctx context.Context, parent domain.ResourceRef, children []domain.ResourceRef) error {
	ri.Calls.SetChildren = append(ri.Calls.SetChildren, struct {
		Parent   domain.ResourceRef
		Children []domain.ResourceRef
	}{Parent: parent, Children: children})
	if ri.Impl.SetChildren != nil {
		return ri.Impl.SetChildren(ctx, parent, children)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) AppendChildren(ctx context.Context, parent domain.ResourceRef, children []domain.ResourceRef) error {
	ri.Calls.AppendChildren = append(ri.Calls.AppendChildren, struct {
		Parent   domain.ResourceRef
		Children []domain.ResourceRef
	}{Parent: parent, Children: children})
	if ri.Impl.AppendChildren != nil {
		return ri.Impl.AppendChildren(ctx, parent, children)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) UnlinkChild(ctx context.Context, parent domain.ResourceRef, child domain.ResourceRef) error {
	ri.Calls.UnlinkChild = append(ri.Calls.UnlinkChild, struct {
		Parent domain.ResourceRef
		Child  domain.ResourceRef
	}{Parent: parent, Child: child})
	if ri.Impl.UnlinkChild != nil {
		return ri.Impl.UnlinkChild(ctx, parent, child)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) Children(ctx context.Context, parent domain.ResourceRef) ([]domain.Resource, error) {
	ri.Calls.Children = append(ri.Calls.Children, struct{ Parent domain.ResourceRef }{Parent: parent})
	if ri.Impl.Children != nil {
		return ri.Impl.Children(ctx, parent)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) SetTags(ctx context.Context, ref domain.ResourceRef, tags []string) error {
	ri.Calls.SetTags = append(ri.Calls.SetTags, struct {
		Ref  domain.ResourceRef
		Tags []string
	}{Ref: ref, Tags: tags})
	if ri.Impl.SetTags != nil {
		return ri.Impl.SetTags(ctx, ref, tags)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) Tags(ctx context.Context, ref domain.ResourceRef) ([]string, error) {
	ri.Calls.Tags = append(ri.Calls.Tags, struct{ Ref domain.ResourceRef }{Ref: ref})
	if ri.Impl.Tags != nil {
		return ri.Impl.Tags(ctx, ref)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) Share(ctx context.Context, share domain.SharedResource) error {
	ri.Calls.Share = append(ri.Calls.Share, share)
	if ri.Impl.Share != nil {
		return ri.Impl.Share(ctx, share)
	}
	panic(errors.New("it should not be called"))
}

func (ri *ResourceInterface) Shares(ctx context.Context, ref domain.ResourceRef) ([]domain.SharedResource, error) {
	ri.Calls.Shares = append(ri.Calls.Shares, struct{ Ref domain.ResourceRef }{Ref: ref})
	if ri.Impl.Shares != nil {
		return ri.Impl.Shares(ctx, ref)
	}
	panic(errors.New("it should not be called"))
}
