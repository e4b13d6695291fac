package mocks

import (
	"context"
	"errors"

	"github.com/trialkeep/trialkeep/pkg/domain"
	dbmock "github.com/trialkeep/trialkeep/pkg/domain/internal/db/mock"
	kdbsnapshot "github.com/trialkeep/trialkeep/pkg/domain/snapshot/db"
)

type SnapshotInterface[S domain.Snapshot] struct {
	Impl struct {
		NewResource    func(context.Context, S) (S, error)
		NewSnapshot    func(context.Context, S) (S, error)
		Latest         func(context.Context, []int64, domain.DeletionPolicy) (map[int64]S, error)
		LatestOne      func(context.Context, domain.ResourceRef, domain.DeletionPolicy) (S, error)
		ByName         func(context.Context, int64, []string, domain.DeletionPolicy) (map[string]S, error)
		OneByName      func(context.Context, int64, string, domain.DeletionPolicy) (S, error)
		LatestChildren func(context.Context, domain.ResourceRef, domain.DeletionPolicy) ([]S, error)
		List           func(context.Context, kdbsnapshot.ListQuery) (kdbsnapshot.Page[S], error)
	}
	Calls struct {
		NewResource dbmock.CallLog[S]
		NewSnapshot dbmock.CallLog[S]
		Latest      dbmock.CallLog[struct {
			ResourceIDs []int64
			Policy      domain.DeletionPolicy
		}]
		LatestOne dbmock.CallLog[struct {
			Ref    domain.ResourceRef
			Policy domain.DeletionPolicy
		}]
		ByName dbmock.CallLog[struct {
			GroupID int64
			Names   []string
			Policy  domain.DeletionPolicy
		}]
		OneByName dbmock.CallLog[struct {
			GroupID int64
			Name    string
			Policy  domain.DeletionPolicy
		}]
		LatestChildren dbmock.CallLog[struct {
			Parent domain.ResourceRef
			Policy domain.DeletionPolicy
		}]
		List dbmock.CallLog[kdbsnapshot.ListQuery]
	}
}

func NewSnapshotInterface[S domain.Snapshot]() *SnapshotInterface[S] {
	return &SnapshotInterface[S]{}
}

func (si *SnapshotInterface[S]) NewResource(ctx context.Context, snap S) (S, error) {
	si.Calls.NewResource = append(si.Calls.NewResource, snap)
	if si.Impl.NewResource != nil {
		return si.Impl.NewResource(ctx, snap)
	}
	panic(errors.New("it should not be called"))
}

func (si *SnapshotInterface[S]) NewSnapshot(ctx context.Context, snap S) (S, error) {
	si.Calls.NewSnapshot = append(si.Calls.NewSnapshot, snap)
	if si.Impl.NewSnapshot != nil {
		return si.Impl.NewSnapshot(ctx, snap)
	}
	panic(errors.New("it should not be called"))
}

func (si *SnapshotInterface[S]) Latest(ctx context.Context, resourceIDs []int64, policy domain.DeletionPolicy) (map[int64]S, error) {
	si.Calls.Latest = append(si.Calls.Latest, struct {
		ResourceIDs []int64
		Policy      domain.DeletionPolicy
	}{ResourceIDs: resourceIDs, Policy: policy})
	if si.Impl.Latest != nil {
		return si.Impl.Latest(ctx, resourceIDs, policy)
	}
	panic(errors.New("it should not be called"))
}

func (si *SnapshotInterface[S]) LatestOne(ctx context.Context, ref domain.ResourceRef, policy domain.DeletionPolicy) (S, error) {
	si.Calls.LatestOne = append(si.Calls.LatestOne, struct {
		Ref    domain.ResourceRef
		Policy domain.DeletionPolicy
	}{Ref: ref, Policy: policy})
	if si.Impl.LatestOne != nil {
		return si.Impl.LatestOne(ctx, ref, policy)
	}
	panic(errors.New("it should not be called"))
}

func (si *SnapshotInterface[S]) ByName(ctx context.Context, groupID int64, names []string, policy domain.DeletionPolicy) (map[string]S, error) {
	si.Calls.ByName = append(si.Calls.ByName, struct {
		GroupID int64
		Names   []string
		Policy  domain.DeletionPolicy
	}{GroupID: groupID, Names: names, Policy: policy})
	if si.Impl.ByName != nil {
		return si.Impl.ByName(ctx, groupID, names, policy)
	}
	panic(errors.New("it should not be called"))
}

func (si *SnapshotInterface[S]) OneByName(ctx context.Context, groupID int64, name string, policy domain.DeletionPolicy) (S, error) {
	si.Calls.OneByName = append(si.Calls.OneByName, struct {
		GroupID int64
		Name    string
		Policy  domain.DeletionPolicy
	}{GroupID: groupID, Name: name, Policy: policy})
	if si.Impl.OneByName != nil {
		return si.Impl.OneByName(ctx, groupID, name, policy)
	}
	panic(errors.New("it should not be called"))
}

func (si *SnapshotInterface[S]) LatestChildren(ctx context.Context, parent domain.ResourceRef, policy domain.DeletionPolicy) ([]S, error) {
	si.Calls.LatestChildren = append(si.Calls.LatestChildren, struct {
		Parent domain.ResourceRef
		Policy domain.DeletionPolicy
	}{Parent: parent, Policy: policy})
	if si.Impl.LatestChildren != nil {
		return si.Impl.LatestChildren(ctx, parent, policy)
	}
	panic(errors.New("it should not be called"))
}

func (si *SnapshotInterface[S]) List(ctx context.Context, q kdbsnapshot.ListQuery) (kdbsnapshot.Page[S], error) {
	si.Calls.List = append(si.Calls.List, q)
	if si.Impl.List != nil {
		return si.Impl.List(ctx, q)
	}
	panic(errors.New("it should not be called"))
}
