package mocks

import (
	"context"
	"errors"

	"github.com/trialkeep/trialkeep/pkg/domain"
	kdbgroup "github.com/trialkeep/trialkeep/pkg/domain/group/db"
	dbmock "github.com/trialkeep/trialkeep/pkg/domain/internal/db/mock"
)

type GroupInterface struct {
	Impl struct {
		NewUser        func(context.Context, string, string) (domain.User, error)
		NewGroup       func(context.Context, string) (domain.Group, error)
		AddMember      func(context.Context, domain.Membership) error
		Membership     func(context.Context, int64, int64) (domain.Membership, error)
		UserExistence  func(context.Context, []int64) (map[int64]domain.ExistenceResult, error)
		GroupExistence func(context.Context, []int64) (map[int64]domain.ExistenceResult, error)
		DeleteUser     func(context.Context, int64) error
		DeleteGroup    func(context.Context, int64) error
	}
	Calls struct {
		NewUser dbmock.CallLog[struct {
			Username string
			Email    string
		}]
		NewGroup  dbmock.CallLog[struct{ Name string }]
		AddMember dbmock.CallLog[domain.Membership]
		Membership dbmock.CallLog[struct {
			GroupID int64
			UserID  int64
		}]
		UserExistence  dbmock.CallLog[struct{ UserIDs []int64 }]
		GroupExistence dbmock.CallLog[struct{ GroupIDs []int64 }]
		DeleteUser     dbmock.CallLog[struct{ UserID int64 }]
		DeleteGroup    dbmock.CallLog[struct{ GroupID int64 }]
	}
}

func NewGroupInterface() *GroupInterface {
	return &GroupInterface{}
}

var _ kdbgroup.GroupInterface = &GroupInterface{}

func (gi *GroupInterface) NewUser(ctx context.Context, username string, email string) (domain.User, error) {
	gi.Calls.NewUser = append(gi.Calls.NewUser, struct {
		Username string
		Email    string
	}{Username: username, Email: email})
	if gi.Impl.NewUser != nil {
		return gi.Impl.NewUser(ctx, username, email)
	}
	panic(errors.New("it should not be called"))
}

func (gi *GroupInterface) NewGroup(ctx context.Context, name string) (domain.Group, error) {
	gi.Calls.NewGroup = append(gi.Calls.NewGroup, struct{ Name string }{Name: name})
	if gi.Impl.NewGroup != nil {
		return gi.Impl.NewGroup(ctx, name)
	}
	panic(errors.New("it should not be called"))
}

func (gi *GroupInterface) AddMember(ctx context.Context, m domain.Membership) error {
	gi.Calls.AddMember = append(gi.Calls.AddMember, m)
	if gi.Impl.AddMember != nil {
		return gi.Impl.AddMember(ctx, m)
	}
	panic(errors.New("it should not be called"))
}

func (gi *GroupInterface) Membership(ctx context.Context, groupID int64, userID int64) (domain.Membership, error) {
	gi.Calls.Membership = append(gi.Calls.Membership, struct {
		GroupID int64
		UserID  int64
	}{GroupID: groupID, UserID: userID})
	if gi.Impl.Membership != nil {
		return gi.Impl.Membership(ctx, groupID, userID)
	}
	panic(errors.New("it should not be called"))
}

func (gi *GroupInterface) UserExistence(ctx context.Context, userIDs []int64) (map[int64]domain.ExistenceResult, error) {
	gi.Calls.UserExistence = append(gi.Calls.UserExistence, struct{ UserIDs []int64 }{UserIDs: userIDs})
	if gi.Impl.UserExistence != nil {
		return gi.Impl.UserExistence(ctx, userIDs)
	}
	panic(errors.New("it should not be called"))
}

func (gi *GroupInterface) GroupExistence(ctx context.Context, groupIDs []int64) (map[int64]domain.ExistenceResult, error) {
	gi.Calls.GroupExistence = append(gi.Calls.GroupExistence, struct{ GroupIDs []int64 }{GroupIDs: groupIDs})
	if gi.Impl.GroupExistence != nil {
		return gi.Impl.GroupExistence(ctx, groupIDs)
	}
	panic(errors.New("it should not be called"))
}

func (gi *GroupInterface) DeleteUser(ctx context.Context, userID int64) error {
	gi.Calls.DeleteUser = append(gi.Calls.DeleteUser, struct{ UserID int64 }{UserID: userID})
	if gi.Impl.DeleteUser != nil {
		return gi.Impl.DeleteUser(ctx, userID)
	}
	panic(errors.New("it should not be called"))
}

func (gi *GroupInterface) DeleteGroup(ctx context.Context, groupID int64) error {
	gi.Calls.DeleteGroup = append(gi.Calls.DeleteGroup, struct{ GroupID int64 }{GroupID: groupID})
	if gi.Impl.DeleteGroup != nil {
		return gi.Impl.DeleteGroup(ctx, groupID)
	}
	panic(errors.New("it should not be called"))
}
