package postgres

import (
	"errors"
	"fmt"

	"github.com/trialkeep/trialkeep/pkg/domain"
	domerr "github.com/trialkeep/trialkeep/pkg/domain/errors"
)

// requested entity is missing (under the active deletion policy).
type DoesNotExist struct {
	Table    string
	Identity string
}

var _ error = DoesNotExist{}

func (e DoesNotExist) Error() string {
	return fmt.Sprintf("%s is not found in %s", e.Identity, e.Table)
}
func (e DoesNotExist) Unwrap() error {
	return domerr.ErrDoesNotExist
}

// entity exists although the operation demanded its absence,
// or demanded a deleted one and found it live.
type AlreadyExists struct {
	Table    string
	Identity string
}

var _ error = AlreadyExists{}

func (e AlreadyExists) Error() string {
	return fmt.Sprintf("%s already exists in %s", e.Identity, e.Table)
}
func (e AlreadyExists) Unwrap() error {
	return domerr.ErrAlreadyExists
}

// entity is soft-deleted although the operation demanded it be live.
type IsDeleted struct {
	Table    string
	Identity string
}

var _ error = IsDeleted{}

func (e IsDeleted) Error() string {
	return fmt.Sprintf("%s in %s is deleted", e.Identity, e.Table)
}
func (e IsDeleted) Unwrap() error {
	return domerr.ErrDeleted
}

// resource carries a READONLY lock and refused a write.
type ReadOnly struct {
	Identity string
}

var _ error = ReadOnly{}

func (e ReadOnly) Error() string {
	return fmt.Sprintf("resource %s is read-only", e.Identity)
}
func (e ReadOnly) Unwrap() error {
	return domerr.ErrReadOnlyLock
}

// snapshot creator does not belong to the owning group.
type NotInGroup struct {
	UserID  int64
	GroupID int64
}

var _ error = NotInGroup{}

func (e NotInGroup) Error() string {
	return fmt.Sprintf("user %d is not a member of group %d", e.UserID, e.GroupID)
}
func (e NotInGroup) Unwrap() error {
	return domerr.ErrNotInGroup
}

// a snapshot's declared type disagrees with what the operation expects.
type TypeMismatch struct {
	Expected domain.ResourceType
	Actual   domain.ResourceType
	Identity string
}

var _ error = TypeMismatch{}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf(
		"%s has resource type %s, expected %s",
		e.Identity, e.Actual, e.Expected,
	)
}
func (e TypeMismatch) Unwrap() error {
	return domerr.ErrTypeMismatch
}

// adding a dependency edge would make the child reach its own parent.
type DependencyCycle struct {
	ParentID int64
	ChildID  int64
}

var _ error = DependencyCycle{}

func (e DependencyCycle) Error() string {
	return fmt.Sprintf(
		"dependency %d -> %d would close a cycle",
		e.ParentID, e.ChildID,
	)
}
func (e DependencyCycle) Unwrap() error {
	return domerr.ErrDependencyCycle
}

// lookup expecting exactly one row matched several.
type TooMany struct {
	Table    string
	Identity string
	Expected int
}

var _ error = TooMany{}

func (e TooMany) Error() string {
	return fmt.Sprintf(
		"%s is found in %s more than %d times",
		e.Identity, e.Table, e.Expected,
	)
}
func (e TooMany) Unwrap() error {
	return domerr.ErrTooMany
}

// ForExistence converts a verdict of the pure deletion-policy matrix
// (domain.CheckExistence and friends) into a table/identity-flavored error.
// A nil verdict stays nil.
func ForExistence(verdict error, table string, identity string) error {
	switch {
	case verdict == nil:
		return nil
	case errors.Is(verdict, domerr.ErrDoesNotExist):
		return DoesNotExist{Table: table, Identity: identity}
	case errors.Is(verdict, domerr.ErrDeleted):
		return IsDeleted{Table: table, Identity: identity}
	case errors.Is(verdict, domerr.ErrAlreadyExists):
		return AlreadyExists{Table: table, Identity: identity}
	default:
		return verdict
	}
}
