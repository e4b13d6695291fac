package domain

import (
	"fmt"

	domerr "github.com/trialkeep/trialkeep/pkg/domain/errors"
)

// ExistenceResult is the three-way outcome of probing an entity's presence.
type ExistenceResult int

const (
	DoesNotExist ExistenceResult = iota
	Exists
	Deleted
)

func (r ExistenceResult) String() string {
	switch r {
	case DoesNotExist:
		return "does-not-exist"
	case Exists:
		return "exists"
	case Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("existence-result(%d)", int(r))
	}
}

// DeletionPolicy is a caller's stated tolerance for an entity's
// deletion state during a lookup.
type DeletionPolicy int

const (
	// PolicyAny accepts live and deleted entities alike.
	PolicyAny DeletionPolicy = iota

	// PolicyNotDeleted accepts live entities only.
	PolicyNotDeleted

	// PolicyDeleted accepts soft-deleted entities only.
	PolicyDeleted
)

func (p DeletionPolicy) String() string {
	switch p {
	case PolicyAny:
		return "any"
	case PolicyNotDeleted:
		return "not-deleted"
	case PolicyDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("deletion-policy(%d)", int(p))
	}
}

// CheckExistence decides whether an observed existence state satisfies
// the policy. It returns nil, or the taxonomy error naming the violation:
//
//   - any policy  : DoesNotExist -> ErrDoesNotExist
//   - NotDeleted  : Deleted      -> ErrDeleted
//   - Deleted     : Exists       -> ErrAlreadyExists
func CheckExistence(got ExistenceResult, policy DeletionPolicy) error {
	if got == DoesNotExist {
		return domerr.ErrDoesNotExist
	}
	switch policy {
	case PolicyNotDeleted:
		if got == Deleted {
			return domerr.ErrDeleted
		}
	case PolicyDeleted:
		if got == Exists {
			return domerr.ErrAlreadyExists
		}
	}
	return nil
}

// CheckNonExistence is the mirror of CheckExistence: it returns an error
// exactly when the entity does exist in the sense of the policy.
func CheckNonExistence(got ExistenceResult, policy DeletionPolicy) error {
	if CheckExistence(got, policy) != nil {
		return nil
	}
	if got == Deleted {
		return domerr.ErrDeleted
	}
	return domerr.ErrAlreadyExists
}

// CheckAllExist reduces many per-item existence results to one outcome
// with an "all must satisfy" quantifier. Any DoesNotExist is fatal
// regardless of policy; under NotDeleted any Deleted is fatal; under
// Deleted any live entity is fatal.
func CheckAllExist(got []ExistenceResult, policy DeletionPolicy) error {
	for _, g := range got {
		if err := CheckExistence(g, policy); err != nil {
			return err
		}
	}
	return nil
}
