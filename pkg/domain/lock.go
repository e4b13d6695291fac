package domain

import (
	"errors"
	"fmt"
	"time"

	domerr "github.com/trialkeep/trialkeep/pkg/domain/errors"
)

var ErrUnknownLockType = errors.New("unknown lock type")

// LockType is a flag attached to a Resource altering its visibility or
// mutability. Locks are append-only: once written they are never removed.
type LockType string

const (
	// LockDelete hides the resource and all of its snapshots from
	// default queries. Terminal.
	LockDelete LockType = "delete"

	// LockReadOnly blocks creation of new snapshots but keeps the
	// resource visible.
	LockReadOnly LockType = "readonly"
)

func (l LockType) String() string {
	return string(l)
}

func AsLockType(s string) (LockType, error) {
	switch LockType(s) {
	case LockDelete:
		return LockDelete, nil
	case LockReadOnly:
		return LockReadOnly, nil
	default:
		return LockType(s), fmt.Errorf("%w: %s", ErrUnknownLockType, s)
	}
}

// ResourceLock is one row of the append-only lock log.
type ResourceLock struct {
	ResourceID int64
	Type       LockType
	CreatedOn  time.Time
}

// CanAddLock validates one transition of the per-resource lock state
// machine:
//
//	LIVE -> READONLY -> (READONLY+DELETED)
//	LIVE -> DELETED
//
// DELETED is terminal. A DELETE lock may be layered onto a READONLY
// resource; nothing else may. Re-adding a lock already present is the
// caller's no-op, not a transition, and must be filtered out before
// calling here.
func CanAddLock(current []LockType, adding LockType) error {
	for _, c := range current {
		if c == LockDelete {
			return domerr.ErrDeleted
		}
	}
	if adding == LockDelete {
		return nil
	}
	for _, c := range current {
		if c == LockReadOnly {
			return domerr.ErrReadOnlyLock
		}
	}
	return nil
}

// HasLock tells whether locks contains t.
func HasLock(locks []LockType, t LockType) bool {
	for _, l := range locks {
		if l == t {
			return true
		}
	}
	return false
}
