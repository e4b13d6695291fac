// Package errors declares the error taxonomy of the trialkeep core.
//
// Storage layers wrap these sentinels with context
// (see pkg/domain/errors/dberrors/postgres); HTTP layers map them to
// status codes. Test with errors.Is against the sentinels.
package errors

import "errors"

var (
	// ErrDoesNotExist : a referenced id or name resolves to nothing
	// under the active deletion policy.
	ErrDoesNotExist = errors.New("entity does not exist")

	// ErrAlreadyExists : an entity exists when the policy demanded its
	// absence, or demanded a deleted entity but found a live one.
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrDeleted : an entity is soft-deleted when the policy demanded it be live.
	ErrDeleted = errors.New("entity is deleted")

	// ErrReadOnlyLock : attempted to modify a resource carrying a READONLY lock.
	ErrReadOnlyLock = errors.New("resource is read-only")

	// ErrNotInGroup : a snapshot creator is not a member of the
	// resource's owning group.
	ErrNotInGroup = errors.New("user is not a member of the group")

	// ErrTypeMismatch : a snapshot's resource type disagrees with the
	// type expected by the operation or recorded on its resource.
	ErrTypeMismatch = errors.New("mismatched resource type")

	// ErrDependencyCycle : adding a dependency edge would close a cycle.
	ErrDependencyCycle = errors.New("dependency cycle")

	// ErrSearchParse : a search clause references an unsupported field.
	ErrSearchParse = errors.New("unparsable search query")

	// ErrSortParameter : a requested sort key is not in the allow-list.
	ErrSortParameter = errors.New("unsupported sort parameter")

	// ErrTooMany : a lookup expecting exactly one entity matched several.
	ErrTooMany = errors.New("entity matched more than once")
)
