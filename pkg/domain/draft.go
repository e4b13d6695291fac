package domain

import "time"

// Draft is a staged, uncommitted proposal for a resource's future
// content, scoped to one user. A creation draft has no target; a
// modification draft targets an existing resource.
//
// A draft is not a snapshot: committing it is the caller's business and
// goes through the usual create-resource/create-snapshot path.
type Draft struct {
	ID       int64 // zero until persisted
	UserID   int64
	GroupID  int64
	Type     ResourceType
	TargetID *int64 // nil for creation drafts

	// Payload is an arbitrary JSON document.
	Payload []byte

	CreatedOn  time.Time
	ModifiedOn time.Time
}
