package domain

import "time"

// User is a principal. Users are not resource-versioned; deletion is a
// lock row in user_locks, mirroring the resource lock pattern.
type User struct {
	ID        int64
	Username  string
	Email     string
	CreatedOn time.Time
}

// Group owns resources. Deletion mirrors the resource lock pattern via
// group_locks.
type Group struct {
	ID        int64
	Name      string
	CreatedOn time.Time
}

// Membership is a user's permission set inside one group.
type Membership struct {
	GroupID    int64
	UserID     int64
	Read       bool
	Write      bool
	ShareRead  bool
	ShareWrite bool
}

// SharedResource is a cross-group grant on one resource.
type SharedResource struct {
	ResourceID int64
	GroupID    int64
	Read       bool
	Write      bool
}
