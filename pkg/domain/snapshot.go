package domain

import "time"

// SnapshotCore is the part every snapshot subtype shares.
//
// Snapshots are append-only: a new version of a resource is a brand-new
// snapshot row, never an update of an existing one.
type SnapshotCore struct {
	ID          int64 // snapshot id; zero until persisted
	ResourceID  int64
	Type        ResourceType
	CreatedBy   int64 // user id
	Description string
	CreatedOn   time.Time

	// GroupID is the owning group, denormalized from the identity
	// at read time. Writers may leave it zero and set Resource instead.
	GroupID int64

	// Resource is the associated identity, when the caller has it.
	// A freshly built snapshot may carry its identity only here,
	// before ResourceID is synchronized.
	Resource *Resource
}

func (c *SnapshotCore) Core() *SnapshotCore {
	return c
}

// ResourceRef resolves the owning resource id, falling back to the
// associated Resource for snapshots whose foreign key is not yet set.
func (c *SnapshotCore) ResourceRef() (int64, bool) {
	if c == nil {
		return 0, false
	}
	if c.ResourceID != 0 {
		return c.ResourceID, true
	}
	if c.Resource != nil {
		return c.Resource.ResourceRef()
	}
	return 0, false
}

// OwnerGroup resolves the owning group id from the core or the associated identity.
func (c *SnapshotCore) OwnerGroup() (int64, bool) {
	if c.GroupID != 0 {
		return c.GroupID, true
	}
	if c.Resource != nil && c.Resource.GroupID != 0 {
		return c.Resource.GroupID, true
	}
	return 0, false
}

// Snapshot is one immutable version of a resource's content.
type Snapshot interface {
	ResourceRef

	Core() *SnapshotCore

	// ResourceName is the name the snapshot claims for its resource.
	// Name uniqueness is scoped to (group, resource type, latest snapshot).
	ResourceName() string
}

type Queue struct {
	SnapshotCore
	Name string
}

func (q *Queue) ResourceName() string { return q.Name }

type Plugin struct {
	SnapshotCore
	Name string
}

func (p *Plugin) ResourceName() string { return p.Name }

type PluginFile struct {
	SnapshotCore
	Filename string
	Contents string
}

func (p *PluginFile) ResourceName() string { return p.Filename }

type EntryPoint struct {
	SnapshotCore
	Name      string
	TaskGraph string
}

func (e *EntryPoint) ResourceName() string { return e.Name }

type Experiment struct {
	SnapshotCore
	Name string
}

func (e *Experiment) ResourceName() string { return e.Name }

type Job struct {
	SnapshotCore
	Name    string
	Timeout string
}

func (j *Job) ResourceName() string { return j.Name }

type MLModel struct {
	SnapshotCore
	Name string
}

func (m *MLModel) ResourceName() string { return m.Name }

type Artifact struct {
	SnapshotCore
	URI string
}

func (a *Artifact) ResourceName() string { return a.URI }
