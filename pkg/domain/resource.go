package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownResourceType = errors.New("unknown resource type")

// ResourceType tags which kind of entity a Resource (and its snapshots) is.
//
// Users and groups are deliberately not here: they are principals, not
// versioned resources.
type ResourceType string

const (
	TypeQueue      ResourceType = "queue"
	TypePlugin     ResourceType = "plugin"
	TypePluginFile ResourceType = "plugin_file"
	TypeEntryPoint ResourceType = "entry_point"
	TypeExperiment ResourceType = "experiment"
	TypeJob        ResourceType = "job"
	TypeMLModel    ResourceType = "ml_model"
	TypeArtifact   ResourceType = "artifact"
)

func (t ResourceType) String() string {
	return string(t)
}

func ResourceTypes() []ResourceType {
	return []ResourceType{
		TypeQueue, TypePlugin, TypePluginFile, TypeEntryPoint,
		TypeExperiment, TypeJob, TypeMLModel, TypeArtifact,
	}
}

func AsResourceType(s string) (ResourceType, error) {
	for _, t := range ResourceTypes() {
		if ResourceType(s) == t {
			return t, nil
		}
	}
	return ResourceType(s), fmt.Errorf("%w: %s", ErrUnknownResourceType, s)
}

// DependencyRules is the parent/child type allow-list for the dependency DAG.
//
// An edge parent -> child may exist only if
// DependencyRules[parent type] contains the child type.
var DependencyRules = map[ResourceType][]ResourceType{
	TypeEntryPoint: {TypePlugin, TypeQueue},
	TypePlugin:     {TypePluginFile},
	TypeExperiment: {TypeEntryPoint},
	TypeJob:        {TypeEntryPoint, TypeQueue, TypeArtifact},
}

// DependencyAllowed tells whether a parent of type p may depend on a child of type c.
func DependencyAllowed(p, c ResourceType) bool {
	for _, allowed := range DependencyRules[p] {
		if allowed == c {
			return true
		}
	}
	return false
}

// Resource is the permanent identity of a domain object.
//
// Its content lives in snapshots; Resource itself never changes after
// creation. Deletion and read-only state are lock rows, not fields here.
type Resource struct {
	ID        int64 // zero until persisted
	GroupID   int64
	Type      ResourceType
	CreatedOn time.Time
}

// ResourceRef is anything that can stand in for a resource identity:
// a live Resource, a snapshot of it, or a bare numeric id.
type ResourceRef interface {
	// ResourceRef resolves to the numeric resource id.
	// ok is false when the referent has not been persisted yet.
	ResourceRef() (id int64, ok bool)
}

// ID as a ResourceRef.
type ID int64

func (i ID) ResourceRef() (int64, bool) {
	return int64(i), i != 0
}

func (r *Resource) ResourceRef() (int64, bool) {
	if r == nil {
		return 0, false
	}
	return r.ID, r.ID != 0
}
