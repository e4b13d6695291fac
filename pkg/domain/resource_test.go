package domain_test

import (
	"errors"
	"testing"

	"github.com/trialkeep/trialkeep/pkg/domain"
)

func TestAsResourceType(t *testing.T) {
	for _, ty := range domain.ResourceTypes() {
		actual, err := domain.AsResourceType(ty.String())
		if err != nil {
			t.Errorf("%s: unexpected error: %v", ty, err)
		}
		if actual != ty {
			t.Errorf("%s: got %s", ty, actual)
		}
	}

	if _, err := domain.AsResourceType("notebook"); !errors.Is(err, domain.ErrUnknownResourceType) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestDependencyAllowed(t *testing.T) {
	for name, testcase := range map[string]struct {
		parent domain.ResourceType
		child  domain.ResourceType
		want   bool
	}{
		"entry point may depend on plugin": {
			parent: domain.TypeEntryPoint, child: domain.TypePlugin, want: true,
		},
		"entry point may depend on queue": {
			parent: domain.TypeEntryPoint, child: domain.TypeQueue, want: true,
		},
		"plugin may depend on plugin file": {
			parent: domain.TypePlugin, child: domain.TypePluginFile, want: true,
		},
		"experiment may depend on entry point": {
			parent: domain.TypeExperiment, child: domain.TypeEntryPoint, want: true,
		},
		"job may depend on artifact": {
			parent: domain.TypeJob, child: domain.TypeArtifact, want: true,
		},
		"the rule is directed": {
			parent: domain.TypePlugin, child: domain.TypeEntryPoint, want: false,
		},
		"queue may depend on nothing": {
			parent: domain.TypeQueue, child: domain.TypePlugin, want: false,
		},
		"no type may depend on experiments": {
			parent: domain.TypeJob, child: domain.TypeExperiment, want: false,
		},
	} {
		t.Run(name, func(t *testing.T) {
			actual := domain.DependencyAllowed(testcase.parent, testcase.child)
			if actual != testcase.want {
				t.Errorf("got %v, want %v", actual, testcase.want)
			}
		})
	}
}

func TestResourceRef(t *testing.T) {
	t.Run("bare id resolves to itself", func(t *testing.T) {
		id, ok := domain.ID(42).ResourceRef()
		if !ok || id != 42 {
			t.Errorf("got (%d, %v)", id, ok)
		}
	})

	t.Run("zero id is unpersisted", func(t *testing.T) {
		if _, ok := domain.ID(0).ResourceRef(); ok {
			t.Error("zero id should not resolve")
		}
	})

	t.Run("persisted resource resolves", func(t *testing.T) {
		res := &domain.Resource{ID: 7, GroupID: 1, Type: domain.TypeQueue}
		id, ok := res.ResourceRef()
		if !ok || id != 7 {
			t.Errorf("got (%d, %v)", id, ok)
		}
	})

	t.Run("unsaved resource does not resolve", func(t *testing.T) {
		res := &domain.Resource{GroupID: 1, Type: domain.TypeQueue}
		if _, ok := res.ResourceRef(); ok {
			t.Error("unsaved resource should not resolve")
		}
	})

	t.Run("nil resource does not resolve", func(t *testing.T) {
		var res *domain.Resource
		if _, ok := res.ResourceRef(); ok {
			t.Error("nil resource should not resolve")
		}
	})

	t.Run("snapshot prefers its foreign key", func(t *testing.T) {
		q := &domain.Queue{
			SnapshotCore: domain.SnapshotCore{
				ResourceID: 3,
				Resource:   &domain.Resource{ID: 99},
			},
		}
		id, ok := q.ResourceRef()
		if !ok || id != 3 {
			t.Errorf("got (%d, %v)", id, ok)
		}
	})

	t.Run("snapshot falls back to its identity", func(t *testing.T) {
		q := &domain.Queue{
			SnapshotCore: domain.SnapshotCore{
				Resource: &domain.Resource{ID: 99},
			},
		}
		id, ok := q.ResourceRef()
		if !ok || id != 99 {
			t.Errorf("got (%d, %v)", id, ok)
		}
	})

	t.Run("snapshot with no identity does not resolve", func(t *testing.T) {
		q := &domain.Queue{}
		if _, ok := q.ResourceRef(); ok {
			t.Error("detached snapshot should not resolve")
		}
	})
}

func TestOwnerGroup(t *testing.T) {
	t.Run("core group id wins", func(t *testing.T) {
		c := &domain.SnapshotCore{GroupID: 5, Resource: &domain.Resource{GroupID: 9}}
		g, ok := c.OwnerGroup()
		if !ok || g != 5 {
			t.Errorf("got (%d, %v)", g, ok)
		}
	})

	t.Run("identity group is the fallback", func(t *testing.T) {
		c := &domain.SnapshotCore{Resource: &domain.Resource{GroupID: 9}}
		g, ok := c.OwnerGroup()
		if !ok || g != 9 {
			t.Errorf("got (%d, %v)", g, ok)
		}
	})

	t.Run("no group anywhere", func(t *testing.T) {
		c := &domain.SnapshotCore{}
		if _, ok := c.OwnerGroup(); ok {
			t.Error("group should not resolve")
		}
	})
}
