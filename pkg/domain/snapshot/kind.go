// Package snapshot describes the versioned resource kinds: which
// subtype table each kind lives in, how its rows map to the domain
// types and which fields may be searched and sorted on.
//
// The repository over these descriptors lives in
// pkg/domain/snapshot/db; this package is pure metadata.
package snapshot

import (
	"github.com/trialkeep/trialkeep/pkg/domain"
	"github.com/trialkeep/trialkeep/pkg/domain/search"
)

// Kind describes one versioned resource kind.
//
// Queries over snapshots alias the subtype table as "t", the
// resource_snapshots table as "s" and resources as "r"; search
// transforms and sort expressions are written against those aliases.
type Kind[S domain.Snapshot] struct {
	// Type is the resource type every snapshot of this kind declares.
	Type domain.ResourceType

	// Table is the subtype table.
	Table string

	// NameColumn is the subtype column holding the resource name whose
	// uniqueness is scoped to (group, kind, latest snapshot).
	NameColumn string

	// Columns are the kind-specific columns, in the order Fields and
	// Values walk them.
	Columns []string

	// New allocates an empty snapshot of this kind.
	New func() S

	// Fields returns scan destinations for Columns.
	Fields func(S) []any

	// Values returns insert values for Columns.
	Values func(S) []any

	// Search registers the searchable fields.
	Search search.Fields

	// Sort maps sort keys to order expressions. Keys outside this map
	// are refused.
	Sort map[string]string
}

// coreSort are the sort keys every kind supports.
func coreSort() map[string]string {
	return map[string]string{
		"created_on":  `"s"."created_on"`,
		"snapshot_id": `"s"."snapshot_id"`,
		"resource_id": `"s"."resource_id"`,
	}
}

// withCore merges kind-specific sort keys over the core ones.
func withCore(extra map[string]string) map[string]string {
	m := coreSort()
	for k, v := range extra {
		m[k] = v
	}
	return m
}

// named builds the search surface shared by every kind whose only
// searchable subtype column is its name.
func named(nameColumn string) search.Fields {
	return search.Fields{
		Transforms: map[string]search.Transform{
			"name":        search.Like(`"t"."` + nameColumn + `"`),
			"description": search.Like(`"s"."description"`),
		},
		Unscoped: []string{"name", "description"},
	}
}

func KindQueue() Kind[*domain.Queue] {
	return Kind[*domain.Queue]{
		Type:       domain.TypeQueue,
		Table:      "queues",
		NameColumn: "name",
		Columns:    []string{"name"},
		New:        func() *domain.Queue { return &domain.Queue{} },
		Fields:     func(s *domain.Queue) []any { return []any{&s.Name} },
		Values:     func(s *domain.Queue) []any { return []any{s.Name} },
		Search:     named("name"),
		Sort:       withCore(map[string]string{"name": `"t"."name"`}),
	}
}

func KindPlugin() Kind[*domain.Plugin] {
	return Kind[*domain.Plugin]{
		Type:       domain.TypePlugin,
		Table:      "plugins",
		NameColumn: "name",
		Columns:    []string{"name"},
		New:        func() *domain.Plugin { return &domain.Plugin{} },
		Fields:     func(s *domain.Plugin) []any { return []any{&s.Name} },
		Values:     func(s *domain.Plugin) []any { return []any{s.Name} },
		Search:     named("name"),
		Sort:       withCore(map[string]string{"name": `"t"."name"`}),
	}
}

func KindPluginFile() Kind[*domain.PluginFile] {
	return Kind[*domain.PluginFile]{
		Type:       domain.TypePluginFile,
		Table:      "plugin_files",
		NameColumn: "filename",
		Columns:    []string{"filename", "contents"},
		New:        func() *domain.PluginFile { return &domain.PluginFile{} },
		Fields:     func(s *domain.PluginFile) []any { return []any{&s.Filename, &s.Contents} },
		Values:     func(s *domain.PluginFile) []any { return []any{s.Filename, s.Contents} },
		Search: search.Fields{
			Transforms: map[string]search.Transform{
				"filename":    search.Like(`"t"."filename"`),
				"description": search.Like(`"s"."description"`),
			},
			Unscoped: []string{"filename", "description"},
		},
		Sort: withCore(map[string]string{"filename": `"t"."filename"`}),
	}
}

func KindEntryPoint() Kind[*domain.EntryPoint] {
	return Kind[*domain.EntryPoint]{
		Type:       domain.TypeEntryPoint,
		Table:      "entry_points",
		NameColumn: "name",
		Columns:    []string{"name", "task_graph"},
		New:        func() *domain.EntryPoint { return &domain.EntryPoint{} },
		Fields:     func(s *domain.EntryPoint) []any { return []any{&s.Name, &s.TaskGraph} },
		Values:     func(s *domain.EntryPoint) []any { return []any{s.Name, s.TaskGraph} },
		Search:     named("name"),
		Sort:       withCore(map[string]string{"name": `"t"."name"`}),
	}
}

func KindExperiment() Kind[*domain.Experiment] {
	return Kind[*domain.Experiment]{
		Type:       domain.TypeExperiment,
		Table:      "experiments",
		NameColumn: "name",
		Columns:    []string{"name"},
		New:        func() *domain.Experiment { return &domain.Experiment{} },
		Fields:     func(s *domain.Experiment) []any { return []any{&s.Name} },
		Values:     func(s *domain.Experiment) []any { return []any{s.Name} },
		Search:     named("name"),
		Sort:       withCore(map[string]string{"name": `"t"."name"`}),
	}
}

func KindJob() Kind[*domain.Job] {
	return Kind[*domain.Job]{
		Type:       domain.TypeJob,
		Table:      "jobs",
		NameColumn: "name",
		Columns:    []string{"name", "timeout"},
		New:        func() *domain.Job { return &domain.Job{} },
		Fields:     func(s *domain.Job) []any { return []any{&s.Name, &s.Timeout} },
		Values:     func(s *domain.Job) []any { return []any{s.Name, s.Timeout} },
		Search:     named("name"),
		Sort:       withCore(map[string]string{"name": `"t"."name"`}),
	}
}

func KindMLModel() Kind[*domain.MLModel] {
	return Kind[*domain.MLModel]{
		Type:       domain.TypeMLModel,
		Table:      "ml_models",
		NameColumn: "name",
		Columns:    []string{"name"},
		New:        func() *domain.MLModel { return &domain.MLModel{} },
		Fields:     func(s *domain.MLModel) []any { return []any{&s.Name} },
		Values:     func(s *domain.MLModel) []any { return []any{s.Name} },
		Search:     named("name"),
		Sort:       withCore(map[string]string{"name": `"t"."name"`}),
	}
}

func KindArtifact() Kind[*domain.Artifact] {
	return Kind[*domain.Artifact]{
		Type:       domain.TypeArtifact,
		Table:      "artifacts",
		NameColumn: "uri",
		Columns:    []string{"uri"},
		New:        func() *domain.Artifact { return &domain.Artifact{} },
		Fields:     func(s *domain.Artifact) []any { return []any{&s.URI} },
		Values:     func(s *domain.Artifact) []any { return []any{s.URI} },
		Search: search.Fields{
			Transforms: map[string]search.Transform{
				"uri":         search.Like(`"t"."uri"`),
				"description": search.Like(`"s"."description"`),
			},
			Unscoped: []string{"uri", "description"},
		},
		Sort: withCore(map[string]string{"uri": `"t"."uri"`}),
	}
}
