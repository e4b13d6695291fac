package snapshot

import (
	"github.com/trialkeep/trialkeep/pkg/domain"
	"github.com/trialkeep/trialkeep/pkg/domain/snapshot/db"
)

// Interface bundles one snapshot repository per versioned kind.
type Interface interface {
	Queues() db.SnapshotInterface[*domain.Queue]
	Plugins() db.SnapshotInterface[*domain.Plugin]
	PluginFiles() db.SnapshotInterface[*domain.PluginFile]
	EntryPoints() db.SnapshotInterface[*domain.EntryPoint]
	Experiments() db.SnapshotInterface[*domain.Experiment]
	Jobs() db.SnapshotInterface[*domain.Job]
	MLModels() db.SnapshotInterface[*domain.MLModel]
	Artifacts() db.SnapshotInterface[*domain.Artifact]
}

type impl struct {
	queues      db.SnapshotInterface[*domain.Queue]
	plugins     db.SnapshotInterface[*domain.Plugin]
	pluginFiles db.SnapshotInterface[*domain.PluginFile]
	entryPoints db.SnapshotInterface[*domain.EntryPoint]
	experiments db.SnapshotInterface[*domain.Experiment]
	jobs        db.SnapshotInterface[*domain.Job]
	mlModels    db.SnapshotInterface[*domain.MLModel]
	artifacts   db.SnapshotInterface[*domain.Artifact]
}

func New(
	queues db.SnapshotInterface[*domain.Queue],
	plugins db.SnapshotInterface[*domain.Plugin],
	pluginFiles db.SnapshotInterface[*domain.PluginFile],
	entryPoints db.SnapshotInterface[*domain.EntryPoint],
	experiments db.SnapshotInterface[*domain.Experiment],
	jobs db.SnapshotInterface[*domain.Job],
	mlModels db.SnapshotInterface[*domain.MLModel],
	artifacts db.SnapshotInterface[*domain.Artifact],
) Interface {
	return &impl{
		queues:      queues,
		plugins:     plugins,
		pluginFiles: pluginFiles,
		entryPoints: entryPoints,
		experiments: experiments,
		jobs:        jobs,
		mlModels:    mlModels,
		artifacts:   artifacts,
	}
}

func (i *impl) Queues() db.SnapshotInterface[*domain.Queue]           { return i.queues }
func (i *impl) Plugins() db.SnapshotInterface[*domain.Plugin]         { return i.plugins }
func (i *impl) PluginFiles() db.SnapshotInterface[*domain.PluginFile] { return i.pluginFiles }
func (i *impl) EntryPoints() db.SnapshotInterface[*domain.EntryPoint] { return i.entryPoints }
func (i *impl) Experiments() db.SnapshotInterface[*domain.Experiment] { return i.experiments }
func (i *impl) Jobs() db.SnapshotInterface[*domain.Job]               { return i.jobs }
func (i *impl) MLModels() db.SnapshotInterface[*domain.MLModel]       { return i.mlModels }
func (i *impl) Artifacts() db.SnapshotInterface[*domain.Artifact]     { return i.artifacts }
