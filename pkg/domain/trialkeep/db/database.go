package db

import (
	kdraft "github.com/trialkeep/trialkeep/pkg/domain/draft/db"
	kgroup "github.com/trialkeep/trialkeep/pkg/domain/group/db"
	kresource "github.com/trialkeep/trialkeep/pkg/domain/resource/db"
	kschema "github.com/trialkeep/trialkeep/pkg/domain/schema/db"
	ksnapshot "github.com/trialkeep/trialkeep/pkg/domain/snapshot"
)

type TrialkeepDatabase interface {
	Resource() kresource.ResourceInterface
	Snapshot() ksnapshot.Interface
	Group() kgroup.GroupInterface
	Draft() kdraft.DraftInterface
	Schema() kschema.SchemaInterface
	Close() error
}
