package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	kpool "github.com/trialkeep/trialkeep/pkg/conn/postgres/pool"
	kdraft "github.com/trialkeep/trialkeep/pkg/domain/draft/db"
	kpgdraft "github.com/trialkeep/trialkeep/pkg/domain/draft/db/postgres"
	kgroup "github.com/trialkeep/trialkeep/pkg/domain/group/db"
	kpggroup "github.com/trialkeep/trialkeep/pkg/domain/group/db/postgres"
	kresource "github.com/trialkeep/trialkeep/pkg/domain/resource/db"
	kpgresource "github.com/trialkeep/trialkeep/pkg/domain/resource/db/postgres"
	kschema "github.com/trialkeep/trialkeep/pkg/domain/schema/db"
	kpgschema "github.com/trialkeep/trialkeep/pkg/domain/schema/db/postgres"
	ksnapshot "github.com/trialkeep/trialkeep/pkg/domain/snapshot"
	kpgsnapshot "github.com/trialkeep/trialkeep/pkg/domain/snapshot/db/postgres"
	dbInterface "github.com/trialkeep/trialkeep/pkg/domain/trialkeep/db"
	xe "github.com/trialkeep/trialkeep/pkg/errors"
)

type trialkeepDBPostgres struct {
	pool     *pgxpool.Pool
	resource kresource.ResourceInterface
	snapshot ksnapshot.Interface
	group    kgroup.GroupInterface
	draft    kdraft.DraftInterface
	schema   kschema.SchemaInterface
}

type Config struct {
	SchemaRepository string
}

func DefaultConfig() Config {
	return Config{}
}

type Option func(*Config) *Config

func WithSchemaRepository(repository string) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

func New(
	ctx context.Context,
	url string,
	options ...Option,
) (dbInterface.TrialkeepDatabase, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	c := DefaultConfig()
	for _, option := range options {
		c = *option(&c)
	}

	p := kpool.Wrap(pool)
	var schema kschema.SchemaInterface = kpgschema.Null()
	if c.SchemaRepository != "" {
		schema = kpgschema.New(p, c.SchemaRepository)
	}

	return &trialkeepDBPostgres{
		pool:     pool,
		resource: kpgresource.New(p),
		snapshot: ksnapshot.New(
			kpgsnapshot.New(ksnapshot.KindQueue(), p),
			kpgsnapshot.New(ksnapshot.KindPlugin(), p),
			kpgsnapshot.New(ksnapshot.KindPluginFile(), p),
			kpgsnapshot.New(ksnapshot.KindEntryPoint(), p),
			kpgsnapshot.New(ksnapshot.KindExperiment(), p),
			kpgsnapshot.New(ksnapshot.KindJob(), p),
			kpgsnapshot.New(ksnapshot.KindMLModel(), p),
			kpgsnapshot.New(ksnapshot.KindArtifact(), p),
		),
		group:  kpggroup.New(p),
		draft:  kpgdraft.New(p),
		schema: schema,
	}, nil
}

func (t *trialkeepDBPostgres) Resource() kresource.ResourceInterface {
	return t.resource
}

func (t *trialkeepDBPostgres) Snapshot() ksnapshot.Interface {
	return t.snapshot
}

func (t *trialkeepDBPostgres) Group() kgroup.GroupInterface {
	return t.group
}

func (t *trialkeepDBPostgres) Draft() kdraft.DraftInterface {
	return t.draft
}

func (t *trialkeepDBPostgres) Schema() kschema.SchemaInterface {
	return t.schema
}

func (t *trialkeepDBPostgres) Close() error {
	t.pool.Close()
	return nil
}
