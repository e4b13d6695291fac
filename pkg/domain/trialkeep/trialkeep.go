package trialkeep

import (
	"context"

	bconf "github.com/trialkeep/trialkeep/pkg/configs/backend"
	"github.com/trialkeep/trialkeep/pkg/domain/draft"
	"github.com/trialkeep/trialkeep/pkg/domain/group"
	"github.com/trialkeep/trialkeep/pkg/domain/resource"
	"github.com/trialkeep/trialkeep/pkg/domain/schema"
	"github.com/trialkeep/trialkeep/pkg/domain/snapshot"
	"github.com/trialkeep/trialkeep/pkg/domain/trialkeep/db/postgres"
)

type Trialkeep interface {
	Config() *bconf.BackendConfig

	Resource() resource.Interface
	Snapshot() snapshot.Interface
	Group() group.Interface
	Draft() draft.Interface

	Schema() schema.Interface
}

type trialkeep struct {
	config *bconf.BackendConfig

	resource resource.Interface
	snapshot snapshot.Interface
	group    group.Interface
	draft    draft.Interface

	schema schema.Interface
}

func New(
	ctx context.Context,
	config *bconf.BackendConfig,
	options ...Option,
) (Trialkeep, error) {
	opt := &_options{}
	if repo := config.Repository().SchemaRepository(); repo != "" {
		opt.pg = append(opt.pg, postgres.WithSchemaRepository(repo))
	}
	for _, o := range options {
		o(opt)
	}

	pg, err := postgres.New(ctx, config.Repository().Database(), opt.pg...)
	if err != nil {
		return nil, err
	}

	return &trialkeep{
		config: config,

		resource: resource.New(pg.Resource()),
		snapshot: pg.Snapshot(),
		group:    group.New(pg.Group()),
		draft:    draft.New(pg.Draft()),

		schema: schema.New(pg.Schema()),
	}, nil
}

type Option func(*_options)

type _options struct {
	pg []postgres.Option
}

func WithSchemaRepository(repository string) Option {
	return func(o *_options) {
		o.pg = append(o.pg, postgres.WithSchemaRepository(repository))
	}
}

func (t *trialkeep) Config() *bconf.BackendConfig {
	return t.config
}

func (t *trialkeep) Resource() resource.Interface {
	return t.resource
}

func (t *trialkeep) Snapshot() snapshot.Interface {
	return t.snapshot
}

func (t *trialkeep) Group() group.Interface {
	return t.group
}

func (t *trialkeep) Draft() draft.Interface {
	return t.draft
}

func (t *trialkeep) Schema() schema.Interface {
	return t.schema
}
