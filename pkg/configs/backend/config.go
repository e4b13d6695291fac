package backend

// BackendConfig is the sealed, read-only configuration of a trialkeep
// backend process.
type BackendConfig struct {
	port       int32
	repository *RepositoryConfig
}

func (c *BackendConfig) Port() int32 {
	return c.port
}

func (c *BackendConfig) Repository() *RepositoryConfig {
	return c.repository
}

// Configuration for the resource repository.
//
// to get a `RepositoryConfig` instance, use `TrySeal` over its
// marshalling counterpart.
type RepositoryConfig struct {
	database         string
	schemaRepository string
}

// Connection string for the database.
func (r *RepositoryConfig) Database() string {
	return r.database
}

// Directory holding versioned schema definitions.
// Empty when this process does not manage the schema.
func (r *RepositoryConfig) SchemaRepository() string {
	return r.schemaRepository
}
