package backend

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
//
// All types named `pkg/configs/backend.XxxMarshall` are `Marshalled[*Xxx]` .
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

type BackendConfigMarshall struct {
	Port       int32                     `yaml:"port"`
	Repository *RepositoryConfigMarshall `yaml:"repository"`
}

var _ Marshalled[*BackendConfig] = &BackendConfigMarshall{}

func (b *BackendConfigMarshall) trySeal(path string) *BackendConfig {
	return &BackendConfig{
		port:       required(b.Port, path+".port"),
		repository: nonnil(b.Repository, path+".repository").trySeal(path + ".repository"),
	}
}

// Configuration of the resource repository.
//
// This type is marshalling value and mutable.
// Consider to use immutable version, `RepositoryConfig`.
type RepositoryConfigMarshall struct {
	Database         string `yaml:"database"`
	SchemaRepository string `yaml:"schemaRepository,omitempty"`
}

func (rm *RepositoryConfigMarshall) trySeal(path string) *RepositoryConfig {
	return &RepositoryConfig{
		database:         required(rm.Database, path+".database"),
		schemaRepository: rm.SchemaRepository,
	}
}

func nonnil[T any](v *T, path string) *T {
	if v == nil {
		panic(path + " is required")
	}
	return v
}

func required[T comparable](v T, path string) T {
	if v == *new(T) {
		panic(path + " is required")
	}
	return v
}
