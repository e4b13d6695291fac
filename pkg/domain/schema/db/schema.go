package db

import "context"

// SchemaInterface manages the database schema lifecycle.
type SchemaInterface interface {
	// Upgrade applies every schema version newer than what the
	// database carries, in order.
	Upgrade(ctx context.Context) error

	// Version reports the schema version found in the database.
	// A database without the version table reports 0.
	Version(ctx context.Context) (int, error)

	// Context derives a context that is cancelled when the database
	// schema falls behind the schema repository on disk.
	Context(ctx context.Context) (context.Context, context.CancelFunc)
}
