package postgres_test

import (
	"context"
	"testing"

	kpgschema "github.com/trialkeep/trialkeep/pkg/domain/schema/db/postgres"
)

func TestNullSchema(t *testing.T) {
	testee := kpgschema.Null()
	ctx := context.Background()

	if err := testee.Upgrade(ctx); err == nil {
		t.Error("upgrading without a repository should fail")
	}

	version, err := testee.Version(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if version != -1 {
		t.Errorf("wrong version: %d", version)
	}

	sctx, cancel := testee.Context(ctx)
	defer cancel()
	if sctx.Err() != nil {
		t.Errorf("context should be live: %v", sctx.Err())
	}
}
