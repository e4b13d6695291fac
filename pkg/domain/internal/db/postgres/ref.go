package postgres

import (
	"github.com/trialkeep/trialkeep/pkg/domain"
	kpgerr "github.com/trialkeep/trialkeep/pkg/domain/errors/dberrors/postgres"
)

// RefOf resolves a ResourceRef to its persisted id. An unpersisted
// referent cannot name any row, so it does not exist.
func RefOf(ref domain.ResourceRef) (int64, error) {
	id, ok := ref.ResourceRef()
	if !ok {
		return 0, kpgerr.DoesNotExist{Table: "resources", Identity: "(unsaved)"}
	}
	return id, nil
}
