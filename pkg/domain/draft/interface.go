package draft

import (
	"github.com/trialkeep/trialkeep/pkg/domain/draft/db"
)

type Interface interface {
	Database() db.DraftInterface
}

type impl struct {
	database db.DraftInterface
}

func New(database db.DraftInterface) Interface {
	return &impl{database: database}
}

func (i *impl) Database() db.DraftInterface {
	return i.database
}
