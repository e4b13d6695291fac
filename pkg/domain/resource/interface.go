package resource

import (
	"github.com/trialkeep/trialkeep/pkg/domain/resource/db"
)

type Interface interface {
	Database() db.ResourceInterface
}

type impl struct {
	database db.ResourceInterface
}

func New(database db.ResourceInterface) Interface {
	return &impl{database: database}
}

func (i *impl) Database() db.ResourceInterface {
	return i.database
}
