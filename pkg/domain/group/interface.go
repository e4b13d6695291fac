package group

import (
	"github.com/trialkeep/trialkeep/pkg/domain/group/db"
)

type Interface interface {
	Database() db.GroupInterface
}

type impl struct {
	database db.GroupInterface
}

func New(database db.GroupInterface) Interface {
	return &impl{database: database}
}

func (i *impl) Database() db.GroupInterface {
	return i.database
}
