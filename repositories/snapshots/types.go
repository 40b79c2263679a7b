package snapshots

import (
	"iris-dashboard/models/entities"
	"iris-dashboard/utils/databases"
)

type Repository interface {
	Save(snapshot entities.Snapshot) error
	FetchByKey(key string) (entities.Snapshot, error)
}

type Impl struct {
	db databases.SqlConnection
}
