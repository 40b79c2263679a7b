package snapshots

import (
	"iris-dashboard/models/entities"
	"iris-dashboard/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

// Save overwrites the single row kept for the snapshot key.
func (repo *Impl) Save(snapshot entities.Snapshot) error {
	return repo.db.GetDB().Save(&snapshot).Error
}

func (repo *Impl) FetchByKey(key string) (entities.Snapshot, error) {
	var existing entities.Snapshot
	result := repo.db.GetDB().Where("source_key = ?", key).First(&existing)

	return existing, result.Error
}
