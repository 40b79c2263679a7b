package entities

import "time"

// Snapshot is the persisted last-known-good value of one source key.
type Snapshot struct {
	SourceKey string `gorm:"primaryKey"`
	Payload   []byte
	UpdatedAt time.Time
}
