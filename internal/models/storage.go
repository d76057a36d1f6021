package models

import "time"

// StorageEntry is one key of the persisted client session, mirroring the
// browser local-storage keys "user" and "token".
type StorageEntry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (StorageEntry) TableName() string {
	return "local_storage"
}
