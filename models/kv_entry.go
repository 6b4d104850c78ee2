package models

import (
	"time"
)

// KVEntry is the row backing one persisted collection.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(100)"`
	Value     []byte    `gorm:"type:longblob;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
