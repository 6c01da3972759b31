package models

import "time"

// KVEntry is one persisted client entity (cart, auth) stored as its JSON payload.
type KVEntry struct {
	StorageKey string    `gorm:"column:storage_key;primaryKey"`
	Payload    string    `gorm:"column:payload;type:text;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

func (KVEntry) TableName() string { return "kv_entries" }
