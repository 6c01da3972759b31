package db

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/storefront/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (c *Client) storageKey(key string) string {
	if c.namespace == "" {
		return key
	}
	return c.namespace + ":" + key
}

// Get returns the payload stored for key.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry models.KVEntry
	err := c.conn.WithContext(ctx).
		Where("storage_key = ?", c.storageKey(key)).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(entry.Payload), true, nil
}

// Set upserts the payload for key.
func (c *Client) Set(ctx context.Context, key string, data []byte) error {
	entry := models.KVEntry{
		StorageKey: c.storageKey(key),
		Payload:    string(data),
		UpdatedAt:  time.Now().UTC(),
	}
	return c.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&entry).Error
}

// Delete removes key. Missing keys are ignored.
func (c *Client) Delete(ctx context.Context, key string) error {
	return c.conn.WithContext(ctx).
		Where("storage_key = ?", c.storageKey(key)).
		Delete(&models.KVEntry{}).Error
}
