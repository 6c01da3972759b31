package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestClient(t *testing.T, namespace string) *Client {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.KVEntry{}))
	client := &Client{conn: conn, driver: config.StorageDriverSQLite, namespace: namespace}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, "default")

	_, found, err := client.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, client.Set(ctx, "cart", []byte(`[1]`)))
	require.NoError(t, client.Set(ctx, "cart", []byte(`[1,2]`)))

	data, found, err := client.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[1,2]`, string(data))

	var count int64
	require.NoError(t, client.DB().Model(&models.KVEntry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "upsert must not duplicate rows")

	require.NoError(t, client.Delete(ctx, "cart"))
	require.NoError(t, client.Delete(ctx, "cart"))
	_, found, err = client.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKVNamespacesKeys(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, "alice")

	require.NoError(t, client.Set(ctx, "auth", []byte(`{}`)))

	var entry models.KVEntry
	require.NoError(t, client.DB().Take(&entry).Error)
	assert.Equal(t, "alice:auth", entry.StorageKey)
}

func TestPingAndName(t *testing.T) {
	client := newTestClient(t, "")
	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "sqlite", client.Name())
	assert.Equal(t, "auth", client.storageKey("auth"))
}

func TestNewRejectsMissingDSNAndUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.StorageDriverSQLite, config.DBConfig{}, "", nil)
	assert.Error(t, err)

	_, err = New(context.Background(), "mysql", config.DBConfig{DSN: "x"}, "", nil)
	assert.Error(t, err)
}
