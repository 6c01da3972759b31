package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := NewFileKV(filepath.Join(t.TempDir(), "profile"))
	require.NoError(t, err)

	_, found, err := kv.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, KeyCart, []byte(`[]`)))
	data, found, err := kv.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(data))

	require.NoError(t, kv.Delete(ctx, KeyCart))
	require.NoError(t, kv.Delete(ctx, KeyCart))
	require.NoError(t, kv.Ping(ctx))
}

func TestFileKVSanitizesKeysAndLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	require.NoError(t, kv.Set(ctx, "../escape", []byte(`1`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".._escape.json", entries[0].Name())
}

func TestFileKVSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	first, err := NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, KeyAuth, []byte(`{"username":"mor_2314"}`)))

	second, err := NewFileKV(dir)
	require.NoError(t, err)
	data, found, err := second.Get(ctx, KeyAuth)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"username":"mor_2314"}`, string(data))
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{Storage: config.StorageConfig{Driver: "memory"}}
	backend, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "memory", backend.Name())

	cfg = &config.Config{Storage: config.StorageConfig{Driver: "FILE", Dir: t.TempDir(), Namespace: "default"}}
	backend, err = Open(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "file", backend.Name())

	cfg = &config.Config{Storage: config.StorageConfig{Driver: "sqlite"}, DB: config.DBConfig{DSN: "file:open_test?mode=memory&cache=shared"}}
	backend, err = Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer backend.Close()
	assert.Equal(t, "sqlite", backend.Name())
	require.NoError(t, backend.Set(ctx, KeyCart, []byte(`[]`)))

	cfg = &config.Config{Storage: config.StorageConfig{Driver: "tape"}}
	_, err = Open(ctx, cfg, nil)
	assert.Error(t, err)
}
