package persistence

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type failingKV struct {
	getErr, setErr, delErr error
}

func (f failingKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.getErr }
func (f failingKV) Set(context.Context, string, []byte) error        { return f.setErr }
func (f failingKV) Delete(context.Context, string) error             { return f.delErr }

func TestAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(NewMemoryKV(), nil, nil)

	in := []record{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
	adapter.Save(ctx, KeyCart, in)

	var out []record
	require.True(t, adapter.Load(ctx, KeyCart, &out))
	assert.Equal(t, in, out)
}

func TestAdapterLoadMissingKeepsDefault(t *testing.T) {
	adapter := NewAdapter(NewMemoryKV(), nil, nil)

	out := &record{Name: "default"}
	assert.False(t, adapter.Load(context.Background(), KeyAuth, out))
	assert.Equal(t, "default", out.Name)
}

func TestAdapterLoadCorruptValueKeepsDefault(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyCart, []byte(`[{"name":"a","count":"many"}`)))

	reg := prometheus.NewRegistry()
	m := metrics.NewPersistenceMetrics(reg)
	buf := &bytes.Buffer{}
	adapter := NewAdapter(kv, logger.New(logger.Options{ServiceName: "test", Output: buf, Format: "json"}), m)

	out := []record{{Name: "keep"}}
	assert.False(t, adapter.Load(ctx, KeyCart, &out))
	assert.Equal(t, []record{{Name: "keep"}}, out)
	assert.Contains(t, buf.String(), "persistence.corrupt_value_discarded")

	count, err := testutil.GatherAndCount(reg, "persistence_corrupt_loads_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAdapterSwallowsWriteFailures(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := metrics.NewPersistenceMetrics(reg)
	buf := &bytes.Buffer{}
	adapter := NewAdapter(failingKV{setErr: errors.New("quota exceeded"), delErr: errors.New("read-only")},
		logger.New(logger.Options{ServiceName: "test", Output: buf, Format: "json"}), m)

	adapter.Save(ctx, KeyCart, []record{{Name: "a"}})
	adapter.Remove(ctx, KeyAuth)

	assert.Contains(t, buf.String(), "persistence.save_failed")
	assert.Contains(t, buf.String(), "quota exceeded")
	assert.Contains(t, buf.String(), "persistence.remove_failed")
	assert.Contains(t, buf.String(), `"storage_backend":"custom"`)
	assert.Contains(t, buf.String(), `"storage_key":"cart"`)
}

func TestAdapterSwallowsEncodeFailures(t *testing.T) {
	buf := &bytes.Buffer{}
	adapter := NewAdapter(NewMemoryKV(), logger.New(logger.Options{ServiceName: "test", Output: buf, Format: "json"}), nil)

	adapter.Save(context.Background(), KeyCart, make(chan int))
	assert.Contains(t, buf.String(), "persistence.save_failed")
}

func TestAdapterLoadReadFailure(t *testing.T) {
	adapter := NewAdapter(failingKV{getErr: errors.New("io")}, nil, nil)
	var out []record
	assert.False(t, adapter.Load(context.Background(), KeyCart, &out))
	assert.Nil(t, out)
}

func TestAdapterLoadRejectsNonPointer(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyAuth, []byte(`{"name":"x"}`)))
	adapter := NewAdapter(kv, nil, nil)

	assert.False(t, adapter.Load(ctx, KeyAuth, record{}))
}

func TestAdapterRemove(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	adapter := NewAdapter(kv, nil, nil)

	adapter.Save(ctx, KeyAuth, record{Name: "x"})
	adapter.Remove(ctx, KeyAuth)

	_, found, err := kv.Get(ctx, KeyAuth)
	require.NoError(t, err)
	assert.False(t, found)
}
