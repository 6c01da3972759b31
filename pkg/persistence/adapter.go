package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

// Adapter serializes entities to JSON and writes them through a KV. It never returns
// storage failures to its callers: they are logged, counted and swallowed, and the
// caller's in-memory state stays authoritative.
type Adapter struct {
	kv      KV
	logg    *logger.Logger
	metrics *metrics.PersistenceMetrics
	backend string
}

// NewAdapter wires an adapter over kv. logg and m may be nil.
func NewAdapter(kv KV, logg *logger.Logger, m *metrics.PersistenceMetrics) *Adapter {
	if logg == nil {
		logg = logger.Nop()
	}
	backend := "custom"
	if named, ok := kv.(interface{ Name() string }); ok {
		backend = named.Name()
	}
	return &Adapter{kv: kv, logg: logg, metrics: m, backend: backend}
}

// Save encodes value as JSON and writes it under key.
func (a *Adapter) Save(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		a.fail(ctx, key, "save", pkgerrors.Wrap(pkgerrors.CodePersistence, err, "encode value"))
		return
	}
	if err := a.kv.Set(ctx, key, payload); err != nil {
		a.fail(ctx, key, "save", pkgerrors.Wrap(pkgerrors.CodePersistence, err, "write value"))
		return
	}
	a.metrics.IncWrite(key)
}

// Load decodes the value stored under key into dest. It reports false when the key is
// absent, unreadable or undecodable; dest is left untouched in that case so the caller
// falls back to its default.
func (a *Adapter) Load(ctx context.Context, key string, dest any) bool {
	data, found, err := a.kv.Get(ctx, key)
	if err != nil {
		a.fail(ctx, key, "load", pkgerrors.Wrap(pkgerrors.CodePersistence, err, "read value"))
		return false
	}
	if !found || len(data) == 0 {
		return false
	}

	// Decode into a scratch value first so a half-decoded payload never leaks into dest.
	scratch, err := decodeInto(data, dest)
	if err != nil {
		a.metrics.IncCorrupt(key)
		a.logg.WarnErr(a.fields(ctx, key, "load"), "persistence.corrupt_value_discarded", err)
		return false
	}
	return assign(dest, scratch)
}

// Remove deletes key.
func (a *Adapter) Remove(ctx context.Context, key string) {
	if err := a.kv.Delete(ctx, key); err != nil {
		a.fail(ctx, key, "remove", pkgerrors.Wrap(pkgerrors.CodePersistence, err, "delete value"))
	}
}

func (a *Adapter) fail(ctx context.Context, key, op string, err error) {
	a.metrics.IncFailure(key, op)
	ctx = a.logg.WithFields(a.fields(ctx, key, op), pkgerrors.Dump(err).Fields())
	a.logg.WarnErr(ctx, "persistence."+op+"_failed", err)
}

func (a *Adapter) fields(ctx context.Context, key, op string) context.Context {
	return a.logg.WithFields(ctx, map[string]any{
		"storage_key":     key,
		"storage_op":      op,
		"storage_backend": a.backend,
	})
}

func decodeInto(data []byte, dest any) (any, error) {
	target, err := newLike(dest)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return nil, fmt.Errorf("decode persisted value: %w", err)
	}
	return target, nil
}
