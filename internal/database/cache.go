package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"
)

// CacheBuilder is a small fluent wrapper over the valkey client. A nil client
// degrades every operation to a miss, so callers never have to special-case a
// disabled cache.
type CacheBuilder struct {
	cache CacheClient
	key   string
	value any
	ttl   time.Duration
	ctx   context.Context
}

func NewCacheBuilder(cache CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		cache: cache,
		key:   key,
		ctx:   context.Background(),
	}
}

func (b *CacheBuilder) WithStruct(value any) *CacheBuilder {
	b.value = value
	return b
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = ttl
	return b
}

func (b *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	b.ctx = ctx
	return b
}

func (b *CacheBuilder) Set() error {
	if b.cache == nil {
		return nil
	}

	data, err := json.Marshal(b.value)
	if err != nil {
		return err
	}

	cmd := b.cache.B().Set().Key(b.key).Value(string(data))
	if b.ttl > 0 {
		return b.cache.Do(b.ctx, cmd.Ex(b.ttl).Build()).Error()
	}
	return b.cache.Do(b.ctx, cmd.Build()).Error()
}

// Get unmarshals the cached value into dest and reports whether the key was
// present.
func (b *CacheBuilder) Get(dest any) (bool, error) {
	if b.cache == nil {
		return false, nil
	}

	data, err := b.cache.Do(b.ctx, b.cache.B().Get().Key(b.key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, err
	}

	return true, nil
}

func (b *CacheBuilder) Delete() error {
	if b.cache == nil {
		return nil
	}

	return b.cache.Do(b.ctx, b.cache.B().Del().Key(b.key).Build()).Error()
}
