package catalogcache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mapCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	default:
		m.data[key] = fmt.Sprint(v)
	}
	m.ttls[key] = ttl
	return nil
}

func (m *mapCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *mapCache) GenerateKey(operation, key string) string {
	return "test:" + operation + ":" + key
}

func TestLoadMiss(t *testing.T) {
	c := New(newMapCache(), time.Minute)

	products, ok, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, products)
}

func TestStoreThenLoad(t *testing.T) {
	backing := newMapCache()
	c := New(backing, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Store(ctx, []domain.Product{{ID: 9, Name: "Cached", Price: domain.NewMoney(42)}}))
	assert.Equal(t, time.Minute, backing.ttls["test:catalog:products"])

	products, ok, err := c.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, products, 1)
	assert.Equal(t, "Cached", products[0].Name)
	assert.Equal(t, "42", products[0].Price.String())
}
