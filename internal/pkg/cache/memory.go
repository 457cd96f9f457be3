package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryClient é um Client em memória sobre go-cache, usado quando REDIS_ADDR
// está vazio e nos testes. Inteiros são guardados como int64 para que Incr
// funcione como o INCR do Redis.
type MemoryClient struct {
	store *gocache.Cache
}

// NewMemoryClient cria um cache vazio. Itens expirados são varridos a cada minuto.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{store: gocache.New(gocache.NoExpiration, time.Minute)}
}

func (c *MemoryClient) Get(_ context.Context, key string) (string, error) {
	v, found := c.store.Get(key)
	if !found {
		return "", ErrCacheMiss
	}
	if n, ok := v.(int64); ok {
		return strconv.FormatInt(n, 10), nil
	}
	return v.(string), nil
}

func (c *MemoryClient) GetInt(ctx context.Context, key string) (int, error) {
	val, err := c.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

// Set grava o valor; expiration <= 0 significa sem expiração, como no Redis.
func (c *MemoryClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration <= 0 {
		expiration = gocache.NoExpiration
	}
	c.store.Set(key, normalize(value), expiration)
	return nil
}

// Incr mantém a expiração existente, como o INCR do Redis.
func (c *MemoryClient) Incr(_ context.Context, key string) (int64, error) {
	n, err := c.store.IncrementInt64(key, 1)
	if err == nil {
		return n, nil
	}
	if _, found := c.store.Get(key); found {
		return 0, fmt.Errorf("valor da chave %s não é inteiro", key)
	}
	if c.store.Add(key, int64(1), gocache.NoExpiration) == nil {
		return 1, nil
	}
	// Outra goroutine criou a chave entre o Get e o Add.
	return c.store.IncrementInt64(key, 1)
}

func (c *MemoryClient) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.store.Delete(k)
	}
	return nil
}

func (c *MemoryClient) Ping(context.Context) error { return nil }

// normalize converte o valor para string ou int64, as duas formas que Get entende.
func normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case []byte:
		return normalizeString(string(v))
	case string:
		return normalizeString(v)
	default:
		return fmt.Sprint(v)
	}
}

// normalizeString guarda como int64 apenas textos que voltam idênticos pelo FormatInt.
func normalizeString(s string) interface{} {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return n
	}
	return s
}
