package snapshot

import (
	"context"
	stderrors "errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vango-dev/hyperoop/internal/errors"
)

// RedisAPI is the subset of *redis.Client used by RedisStore.
type RedisAPI interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// RedisStore keeps snapshots as string keys under a prefix. A non-zero ttl
// expires each snapshot that long after it was saved.
type RedisStore struct {
	client RedisAPI
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a store. The prefix must not contain glob
// characters.
func NewRedisStore(client RedisAPI, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Close closes the client when it can be closed.
func (s *RedisStore) Close() error {
	if c, ok := s.client.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisStore) Save(ctx context.Context, name string, markup []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(name), markup, s.ttl).Err(); err != nil {
		return errors.New("E021").WithDetailf("redis set %s", s.key(name)).Wrap(err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, errors.New("E020").WithDetailf("redis key %s", s.key(name))
	}
	if err != nil {
		return nil, errors.New("E021").WithDetailf("redis get %s", s.key(name)).Wrap(err)
	}
	return data, nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return errors.New("E021").WithDetailf("redis del %s", s.key(name)).Wrap(err)
	}
	return nil
}

// List scans the prefix. SCAN may repeat keys, so names are deduplicated.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return nil, errors.New("E021").WithDetailf("redis scan %s*", s.prefix).Wrap(err)
		}
		for _, key := range keys {
			seen[strings.TrimPrefix(key, s.prefix)] = true
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
