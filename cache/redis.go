package cache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	lowimpl "github.com/redis/go-redis/v9"
)

// Redis stores entries in a shared redis instance so multiple engine
// processes can serve each other's renders. Values are framed as a 4-byte
// big-endian page count followed by the PDF bytes.
type Redis struct {
	internal *lowimpl.Client
	prefix   string
}

var _ Store = (*Redis)(nil)

// RedisConf carries the connection settings.
type RedisConf struct {
	Host string
	Port int
	PW   string
	DB   int

	// KeyPrefix namespaces this engine's keys; defaults to "docgen:".
	KeyPrefix string
}

// NewRedis connects a redis-backed store. The connection is lazy; the first
// operation surfaces connectivity errors.
func NewRedis(conf RedisConf) *Redis {
	prefix := conf.KeyPrefix
	if prefix == "" {
		prefix = "docgen:"
	}
	return &Redis{
		internal: lowimpl.NewClient(&lowimpl.Options{
			Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
			Password: conf.PW,
			DB:       conf.DB,
		}),
		prefix: prefix,
	}
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.internal.Close()
}

func (r *Redis) Get(ctx context.Context, key string) (Entry, bool, error) {
	raw, err := r.internal.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, lowimpl.Nil) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("cache get: %w: %v", ErrUnavailable, err)
	}
	e, ok := decodeEntry(raw)
	if !ok {
		// corrupt value: treat as a miss and drop it
		r.internal.Del(ctx, r.prefix+key)
		return Entry{}, false, nil
	}
	return e, true, nil
}

func (r *Redis) Put(ctx context.Context, key string, e Entry, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.internal.Set(ctx, r.prefix+key, encodeEntry(e), ttl).Err(); err != nil {
		return fmt.Errorf("cache put: %w: %v", ErrUnavailable, err)
	}
	return nil
}

// Invalidate drops every entry whose key starts with prefix, walking the
// keyspace with SCAN so large caches never block the server.
func (r *Redis) Invalidate(ctx context.Context, prefix string) (int, error) {
	removed := 0
	var cursor uint64
	for {
		keys, next, err := r.internal.Scan(ctx, cursor, r.prefix+prefix+"*", 512).Result()
		if err != nil {
			return removed, fmt.Errorf("cache invalidate: %w: %v", ErrUnavailable, err)
		}
		if len(keys) > 0 {
			n, err := r.internal.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("cache invalidate: %w: %v", ErrUnavailable, err)
			}
			removed += int(n)
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.internal.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("cache delete: %w: %v", ErrUnavailable, err)
	}
	return nil
}

func encodeEntry(e Entry) []byte {
	buf := make([]byte, 4+len(e.PDF))
	binary.BigEndian.PutUint32(buf, uint32(e.PageCount))
	copy(buf[4:], e.PDF)
	return buf
}

func decodeEntry(raw []byte) (Entry, bool) {
	if len(raw) < 4 {
		return Entry{}, false
	}
	return Entry{
		PageCount: int(binary.BigEndian.Uint32(raw)),
		PDF:       raw[4:],
	}, true
}
