package runlock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"
)

const DefaultTTL = time.Hour

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another process is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker guards a run across processes sharing one Redis.
type RedisLocker struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

func NewRedisLocker(client redis.Cmdable, key string, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisLocker{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// TryLock takes the lock without waiting. ok is false when another holder has
// it. The returned release func must be called once the run finishes.
func (l *RedisLocker) TryLock(ctx context.Context) (release func(context.Context) error, ok bool, err error) {
	token := xid.New().String()

	acquired, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis.SetNX: %w", err)
	}

	if !acquired {
		return nil, false, nil
	}

	release = func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
			return fmt.Errorf("releaseScript.Run: %w", err)
		}

		return nil
	}

	return release, true, nil
}
