package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Redis struct {
	Client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{Client: client}
}

const lockTTL = 15 * time.Minute

// AcquireIdempotencyLock claims an idempotency key for one in-flight
// exchange. Returns false when another request already holds the key.
func (r *Redis) AcquireIdempotencyLock(key, recordID string) (bool, error) {
	lockKey := "idempotency_lock:" + key
	ok, err := r.Client.SetNX(context.Background(), lockKey, recordID, lockTTL).Result()
	return ok, err
}

// ReleaseIdempotencyLock releases the key, but only if this record owns it.
func (r *Redis) ReleaseIdempotencyLock(key, recordID string) error {
	ctx := context.Background()
	lockKey := fmt.Sprintf("idempotency_lock:%s", key)
	val, err := r.Client.Get(ctx, lockKey).Result()
	if err == redis.Nil {
		return nil // already released
	}
	if err != nil {
		return err
	}
	if val == recordID {
		_, err := r.Client.Del(ctx, lockKey).Result()
		return err
	}
	return nil // do not release if not owned by this record
}

// LockOwner reports which record currently holds the key, if any.
func (r *Redis) LockOwner(key string) (string, error) {
	val, err := r.Client.Get(context.Background(), "idempotency_lock:"+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}
