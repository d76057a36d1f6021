package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/chefcommunity/client/internal/types"
)

// RedisStorage keeps the session under two prefixed keys written and
// deleted in one MULTI/EXEC transaction.
type RedisStorage struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStorage(client redis.UniversalClient, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

func (r *RedisStorage) key(name string) string {
	if r.prefix == "" {
		return name
	}
	return r.prefix + ":" + name
}

func (r *RedisStorage) Load(ctx context.Context) (*types.Session, error) {
	vals, err := r.client.MGet(ctx, r.key(KeyUser), r.key(KeyToken)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	str := func(v interface{}) string {
		s, _ := v.(string)
		return s
	}
	return decode(str(vals[0]), str(vals[1]))
}

func (r *RedisStorage) Save(ctx context.Context, s types.Session) error {
	user, err := encodeUser(s.User)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(KeyUser), user, 0)
		pipe.Set(ctx, r.key(KeyToken), s.Token, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStorage) Clear(ctx context.Context) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key(KeyUser), r.key(KeyToken))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
