package session

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

type RedisRevocationList struct {
	client rueidis.Client
	prefix string
}

func NewRedisRevocationList(client rueidis.Client, keyPrefix string) *RedisRevocationList {
	return &RedisRevocationList{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *RedisRevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	cmd := r.client.B().Set().Key(r.prefix + tokenID).Value("1").PxMilliseconds(ttl.Milliseconds()).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	cmd := r.client.B().Exists().Key(r.prefix + tokenID).Build()
	n, err := r.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
