package notify

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisWatermarkStore guarda as marcas no Redis como timestamps RFC3339,
// sem expiração. Chave ausente equivale a "nunca visitou".
type RedisWatermarkStore struct {
	client *redis.Client
}

func NewRedisWatermarkStore(client *redis.Client) *RedisWatermarkStore {
	return &RedisWatermarkStore{client: client}
}

func (s *RedisWatermarkStore) Get(ctx context.Context, kind, userID string) (time.Time, error) {
	val, err := s.client.Get(ctx, watermarkKey(kind, userID)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		// valor corrompido: trata como ausente em vez de travar o contador
		return time.Time{}, nil
	}
	return t, nil
}

func (s *RedisWatermarkStore) Set(ctx context.Context, kind, userID string, t time.Time) error {
	return s.client.Set(ctx, watermarkKey(kind, userID), t.Format(time.RFC3339), 0).Err()
}
