package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/redis/go-redis/v9"
)

// カートスナップショットをRedisのキー1つに丸ごと保存する。
// localStorage相当のKVスロット。放置カートはTTLで消える。
type SnapshotRedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// DI
func NewSnapshotRedisRepository(client *redis.Client) *SnapshotRedisRepository {
	return &SnapshotRedisRepository{
		client: client,
		ttl:    30 * 24 * time.Hour,
	}
}

func (r *SnapshotRedisRepository) Load(ctx context.Context, slot string) ([]model.CartLine, error) {
	data, err := r.client.Get(ctx, snapshotKey(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []model.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart snapshot failed: %w", err)
	}

	return lines, nil
}

func (r *SnapshotRedisRepository) Save(ctx context.Context, slot string, lines []model.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot failed: %w", err)
	}

	if err := r.client.Set(ctx, snapshotKey(slot), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func snapshotKey(slot string) string {
	return fmt.Sprintf("cart:%s", slot)
}
