package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"subscription-activation-bot/internal/domain"
	"subscription-activation-bot/internal/domain/model"
	"subscription-activation-bot/internal/domain/ports/repository"
	"subscription-activation-bot/internal/infra/metrics"

	"github.com/go-redis/redis/v8"
)

var _ repository.ActivationRepository = (*ActivationRepo)(nil)

// ActivationRepo stores one activation record per sender in Redis.
// Records carry no TTL: they live until the next confirmation overwrites them.
type ActivationRepo struct {
	client RedisClient
}

func NewActivationRepo(client RedisClient) *ActivationRepo {
	return &ActivationRepo{client: client}
}

func (r *ActivationRepo) key(senderID string) string {
	return fmt.Sprintf("activation_code:%s", senderID)
}

func (r *ActivationRepo) Save(ctx context.Context, senderID string, rec *model.ActivationRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal activation record: %w", err)
	}
	err = r.client.Set(ctx, r.key(senderID), data, 0)
	metrics.IncStoreOp("save", err)
	if err != nil {
		return fmt.Errorf("save activation record for %s: %w", senderID, err)
	}
	return nil
}

func (r *ActivationRepo) Find(ctx context.Context, senderID string) (*model.ActivationRecord, error) {
	data, err := r.client.Get(ctx, r.key(senderID))
	if errors.Is(err, redis.Nil) {
		metrics.IncStoreOp("find", nil)
		return nil, domain.ErrNotFound
	}
	metrics.IncStoreOp("find", err)
	if err != nil {
		return nil, fmt.Errorf("load activation record for %s: %w", senderID, err)
	}

	var rec model.ActivationRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal activation record for %s: %w", senderID, err)
	}
	return &rec, nil
}
