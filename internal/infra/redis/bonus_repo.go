package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"telegram-bonus-verify/internal/domain"
	"telegram-bonus-verify/internal/domain/model"
	"telegram-bonus-verify/internal/domain/ports/repository"
)

var _ repository.BonusRepository = (*BonusRepo)(nil)

const bonusKeyPrefix = "tg_bonus"

// BonusRepo stores bonus records as JSON under tg_bonus:<token>. Redis owns
// hard deletion through the key TTL; callers still check logical expiry.
type BonusRepo struct {
	client RedisClient
	now    func() time.Time
}

func NewBonusRepo(client RedisClient) *BonusRepo {
	return &BonusRepo{client: client, now: time.Now}
}

func (r *BonusRepo) key(token string) string {
	return fmt.Sprintf("%s:%s", bonusKeyPrefix, token)
}

func (r *BonusRepo) Find(ctx context.Context, token string) (*model.BonusRecord, error) {
	data, err := r.client.Get(ctx, r.key(token))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get bonus record: %w", err)
	}
	var rec model.BonusRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("decode bonus record: %w", err)
	}
	return &rec, nil
}

func (r *BonusRepo) Save(ctx context.Context, token string, rec *model.BonusRecord, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode bonus record: %w", err)
	}
	if err := r.client.Set(ctx, r.key(token), data, ttl); err != nil {
		return fmt.Errorf("set bonus record: %w", err)
	}
	return nil
}

func (r *BonusRepo) Update(ctx context.Context, token string, mutate func(*model.BonusRecord)) error {
	rec, err := r.Find(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	mutate(rec)

	// Re-persisting must not extend the original expiry. A non-positive
	// remainder means the record lapsed mid-update; rewriting it would
	// resurrect an already-expired key.
	ttl := rec.RemainingTTL(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.Save(ctx, token, rec, ttl)
}
