//go:build !integration

package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-bonus-verify/internal/domain"
	"telegram-bonus-verify/internal/domain/model"
	"telegram-bonus-verify/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// mockBonusRepo is a small in-memory BonusRepository used by unit tests. It
// mirrors the store contract: TTL tracked per key, absent-token updates are
// no-ops, lapsed records are not rewritten.
type mockBonusRepo struct {
	mu    sync.RWMutex
	store map[string]*model.BonusRecord
	ttls  map[string]time.Duration

	saveErr error
	findErr error
	now     func() time.Time
}

var _ repository.BonusRepository = (*mockBonusRepo)(nil)

func newMockBonusRepo() *mockBonusRepo {
	return &mockBonusRepo{
		store: make(map[string]*model.BonusRecord),
		ttls:  make(map[string]time.Duration),
		now:   time.Now,
	}
}

func (m *mockBonusRepo) Find(ctx context.Context, token string) (*model.BonusRecord, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.store[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *mockBonusRepo) Save(ctx context.Context, token string, rec *model.BonusRecord, ttl time.Duration) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.store[token] = &cp
	m.ttls[token] = ttl
	return nil
}

func (m *mockBonusRepo) Update(ctx context.Context, token string, mutate func(*model.BonusRecord)) error {
	rec, err := m.Find(ctx, token)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil
		}
		return err
	}
	mutate(rec)
	ttl := rec.RemainingTTL(m.now())
	if ttl <= 0 {
		return nil
	}
	return m.Save(ctx, token, rec, ttl)
}
