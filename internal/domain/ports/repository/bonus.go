package repository

import (
	"context"
	"time"

	"telegram-bonus-verify/internal/domain/model"
)

// BonusRepository persists bonus records in an expiring key/value store.
//
// Update is a read-modify-write without a transaction: two concurrent
// updates to the same token can lose a write. The only post-issuance writer
// sets verified/telegram_user_id to the same values, so last-write-wins is
// accepted.
type BonusRepository interface {
	// Find returns domain.ErrNotFound when the token is unknown or the store
	// has already purged it.
	Find(ctx context.Context, token string) (*model.BonusRecord, error)

	// Save creates or replaces the record and resets the store TTL to ttl.
	Save(ctx context.Context, token string, rec *model.BonusRecord, ttl time.Duration) error

	// Update fetches the record, applies mutate and re-persists it with the
	// TTL recomputed from the record's expiry. Absent records and records
	// whose recomputed TTL is non-positive are left untouched.
	Update(ctx context.Context, token string, mutate func(*model.BonusRecord)) error
}
