package model

import "time"

// BonusTTL bounds the exposure window of an issued token. It is fixed for
// the lifetime of a record; updates never extend it.
const BonusTTL = 600 * time.Second

// BonusRecord links one chat-widget conversation to one Telegram channel
// membership check. The token itself is the storage key, not a field.
type BonusRecord struct {
	Verified       bool   `json:"verified"`
	CreatedAt      int64  `json:"created_at"`
	ExpiresAt      int64  `json:"expires_at"`
	TelegramUserID *int64 `json:"telegram_user_id"`
}

// NewBonusRecord returns an unverified record expiring BonusTTL from now.
func NewBonusRecord(now time.Time) *BonusRecord {
	created := now.Unix()
	return &BonusRecord{
		Verified:       false,
		CreatedAt:      created,
		ExpiresAt:      created + int64(BonusTTL/time.Second),
		TelegramUserID: nil,
	}
}

// ExpiredAt reports whether the record is logically expired at t. The store
// eventually purges the key on its own; until then the record counts as
// expired from expires_at onward.
func (r *BonusRecord) ExpiredAt(t time.Time) bool {
	return r.ExpiresAt <= t.Unix()
}

// MarkVerified flips the record to verified. The flag never goes back to
// false; a repeat call only refreshes telegram_user_id.
func (r *BonusRecord) MarkVerified(telegramID int64) {
	r.Verified = true
	r.TelegramUserID = &telegramID
}

// RemainingTTL is the store TTL that preserves the original expiry when the
// record is re-persisted. Non-positive means the record must be left to lapse.
func (r *BonusRecord) RemainingTTL(now time.Time) time.Duration {
	return time.Duration(r.ExpiresAt-now.Unix()) * time.Second
}
