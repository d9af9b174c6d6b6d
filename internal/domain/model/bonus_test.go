//go:build !integration

package model

import (
	"testing"
	"time"
)

func TestNewBonusRecord(t *testing.T) {
	t.Run("should create an unverified record with a 600 second window", func(t *testing.T) {
		now := time.Unix(1_700_000_000, 0)
		rec := NewBonusRecord(now)

		if rec.Verified {
			t.Error("expected a fresh record to be unverified")
		}
		if rec.TelegramUserID != nil {
			t.Errorf("expected telegram user id to be nil, but got %v", *rec.TelegramUserID)
		}
		if rec.CreatedAt != now.Unix() {
			t.Errorf("expected created_at %d, but got %d", now.Unix(), rec.CreatedAt)
		}
		if rec.ExpiresAt != rec.CreatedAt+600 {
			t.Errorf("expected expires_at = created_at + 600, but got %d", rec.ExpiresAt)
		}
	})
}

func TestBonusRecord_ExpiredAt(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rec := NewBonusRecord(now)

	t.Run("should not be expired before the deadline", func(t *testing.T) {
		if rec.ExpiredAt(now.Add(599 * time.Second)) {
			t.Error("record expired one second too early")
		}
	})

	t.Run("should be expired exactly at the deadline", func(t *testing.T) {
		if !rec.ExpiredAt(now.Add(600 * time.Second)) {
			t.Error("record must be invalid strictly at expires_at")
		}
	})

	t.Run("should be expired after the deadline", func(t *testing.T) {
		if !rec.ExpiredAt(now.Add(601 * time.Second)) {
			t.Error("record must be invalid after expires_at")
		}
	})
}

func TestBonusRecord_MarkVerified(t *testing.T) {
	t.Run("should set the flag and the user id without touching the expiry", func(t *testing.T) {
		now := time.Unix(1_700_000_000, 0)
		rec := NewBonusRecord(now)
		originalExpiry := rec.ExpiresAt

		rec.MarkVerified(42)

		if !rec.Verified {
			t.Error("expected the record to be verified")
		}
		if rec.TelegramUserID == nil || *rec.TelegramUserID != 42 {
			t.Errorf("expected telegram user id 42, but got %v", rec.TelegramUserID)
		}
		if rec.ExpiresAt != originalExpiry {
			t.Error("MarkVerified must not move the expiry")
		}
	})

	t.Run("should keep the flag true on a repeat call with another user", func(t *testing.T) {
		rec := NewBonusRecord(time.Now())
		rec.MarkVerified(42)
		rec.MarkVerified(43)

		if !rec.Verified {
			t.Error("verified must never flip back to false")
		}
		if rec.TelegramUserID == nil || *rec.TelegramUserID != 43 {
			t.Error("a repeat call overwrites the user id (documented race, not a bug)")
		}
	})
}

func TestBonusRecord_RemainingTTL(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rec := NewBonusRecord(now)

	if got := rec.RemainingTTL(now.Add(100 * time.Second)); got != 500*time.Second {
		t.Errorf("expected 500s remaining, but got %v", got)
	}
	if got := rec.RemainingTTL(now.Add(700 * time.Second)); got > 0 {
		t.Errorf("expected non-positive TTL past expiry, but got %v", got)
	}
}
