package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"telegram-bonus-verify/internal/domain"
	"telegram-bonus-verify/internal/domain/model"
	"telegram-bonus-verify/internal/domain/ports/repository"
	"telegram-bonus-verify/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ BonusUseCase = (*bonusUC)(nil)

// Status is the answer the chat widget polls for.
type Status struct {
	Found    bool
	Verified bool
	Expired  bool
}

// Issued carries everything the issuance surfaces hand back to the widget.
type Issued struct {
	Token  string
	Link   string
	Record *model.BonusRecord
	TTL    time.Duration
}

// BonusUseCase owns the bonus token lifecycle: issue, status, verification.
type BonusUseCase interface {
	Issue(ctx context.Context) (*Issued, error)
	CheckStatus(ctx context.Context, token string) (Status, error)
	MarkVerified(ctx context.Context, token string, telegramID int64) error
}

type bonusUC struct {
	repo        repository.BonusRepository
	botUsername string
	log         *zerolog.Logger
	now         func() time.Time
}

func NewBonusUseCase(repo repository.BonusRepository, botUsername string, logger *zerolog.Logger) *bonusUC {
	return &bonusUC{
		repo:        repo,
		botUsername: botUsername,
		log:         logger,
		now:         time.Now,
	}
}

// newToken returns 128 bits from crypto/rand as a 32-char hex string. The
// token is the sole capability granting verification rights, so it must be
// unguessable.
func newToken() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}

func (u *bonusUC) Issue(ctx context.Context) (*Issued, error) {
	defer logging.TraceDuration(u.log, "BonusUC.Issue")()

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	rec := model.NewBonusRecord(u.now())
	if err := u.repo.Save(ctx, token, rec, model.BonusTTL); err != nil {
		return nil, fmt.Errorf("persist bonus record: %w", err)
	}

	u.log.Info().Str("token", logging.Preview(token)).Msg("bonus token issued")
	return &Issued{
		Token:  token,
		Link:   fmt.Sprintf("https://t.me/%s?start=%s", u.botUsername, token),
		Record: rec,
		TTL:    model.BonusTTL,
	}, nil
}

func (u *bonusUC) CheckStatus(ctx context.Context, token string) (Status, error) {
	defer logging.TraceDuration(u.log, "BonusUC.CheckStatus")()

	rec, err := u.repo.Find(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Status{}, nil
		}
		return Status{}, err
	}
	// Logical expiry wins over whatever the store still holds, verified
	// included.
	if rec.ExpiredAt(u.now()) {
		return Status{Found: true, Expired: true}, nil
	}
	return Status{Found: true, Verified: rec.Verified}, nil
}

func (u *bonusUC) MarkVerified(ctx context.Context, token string, telegramID int64) error {
	defer logging.TraceDuration(u.log, "BonusUC.MarkVerified")()

	return u.repo.Update(ctx, token, func(rec *model.BonusRecord) {
		rec.MarkVerified(telegramID)
	})
}
