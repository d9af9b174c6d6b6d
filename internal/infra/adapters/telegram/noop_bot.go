package telegram

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-bonus-verify/internal/domain/ports/adapter"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements adapter.TelegramBotAdapter for local/dev runs.
// It logs calls instead of hitting the Bot API and treats every user as a
// channel member so the whole flow can be exercised without a real channel.
type NoopBotAdapter struct {
	log *zerolog.Logger
}

func NewNoopBotAdapter(logger *zerolog.Logger) *NoopBotAdapter {
	return &NoopBotAdapter{log: logger}
}

func (b *NoopBotAdapter) delay(ctx context.Context) error {
	select {
	case <-time.After(100 * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *NoopBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := b.delay(ctx); err != nil {
		return err
	}
	b.log.Info().Int64("chat_id", chatID).Str("text", text).Msg("[noop-telegram] send message")
	return nil
}

func (b *NoopBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	if err := b.delay(ctx); err != nil {
		return err
	}
	b.log.Info().Int64("chat_id", chatID).Str("text", text).Interface("buttons", rows).Msg("[noop-telegram] send buttons")
	return nil
}

func (b *NoopBotAdapter) AnswerCallback(ctx context.Context, callbackID string, text string, alert bool) error {
	b.log.Info().Str("callback_id", callbackID).Str("text", text).Bool("alert", alert).Msg("[noop-telegram] answer callback")
	return nil
}

func (b *NoopBotAdapter) EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error {
	b.log.Info().Int64("chat_id", chatID).Int("message_id", messageID).Str("text", text).Msg("[noop-telegram] edit message")
	return nil
}

func (b *NoopBotAdapter) IsChannelMember(ctx context.Context, userID int64) (bool, error) {
	b.log.Info().Int64("tg_id", userID).Msg("[noop-telegram] membership check, assuming member")
	return true, nil
}
