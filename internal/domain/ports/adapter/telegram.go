// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
	URL  string
}

// TelegramBotAdapter covers the outbound Bot API surface the verification
// flow needs. Notification sends are best-effort from the caller's point of
// view; IsChannelMember errors must propagate so callers can distinguish
// "not a member" from "could not ask".
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendButtons(ctx context.Context, chatID int64, text string, rows [][]InlineButton) error
	AnswerCallback(ctx context.Context, callbackID string, text string, alert bool) error
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error

	// IsChannelMember reports whether the user belongs to the configured
	// channel. Statuses member/administrator/creator count; anything else is
	// fail-closed false.
	IsChannelMember(ctx context.Context, userID int64) (bool, error)
}
