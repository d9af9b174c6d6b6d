//go:build !integration

package api_test

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-bonus-verify/internal/domain/ports/adapter"
	"telegram-bonus-verify/internal/usecase"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type mockBonusUC struct {
	IssueFunc       func(ctx context.Context) (*usecase.Issued, error)
	CheckStatusFunc func(ctx context.Context, token string) (usecase.Status, error)

	issueCalls  int
	statusCalls []string
	marked      []string
}

var _ usecase.BonusUseCase = (*mockBonusUC)(nil)

func (m *mockBonusUC) Issue(ctx context.Context) (*usecase.Issued, error) {
	m.issueCalls++
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx)
	}
	return &usecase.Issued{
		Token: "deadbeefdeadbeefdeadbeefdeadbeef",
		Link:  "https://t.me/test_bot?start=deadbeefdeadbeefdeadbeefdeadbeef",
		TTL:   600 * time.Second,
	}, nil
}

func (m *mockBonusUC) CheckStatus(ctx context.Context, token string) (usecase.Status, error) {
	m.statusCalls = append(m.statusCalls, token)
	if m.CheckStatusFunc != nil {
		return m.CheckStatusFunc(ctx, token)
	}
	return usecase.Status{}, nil
}

func (m *mockBonusUC) MarkVerified(ctx context.Context, token string, telegramID int64) error {
	m.marked = append(m.marked, token)
	return nil
}

// mockBot is just enough of an adapter for the webhook handler to drive the
// verify flow in tests.
type mockBot struct {
	member   bool
	messages []string
}

var _ adapter.TelegramBotAdapter = (*mockBot)(nil)

func (b *mockBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	b.messages = append(b.messages, text)
	return nil
}

func (b *mockBot) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	b.messages = append(b.messages, text)
	return nil
}

func (b *mockBot) AnswerCallback(ctx context.Context, callbackID string, text string, alert bool) error {
	return nil
}

func (b *mockBot) EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error {
	return nil
}

func (b *mockBot) IsChannelMember(ctx context.Context, userID int64) (bool, error) {
	return b.member, nil
}
