//go:build !integration

package application_test

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"telegram-bonus-verify/internal/domain/ports/adapter"
	"telegram-bonus-verify/internal/usecase"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// mockBonusUC lets each test script the lifecycle answers.
type mockBonusUC struct {
	IssueFunc        func(ctx context.Context) (*usecase.Issued, error)
	CheckStatusFunc  func(ctx context.Context, token string) (usecase.Status, error)
	MarkVerifiedFunc func(ctx context.Context, token string, telegramID int64) error

	markedTokens []string
	markedUsers  []int64
}

var _ usecase.BonusUseCase = (*mockBonusUC)(nil)

func (m *mockBonusUC) Issue(ctx context.Context) (*usecase.Issued, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx)
	}
	return &usecase.Issued{}, nil
}

func (m *mockBonusUC) CheckStatus(ctx context.Context, token string) (usecase.Status, error) {
	if m.CheckStatusFunc != nil {
		return m.CheckStatusFunc(ctx, token)
	}
	return usecase.Status{}, nil
}

func (m *mockBonusUC) MarkVerified(ctx context.Context, token string, telegramID int64) error {
	m.markedTokens = append(m.markedTokens, token)
	m.markedUsers = append(m.markedUsers, telegramID)
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, token, telegramID)
	}
	return nil
}

type sentMessage struct {
	ChatID int64
	Text   string
	Rows   [][]adapter.InlineButton
}

type sentAnswer struct {
	CallbackID string
	Text       string
	Alert      bool
}

type sentEdit struct {
	ChatID    int64
	MessageID int
	Text      string
}

// mockBot records every outbound call and lets tests script the membership
// answer and injected failures.
type mockBot struct {
	mu sync.Mutex

	MemberFunc func(ctx context.Context, userID int64) (bool, error)
	sendErr    error

	messages []sentMessage
	answers  []sentAnswer
	edits    []sentEdit
}

var _ adapter.TelegramBotAdapter = (*mockBot)(nil)

func (b *mockBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, sentMessage{ChatID: chatID, Text: text})
	return b.sendErr
}

func (b *mockBot) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, sentMessage{ChatID: chatID, Text: text, Rows: rows})
	return b.sendErr
}

func (b *mockBot) AnswerCallback(ctx context.Context, callbackID string, text string, alert bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.answers = append(b.answers, sentAnswer{CallbackID: callbackID, Text: text, Alert: alert})
	return b.sendErr
}

func (b *mockBot) EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.edits = append(b.edits, sentEdit{ChatID: chatID, MessageID: messageID, Text: text})
	return b.sendErr
}

func (b *mockBot) IsChannelMember(ctx context.Context, userID int64) (bool, error) {
	if b.MemberFunc != nil {
		return b.MemberFunc(ctx, userID)
	}
	return false, nil
}
