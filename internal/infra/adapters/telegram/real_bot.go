package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-bonus-verify/internal/config"
	"telegram-bonus-verify/internal/domain/ports/adapter"
)

var _ adapter.TelegramBotAdapter = (*RealBotAdapter)(nil)

// RealBotAdapter talks to the Bot API through tgbotapi. The channel the
// membership check runs against is fixed at construction.
type RealBotAdapter struct {
	bot *tgbotapi.BotAPI

	// one of the two is set, depending on how the channel is configured
	channelID       int64
	channelUsername string
}

func NewRealBotAdapter(cfg *config.BotConfig) (*RealBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	a := &RealBotAdapter{bot: bot}
	if id, err := strconv.ParseInt(cfg.ChannelID, 10, 64); err == nil {
		a.channelID = id
	} else {
		a.channelUsername = cfg.ChannelID // "@channelname"
	}
	return a, nil
}

func (a *RealBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := a.bot.Send(msg)
	return err
}

func (a *RealBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	var kb [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		var btns []tgbotapi.InlineKeyboardButton
		for _, b := range row {
			if b.URL != "" {
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
			} else {
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
			}
		}
		kb = append(kb, btns)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(kb...)
	_, err := a.bot.Send(msg)
	return err
}

func (a *RealBotAdapter) AnswerCallback(ctx context.Context, callbackID string, text string, alert bool) error {
	cb := tgbotapi.NewCallback(callbackID, text)
	cb.ShowAlert = alert
	_, err := a.bot.Request(cb)
	return err
}

func (a *RealBotAdapter) EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	_, err := a.bot.Request(edit)
	return err
}

// IsChannelMember asks getChatMember and maps the status fail-closed: only
// member, administrator and creator count. Transport errors propagate so the
// caller can tell "not a member" from "could not ask".
func (a *RealBotAdapter) IsChannelMember(ctx context.Context, userID int64) (bool, error) {
	cfg := tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID:             a.channelID,
			SuperGroupUsername: a.channelUsername,
			UserID:             userID,
		},
	}
	member, err := a.bot.GetChatMember(cfg)
	if err != nil {
		return false, fmt.Errorf("get chat member: %w", err)
	}
	switch member.Status {
	case "member", "administrator", "creator":
		return true, nil
	}
	return false, nil
}
