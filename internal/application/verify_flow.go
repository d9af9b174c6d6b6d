// File: internal/application/verify_flow.go
package application

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-bonus-verify/internal/domain/ports/adapter"
	"telegram-bonus-verify/internal/infra/metrics"
	"telegram-bonus-verify/internal/usecase"
)

const recheckPrefix = "recheck:"

// User-facing replies. The bot always answers with readable text, never a
// raw error.
const (
	textWelcome     = "Welcome! To verify your membership and claim your bonus, please use the link provided in the chat."
	textExpired     = "❌ Verification link expired. Please restart from the chat."
	textVerified    = "✅ Verification successful.\nReturn to the chat to claim your bonus."
	textNotMember   = "❌ You are not following our Telegram channel.\nPlease join and tap Re-check."
	textCheckFailed = "⚠️ Could not check your membership right now. Please tap Re-check in a moment."

	answerVerified    = "Verified!"
	answerExpired     = "Verification expired."
	answerStillNot    = "Still not a member. Join the channel first."
	answerCheckFailed = "Could not check membership. Try again."
)

// VerifyFlow routes inbound Telegram updates to the bonus lifecycle.
// A "/start <token>" message runs the membership check and marks the token
// verified; a "recheck:<token>" callback repeats the check. All outbound Bot
// API calls are best-effort: failures are logged and swallowed so the webhook
// keeps answering 200 to Telegram.
type VerifyFlow struct {
	bonusUC     usecase.BonusUseCase
	bot         adapter.TelegramBotAdapter
	channelLink string // empty when no public channel username is configured
	log         *zerolog.Logger
}

func NewVerifyFlow(bonusUC usecase.BonusUseCase, bot adapter.TelegramBotAdapter, channelUsername string, logger *zerolog.Logger) *VerifyFlow {
	link := ""
	if channelUsername != "" {
		link = "https://t.me/" + strings.TrimPrefix(channelUsername, "@")
	}
	return &VerifyFlow{
		bonusUC:     bonusUC,
		bot:         bot,
		channelLink: link,
		log:         logger,
	}
}

// HandleUpdate never returns an error: Telegram retries on anything but a
// clean 200, which only multiplies failures.
func (f *VerifyFlow) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		f.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		f.handleCallback(ctx, update.CallbackQuery)
	}
}

func (f *VerifyFlow) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.IsCommand() || msg.Command() != "start" {
		metrics.IncTelegramUpdate("other")
		return
	}
	metrics.IncTelegramUpdate("start")

	chatID := msg.Chat.ID
	token := strings.TrimSpace(msg.CommandArguments())
	if token == "" {
		f.send(ctx, chatID, textWelcome)
		return
	}

	st, err := f.bonusUC.CheckStatus(ctx, token)
	if err != nil {
		f.log.Error().Err(err).Msg("status lookup failed during /start")
		f.sendRecheck(ctx, chatID, textCheckFailed, token)
		return
	}
	if !st.Found || st.Expired {
		f.send(ctx, chatID, textExpired)
		return
	}

	member, err := f.bot.IsChannelMember(ctx, msg.From.ID)
	if err != nil {
		metrics.IncMembershipCheck("error")
		f.log.Error().Err(err).Int64("tg_id", msg.From.ID).Msg("membership check failed")
		f.sendRecheck(ctx, chatID, textCheckFailed, token)
		return
	}
	if !member {
		metrics.IncMembershipCheck("not_member")
		f.sendRecheck(ctx, chatID, textNotMember, token)
		return
	}
	metrics.IncMembershipCheck("member")

	if err := f.bonusUC.MarkVerified(ctx, token, msg.From.ID); err != nil {
		f.log.Error().Err(err).Msg("mark verified failed")
		f.sendRecheck(ctx, chatID, textCheckFailed, token)
		return
	}
	metrics.IncBonusVerified("start")
	f.send(ctx, chatID, textVerified)
}

func (f *VerifyFlow) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if !strings.HasPrefix(cb.Data, recheckPrefix) {
		metrics.IncTelegramUpdate("other")
		f.answer(ctx, cb.ID, "", false)
		return
	}
	metrics.IncTelegramUpdate("recheck")
	token := strings.TrimPrefix(cb.Data, recheckPrefix)

	st, err := f.bonusUC.CheckStatus(ctx, token)
	if err != nil {
		f.log.Error().Err(err).Msg("status lookup failed during recheck")
		f.answer(ctx, cb.ID, answerCheckFailed, false)
		return
	}
	if !st.Found || st.Expired {
		f.answer(ctx, cb.ID, answerExpired, true)
		f.editOrigin(ctx, cb, textExpired)
		return
	}

	member, err := f.bot.IsChannelMember(ctx, cb.From.ID)
	if err != nil {
		metrics.IncMembershipCheck("error")
		f.log.Error().Err(err).Int64("tg_id", cb.From.ID).Msg("membership check failed")
		f.answer(ctx, cb.ID, answerCheckFailed, false)
		return
	}
	if !member {
		metrics.IncMembershipCheck("not_member")
		f.answer(ctx, cb.ID, answerStillNot, false)
		return
	}
	metrics.IncMembershipCheck("member")

	if err := f.bonusUC.MarkVerified(ctx, token, cb.From.ID); err != nil {
		f.log.Error().Err(err).Msg("mark verified failed")
		f.answer(ctx, cb.ID, answerCheckFailed, false)
		return
	}
	metrics.IncBonusVerified("recheck")
	f.answer(ctx, cb.ID, answerVerified, false)
	f.editOrigin(ctx, cb, textVerified)
}

// recheckRows builds the inline keyboard offered to a not-yet-member user.
// The Join Channel button is only present when a public channel link exists.
func (f *VerifyFlow) recheckRows(token string) [][]adapter.InlineButton {
	row := []adapter.InlineButton{}
	if f.channelLink != "" {
		row = append(row, adapter.InlineButton{Text: "Join Channel", URL: f.channelLink})
	}
	row = append(row, adapter.InlineButton{Text: "Re-check", Data: recheckPrefix + token})
	return [][]adapter.InlineButton{row}
}

// --- best-effort outbound wrappers ---

func (f *VerifyFlow) send(ctx context.Context, chatID int64, text string) {
	if err := f.bot.SendMessage(ctx, chatID, text); err != nil {
		metrics.IncTelegramSendFailure()
		f.log.Warn().Err(err).Int64("chat_id", chatID).Msg("send message failed")
	}
}

func (f *VerifyFlow) sendRecheck(ctx context.Context, chatID int64, text, token string) {
	if err := f.bot.SendButtons(ctx, chatID, text, f.recheckRows(token)); err != nil {
		metrics.IncTelegramSendFailure()
		f.log.Warn().Err(err).Int64("chat_id", chatID).Msg("send buttons failed")
	}
}

func (f *VerifyFlow) answer(ctx context.Context, callbackID, text string, alert bool) {
	if err := f.bot.AnswerCallback(ctx, callbackID, text, alert); err != nil {
		metrics.IncTelegramSendFailure()
		f.log.Warn().Err(err).Msg("answer callback failed")
	}
}

func (f *VerifyFlow) editOrigin(ctx context.Context, cb *tgbotapi.CallbackQuery, text string) {
	if cb.Message == nil {
		return
	}
	if err := f.bot.EditMessageText(ctx, cb.Message.Chat.ID, cb.Message.MessageID, text); err != nil {
		metrics.IncTelegramSendFailure()
		f.log.Warn().Err(err).Msg("edit message failed")
	}
}
