package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"subscription-activation-bot/internal/config"
	"subscription-activation-bot/internal/domain/model"
	"subscription-activation-bot/internal/domain/ports/adapter"
	"subscription-activation-bot/internal/infra/metrics"
)

// RealTelegramBotAdapter implements adapter.TelegramBotAdapter using tgbotapi
// in webhook mode. The underlying client is safe for concurrent use, so one
// adapter serves all request handlers.
type RealTelegramBotAdapter struct {
	bot *tgbotapi.BotAPI
}

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

func NewRealTelegramBotAdapter(cfg *config.TelegramConfig) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("telegram config is nil")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	return &RealTelegramBotAdapter{bot: bot}, nil
}

// Username returns the bot's own username as reported by the platform.
func (r *RealTelegramBotAdapter) Username() string { return r.bot.Self.UserName }

func (r *RealTelegramBotAdapter) SendText(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.bot.Send(msg); err != nil {
		metrics.IncReply("failed")
		return fmt.Errorf("send message to chat %d: %w", chatID, err)
	}
	metrics.IncReply("sent")
	return nil
}

func (r *RealTelegramBotAdapter) DeleteWebhook(ctx context.Context) error {
	if _, err := r.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	return nil
}

func (r *RealTelegramBotAdapter) SetWebhook(ctx context.Context, url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := r.bot.Request(wh); err != nil {
		return fmt.Errorf("register webhook: %w", err)
	}
	return nil
}

func (r *RealTelegramBotAdapter) ParseUpdate(raw []byte) (*model.Update, error) {
	return ParseUpdate(raw)
}

// ParseUpdate normalizes a raw Telegram update payload into the parts the
// command router needs. Updates that carry no routable text message (edits,
// callbacks, channel posts, media without text) are not an error: they yield
// a nil update and are skipped upstream.
func ParseUpdate(raw []byte) (*model.Update, error) {
	var upd tgbotapi.Update
	if err := json.Unmarshal(raw, &upd); err != nil {
		return nil, fmt.Errorf("unmarshal update: %w", err)
	}

	msg := upd.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return nil, nil
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		// Photos, stickers and other non-text messages get no reply at all.
		return nil, nil
	}

	out := &model.Update{
		SenderID: strconv.FormatInt(msg.From.ID, 10),
		ChatID:   msg.Chat.ID,
		Text:     text,
	}
	if msg.IsCommand() {
		out.Command = msg.Command()
		if args := strings.Fields(msg.CommandArguments()); len(args) > 0 {
			out.Args = args
		}
	}
	return out, nil
}
