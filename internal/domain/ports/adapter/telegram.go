package adapter

import (
	"context"

	"subscription-activation-bot/internal/domain/model"
)

// Sender delivers an outbound text reply to a chat.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// WebhookManager clears and registers the bot's webhook URL.
type WebhookManager interface {
	DeleteWebhook(ctx context.Context) error
	SetWebhook(ctx context.Context, url string) error
}

// UpdateParser turns a raw webhook body into a normalized update.
// A nil update with nil error means the payload carried nothing to route.
type UpdateParser interface {
	ParseUpdate(raw []byte) (*model.Update, error)
}

// TelegramBotAdapter is the full messaging-platform surface the bot consumes.
type TelegramBotAdapter interface {
	Sender
	WebhookManager
	UpdateParser
}
