package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"subscription-activation-bot/internal/config"
	"subscription-activation-bot/internal/domain"
	"subscription-activation-bot/internal/domain/model"
	"subscription-activation-bot/internal/domain/ports/adapter"
	"subscription-activation-bot/internal/domain/ports/repository"
	"subscription-activation-bot/internal/infra/logging"
)

// User-facing reply texts. The payment links are configuration, the rest is
// static data.
const (
	msgStart = "Welcome! Choose a subscription:\n" +
		"1. Monthly subscription — 149 RUB\n" +
		"2. Yearly subscription — 1099 RUB\n\n" +
		"Send 1 or 2 to get a payment link."
	msgChoosePrompt   = "Please send '1' or '2'."
	msgConfirmUsage   = "Usage: /confirm <month|year>"
	msgHelp           = "/start /confirm <month|year> /code /help"
	msgNoCode         = "Code not found. Pay for a subscription first."
	msgStoreFailure   = "Something went wrong. Please try again later."
	msgSlowDown       = "Too many requests. Please slow down."
	msgUnknownCommand = "Unknown command. Send /help for the list of commands."
)

// RateLimiter caps how many updates a single sender may have processed per
// window. Implemented by the Redis limiter; tests substitute fakes.
type RateLimiter interface {
	Allow(ctx context.Context, senderID string, limit int, window time.Duration) (bool, error)
}

// Router maps an inbound update to exactly one handler and executes it,
// producing at most one outbound text reply.
type Router struct {
	sender  adapter.Sender
	repo    repository.ActivationRepository
	limiter RateLimiter
	log     *zerolog.Logger

	storeTimeout time.Duration
	rateLimit    int
	payLinkMonth string
	payLinkYear  string
}

func NewRouter(
	sender adapter.Sender,
	repo repository.ActivationRepository,
	limiter RateLimiter,
	cfg *config.RouterConfig,
	logger *zerolog.Logger,
) *Router {
	return &Router{
		sender:       sender,
		repo:         repo,
		limiter:      limiter,
		log:          logger,
		storeTimeout: cfg.StoreTimeout,
		rateLimit:    cfg.RateLimit,
		payLinkMonth: cfg.PayLinkMonth,
		payLinkYear:  cfg.PayLinkYear,
	}
}

// logger derives a per-update logger carrying the trace and chat fields the
// web layer put into the context.
func (r *Router) logger(ctx context.Context) *zerolog.Logger {
	return logging.With(ctx, r.log)
}

// Dispatch routes one normalized update. Failures are terminal here: they are
// logged and surfaced to the user as a chat reply, never escalated to the
// HTTP layer (the platform retries non-200 deliveries, which would duplicate
// processing).
func (r *Router) Dispatch(ctx context.Context, upd *model.Update) error {
	if upd == nil {
		return nil
	}

	if r.limiter != nil && r.rateLimit > 0 {
		allowed, err := r.limiter.Allow(ctx, upd.SenderID, r.rateLimit, time.Minute)
		if err != nil {
			// Fail open: a limiter outage must not take the bot down.
			r.logger(ctx).Warn().Err(err).Str("sender", upd.SenderID).Msg("rate limiter unavailable")
		} else if !allowed {
			return r.reply(ctx, upd.ChatID, msgSlowDown)
		}
	}

	switch upd.Command {
	case "":
		return r.choosePlan(ctx, upd)
	case "start":
		return r.reply(ctx, upd.ChatID, msgStart)
	case "help":
		return r.reply(ctx, upd.ChatID, msgHelp)
	case "confirm":
		return r.confirmPayment(ctx, upd)
	case "code":
		return r.getCode(ctx, upd)
	default:
		return r.reply(ctx, upd.ChatID, msgUnknownCommand)
	}
}

// choosePlan is a pure function of the input text: no store access.
func (r *Router) choosePlan(ctx context.Context, upd *model.Update) error {
	switch upd.Text {
	case "1":
		return r.reply(ctx, upd.ChatID, "Pay for the monthly subscription:\n"+r.payLinkMonth)
	case "2":
		return r.reply(ctx, upd.ChatID, "Pay for the yearly subscription:\n"+r.payLinkYear)
	default:
		return r.reply(ctx, upd.ChatID, msgChoosePrompt)
	}
}

func (r *Router) confirmPayment(ctx context.Context, upd *model.Update) error {
	if len(upd.Args) == 0 {
		return r.reply(ctx, upd.ChatID, msgConfirmUsage)
	}
	plan, ok := model.ParsePlan(upd.Args[0])
	if !ok {
		return r.reply(ctx, upd.ChatID, msgConfirmUsage)
	}

	rec := &model.ActivationRecord{Code: generateActivationCode(), Plan: plan}

	// The reply must reference a durably committed code, so the write comes
	// first and runs under the store timeout.
	storeCtx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()
	if err := r.repo.Save(storeCtx, upd.SenderID, rec); err != nil {
		r.logger(ctx).Error().Err(err).Str("sender", upd.SenderID).Msg("save activation record")
		return r.reply(ctx, upd.ChatID, msgStoreFailure)
	}

	return r.reply(ctx, upd.ChatID, fmt.Sprintf("Payment confirmed. Your code: %s", rec.Code))
}

func (r *Router) getCode(ctx context.Context, upd *model.Update) error {
	storeCtx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()
	rec, err := r.repo.Find(storeCtx, upd.SenderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return r.reply(ctx, upd.ChatID, msgNoCode)
		}
		r.logger(ctx).Error().Err(err).Str("sender", upd.SenderID).Msg("load activation record")
		return r.reply(ctx, upd.ChatID, msgStoreFailure)
	}
	return r.reply(ctx, upd.ChatID, fmt.Sprintf("Your code: %s\nPlan: %s", rec.Code, rec.Plan))
}

func (r *Router) reply(ctx context.Context, chatID int64, text string) error {
	if err := r.sender.SendText(ctx, chatID, text); err != nil {
		r.logger(ctx).Error().Err(err).Int64("chat", chatID).Msg("send reply")
		return err
	}
	return nil
}
