package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/moviedeck/moviedeck/internal/core"
)

// Bot is the Telegram frontend for MovieDeck. It answers list commands with
// a numbered selection keyboard and replies to selections with movie details.
type Bot struct {
	api      *tgbotapi.BotAPI
	sessions *sessionManager
	catalog  core.CatalogService
	details  core.DetailsService
	config   core.ConfigurationProvider
	logger   *slog.Logger
}

// New creates a new Telegram Bot.
func New(
	token string,
	allowedUserIDs []int64,
	catalog core.CatalogService,
	details core.DetailsService,
	config core.ConfigurationProvider,
	logger *slog.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Bot{
		api:      api,
		sessions: newSessionManager(allowedUserIDs),
		catalog:  catalog,
		details:  details,
		config:   config,
		logger:   logger,
	}, nil
}

// Start starts the long-polling loop. It blocks until ctx is canceled.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("telegram bot started",
		slog.String("username", b.api.Self.UserName),
	)

	// Best effort: posters fall back to the built-in defaults if this fails.
	if _, err := b.config.Load(ctx); err != nil {
		b.logger.Warn("image configuration load failed",
			slog.String("error", err.Error()),
		)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram bot stopped")
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate dispatches an incoming Telegram update.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}
