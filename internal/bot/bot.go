package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avolkovs/weather-helper/internal/bot/state"
	apperrors "github.com/avolkovs/weather-helper/internal/errors"
	"github.com/avolkovs/weather-helper/internal/logger"
	"github.com/avolkovs/weather-helper/internal/repository"
	"github.com/avolkovs/weather-helper/internal/services"
)

// Bot wires the Telegram update loop to the weather services.
type Bot struct {
	api        *tgbotapi.BotAPI
	users      *services.UserService
	weather    *services.WeatherService
	analytics  *services.AnalyticsService
	userRepo   *repository.UserRepository
	states     state.Manager
	adminIDs   map[int64]bool
	errHandler *apperrors.Handler
}

func NewBot(
	token string,
	users *services.UserService,
	weather *services.WeatherService,
	analytics *services.AnalyticsService,
	userRepo *repository.UserRepository,
	states state.Manager,
	adminIDs []int64,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}

	logger.Infof("Bot authorized on account %s", api.Self.UserName)
	return &Bot{
		api:        api,
		users:      users,
		weather:    weather,
		analytics:  analytics,
		userRepo:   userRepo,
		states:     states,
		adminIDs:   admins,
		errHandler: apperrors.NewHandler(logger.GetLogger()),
	}, nil
}

// Send delivers a plain text message to a chat. This also satisfies the
// broadcast loop's sender contract.
func (b *Bot) Send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) reply(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	_, err := b.api.Send(msg)
	return err
}

// Start runs the long-polling update loop until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if err := b.handleUpdate(ctx, update); err != nil {
				b.errHandler.Handle(ctx, err)
			}
		}
	}
}
