package scheduler

import (
	"context"
	"time"

	"github.com/avolkovs/weather-helper/internal/interfaces"
	"github.com/avolkovs/weather-helper/internal/logger"
	"github.com/avolkovs/weather-helper/internal/render"
)

// sendDelay spaces out per-user deliveries so broadcasts respect the weather
// provider's rate limits.
const sendDelay = 500 * time.Millisecond

// Broadcaster runs the per-user delivery loops for the scheduled pushes.
// The loop is intentionally sequential: the inter-send delay is honoured and
// one user's failure is isolated without coordination primitives.
type Broadcaster struct {
	users     interfaces.UserStore
	weather   interfaces.WeatherReporter
	analytics interfaces.AnalyticsReporter
	sender    interfaces.MessageSender
	delay     time.Duration
}

func NewBroadcaster(
	users interfaces.UserStore,
	weather interfaces.WeatherReporter,
	analytics interfaces.AnalyticsReporter,
	sender interfaces.MessageSender,
) *Broadcaster {
	return &Broadcaster{
		users:     users,
		weather:   weather,
		analytics: analytics,
		sender:    sender,
		delay:     sendDelay,
	}
}

// SendDailyWeather pushes current conditions to every active user, persisting
// each observation along the way. Per-user failures are logged and skipped.
func (b *Broadcaster) SendDailyWeather(ctx context.Context) error {
	logger.Info("Starting daily weather broadcast")

	users, err := b.users.ListActive(ctx)
	if err != nil {
		return err
	}

	for _, user := range users {
		weather, err := b.weather.CurrentForUser(ctx, user.TelegramID)
		if err != nil {
			logger.Warningf("Daily weather unavailable for user %d (city %s): %v", user.TelegramID, user.City, err)
			continue
		}

		if err := b.sender.Send(user.TelegramID, render.DailyWeather(weather)); err != nil {
			logger.Errorf("Failed to deliver daily weather to user %d: %v", user.TelegramID, err)
			continue
		}

		logger.Infof("Delivered daily weather to user %d", user.TelegramID)
		if err := b.pause(ctx); err != nil {
			return err
		}
	}

	logger.Info("Completed daily weather broadcast")
	return nil
}

// SendWeeklyAnalysis pushes the combined weekly report to every active user.
// Users with neither history nor forecast are skipped silently; any per-user
// error is logged and never aborts the batch.
func (b *Broadcaster) SendWeeklyAnalysis(ctx context.Context) error {
	logger.Info("Starting weekly analysis broadcast")

	users, err := b.users.ListActive(ctx)
	if err != nil {
		return err
	}

	for _, user := range users {
		report, err := b.analytics.CombinedReport(ctx, user.TelegramID)
		if err != nil {
			logger.Errorf("Weekly report failed for user %d: %v", user.TelegramID, err)
			continue
		}
		if report.Empty() {
			logger.Warningf("No weekly data for user %d, skipping", user.TelegramID)
			continue
		}

		if err := b.sender.Send(user.TelegramID, render.CombinedWeekly(report)); err != nil {
			logger.Errorf("Failed to deliver weekly analysis to user %d: %v", user.TelegramID, err)
			continue
		}

		logger.Infof("Delivered weekly analysis to user %d", user.TelegramID)
		if err := b.pause(ctx); err != nil {
			return err
		}
	}

	logger.Info("Completed weekly analysis broadcast")
	return nil
}

func (b *Broadcaster) pause(ctx context.Context) error {
	if b.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(b.delay):
		return nil
	}
}
