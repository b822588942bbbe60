package interfaces

import (
	"context"
	"time"

	"github.com/avolkovs/weather-helper/internal/analytics"
	"github.com/avolkovs/weather-helper/internal/database"
	"github.com/avolkovs/weather-helper/internal/weatherapi"
)

// UserStore is the user read/write surface the services depend on.
type UserStore interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*database.User, error)
	Register(ctx context.Context, user *database.User) (*database.User, error)
	ListActive(ctx context.Context) ([]database.User, error)
}

// ObservationStore is the append-only weather sample store.
type ObservationStore interface {
	Append(ctx context.Context, obs *database.WeatherObservation) error
	ListForUserBetween(ctx context.Context, userID uint, start, end time.Time) ([]database.WeatherObservation, error)
}

// WeatherProvider abstracts the weather HTTP API so tests can substitute a
// fake without touching process-wide state.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, city string) (*weatherapi.CurrentWeather, error)
	Forecast(ctx context.Context, city string, days int) (*weatherapi.ForecastBundle, error)
}

// WeatherReporter produces current-weather payloads for a user, persisting
// the observation as a side effect.
type WeatherReporter interface {
	CurrentForUser(ctx context.Context, telegramID int64) (*weatherapi.CurrentWeather, error)
}

// AnalyticsReporter produces the combined weekly report for a user.
type AnalyticsReporter interface {
	CombinedReport(ctx context.Context, telegramID int64) (*analytics.Report, error)
}

// MessageSender delivers one rendered message to a Telegram chat.
type MessageSender interface {
	Send(chatID int64, text string) error
}
