package services

import (
	"context"

	"github.com/avolkovs/weather-helper/internal/analytics"
	"github.com/avolkovs/weather-helper/internal/database"
	"github.com/avolkovs/weather-helper/internal/interfaces"
	"github.com/avolkovs/weather-helper/internal/logger"
	"github.com/avolkovs/weather-helper/internal/weatherapi"
)

// WeatherService serves current weather and forward forecasts for registered
// users. Every successful current-weather fetch is persisted as an
// observation so the weekly analytics has history to work with.
type WeatherService struct {
	users        interfaces.UserStore
	observations interfaces.ObservationStore
	provider     interfaces.WeatherProvider
}

func NewWeatherService(users interfaces.UserStore, observations interfaces.ObservationStore, provider interfaces.WeatherProvider) *WeatherService {
	return &WeatherService{
		users:        users,
		observations: observations,
		provider:     provider,
	}
}

// CurrentForUser fetches current conditions for the user's registered city
// and appends the observation. A failed append is logged but does not hide
// the weather from the user.
func (s *WeatherService) CurrentForUser(ctx context.Context, telegramID int64) (*weatherapi.CurrentWeather, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	weather, err := s.provider.CurrentWeather(ctx, user.City)
	if err != nil {
		return nil, err
	}

	obs := &database.WeatherObservation{
		UserID:      user.ID,
		Temperature: weather.Temperature,
		FeelsLike:   weather.FeelsLike,
		Pressure:    weather.Pressure,
		Humidity:    weather.Humidity,
		WindSpeed:   weather.WindSpeed,
		Description: weather.Description,
		Timestamp:   weather.Timestamp,
	}
	if err := s.observations.Append(ctx, obs); err != nil {
		logger.Errorf("Failed to persist observation for user %d: %v", telegramID, err)
	}

	return weather, nil
}

// ForecastForUser fetches and summarizes a 5-day forecast for the user's
// registered city.
func (s *WeatherService) ForecastForUser(ctx context.Context, telegramID int64) (*analytics.Forecast, *database.User, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, nil, err
	}

	bundle, err := s.provider.Forecast(ctx, user.City, 5)
	if err != nil {
		return nil, user, err
	}

	forecast, err := analytics.SummarizeForecast(bundle.Days)
	if err != nil {
		return nil, user, err
	}
	return forecast, user, nil
}
