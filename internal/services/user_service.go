package services

import (
	"context"

	"github.com/avolkovs/weather-helper/internal/database"
	"github.com/avolkovs/weather-helper/internal/interfaces"
	"github.com/avolkovs/weather-helper/internal/logger"
	"github.com/avolkovs/weather-helper/internal/weatherapi"
)

// UserService handles registration and user lookups.
type UserService struct {
	users    interfaces.UserStore
	provider interfaces.WeatherProvider
}

func NewUserService(users interfaces.UserStore, provider interfaces.WeatherProvider) *UserService {
	return &UserService{users: users, provider: provider}
}

// GetByTelegramID resolves a user by their external Telegram identifier.
// Matching is always on the external id, never on the internal row id.
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*database.User, error) {
	return s.users.GetByTelegramID(ctx, telegramID)
}

// Register validates the city against the weather provider and creates or
// updates the user record. The provider response supplies the coordinates
// stored alongside the city.
func (s *UserService) Register(ctx context.Context, telegramID int64, username, firstName, lastName, city string) (*database.User, *weatherapi.CurrentWeather, error) {
	weather, err := s.provider.CurrentWeather(ctx, city)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.Register(ctx, &database.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
		City:       city,
		Latitude:   weather.Latitude,
		Longitude:  weather.Longitude,
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Infof("Registered user %d with city %s", telegramID, city)
	return user, weather, nil
}
