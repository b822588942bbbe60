package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/avolkovs/weather-helper/internal/database"
	apperrors "github.com/avolkovs/weather-helper/internal/errors"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByTelegramID gets a user by their Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*database.User, error) {
	var user database.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewUserNotFound(telegramID)
		}
		return nil, apperrors.NewStoreError(err)
	}
	return &user, nil
}

// Register creates the user or, if the Telegram ID is already known, updates
// the city, coordinates and profile fields. Re-registration reactivates a
// soft-deleted user.
func (r *UserRepository) Register(ctx context.Context, user *database.User) (*database.User, error) {
	var existing database.User
	err := r.db.WithContext(ctx).Where("telegram_id = ?", user.TelegramID).First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"city":       user.City,
			"latitude":   user.Latitude,
			"longitude":  user.Longitude,
			"is_active":  true,
		}
		if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
			return nil, apperrors.NewStoreError(err)
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewStoreError(err)
	}

	user.IsActive = true
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return user, nil
}

// ListActive returns all users eligible for scheduled broadcasts.
func (r *UserRepository) ListActive(ctx context.Context) ([]database.User, error) {
	var users []database.User
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&users).Error; err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return users, nil
}

// CityCount is one row of the admin statistics city breakdown.
type CityCount struct {
	City  string
	Count int64
}

// Stats is the admin /stats summary.
type Stats struct {
	TotalUsers  int64
	ActiveUsers int64
	TopCities   []CityCount
}

// GetStats collects usage statistics for the admin command.
func (r *UserRepository) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats

	if err := r.db.WithContext(ctx).Model(&database.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	if err := r.db.WithContext(ctx).Model(&database.User{}).
		Where("is_active = ?", true).
		Count(&stats.ActiveUsers).Error; err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	if err := r.db.WithContext(ctx).Model(&database.User{}).
		Select("city, count(id) as count").
		Group("city").
		Order("count DESC").
		Limit(10).
		Scan(&stats.TopCities).Error; err != nil {
		return nil, apperrors.NewStoreError(err)
	}

	return &stats, nil
}
