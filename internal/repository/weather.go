package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/avolkovs/weather-helper/internal/database"
	apperrors "github.com/avolkovs/weather-helper/internal/errors"
)

// ObservationRepository handles persisted weather samples.
type ObservationRepository struct {
	db *gorm.DB
}

// NewObservationRepository creates a new observation repository
func NewObservationRepository(db *gorm.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

// Append stores one observation. Observations are never updated afterwards.
func (r *ObservationRepository) Append(ctx context.Context, obs *database.WeatherObservation) error {
	if obs.Timestamp.IsZero() {
		obs.Timestamp = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(obs).Error; err != nil {
		return apperrors.NewStoreError(err)
	}
	return nil
}

// ListForUserBetween returns the user's observations with timestamps in
// [start, end), ordered ascending.
func (r *ObservationRepository) ListForUserBetween(ctx context.Context, userID uint, start, end time.Time) ([]database.WeatherObservation, error) {
	var observations []database.WeatherObservation
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start, end).
		Order("timestamp ASC").
		Find(&observations).Error; err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return observations, nil
}
