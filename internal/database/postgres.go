package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/avolkovs/weather-helper/internal/config"
	"github.com/avolkovs/weather-helper/internal/logger"
)

// User is a registered bot user tied to a city. IsActive is a soft-delete
// flag: inactive users are excluded from scheduled broadcasts.
type User struct {
	gorm.Model
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
	LastName   string
	City       string `gorm:"not null"`
	Latitude   float64
	Longitude  float64
	IsActive   bool `gorm:"default:true"`
}

// WeatherObservation is one persisted weather sample for one user.
// Observations are append-only: analytics never mutates them.
type WeatherObservation struct {
	gorm.Model
	UserID      uint `gorm:"index"`
	User        User
	Temperature float64
	FeelsLike   float64
	Pressure    int
	Humidity    int
	WindSpeed   float64
	Description string
	Timestamp   time.Time `gorm:"index"`
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&User{}, &WeatherObservation{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	logger.Info("Database connection established and migrations completed")
	return db, nil
}
