package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/avolkovs/weather-helper/internal/bot"
	"github.com/avolkovs/weather-helper/internal/bot/state"
	"github.com/avolkovs/weather-helper/internal/config"
	"github.com/avolkovs/weather-helper/internal/database"
	"github.com/avolkovs/weather-helper/internal/logger"
	"github.com/avolkovs/weather-helper/internal/repository"
	"github.com/avolkovs/weather-helper/internal/scheduler"
	"github.com/avolkovs/weather-helper/internal/services"
	"github.com/avolkovs/weather-helper/internal/weatherapi"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	logger.Info("Starting Weather Helper Bot")

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	observationRepo := repository.NewObservationRepository(db)
	weatherClient := weatherapi.NewClient(cfg.WeatherAPIKey, nil)

	userService := services.NewUserService(userRepo, weatherClient)
	weatherService := services.NewWeatherService(userRepo, observationRepo, weatherClient)
	analyticsService := services.NewAnalyticsService(userRepo, observationRepo, weatherClient)
	logger.Info("Services initialized successfully")

	var stateManager state.Manager
	if cfg.Redis.Host != "" {
		redisManager, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisManager.Close()
		stateManager = redisManager
		logger.Info("Using Redis state manager")
	} else {
		stateManager = state.NewMemoryManager()
		logger.Info("Using in-memory state manager")
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, userService, weatherService,
		analyticsService, userRepo, stateManager, cfg.AdminIDs)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	broadcaster := scheduler.NewBroadcaster(userRepo, weatherService, analyticsService, telegramBot)
	jobs := scheduler.New(broadcaster)
	if err := jobs.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer jobs.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Fatalf("Bot stopped with error: %v", err)
	}
}
