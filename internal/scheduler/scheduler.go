package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/avolkovs/weather-helper/internal/logger"
)

const (
	// dailyCron fires the morning weather push at 08:00.
	dailyCron = "0 8 * * *"
	// weeklyCron fires the weekly analysis push on Sunday at 12:00.
	weeklyCron = "0 12 * * 0"

	broadcastTimeout = 10 * time.Minute
)

// Scheduler triggers the daily and weekly broadcasts.
type Scheduler struct {
	scheduler   *gocron.Scheduler
	broadcaster *Broadcaster
}

func New(broadcaster *Broadcaster) *Scheduler {
	return &Scheduler{
		scheduler:   gocron.NewScheduler(time.Local),
		broadcaster: broadcaster,
	}
}

// Start registers both jobs and starts the scheduler in the background.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Cron(dailyCron).Do(func() {
		s.run("daily weather", s.broadcaster.SendDailyWeather)
	}); err != nil {
		return err
	}
	logger.Info("Scheduled daily weather broadcast at 08:00")

	if _, err := s.scheduler.Cron(weeklyCron).Do(func() {
		s.run("weekly analysis", s.broadcaster.SendWeeklyAnalysis)
	}); err != nil {
		return err
	}
	logger.Info("Scheduled weekly analysis broadcast on Sunday at 12:00")

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run(name string, job func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), broadcastTimeout)
	defer cancel()

	if err := job(ctx); err != nil {
		logger.Errorf("Broadcast %s failed: %v", name, err)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
