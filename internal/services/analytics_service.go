package services

import (
	"context"
	"time"

	"github.com/avolkovs/weather-helper/internal/analytics"
	"github.com/avolkovs/weather-helper/internal/database"
	apperrors "github.com/avolkovs/weather-helper/internal/errors"
	"github.com/avolkovs/weather-helper/internal/interfaces"
	"github.com/avolkovs/weather-helper/internal/logger"
)

// analysisWindow is the trailing history window a weekly report covers.
const analysisWindow = 7 * 24 * time.Hour

// AnalyticsService assembles weekly reports from persisted observations and
// the provider's forward forecast.
type AnalyticsService struct {
	users        interfaces.UserStore
	observations interfaces.ObservationStore
	provider     interfaces.WeatherProvider
	now          func() time.Time
}

func NewAnalyticsService(users interfaces.UserStore, observations interfaces.ObservationStore, provider interfaces.WeatherProvider) *AnalyticsService {
	return &AnalyticsService{
		users:        users,
		observations: observations,
		provider:     provider,
		now:          time.Now,
	}
}

// WeeklyAnalysis builds the historical-only report for the interactive
// command. No history at all is a hard failure: the user is explicitly told
// there is not enough data instead of receiving an empty report.
func (s *AnalyticsService) WeeklyAnalysis(ctx context.Context, telegramID int64) (*analytics.Report, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	report := &analytics.Report{City: user.City}
	if err := s.fillHistory(ctx, user, report); err != nil {
		return nil, err
	}
	return report, nil
}

// CombinedReport builds the broadcast report: trailing-week analysis merged
// with a 5-day forecast. The two halves fail independently — a missing half
// is left nil and the rest of the report is still delivered. Only an
// unresolvable user record fails the whole call.
func (s *AnalyticsService) CombinedReport(ctx context.Context, telegramID int64) (*analytics.Report, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	report := &analytics.Report{City: user.City}

	if err := s.fillHistory(ctx, user, report); err != nil {
		logger.Warningf("No weekly history for user %d: %v", telegramID, err)
	}

	if err := s.fillForecast(ctx, user, report); err != nil {
		logger.Warningf("No forecast for user %d (city %s): %v", telegramID, user.City, err)
	}

	return report, nil
}

func (s *AnalyticsService) fillHistory(ctx context.Context, user *database.User, report *analytics.Report) error {
	end := s.now()
	start := end.Add(-analysisWindow)

	observations, err := s.observations.ListForUserBetween(ctx, user.ID, start, end)
	if err != nil {
		return err
	}

	days := analytics.AggregateDaily(observations)
	if len(days) == 0 {
		return apperrors.NewInsufficientData("history")
	}
	analytics.SortByDate(days)

	report.Daily = days
	report.Period = &analytics.Period{
		Start: days[0].Date,
		End:   days[len(days)-1].Date,
	}
	report.Trends = analytics.DeriveTrends(days)
	return nil
}

func (s *AnalyticsService) fillForecast(ctx context.Context, user *database.User, report *analytics.Report) error {
	bundle, err := s.provider.Forecast(ctx, user.City, 5)
	if err != nil {
		return err
	}

	forecast, err := analytics.SummarizeForecast(bundle.Days)
	if err != nil {
		return err
	}

	report.Forecast = forecast
	return nil
}
