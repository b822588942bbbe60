package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkovs/weather-helper/internal/database"
	apperrors "github.com/avolkovs/weather-helper/internal/errors"
	"github.com/avolkovs/weather-helper/internal/weatherapi"
)

type fakeUserStore struct {
	user *database.User
	err  error
}

func (f *fakeUserStore) GetByTelegramID(_ context.Context, telegramID int64) (*database.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserStore) Register(_ context.Context, user *database.User) (*database.User, error) {
	return user, nil
}

func (f *fakeUserStore) ListActive(_ context.Context) ([]database.User, error) {
	if f.user == nil {
		return nil, nil
	}
	return []database.User{*f.user}, nil
}

type fakeObservationStore struct {
	observations []database.WeatherObservation
	err          error
	appended     []database.WeatherObservation
}

func (f *fakeObservationStore) Append(_ context.Context, obs *database.WeatherObservation) error {
	f.appended = append(f.appended, *obs)
	return f.err
}

func (f *fakeObservationStore) ListForUserBetween(_ context.Context, _ uint, _, _ time.Time) ([]database.WeatherObservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.observations, nil
}

type fakeProvider struct {
	current     *weatherapi.CurrentWeather
	currentErr  error
	bundle      *weatherapi.ForecastBundle
	forecastErr error
}

func (f *fakeProvider) CurrentWeather(_ context.Context, _ string) (*weatherapi.CurrentWeather, error) {
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	return f.current, nil
}

func (f *fakeProvider) Forecast(_ context.Context, _ string, _ int) (*weatherapi.ForecastBundle, error) {
	if f.forecastErr != nil {
		return nil, f.forecastErr
	}
	return f.bundle, nil
}

func testUser() *database.User {
	u := &database.User{TelegramID: 123456, City: "Москва", IsActive: true}
	u.ID = 1
	return u
}

// weekOfObservations covers 7 calendar days with a steadily falling
// temperature, rising humidity and strengthening wind.
func weekOfObservations(now time.Time) []database.WeatherObservation {
	var observations []database.WeatherObservation
	for i := 0; i < 7; i++ {
		observations = append(observations, database.WeatherObservation{
			UserID:      1,
			Temperature: 20.0 - float64(i),
			FeelsLike:   19.0 - float64(i),
			Pressure:    1010 + i,
			Humidity:    60 + i,
			WindSpeed:   5.0 + float64(i)*0.5,
			Description: "облачно",
			Timestamp:   now.AddDate(0, 0, -i).Add(-time.Hour),
		})
	}
	return observations
}

func newTestAnalyticsService(users *fakeUserStore, observations *fakeObservationStore, provider *fakeProvider, now time.Time) *AnalyticsService {
	svc := NewAnalyticsService(users, observations, provider)
	svc.now = func() time.Time { return now }
	return svc
}

func TestWeeklyAnalysisDerivesTrends(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestAnalyticsService(
		&fakeUserStore{user: testUser()},
		&fakeObservationStore{observations: weekOfObservations(now)},
		&fakeProvider{},
		now,
	)

	report, err := svc.WeeklyAnalysis(context.Background(), 123456)
	require.NoError(t, err)

	assert.Equal(t, "Москва", report.City)
	assert.Len(t, report.Daily, 7)
	require.NotNil(t, report.Period)
	assert.True(t, report.Period.Start.Before(report.Period.End))

	require.NotNil(t, report.Trends)
	assert.Equal(t, "decrease", string(report.Trends.Temperature.Direction))
	assert.Equal(t, "increase", string(report.Trends.Humidity.Direction))
	assert.Equal(t, "strengthening", string(report.Trends.Wind.Direction))

	// Historical-only path never carries a forecast.
	assert.Nil(t, report.Forecast)
}

func TestWeeklyAnalysisInsufficientData(t *testing.T) {
	svc := newTestAnalyticsService(
		&fakeUserStore{user: testUser()},
		&fakeObservationStore{},
		&fakeProvider{},
		time.Now(),
	)

	_, err := svc.WeeklyAnalysis(context.Background(), 123456)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientData)
}

func TestWeeklyAnalysisUserNotFound(t *testing.T) {
	svc := newTestAnalyticsService(
		&fakeUserStore{err: apperrors.NewUserNotFound(42)},
		&fakeObservationStore{},
		&fakeProvider{},
		time.Now(),
	)

	_, err := svc.WeeklyAnalysis(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestCombinedReportHalvesFailIndependently(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	// History present, provider down: the historical half still ships.
	svc := newTestAnalyticsService(
		&fakeUserStore{user: testUser()},
		&fakeObservationStore{observations: weekOfObservations(now)},
		&fakeProvider{forecastErr: apperrors.NewProviderError(errors.New("connection refused"))},
		now,
	)

	report, err := svc.CombinedReport(context.Background(), 123456)
	require.NoError(t, err)
	assert.True(t, report.HasHistory())
	assert.False(t, report.HasForecast())
	assert.Nil(t, report.Forecast)

	// No history, forecast present: the forward half still ships.
	svc = newTestAnalyticsService(
		&fakeUserStore{user: testUser()},
		&fakeObservationStore{},
		&fakeProvider{bundle: testBundle(now)},
		now,
	)

	report, err = svc.CombinedReport(context.Background(), 123456)
	require.NoError(t, err)
	assert.False(t, report.HasHistory())
	assert.True(t, report.HasForecast())
	assert.Nil(t, report.Trends)
}

func TestCombinedReportFailsOnlyOnUserLookup(t *testing.T) {
	svc := newTestAnalyticsService(
		&fakeUserStore{err: apperrors.NewUserNotFound(99)},
		&fakeObservationStore{},
		&fakeProvider{},
		time.Now(),
	)

	_, err := svc.CombinedReport(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestCombinedReportBothHalvesEmpty(t *testing.T) {
	svc := newTestAnalyticsService(
		&fakeUserStore{user: testUser()},
		&fakeObservationStore{},
		&fakeProvider{forecastErr: apperrors.NewProviderError(errors.New("timeout"))},
		time.Now(),
	)

	report, err := svc.CombinedReport(context.Background(), 123456)
	require.NoError(t, err)
	assert.True(t, report.Empty())
}
