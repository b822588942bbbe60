package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkovs/weather-helper/internal/database"
)

func obs(t time.Time, temp float64, humidity int, wind float64) database.WeatherObservation {
	return database.WeatherObservation{
		Temperature: temp,
		Humidity:    humidity,
		WindSpeed:   wind,
		Timestamp:   t,
	}
}

func day(d int, hour int) time.Time {
	return time.Date(2024, time.March, d, hour, 0, 0, 0, time.UTC)
}

func TestAggregateDailyGroupsByCalendarDate(t *testing.T) {
	observations := []database.WeatherObservation{
		obs(day(1, 8), 10.0, 60, 3.0),
		obs(day(1, 14), 14.0, 50, 5.0),
		obs(day(1, 20), 12.0, 70, 4.0),
		obs(day(2, 9), 20.0, 40, 2.0),
		obs(day(3, 9), -5.0, 80, 6.0),
		obs(day(3, 15), -1.0, 90, 8.0),
	}

	days := AggregateDaily(observations)
	require.Len(t, days, 3)
	SortByDate(days)

	first := days[0]
	assert.Equal(t, day(1, 0), first.Date)
	assert.Equal(t, 12.0, first.AvgTemp)
	assert.Equal(t, 10.0, first.MinTemp)
	assert.Equal(t, 14.0, first.MaxTemp)
	assert.Equal(t, 60.0, first.AvgHumidity)
	assert.Equal(t, 4.0, first.AvgWind)

	second := days[1]
	assert.Equal(t, 20.0, second.AvgTemp)
	assert.Equal(t, 20.0, second.MinTemp)
	assert.Equal(t, 20.0, second.MaxTemp)

	third := days[2]
	assert.Equal(t, -3.0, third.AvgTemp)
	assert.Equal(t, -5.0, third.MinTemp)
	assert.Equal(t, -1.0, third.MaxTemp)

	for _, d := range days {
		assert.LessOrEqual(t, d.MinTemp, d.AvgTemp)
		assert.LessOrEqual(t, d.AvgTemp, d.MaxTemp)
	}
}

func TestAggregateDailyEmptyInput(t *testing.T) {
	days := AggregateDaily(nil)
	assert.Empty(t, days)

	days = AggregateDaily([]database.WeatherObservation{})
	assert.Empty(t, days)
}

func TestAggregateDailyRoundsHalfUp(t *testing.T) {
	observations := []database.WeatherObservation{
		obs(day(1, 8), 20.04, 55, 3.33),
		obs(day(1, 12), 20.06, 56, 3.32),
	}

	days := AggregateDaily(observations)
	require.Len(t, days, 1)

	// (20.04+20.06)/2 = 20.05 rounds up to 20.1.
	assert.Equal(t, 20.1, days[0].AvgTemp)
	assert.Equal(t, 55.5, days[0].AvgHumidity)
	assert.Equal(t, 3.3, days[0].AvgWind)
	assert.Equal(t, 20.0, days[0].MinTemp)
	assert.Equal(t, 20.1, days[0].MaxTemp)
}

func TestSortByDate(t *testing.T) {
	days := []DailyAggregate{
		{Date: day(3, 0)},
		{Date: day(1, 0)},
		{Date: day(2, 0)},
	}
	SortByDate(days)
	assert.Equal(t, day(1, 0), days[0].Date)
	assert.Equal(t, day(2, 0), days[1].Date)
	assert.Equal(t, day(3, 0), days[2].Date)
}
