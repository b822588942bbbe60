package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/avolkovs/weather-helper/internal/errors"
)

func sampleDay(d int, temps []float64, descriptions []string) DaySamples {
	samples := make([]ForecastSample, len(temps))
	for i, temp := range temps {
		desc := "ясно"
		if i < len(descriptions) {
			desc = descriptions[i]
		}
		samples[i] = ForecastSample{
			Temperature: temp,
			Humidity:    50,
			WindSpeed:   3,
			Description: desc,
		}
	}
	return DaySamples{
		Date:    time.Date(2024, time.April, d, 0, 0, 0, 0, time.UTC),
		Samples: samples,
	}
}

func TestSummarizeForecastTruncatesToFiveDays(t *testing.T) {
	// Eight days, deliberately out of order: the first five by date survive.
	var days []DaySamples
	for _, d := range []int{5, 8, 1, 7, 3, 2, 6, 4} {
		days = append(days, sampleDay(d, []float64{10}, nil))
	}

	forecast, err := SummarizeForecast(days)
	require.NoError(t, err)
	require.Len(t, forecast.Daily, 5)

	for i, fd := range forecast.Daily {
		assert.Equal(t, time.Date(2024, time.April, i+1, 0, 0, 0, 0, time.UTC), fd.Date)
	}
}

func TestSummarizeForecastModalDescription(t *testing.T) {
	forecast, err := SummarizeForecast([]DaySamples{
		sampleDay(1, []float64{10, 11, 12}, []string{"ясно", "ясно", "дождь"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "ясно", forecast.Daily[0].Description)

	// Tie: the description seen first in input order wins.
	forecast, err = SummarizeForecast([]DaySamples{
		sampleDay(1, []float64{10, 11}, []string{"дождь", "ясно"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "дождь", forecast.Daily[0].Description)
}

func TestSummarizeForecastDayAggregates(t *testing.T) {
	forecast, err := SummarizeForecast([]DaySamples{
		sampleDay(1, []float64{10, 20}, nil),
	})
	require.NoError(t, err)

	day := forecast.Daily[0]
	assert.Equal(t, 15.0, day.AvgTemp)
	assert.Equal(t, 10.0, day.MinTemp)
	assert.Equal(t, 20.0, day.MaxTemp)
	assert.Equal(t, 50.0, day.AvgHumidity)
	assert.Equal(t, 3.0, day.AvgWind)
}

func TestSummarizeForecastPeriodSummary(t *testing.T) {
	forecast, err := SummarizeForecast([]DaySamples{
		sampleDay(1, []float64{10, 14}, nil), // avg 12, min 10, max 14
		sampleDay(2, []float64{20, 24}, nil), // avg 22, min 20, max 24
	})
	require.NoError(t, err)

	summary := forecast.Summary
	assert.Equal(t, 17.0, summary.AvgTemp)
	assert.Equal(t, 10.0, summary.MinTemp)
	assert.Equal(t, 24.0, summary.MaxTemp)
	assert.Equal(t, 50.0, summary.AvgHumidity)
	assert.Equal(t, 3.0, summary.AvgWind)
}

func TestSummarizeForecastNoUsableDays(t *testing.T) {
	_, err := SummarizeForecast(nil)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientData)

	// Days without samples are not usable.
	_, err = SummarizeForecast([]DaySamples{{Date: time.Now()}})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientData)
}
