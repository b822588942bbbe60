package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/avolkovs/weather-helper/internal/database"
)

// DailyAggregate is the reduction of all same-day observations for one user.
// Invariant: MinTemp <= AvgTemp <= MaxTemp. Never built from an empty bucket.
type DailyAggregate struct {
	Date        time.Time
	AvgTemp     float64
	MinTemp     float64
	MaxTemp     float64
	AvgHumidity float64
	AvgWind     float64
}

// Period is the inclusive date range a report covers.
type Period struct {
	Start time.Time
	End   time.Time
}

// round1 rounds to one decimal place, half up. The epsilon compensates for
// decimal halfway values that sit just below .x5 in binary representation.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5+1e-9) / 10
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AggregateDaily partitions observations by the calendar date of their
// timestamp and reduces each bucket to per-day averages and extremes.
// The returned slice is in no particular order; callers sort it before use.
// An empty input yields an empty result, not an error.
func AggregateDaily(observations []database.WeatherObservation) []DailyAggregate {
	buckets := make(map[time.Time][]database.WeatherObservation)
	for _, obs := range observations {
		day := dateOf(obs.Timestamp)
		buckets[day] = append(buckets[day], obs)
	}

	result := make([]DailyAggregate, 0, len(buckets))
	for day, group := range buckets {
		var sumTemp, sumHumidity, sumWind float64
		minTemp := group[0].Temperature
		maxTemp := group[0].Temperature

		for _, obs := range group {
			sumTemp += obs.Temperature
			sumHumidity += float64(obs.Humidity)
			sumWind += obs.WindSpeed
			if obs.Temperature < minTemp {
				minTemp = obs.Temperature
			}
			if obs.Temperature > maxTemp {
				maxTemp = obs.Temperature
			}
		}

		n := float64(len(group))
		result = append(result, DailyAggregate{
			Date:        day,
			AvgTemp:     round1(sumTemp / n),
			MinTemp:     round1(minTemp),
			MaxTemp:     round1(maxTemp),
			AvgHumidity: round1(sumHumidity / n),
			AvgWind:     round1(sumWind / n),
		})
	}

	return result
}

// SortByDate orders aggregates ascending by date in place.
func SortByDate(days []DailyAggregate) {
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
}
