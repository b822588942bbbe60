package analytics

import (
	"sort"
	"time"

	apperrors "github.com/avolkovs/weather-helper/internal/errors"
)

// ForecastSample is one sub-daily forecast point as delivered by the
// provider client.
type ForecastSample struct {
	Temperature float64
	FeelsLike   float64
	Pressure    int
	Humidity    float64
	WindSpeed   float64
	Description string
}

// DaySamples is one forward day's worth of samples, pre-grouped by the
// provider client.
type DaySamples struct {
	Date    time.Time
	Samples []ForecastSample
}

// ForecastDay mirrors DailyAggregate for a forward day, plus the dominant
// condition description of that day.
type ForecastDay struct {
	Date        time.Time
	AvgTemp     float64
	MinTemp     float64
	MaxTemp     float64
	AvgHumidity float64
	AvgWind     float64
	Description string
}

// ForecastSummary aggregates the forecast period as a whole.
type ForecastSummary struct {
	AvgTemp     float64
	MinTemp     float64
	MaxTemp     float64
	AvgHumidity float64
	AvgWind     float64
}

// Forecast is the summarized forward-looking half of a weekly report.
type Forecast struct {
	Daily   []ForecastDay
	Summary ForecastSummary
}

// maxForecastDays caps the forward horizon of a summarized forecast.
const maxForecastDays = 5

// SummarizeForecast reduces pre-grouped per-day forecast samples into at most
// five ForecastDay entries (first five by date) plus a period summary. The
// day's description is the modal one among its samples, ties broken by
// first-seen order. Zero usable days yields ErrInsufficientData.
func SummarizeForecast(days []DaySamples) (*Forecast, error) {
	sorted := make([]DaySamples, 0, len(days))
	for _, d := range days {
		if len(d.Samples) > 0 {
			sorted = append(sorted, d)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	if len(sorted) > maxForecastDays {
		sorted = sorted[:maxForecastDays]
	}
	if len(sorted) == 0 {
		return nil, apperrors.NewInsufficientData("forecast")
	}

	daily := make([]ForecastDay, 0, len(sorted))
	for _, d := range sorted {
		daily = append(daily, summarizeDay(d))
	}

	return &Forecast{
		Daily:   daily,
		Summary: summarizePeriod(daily),
	}, nil
}

func summarizeDay(d DaySamples) ForecastDay {
	var sumTemp, sumHumidity, sumWind float64
	minTemp := d.Samples[0].Temperature
	maxTemp := d.Samples[0].Temperature

	for _, s := range d.Samples {
		sumTemp += s.Temperature
		sumHumidity += s.Humidity
		sumWind += s.WindSpeed
		if s.Temperature < minTemp {
			minTemp = s.Temperature
		}
		if s.Temperature > maxTemp {
			maxTemp = s.Temperature
		}
	}

	n := float64(len(d.Samples))
	return ForecastDay{
		Date:        d.Date,
		AvgTemp:     round1(sumTemp / n),
		MinTemp:     round1(minTemp),
		MaxTemp:     round1(maxTemp),
		AvgHumidity: round1(sumHumidity / n),
		AvgWind:     round1(sumWind / n),
		Description: modalDescription(d.Samples),
	}
}

// modalDescription picks the most frequent condition label; on a tie the one
// seen earliest in the input wins.
func modalDescription(samples []ForecastSample) string {
	counts := make(map[string]int)
	order := make([]string, 0, len(samples))

	for _, s := range samples {
		if _, seen := counts[s.Description]; !seen {
			order = append(order, s.Description)
		}
		counts[s.Description]++
	}

	best := ""
	bestCount := 0
	for _, desc := range order {
		if counts[desc] > bestCount {
			best = desc
			bestCount = counts[desc]
		}
	}
	return best
}

func summarizePeriod(daily []ForecastDay) ForecastSummary {
	var sumTemp, sumHumidity, sumWind float64
	minTemp := daily[0].MinTemp
	maxTemp := daily[0].MaxTemp

	for _, d := range daily {
		sumTemp += d.AvgTemp
		sumHumidity += d.AvgHumidity
		sumWind += d.AvgWind
		if d.MinTemp < minTemp {
			minTemp = d.MinTemp
		}
		if d.MaxTemp > maxTemp {
			maxTemp = d.MaxTemp
		}
	}

	n := float64(len(daily))
	return ForecastSummary{
		AvgTemp:     round1(sumTemp / n),
		MinTemp:     minTemp,
		MaxTemp:     maxTemp,
		AvgHumidity: round1(sumHumidity / n),
		AvgWind:     round1(sumWind / n),
	}
}
