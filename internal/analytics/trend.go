package analytics

import "math"

// Direction labels the movement of a metric between the early and late
// windows of a day series.
type Direction string

const (
	DirectionIncrease      Direction = "increase"
	DirectionDecrease      Direction = "decrease"
	DirectionStable        Direction = "stable"
	DirectionStrengthening Direction = "strengthening"
	DirectionWeakening     Direction = "weakening"
)

// trendThreshold absorbs sensor and sampling noise: deltas below 1.0 of the
// metric's unit (°C, %, m/s) classify as stable.
const trendThreshold = 1.0

// Trend is a signed delta plus its direction label for one metric.
type Trend struct {
	Delta     float64
	Direction Direction
}

// Trends covers the three tracked metrics for a week of history.
type Trends struct {
	Temperature Trend
	Humidity    Trend
	Wind        Trend
}

// DeriveTrends compares the first and last windows of an ascending-sorted day
// series. The window length is min(2, n/2), so windows never overlap and one
// noisy day cannot dominate once enough history exists. Returns nil when
// fewer than two days are available; callers treat that as "no trend".
func DeriveTrends(days []DailyAggregate) *Trends {
	n := len(days)
	if n < 2 {
		return nil
	}

	k := n / 2
	if k > 2 {
		k = 2
	}

	early := days[:k]
	late := days[n-k:]

	return &Trends{
		Temperature: classify(windowDelta(early, late, func(d DailyAggregate) float64 { return d.AvgTemp }),
			DirectionIncrease, DirectionDecrease),
		Humidity: classify(windowDelta(early, late, func(d DailyAggregate) float64 { return d.AvgHumidity }),
			DirectionIncrease, DirectionDecrease),
		Wind: classify(windowDelta(early, late, func(d DailyAggregate) float64 { return d.AvgWind }),
			DirectionStrengthening, DirectionWeakening),
	}
}

func windowDelta(early, late []DailyAggregate, metric func(DailyAggregate) float64) float64 {
	return windowMean(late, metric) - windowMean(early, metric)
}

func windowMean(days []DailyAggregate, metric func(DailyAggregate) float64) float64 {
	var sum float64
	for _, d := range days {
		sum += metric(d)
	}
	return sum / float64(len(days))
}

func classify(delta float64, up, down Direction) Trend {
	t := Trend{Delta: delta, Direction: DirectionStable}
	if math.Abs(delta) >= trendThreshold {
		if delta > 0 {
			t.Direction = up
		} else {
			t.Direction = down
		}
	}
	return t
}
