package analytics

// Report is the engine's unified output: backward-looking daily analysis and
// trends merged with the forward forecast. Either half may be nil — they fail
// independently. Rendering layers consume only these structured fields.
type Report struct {
	City     string
	Period   *Period
	Daily    []DailyAggregate
	Trends   *Trends
	Forecast *Forecast
}

// HasHistory reports whether the backward-looking half is populated.
func (r *Report) HasHistory() bool {
	return r != nil && len(r.Daily) > 0
}

// HasForecast reports whether the forward-looking half is populated.
func (r *Report) HasForecast() bool {
	return r != nil && r.Forecast != nil && len(r.Forecast.Daily) > 0
}

// Empty reports whether both halves are missing; broadcast skips such users.
func (r *Report) Empty() bool {
	return !r.HasHistory() && !r.HasForecast()
}
