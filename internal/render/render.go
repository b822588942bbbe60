// Package render turns the engine's structured reports into Telegram message
// text. Only formatting lives here; the report fields are the contract.
package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/avolkovs/weather-helper/internal/analytics"
	"github.com/avolkovs/weather-helper/internal/weatherapi"
)

const dateFormat = "02.01"

// CurrentWeather renders the interactive "weather now" reply.
func CurrentWeather(w *weatherapi.CurrentWeather) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Погода в городе %s (%s):\n\n", w.City, w.Country)
	fmt.Fprintf(&b, "🌡️ Температура: %.1f°C (ощущается как %.1f°C)\n", w.Temperature, w.FeelsLike)
	fmt.Fprintf(&b, "💧 Влажность: %d%%\n", w.Humidity)
	fmt.Fprintf(&b, "🌬️ Ветер: %.1f м/с\n", w.WindSpeed)
	fmt.Fprintf(&b, "🔍 %s\n\n", capitalize(w.Description))
	fmt.Fprintf(&b, "🌅 Восход солнца: %s\n", w.Sunrise.Format("15:04:05"))
	fmt.Fprintf(&b, "🌇 Закат солнца: %s\n\n", w.Sunset.Format("15:04:05"))
	fmt.Fprintf(&b, "🕒 Данные обновлены: %s", w.Timestamp.Format("15:04:05"))
	return b.String()
}

// DailyWeather renders the scheduled morning push.
func DailyWeather(w *weatherapi.CurrentWeather) string {
	var b strings.Builder
	fmt.Fprintf(&b, "☀️ Доброе утро! Вот прогноз погоды на сегодня для города %s:\n\n", w.City)
	fmt.Fprintf(&b, "🌡️ Температура: %.1f°C (ощущается как %.1f°C)\n", w.Temperature, w.FeelsLike)
	fmt.Fprintf(&b, "💧 Влажность: %d%%\n", w.Humidity)
	fmt.Fprintf(&b, "🌬️ Ветер: %.1f м/с\n", w.WindSpeed)
	fmt.Fprintf(&b, "🔍 %s\n\n", capitalize(w.Description))
	b.WriteString("Хорошего дня! 😊")
	return b.String()
}

// Forecast renders the interactive 5-day forecast reply.
func Forecast(city string, f *analytics.Forecast) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Прогноз погоды на %d дней для города %s:\n\n", len(f.Daily), city)
	writeForecastDays(&b, f.Daily)
	return b.String()
}

// WeeklyAnalysis renders the interactive trailing-week analysis reply.
func WeeklyAnalysis(r *analytics.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Анализ погоды за период %s - %s для города %s:\n\n",
		r.Period.Start.Format(dateFormat), r.Period.End.Format(dateFormat), r.City)

	writeTrends(&b, r.Trends)

	b.WriteString("📅 Данные по дням:\n")
	for _, day := range r.Daily {
		fmt.Fprintf(&b, "- %s: %.1f°C, влажность %.0f%%, ветер %.1f м/с\n",
			day.Date.Format(dateFormat), day.AvgTemp, day.AvgHumidity, day.AvgWind)
	}
	return b.String()
}

// CombinedWeekly renders the scheduled weekly broadcast: whatever halves of
// the report are present.
func CombinedWeekly(r *analytics.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Еженедельный анализ погоды для города %s:\n\n", r.City)

	if r.HasHistory() {
		fmt.Fprintf(&b, "Период: %s - %s\n\n",
			r.Period.Start.Format(dateFormat), r.Period.End.Format(dateFormat))
		writeTrends(&b, r.Trends)
	} else {
		b.WriteString("За прошедшую неделю недостаточно данных для анализа.\n\n")
	}

	if r.HasForecast() {
		b.WriteString("🔮 Прогноз на ближайшие дни:\n")
		writeForecastDays(&b, r.Forecast.Daily)
		s := r.Forecast.Summary
		b.WriteString("Итог за период:\n")
		fmt.Fprintf(&b, "🌡️ В среднем %.1f°C (от %.1f°C до %.1f°C)\n", s.AvgTemp, s.MinTemp, s.MaxTemp)
		fmt.Fprintf(&b, "💧 Влажность: %.0f%%\n", s.AvgHumidity)
		fmt.Fprintf(&b, "🌬️ Ветер: %.1f м/с\n", s.AvgWind)
	}

	return b.String()
}

func writeForecastDays(b *strings.Builder, days []analytics.ForecastDay) {
	for _, day := range days {
		fmt.Fprintf(b, "📅 %s:\n", day.Date.Format(dateFormat))
		fmt.Fprintf(b, "🌡️ Температура: %.1f°C (от %.1f°C до %.1f°C)\n", day.AvgTemp, day.MinTemp, day.MaxTemp)
		fmt.Fprintf(b, "💧 Влажность: %.0f%%\n", day.AvgHumidity)
		fmt.Fprintf(b, "🌬️ Ветер: %.1f м/с\n", day.AvgWind)
		fmt.Fprintf(b, "🔍 %s\n\n", capitalize(day.Description))
	}
}

func writeTrends(b *strings.Builder, trends *analytics.Trends) {
	if trends == nil {
		return
	}
	b.WriteString("📊 Тенденции за неделю:\n")
	fmt.Fprintf(b, "🌡️ Температура: %s (%.1f°C)\n", directionLabel(trends.Temperature.Direction), trends.Temperature.Delta)
	fmt.Fprintf(b, "💧 Влажность: %s (%.1f%%)\n", directionLabel(trends.Humidity.Direction), trends.Humidity.Delta)
	fmt.Fprintf(b, "🌬️ Ветер: %s (%.1f м/с)\n\n", directionLabel(trends.Wind.Direction), trends.Wind.Delta)
}

func directionLabel(d analytics.Direction) string {
	switch d {
	case analytics.DirectionIncrease:
		return "повышение"
	case analytics.DirectionDecrease:
		return "понижение"
	case analytics.DirectionStrengthening:
		return "усиление"
	case analytics.DirectionWeakening:
		return "ослабление"
	default:
		return "стабильность"
	}
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
