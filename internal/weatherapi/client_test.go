package weatherapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/avolkovs/weather-helper/internal/errors"
)

const currentWeatherBody = `{
	"name": "Москва",
	"coord": {"lat": 55.75, "lon": 37.62},
	"main": {"temp": 3.4, "feels_like": 0.1, "pressure": 1012, "humidity": 71},
	"weather": [{"description": "пасмурно", "icon": "04d"}],
	"wind": {"speed": 4.2, "deg": 220},
	"clouds": {"all": 90},
	"dt": 1710064800,
	"sys": {"country": "RU", "sunrise": 1710042000, "sunset": 1710081600}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", server.Client())
	client.baseURL = server.URL
	return client
}

func TestCurrentWeatherParsesPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "Москва", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		fmt.Fprint(w, currentWeatherBody)
	})

	weather, err := client.CurrentWeather(context.Background(), "Москва")
	require.NoError(t, err)

	assert.Equal(t, "Москва", weather.City)
	assert.Equal(t, "RU", weather.Country)
	assert.Equal(t, 55.75, weather.Latitude)
	assert.Equal(t, 3.4, weather.Temperature)
	assert.Equal(t, 0.1, weather.FeelsLike)
	assert.Equal(t, 1012, weather.Pressure)
	assert.Equal(t, 71, weather.Humidity)
	assert.Equal(t, 4.2, weather.WindSpeed)
	assert.Equal(t, "пасмурно", weather.Description)
	assert.Equal(t, time.Unix(1710064800, 0), weather.Timestamp)
	assert.Equal(t, time.Unix(1710042000, 0), weather.Sunrise)
}

func TestCurrentWeatherCityNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"cod":"404","message":"city not found"}`)
	})

	_, err := client.CurrentWeather(context.Background(), "Нигде")
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestForecastGroupsSamplesByDay(t *testing.T) {
	// 16 samples, one every 3 hours: two full days' worth of data.
	base := int64(1710028800)
	var items []string
	for i := 0; i < 16; i++ {
		items = append(items, fmt.Sprintf(`{
			"dt": %d,
			"main": {"temp": %d, "feels_like": 10, "pressure": 1010, "humidity": 60},
			"weather": [{"description": "ясно"}],
			"wind": {"speed": 3.5}
		}`, base+int64(i)*3*3600, 10+i))
	}
	body := fmt.Sprintf(`{"city": {"name": "Москва", "country": "RU"}, "list": [%s]}`,
		strings.Join(items, ","))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "40", r.URL.Query().Get("cnt"))
		fmt.Fprint(w, body)
	})

	bundle, err := client.Forecast(context.Background(), "Москва", 5)
	require.NoError(t, err)
	assert.Equal(t, "Москва", bundle.City)

	// Mirror the client's own local-date bucketing to stay independent of
	// the zone the tests run in.
	expected := make(map[time.Time]int)
	for i := 0; i < 16; i++ {
		ts := time.Unix(base+int64(i)*3*3600, 0)
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
		expected[day]++
	}
	require.Len(t, bundle.Days, len(expected))

	total := 0
	for i, day := range bundle.Days {
		assert.Equal(t, expected[day.Date], len(day.Samples))
		total += len(day.Samples)
		if i > 0 {
			assert.True(t, bundle.Days[i-1].Date.Before(day.Date))
		}
	}
	assert.Equal(t, 16, total)
}

func TestForecastEmptyList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"city": {"name": "Москва", "country": "RU"}, "list": []}`)
	})

	_, err := client.Forecast(context.Background(), "Москва", 5)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestForecastMalformedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})

	_, err := client.Forecast(context.Background(), "Москва", 5)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}
