package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/avolkovs/weather-helper/internal/analytics"
	apperrors "github.com/avolkovs/weather-helper/internal/errors"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

var errEmptyPayload = errors.New("provider returned an empty payload")

// CurrentWeather is the parsed current-conditions payload for one city.
type CurrentWeather struct {
	City        string
	Country     string
	Latitude    float64
	Longitude   float64
	Temperature float64
	FeelsLike   float64
	Pressure    int
	Humidity    int
	WindSpeed   float64
	WindDeg     int
	Clouds      int
	Description string
	Icon        string
	Timestamp   time.Time
	Sunrise     time.Time
	Sunset      time.Time
}

// ForecastBundle is a multi-day forward forecast with samples already grouped
// by calendar date, ready for analytics.SummarizeForecast.
type ForecastBundle struct {
	City    string
	Country string
	Days    []analytics.DaySamples
}

// Client talks to the OpenWeatherMap HTTP API. A circuit breaker shields the
// bot from hammering the provider while it is down; callers treat every
// failure as "no data", never as a crash.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewClient(apiKey string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   httpc,
		breaker: cb,
	}
}

// CurrentWeather fetches current conditions by city name.
func (c *Client) CurrentWeather(ctx context.Context, city string) (*CurrentWeather, error) {
	query := url.Values{}
	query.Set("q", city)
	return c.fetchCurrent(ctx, query)
}

// CurrentByCoordinates fetches current conditions by geographic coordinates.
func (c *Client) CurrentByCoordinates(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return c.fetchCurrent(ctx, query)
}

func (c *Client) fetchCurrent(ctx context.Context, query url.Values) (*CurrentWeather, error) {
	var payload currentPayload
	if err := c.getJSON(ctx, "/weather", query, &payload); err != nil {
		return nil, err
	}
	if len(payload.Weather) == 0 {
		return nil, apperrors.NewProviderError(errEmptyPayload)
	}

	return &CurrentWeather{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Latitude:    payload.Coord.Lat,
		Longitude:   payload.Coord.Lon,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Pressure:    payload.Main.Pressure,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		WindDeg:     payload.Wind.Deg,
		Clouds:      payload.Clouds.All,
		Description: payload.Weather[0].Description,
		Icon:        payload.Weather[0].Icon,
		Timestamp:   time.Unix(payload.Dt, 0),
		Sunrise:     time.Unix(payload.Sys.Sunrise, 0),
		Sunset:      time.Unix(payload.Sys.Sunset, 0),
	}, nil
}

// Forecast fetches a multi-day forecast (3-hour granularity) and groups the
// samples by calendar date. Grouping lives here so the analytics layer only
// ever sees pre-bucketed days.
func (c *Client) Forecast(ctx context.Context, city string, days int) (*ForecastBundle, error) {
	query := url.Values{}
	query.Set("q", city)
	// The provider returns one sample every 3 hours, 8 per day.
	query.Set("cnt", strconv.Itoa(days*8))

	var payload forecastPayload
	if err := c.getJSON(ctx, "/forecast", query, &payload); err != nil {
		return nil, err
	}
	if len(payload.List) == 0 {
		return nil, apperrors.NewProviderError(errEmptyPayload)
	}

	buckets := make(map[time.Time][]analytics.ForecastSample)
	for _, item := range payload.List {
		if len(item.Weather) == 0 {
			continue
		}
		ts := time.Unix(item.Dt, 0)
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
		buckets[day] = append(buckets[day], analytics.ForecastSample{
			Temperature: item.Main.Temp,
			FeelsLike:   item.Main.FeelsLike,
			Pressure:    item.Main.Pressure,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
			Description: item.Weather[0].Description,
		})
	}

	grouped := make([]analytics.DaySamples, 0, len(buckets))
	for day, samples := range buckets {
		grouped = append(grouped, analytics.DaySamples{Date: day, Samples: samples})
	}
	sort.Slice(grouped, func(i, j int) bool {
		return grouped[i].Date.Before(grouped[j].Date)
	})

	return &ForecastBundle{
		City:    payload.City.Name,
		Country: payload.City.Country,
		Days:    grouped,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	query.Set("lang", "ru")

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return apperrors.NewProviderError(err)
	}

	if err := json.Unmarshal(result.([]byte), out); err != nil {
		return apperrors.NewProviderError(err)
	}
	return nil
}

type currentPayload struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

type forecastPayload struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Pressure  int     `json:"pressure"`
			Humidity  float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}
