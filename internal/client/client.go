// Package client is a typed client for the service's own HTTP surface,
// consumed by the autocomplete controller and the weather panels.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/weatheria/weatheria/internal/weather"
)

// APIError carries the status and {"error"} message of a non-2xx response,
// so panels can display the server's message verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

// Client calls the weatheria proxy endpoints.
type Client struct {
	baseURL string
	client  *http.Client
}

// New constructs a Client against the given base URL.
func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, client: &http.Client{}}
}

// get performs the request and decodes a 2xx JSON body into dst.
// A non-2xx response becomes an *APIError with the body's error message.
func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", path, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Error == "" {
			body.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

// SearchCities fetches autocomplete suggestions for the given query.
func (c *Client) SearchCities(ctx context.Context, query string) ([]weather.CitySuggestion, error) {
	params := url.Values{}
	params.Set("q", query)

	var suggestions []weather.CitySuggestion
	if err := c.get(ctx, "/cities", params, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// CurrentByCity fetches current conditions for a city name.
func (c *Client) CurrentByCity(ctx context.Context, city string) (weather.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("city", city)

	var snap weather.WeatherSnapshot
	if err := c.get(ctx, "/weather", params, &snap); err != nil {
		return weather.WeatherSnapshot{}, err
	}
	return snap, nil
}

// CurrentByCoords fetches current conditions for coordinates.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (weather.WeatherSnapshot, error) {
	var snap weather.WeatherSnapshot
	if err := c.get(ctx, "/weather", coordParams(lat, lon), &snap); err != nil {
		return weather.WeatherSnapshot{}, err
	}
	return snap, nil
}

// Forecast fetches the daily forecast for coordinates.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) ([]weather.DailyForecast, error) {
	var daily []weather.DailyForecast
	if err := c.get(ctx, "/forecast", coordParams(lat, lon), &daily); err != nil {
		return nil, err
	}
	return daily, nil
}

func coordParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return params
}
