package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	geoDefaultURL      = "http://api.openweathermap.org/geo/1.0/direct"
	weatherDefaultURL  = "https://api.openweathermap.org/data/2.5/weather"
	forecastDefaultURL = "https://api.openweathermap.org/data/2.5/forecast"
)

// suggestionLimit caps the geocoding result list.
const suggestionLimit = "5"

// StatusError is returned when the provider answers with a non-2xx status.
// Message is best-effort extracted from the provider error body and may be
// empty. The request URL (which carries the credential) is never included.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("openweather returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("openweather returned status %d", e.StatusCode)
}

// Client calls the OpenWeatherMap geocoding, current-weather, and 5-day
// forecast APIs. The credential is fixed at construction and appended to
// every request; it is never logged.
type Client struct {
	apiKey      string
	geoURL      string
	weatherURL  string
	forecastURL string
	client      *http.Client
}

// NewClient constructs a Client against the production OpenWeatherMap URLs.
func NewClient(apiKey string) *Client {
	return NewClientWithURLs(geoDefaultURL, weatherDefaultURL, forecastDefaultURL, apiKey)
}

// NewClientWithURLs constructs a Client pointing at custom base URLs (for tests).
func NewClientWithURLs(geoURL, weatherURL, forecastURL, apiKey string) *Client {
	return &Client{
		apiKey:      apiKey,
		geoURL:      geoURL,
		weatherURL:  weatherURL,
		forecastURL: forecastURL,
		client:      &http.Client{},
	}
}

// providerError is the JSON error body the provider sends with non-2xx
// statuses, e.g. {"cod":"404","message":"city not found"}.
type providerError struct {
	Message string `json:"message"`
}

// get performs the request and returns the raw body on a 2xx status.
// A non-2xx status becomes a *StatusError; anything else is a transport
// failure wrapped without the request URL.
func (c *Client) get(ctx context.Context, baseURL string, params url.Values) ([]byte, error) {
	params.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating provider request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var pe providerError
		_ = json.Unmarshal(body, &pe)
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: pe.Message}
	}

	return body, nil
}

// SearchCities queries the geocoding API and returns the raw body.
// The caller owns shape policy: the provider occasionally answers 200 with a
// non-array body, which the normalizer degrades to an empty suggestion list.
func (c *Client) SearchCities(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", suggestionLimit)

	body, err := c.get(ctx, c.geoURL, params)
	if err != nil {
		return nil, fmt.Errorf("searching cities: %w", err)
	}
	return json.RawMessage(body), nil
}

// CurrentByCity fetches current conditions by city name, in metric units.
func (c *Client) CurrentByCity(ctx context.Context, city string) (CurrentResponse, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("units", "metric")
	return c.current(ctx, params)
}

// CurrentByCoords fetches current conditions by coordinates, in metric units.
// Coordinates are caller-supplied strings passed through URL-encoded.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon string) (CurrentResponse, error) {
	params := url.Values{}
	params.Set("lat", lat)
	params.Set("lon", lon)
	params.Set("units", "metric")
	return c.current(ctx, params)
}

func (c *Client) current(ctx context.Context, params url.Values) (CurrentResponse, error) {
	body, err := c.get(ctx, c.weatherURL, params)
	if err != nil {
		return CurrentResponse{}, fmt.Errorf("fetching current weather: %w", err)
	}

	var raw CurrentResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return CurrentResponse{}, fmt.Errorf("decoding current weather response: %w", err)
	}
	return raw, nil
}

// FiveDayForecast fetches the 5-day/3-hour forecast for the given
// coordinates, in metric units.
func (c *Client) FiveDayForecast(ctx context.Context, lat, lon string) (ForecastResponse, error) {
	params := url.Values{}
	params.Set("lat", lat)
	params.Set("lon", lon)
	params.Set("units", "metric")

	body, err := c.get(ctx, c.forecastURL, params)
	if err != nil {
		return ForecastResponse{}, fmt.Errorf("fetching forecast: %w", err)
	}

	var raw ForecastResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return ForecastResponse{}, fmt.Errorf("decoding forecast response: %w", err)
	}
	return raw, nil
}
