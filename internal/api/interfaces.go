package api

import (
	"context"
	"encoding/json"

	"github.com/weatheria/weatheria/internal/openweather"
)

// WeatherProvider defines the provider operations needed by handlers.
type WeatherProvider interface {
	SearchCities(ctx context.Context, query string) (json.RawMessage, error)
	CurrentByCity(ctx context.Context, city string) (openweather.CurrentResponse, error)
	CurrentByCoords(ctx context.Context, lat, lon string) (openweather.CurrentResponse, error)
	FiveDayForecast(ctx context.Context, lat, lon string) (openweather.ForecastResponse, error)
}
