// Package weather defines the canonical shapes served to clients and the
// normalizers that build them from raw OpenWeatherMap payloads.
package weather

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/weatheria/weatheria/internal/openweather"
)

// middayMarker selects one representative 3-hour sample per calendar day.
// The free provider tier has no daily-aggregate endpoint, so the noon slot
// of its local-time timestamp is used as a cheap deterministic proxy.
const middayMarker = "12:00:00"

// ErrMissingCondition reports a current-weather payload whose "weather"
// array is empty. The provider guarantees at least one entry; when that
// guarantee is violated an explicit error beats a silently defaulted
// snapshot.
var ErrMissingCondition = errors.New("weather payload has no condition entry")

// NormalizeCities maps a raw geocoding body to a suggestion list.
// Any non-array shape (provider error object, null, junk) degrades to an
// empty list: autocomplete is non-critical, so a malformed payload must
// never become an error banner.
func NormalizeCities(raw json.RawMessage) []CitySuggestion {
	var entries []openweather.GeoCity
	if err := json.Unmarshal(raw, &entries); err != nil {
		return []CitySuggestion{}
	}

	suggestions := make([]CitySuggestion, 0, len(entries))
	for i, e := range entries {
		suggestions = append(suggestions, CitySuggestion{
			ID:      suggestionID(e.Lat, e.Lon, i),
			Name:    e.Name,
			Country: e.Country,
			State:   e.State,
			Lat:     e.Lat,
			Lon:     e.Lon,
		})
	}
	return suggestions
}

// suggestionID derives a list-unique id from coordinates plus position.
func suggestionID(lat, lon float64, index int) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) +
		"-" + strconv.FormatFloat(lon, 'f', -1, 64) +
		"-" + strconv.Itoa(index)
}

// NormalizeWeather flat-maps a raw current-weather payload into a snapshot.
func NormalizeWeather(raw openweather.CurrentResponse) (WeatherSnapshot, error) {
	if len(raw.Weather) == 0 {
		return WeatherSnapshot{}, ErrMissingCondition
	}

	snap := WeatherSnapshot{
		City:        raw.Name,
		Temperature: raw.Main.Temp,
		Description: raw.Weather[0].Description,
		Icon:        raw.Weather[0].Icon,
		Humidity:    raw.Main.Humidity,
		WindSpeed:   raw.Wind.Speed,
		FeelsLike:   raw.Main.FeelsLike,
		Pressure:    raw.Main.Pressure,
	}
	if raw.Coord != nil {
		lat, lon := raw.Coord.Lat, raw.Coord.Lon
		snap.Lat = &lat
		snap.Lon = &lon
	}
	return snap, nil
}

// NormalizeForecast reduces the 3-hour sample list to one midday sample per
// calendar day, ascending by timestamp. A day without a midday sample (the
// partial final day at the 5-day boundary) is simply absent.
func NormalizeForecast(raw openweather.ForecastResponse) []DailyForecast {
	daily := make([]DailyForecast, 0, len(raw.List)/8+1)
	for _, item := range raw.List {
		if !strings.Contains(item.DtTxt, middayMarker) {
			continue
		}

		day := DailyForecast{
			Dt: item.Dt,
			Temp: TempRange{
				Min: item.Main.TempMin,
				Max: item.Main.TempMax,
			},
		}
		if len(item.Weather) > 0 {
			day.Description = item.Weather[0].Description
			day.Icon = item.Weather[0].Icon
		}
		daily = append(daily, day)
	}

	sort.Slice(daily, func(i, j int) bool { return daily[i].Dt < daily[j].Dt })
	return daily
}
