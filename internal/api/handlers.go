package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/weatheria/weatheria/internal/openweather"
	"github.com/weatheria/weatheria/internal/weather"
)

var validate = validator.New()

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	provider WeatherProvider
	log      *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(provider WeatherProvider, log *slog.Logger) *Handlers {
	return &Handlers{provider: provider, log: log}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the uniform {"error": msg} body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// citiesQuery validates GET /cities input.
type citiesQuery struct {
	Q string `validate:"required"`
}

// weatherQuery validates GET /weather input: a city name, or both coordinates.
type weatherQuery struct {
	City string `validate:"required_without_all=Lat Lon"`
	Lat  string `validate:"required_without=City"`
	Lon  string `validate:"required_without=City"`
}

// forecastQuery validates GET /forecast input.
type forecastQuery struct {
	Lat string `validate:"required"`
	Lon string `validate:"required"`
}

// Cities handles GET /cities?q=<string>.
// A malformed suggestion payload degrades to an empty list; only transport
// and decode failures become server errors.
func (h *Handlers) Cities(w http.ResponseWriter, r *http.Request) {
	q := citiesQuery{Q: r.URL.Query().Get("q")}
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	raw, err := h.provider.SearchCities(r.Context(), q.Q)
	if err != nil {
		var se *openweather.StatusError
		if errors.As(err, &se) {
			h.log.Warn("city search rejected by provider", "status", se.StatusCode)
			writeError(w, se.StatusCode, "Failed to fetch cities")
			return
		}
		h.log.Error("city search failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, weather.NormalizeCities(raw))
}

// Weather handles GET /weather?city=<string> or ?lat=<number>&lon=<number>.
func (h *Handlers) Weather(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := weatherQuery{
		City: params.Get("city"),
		Lat:  params.Get("lat"),
		Lon:  params.Get("lon"),
	}
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, "City or coordinates are required")
		return
	}

	var raw openweather.CurrentResponse
	var err error
	if q.City != "" {
		raw, err = h.provider.CurrentByCity(r.Context(), q.City)
	} else {
		raw, err = h.provider.CurrentByCoords(r.Context(), q.Lat, q.Lon)
	}
	if err != nil {
		var se *openweather.StatusError
		if errors.As(err, &se) {
			h.log.Warn("current weather rejected by provider", "status", se.StatusCode)
			writeError(w, se.StatusCode, "City not found")
			return
		}
		h.log.Error("current weather fetch failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	snap, err := weather.NormalizeWeather(raw)
	if err != nil {
		h.log.Error("normalizing current weather failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// Forecast handles GET /forecast?lat=<number>&lon=<number>.
// Provider rejections pass their status through, with the provider's own
// message when its error body carries one.
func (h *Handlers) Forecast(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := forecastQuery{
		Lat: params.Get("lat"),
		Lon: params.Get("lon"),
	}
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, "Coordinates are required")
		return
	}

	raw, err := h.provider.FiveDayForecast(r.Context(), q.Lat, q.Lon)
	if err != nil {
		var se *openweather.StatusError
		if errors.As(err, &se) {
			h.log.Warn("forecast rejected by provider", "status", se.StatusCode)
			msg := se.Message
			if msg == "" {
				msg = "Failed to fetch forecast"
			}
			writeError(w, se.StatusCode, msg)
			return
		}
		h.log.Error("forecast fetch failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, weather.NormalizeForecast(raw))
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
