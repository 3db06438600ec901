package openweather_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatheria/weatheria/internal/openweather"
)

func newTestClient(geoURL, weatherURL, forecastURL string) *openweather.Client {
	return openweather.NewClientWithURLs(geoURL, weatherURL, forecastURL, "test-key")
}

func TestSearchCities_ReturnsRawBody(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"London","country":"GB","lat":51.5,"lon":-0.1}]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL, srv.URL)
	raw, err := c.SearchCities(context.Background(), "London")
	require.NoError(t, err)

	var entries []openweather.GeoCity
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "London", entries[0].Name)

	assert.Equal(t, "London", gotQuery.Get("q"))
	assert.Equal(t, "5", gotQuery.Get("limit"))
	assert.Equal(t, "test-key", gotQuery.Get("appid"))
}

func TestSearchCities_QueryIsURLEncoded(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL, srv.URL)
	_, err := c.SearchCities(context.Background(), "São Paulo")
	require.NoError(t, err)
	assert.Equal(t, "São Paulo", gotQuery.Get("q"))
}

func TestCurrentByCity_DecodesPayload(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{
			"coord": {"lat": 51.5, "lon": -0.1},
			"main": {"temp": 15, "humidity": 70, "feels_like": 14, "pressure": 1012},
			"weather": [{"description": "clear sky", "icon": "01d"}],
			"wind": {"speed": 4.1},
			"name": "London"
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL, srv.URL)
	raw, err := c.CurrentByCity(context.Background(), "London")
	require.NoError(t, err)

	assert.Equal(t, "London", raw.Name)
	assert.Equal(t, 15.0, raw.Main.Temp)
	require.NotNil(t, raw.Coord)
	assert.Equal(t, 51.5, raw.Coord.Lat)
	require.Len(t, raw.Weather, 1)
	assert.Equal(t, "01d", raw.Weather[0].Icon)

	assert.Equal(t, "metric", gotQuery.Get("units"))
	assert.Equal(t, "test-key", gotQuery.Get("appid"))
}

func TestCurrentByCoords_PassesCoordinatesThrough(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"weather":[{"description":"mist","icon":"50d"}],"name":"Somewhere"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL, srv.URL)
	_, err := c.CurrentByCoords(context.Background(), "51.5", "-0.1")
	require.NoError(t, err)
	assert.Equal(t, "51.5", gotQuery.Get("lat"))
	assert.Equal(t, "-0.1", gotQuery.Get("lon"))
}

func TestFiveDayForecast_DecodesList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"list":[
			{"dt":1717851600,"dt_txt":"2024-06-08 12:00:00","main":{"temp":15,"temp_min":12,"temp_max":18},"weather":[{"description":"clear sky","icon":"01d"}]}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL, srv.URL)
	raw, err := c.FiveDayForecast(context.Background(), "51.5", "-0.1")
	require.NoError(t, err)
	require.Len(t, raw.List, 1)
	assert.Equal(t, "2024-06-08 12:00:00", raw.List[0].DtTxt)
	assert.Equal(t, 12.0, raw.List[0].Main.TempMin)
}

func TestNonSuccessStatus_BecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL, srv.URL)
	_, err := c.CurrentByCity(context.Background(), "Atlantis")
	require.Error(t, err)

	var se *openweather.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "city not found", se.Message)
}

func TestNonSuccessStatus_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL, srv.URL)
	_, err := c.FiveDayForecast(context.Background(), "51.5", "-0.1")

	var se *openweather.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Empty(t, se.Message)
}

func TestTransportFailure_IsNotStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(srv.URL, srv.URL, srv.URL)
	_, err := c.SearchCities(context.Background(), "London")
	require.Error(t, err)

	var se *openweather.StatusError
	assert.False(t, errors.As(err, &se))
}

func TestMalformedSuccessBody_IsPlainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL, srv.URL)
	_, err := c.CurrentByCity(context.Background(), "London")
	require.Error(t, err)

	var se *openweather.StatusError
	assert.False(t, errors.As(err, &se), "a decode failure is an internal error, not a provider rejection")
}

func TestStatusError_MessageNeverEchoesCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL, srv.URL)
	_, err := c.SearchCities(context.Background(), "London")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "test-key")
}
