package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatheria/weatheria/internal/client"
)

func TestSearchCities(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cities", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"51.5--0.1-0","name":"London","country":"GB","lat":51.5,"lon":-0.1}]`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	got, err := c.SearchCities(context.Background(), "London")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "London", got[0].Name)
	assert.Equal(t, "London", gotQuery.Get("q"))
}

func TestCurrentByCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "London", r.URL.Query().Get("city"))
		_, _ = w.Write([]byte(`{"city":"London","temperature":15,"description":"clear sky","icon":"01d","humidity":70,"windSpeed":4.1,"feelsLike":14,"pressure":1012,"lat":51.5,"lon":-0.1}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	snap, err := c.CurrentByCity(context.Background(), "London")
	require.NoError(t, err)
	assert.Equal(t, "London", snap.City)
	assert.Equal(t, 15.0, snap.Temperature)
	require.NotNil(t, snap.Lat)
	assert.Equal(t, 51.5, *snap.Lat)
}

func TestCurrentByCoords_FormatsCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "51.5", r.URL.Query().Get("lat"))
		assert.Equal(t, "-0.1", r.URL.Query().Get("lon"))
		_, _ = w.Write([]byte(`{"city":"London"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.CurrentByCoords(context.Background(), 51.5, -0.1)
	require.NoError(t, err)
}

func TestForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"dt":1717851600,"temp":{"min":12,"max":18},"description":"clear sky","icon":"01d"},
			{"dt":1717938000,"temp":{"min":13,"max":20},"description":"light rain","icon":"10d"}
		]`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	got, err := c.Forecast(context.Background(), 51.5, -0.1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 12.0, got[0].Temp.Min)
}

func TestNon2xx_SurfacesServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"City not found"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.CurrentByCity(context.Background(), "Atlantis")
	require.Error(t, err)

	var ae *client.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusNotFound, ae.StatusCode)
	assert.Equal(t, "City not found", ae.Message)
}

func TestNon2xx_MissingBodyFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.Forecast(context.Background(), 51.5, -0.1)

	var ae *client.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Bad Gateway", ae.Message)
}

func TestTransportFailure_IsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := client.New(srv.URL)
	_, err := c.SearchCities(context.Background(), "London")
	require.Error(t, err)

	var ae *client.APIError
	assert.False(t, errors.As(err, &ae))
}
