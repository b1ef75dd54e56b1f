package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kevinotieno/shamba-storefront/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocoder_Reverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(`{
			"display_name": "Karen Road, Karen, Nairobi, Nairobi County, Kenya",
			"address": {"town": "Karen", "county": "Nairobi", "postcode": "00502"}
		}`))
	}))
	defer srv.Close()

	g := geo.NewGeocoder(srv.URL)
	addr, err := g.Reverse(context.Background(), geo.Coordinates{Latitude: -1.3195, Longitude: 36.7073})
	require.NoError(t, err)

	assert.Equal(t, "Karen Road, Karen, Nairobi", addr.Street)
	assert.Equal(t, "Karen", addr.City, "city falls back to town")
	assert.Equal(t, "00502", addr.PostalCode)
}

func TestGeocoder_Reverse_CityFallsBackToCounty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"display_name": "Somewhere", "address": {"county": "Kiambu"}}`))
	}))
	defer srv.Close()

	g := geo.NewGeocoder(srv.URL)
	addr, err := g.Reverse(context.Background(), geo.Coordinates{Latitude: -1.1, Longitude: 36.8})
	require.NoError(t, err)
	assert.Equal(t, "Kiambu", addr.City)
}

func TestGeocoder_Reverse_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := geo.NewGeocoder(srv.URL)
	_, err := g.Reverse(context.Background(), geo.Coordinates{})
	require.Error(t, err)
}
