package advert_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kevinotieno/shamba-storefront/internal/advert"
	"github.com/kevinotieno/shamba-storefront/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RefreshIndexesByPlacement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/adverts", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("active"))
		w.Write([]byte(`{"status":"success","data":{"adverts":[
			{"_id":"1","placement":"hero","items":[{"image":"a.jpg","title":"Fresh this week"}]},
			{"_id":"2","placement":"promo_banner_1","items":[{"image":"b.jpg"}]}
		]}}`))
	}))
	defer srv.Close()

	store := advert.NewStore(api.New(srv.URL, ""))
	require.NoError(t, store.Refresh(context.Background()))

	assert.Len(t, store.Adverts(), 2)
	items := store.PlacementItems("hero")
	require.Len(t, items, 1)
	assert.Equal(t, "Fresh this week", items[0].Title)
	assert.Nil(t, store.PlacementItems("sidebar"))
}

func TestStore_ByPlacementServesFromCache(t *testing.T) {
	placementCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/adverts/placement/hero", func(w http.ResponseWriter, r *http.Request) {
		placementCalls++
		w.Write([]byte(`{"status":"success","data":{"advert":{"_id":"1","placement":"hero","items":[{"image":"a.jpg"}]}}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := advert.NewStore(api.New(srv.URL, ""))

	a, err := store.ByPlacement(context.Background(), "hero")
	require.NoError(t, err)
	assert.Equal(t, "hero", a.Placement)

	_, err = store.ByPlacement(context.Background(), "hero")
	require.NoError(t, err)
	assert.Equal(t, 1, placementCalls, "second lookup is served from cache")

	store.ClearCache()
	_, err = store.ByPlacement(context.Background(), "hero")
	require.NoError(t, err)
	assert.Equal(t, 2, placementCalls, "cleared cache forces a re-fetch")
}

func TestStore_ByPlacement_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"error","message":"Advert not found"}`))
	}))
	defer srv.Close()

	store := advert.NewStore(api.New(srv.URL, ""))
	_, err := store.ByPlacement(context.Background(), "sidebar")
	require.Error(t, err)
	assert.Equal(t, "Advert not found", api.UserMessage(err, "fallback"))
}
