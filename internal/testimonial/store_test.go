package testimonial_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kevinotieno/shamba-storefront/internal/api"
	"github.com/kevinotieno/shamba-storefront/internal/testimonial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateFlipsEligibilityImmediately(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /testimonials/user/can-submit/ord-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"canSubmit":true}}`))
	})
	mux.HandleFunc("POST /testimonials", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "ord-1", r.FormValue("orderId"))
		assert.Equal(t, "5", r.FormValue("rating"))
		assert.Equal(t, "Fresh sukuma wiki, delivered same day", r.FormValue("comment"))
		w.Write([]byte(`{"status":"success","message":"submitted for approval"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := testimonial.NewStore(api.New(srv.URL, "tok"))

	can, err := store.CanSubmit(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.True(t, can)
	assert.True(t, store.CanReview("ord-1"))

	err = store.Create(context.Background(), testimonial.CreateInput{
		OrderID: "ord-1",
		Rating:  5,
		Comment: "Fresh sukuma wiki, delivered same day",
	})
	require.NoError(t, err)

	assert.False(t, store.CanReview("ord-1"), "eligibility flips without a re-fetch")
}

func TestStore_Create_WithImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "basket.jpg", header.Filename)
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	store := testimonial.NewStore(api.New(srv.URL, "tok"))
	err := store.Create(context.Background(), testimonial.CreateInput{
		OrderID:   "ord-2",
		Rating:    4,
		Comment:   "Great service",
		Image:     strings.NewReader("fake-jpeg-bytes"),
		ImageName: "basket.jpg",
	})
	require.NoError(t, err)
}

func TestStore_Create_ValidatesBeforeAnyRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for invalid input")
	}))
	defer srv.Close()

	store := testimonial.NewStore(api.New(srv.URL, "tok"))

	err := store.Create(context.Background(), testimonial.CreateInput{OrderID: "o", Rating: 0, Comment: "x"})
	assert.Error(t, err)

	err = store.Create(context.Background(), testimonial.CreateInput{OrderID: "o", Rating: 6, Comment: "x"})
	assert.Error(t, err)

	err = store.Create(context.Background(), testimonial.CreateInput{OrderID: "o", Rating: 3})
	assert.Error(t, err)
}

func TestStore_CreateFailureKeepsEligibility(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /testimonials/user/can-submit/ord-3", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"canSubmit":true}}`))
	})
	mux.HandleFunc("POST /testimonials", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"status":"error","message":"already reviewed"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := testimonial.NewStore(api.New(srv.URL, "tok"))
	_, err := store.CanSubmit(context.Background(), "ord-3")
	require.NoError(t, err)

	err = store.Create(context.Background(), testimonial.CreateInput{OrderID: "ord-3", Rating: 5, Comment: "x"})
	require.Error(t, err)
	assert.True(t, store.CanReview("ord-3"), "failed submission must not consume eligibility")
}
