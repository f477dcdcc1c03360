package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

func TestRegionSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"country_name": "India", "city": "Mumbai"}`))
	}))
	defer server.Close()

	r := NewResolver()
	r.endpoint = server.URL

	if got := r.Region(context.Background()); got != "India" {
		t.Errorf("region = %q, want India", got)
	}
}

func TestRegionFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	r := NewResolver()
	r.endpoint = server.URL

	if got := r.Region(context.Background()); got != model.DefaultRegion {
		t.Errorf("region = %q, want default", got)
	}
}

func TestRegionFallsBackOnEmptyCountry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	r := NewResolver()
	r.endpoint = server.URL

	if got := r.Region(context.Background()); got != model.DefaultRegion {
		t.Errorf("region = %q, want default", got)
	}
}

func TestRegionFallsBackOnUnreachableHost(t *testing.T) {
	r := NewResolver()
	r.endpoint = "http://127.0.0.1:1/json/"

	if got := r.Region(context.Background()); got != model.DefaultRegion {
		t.Errorf("region = %q, want default", got)
	}
}
