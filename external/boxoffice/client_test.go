package boxoffice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/moviedraft/movie-auction/internal/platform/logging"
)

func TestFetchBoxOffice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("title") != "Atlas" || q.Get("year") != "2025" {
			t.Errorf("unexpected query %v", q)
		}
		_, _ = w.Write([]byte(`{"results":[{"title":"Atlas","year":2025,"domestic":150000000,"international":80000000}]}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Logger: logging.NewNop()})
	got, err := c.FetchBoxOffice(context.Background(), "Atlas", 2025)
	if err != nil {
		t.Fatalf("FetchBoxOffice(): %v", err)
	}
	if !got.Found || got.Domestic != 150_000_000 || got.International != 80_000_000 {
		t.Fatalf("result = %+v", got)
	}
}

func TestFetchBoxOfficeNoResultsIsConfirmedAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Logger: logging.NewNop()})
	got, err := c.FetchBoxOffice(context.Background(), "No Such Film", 2025)
	if err != nil {
		t.Fatalf("FetchBoxOffice(): %v", err)
	}
	if got.Found {
		t.Fatalf("result = %+v, want Found=false", got)
	}
}

func TestFetchBoxOfficeRetriesTransientStatus(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"title":"Atlas","domestic":1,"international":0}]}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, MaxRetries: 2, Logger: logging.NewNop()})
	got, err := c.FetchBoxOffice(context.Background(), "Atlas", 2025)
	if err != nil {
		t.Fatalf("FetchBoxOffice(): %v", err)
	}
	if !got.Found || got.Domestic != 1 {
		t.Fatalf("result = %+v", got)
	}
	if hits.Load() != 2 {
		t.Fatalf("hits = %d, want 2", hits.Load())
	}
}

func TestFetchBoxOfficeNonRetryableStatusFailsFast(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, MaxRetries: 3, Logger: logging.NewNop()})
	if _, err := c.FetchBoxOffice(context.Background(), "Atlas", 2025); err == nil {
		t.Fatalf("FetchBoxOffice() swallowed forbidden status")
	}
	if hits.Load() != 1 {
		t.Fatalf("hits = %d, want 1", hits.Load())
	}
}
