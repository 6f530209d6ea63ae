package metacritic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moviedraft/movie-auction/internal/platform/logging"
)

func TestSlug(t *testing.T) {
	t.Parallel()

	cases := []struct {
		title string
		want  string
	}{
		{title: "One Battle After Another", want: "one-battle-after-another"},
		{title: "L'Accord", want: "l-accord"},
		{title: "  Hamnet  ", want: "hamnet"},
		{title: "", want: ""},
	}
	for _, tc := range cases {
		if got := Slug(tc.title); got != tc.want {
			t.Fatalf("Slug(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestFetchCriticScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/atlas/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`<script type="application/ld+json">{"@type":"Movie","aggregateRating":{"ratingValue":"91"}}</script>`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Logger: logging.NewNop()})
	got, err := c.FetchCriticScore(context.Background(), "Atlas")
	if err != nil {
		t.Fatalf("FetchCriticScore(): %v", err)
	}
	if !got.Found || got.Score != 91 {
		t.Fatalf("result = %+v", got)
	}
}

func TestFetchCriticScoreNoRatingOnPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>tbd</body></html>`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Logger: logging.NewNop()})
	got, err := c.FetchCriticScore(context.Background(), "Atlas")
	if err != nil {
		t.Fatalf("FetchCriticScore(): %v", err)
	}
	if got.Found {
		t.Fatalf("result = %+v, want Found=false", got)
	}
}

func TestFetchCriticScoreUnknownMovie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Logger: logging.NewNop()})
	got, err := c.FetchCriticScore(context.Background(), "No Such Film")
	if err != nil {
		t.Fatalf("FetchCriticScore(): %v", err)
	}
	if got.Found {
		t.Fatalf("result = %+v, want Found=false", got)
	}
}

func TestFetchCriticScoreServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Logger: logging.NewNop()})
	if _, err := c.FetchCriticScore(context.Background(), "Atlas"); err == nil {
		t.Fatalf("FetchCriticScore() swallowed server error")
	}
}
