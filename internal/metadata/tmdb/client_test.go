package tmdb

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moviedeck/moviedeck/internal/core"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewForTest(server.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMovieList(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/popular" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Error("missing api_key")
		}

		resp := listResponse{
			Page: 1,
			Results: []movie{
				{ID: 27205, Title: "Inception", PosterPath: "/inc.jpg", ReleaseDate: "2010-07-16"},
				{ID: 550, Title: "Fight Club", PosterPath: "/fc.jpg", ReleaseDate: "1999-10-15"},
			},
			TotalResults: 2,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))

	movies, err := client.MovieList(context.Background(), core.ListPopular)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].Title != "Inception" {
		t.Errorf("expected Inception, got %s", movies[0].Title)
	}
	if movies[0].ID != 27205 {
		t.Errorf("expected ID 27205, got %d", movies[0].ID)
	}
	if movies[1].PosterPath != "/fc.jpg" {
		t.Errorf("expected /fc.jpg, got %s", movies[1].PosterPath)
	}
}

func TestMovieList_PathPerListType(t *testing.T) {
	tests := []struct {
		list core.ListType
		path string
	}{
		{core.ListPopular, "/movie/popular"},
		{core.ListTopRated, "/movie/top_rated"},
		{core.ListNowPlaying, "/movie/now_playing"},
		{core.ListUpcoming, "/movie/upcoming"},
	}

	for _, tt := range tests {
		t.Run(string(tt.list), func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.path {
					t.Errorf("unexpected path: %s, want %s", r.URL.Path, tt.path)
				}
				json.NewEncoder(w).Encode(listResponse{Page: 1})
			}))

			if _, err := client.MovieList(context.Background(), tt.list); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestMovieList_Cached(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(listResponse{
			Page:    1,
			Results: []movie{{ID: 1, Title: "Cached"}},
		})
	}))

	for i := 0; i < 3; i++ {
		movies, err := client.MovieList(context.Background(), core.ListPopular)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(movies) != 1 || movies[0].Title != "Cached" {
			t.Fatalf("unexpected result: %v", movies)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", calls)
	}
}

func TestMovieDetails(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/550" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		details := movieDetails{
			ID:          550,
			Title:       "Fight Club",
			Overview:    "A ticking-time-bomb insomniac...",
			PosterPath:  "/fc.jpg",
			ReleaseDate: "1999-10-15",
			Budget:      63_000_000,
			Runtime:     139,
			Genres:      []genre{{ID: 18, Name: "Drama"}, {ID: 53, Name: "Thriller"}},
		}
		json.NewEncoder(w).Encode(details)
	}))

	details, err := client.MovieDetails(context.Background(), 550)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.Title != "Fight Club" {
		t.Errorf("expected Fight Club, got %s", details.Title)
	}
	if details.Budget != 63_000_000 {
		t.Errorf("expected budget 63000000, got %d", details.Budget)
	}
	if details.Runtime != 139 {
		t.Errorf("expected runtime 139, got %d", details.Runtime)
	}
	if len(details.Genres) != 2 || details.Genres[0].Name != "Drama" {
		t.Errorf("unexpected genres: %v", details.Genres)
	}
}

func TestLoadConfiguration(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/configuration" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"images": {
				"base_url": "http://image.tmdb.org/t/p/",
				"secure_base_url": "https://image.tmdb.org/t/p/",
				"poster_sizes": ["w92", "w154", "w342", "w500", "original"]
			}
		}`))
	}))

	if client.Current() != nil {
		t.Error("Current() should be nil before Load")
	}

	cfg, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://image.tmdb.org/t/p/" {
		t.Errorf("expected secure base URL, got %s", cfg.BaseURL)
	}
	if cfg.ThumbnailSize() != "w92" {
		t.Errorf("expected thumbnail size w92, got %s", cfg.ThumbnailSize())
	}
	if cfg.OriginalSize() != "original" {
		t.Errorf("expected original size, got %s", cfg.OriginalSize())
	}

	if client.Current() != cfg {
		t.Error("Current() should return the loaded configuration")
	}
}

func TestLoadConfiguration_FallsBackToPlainBaseURL(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"images": {"base_url": "http://image.tmdb.org/t/p/", "poster_sizes": ["w92"]}}`))
	}))

	cfg, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://image.tmdb.org/t/p/" {
		t.Errorf("expected plain base URL fallback, got %s", cfg.BaseURL)
	}
}

func TestAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status_message": "Invalid API key"}`))
	}))

	_, err := client.MovieDetails(context.Background(), 550)
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}
