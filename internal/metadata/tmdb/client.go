package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/moviedeck/moviedeck/internal/core"
	"github.com/moviedeck/moviedeck/internal/httpclient"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	cacheTTL       = 15 * time.Minute
)

// Client is a TMDb API v3 client. It implements core.CatalogService,
// core.DetailsService, and core.ConfigurationProvider.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
	cache   *cache
	logger  *slog.Logger

	mu      sync.RWMutex
	current *core.ImageConfig
}

// Compile-time interface checks.
var (
	_ core.CatalogService        = (*Client)(nil)
	_ core.DetailsService        = (*Client)(nil)
	_ core.ConfigurationProvider = (*Client)(nil)
)

// New creates a new TMDb client.
func New(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    httpclient.New(httpclient.DefaultConfig(), logger),
		cache:   newCache(cacheTTL),
		logger:  logger,
	}
}

// NewForTest creates a TMDb client with a custom base URL for testing.
// Exported because it is used by cross-package tests (e.g. internal/mcp).
func NewForTest(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  "test-key",
		http:    httpclient.New(httpclient.DefaultConfig(), logger),
		cache:   newCache(cacheTTL),
		logger:  logger,
	}
}

// MovieList returns the movies for one of the curated TMDb lists
// (popular, top_rated, now_playing, upcoming).
func (c *Client) MovieList(ctx context.Context, list core.ListType) ([]core.MovieSummary, error) {
	cacheKey := "list:" + string(list)
	if cached, ok := c.cache.Get(cacheKey); ok {
		if movies, ok := cached.([]core.MovieSummary); ok {
			return movies, nil
		}
	}

	var resp listResponse
	path := fmt.Sprintf("/movie/%s", list)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch %s movies: %w", list, err)
	}

	movies := make([]core.MovieSummary, 0, len(resp.Results))
	for _, m := range resp.Results {
		movies = append(movies, m.toSummary())
	}

	c.cache.Set(cacheKey, movies)
	return movies, nil
}

// MovieDetails returns full details for a movie by TMDb ID.
func (c *Client) MovieDetails(ctx context.Context, id int) (*core.MovieDetails, error) {
	cacheKey := fmt.Sprintf("movie:%d", id)
	if cached, ok := c.cache.Get(cacheKey); ok {
		if details, ok := cached.(*core.MovieDetails); ok {
			return details, nil
		}
	}

	var resp movieDetails
	path := fmt.Sprintf("/movie/%d", id)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}

	details := resp.toDetails()
	c.cache.Set(cacheKey, details)
	return details, nil
}

// Load fetches the image configuration and records it as the current one.
func (c *Client) Load(ctx context.Context) (*core.ImageConfig, error) {
	var resp configurationResponse
	if err := c.get(ctx, "/configuration", nil, &resp); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	cfg := resp.toImageConfig()

	c.mu.Lock()
	c.current = cfg
	c.mu.Unlock()

	return cfg, nil
}

// Current returns the last loaded image configuration, or nil.
func (c *Client) Current() *core.ImageConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// get performs an authenticated GET request to the TMDb API and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	q := u.Query()
	q.Set("api_key", c.apiKey)
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tmdb API error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
