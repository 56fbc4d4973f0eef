package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/moviedeck/moviedeck/internal/core"
	"github.com/moviedeck/moviedeck/internal/presenter"
)

// Deps holds backend dependencies for MCP tool handlers.
type Deps struct {
	Catalog core.CatalogService
	Details core.DetailsService
	Config  core.ConfigurationProvider
}

// Server wraps an MCP SDK server with MovieDeck tool handlers.
type Server struct {
	server *mcpsdk.Server
	deps   Deps
	logger *slog.Logger
}

// NewServer creates an MCP server with all MovieDeck tools registered.
func NewServer(deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "moviedeck",
			Version: "0.1.0",
		},
		&mcpsdk.ServerOptions{Logger: logger},
	)

	srv := &Server{server: s, deps: deps, logger: logger}
	srv.registerTools()
	return srv
}

// ServeStdio runs the MCP server over stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

// MCPServer returns the underlying MCP SDK server (for testing).
func (s *Server) MCPServer() *mcpsdk.Server {
	return s.server
}

// registerTools registers all MovieDeck tools on the MCP server.
func (s *Server) registerTools() {
	s.server.AddTool(browseMoviesTool(), s.handleBrowseMovies)
	s.server.AddTool(movieDetailsTool(), s.handleMovieDetails)
	s.server.AddTool(imageConfigurationTool(), s.handleImageConfiguration)
}

// Tool definitions.

func browseMoviesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name: "browse_movies",
		Description: "Browse one of the TMDb curated movie lists. Returns rows with " +
			"TMDb IDs, titles, formatted release dates, and poster thumbnail URLs.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"list_type": map[string]any{
					"type":        "string",
					"description": "The list to browse: popular, top_rated, now_playing, or upcoming",
					"enum":        []any{"popular", "top_rated", "now_playing", "upcoming"},
				},
			},
			"required": []any{"list_type"},
		},
	}
}

func movieDetailsTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name: "movie_details",
		Description: "Get the detail screen for a movie by its TMDb ID. Returns the title, " +
			"poster URL, overview, and formatted fields (genres, budget, runtime).",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tmdb_id": map[string]any{
					"type":        "integer",
					"description": "The TMDb ID of the movie",
				},
			},
			"required": []any{"tmdb_id"},
		},
	}
}

func imageConfigurationTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name: "image_configuration",
		Description: "Get the image configuration used to build poster URLs: the base URL " +
			"and available poster sizes.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

// Tool handlers — each parses arguments, calls the service, returns JSON text content.

// movieRowJSON is the wire form of a list row.
type movieRowJSON struct {
	TMDbID      int    `json:"tmdb_id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date,omitempty"`
	PosterURL   string `json:"poster_url"`
}

// detailFieldJSON is one formatted label/value pair of a detail screen.
type detailFieldJSON struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// movieDetailsJSON is the wire form of a detail screen.
type movieDetailsJSON struct {
	TMDbID    int               `json:"tmdb_id"`
	Title     string            `json:"title"`
	PosterURL string            `json:"poster_url,omitempty"`
	Overview  string            `json:"overview,omitempty"`
	Fields    []detailFieldJSON `json:"fields"`
}

func (s *Server) handleBrowseMovies(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Catalog == nil {
		return toolError("catalog service not configured"), nil
	}

	var args struct {
		ListType string `json:"list_type"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	list, ok := core.ParseListType(args.ListType)
	if !ok {
		return toolError(fmt.Sprintf("unknown list_type %q: use popular, top_rated, now_playing, or upcoming", args.ListType)), nil
	}

	movies, err := s.deps.Catalog.MovieList(ctx, list)
	if err != nil {
		return toolError(fmt.Sprintf("movie list fetch failed: %v", err)), nil
	}

	rows := presenter.BuildMovieRows(movies, s.imageConfig())
	out := make([]movieRowJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, movieRowJSON{
			TMDbID:      row.ID,
			Title:       row.Title,
			ReleaseDate: row.ReleaseDate,
			PosterURL:   row.PosterURL,
		})
	}
	return toolJSON(out)
}

func (s *Server) handleMovieDetails(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Details == nil {
		return toolError("details service not configured"), nil
	}

	tmdbID, err := extractIntFromArgs(req.Params.Arguments, "tmdb_id")
	if err != nil {
		return toolError(err.Error()), nil
	}

	details, err := s.deps.Details.MovieDetails(ctx, tmdbID)
	if err != nil {
		return toolError(fmt.Sprintf("movie details fetch failed: %v", err)), nil
	}

	out := movieDetailsJSON{
		TMDbID: details.ID,
		Title:  details.Title,
		Fields: []detailFieldJSON{},
	}
	for _, row := range presenter.BuildDetailRows(details, s.imageConfig()) {
		switch row.Kind {
		case presenter.RowKindImage:
			out.PosterURL = row.ImageURL
		case presenter.RowKindDescription:
			out.Overview = row.Text
		case presenter.RowKindTitleValue:
			out.Fields = append(out.Fields, detailFieldJSON{Label: row.Title, Value: row.Value})
		}
	}
	return toolJSON(out)
}

func (s *Server) handleImageConfiguration(ctx context.Context, _ *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Config == nil {
		return toolError("configuration provider not configured"), nil
	}

	cfg := s.deps.Config.Current()
	if cfg == nil {
		loaded, err := s.deps.Config.Load(ctx)
		if err != nil {
			return toolError(fmt.Sprintf("image configuration load failed: %v", err)), nil
		}
		cfg = loaded
	}

	return toolJSON(map[string]any{
		"base_url":     cfg.BaseURL,
		"poster_sizes": cfg.PosterSizes,
	})
}

// imageConfig returns the current remote image configuration or the default.
func (s *Server) imageConfig() *core.ImageConfig {
	if s.deps.Config != nil {
		if cfg := s.deps.Config.Current(); cfg != nil {
			return cfg
		}
	}
	return &presenter.DefaultImageConfig
}

// Helper functions.

// toolJSON marshals v to JSON and returns it as text content.
func toolJSON(v any) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

// toolError returns a tool result indicating an error.
func toolError(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
		IsError: true,
	}
}

// extractIntFromArgs extracts an integer argument from raw JSON arguments.
func extractIntFromArgs(raw json.RawMessage, key string) (int, error) {
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return 0, fmt.Errorf("invalid arguments: %w", err)
	}

	val, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}

	switch v := val.(type) {
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number: %w", key, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, val)
	}
}
