package core

import "context"

// ListType identifies one of the TMDb curated movie lists.
type ListType string

const (
	ListPopular    ListType = "popular"
	ListTopRated   ListType = "top_rated"
	ListNowPlaying ListType = "now_playing"
	ListUpcoming   ListType = "upcoming"
)

// ParseListType maps a user-facing list name to a ListType.
// Accepts both the API form ("top_rated") and friendlier aliases ("top").
func ParseListType(s string) (ListType, bool) {
	switch s {
	case "popular":
		return ListPopular, true
	case "top_rated", "top", "top-rated":
		return ListTopRated, true
	case "now_playing", "now", "now-playing":
		return ListNowPlaying, true
	case "upcoming":
		return ListUpcoming, true
	}
	return "", false
}

// CatalogService fetches curated movie lists (popular, top rated, ...).
type CatalogService interface {
	// MovieList returns the movies for the given list type.
	MovieList(ctx context.Context, list ListType) ([]MovieSummary, error)
}

// DetailsService fetches full details for a single movie.
type DetailsService interface {
	// MovieDetails returns details for the movie with the given TMDb ID.
	MovieDetails(ctx context.Context, id int) (*MovieDetails, error)
}

// ConfigurationProvider exposes the remote image configuration (base URL
// and available poster sizes).
type ConfigurationProvider interface {
	// Load fetches the image configuration from the remote API.
	Load(ctx context.Context) (*ImageConfig, error)

	// Current returns the last loaded configuration, or nil if none has
	// been loaded yet.
	Current() *ImageConfig
}

// Navigator receives the navigation decision when a list row is selected.
// GoToDetails is fire-and-forget from the presenter's perspective.
type Navigator interface {
	GoToDetails(movieID int)
}

// NavigatorFunc adapts a plain function to the Navigator interface.
type NavigatorFunc func(movieID int)

func (f NavigatorFunc) GoToDetails(movieID int) { f(movieID) }

// MovieSummary is a single entry of a movie list. An empty Title means the
// API returned no title; such entries are dropped from presentation.
type MovieSummary struct {
	ID          int
	Title       string
	PosterPath  string
	ReleaseDate string // ISO "YYYY-MM-DD"
}

// MovieDetails holds the full record for one movie. Zero values mean the
// field is absent — absent optional fields are valid domain data, not errors.
type MovieDetails struct {
	ID          int
	Title       string
	Overview    string
	PosterPath  string
	ReleaseDate string
	Budget      int64 // whole currency units
	Runtime     int   // minutes
	Genres      []Genre
}

// Genre is a movie genre as reported by the catalog API.
type Genre struct {
	ID   int
	Name string
}

// ImageConfig describes how to build image URLs: the first poster size is
// used for list thumbnails, the last for detail posters.
type ImageConfig struct {
	BaseURL     string
	PosterSizes []string
}

// ThumbnailSize returns the poster size used for list thumbnails.
func (c *ImageConfig) ThumbnailSize() string {
	if len(c.PosterSizes) == 0 {
		return ""
	}
	return c.PosterSizes[0]
}

// OriginalSize returns the poster size used for detail posters.
func (c *ImageConfig) OriginalSize() string {
	if len(c.PosterSizes) == 0 {
		return ""
	}
	return c.PosterSizes[len(c.PosterSizes)-1]
}
