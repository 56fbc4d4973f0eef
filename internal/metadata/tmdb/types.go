package tmdb

import "github.com/moviedeck/moviedeck/internal/core"

// movie is a single entry in a TMDb movie list response.
type movie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
}

// movieDetails is the TMDb /movie/{id} response.
type movieDetails struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Budget      int64   `json:"budget"`
	Runtime     int     `json:"runtime"`
	Genres      []genre `json:"genres"`
}

// genre is a genre entry inside a details response.
type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// listResponse is the paginated TMDb movie list response.
type listResponse struct {
	Page         int     `json:"page"`
	Results      []movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// configurationResponse is the TMDb /configuration response.
type configurationResponse struct {
	Images struct {
		SecureBaseURL string   `json:"secure_base_url"`
		BaseURL       string   `json:"base_url"`
		PosterSizes   []string `json:"poster_sizes"`
	} `json:"images"`
}

// toSummary converts an API movie entry into the domain summary.
func (m movie) toSummary() core.MovieSummary {
	return core.MovieSummary{
		ID:          m.ID,
		Title:       m.Title,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
	}
}

// toDetails converts an API details response into the domain record.
func (d movieDetails) toDetails() *core.MovieDetails {
	genres := make([]core.Genre, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, core.Genre{ID: g.ID, Name: g.Name})
	}
	return &core.MovieDetails{
		ID:          d.ID,
		Title:       d.Title,
		Overview:    d.Overview,
		PosterPath:  d.PosterPath,
		ReleaseDate: d.ReleaseDate,
		Budget:      d.Budget,
		Runtime:     d.Runtime,
		Genres:      genres,
	}
}

// toImageConfig converts a configuration response into the domain config,
// preferring the HTTPS base URL.
func (c configurationResponse) toImageConfig() *core.ImageConfig {
	base := c.Images.SecureBaseURL
	if base == "" {
		base = c.Images.BaseURL
	}
	return &core.ImageConfig{
		BaseURL:     base,
		PosterSizes: c.Images.PosterSizes,
	}
}
