package presenter

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/moviedeck/moviedeck/internal/core"
)

// Section/row lookup errors.
var (
	ErrSectionOutOfRange = errors.New("presenter: section out of range")
	ErrRowOutOfRange     = errors.New("presenter: row out of range")
)

// IndexPath addresses a row within a section.
type IndexPath struct {
	Section int
	Row     int
}

// MovieRow is the presentation-ready view model for one list row. Rows are
// immutable and rebuilt wholesale on every fetch.
type MovieRow struct {
	ID          int
	Title       string
	ReleaseDate string // formatted, see FormatReleaseDate
	PosterURL   string
}

// ListState is the published state of a ListPresenter.
type ListState struct {
	Rows    []MovieRow
	Err     error
	Loading bool
}

// DefaultImageConfig is used to build poster URLs until the remote image
// configuration has loaded. Values mirror the documented TMDb defaults.
var DefaultImageConfig = core.ImageConfig{
	BaseURL:     "https://image.tmdb.org/t/p/",
	PosterSizes: []string{"w92", "w154", "w185", "w342", "w500", "w780", "original"},
}

// PlaceholderPosterURL is used for entries without a poster path.
const PlaceholderPosterURL = "https://via.placeholder.com/154x231?text=No+Poster"

// ListPresenter drives a paginated movie list screen: it fetches the bound
// catalog list, maps it into MovieRows, and publishes state replacements.
type ListPresenter struct {
	list    core.ListType
	catalog core.CatalogService
	config  core.ConfigurationProvider
	nav     core.Navigator
	logger  *slog.Logger

	store *Store[ListState]
	seq   atomic.Uint64
}

// NewListPresenter creates a presenter for the given list type. Required
// collaborators are resolved here, once; passing nil is a wiring bug and
// panics at composition time rather than failing per request.
func NewListPresenter(
	list core.ListType,
	catalog core.CatalogService,
	config core.ConfigurationProvider,
	nav core.Navigator,
	logger *slog.Logger,
) *ListPresenter {
	if catalog == nil {
		panic("presenter: nil CatalogService")
	}
	if config == nil {
		panic("presenter: nil ConfigurationProvider")
	}
	if nav == nil {
		panic("presenter: nil Navigator")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ListPresenter{
		list:    list,
		catalog: catalog,
		config:  config,
		nav:     nav,
		logger:  logger,
		store:   NewStore(ListState{}),
	}
}

// ListType returns the catalog list this presenter is bound to.
func (p *ListPresenter) ListType() core.ListType { return p.list }

// State returns the observable state store.
func (p *ListPresenter) State() *Store[ListState] { return p.store }

// LoadMovies triggers one asynchronous catalog fetch. On success the row
// collection is replaced wholesale; on failure the error is published and
// rows are left as they were. Overlapping calls are resolved by the store's
// generation ordering.
func (p *ListPresenter) LoadMovies(ctx context.Context) {
	gen := p.seq.Add(1)
	p.store.Replace(gen, func(prev ListState) ListState {
		prev.Loading = true
		prev.Err = nil
		return prev
	})

	go func() {
		movies, err := p.catalog.MovieList(ctx, p.list)
		if err != nil {
			p.logger.Warn("movie list fetch failed",
				slog.String("list", string(p.list)),
				slog.String("error", err.Error()),
			)
			p.store.Replace(gen, func(prev ListState) ListState {
				prev.Loading = false
				prev.Err = err
				return prev
			})
			return
		}

		rows := BuildMovieRows(movies, p.imageConfig())
		p.store.Replace(gen, func(ListState) ListState {
			return ListState{Rows: rows}
		})
	}()
}

// NumberOfSections returns the section count, which is always 1.
func (p *ListPresenter) NumberOfSections() int { return 1 }

// NumberOfRows returns the row count for section 0.
func (p *ListPresenter) NumberOfRows(section int) (int, error) {
	if section != 0 {
		return 0, ErrSectionOutOfRange
	}
	return len(p.store.Get().Rows), nil
}

// RowAt returns the row view model at the given index path.
func (p *ListPresenter) RowAt(path IndexPath) (MovieRow, error) {
	if path.Section != 0 {
		return MovieRow{}, ErrSectionOutOfRange
	}
	rows := p.store.Get().Rows
	if path.Row < 0 || path.Row >= len(rows) {
		return MovieRow{}, ErrRowOutOfRange
	}
	return rows[path.Row], nil
}

// SelectRow invokes the navigator with the selected row's movie ID.
// Presenter state is not mutated.
func (p *ListPresenter) SelectRow(path IndexPath) error {
	row, err := p.RowAt(path)
	if err != nil {
		return err
	}
	p.nav.GoToDetails(row.ID)
	return nil
}

// imageConfig returns the current remote image configuration, or the
// built-in default when none has loaded yet.
func (p *ListPresenter) imageConfig() *core.ImageConfig {
	if cfg := p.config.Current(); cfg != nil {
		return cfg
	}
	return &DefaultImageConfig
}

// BuildMovieRows maps catalog entries into presentation rows. Entries
// without a title are dropped.
func BuildMovieRows(movies []core.MovieSummary, cfg *core.ImageConfig) []MovieRow {
	rows := make([]MovieRow, 0, len(movies))
	for _, m := range movies {
		if m.Title == "" {
			continue
		}
		poster := PlaceholderPosterURL
		if m.PosterPath != "" {
			poster = posterURL(cfg.BaseURL, cfg.ThumbnailSize(), m.PosterPath)
		}
		rows = append(rows, MovieRow{
			ID:          m.ID,
			Title:       m.Title,
			ReleaseDate: FormatReleaseDate(m.ReleaseDate),
			PosterURL:   poster,
		})
	}
	return rows
}
