package presenter

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/moviedeck/moviedeck/internal/core"
)

// DetailRowKind tags the variant of a DetailRow.
type DetailRowKind int

const (
	// RowKindImage is a full-width poster image row.
	RowKindImage DetailRowKind = iota
	// RowKindDescription is a free-form text row.
	RowKindDescription
	// RowKindTitleValue is a key-value row ("Budget" / "US$...").
	RowKindTitleValue
)

// DetailRow is one row of the detail screen. It is a tagged union: only the
// fields of the active Kind are meaningful.
type DetailRow struct {
	Kind DetailRowKind

	ImageURL string // RowKindImage

	Text string // RowKindDescription

	Title string // RowKindTitleValue
	Value string // RowKindTitleValue
}

// DetailState is the published state of a DetailPresenter. Title is
// published separately from the rows for title-bar binding.
type DetailState struct {
	Title   string
	Rows    []DetailRow
	Err     error
	Loading bool
}

// DetailPresenter drives a movie detail screen: it fetches the bound movie's
// details and publishes an ordered, gap-free sequence of typed rows.
type DetailPresenter struct {
	movieID int
	details core.DetailsService
	config  core.ConfigurationProvider
	logger  *slog.Logger

	store *Store[DetailState]
	seq   atomic.Uint64
}

// NewDetailPresenter creates a presenter for the given movie ID. Passing a
// nil collaborator is a wiring bug and panics at composition time.
func NewDetailPresenter(
	movieID int,
	details core.DetailsService,
	config core.ConfigurationProvider,
	logger *slog.Logger,
) *DetailPresenter {
	if details == nil {
		panic("presenter: nil DetailsService")
	}
	if config == nil {
		panic("presenter: nil ConfigurationProvider")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailPresenter{
		movieID: movieID,
		details: details,
		config:  config,
		logger:  logger,
		store:   NewStore(DetailState{}),
	}
}

// MovieID returns the movie this presenter is bound to.
func (p *DetailPresenter) MovieID() int { return p.movieID }

// State returns the observable state store.
func (p *DetailPresenter) State() *Store[DetailState] { return p.store }

// LoadDetails triggers one asynchronous details fetch. On success the title
// and the full row sequence are published together; on failure the error is
// published and rows are left as they were (empty if never loaded).
func (p *DetailPresenter) LoadDetails(ctx context.Context) {
	gen := p.seq.Add(1)
	p.store.Replace(gen, func(prev DetailState) DetailState {
		prev.Loading = true
		prev.Err = nil
		return prev
	})

	go func() {
		details, err := p.details.MovieDetails(ctx, p.movieID)
		if err != nil {
			p.logger.Warn("movie details fetch failed",
				slog.Int("movie_id", p.movieID),
				slog.String("error", err.Error()),
			)
			p.store.Replace(gen, func(prev DetailState) DetailState {
				prev.Loading = false
				prev.Err = err
				return prev
			})
			return
		}

		rows := BuildDetailRows(details, p.imageConfig())
		p.store.Replace(gen, func(DetailState) DetailState {
			return DetailState{Title: details.Title, Rows: rows}
		})
	}()
}

// IsEmpty reports whether the row sequence is currently empty. It is true
// before the first successful load and stays true after a failed first load.
func (p *DetailPresenter) IsEmpty() bool {
	return len(p.store.Get().Rows) == 0
}

// NumberOfSections returns the section count, which is always 1.
func (p *DetailPresenter) NumberOfSections() int { return 1 }

// NumberOfRows returns the current row count for section 0.
func (p *DetailPresenter) NumberOfRows(section int) (int, error) {
	if section != 0 {
		return 0, ErrSectionOutOfRange
	}
	return len(p.store.Get().Rows), nil
}

// RowAt returns the row variant at the given index path.
func (p *DetailPresenter) RowAt(path IndexPath) (DetailRow, error) {
	if path.Section != 0 {
		return DetailRow{}, ErrSectionOutOfRange
	}
	rows := p.store.Get().Rows
	if path.Row < 0 || path.Row >= len(rows) {
		return DetailRow{}, ErrRowOutOfRange
	}
	return rows[path.Row], nil
}

func (p *DetailPresenter) imageConfig() *core.ImageConfig {
	if cfg := p.config.Current(); cfg != nil {
		return cfg
	}
	return &DefaultImageConfig
}

// BuildDetailRows assembles the detail rows in their fixed order: poster,
// overview, genres, budget, runtime. Rows whose source field is absent are
// skipped entirely, never padded with placeholders.
func BuildDetailRows(d *core.MovieDetails, cfg *core.ImageConfig) []DetailRow {
	var rows []DetailRow
	if row, ok := posterRow(d, cfg); ok {
		rows = append(rows, row)
	}
	if row, ok := overviewRow(d); ok {
		rows = append(rows, row)
	}
	if row, ok := genresRow(d); ok {
		rows = append(rows, row)
	}
	if row, ok := budgetRow(d); ok {
		rows = append(rows, row)
	}
	if row, ok := runtimeRow(d); ok {
		rows = append(rows, row)
	}
	return rows
}

// posterRow builds the poster image row using the last ("original" quality)
// configured poster size.
func posterRow(d *core.MovieDetails, cfg *core.ImageConfig) (DetailRow, bool) {
	if d.PosterPath == "" {
		return DetailRow{}, false
	}
	return DetailRow{
		Kind:     RowKindImage,
		ImageURL: posterURL(cfg.BaseURL, cfg.OriginalSize(), d.PosterPath),
	}, true
}

func overviewRow(d *core.MovieDetails) (DetailRow, bool) {
	if d.Overview == "" {
		return DetailRow{}, false
	}
	return DetailRow{Kind: RowKindDescription, Text: d.Overview}, true
}

func genresRow(d *core.MovieDetails) (DetailRow, bool) {
	if len(d.Genres) == 0 {
		return DetailRow{}, false
	}
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return DetailRow{
		Kind:  RowKindTitleValue,
		Title: "Genres",
		Value: strings.Join(names, ", "),
	}, true
}

func budgetRow(d *core.MovieDetails) (DetailRow, bool) {
	if d.Budget == 0 {
		return DetailRow{}, false
	}
	return DetailRow{
		Kind:  RowKindTitleValue,
		Title: "Budget",
		Value: FormatCurrency(d.Budget),
	}, true
}

func runtimeRow(d *core.MovieDetails) (DetailRow, bool) {
	if d.Runtime == 0 {
		return DetailRow{}, false
	}
	return DetailRow{
		Kind:  RowKindTitleValue,
		Title: "Runtime",
		Value: FormatRuntime(d.Runtime),
	}, true
}
