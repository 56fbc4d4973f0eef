package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/moviedeck/moviedeck/internal/config"
	"github.com/moviedeck/moviedeck/internal/core"
	"github.com/moviedeck/moviedeck/internal/metadata/tmdb"
	"github.com/moviedeck/moviedeck/internal/presenter"
)

// Lipgloss styles used across commands.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray

	styleSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true) // cyan bold
	styleLabel    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true) // blue bold

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5"))
)

// listTitles maps list types to screen headings.
var listTitles = map[core.ListType]string{
	core.ListPopular:    "Popular Movies",
	core.ListTopRated:   "Top Rated Movies",
	core.ListNowPlaying: "Now Playing",
	core.ListUpcoming:   "Upcoming Movies",
}

// listTitle returns the screen heading for a list type.
func listTitle(list core.ListType) string {
	if title, ok := listTitles[list]; ok {
		return title
	}
	return string(list)
}

// loadConfig loads and validates the configuration file.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// initTMDb creates the TMDb client that backs all frontends.
func initTMDb(cfg *config.Config, logger *slog.Logger) *tmdb.Client {
	return tmdb.New(cfg.TMDb.APIKey, logger)
}

// resolveList picks the list to browse: the explicit argument if given,
// otherwise the configured default.
func resolveList(arg string, cfg *config.Config) (core.ListType, error) {
	name := arg
	if name == "" {
		name = cfg.App.DefaultList
	}
	list, ok := core.ParseListType(name)
	if !ok {
		return "", fmt.Errorf("unknown list %q: use popular, top_rated, now_playing, or upcoming", name)
	}
	return list, nil
}

// renderDetailRows renders a detail screen as styled terminal text.
func renderDetailRows(rows []presenter.DetailRow) string {
	var sb strings.Builder
	for _, row := range rows {
		switch row.Kind {
		case presenter.RowKindImage:
			sb.WriteString(styleDim.Render("Poster: " + row.ImageURL))
			sb.WriteString("\n\n")
		case presenter.RowKindDescription:
			sb.WriteString(row.Text)
			sb.WriteString("\n\n")
		case presenter.RowKindTitleValue:
			sb.WriteString(styleLabel.Render(row.Title + ":"))
			sb.WriteString(" ")
			sb.WriteString(row.Value)
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
