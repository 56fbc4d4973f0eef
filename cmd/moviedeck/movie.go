package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/moviedeck/moviedeck/internal/config"
	"github.com/moviedeck/moviedeck/internal/core"
	"github.com/moviedeck/moviedeck/internal/presenter"
)

func newMovieCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movie <tmdb-id>",
		Short: "Show details for a single movie",
		Long:  "Fetch and print the detail screen for one movie without entering interactive mode.",
		Example: `  moviedeck movie 550
  moviedeck movie 27205`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid TMDb ID %q", args[0])
			}
			return runMovie(id)
		},
	}
}

func runMovie(movieID int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := config.SetupLogger(cfg.App.LogLevel)
	client := initTMDb(cfg, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Best effort; the detail poster falls back to the default config.
	if _, err := client.Load(ctx); err != nil {
		logger.Warn("image configuration load failed", "error", err.Error())
	}

	p := tea.NewProgram(newMovieModel(ctx, movieID, client, client))
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("run movie: %w", err)
	}

	mm, ok := m.(movieModel)
	if !ok {
		return fmt.Errorf("unexpected model type from tea program")
	}
	if mm.err != nil {
		return mm.err
	}
	return nil
}

// movieResultMsg carries the loaded detail screen back to the TUI.
type movieResultMsg struct {
	title string
	rows  []presenter.DetailRow
	err   error
}

type movieModel struct {
	ctx     context.Context
	movieID int
	details core.DetailsService
	config  core.ConfigurationProvider
	spinner spinner.Model
	title   string
	rows    []presenter.DetailRow
	err     error
	done    bool
}

func newMovieModel(ctx context.Context, movieID int, details core.DetailsService, cfg core.ConfigurationProvider) movieModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleInfo
	return movieModel{
		ctx:     ctx,
		movieID: movieID,
		details: details,
		config:  cfg,
		spinner: s,
	}
}

func (m movieModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchDetails())
}

func (m movieModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case movieResultMsg:
		m.title = msg.title
		m.rows = msg.rows
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m movieModel) View() string {
	if m.done {
		if m.err != nil {
			return styleError.Render("Error: "+m.err.Error()) + "\n"
		}
		return styleTitle.Render(m.title) + "\n\n" + renderDetailRows(m.rows) + "\n"
	}
	return m.spinner.View() + styleDim.Render(" Loading details...") + "\n"
}

func (m movieModel) fetchDetails() tea.Cmd {
	return func() tea.Msg {
		details, err := m.details.MovieDetails(m.ctx, m.movieID)
		if err != nil {
			return movieResultMsg{err: err}
		}

		cfg := m.config.Current()
		if cfg == nil {
			cfg = &presenter.DefaultImageConfig
		}
		return movieResultMsg{
			title: details.Title,
			rows:  presenter.BuildDetailRows(details, cfg),
		}
	}
}
