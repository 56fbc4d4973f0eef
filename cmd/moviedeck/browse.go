package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spf13/cobra"

	"github.com/moviedeck/moviedeck/internal/config"
	"github.com/moviedeck/moviedeck/internal/core"
	"github.com/moviedeck/moviedeck/internal/presenter"
)

// newBrowseCmd returns the "browse" subcommand for the interactive list TUI.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [list]",
		Short: "Browse a movie list interactively",
		Long: "Browse a TMDb movie list in an interactive TUI.\n" +
			"Keys: up/down move, enter opens details, esc goes back,\n" +
			"1-4 switch lists, r reloads, q quits.",
		Example: `  moviedeck browse
  moviedeck browse top_rated
  moviedeck browse upcoming`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return runBrowse(arg)
		},
	}
}

// runBrowse initializes services and starts the Bubble Tea browse TUI.
func runBrowse(listArg string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := config.SetupLogger(cfg.App.LogLevel)
	client := initTMDb(cfg, logger)

	list, err := resolveList(listArg, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The model publishes from presenter callbacks, which may run inside
	// Update. Sending through a goroutine keeps the event loop unblocked.
	var p *tea.Program
	send := func(msg tea.Msg) { go p.Send(msg) }

	m := newBrowseModel(ctx, client, client, client, list, send, logger)
	p = tea.NewProgram(m, tea.WithAltScreen())

	// Bridge OS signal cancellation into the Bubble Tea event loop.
	go func() {
		<-ctx.Done()
		p.Send(tea.Quit())
	}()

	// Image configuration load is best effort; poster URLs fall back to
	// the built-in defaults until it lands.
	go func() {
		if _, loadErr := client.Load(ctx); loadErr != nil {
			logger.Warn("image configuration load failed",
				"error", loadErr.Error(),
			)
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browse: %w", err)
	}
	return nil
}

// Messages that wake the TUI. State itself is read from the presenter
// stores, so delivery order does not matter.
type (
	listChangedMsg   struct{}
	detailChangedMsg struct{}
	openDetailMsg    struct{ movieID int }
)

// viewMode selects which screen the browse TUI shows.
type viewMode int

const (
	modeList viewMode = iota
	modeDetail
)

// listHotkeys maps number keys to list types.
var listHotkeys = map[string]core.ListType{
	"1": core.ListPopular,
	"2": core.ListTopRated,
	"3": core.ListNowPlaying,
	"4": core.ListUpcoming,
}

// browseModel is the Bubble Tea model for list browsing and detail screens.
type browseModel struct {
	ctx     context.Context
	catalog core.CatalogService
	details core.DetailsService
	config  core.ConfigurationProvider
	send    func(tea.Msg)
	logger  *slog.Logger

	mode   viewMode
	cursor int

	list       *presenter.ListPresenter
	unsubList  func()
	listState  presenter.ListState
	listLoaded bool

	detail      *presenter.DetailPresenter
	unsubDetail func()
	detailState presenter.DetailState

	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// newBrowseModel creates a browseModel bound to the given list.
func newBrowseModel(
	ctx context.Context,
	catalog core.CatalogService,
	details core.DetailsService,
	cfg core.ConfigurationProvider,
	list core.ListType,
	send func(tea.Msg),
	logger *slog.Logger,
) browseModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleInfo

	m := browseModel{
		ctx:     ctx,
		catalog: catalog,
		details: details,
		config:  cfg,
		send:    send,
		logger:  logger,
		spinner: s,
	}
	m.bindList(list)
	return m
}

// bindList creates and subscribes a list presenter for the given list.
func (m *browseModel) bindList(list core.ListType) {
	if m.unsubList != nil {
		m.unsubList()
	}

	nav := core.NavigatorFunc(func(movieID int) {
		m.send(openDetailMsg{movieID: movieID})
	})
	p := presenter.NewListPresenter(list, m.catalog, m.config, nav, m.logger)
	m.list = p
	m.unsubList = p.State().Subscribe(func(presenter.ListState) {
		m.send(listChangedMsg{})
	})
	m.listState = presenter.ListState{}
	m.listLoaded = false
	m.cursor = 0
}

// Init starts the spinner and the first list load.
func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadList())
}

// loadList returns a command that triggers the presenter's async fetch.
func (m browseModel) loadList() tea.Cmd {
	return func() tea.Msg {
		m.list.LoadMovies(m.ctx)
		return nil
	}
}

// Update handles incoming messages and user input.
func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case listChangedMsg:
		m.listState = m.list.State().Get()
		if !m.listState.Loading {
			m.listLoaded = true
		}
		m.clampCursor()
		return m, nil

	case detailChangedMsg:
		if m.detail == nil {
			return m, nil
		}
		m.detailState = m.detail.State().Get()
		if m.ready {
			m.viewport.SetContent(renderDetailRows(m.detailState.Rows))
			m.viewport.GotoTop()
		}
		return m, nil

	case openDetailMsg:
		m.openDetail(msg.movieID)
		return m, nil

	case spinner.TickMsg:
		if m.loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.mode == modeDetail && m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleResize adjusts the detail viewport on terminal resize.
func (m *browseModel) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	headerHeight := 2
	footerHeight := 1
	vpHeight := m.height - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	if m.detail != nil {
		m.viewport.SetContent(renderDetailRows(m.detailState.Rows))
	}
}

// handleKey dispatches key events by view mode.
func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || key == "q" {
		return m, tea.Quit
	}

	if m.mode == modeDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(key)
}

// handleListKey handles keys on the list screen.
func (m browseModel) handleListKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.listState.Rows)-1 {
			m.cursor++
		}
	case "enter":
		// Selection goes through the presenter; the navigator callback
		// delivers openDetailMsg.
		if err := m.list.SelectRow(presenter.IndexPath{Section: 0, Row: m.cursor}); err != nil {
			return m, nil
		}
	case "r":
		return m, tea.Batch(m.loadList(), m.spinner.Tick)
	default:
		if list, ok := listHotkeys[key]; ok && list != m.list.ListType() {
			m.bindList(list)
			return m, tea.Batch(m.loadList(), m.spinner.Tick)
		}
	}
	return m, nil
}

// handleDetailKey handles keys on the detail screen.
func (m browseModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.closeDetail()
		return m, nil
	}
	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// openDetail creates a detail presenter for the movie and switches screens.
func (m *browseModel) openDetail(movieID int) {
	if m.unsubDetail != nil {
		m.unsubDetail()
	}

	p := presenter.NewDetailPresenter(movieID, m.details, m.config, m.logger)
	m.detail = p
	m.detailState = presenter.DetailState{}
	m.unsubDetail = p.State().Subscribe(func(presenter.DetailState) {
		m.send(detailChangedMsg{})
	})
	m.mode = modeDetail
	if m.ready {
		m.viewport.SetContent("")
	}
	p.LoadDetails(m.ctx)
}

// closeDetail tears down the detail presenter and returns to the list.
func (m *browseModel) closeDetail() {
	if m.unsubDetail != nil {
		m.unsubDetail()
		m.unsubDetail = nil
	}
	m.detail = nil
	m.detailState = presenter.DetailState{}
	m.mode = modeList
}

// clampCursor keeps the cursor inside the row range after a reload.
func (m *browseModel) clampCursor() {
	if m.cursor >= len(m.listState.Rows) {
		m.cursor = len(m.listState.Rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// loading reports whether the visible screen is waiting on a fetch.
func (m browseModel) loading() bool {
	if m.mode == modeDetail {
		return m.detailState.Loading
	}
	return m.listState.Loading
}

// View renders the current screen.
func (m browseModel) View() string {
	if m.mode == modeDetail {
		return m.detailView()
	}
	return m.listView()
}

// listView renders the movie list screen.
func (m browseModel) listView() string {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render(listTitle(m.list.ListType())))
	sb.WriteString("\n\n")

	switch {
	case m.listState.Loading && len(m.listState.Rows) == 0:
		sb.WriteString(m.spinner.View())
		sb.WriteString(styleDim.Render(" Loading movies..."))
		sb.WriteString("\n")
	case m.listState.Err != nil && len(m.listState.Rows) == 0:
		sb.WriteString(styleError.Render("Error: " + m.listState.Err.Error()))
		sb.WriteString("\n")
	case m.listLoaded && len(m.listState.Rows) == 0:
		sb.WriteString(styleDim.Render("No movies in this list."))
		sb.WriteString("\n")
	default:
		for i, row := range m.listState.Rows {
			line := row.Title
			if row.ReleaseDate != "" {
				line += " " + styleDim.Render("("+row.ReleaseDate+")")
			}
			if i == m.cursor {
				sb.WriteString(styleSelected.Render("> "))
				sb.WriteString(styleSelected.Render(line))
			} else {
				sb.WriteString("  ")
				sb.WriteString(line)
			}
			sb.WriteString("\n")
		}
		if m.listState.Err != nil {
			sb.WriteString("\n")
			sb.WriteString(styleError.Render("Refresh failed: " + m.listState.Err.Error()))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styleDim.Render("enter details | 1-4 lists | r reload | q quit"))
	return sb.String()
}

// detailView renders the movie detail screen.
func (m browseModel) detailView() string {
	title := m.detailState.Title
	if title == "" {
		title = "Movie Details"
	}

	var body string
	switch {
	case m.detailState.Loading && len(m.detailState.Rows) == 0:
		body = m.spinner.View() + styleDim.Render(" Loading details...")
	case m.detailState.Err != nil && len(m.detailState.Rows) == 0:
		body = styleError.Render("Error: " + m.detailState.Err.Error())
	case m.ready:
		body = m.viewport.View()
	default:
		body = renderDetailRows(m.detailState.Rows)
	}

	return styleTitle.Render(title) + "\n\n" +
		body + "\n" +
		styleDim.Render("esc back | q quit")
}
