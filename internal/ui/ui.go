package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mica/internal/browse"
	"github.com/desertthunder/mica/internal/models"
	"github.com/desertthunder/mica/internal/playback"
	"github.com/desertthunder/mica/internal/services"
	"github.com/desertthunder/mica/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ConnectView ViewState = iota
	BrowseView
)

// Options configures a [Model].
type Options struct {
	Player       services.Player
	Catalog      *models.Catalog
	Logger       *log.Logger
	Clock        services.Clock
	TickInterval time.Duration
	SeekStep     time.Duration
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	player services.Player
	logger *log.Logger
	now    services.Clock

	view       ViewState
	connecting bool
	err        error

	browser      *browse.Browser
	mirror       playback.Mirror
	ticker       *playback.Ticker
	events       <-chan services.Event
	premium      bool
	disconnected bool
	status       string

	seeking bool
	pending time.Duration
	step    time.Duration

	width    int
	height   int
	progress progress.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Catalog == nil {
		opts.Catalog = models.DefaultCatalog()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = shared.DefaultTickInterval
	}
	if opts.SeekStep <= 0 {
		opts.SeekStep = shared.DefaultSeekStep
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.ok

	return &Model{
		ctx:        ctx,
		player:     opts.Player,
		logger:     shared.WithLogger(opts.Logger, "component", "ui"),
		now:        opts.Clock,
		view:       ConnectView,
		connecting: true,
		browser:    browse.New(opts.Catalog),
		ticker:     playback.NewTicker(opts.TickInterval),
		step:       opts.SeekStep,
		progress:   progress.New(progress.WithSolidFill(spotifyGreen), progress.WithoutPercentage(), progress.WithWidth(40)),
		spinner:    sp,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts connecting to the player.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.connect())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(10, min(60, msg.Width-20))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			m.ticker.Stop()
			return m, tea.Quit
		}
		if m.view == ConnectView {
			return m.handleConnectKeys(msg)
		}
		if m.seeking {
			return m.handleSeekKeys(msg)
		}
		return m.handleBrowseKeys(msg)

	case spinner.TickMsg:
		if !m.connecting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case connectedMsg:
		return m.handleConnected(msg)

	case eventMsg:
		return m.handleEvent(services.Event(msg))

	case eventsClosedMsg:
		m.events = nil
		if !m.disconnected {
			m.dropSession()
		}
		return m, nil

	case tickMsg:
		if !m.ticker.Accept(msg.gen) {
			return m, nil
		}
		return m, m.tick(msg.gen)

	case playbackErrMsg:
		m.logger.Warn("playback request failed", "op", msg.op, "error", msg.err)
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ConnectView:
		return m.renderConnect()
	case BrowseView:
		return m.renderBrowse()
	default:
		return ""
	}
}

// Browser exposes the list state.
func (m *Model) Browser() *browse.Browser { return m.browser }

// State returns the current view.
func (m *Model) State() ViewState { return m.view }

func (m *Model) handleConnectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.retry) && !m.connecting {
		return m, m.reconnect()
	}
	return m, nil
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.up):
		m.browser.Up()
	case key.Matches(msg, m.keys.down):
		m.browser.Down()
	case key.Matches(msg, m.keys.left):
		m.browser.Left()
	case key.Matches(msg, m.keys.right):
		m.browser.Right()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.retry):
		if m.disconnected && !m.connecting {
			return m, m.reconnect()
		}
	case key.Matches(msg, m.keys.enter):
		return m.activate()
	case key.Matches(msg, m.keys.play):
		return m.togglePlayback()
	case key.Matches(msg, m.keys.seek):
		m.beginSeek()
	}
	return m, nil
}

func (m *Model) handleSeekKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.left):
		m.pending = clampSeek(m.pending-m.step, m.mirror.Duration())
	case key.Matches(msg, m.keys.right):
		m.pending = clampSeek(m.pending+m.step, m.mirror.Duration())
	case key.Matches(msg, m.keys.back):
		m.seeking = false
	case key.Matches(msg, m.keys.enter):
		m.seeking = false
		if !m.canPlay() {
			return m, nil
		}
		position := m.pending
		m.mirror.SeekTo(position, m.now())
		return m, m.request("seek", func(ctx context.Context) error { return m.player.Seek(ctx, position) })
	}
	return m, nil
}

func clampSeek(d, duration time.Duration) time.Duration {
	return max(0, min(d, duration))
}

// canPlay reports whether playback keys have any effect. A status line explains why when they do not.
func (m *Model) canPlay() bool {
	switch {
	case m.disconnected:
		m.status = "Disconnected: press r to reconnect"
		return false
	case !m.premium:
		m.status = "Spotify Premium required for playback"
		return false
	}
	return true
}

func (m *Model) activate() (tea.Model, tea.Cmd) {
	row, ok := m.browser.Row()
	if !ok {
		return m, nil
	}
	if row.Kind == browse.GroupRow {
		m.browser.Toggle()
		return m, nil
	}

	np, err := m.browser.Activate()
	if errors.Is(err, shared.ErrUnavailable) {
		artist := m.browser.Catalog().Groups[row.Group].Artists[row.Artist]
		m.status = fmt.Sprintf("%s has no %s song", artist.Name, m.browser.Cursor().Column)
		return m, nil
	}
	if err != nil {
		m.logger.Warn("activate failed", "error", err)
		return m, nil
	}
	if !m.canPlay() {
		return m, nil
	}

	uri := np.Song.URI
	m.browser.SetCurrent(&np)
	m.mirror.Start(uri, m.now())
	m.seeking = false
	return m, tea.Batch(
		m.syncTicker(),
		m.request("play", func(ctx context.Context) error { return m.player.Play(ctx, uri) }),
	)
}

func (m *Model) togglePlayback() (tea.Model, tea.Cmd) {
	if !m.mirror.Loaded() || !m.canPlay() {
		return m, nil
	}

	now := m.now()
	var req tea.Cmd
	if m.mirror.Playing() {
		m.mirror.Pause(now)
		req = m.request("pause", m.player.Pause)
	} else {
		m.mirror.Resume(now)
		req = m.request("resume", m.player.Resume)
	}
	return m, tea.Batch(m.syncTicker(), req)
}

func (m *Model) beginSeek() {
	if !m.mirror.Loaded() || m.mirror.Duration() == 0 {
		return
	}
	m.seeking = true
	m.pending = m.mirror.Position(m.now())
}

func (m *Model) handleConnected(msg connectedMsg) (tea.Model, tea.Cmd) {
	m.connecting = false
	if msg.err != nil {
		m.err = msg.err
		m.logger.Error("connect failed", "player", m.player.Name(), "error", msg.err)
		if m.disconnected {
			m.status = "Reconnect failed: press r to retry"
		}
		return m, nil
	}

	m.err = nil
	m.view = BrowseView
	m.premium = msg.premium
	m.disconnected = false
	m.events = msg.events
	m.logger.Info("connected", "player", m.player.Name(), "premium", msg.premium)
	return m, m.waitForEvent()
}

func (m *Model) handleEvent(ev services.Event) (tea.Model, tea.Cmd) {
	if ev.Kind == services.EventDisconnected {
		m.logger.Warn("player disconnected", "error", ev.Err)
		m.dropSession()
		return m, m.waitForEvent()
	}

	m.mirror.Apply(ev.State, ev.ReceivedAt)
	m.followTrack(ev.State.TrackURI)
	return m, tea.Batch(m.syncTicker(), m.waitForEvent())
}

// followTrack keeps the highlighted cell in step with the track the player reports.
func (m *Model) followTrack(uri string) {
	current := m.browser.Current()
	if uri == "" {
		m.browser.SetCurrent(nil)
		return
	}
	if current != nil && current.Song.URI == uri {
		return
	}
	if np, ok := m.browser.Catalog().FindURI(uri); ok {
		m.browser.SetCurrent(&np)
		return
	}
	m.browser.SetCurrent(nil)
}

func (m *Model) dropSession() {
	m.disconnected = true
	m.seeking = false
	m.mirror.Reset()
	m.browser.SetCurrent(nil)
	m.ticker.Stop()
}

// syncTicker starts a tick chain when playback runs and cancels it otherwise.
func (m *Model) syncTicker() tea.Cmd {
	switch {
	case m.mirror.Playing() && !m.ticker.Active():
		return m.tick(m.ticker.Start())
	case !m.mirror.Playing() && m.ticker.Active():
		m.ticker.Stop()
	}
	return nil
}

func (m *Model) tick(gen int) tea.Cmd {
	return tea.Tick(m.ticker.Interval(), func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func (m *Model) connect() tea.Cmd {
	player := m.player
	ctx := m.ctx
	return func() tea.Msg {
		if err := player.Connect(ctx); err != nil {
			return connectedMsg{err: err}
		}

		premium, err := player.Premium(ctx)
		if err != nil {
			return connectedMsg{err: err}
		}

		events, err := player.Subscribe(ctx)
		if err != nil {
			return connectedMsg{err: err}
		}
		return connectedMsg{premium: premium, events: events}
	}
}

func (m *Model) reconnect() tea.Cmd {
	m.connecting = true
	m.err = nil
	return tea.Batch(m.spinner.Tick, m.connect())
}

func (m *Model) waitForEvent() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *Model) request(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if err := fn(ctx); err != nil {
			return playbackErrMsg{op: op, err: err}
		}
		return nil
	}
}

func (m *Model) renderConnect() string {
	title := styles.title.Render("mica")
	name := "Spotify"
	if m.player != nil {
		name = m.player.Name()
	}

	if m.connecting || m.err == nil {
		return fmt.Sprintf("%s\n%s Connecting to %s...\n", title, m.spinner.View(), name)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.retry, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s\n", title, styles.err.Render(fmt.Sprintf("Could not connect to %s: %v", name, m.err)), helpView)
}

func (m *Model) renderBrowse() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("mica · Artistas / Artists"))
	b.WriteString("\n")

	if banner := m.banner(); banner != "" {
		b.WriteString(styles.banner.Render(banner))
		b.WriteString("\n\n")
	}

	b.WriteString(renderRows(m.browser.View(), m.browser.Cursor()))

	if bar := m.renderPlayer(); bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styles.warn.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.seeking {
		b.WriteString(m.help.ShortHelpView(m.keys.seekHelp()))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m *Model) banner() string {
	switch {
	case m.disconnected && m.connecting:
		return "Reconnecting..."
	case m.disconnected:
		return "Disconnected"
	case !m.premium:
		return "Spotify Premium required"
	}
	return ""
}
