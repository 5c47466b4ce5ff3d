package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jask/catalog/internal/badge"
	"github.com/jask/catalog/internal/config"
	"github.com/jask/catalog/internal/content"
	"github.com/jask/catalog/internal/grid"
	"github.com/jask/catalog/internal/keyboard"
	"github.com/jask/catalog/internal/overlay"
	"github.com/jask/catalog/internal/widgets"
)

const (
	cardHeight = 8
	gridGap    = 1
	chromeRows = 3 // header, status bar, footer
)

// Options configures the App beyond its context and source.
type Options struct {
	UI     config.UIConfig
	Hub    *keyboard.Hub // the hub the search controller is mounted on
	Logger *logrus.Logger
}

type tab struct {
	title    string
	variant  content.Variant // empty for the latest tab
	renderer *grid.Renderer
	loaded   bool
	items    []content.Item
	result   grid.Result
	err      error
	cursor   int
	offset   int
}

// App is the catalog browser: a Latest tab plus one grid per variant, a
// detail popup and the search overlay.
type App struct {
	ctx      context.Context
	source   Source
	registry *content.Registry
	details  *grid.Renderer
	search   *overlay.Controller
	hub      *keyboard.Hub
	keys     *KeyRegistry
	help     help.Model
	query    textinput.Model
	logger   *logrus.Entry
	ui       config.UIConfig

	tabs   []tab
	active int
	detail content.Item

	width     int
	height    int
	status    string
	statusErr bool
}

// New builds the App. ctx must carry the search controller (see
// overlay.WithController); its absence is a wiring error.
func New(ctx context.Context, source Source, opts Options) (*App, error) {
	search, err := overlay.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, errors.New("tui: nil content source")
	}
	registry, err := content.NewDefaultRegistry()
	if err != nil {
		return nil, err
	}

	hub := opts.Hub
	if hub == nil {
		hub = keyboard.NewHub()
	}
	search.Mount(hub)

	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	ui := opts.UI
	if ui.Columns < 1 {
		ui.Columns = 3
	}
	if ui.LatestLimit < 1 {
		ui.LatestLimit = 6
	}
	if ui.SkeletonCount <= 0 {
		ui.SkeletonCount = grid.DefaultSkeletonCount
	}

	query := textinput.New()
	query.Prompt = "› "
	query.Placeholder = "Search prompts, agents, powers, hooks and steering"
	query.CharLimit = 200

	a := &App{
		ctx:      ctx,
		source:   source,
		registry: registry,
		details:  grid.New(registry, grid.WithBadgeContext(badge.DetailHeader)),
		search:   search,
		hub:      hub,
		keys:     NewKeyRegistry(DefaultKeyBindings(search.Shortcut())),
		help:     help.New(),
		query:    query,
		logger:   logger.WithField("component", "tui"),
		ui:       ui,
		status:   "Loading…",
		width:    100,
		height:   32,
	}
	a.tabs = append(a.tabs, tab{title: "Latest", renderer: grid.New(registry)})
	for _, v := range content.Variants() {
		label := v.Label()
		empty := grid.WithEmptyState("No "+strings.ToLower(label)+" yet", "Check back soon for new additions.")
		a.tabs = append(a.tabs, tab{title: label, variant: v, renderer: grid.New(registry, empty)})
	}
	search.OnChange(a.onSearchChange)
	return a, nil
}

func (a *App) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.tabs))
	for i := range a.tabs {
		cmds = append(cmds, a.loadTab(i))
	}
	return tea.Batch(cmds...)
}

func (a *App) loadTab(i int) tea.Cmd {
	v := a.tabs[i].variant
	limit := a.ui.LatestLimit
	return func() tea.Msg {
		var (
			items []content.Item
			err   error
		)
		if v == "" {
			items, err = a.source.Latest(a.ctx, limit)
		} else {
			items, err = a.source.AllOfVariant(a.ctx, v)
		}
		return itemsMsg{tab: i, items: items, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.query.Width = min(56, max(10, m.Width-20))
		return a, nil
	case itemsMsg:
		a.applyItems(m)
		return a, nil
	case tea.MouseMsg:
		switch m.Button {
		case tea.MouseButtonWheelUp:
			a.scroll(-1)
		case tea.MouseButtonWheelDown:
			a.scroll(1)
		}
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	if a.search.IsOpen() {
		var cmd tea.Cmd
		a.query, cmd = a.query.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) applyItems(m itemsMsg) {
	if m.tab < 0 || m.tab >= len(a.tabs) {
		return
	}
	t := &a.tabs[m.tab]
	t.loaded = true
	t.err = nil
	if m.err != nil {
		t.err = fmt.Errorf("load %s: %w", strings.ToLower(t.title), m.err)
		a.setError(t.err)
		return
	}
	t.items = m.items

	var (
		res grid.Result
		err error
	)
	if t.variant == "" {
		res, err = t.renderer.RenderLimit(m.items, a.ui.LatestLimit)
	} else {
		res, err = t.renderer.Render(m.items)
	}
	if err != nil {
		t.err = fmt.Errorf("render %s: %w", strings.ToLower(t.title), err)
		t.result = nil
		a.setError(t.err)
		return
	}
	t.result = res
	if n := len(cardsOf(res)); t.cursor >= n {
		t.cursor = max(0, n-1)
	}
	a.logger.WithFields(logrus.Fields{"tab": t.title, "count": len(m.items)}).Debug("tab loaded")
	if !a.statusErr {
		a.status = "Ready"
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	wasOpen := a.search.IsOpen()
	ev := a.hub.Dispatch(msg, a.focusLocked())
	if ev.DefaultPrevented() {
		if !wasOpen && a.search.IsOpen() {
			return a, textinput.Blink
		}
		return a, nil
	}

	scope := a.scope()
	if a.keys.IsAction(msg, actionQuit, scope) {
		return a, tea.Quit
	}
	switch scope {
	case scopeSearch:
		var cmd tea.Cmd
		a.query, cmd = a.query.Update(msg)
		return a, cmd
	case scopeDetail:
		if a.keys.IsAction(msg, actionClose, scope) {
			a.detail = nil
		}
		return a, nil
	}
	return a.handleGridKey(msg)
}

func (a *App) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case a.keys.IsAction(msg, actionNextTab, scopeGrid):
		a.active = (a.active + 1) % len(a.tabs)
	case a.keys.IsAction(msg, actionPrevTab, scopeGrid):
		a.active = (a.active - 1 + len(a.tabs)) % len(a.tabs)
	case a.keys.IsAction(msg, actionSwitchTab, scopeGrid):
		if idx := int(msg.String()[0] - '1'); idx >= 0 && idx < len(a.tabs) {
			a.active = idx
		}
	case a.keys.IsAction(msg, actionLeft, scopeGrid):
		a.move(-1)
	case a.keys.IsAction(msg, actionRight, scopeGrid):
		a.move(1)
	case a.keys.IsAction(msg, actionUp, scopeGrid):
		a.move(-a.ui.Columns)
	case a.keys.IsAction(msg, actionDown, scopeGrid):
		a.move(a.ui.Columns)
	case a.keys.IsAction(msg, actionPageUp, scopeGrid):
		a.scroll(-max(1, a.visibleRows()))
	case a.keys.IsAction(msg, actionPageDown, scopeGrid):
		a.scroll(max(1, a.visibleRows()))
	case a.keys.IsAction(msg, actionOpenDetail, scopeGrid):
		a.openDetail()
	case a.keys.IsAction(msg, actionSearch, scopeGrid):
		a.search.Open()
		return a, textinput.Blink
	case a.keys.IsAction(msg, actionReload, scopeGrid):
		a.tabs[a.active].loaded = false
		a.status, a.statusErr = "Reloading "+strings.ToLower(a.tabs[a.active].title)+"…", false
		return a, a.loadTab(a.active)
	}
	return a, nil
}

// focusLocked reports whether another modal owns the keyboard, in which case
// the search shortcut must not fire.
func (a *App) focusLocked() bool { return a.detail != nil }

func (a *App) scope() string {
	switch {
	case a.search.IsOpen():
		return scopeSearch
	case a.detail != nil:
		return scopeDetail
	}
	return scopeGrid
}

func (a *App) onSearchChange(s overlay.State) {
	if s == overlay.Open {
		a.query.Reset()
		a.query.Focus()
	} else {
		a.query.Blur()
	}
	a.logger.WithField("state", s).Debug("search overlay")
}

func (a *App) move(delta int) {
	t := &a.tabs[a.active]
	n := len(cardsOf(t.result))
	if n == 0 {
		return
	}
	next := t.cursor + delta
	if next < 0 || next >= n {
		return
	}
	t.cursor = next
	a.keepVisible()
}

// scroll shifts the active grid by delta rows. The grid stays put while the
// search overlay holds the scroll lock.
func (a *App) scroll(delta int) {
	if overlay.ScrollLocked() {
		return
	}
	t := &a.tabs[a.active]
	t.offset = min(max(0, t.offset+delta), a.maxOffset())
}

func (a *App) keepVisible() {
	if overlay.ScrollLocked() {
		return
	}
	t := &a.tabs[a.active]
	row := t.cursor / a.ui.Columns
	visible := max(1, a.visibleRows())
	switch {
	case row < t.offset:
		t.offset = row
	case row >= t.offset+visible:
		t.offset = row - visible + 1
	}
}

func (a *App) openDetail() {
	t := a.tabs[a.active]
	if t.cursor < len(cardsOf(t.result)) && t.cursor < len(t.items) {
		a.detail = t.items[t.cursor]
	}
}

func (a *App) visibleRows() int {
	return widgets.RowsVisible(a.bodyHeight(), cardHeight, gridGap)
}

func (a *App) maxOffset() int {
	n := len(cardsOf(a.tabs[a.active].result))
	rows := (n + a.ui.Columns - 1) / a.ui.Columns
	return max(0, rows-max(1, a.visibleRows()))
}

func (a *App) bodyHeight() int { return max(1, a.height-chromeRows) }

func (a *App) setError(err error) {
	if err == nil {
		a.status, a.statusErr = "", false
		return
	}
	if a.statusErr && a.status == err.Error() {
		return
	}
	a.logger.WithError(err).Error("catalog error")
	a.status, a.statusErr = err.Error(), true
}

func cardsOf(res grid.Result) []grid.Card {
	if list, ok := res.(grid.ItemList); ok {
		return list.Cards
	}
	return nil
}
