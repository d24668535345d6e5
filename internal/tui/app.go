package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/adfind/internal/ads"
	"github.com/pders01/adfind/internal/browser"
	"github.com/pders01/adfind/internal/config"
	"github.com/pders01/adfind/internal/debuglog"
	"github.com/pders01/adfind/internal/format"
	"github.com/pders01/adfind/internal/history"
	"github.com/pders01/adfind/internal/results"
	"github.com/pders01/adfind/internal/search"
	"github.com/pders01/adfind/internal/status"
)

// searchChrome is the number of lines around the result grid: title row,
// framed input (3), status line, blank line and the footer (2).
const searchChrome = 8

// HistoryStore is the part of history.Store the UI uses.
type HistoryStore interface {
	search.Recorder
	Find(text string, n int) ([]history.Entry, error)
}

type LinkOpener interface {
	Open(href string) error
}

// Deps are the collaborators the App is wired to. History may be nil.
type Deps struct {
	Backend search.Backend
	History HistoryStore
	Opener  LinkOpener
}

type App struct {
	config     *config.Config
	ctx        context.Context
	cancel     context.CancelFunc
	ctrl       *search.Controller
	orch       *search.Orchestrator
	screen     *screen
	history    HistoryStore
	opener     LinkOpener
	keyHandler *KeyHandler

	input       textinput.Model
	spinner     spinner.Model
	historyList list.Model
	viewport    viewport.Model
	help        help.Model

	view   View
	focus  focus
	detail results.Card
	width  int
	height int
	notice string
	err    error

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

func NewApp(cfg *config.Config, deps Deps) *App {
	ApplyColors(cfg.UI.Colors)

	formatter := format.New(cfg.UI.Locale, cfg.UI.Currency)
	scr := newScreen(
		status.NewReporter(StatusStyles()),
		results.New(formatter, results.NewStyles(Palette()), cfg.UI.CardWidth),
	)

	var opts []search.Option
	if deps.History != nil {
		opts = append(opts, search.WithRecorder(deps.History))
	}
	orch := search.New(deps.Backend, scr, opts...)
	ctrl := search.NewController(orch, scr, ads.ModeFromToggle(cfg.UI.Semantic))
	ctrl.SetSemantic(cfg.UI.Semantic)

	ti := textinput.New()
	ti.Placeholder = "Search ads, e.g. iphone 13"
	ti.Prompt = "› "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(HighlightColor)

	historyList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	historyList.Title = "› past searches"
	historyList.SetShowStatusBar(false)
	historyList.SetFilteringEnabled(false)
	historyList.SetShowHelp(false)

	opener := deps.Opener
	if opener == nil {
		opener = browser.New(cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		config:      cfg,
		ctx:         ctx,
		cancel:      cancel,
		ctrl:        ctrl,
		orch:        orch,
		screen:      scr,
		history:     deps.History,
		opener:      opener,
		input:       ti,
		spinner:     sp,
		historyList: historyList,
		viewport:    viewport.New(0, 0),
		help:        help.New(),
		view:        ViewSearch,
		focus:       focusInput,
	}
	app.keyHandler = NewKeyHandler(app, cfg)
	return app
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > 100 {
		wordWrapWidth = 100
	}
	if wordWrapWidth < 40 {
		wordWrapWidth = 40
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}
	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitForScreen(a.ctx, a.screen.updates),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		a.notice = ""
		a.err = nil
		return a.keyHandler.HandleKey(msg)

	case screenUpdatedMsg:
		return a, waitForScreen(a.ctx, a.screen.updates)

	case spinner.TickMsg:
		if a.ctrl.SubmitEnabled() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case searchFinishedMsg:
		if msg.err != nil {
			debuglog.Warnf("search %q: %v", msg.query, msg.err)
		}
		return a, nil

	case detailRenderedMsg:
		if a.view == ViewDetail {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
		}
		return a, nil

	case historyLoadedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		if len(msg.entries) == 0 {
			a.notice = MsgNoHistory
			return a, nil
		}
		items := make([]list.Item, len(msg.entries))
		for i, e := range msg.entries {
			items[i] = historyItem{entry: e}
		}
		a.historyList.SetItems(items)
		a.historyList.Select(0)
		a.historyList.Title = "› " + MsgHistoryCount(len(items))
		a.view = ViewHistory
		return a, nil

	case linkOpenedMsg:
		switch {
		case errors.Is(msg.err, browser.ErrNoLink):
			a.notice = MsgNoLink
		case msg.err != nil:
			a.err = msg.err
		default:
			a.notice = MsgOpened(msg.href)
		}
		return a, nil
	}

	if a.view == ViewSearch && a.focus == focusInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	inputWidth := width - 8
	if inputWidth < 10 {
		inputWidth = width - 4
	}
	a.input.Width = inputWidth

	gridHeight := height - searchChrome
	if gridHeight < 1 {
		gridHeight = 1
	}
	a.screen.withResults(func(v *results.View) { v.SetSize(width, gridHeight) })

	a.viewport.Width = width
	a.viewport.Height = height - 5
	a.historyList.SetSize(width, height-3)
	a.help.Width = width
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.cancel()
	return a, tea.Quit
}

// submit claims the submit control and starts the search in the background.
// Blank input reports on the status line; a submit while busy is dropped.
func (a *App) submit() tea.Cmd {
	query, err := a.ctrl.Begin(a.input.Value())
	if err != nil {
		return nil
	}
	return tea.Batch(a.runSearch(a.ctrl.Mode(), query), a.spinner.Tick)
}

func (a *App) clearInput() {
	a.input.Reset()
	a.ctrl.Clear()
}

func (a *App) focusResults() {
	var n int
	a.screen.withResults(func(v *results.View) { n = v.Len() })
	if n == 0 {
		return
	}
	a.focus = focusResults
	a.input.Blur()
}

func (a *App) focusInput() {
	a.focus = focusInput
	a.input.Focus()
}

func (a *App) selected() (results.Card, bool) {
	var card results.Card
	var ok bool
	a.screen.withResults(func(v *results.View) { card, ok = v.Selected() })
	return card, ok
}

func (a *App) showDetail() tea.Cmd {
	card, ok := a.selected()
	if !ok {
		return nil
	}
	a.detail = card
	a.view = ViewDetail
	a.viewport.SetContent(renderMuted(MsgRenderingAd))
	return a.renderDetail(card)
}

func (a *App) openSelected() tea.Cmd {
	card, ok := a.selected()
	if a.view == ViewDetail {
		card, ok = a.detail, true
	}
	if !ok {
		return nil
	}
	return a.openLink(card.Href)
}

func (a *App) openHistory() tea.Cmd {
	if a.history == nil {
		a.notice = MsgHistoryOff
		return nil
	}
	return a.loadHistory(a.input.Value())
}

// selectHistory fills the query bar from a past search without running it.
func (a *App) selectHistory(e history.Entry) {
	a.input.SetValue(e.Query)
	a.input.CursorEnd()
	a.ctrl.Input(e.Query)
	a.ctrl.SetSemantic(e.Mode.Semantic())
	a.view = ViewSearch
	a.focusInput()
}

func (a *App) View() string {
	var content string

	switch a.view {
	case ViewDetail:
		content = lipgloss.JoinVertical(lipgloss.Top,
			renderHeader(a.detail.Title, a.detail.Href, a.width),
			"",
			a.viewport.View(),
		)
	case ViewHistory:
		content = a.historyList.View()
	default:
		content = a.searchView()
	}

	separatorWidth := a.width - 2
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := SeparatorStyle.Render("─" + strings.Repeat("─", separatorWidth))

	return lipgloss.JoinVertical(lipgloss.Top, content, separator, a.footer())
}

func (a *App) searchView() string {
	var grid, count string
	var visible bool
	a.screen.withResults(func(v *results.View) {
		grid = v.View()
		count = v.MetaCount()
		visible = v.SectionVisible()
	})

	title := LogoStyle.Render(CompactLogo) + "  " + ModeStyle.Render(a.screen.ModeLabel())
	if visible {
		title += renderMuted(" · " + count)
	}

	field := a.input.View()
	switch {
	case !a.ctrl.SubmitEnabled():
		field += "  " + a.spinner.View() + renderMuted(" searching")
	case a.ctrl.ClearVisible():
		field += "  " + renderMuted("✕ "+a.keyHandler.keys.Clear.Help().Key)
	}
	frame := renderInputFrame(field, a.focus == focusInput, a.input.Width)

	if !visible {
		grid = renderCentered(a.width, a.height-searchChrome, GetWelcomeMessage())
	}

	return lipgloss.JoinVertical(lipgloss.Top,
		title,
		frame,
		a.screen.StatusView(),
		"",
		grid,
	)
}

func (a *App) footer() string {
	var line string
	switch {
	case a.err != nil:
		line = ErrorMessageStyle.Render(fmt.Sprintf("✗ %v", a.err))
	case a.notice != "":
		line = NoticeStyle.Render(a.notice)
	default:
		line = a.help.View(a.keyHandler.GetHelpForCurrentView())
	}
	return lipgloss.NewStyle().Width(a.width).Padding(0, 1).Render(line)
}

type historyItem struct {
	entry history.Entry
}

func (i historyItem) Title() string { return i.entry.Query }

func (i historyItem) Description() string {
	parts := []string{i.entry.Mode.String(), format.MetaCount(i.entry.Count)}
	if !i.entry.At.IsZero() {
		parts = append(parts, i.entry.At.Format("Jan 2, 15:04"))
	}
	return renderHelp(strings.Join(parts, " • "))
}

func (i historyItem) FilterValue() string { return i.entry.Query }
