package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/adfind/internal/config"
	"github.com/pders01/adfind/internal/results"
)

type keyBindings struct {
	Quit       key.Binding
	Submit     key.Binding
	ToggleMode key.Binding
	Clear      key.Binding
	Open       key.Binding
	History    key.Binding
	Focus      key.Binding
	Select     key.Binding
	Back       key.Binding
	Help       key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
}

func newKeyBindings(cfg *config.Config) keyBindings {
	mod := cfg.Keys.Modifier + "+"
	b := cfg.Keys.Bindings

	bind := func(help string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
	}

	return keyBindings{
		Quit:       bind("quit", mod+b.Quit),
		Submit:     bind("search", "enter"),
		ToggleMode: bind("toggle mode", mod+b.ToggleMode),
		Clear:      bind("clear", mod+b.Clear),
		Open:       bind("open link", mod+b.Open),
		History:    bind("history", mod+b.History),
		Focus:      bind("switch focus", "tab", "shift+tab"),
		Select:     bind("details", "enter"),
		Back:       bind("back", b.Back),
		Help:       bind("more", b.Help),
		Up:         bind("up", "up", "k"),
		Down:       bind("down", "down", "j"),
		Left:       bind("left", "left", "h"),
		Right:      bind("right", "right", "l"),
	}
}

// helpKeys adapts a fixed set of bindings to help.KeyMap.
type helpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding  { return h.short }
func (h helpKeys) FullHelp() [][]key.Binding { return h.full }

type KeyHandler struct {
	app         *App
	config      *config.Config
	modifierKey string
	keys        keyBindings
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	return &KeyHandler{
		app:         app,
		config:      cfg,
		modifierKey: cfg.Keys.Modifier + "+",
		keys:        newKeyBindings(cfg),
	}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, kh.keys.Quit) {
		return kh.app.quit()
	}

	switch kh.app.view {
	case ViewDetail:
		return kh.handleDetailKeys(msg)
	case ViewHistory:
		return kh.handleHistoryKeys(msg)
	}

	if kh.app.focus == focusInput {
		return kh.handleInputKeys(msg)
	}
	return kh.handleResultsKeys(msg)
}

// handleInputKeys runs while the query field has focus. Anything that is not
// an action key is typed into the field.
func (kh *KeyHandler) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	switch {
	case key.Matches(msg, kh.keys.Submit):
		return a, a.submit()
	case key.Matches(msg, kh.keys.ToggleMode):
		a.ctrl.ToggleMode()
		return a, nil
	case key.Matches(msg, kh.keys.Clear):
		a.clearInput()
		return a, nil
	case key.Matches(msg, kh.keys.History):
		return a, a.openHistory()
	case key.Matches(msg, kh.keys.Open):
		return a, a.openSelected()
	case key.Matches(msg, kh.keys.Focus):
		a.focusResults()
		return a, nil
	}
	return kh.delegateToTextInput(msg)
}

func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.ctrl.Input(a.input.Value())
	return a, cmd
}

func (kh *KeyHandler) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	switch {
	case key.Matches(msg, kh.keys.Select):
		return a, a.showDetail()
	case key.Matches(msg, kh.keys.Up):
		a.screen.withResults(func(v *results.View) { v.Up() })
	case key.Matches(msg, kh.keys.Down):
		a.screen.withResults(func(v *results.View) { v.Down() })
	case key.Matches(msg, kh.keys.Left):
		a.screen.withResults(func(v *results.View) { v.Prev() })
	case key.Matches(msg, kh.keys.Right):
		a.screen.withResults(func(v *results.View) { v.Next() })
	case key.Matches(msg, kh.keys.Focus), key.Matches(msg, kh.keys.Back):
		a.focusInput()
	case key.Matches(msg, kh.keys.ToggleMode):
		a.ctrl.ToggleMode()
	case key.Matches(msg, kh.keys.History):
		return a, a.openHistory()
	case key.Matches(msg, kh.keys.Open):
		return a, a.openSelected()
	case key.Matches(msg, kh.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (kh *KeyHandler) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	switch {
	case key.Matches(msg, kh.keys.Back):
		a.view = ViewSearch
		return a, nil
	case key.Matches(msg, kh.keys.Open):
		return a, a.openSelected()
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (kh *KeyHandler) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	switch {
	case key.Matches(msg, kh.keys.Back):
		a.view = ViewSearch
		return a, nil
	case key.Matches(msg, kh.keys.Select):
		if i, ok := a.historyList.SelectedItem().(historyItem); ok {
			a.selectHistory(i.entry)
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.historyList, cmd = a.historyList.Update(msg)
	return a, cmd
}

// GetHelpForCurrentView returns the bindings shown in the footer.
func (kh *KeyHandler) GetHelpForCurrentView() help.KeyMap {
	k := kh.keys
	switch kh.app.view {
	case ViewDetail:
		return helpKeys{short: []key.Binding{k.Open, k.Back, k.Quit}}
	case ViewHistory:
		return helpKeys{short: []key.Binding{k.Select, k.Back}}
	}

	if kh.app.focus == focusResults {
		return helpKeys{
			short: []key.Binding{k.Select, k.Open, k.Focus, k.Help},
			full: [][]key.Binding{
				{k.Up, k.Down, k.Left, k.Right},
				{k.Select, k.Open, k.Focus, k.Back},
				{k.ToggleMode, k.History, k.Quit},
			},
		}
	}
	return helpKeys{short: []key.Binding{k.Submit, k.ToggleMode, k.Clear, k.History, k.Focus, k.Quit}}
}
