package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/adfind/internal/ads"
	"github.com/pders01/adfind/internal/browser"
	"github.com/pders01/adfind/internal/debuglog"
	"github.com/pders01/adfind/internal/format"
	"github.com/pders01/adfind/internal/history"
	"github.com/pders01/adfind/internal/results"
)

const historyListSize = 50

type searchFinishedMsg struct {
	query string
	err   error
}

type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}

type linkOpenedMsg struct {
	href string
	err  error
}

type detailRenderedMsg struct {
	content string
}

// runSearch runs a search already claimed with Controller.Begin. Status and
// results reach the screen through the ports while it runs.
func (a *App) runSearch(mode ads.Mode, query string) tea.Cmd {
	return func() tea.Msg {
		err := a.ctrl.Run(a.ctx, mode, query)
		return searchFinishedMsg{query: query, err: err}
	}
}

func (a *App) loadHistory(text string) tea.Cmd {
	return func() tea.Msg {
		entries, err := a.history.Find(text, historyListSize)
		return historyLoadedMsg{entries: entries, err: wrapErr("loading history", err)}
	}
}

func (a *App) openLink(href string) tea.Cmd {
	return func() tea.Msg {
		err := a.opener.Open(href)
		if err != nil && !errors.Is(err, browser.ErrNoLink) {
			debuglog.Warnf("opening %s: %v", href, err)
		}
		return linkOpenedMsg{href: href, err: err}
	}
}

func (a *App) renderDetail(card results.Card) tea.Cmd {
	return func() tea.Msg {
		r, err := a.getRenderer()
		if err != nil {
			return detailRenderedMsg{content: "Error initializing renderer: " + err.Error()}
		}

		rendered, err := r.Render(detailMarkdown(card))
		if err != nil {
			return detailRenderedMsg{content: fmt.Sprintf("# Error\n\nFailed to render ad: %s\n\nPress Escape to go back.", err.Error())}
		}
		return detailRenderedMsg{content: rendered}
	}
}

func detailMarkdown(c results.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Title)
	fmt.Fprintf(&b, "**%s** · %s\n\n", c.Price, c.City)
	fmt.Fprintf(&b, "*%s* · %s\n\n", c.Chip, c.Meta)
	b.WriteString("---\n\n")
	b.WriteString(c.Description)
	b.WriteString("\n\n")
	if c.Href != "" && c.Href != format.EmptyHref {
		fmt.Fprintf(&b, "[%s](%s)\n", c.LinkLabel, c.Href)
	}
	return b.String()
}
