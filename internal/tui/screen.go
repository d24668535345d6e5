package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/adfind/internal/ads"
	"github.com/pders01/adfind/internal/results"
	"github.com/pders01/adfind/internal/status"
)

// screen is the set of regions a search writes to. Searches run off the
// update loop, so every region sits behind mu and each write posts a
// wake-up on updates for the loop to redraw.
type screen struct {
	mu        sync.Mutex
	status    *status.Reporter
	modeLabel string
	results   *results.View

	updates chan struct{}
}

func newScreen(reporter *status.Reporter, view *results.View) *screen {
	return &screen{
		status:  reporter,
		results: view,
		updates: make(chan struct{}, 1),
	}
}

func (s *screen) SetStatus(message string, kind status.Kind) {
	s.mu.Lock()
	s.status.Set(message, kind)
	s.mu.Unlock()
	s.notify()
}

func (s *screen) SetModeLabel(label string) {
	s.mu.Lock()
	s.modeLabel = label
	s.mu.Unlock()
	s.notify()
}

func (s *screen) RenderResults(query string, items []ads.Item) {
	s.mu.Lock()
	s.results.Render(query, items)
	s.mu.Unlock()
	s.notify()
}

// notify never blocks; one pending wake-up covers any number of writes.
func (s *screen) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

func (s *screen) StatusState() status.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status.State()
}

func (s *screen) StatusView() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status.View()
}

func (s *screen) ModeLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modeLabel
}

// withResults runs fn with exclusive access to the result grid.
func (s *screen) withResults(fn func(v *results.View)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.results)
}

type screenUpdatedMsg struct{}

// waitForScreen delivers the next wake-up, or nothing once ctx is done.
func waitForScreen(ctx context.Context, updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-updates:
			return screenUpdatedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}
