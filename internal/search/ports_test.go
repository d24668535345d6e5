package search

import (
	"fmt"
	"sync"

	"github.com/pders01/adfind/internal/ads"
	"github.com/pders01/adfind/internal/format"
	"github.com/pders01/adfind/internal/results"
	"github.com/pders01/adfind/internal/status"
)

// screen records every port call and keeps the real status line and result
// grid behind them.
type screen struct {
	mu        sync.Mutex
	events    []string
	modeLabel string
	status    *status.Reporter
	results   *results.View
	renders   int
}

func newScreen() *screen {
	return &screen{
		status:  status.NewReporter(status.DefaultStyles()),
		results: results.New(format.Default(), results.NewStyles(results.DefaultPalette()), results.DefaultCardWidth),
	}
}

func (s *screen) SetStatus(message string, kind status.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, fmt.Sprintf("status[%s] %s", kind, message))
	s.status.Set(message, kind)
}

func (s *screen) SetModeLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, "mode "+label)
	s.modeLabel = label
}

func (s *screen) RenderResults(query string, items []ads.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, fmt.Sprintf("render %q %d", query, len(items)))
	s.renders++
	s.results.Render(query, items)
}

func (s *screen) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

func (s *screen) Status() status.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status.State()
}

func (s *screen) ModeLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modeLabel
}

func (s *screen) Cards() []results.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.Cards()
}
