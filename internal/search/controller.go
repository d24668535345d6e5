package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pders01/adfind/internal/ads"
	"github.com/pders01/adfind/internal/debuglog"
	"github.com/pders01/adfind/internal/status"
)

var (
	ErrEmptyQuery = errors.New("empty query")
	ErrBusy       = errors.New("search already in progress")
)

// Runner is satisfied by *Orchestrator.
type Runner interface {
	Run(ctx context.Context, mode ads.Mode, query string) error
}

// Controller turns query-bar events into searches. It owns the submit
// control (disabled while a search runs), clear-button visibility and the
// selected mode.
type Controller struct {
	runner Runner
	ports  Ports

	busy atomic.Bool

	mu           sync.Mutex
	mode         ads.Mode
	clearVisible bool
}

func NewController(runner Runner, ports Ports, mode ads.Mode) *Controller {
	return &Controller{
		runner: runner,
		ports:  ports,
		mode:   mode,
	}
}

// Begin validates raw input and claims the submit control. It returns
// ErrEmptyQuery (after reporting it on the status line) for blank input,
// even while busy, and ErrBusy while another search holds the control. On
// success the caller must follow up with Run.
func (c *Controller) Begin(raw string) (string, error) {
	query := strings.TrimSpace(raw)
	if query == "" {
		c.ports.SetStatus(MsgEnterQuery, status.KindError)
		return "", ErrEmptyQuery
	}
	if !c.busy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	return query, nil
}

// Run executes a search claimed by Begin. Any failure, including a panic,
// ends up on the status line. The submit control is released on return.
func (c *Controller) Run(ctx context.Context, mode ads.Mode, query string) (err error) {
	defer c.busy.Store(false)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
			debuglog.Errorf("search panicked: %v", r)
			c.ports.SetStatus(ErrorMessage(err), status.KindError)
		}
	}()

	if err = c.runner.Run(ctx, mode, query); err != nil {
		c.ports.SetStatus(ErrorMessage(err), status.KindError)
	}
	return err
}

// Submit is Begin followed by Run in the current mode.
func (c *Controller) Submit(ctx context.Context, raw string) error {
	query, err := c.Begin(raw)
	if err != nil {
		return err
	}
	return c.Run(ctx, c.Mode(), query)
}

// Input tracks the query field text for clear-button visibility.
func (c *Controller) Input(text string) {
	c.mu.Lock()
	c.clearVisible = strings.TrimSpace(text) != ""
	c.mu.Unlock()
}

// Clear hides the clear button. The caller empties the field; results and
// status are left as they are.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.clearVisible = false
	c.mu.Unlock()
}

// SetSemantic switches mode and updates the mode label right away.
func (c *Controller) SetSemantic(on bool) {
	mode := ads.ModeFromToggle(on)
	c.mu.Lock()
	c.mode = mode
	c.mu.Unlock()
	c.ports.SetModeLabel(mode.Label())
}

func (c *Controller) ToggleMode() ads.Mode {
	mode := c.Mode().Toggle()
	c.SetSemantic(mode.Semantic())
	return mode
}

func (c *Controller) Mode() ads.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) SubmitEnabled() bool { return !c.busy.Load() }

func (c *Controller) ClearVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearVisible
}
