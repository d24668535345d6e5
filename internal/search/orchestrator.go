// Package search drives one search from the query bar to the result grid:
// the advisory refresh, the mode query, status reporting and rendering.
package search

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pders01/adfind/internal/ads"
	"github.com/pders01/adfind/internal/backend"
	"github.com/pders01/adfind/internal/debuglog"
	"github.com/pders01/adfind/internal/history"
	"github.com/pders01/adfind/internal/status"
)

const (
	MsgRefreshing = "Refreshing index from source"
	MsgBuilding   = "Building results from index"
	MsgEnterQuery = "Enter a query"
)

// Ports are the screen regions a search writes to.
type Ports interface {
	SetStatus(message string, kind status.Kind)
	SetModeLabel(label string)
	RenderResults(query string, items []ads.Item)
}

// Backend is the subset of backend.Client a search needs.
type Backend interface {
	Refresh(ctx context.Context, q string) error
	Query(ctx context.Context, mode ads.Mode, q string) (*http.Response, error)
}

// Recorder receives every search that rendered results.
type Recorder interface {
	Record(e history.Entry) error
}

type Option func(*Orchestrator)

// WithClock replaces time.Now for latency measurement and history stamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithRequestIDs replaces the uuid generator used for X-Request-ID.
func WithRequestIDs(gen func() string) Option {
	return func(o *Orchestrator) { o.newID = gen }
}

type Orchestrator struct {
	backend  Backend
	ports    Ports
	recorder Recorder
	now      func() time.Time
	newID    func() string
	inflight atomic.Int32
}

func New(b Backend, ports Ports, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend: b,
		ports:   ports,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Busy reports whether a Run is in flight.
func (o *Orchestrator) Busy() bool {
	return o.inflight.Load() > 0
}

// Run performs one search. A failed refresh is logged and ignored. A non-OK
// query status is shown on the status line and leaves prior results alone.
// Transport and decode failures are returned to the caller.
func (o *Orchestrator) Run(ctx context.Context, mode ads.Mode, query string) error {
	o.inflight.Add(1)
	defer o.inflight.Add(-1)

	id := o.newID()
	ctx = backend.WithRequestID(ctx, id)
	log := debuglog.WithFields(debuglog.Fields{
		"request_id": id,
		"mode":       mode.String(),
		"query":      query,
	})

	o.ports.SetModeLabel(mode.Label())
	o.ports.SetStatus(MsgRefreshing, status.KindLoading)

	if err := o.backend.Refresh(ctx, query); err != nil {
		log.Warnf("advisory refresh failed: %v", err)
	}

	o.ports.SetStatus(MsgBuilding, status.KindLoading)

	start := o.now()
	resp, err := o.backend.Query(ctx, mode, query)
	elapsed := o.now().Sub(start)
	if err != nil {
		log.Errorf("query failed after %s: %v", elapsed, err)
		return err
	}
	defer resp.Body.Close()

	if !backend.OK(resp) {
		log.Warnf("query returned status %d", resp.StatusCode)
		o.ports.SetStatus(SearchErrorMessage(resp.StatusCode), status.KindError)
		return nil
	}

	items, err := ads.Decode(resp.Body)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	o.ports.SetStatus(DoneMessage(elapsed), status.KindIdle)
	o.ports.RenderResults(query, items)
	log.Infof("%d results in %s", len(items), elapsed)

	o.record(log, history.Entry{Query: query, Mode: mode, Count: len(items), At: o.now()})
	return nil
}

func (o *Orchestrator) record(log *debuglog.FieldLogger, e history.Entry) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.Record(e); err != nil {
		log.Warnf("recording history: %v", err)
	}
}

func SearchErrorMessage(code int) string {
	return fmt.Sprintf("Search error in index: %d", code)
}

// DoneMessage reports elapsed rounded to whole milliseconds.
func DoneMessage(elapsed time.Duration) string {
	ms := math.Round(float64(elapsed) / float64(time.Millisecond))
	return fmt.Sprintf("Done in %d ms", int64(ms))
}

// ErrorMessage is the status text for a failed search. Errors with an empty
// message fall back to their type name.
func ErrorMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		msg = fmt.Sprintf("%T", err)
	}
	return "Error: " + msg
}
