package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pders01/adfind/internal/ads"
	"github.com/pders01/adfind/internal/backend"
	"github.com/pders01/adfind/internal/config"
	"github.com/pders01/adfind/internal/debuglog"
	"github.com/pders01/adfind/internal/format"
	"github.com/pders01/adfind/internal/results"
	"github.com/pders01/adfind/internal/search"
	"github.com/pders01/adfind/internal/status"
)

// errSearchFailed means the failure is already on the status line.
var errSearchFailed = errors.New("search failed")

var searchWidth int

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Run one search and print the result cards",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchWidth, "width", 80, "Width of the printed card grid")
}

// consolePorts prints status lines to errOut and the mode label and result
// grid to out.
type consolePorts struct {
	out    io.Writer
	errOut io.Writer
	status *status.Reporter
	view   *results.View
}

func newConsolePorts(out, errOut io.Writer, cfg *config.Config, width int) *consolePorts {
	view := results.New(
		format.New(cfg.UI.Locale, cfg.UI.Currency),
		results.NewStyles(results.DefaultPalette()),
		cfg.UI.CardWidth,
	)
	view.SetSize(width, 0)
	return &consolePorts{
		out:    out,
		errOut: errOut,
		status: status.NewReporter(status.DefaultStyles()),
		view:   view,
	}
}

func (p *consolePorts) SetStatus(message string, kind status.Kind) {
	p.status.Set(message, kind)
	if line := p.status.Plain(); line != "" {
		fmt.Fprintln(p.errOut, line)
	}
}

func (p *consolePorts) SetModeLabel(label string) {
	fmt.Fprintln(p.out, label)
}

func (p *consolePorts) RenderResults(query string, items []ads.Item) {
	p.view.Render(query, items)
	fmt.Fprintln(p.out, p.view.View())
}

func (p *consolePorts) failed() bool {
	return p.status.State().Kind == status.KindError
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer debuglog.Close()

	client, err := backend.NewClient(cfg)
	if err != nil {
		return err
	}

	ports := newConsolePorts(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, searchWidth)

	var opts []search.Option
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		opts = append(opts, search.WithRecorder(store))
	}

	orch := search.New(client, ports, opts...)
	ctrl := search.NewController(orch, ports, ads.ModeFromToggle(cfg.UI.Semantic))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := ctrl.Submit(ctx, strings.Join(args, " ")); err != nil || ports.failed() {
		return errSearchFailed
	}
	return nil
}
