package tui

import (
	"fmt"

	"github.com/pders01/adfind/internal/results"
)

// Short notices shown in the footer. The search status line itself is owned
// by the search controller.
const (
	MsgNoLink      = "This ad has no link"
	MsgNoHistory   = "No past searches"
	MsgHistoryOff  = "History is disabled"
	MsgRenderingAd = "Rendering ad…"
)

func MsgOpened(href string) string {
	return fmt.Sprintf("Opened %s", results.TruncateMiddle(href, 60))
}

func MsgHistoryCount(n int) string {
	if n == 1 {
		return "1 past search"
	}
	return fmt.Sprintf("%d past searches", n)
}
