// Package format turns raw ad values into the strings shown on result cards.
// Every function here is pure and falls back to a fixed label instead of
// failing.
package format

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/pders01/adfind/internal/ads"
)

const (
	NegotiablePrice  = "Price negotiable"
	DefaultCurrency  = "сом"
	DefaultLocale    = "ru"
	LocalSearchChip  = "local search"
	UntitledLabel    = "Untitled"
	NoCityLabel      = "City not specified"
	NoDescription    = "No description"
	LinkLabel        = "Open on Lalafo"
	EmptyHref        = "#"
	QueryPlaceholder = "—"
)

// Formatter renders prices for one locale and currency.
type Formatter struct {
	printer  *message.Printer
	currency string
}

var defaultFormatter = New(DefaultLocale, DefaultCurrency)

// New builds a Formatter. Unknown locales fall back to Russian grouping and an
// empty currency falls back to DefaultCurrency.
func New(locale, currency string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.Russian
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Formatter{
		printer:  message.NewPrinter(tag),
		currency: currency,
	}
}

// Default returns the formatter used by the package-level helpers.
func Default() *Formatter { return defaultFormatter }

// Price formats p with thousands grouping and the currency suffix, or returns
// NegotiablePrice when p is absent or not a finite number.
func (f *Formatter) Price(p ads.Price) string {
	if !p.Valid {
		return NegotiablePrice
	}
	grouped := f.printer.Sprintf("%v", number.Decimal(p.Value, number.MaxFractionDigits(3)))
	return grouped + " " + f.currency
}

// FormatPrice formats with the default ru/сом formatter.
func FormatPrice(p ads.Price) string {
	return defaultFormatter.Price(p)
}

// Chip is the only card-level hint of which mode produced the item.
func Chip(it ads.Item) string {
	if it.Score.Valid {
		return "score " + strconv.FormatFloat(it.Score.Value, 'f', 3, 64)
	}
	return LocalSearchChip
}

func Title(it ads.Item) string {
	return fallback(it.Title, UntitledLabel)
}

func City(it ads.Item) string {
	return fallback(it.City, NoCityLabel)
}

func Description(it ads.Item) string {
	return fallback(it.Description, NoDescription)
}

// Href is the outbound link target; "#" means the item has no link.
func Href(it ads.Item) string {
	return fallback(it.URL, EmptyHref)
}

func Meta(it ads.Item) string {
	return "id " + fallback(string(it.ID), QueryPlaceholder)
}

func QueryEcho(query string) string {
	return fallback(query, QueryPlaceholder)
}

func MetaCount(n int) string {
	return fmt.Sprintf("Results: %d", n)
}

func Badge(n int) string {
	return fmt.Sprintf("%d pcs", n)
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
