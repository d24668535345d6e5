// Package results projects a result set onto a grid of cards.
package results

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/adfind/internal/ads"
	"github.com/pders01/adfind/internal/format"
)

const (
	DefaultCardWidth = 38
	MinCardWidth     = 24
	EmptyPlaceholder = "Nothing found"

	descriptionLines = 3
	columnGap        = 1
	headerLines      = 2
)

// Card is the display form of one item. Key is the item id.
type Card struct {
	Key         string
	Chip        string
	Scored      bool
	Title       string
	Price       string
	City        string
	Description string
	Href        string
	LinkLabel   string
	Meta        string
}

// View owns the rendered projection only; the items it was built from are
// not retained.
type View struct {
	formatter *format.Formatter
	styles    Styles
	cardWidth int
	width     int
	height    int

	sectionVisible bool
	emptyVisible   bool
	query          string
	metaCount      string
	badge          string
	cards          []Card
	cursor         int
	offset         int
}

func New(f *format.Formatter, styles Styles, cardWidth int) *View {
	if f == nil {
		f = format.Default()
	}
	if cardWidth < MinCardWidth {
		cardWidth = DefaultCardWidth
	}
	return &View{
		formatter: f,
		styles:    styles,
		cardWidth: cardWidth,
		width:     cardWidth,
	}
}

// Render replaces whatever was shown before with items, in input order.
func (v *View) Render(query string, items []ads.Item) {
	v.query = format.QueryEcho(query)
	v.metaCount = format.MetaCount(len(items))
	v.badge = format.Badge(len(items))
	v.sectionVisible = true
	v.cards = nil
	v.cursor = 0
	v.offset = 0

	if len(items) == 0 {
		v.emptyVisible = true
		return
	}

	v.emptyVisible = false
	v.cards = make([]Card, 0, len(items))
	for _, it := range items {
		v.cards = append(v.cards, v.card(it))
	}
}

func (v *View) card(it ads.Item) Card {
	return Card{
		Key:         string(it.ID),
		Chip:        format.Chip(it),
		Scored:      it.Score.Valid,
		Title:       format.Title(it),
		Price:       v.formatter.Price(it.Price),
		City:        format.City(it),
		Description: format.Description(it),
		Href:        format.Href(it),
		LinkLabel:   format.LinkLabel,
		Meta:        format.Meta(it),
	}
}

func (v *View) QueryEcho() string    { return v.query }
func (v *View) MetaCount() string    { return v.metaCount }
func (v *View) Badge() string        { return v.badge }
func (v *View) EmptyVisible() bool   { return v.emptyVisible }
func (v *View) SectionVisible() bool { return v.sectionVisible }
func (v *View) Len() int             { return len(v.cards) }

// Cards returns a copy of the rendered cards.
func (v *View) Cards() []Card {
	out := make([]Card, len(v.cards))
	copy(out, v.cards)
	return out
}

// Selected returns the card under the cursor.
func (v *View) Selected() (Card, bool) {
	if len(v.cards) == 0 {
		return Card{}, false
	}
	return v.cards[v.cursor], true
}

func (v *View) Cursor() int { return v.cursor }

func (v *View) Next() { v.move(1) }
func (v *View) Prev() { v.move(-1) }

// Down and Up move by one grid row.
func (v *View) Down() { v.move(v.Columns()) }
func (v *View) Up()   { v.move(-v.Columns()) }

func (v *View) move(delta int) {
	if len(v.cards) == 0 {
		return
	}
	c := v.cursor + delta
	if c < 0 {
		c = 0
	}
	if c >= len(v.cards) {
		c = len(v.cards) - 1
	}
	v.cursor = c
	v.ensureVisible()
}

func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.ensureVisible()
}

// Columns is how many cards fit side by side in the current width.
func (v *View) Columns() int {
	cols := (v.width + columnGap) / (v.cardWidth + columnGap)
	if cols < 1 {
		return 1
	}
	return cols
}

func (v *View) visibleRows() int {
	if v.height <= 0 {
		return len(v.cards)
	}
	rows := (v.height - headerLines) / v.cardHeight()
	if rows < 1 {
		return 1
	}
	return rows
}

func (v *View) cardHeight() int {
	// border + chip + title + price row + description + footer
	return 2 + 1 + 1 + 1 + descriptionLines + 1
}

func (v *View) ensureVisible() {
	if len(v.cards) == 0 {
		v.offset = 0
		return
	}
	row := v.cursor / v.Columns()
	rows := v.visibleRows()
	if row < v.offset {
		v.offset = row
	}
	if row >= v.offset+rows {
		v.offset = row - rows + 1
	}
}

// View draws the section header and either the grid or the empty
// placeholder. Before the first Render the section is hidden.
func (v *View) View() string {
	if !v.sectionVisible {
		return ""
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		v.styles.Header.Render("› "+TruncateEnd(v.query, v.width-12)),
		"  ",
		v.styles.Badge.Render(v.badge),
	)

	if v.emptyVisible {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", v.styles.Empty.Render(EmptyPlaceholder))
	}

	cols := v.Columns()
	rows := v.visibleRows()
	var grid []string
	for r := v.offset; r < v.offset+rows; r++ {
		start := r * cols
		if start >= len(v.cards) {
			break
		}
		end := start + cols
		if end > len(v.cards) {
			end = len(v.cards)
		}
		var row []string
		for i := start; i < end; i++ {
			if i > start {
				row = append(row, strings.Repeat(" ", columnGap))
			}
			row = append(row, v.renderCard(v.cards[i], i == v.cursor))
		}
		grid = append(grid, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header, ""}, grid...)...)
}

func (v *View) renderCard(c Card, selected bool) string {
	// border (2) + padding (2)
	inner := v.cardWidth - 4

	chipStyle := v.styles.Chip
	if c.Scored {
		chipStyle = v.styles.ScoreChip
	}
	chip := chipStyle.Render("◆ " + c.Chip)

	title := v.styles.Title.Render(TruncateEnd(c.Title, inner))

	price := TruncateEnd(c.Price, inner)
	city := TruncateEnd(c.City, inner-len([]rune(price))-3)
	row := v.styles.Price.Render(price)
	if city != "" {
		row += v.styles.City.Render(" · " + city)
	}

	desc := v.styles.Description.
		Width(inner).
		Height(descriptionLines).
		MaxHeight(descriptionLines).
		Render(c.Description)

	meta := v.styles.Meta.Render(c.Meta)
	link := v.styles.Link.Render(TruncateMiddle(c.LinkLabel, inner-lipgloss.Width(meta)-1))
	gap := inner - lipgloss.Width(link) - lipgloss.Width(meta)
	if gap < 1 {
		gap = 1
	}
	footer := link + strings.Repeat(" ", gap) + meta

	style := v.styles.Card
	if selected {
		style = v.styles.SelectedCard
	}
	return style.Width(v.cardWidth - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, chip, title, row, desc, footer),
	)
}
