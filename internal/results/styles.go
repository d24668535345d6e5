package results

import "github.com/charmbracelet/lipgloss"

// Styles groups every style the card grid uses.
type Styles struct {
	Card         lipgloss.Style
	SelectedCard lipgloss.Style
	Chip         lipgloss.Style
	ScoreChip    lipgloss.Style
	Title        lipgloss.Style
	Price        lipgloss.Style
	City         lipgloss.Style
	Description  lipgloss.Style
	Link         lipgloss.Style
	Meta         lipgloss.Style
	Header       lipgloss.Style
	Badge        lipgloss.Style
	Empty        lipgloss.Style
}

// Palette is the small set of colors Styles is derived from.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Highlight lipgloss.Color
}

func DefaultPalette() Palette {
	return Palette{
		Primary:   lipgloss.Color("#FF6B6B"),
		Secondary: lipgloss.Color("#4ECDC4"),
		Accent:    lipgloss.Color("#95E1D3"),
		Text:      lipgloss.Color("#EAEAEA"),
		Muted:     lipgloss.Color("#94A3B8"),
		Highlight: lipgloss.Color("#FFE66D"),
	}
}

func NewStyles(p Palette) Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Muted).
		Padding(0, 1)

	return Styles{
		Card:         card,
		SelectedCard: card.BorderForeground(p.Accent),
		Chip:         lipgloss.NewStyle().Foreground(p.Muted),
		ScoreChip:    lipgloss.NewStyle().Foreground(p.Secondary).Bold(true),
		Title:        lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Price:        lipgloss.NewStyle().Foreground(p.Highlight).Bold(true),
		City:         lipgloss.NewStyle().Foreground(p.Muted),
		Description:  lipgloss.NewStyle().Foreground(p.Text),
		Link:         lipgloss.NewStyle().Foreground(p.Secondary).Underline(true),
		Meta:         lipgloss.NewStyle().Foreground(p.Muted).Faint(true),
		Header:       lipgloss.NewStyle().Foreground(p.Secondary).Bold(true),
		Badge:        lipgloss.NewStyle().Foreground(p.Primary),
		Empty:        lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
	}
}
