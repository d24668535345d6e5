package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/adfind/internal/config"
	"github.com/pders01/adfind/internal/results"
	"github.com/pders01/adfind/internal/status"
)

const AppName = "adfind"

// LogoLines is the canonical ASCII logo.
var LogoLines = []string{
	"   ▄▄▄   ▄▄▄▄  ▄▄▄▄▄ ▄ ▄▄   ▄ ▄▄▄▄ ",
	"  █   █  █   █ █     █ █ █  █ █   █",
	"  █▀▀▀█  █   █ █▀▀▀  █ █  █ █ █   █",
	"  █   █  ████  █     █ █   ██ ████ ",
}

const CompactLogo = `adfind ›`

var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#FFA86B"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#4ECDC4"),
}

var (
	PrimaryColor   = lipgloss.Color("#FF6B6B")
	SecondaryColor = lipgloss.Color("#4ECDC4")
	AccentColor    = lipgloss.Color("#95E1D3")

	TextColor      = lipgloss.Color("#EAEAEA")
	MutedColor     = lipgloss.Color("#94A3B8")
	HighlightColor = lipgloss.Color("#FFE66D")
	ErrorColor     = lipgloss.Color("#EF4444")
	SuccessColor   = lipgloss.Color("#10B981")
)

var (
	LogoStyle   lipgloss.Style
	HeaderStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	ModeStyle   lipgloss.Style
	NoticeStyle lipgloss.Style

	ErrorMessageStyle lipgloss.Style
	SeparatorStyle    lipgloss.Style
)

func init() {
	buildStyles()
}

func buildStyles() {
	LogoStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	ModeStyle = lipgloss.NewStyle().
		Foreground(AccentColor)

	NoticeStyle = lipgloss.NewStyle().
		Foreground(SuccessColor)

	ErrorMessageStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(MutedColor)
}

// ApplyColors replaces the brand colors with the configured ones. Empty
// entries keep their defaults.
func ApplyColors(c config.UIColors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, c.Primary)
	set(&SecondaryColor, c.Secondary)
	set(&AccentColor, c.Accent)
	set(&TextColor, c.Text)
	set(&MutedColor, c.Muted)
	set(&HighlightColor, c.Highlight)
	set(&ErrorColor, c.Error)
	set(&SuccessColor, c.Success)
	buildStyles()
}

// Palette derives the card grid colors from the brand colors.
func Palette() results.Palette {
	return results.Palette{
		Primary:   PrimaryColor,
		Secondary: SecondaryColor,
		Accent:    AccentColor,
		Text:      TextColor,
		Muted:     MutedColor,
		Highlight: HighlightColor,
	}
}

func StatusStyles() status.Styles {
	return status.Styles{
		Idle:    lipgloss.NewStyle().Foreground(SuccessColor),
		Loading: lipgloss.NewStyle().Foreground(HighlightColor),
		Error:   lipgloss.NewStyle().Foreground(ErrorColor).Bold(true),
	}
}

func GetWelcomeMessage() string {
	return GetCompactBanner("Type a query and press enter")
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

// Banner renders the logo with a version tagline inside a double border.
func Banner(version string) string {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("    Classifieds Search %s", versionTag))
	} else {
		lines = append(lines, "    Classifieds Search")
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(i < len(LogoLines))
		coloredLines = append(coloredLines, style.Render(line))
	}

	borderChars := lipgloss.Border{
		Top:         "═",
		Bottom:      "═",
		Left:        "║",
		Right:       "║",
		TopLeft:     "╔",
		TopRight:    "╗",
		BottomLeft:  "╚",
		BottomRight: "╝",
	}

	banner := lipgloss.NewStyle().
		Border(borderChars).
		BorderForeground(SecondaryColor).
		Padding(1, 3).
		MarginTop(1).
		Render(lipgloss.JoinVertical(lipgloss.Center, coloredLines...))

	separator := lipgloss.NewStyle().
		Foreground(AccentColor).
		Render("◆ ◇ ◆ ◇ ◆")

	center := lipgloss.NewStyle().Width(70).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Left,
		center.Render(banner),
		center.MarginBottom(1).Render(separator),
	)
}

func ShowBanner(version string) {
	fmt.Println(Banner(version))
}
