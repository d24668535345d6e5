// Package status owns the single status line shown above the results.
package status

import (
	"github.com/charmbracelet/lipgloss"
)

// Kind is the visual treatment of the status line.
type Kind int

const (
	KindIdle Kind = iota
	KindLoading
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindError:
		return "error"
	default:
		return "idle"
	}
}

const (
	baseClass    = "status"
	loadingClass = "status-loading"
	errorClass   = "status-error"

	// Glyph is the indicator drawn in front of every non-empty message.
	Glyph = "●"
)

// State is what the status line currently shows. The zero value is the
// neutral, empty line.
type State struct {
	Kind    Kind
	Message string
}

func (s State) Empty() bool { return s.Message == "" }

// Styles maps each Kind to a lipgloss style.
type Styles struct {
	Idle    lipgloss.Style
	Loading lipgloss.Style
	Error   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Idle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		Loading: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
	}
}

// Reporter holds exactly one State. Every Set replaces the previous one
// completely, so repeating a call never stacks output.
type Reporter struct {
	state  State
	styles Styles
}

func NewReporter(styles Styles) *Reporter {
	return &Reporter{styles: styles}
}

// Set shows message with the treatment for kind. An empty message resets the
// line to its neutral state regardless of kind.
func (r *Reporter) Set(message string, kind Kind) {
	if message == "" {
		r.state = State{}
		return
	}
	r.state = State{Kind: kind, Message: message}
}

func (r *Reporter) State() State { return r.state }

// Class names the visual class of the current state, following the
// CSS-style "status status-loading" class convention.
func (r *Reporter) Class() string {
	if r.state.Empty() {
		return baseClass
	}
	switch r.state.Kind {
	case KindLoading:
		return baseClass + " " + loadingClass
	case KindError:
		return baseClass + " " + errorClass
	default:
		return baseClass
	}
}

// Plain renders glyph and text without styling.
func (r *Reporter) Plain() string {
	if r.state.Empty() {
		return ""
	}
	return Glyph + " " + r.state.Message
}

// View renders the two-part line (indicator and text) with the kind's style.
func (r *Reporter) View() string {
	if r.state.Empty() {
		return ""
	}
	style := r.styles.Idle
	switch r.state.Kind {
	case KindLoading:
		style = r.styles.Loading
	case KindError:
		style = r.styles.Error
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		style.Render(Glyph),
		" ",
		style.Render(r.state.Message),
	)
}
