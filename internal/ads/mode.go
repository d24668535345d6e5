package ads

import (
	"fmt"
	"strings"
)

// Mode selects which query endpoint answers a search.
type Mode string

const (
	ModeLocal    Mode = "local"
	ModeSemantic Mode = "semantic"
)

const (
	localEndpoint    = "/ads/local_search"
	semanticEndpoint = "/ads/semantic_search"
)

// ModeFromToggle maps the on/off state of the semantic toggle to a Mode.
func ModeFromToggle(semantic bool) Mode {
	if semantic {
		return ModeSemantic
	}
	return ModeLocal
}

// ParseMode accepts "local" or "semantic" (case-insensitive). Empty input
// yields the default local mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeLocal):
		return ModeLocal, nil
	case string(ModeSemantic):
		return ModeSemantic, nil
	default:
		return ModeLocal, fmt.Errorf("unknown search mode %q", s)
	}
}

func (m Mode) Semantic() bool { return m == ModeSemantic }

func (m Mode) Toggle() Mode {
	return ModeFromToggle(!m.Semantic())
}

// Label is the mode description shown next to the result count.
func (m Mode) Label() string {
	if m.Semantic() {
		return "Mode: semantic search"
	}
	return "Mode: local search by title"
}

// Endpoint returns the backend path for this mode. Anything that is not
// semantic is served by the local endpoint.
func (m Mode) Endpoint() string {
	if m.Semantic() {
		return semanticEndpoint
	}
	return localEndpoint
}

func (m Mode) String() string {
	if m.Semantic() {
		return string(ModeSemantic)
	}
	return string(ModeLocal)
}
