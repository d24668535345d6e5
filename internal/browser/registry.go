package browser

import (
	_ "embed"
	"fmt"
	"os/exec"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

//go:embed openers.toml
var openersTOML []byte

// OpenerDefinition describes how a URL is passed to an opener command.
type OpenerDefinition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	Args        []string `toml:"args,omitempty"`
}

type openersFile struct {
	Preference map[string][]string         `toml:"preference"`
	Openers    map[string]OpenerDefinition `toml:"openers"`
}

// Registry holds the built-in opener table.
type Registry struct {
	preference map[string][]string
	openers    map[string]OpenerDefinition
}

func NewRegistry() (*Registry, error) {
	return parseRegistry(openersTOML)
}

func parseRegistry(data []byte) (*Registry, error) {
	var file openersFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing openers.toml: %w", err)
	}
	if file.Openers == nil {
		file.Openers = map[string]OpenerDefinition{}
	}
	return &Registry{preference: file.Preference, openers: file.Openers}, nil
}

// Candidates lists openers for goos in order of preference, skipping any
// whose definition does not claim the platform.
func (r *Registry) Candidates(goos string) []string {
	var out []string
	for _, name := range r.preference[goos] {
		def, ok := r.openers[name]
		if ok && !slices.Contains(def.Platforms, goos) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Command builds the invocation of name for url. Unknown names get the URL
// as their only argument.
func (r *Registry) Command(name, url string) *exec.Cmd {
	def := r.openers[name]
	args := append(slices.Clone(def.Args), url)
	return exec.Command(name, args...)
}
