// Package browser opens ad links in the system browser.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pders01/adfind/internal/config"
	"github.com/pders01/adfind/internal/debuglog"
	"github.com/pders01/adfind/internal/validation"
)

// ErrNoLink is returned for items without a usable link.
var ErrNoLink = validation.ErrNoLink

var ErrNoOpener = errors.New("no browser opener found")

type Opener struct {
	registry  *Registry
	command   []string
	goos      string
	validator *validation.URLValidator
	lookPath  func(string) (string, error)
	start     func(*exec.Cmd) error
}

func New(cfg *config.Config) *Opener {
	registry, err := NewRegistry()
	if err != nil {
		debuglog.Warnf("browser: %v", err)
		registry = &Registry{openers: map[string]OpenerDefinition{}}
	}

	return &Opener{
		registry:  registry,
		command:   strings.Fields(cfg.Browser.Command),
		goos:      runtime.GOOS,
		validator: validation.NewLinkValidator(),
		lookPath:  exec.LookPath,
		start:     startDetached,
	}
}

// Open validates href and hands it to the browser. The browser runs detached
// with no access to the terminal.
func (o *Opener) Open(href string) error {
	link, err := o.validator.ValidateLink(href)
	if err != nil {
		if errors.Is(err, ErrNoLink) {
			return ErrNoLink
		}
		return fmt.Errorf("refusing to open link: %w", err)
	}

	cmd, err := o.commandFor(link)
	if err != nil {
		return err
	}

	debuglog.Debugf("browser: %s", strings.Join(cmd.Args, " "))
	if err := o.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Args[0], err)
	}
	return nil
}

func (o *Opener) commandFor(link string) (*exec.Cmd, error) {
	if len(o.command) > 0 {
		args := append(append([]string(nil), o.command[1:]...), link)
		return exec.Command(o.command[0], args...), nil
	}

	for _, name := range o.registry.Candidates(o.goos) {
		if _, err := o.lookPath(name); err == nil {
			return o.registry.Command(name, link), nil
		}
	}
	return nil, ErrNoOpener
}

func startDetached(cmd *exec.Cmd) error {
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
