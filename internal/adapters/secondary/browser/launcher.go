package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

// ErrNoOpener is returned when no platform opener is installed
var ErrNoOpener = errors.New("no supported opener found on this system")

// opener is one way of handing a file or URL to the desktop
type opener struct {
	name    string
	command string
	args    func(target string) []string
}

// Launcher opens rendered decks in the user's default viewer
type Launcher struct {
	openers  []opener
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// NewLauncher creates a launcher for the current platform
func NewLauncher() *Launcher {
	return &Launcher{
		openers:  platformOpeners(runtime.GOOS),
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Open hands target to the first opener found in PATH without waiting for
// the viewer to exit
func (l *Launcher) Open(target string) error {
	for _, o := range l.openers {
		if _, err := l.lookPath(o.command); err != nil {
			continue
		}
		if err := l.start(o.command, o.args(target)...); err != nil {
			return fmt.Errorf("launching %s: %w", o.name, err)
		}
		return nil
	}
	return ErrNoOpener
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...) // #nosec G204 - command comes from the fixed opener table
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func platformOpeners(goos string) []opener {
	single := func(target string) []string { return []string{target} }

	switch goos {
	case "darwin":
		return []opener{{name: "open", command: "open", args: single}}
	case "windows":
		return []opener{{
			name:    "start",
			command: "cmd",
			args: func(target string) []string {
				return []string{"/c", "start", "", target}
			},
		}}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []opener{
			{name: "xdg-open", command: "xdg-open", args: single},
			{name: "gio", command: "gio", args: func(target string) []string { return []string{"open", target} }},
			{name: "Firefox", command: "firefox", args: single},
		}
	default:
		return nil
	}
}

var _ ports.FileOpener = (*Launcher)(nil)
