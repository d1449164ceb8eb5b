// Package share provides the system clipboard and native share capabilities
// used by the terminal client.
package share

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteText copies text to the clipboard.
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard utility not available")
	}
	return clipboardWriteAll(text)
}

// CommandSharer pipes the share text to an external command such as
// termux-share or a desktop share helper. The title is exported to the
// command as HOAX_SHARE_TITLE.
type CommandSharer struct {
	name string
	args []string
}

// NewCommandSharer parses a whitespace separated command line. An empty line
// yields a sharer that reports itself unavailable.
func NewCommandSharer(commandLine string) *CommandSharer {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return &CommandSharer{}
	}
	return &CommandSharer{name: fields[0], args: fields[1:]}
}

// Available reports whether the command is configured and found on PATH.
func (s *CommandSharer) Available() bool {
	if s == nil || s.name == "" {
		return false
	}
	if _, err := exec.LookPath(s.name); err != nil {
		logrus.WithError(err).WithField("command", s.name).Debug("share command not found")
		return false
	}
	return true
}

// Share runs the command with text on stdin.
func (s *CommandSharer) Share(ctx context.Context, title, text string) error {
	if s == nil || s.name == "" {
		return errors.New("share command not configured")
	}
	cmd := exec.CommandContext(ctx, s.name, s.args...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Env = append(cmd.Environ(), "HOAX_SHARE_TITLE="+title)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("run %s: %w (%s)", s.name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
