package tui

import (
	"fmt"
	"io"
	"sync"

	"hoax-detector/client/internal/present"
	"hoax-detector/client/internal/ui"
)

// Console is a ui.Display that prints status lines and results as they arrive.
type Console struct {
	mu         sync.Mutex
	out        io.Writer
	styles     Styles
	quiet      bool
	lastResult *present.RenderState
	lastStatus string
	lastLevel  ui.StatusLevel
}

// NewConsole writes to out. A quiet console only records state.
func NewConsole(out io.Writer, quiet bool) *Console {
	return &Console{out: out, styles: StylesFor(ui.DefaultTheme), quiet: quiet}
}

func (c *Console) SetStatus(message string, level ui.StatusLevel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastStatus, c.lastLevel = message, level
	if c.quiet {
		return
	}
	fmt.Fprintln(c.out, c.styles.Status(message, level))
}

func (c *Console) ClearStatus() {}

func (c *Console) ShowResult(state present.RenderState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := state
	c.lastResult = &s
	if c.quiet {
		return
	}
	fmt.Fprintln(c.out, RenderResult(state, c.styles))
}

func (c *Console) HideResult() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastResult = nil
}

func (c *Console) SetBusy(bool) {}

func (c *Console) SetSubmitEnabled(bool) {}

func (c *Console) SetTheme(theme ui.Theme) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.styles = StylesFor(theme)
}

// Result returns the last rendered prediction, if any.
func (c *Console) Result() (present.RenderState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastResult == nil {
		return present.RenderState{}, false
	}
	return *c.lastResult, true
}

// LastStatus returns the most recent status line.
func (c *Console) LastStatus() (string, ui.StatusLevel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastStatus, c.lastLevel
}
