package tui

import (
	"strings"
	"sync"

	"hoax-detector/client/internal/present"
	"hoax-detector/client/internal/ui"
)

// Snapshot is a copy of everything the interactive view shows.
type Snapshot struct {
	Status        string
	Level         ui.StatusLevel
	StatusVisible bool
	Result        *present.RenderState
	Busy          bool
	SubmitEnabled bool
	Theme         ui.Theme
}

// Panel is a goroutine-safe ui.Display that records state for the view.
type Panel struct {
	mu    sync.Mutex
	state Snapshot
}

// NewPanel returns a panel with submission enabled and the default theme.
func NewPanel() *Panel {
	return &Panel{state: Snapshot{SubmitEnabled: true, Theme: ui.DefaultTheme}}
}

func (p *Panel) SetStatus(message string, level ui.StatusLevel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Status = message
	p.state.Level = level
	p.state.StatusVisible = true
}

func (p *Panel) ClearStatus() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Status = ""
	p.state.Level = ui.StatusInfo
	p.state.StatusVisible = false
}

func (p *Panel) ShowResult(state present.RenderState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := state
	p.state.Result = &s
}

func (p *Panel) HideResult() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Result = nil
}

func (p *Panel) SetBusy(busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Busy = busy
}

func (p *Panel) SetSubmitEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.SubmitEnabled = enabled
}

func (p *Panel) SetTheme(theme ui.Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Theme = theme
}

// Snapshot returns a copy of the current state.
func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.state
	if s.Result != nil {
		r := *s.Result
		s.Result = &r
	}
	return s
}

// RenderResult draws a result card.
func RenderResult(state present.RenderState, styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Badge(state.Badge))
	b.WriteString("\n")
	b.WriteString(styles.Label.Render(state.Decision))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(state.ScoreSummary))
	if state.RiskExplanation != "" {
		b.WriteString("\n\n")
		b.WriteString(state.RiskExplanation)
	}
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("Teks berita:"))
	b.WriteString("\n")
	b.WriteString(state.OriginalText)
	return styles.Card.Render(b.String())
}
