package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hoax-detector/client/internal/ui"
)

const helpLine = "ctrl+s periksa • ctrl+y salin • ctrl+o bagikan • ctrl+t tema • esc keluar"

// Actions is the subset of the orchestrator the interactive view drives.
type Actions interface {
	Startup(ctx context.Context) error
	Submit(ctx context.Context, text string) error
	Copy(ctx context.Context) error
	Share(ctx context.Context) error
	ToggleTheme(ctx context.Context) (ui.Theme, error)
}

// actionDoneMsg reports that an orchestrator action finished.
type actionDoneMsg struct {
	err error
}

// Model is the bubbletea model for the interactive checker.
type Model struct {
	ctx     context.Context
	actions Actions
	panel   *Panel
	input   textarea.Model
	spinner spinner.Model
	styles  Styles
	width   int
}

// NewModel wires the view to the orchestrator actions and the panel the
// orchestrator writes to.
func NewModel(ctx context.Context, actions Actions, panel *Panel) Model {
	input := textarea.New()
	input.Placeholder = "Tempel teks berita di sini..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(6)
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		actions: actions,
		panel:   panel,
		input:   input,
		spinner: spin,
		styles:  StylesFor(panel.Snapshot().Theme),
	}
}

// Init starts the cursor blink, the spinner and the startup sequence.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, m.run(m.actions.Startup))
}

func (m Model) run(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: fn(m.ctx)}
	}
}

// Update handles key presses and action completions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 4 {
			m.input.SetWidth(msg.Width - 4)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			snap := m.panel.Snapshot()
			if snap.Busy || !snap.SubmitEnabled {
				return m, nil
			}
			text := m.input.Value()
			return m, m.run(func(ctx context.Context) error {
				return m.actions.Submit(ctx, text)
			})
		case "ctrl+y":
			return m, m.run(m.actions.Copy)
		case "ctrl+o":
			return m, m.run(m.actions.Share)
		case "ctrl+t":
			return m, m.run(func(ctx context.Context) error {
				_, err := m.actions.ToggleTheme(ctx)
				return err
			})
		}

	case actionDoneMsg:
		m.styles = StylesFor(m.panel.Snapshot().Theme)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the whole screen.
func (m Model) View() string {
	snap := m.panel.Snapshot()
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Deteksi Hoaks"))
	b.WriteString(m.styles.Muted.Render("  tema: " + string(snap.Theme)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case snap.Busy:
		b.WriteString(m.spinner.View() + " Memproses...")
	case !snap.SubmitEnabled:
		b.WriteString(m.styles.Muted.Render("Pemeriksaan dinonaktifkan"))
	default:
		b.WriteString(m.styles.Muted.Render("Periksa sekarang: ctrl+s"))
	}
	b.WriteString("\n")

	if snap.StatusVisible {
		b.WriteString("\n")
		b.WriteString(m.styles.Status(snap.Status, snap.Level))
		b.WriteString("\n")
	}
	if snap.Result != nil {
		b.WriteString("\n")
		card := RenderResult(*snap.Result, m.styles)
		if m.width > 0 {
			card = lipgloss.NewStyle().MaxWidth(m.width).Render(card)
		}
		b.WriteString(card)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(helpLine))
	return b.String()
}
