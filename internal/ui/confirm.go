package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmOption configures a confirmation prompt.
type ConfirmOption func(*confirmOptions)

type confirmOptions struct {
	output     io.Writer
	defaultYes bool
}

// WithConfirmDefault sets the preselected answer.
func WithConfirmDefault(defaultYes bool) ConfirmOption {
	return func(o *confirmOptions) {
		o.defaultYes = defaultYes
	}
}

// WithConfirmOutput sets the writer the prompt renders to.
func WithConfirmOutput(w io.Writer) ConfirmOption {
	return func(o *confirmOptions) {
		o.output = w
	}
}

type confirmModel struct {
	message     string
	yesSelected bool
	confirmed   bool
	cancelled   bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "left", "h", "tab":
		m.yesSelected = !m.yesSelected
		return m, nil
	case "right", "l":
		m.yesSelected = !m.yesSelected
		return m, nil
	case "y":
		m.yesSelected = true
		m.confirmed = true
		return m, tea.Quit
	case "n":
		m.yesSelected = false
		m.confirmed = true
		return m, tea.Quit
	case "enter":
		m.confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.confirmed || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleBold.Render(m.message))
	b.WriteString("\n\n  ")

	selected := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	unselected := lipgloss.NewStyle().Foreground(ColorMuted)

	if m.yesSelected {
		b.WriteString(selected.Render(IconBullet + " Yes"))
		b.WriteString("   ")
		b.WriteString(unselected.Render("  No"))
	} else {
		b.WriteString(unselected.Render("  Yes"))
		b.WriteString("   ")
		b.WriteString(selected.Render(IconBullet + " No"))
	}
	b.WriteString("\n")

	return b.String()
}

// Confirm shows a yes/no prompt. In non-TTY mode it does not block and
// returns the safe default (no) with a warning.
func Confirm(message string, opts ...ConfirmOption) (bool, error) {
	options := &confirmOptions{output: defaultOutput}
	for _, opt := range opts {
		opt(options)
	}

	if !IsTTY() {
		_, _ = fmt.Fprintf(options.output, "%s %s (defaulting to No in non-TTY mode)\n", IconWarning, message)
		return false, nil
	}

	model := confirmModel{
		message:     message,
		yesSelected: options.defaultYes,
	}

	p := tea.NewProgram(model, tea.WithOutput(options.output))
	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	final := finalModel.(confirmModel)
	if final.cancelled {
		return false, ErrCancelled
	}
	return final.yesSelected, nil
}
