// Package ui provides the interactive diagnostic browser behind
// `pseudogo diag browse`. It is adapted from the teacher's Bubble Tea
// pipeline-progress model: since a synchronous single-pass compiler has no
// long-running stages to report progress against, the spinner/progress-bar
// composition becomes a static, keyboard-navigable list with a source
// preview pane instead.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pseudogo/internal/diag"
	"pseudogo/internal/source"
)

// BrowseModel lists a diag.Bag's diagnostics and shows a source-context
// preview for the highlighted one.
type BrowseModel struct {
	items  []diag.Diagnostic
	fs     *source.FileSet
	cursor int
	width  int
	height int
	quit   bool
}

// NewBrowseModel returns a Bubble Tea model over bag's diagnostics (call
// bag.Sort() first for a stable order).
func NewBrowseModel(bag *diag.Bag, fs *source.FileSet) *BrowseModel {
	return &BrowseModel{items: bag.Items(), fs: fs, width: 80, height: 24}
}

func (m *BrowseModel) Init() tea.Cmd { return nil }

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "q", "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *BrowseModel) View() string {
	if len(m.items) == 0 {
		return "no diagnostics\n"
	}

	nameWidth := m.width - 14
	if nameWidth < 20 {
		nameWidth = 20
	}

	var b strings.Builder
	for i, d := range m.items {
		gutter := severityGutter(d.Severity)
		line := fmt.Sprintf("%s %-7s %s", gutter, d.Code.ID(), truncate(d.Message, nameWidth))
		if i == m.cursor {
			line = lipgloss.NewStyle().Reverse(true).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(previewFor(m.items[m.cursor], m.fs))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("↑/↓ select · q quit"))
	b.WriteString("\n")
	return b.String()
}

func previewFor(d diag.Diagnostic, fs *source.FileSet) string {
	f := fs.Get(d.Span.File)
	loc := fmt.Sprintf("%s:%d:%d: %s", f.Path, d.Span.StartLine, d.Span.StartCol, d.Message)
	line := f.Line(d.Span.StartLine)
	if line == "" {
		return loc
	}
	col := int(d.Span.StartCol)
	if col < 1 {
		col = 1
	}
	width := int(d.Span.EndCol) - int(d.Span.StartCol)
	if d.Span.EndLine != d.Span.StartLine || width < 1 {
		width = 1
	}
	caret := strings.Repeat(" ", col-1) + strings.Repeat("^", width)
	return loc + "\n  " + line + "\n  " + caret
}

func severityGutter(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("●")
	case diag.SevWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render("●")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render("●")
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
