package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/optio/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

var detailBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDim).
	Padding(0, 1)

// previewWidth bounds the per-row preview of a stage's text.
const previewWidth = 40

// =============================================================================
// StageListModel - Interactive trace browser
// =============================================================================

// StageListModel is the bubbletea model for browsing a traced run. Row 0 is
// the input text; row i is the text after stage i.
type StageListModel struct {
	Input  string
	Stages []pipeline.Stage
	Cursor int
	Height int
	Offset int
}

// NewStageListModel creates a stage browser for input and its trace.
func NewStageListModel(input string, stages []pipeline.Stage) StageListModel {
	return StageListModel{
		Input:  input,
		Stages: stages,
		Height: 13,
	}
}

func (m StageListModel) Init() tea.Cmd {
	return nil
}

func (m StageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.rows()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = m.rows() - 1
			m.Offset = max(0, m.Cursor-m.Height+1)
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-12)
	}
	return m, nil
}

func (m StageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Trace"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, m.rows())
	for i := m.Offset; i < end; i++ {
		name, text := m.row(i)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%2d  %-13s %s", cursor, i, name, listDimStyle.Render(preview(text)))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	_, text := m.row(m.Cursor)
	b.WriteString("\n")
	b.WriteString(detailBoxStyle.Render(strconv.Quote(text)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor, m.rows()-1)))

	return b.String()
}

func (m StageListModel) rows() int {
	return len(m.Stages) + 1
}

// row returns the label and text of row i.
func (m StageListModel) row(i int) (string, string) {
	if i == 0 {
		return "input", m.Input
	}
	s := m.Stages[i-1]
	return s.Kind.String(), s.Output
}

// preview quotes text and shortens it to previewWidth code points.
func preview(text string) string {
	q := strconv.Quote(text)
	r := []rune(q)
	if len(r) <= previewWidth {
		return q
	}
	return string(r[:previewWidth-1]) + "…"
}
