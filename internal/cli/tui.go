package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mlorenz/picset/pkg/srcset"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// InspectModel - Interactive classification browser
// =============================================================================

// InspectModel is the bubbletea model for browsing classified links one
// media type at a time.
type InspectModel struct {
	ByType *srcset.LinksByType
	Types  []string
	Class  string
	Cursor int
}

// NewInspectModel creates a browser over the classified link grid.
func NewInspectModel(byType *srcset.LinksByType, class string) InspectModel {
	return InspectModel{
		ByType: byType,
		Types:  byType.Types(),
		Class:  class,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "right", "l", "down", "j", "tab":
			if m.Cursor < len(m.Types)-1 {
				m.Cursor++
			}
		}
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Classified Links"))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render("class=" + m.Class))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ switch media type  q quit"))
	b.WriteString("\n\n")

	for i, mediaType := range m.Types {
		style := listNormalStyle
		prefix := "  "
		if i == m.Cursor {
			style = listSelectedStyle
			prefix = "▸ "
		}
		b.WriteString(prefix + style.Render(mediaType))
		b.WriteString("  ")
	}
	b.WriteString("\n\n")

	b.WriteString(m.sizeTable())
	b.WriteString("\n")
	return b.String()
}

// sizeTable renders the selected media type's size slots against the
// class's breakpoint widths. Missing slots show a dash so gaps in the
// variant set are visible at a glance.
func (m InspectModel) sizeTable() string {
	sizes, _ := m.ByType.Get(m.Types[m.Cursor])
	widths := srcset.Table(m.Class)

	var rows [][]string
	for _, key := range srcset.CanonicalKeys() {
		url, ok := sizes[key]
		if !ok {
			url = "—"
		}
		rows = append(rows, []string{
			string(key),
			strconv.Itoa(widths[key]) + "w",
			url,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Size", "Width", "URL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return StyleLink
			}
			return StyleValue
		}).
		String()
}

// runInspectTUI runs the interactive browser until the user quits.
func runInspectTUI(byType *srcset.LinksByType, class string) error {
	model := NewInspectModel(byType, class)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("interactive inspect: %w", err)
	}
	return nil
}
