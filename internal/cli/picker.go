package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/distviz/distviz/pkg/errors"
	"github.com/distviz/distviz/pkg/pipeline"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// multiSelectModel is the bubbletea model for picking a subset of options.
type multiSelectModel struct {
	Title   string
	Options []string
	Cursor  int
	Checked map[int]bool
	Done    bool
	Aborted bool
}

// newMultiSelect creates a picker with the given options, pre-checking any
// option already present in preselected.
func newMultiSelect(title string, options, preselected []string) multiSelectModel {
	checked := make(map[int]bool)
	for i, opt := range options {
		for _, pre := range preselected {
			if strings.EqualFold(opt, pre) {
				checked[i] = true
			}
		}
	}
	return multiSelectModel{
		Title:   title,
		Options: options,
		Checked: checked,
	}
}

func (m multiSelectModel) Init() tea.Cmd {
	return nil
}

func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		m.Aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case " ":
		m.Checked[m.Cursor] = !m.Checked[m.Cursor]
	case "enter":
		if len(m.selected()) > 0 {
			m.Done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m multiSelectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if m.Checked[i] {
			check = "[x]"
		}
		style := listNormalStyle
		if i == m.Cursor {
			style = listSelectedStyle
		}
		b.WriteString(cursor + check + " " + style.Render(opt) + "\n")
	}
	return b.String()
}

func (m multiSelectModel) selected() []string {
	var out []string
	for i, opt := range m.Options {
		if m.Checked[i] {
			out = append(out, opt)
		}
	}
	return out
}

// pickSelections runs the interactive diagram and axis pickers, seeding
// them with any values given on the command line.
func pickSelections(diagrams, axes []string) ([]string, []string, error) {
	diagrams, err := runPicker("Select Diagram Types", pipeline.DefaultDiagrams, diagrams)
	if err != nil {
		return nil, nil, err
	}
	axes, err = runPicker("Select Axes", pipeline.DefaultAxes, axes)
	if err != nil {
		return nil, nil, err
	}
	return diagrams, axes, nil
}

func runPicker(title string, options, preselected []string) ([]string, error) {
	if len(preselected) == 0 {
		preselected = options
	}

	program := tea.NewProgram(newMultiSelect(title, options, preselected))
	final, err := program.Run()
	if err != nil {
		return nil, err
	}

	model, ok := final.(multiSelectModel)
	if !ok || model.Aborted || !model.Done {
		return nil, errors.New(errors.ErrCodeInvalidInput, "selection aborted")
	}
	return model.selected(), nil
}
