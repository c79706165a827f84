// Package ui provides the interactive prompts and styles of the CLI.
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel is a yes/no confirmation prompt
type ConfirmModel struct {
	prompt    string
	selected  bool
	confirmed bool
	cancelled bool
}

// NewConfirm creates a new confirmation prompt
func NewConfirm(prompt string, defaultYes bool) ConfirmModel {
	return ConfirmModel{
		prompt:   prompt,
		selected: defaultYes,
	}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			m.selected = true
			m.confirmed = true
			return m, tea.Quit
		case "n", "N":
			m.selected = false
			m.confirmed = true
			return m, tea.Quit
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "left", "right", "tab":
			m.selected = !m.selected
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m ConfirmModel) View() string {
	if m.confirmed || m.cancelled {
		return ""
	}

	yesStyle := UnselectedStyle
	noStyle := UnselectedStyle

	if m.selected {
		yesStyle = SelectedStyle
	} else {
		noStyle = SelectedStyle
	}

	return fmt.Sprintf(
		"%s %s\n\n  %s Yes    %s No\n\n%s",
		IconUpload,
		SubtitleStyle.Render(m.prompt),
		yesStyle.Render(">"),
		noStyle.Render(">"),
		HelpStyle.Render("←/→: toggle • enter: confirm • y/n: quick select • esc: cancel"),
	)
}

// Confirm runs the prompt and reports whether the user said yes.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	p := tea.NewProgram(NewConfirm(prompt, defaultYes))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ConfirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected prompt model")
	}
	return m.confirmed && m.selected, nil
}
