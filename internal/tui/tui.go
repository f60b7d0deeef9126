package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive schedule editor and blocks until it exits.
func Run(deps Deps) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	m := newAppModel(deps)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
