package tui

import (
	"strings"

	"shiftdeck/internal/roster"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *appModel) openGenerateModal() {
	m.modal = modalGenerate
	m.genFocus = genFocusStart
	m.genErr = ""
	m.genBusy = false
	m.genStart.SetValue("")
	m.genEnd.SetValue("")
	m.genStart.Focus()
	m.genEnd.Blur()
}

func (m *appModel) syncGenerateFocus() {
	m.genStart.Blur()
	m.genEnd.Blur()
	switch m.genFocus {
	case genFocusStart:
		m.genStart.Focus()
	case genFocusEnd:
		m.genEnd.Focus()
	}
}

func (m appModel) updateGenerate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.genBusy {
		// Only bail out while the request runs; everything else waits.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			(&m).closeAllModals()
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		(&m).closeAllModals()
		return m, nil
	case "tab", "down":
		m.genFocus++
		if m.genFocus > genFocusCancel {
			m.genFocus = genFocusStart
		}
		(&m).syncGenerateFocus()
		return m, nil
	case "shift+tab", "up":
		m.genFocus--
		if m.genFocus < genFocusStart {
			m.genFocus = genFocusCancel
		}
		(&m).syncGenerateFocus()
		return m, nil
	case "enter":
		switch m.genFocus {
		case genFocusStart, genFocusEnd:
			m.genFocus++
			(&m).syncGenerateFocus()
			return m, nil
		case genFocusCancel:
			(&m).closeAllModals()
			return m, nil
		case genFocusConfirm:
			start := strings.TrimSpace(m.genStart.Value())
			end := strings.TrimSpace(m.genEnd.Value())
			if err := roster.ValidateDateRange(start, end); err != nil {
				m.genErr = err.Error()
				return m, nil
			}
			m.genErr = ""
			return m, (&m).startGenerate(start, end)
		}
	}

	var cmd tea.Cmd
	switch m.genFocus {
	case genFocusStart:
		m.genStart, cmd = m.genStart.Update(msg)
	case genFocusEnd:
		m.genEnd, cmd = m.genEnd.Update(msg)
	}
	return m, cmd
}

func (m *appModel) renderGenerateModal(width int) string {
	bodyW := modalBodyWidth(width)

	label := lipgloss.NewStyle().Foreground(colorChromeMutedFg)
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render("Generate")
	cancel := btnBase.Render("Cancel")
	if m.genFocus == genFocusConfirm {
		confirm = btnActive.Render("Generate")
	}
	if m.genFocus == genFocusCancel {
		cancel = btnActive.Render("Cancel")
	}
	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	lines := []string{
		label.Render("Start date"),
		renderInputLine(bodyW, m.genStart.View()),
		"",
		label.Render("End date"),
		renderInputLine(bodyW, m.genEnd.View()),
		"",
	}
	if m.genBusy {
		lines = append(lines, styleMuted().Render("Generating…"), "")
	} else if strings.TrimSpace(m.genErr) != "" {
		errStyle := lipgloss.NewStyle().Foreground(colorDropBadBg).Bold(true)
		lines = append(lines, errStyle.Width(bodyW).Render(m.genErr), "")
	}
	lines = append(lines,
		controls,
		"",
		styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel"),
	)

	return renderModalBox(width, "Generate schedule", strings.Join(lines, "\n"))
}
