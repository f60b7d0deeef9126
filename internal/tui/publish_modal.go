package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *appModel) openPublishModal() {
	m.modal = modalPublish
	m.confirmFocus = confirmFocusConfirm
	m.publishWithSync = false
	m.publishBusy = false
}

func (m appModel) updatePublish(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.publishBusy {
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
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "s", " ":
		m.publishWithSync = !m.publishWithSync
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusCancel {
			(&m).closeAllModals()
			return m, nil
		}
		return m, (&m).startPublish(m.publishWithSync)
	}
	return m, nil
}

func (m *appModel) renderPublishModal(width int) string {
	if m.sched == nil {
		return ""
	}

	check := "[ ]"
	if m.publishWithSync {
		check = "[x]"
	}
	rangeLabel := strings.TrimSpace(m.sched.DateRange)
	if rangeLabel == "" {
		rangeLabel = "(no date range)"
	}

	body := fmt.Sprintf(
		"Publish schedule #%d (%s)?\n\nPublishing locks the roster and notifies staff.\n\n%s also push shifts to staff calendars (press s)",
		m.sched.ScheduleID, rangeLabel, check)
	if m.publishBusy {
		body += "\n\nPublishing…"
	}

	return renderConfirmModal(width, "Publish schedule", body, "Publish", "Cancel", m.confirmFocus)
}
