package tui

import (
	"strings"
	"time"

	"shiftdeck/internal/roster"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// The minibuffer is the single status line under the footer. Messages clear
// themselves after minibufferAutoClearAfter on the next refresh tick.

func (m *appModel) showMinibuffer(text string) {
	if m == nil {
		return
	}
	m.minibufferText = strings.TrimSpace(text)
	m.minibufferSetAt = time.Now()
}

func (m *appModel) maybeClearMinibuffer() {
	if m.minibufferText == "" {
		return
	}
	if time.Since(m.minibufferSetAt) > minibufferAutoClearAfter {
		m.minibufferText = ""
	}
}

func (m *appModel) renderMinibuffer(width int) string {
	if strings.TrimSpace(m.minibufferText) == "" {
		return normalizePane("", width, 1)
	}
	return normalizePane(lipgloss.NewStyle().Foreground(colorSurfaceFg).Render(m.minibufferText), width, 1)
}

// startCellFlash briefly highlights a cell. kind is "error" for rejected
// operations and "info" for confirmations.
func (m *appModel) startCellFlash(c roster.Cell, kind string) tea.Cmd {
	m.flashOn = true
	m.flashCell = c
	m.flashKind = kind
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}
