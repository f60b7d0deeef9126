package tui

import (
	"fmt"
	"strings"

	"shiftdeck/internal/availability"
	"shiftdeck/internal/roster"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// The staff search modal is scoped to one cell: it opens for the cell the
// cursor was on, lists staff for that slot, and every way out of it closes
// it. Selection runs through the same placement pipeline as a drop, so a
// stale listing can never bypass the fullness or availability guards.

const searchVisibleRows = 8

func (m *appModel) openStaffSearch(target roster.Cell) tea.Cmd {
	if m.sched == nil {
		return nil
	}
	if _, err := m.sched.At(target); err != nil {
		return nil
	}
	if m.sched.IsFull(target) {
		m.showMinibuffer(fmt.Sprintf("%s %s is full (%d/%d).",
			m.dayLabel(target.Day), roster.TimeLabel(target.Slot), m.sched.Count(target), roster.SlotCapacity))
		return m.startCellFlash(target, "error")
	}

	m.modal = modalStaffSearch
	m.searchTarget = target
	m.searchAll = nil
	m.searchSel = 0
	m.searchNote = ""
	m.searchInput.SetValue("")
	m.searchInput.Focus()
	return m.startStaffSearch(target)
}

// filteredStaff applies the case-insensitive substring filter to the listing.
func (m *appModel) filteredStaff() []roster.StaffRef {
	needle := strings.ToLower(strings.TrimSpace(m.searchInput.Value()))
	if needle == "" {
		return m.searchAll
	}
	out := make([]roster.StaffRef, 0, len(m.searchAll))
	for _, s := range m.searchAll {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			out = append(out, s)
		}
	}
	return out
}

func (m appModel) updateStaffSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		(&m).closeAllModals()
		return m, nil
	case "up", "ctrl+p":
		if m.searchSel > 0 {
			m.searchSel--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.searchSel < len(m.filteredStaff())-1 {
			m.searchSel++
		}
		return m, nil
	case "enter":
		staff := m.filteredStaff()
		target := m.searchTarget
		sel := m.searchSel
		(&m).closeAllModals()
		if sel < 0 || sel >= len(staff) {
			return m, nil
		}
		// Re-validate at selection time; the listing may be stale.
		return m, (&m).placeStaff(staff[sel], nil, target)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	// Edits to the filter invalidate the row selection.
	if n := len(m.filteredStaff()); m.searchSel >= n {
		m.searchSel = 0
	}
	return m, cmd
}

func (m *appModel) renderStaffSearchModal(width int) string {
	bodyW := modalBodyWidth(width)
	title := fmt.Sprintf("Add staff %s %s %s", glyphArrow(), m.dayLabel(m.searchTarget.Day), roster.TimeLabel(m.searchTarget.Slot))

	var b strings.Builder
	b.WriteString(renderInputLine(bodyW, m.searchInput.View()))
	b.WriteString("\n\n")

	switch {
	case m.searchLoading:
		b.WriteString(styleMuted().Render("Loading staff…"))
	default:
		staff := m.filteredStaff()
		if len(staff) == 0 {
			b.WriteString(styleMuted().Render("No staff match."))
		}
		day := m.dayLabel(m.searchTarget.Day)
		timeSlot := roster.TimeLabel(m.searchTarget.Slot)
		first := 0
		if m.searchSel >= searchVisibleRows {
			first = m.searchSel - searchVisibleRows + 1
		}
		for i := first; i < len(staff) && i < first+searchVisibleRows; i++ {
			s := staff[i]
			mark := glyphUnknown()
			if m.deps.Avail != nil {
				switch m.deps.Avail.Peek(s.ID, day, timeSlot) {
				case availability.StateAvailable:
					mark = glyphAvailable()
				case availability.StateUnavailable:
					mark = glyphUnavailable()
				}
			}
			row := fmt.Sprintf(" %s %s", mark, s.Name)
			st := lipgloss.NewStyle()
			if i == m.searchSel {
				st = st.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
			}
			b.WriteString(st.Width(bodyW).Render(truncateText(row, bodyW)))
			b.WriteString("\n")
		}
	}

	if strings.TrimSpace(m.searchNote) != "" {
		b.WriteString("\n")
		b.WriteString(styleMuted().Width(bodyW).Render(m.searchNote))
	}
	b.WriteString("\n")
	b.WriteString(styleMuted().Width(bodyW).Render("enter: assign   esc: close"))

	return renderModalBox(width, title, b.String())
}
