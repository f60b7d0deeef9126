package tui

import (
	"fmt"
	"strings"

	"shiftdeck/internal/availability"
	"shiftdeck/internal/roster"

	"github.com/charmbracelet/lipgloss"
)

// The schedule grid renders the document as a table: one column per day, one
// row per time slot. Rows are height-aligned across columns so the hour lines
// stay level. Everything here is a pure projection of m.sched plus the
// transient cursor/grab/flash state.

const (
	gridGap     = 2
	minGridColW = 14
)

// dropHint classifies the cell under the cursor while a chip is grabbed.
type dropHint int

const (
	dropHintNone dropHint = iota
	dropHintFull
	dropHintDuplicate
	dropHintOK
	dropHintBlocked
	dropHintUnknown
)

// dropHintFor computes the dragover feedback for one cell. Full and duplicate
// cells never consult availability; a drop there is decided without it.
func (m *appModel) dropHintFor(c roster.Cell) dropHint {
	if m.grab == nil || m.sched == nil {
		return dropHintNone
	}
	if m.grab.from != nil && *m.grab.from == c {
		return dropHintNone
	}
	if m.sched.IsFull(c) {
		return dropHintFull
	}
	if m.sched.Has(c, m.grab.staff.ID) {
		return dropHintDuplicate
	}
	if m.deps.Avail == nil {
		return dropHintUnknown
	}
	day := m.sched.Days[c.Day].Day
	switch m.deps.Avail.Peek(m.grab.staff.ID, day, roster.TimeLabel(c.Slot)) {
	case availability.StateAvailable:
		return dropHintOK
	case availability.StateUnavailable:
		return dropHintBlocked
	default:
		return dropHintUnknown
	}
}

func dropHintStyle(h dropHint) (lipgloss.Style, string) {
	st := lipgloss.NewStyle().Bold(true)
	switch h {
	case dropHintFull:
		return st.Foreground(colorDropBadFg).Background(colorDropBadBg), "full"
	case dropHintDuplicate:
		return st.Foreground(colorDropUnknownFg).Background(colorDropUnknownBg), "already here"
	case dropHintOK:
		return st.Foreground(colorDropOKFg).Background(colorDropOKBg), glyphAvailable() + " drop"
	case dropHintBlocked:
		return st.Foreground(colorDropBadFg).Background(colorDropBadBg), glyphUnavailable() + " busy"
	default:
		return st.Foreground(colorDropUnknownFg).Background(colorDropUnknownBg), glyphUnknown() + " checking"
	}
}

// cellHeight is the rendered line count for one cell: header, chips, footer.
func (m *appModel) cellHeight(c roster.Cell) int {
	return 2 + m.sched.Count(c)
}

func (m *appModel) renderCell(c roster.Cell, colW int) string {
	slot, err := m.sched.At(c)
	if err != nil {
		return normalizePane("", colW, 2)
	}

	count := len(slot.Assistants)
	cursorHere := m.pane == paneGrid && m.modal == modalNone && m.sel.cell() == c

	// Header: hour label, with drop/flash feedback taking priority over the
	// plain cursor highlight.
	headText := " " + roster.TimeLabel(c.Slot)
	headStyle := lipgloss.NewStyle().Foreground(colorChromeMutedFg)

	hint := dropHintNone
	if cursorHere {
		hint = m.dropHintFor(c)
	}
	switch {
	case m.flashOn && m.flashCell == c:
		bg := colorFlashErrorBg
		if m.flashKind == "info" {
			bg = colorFlashInfoBg
		}
		headStyle = lipgloss.NewStyle().Foreground(colorAccentFg).Background(bg).Bold(true)
	case hint != dropHintNone:
		st, label := dropHintStyle(hint)
		headStyle = st
		headText = headText + "  " + label
	case cursorHere:
		headStyle = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	case m.grab != nil && m.grab.from != nil && *m.grab.from == c:
		headStyle = lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent)
	}
	lines := make([]string, 0, 2+count)
	lines = append(lines, headStyle.Width(colW).Render(truncateText(headText, colW)))

	for i, a := range slot.Assistants {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			name = a.ID
		}
		chip := "  " + glyphBullet() + " " + name
		st := lipgloss.NewStyle()
		switch {
		case m.grab != nil && m.grab.from != nil && *m.grab.from == c && m.grab.staff.ID == a.ID:
			// The lifted chip stays visible but marked until the drop resolves.
			chip = "  " + glyphGrab() + " " + name
			st = styleMuted()
		case cursorHere && m.grab == nil && i == m.sel.Chip:
			st = st.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
		}
		lines = append(lines, st.Render(truncateText(chip, colW)))
	}

	counter := fmt.Sprintf("  Staff: %d/%d", count, roster.SlotCapacity)
	if count < roster.SlotCapacity {
		counter += "  [+] Add Staff"
	}
	lines = append(lines, styleMuted().Render(truncateText(counter, colW)))

	return normalizePane(strings.Join(lines, "\n"), colW, 2+count)
}

// gridSlotWindow picks the first slot row to render so the cursor stays
// visible within the height budget.
func (m *appModel) gridSlotWindow(rowHeights []int, height int) int {
	first := 0
	for first < m.sel.Slot {
		used := 0
		for si := first; si <= m.sel.Slot; si++ {
			used += rowHeights[si] + 1 // +1 row separator
		}
		if used <= height {
			break
		}
		first++
	}
	return first
}

func (m *appModel) renderGrid(width, height int) string {
	if m.sched == nil || len(m.sched.Days) == 0 {
		return normalizePane(m.renderGridPlaceholder(width), width, height)
	}

	n := len(m.sched.Days)
	avail := width - gridGap*(n-1)
	if avail < n {
		avail = n
	}
	colW := avail / n
	if colW < minGridColW {
		colW = minGridColW
	}

	slots := len(roster.TimeSlots)
	rowHeights := make([]int, slots)
	for si := 0; si < slots; si++ {
		h := 2
		for di := 0; di < n; di++ {
			if ch := m.cellHeight(roster.Cell{Day: di, Slot: si}); ch > h {
				h = ch
			}
		}
		rowHeights[si] = h
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Background(colorControlBg)
	headerSelectedStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)

	headers := make([]string, 0, n)
	for di := 0; di < n; di++ {
		hs := headerStyle
		if m.pane == paneGrid && di == m.sel.Day {
			hs = headerSelectedStyle
		}
		headers = append(headers, hs.Width(colW).Render(truncateText(" "+m.sched.Days[di].Day, colW)))
	}
	sep := strings.Repeat(" ", gridGap)
	out := make([]string, 0, height)
	out = append(out, joinRow(headers, sep))
	out = append(out, "")

	total := 2
	for si, h := range rowHeights {
		total += h
		if si < slots-1 {
			total++
		}
	}
	first := m.gridSlotWindow(rowHeights, height-2)
	bodyH := height
	if first > 0 || total > height {
		// A window is in effect; keep the last line free for the hint.
		bodyH = height - 1
	}
	used := 2
	last := first
	for si := first; si < slots; si++ {
		if used+rowHeights[si] > bodyH && si > first {
			break
		}
		cells := make([]string, 0, n)
		for di := 0; di < n; di++ {
			cell := m.renderCell(roster.Cell{Day: di, Slot: si}, colW)
			cells = append(cells, normalizePane(cell, colW, rowHeights[si]))
		}
		out = append(out, joinRow(cells, sep))
		last = si
		used += rowHeights[si]
		if si < slots-1 {
			out = append(out, "")
			used++
		}
	}
	if first > 0 || last < slots-1 {
		out = append(out, styleMuted().Render(fmt.Sprintf("slots %d-%d of %d", first+1, last+1, slots)))
	}

	return normalizePane(strings.Join(out, "\n"), width, height)
}

func joinRow(cells []string, sep string) string {
	if len(cells) == 1 {
		return cells[0]
	}
	out := cells[0]
	for i := 1; i < len(cells); i++ {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, sep, cells[i])
	}
	return out
}

func (m *appModel) renderGridPlaceholder(width int) string {
	if m.loading {
		return styleMuted().Render("Loading schedule…")
	}
	if strings.TrimSpace(m.loadErr) != "" {
		return lipgloss.NewStyle().Foreground(colorSurfaceFg).Width(width).Render(
			"Could not load the schedule: " + m.loadErr + "\n\nPress r to retry.")
	}
	return lipgloss.NewStyle().Foreground(colorSurfaceFg).Width(width).Render(
		"No schedule yet.\n\nPress g to generate one for a date range.")
}
