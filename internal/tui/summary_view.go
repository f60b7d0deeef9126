package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Hours view: one assigned slot equals one hour, and the scale tops out at
// whoever holds the most slots in the current schedule.

const hoursBarWidth = 16

func renderHoursBar(slots, max int) string {
	if max <= 0 {
		return ""
	}
	if slots < 0 {
		slots = 0
	}
	if slots > max {
		slots = max
	}

	inner := fmt.Sprintf("%dh", slots)
	innerRunes := []rune(inner)

	// No-color terminals get the plain figure instead of a colored bar.
	if lipgloss.ColorProfile() == termenv.Ascii {
		return inner
	}

	ratio := float64(slots) / float64(max)
	width := hoursBarWidth
	minW := len(innerRunes) + 2
	if minW > width {
		width = minW
	}
	filledN := int(math.Round(ratio * float64(width)))
	if filledN < 0 {
		filledN = 0
	}
	if filledN > width {
		filledN = width
	}
	start := (width - len(innerRunes)) / 2

	var b strings.Builder
	for i := 0; i < width; i++ {
		bg := colorBarEmptyBg
		fg := colorBarEmptyFg
		if i < filledN {
			bg = colorBarFillBg
			fg = colorBarFillFg
		}
		ch := " "
		if i >= start && i < start+len(innerRunes) {
			ch = string(innerRunes[i-start])
		}
		b.WriteString(lipgloss.NewStyle().Background(bg).Foreground(fg).Render(ch))
	}
	return b.String()
}

func (m *appModel) renderSummary(width, height int) string {
	if m.sched == nil {
		return normalizePane(styleMuted().Render("No schedule loaded."), width, height)
	}

	ruleW := width - 2
	if ruleW > 40 {
		ruleW = 40
	}
	if ruleW < 1 {
		ruleW = 1
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Hours per staff member"))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(strings.Repeat(glyphHRule(), ruleW)))
	b.WriteString("\n\n")

	rows := m.sched.Summary()
	if len(rows) == 0 {
		b.WriteString(styleMuted().Render("No staff assigned yet."))
		return normalizePane(b.String(), width, height)
	}

	// Rows arrive most-loaded first, so the first entry sets the scale.
	maxSlots := rows[0].Slots
	nameW := 0
	for _, r := range rows {
		if w := xansi.StringWidth(r.Staff.Name); w > nameW {
			nameW = w
		}
	}
	if nameW > 24 {
		nameW = 24
	}

	for _, r := range rows {
		name := truncateText(r.Staff.Name, nameW)
		pad := nameW - xansi.StringWidth(name)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(fmt.Sprintf("  %s%s  %s  %s\n",
			name,
			strings.Repeat(" ", pad),
			renderHoursBar(r.Slots, maxSlots),
			styleMuted().Render(pluralize(r.Slots, "slot", "slots"))))
	}

	b.WriteString("\n")
	footer := fmt.Sprintf("%s across %s",
		pluralize(m.sched.TotalAssigned(), "assignment", "assignments"),
		pluralize(len(m.sched.Days), "day", "days"))
	if !m.savedAt.IsZero() {
		footer += "  saved " + m.savedAt.Format("15:04")
	}
	b.WriteString(styleMuted().Render(footer))

	return normalizePane(b.String(), width, height)
}
