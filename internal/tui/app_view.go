package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading…"
	}

	if m.modal != modalNone {
		var box string
		switch m.modal {
		case modalStaffSearch:
			box = (&m).renderStaffSearchModal(m.width)
		case modalGenerate:
			box = (&m).renderGenerateModal(m.width)
		case modalPublish:
			box = (&m).renderPublishModal(m.width)
		}
		if box != "" {
			return overlayModal(m.width, m.height, box)
		}
	}

	bodyH := (&m).bodyHeight()
	var body string
	switch m.view {
	case viewNotifications:
		if m.notifLoading && len(m.notifList.Items()) == 0 {
			body = normalizePane(styleMuted().Render("Loading notifications…"), m.width, bodyH)
		} else {
			body = normalizePane(m.notifList.View(), m.width, bodyH)
		}
	case viewSummary:
		body = (&m).renderSummary(m.width, bodyH)
	case viewHelp:
		body = (&m).renderHelp(m.width, bodyH)
	default:
		body = (&m).renderScheduleBody(m.width, bodyH)
	}

	return strings.Join([]string{
		(&m).renderBreadcrumb(),
		"",
		body,
		"",
		(&m).renderMinibuffer(m.width),
		(&m).renderFooter(),
	}, "\n")
}

func (m *appModel) renderBreadcrumb() string {
	segs := []string{lipgloss.NewStyle().Bold(true).Render("Shiftdeck")}

	if m.view != viewSchedule {
		segs = append(segs, lipgloss.NewStyle().Bold(true).Foreground(colorChromeMutedFg).Render(viewToString(m.view)))
	}

	if m.sched != nil {
		chrome := lipgloss.NewStyle().Foreground(colorChromeMutedFg)
		if label := strings.TrimSpace(m.sched.DateRange); label != "" {
			segs = append(segs, chrome.Render(label))
		}
		if m.sched.ScheduleID != 0 {
			segs = append(segs, chrome.Render(fmt.Sprintf("#%d", m.sched.ScheduleID)))
		}
		if m.sched.Published {
			segs = append(segs, lipgloss.NewStyle().Bold(true).Foreground(colorBadgePublishedFg).Render("published"))
		} else {
			segs = append(segs, lipgloss.NewStyle().Foreground(colorBadgeDraftFg).Render("draft"))
		}
		if m.details.IsFullWeek {
			segs = append(segs, styleMuted().Render("full week"))
		}
		if m.dirty {
			badge := "unsaved*"
			if !m.draftAt.IsZero() {
				badge = "unsaved* (draft " + m.draftAt.Format("15:04") + ")"
			}
			segs = append(segs, lipgloss.NewStyle().Bold(true).Foreground(colorBadgeDraftFg).Render(badge))
		}
	}

	if m.grab != nil {
		segs = append(segs, lipgloss.NewStyle().Bold(true).Render(glyphGrab()+" "+m.grab.staff.Name))
	}
	if m.dropPending {
		segs = append(segs, styleMuted().Render("checking availability…"))
	}
	if m.notifCount > 0 {
		segs = append(segs, lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s %d", glyphUnread(), m.notifCount)))
	}
	if m.resizing {
		segs = append(segs, styleMuted().Render("resizing…"))
	}

	return truncateText(strings.Join(segs, "  "), m.width)
}

func (m *appModel) renderFooter() string {
	var help string
	switch {
	case m.view == viewNotifications:
		help = "enter/m: mark read  M: all read  d: delete  /: filter  r: reload  esc: back"
	case m.view == viewSummary || m.view == viewHelp:
		help = "esc: back  q: quit"
	case m.grab != nil:
		help = "h/j/k/l: aim  enter: drop  esc: cancel"
	case m.pane == paneLegend:
		help = "j/k: move  enter: pick up  /: filter  tab: grid  q: quit"
	default:
		help = "h/j/k/l: move  J/K: chip  enter: grab/drop  a: add  x: remove  g: generate  s: save  p: publish  t: hours  n: notifications  ?: help  q: quit"
	}
	return normalizePane(styleMuted().Render(truncateText(help, m.width)), m.width, 1)
}

func (m *appModel) renderScheduleBody(width, height int) string {
	// On narrow terminals the legend pane gives way to the grid.
	if width < legendPaneWidth+gridGap+minGridColW {
		return m.renderGrid(width, height)
	}
	legend := m.renderLegendPane(legendPaneWidth, height)
	grid := m.renderGrid(width-legendPaneWidth-gridGap, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, legend, strings.Repeat(" ", gridGap), grid)
}

func (m *appModel) renderLegendPane(width, height int) string {
	hs := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Background(colorControlBg)
	if m.pane == paneLegend {
		hs = lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
	}
	head := hs.Width(width).Render(truncateText(" Staff", width))

	note := ""
	if m.legendFallback {
		note = styleMuted().Render(truncateText(" standard roster", width))
	}

	return normalizePane(head+"\n"+note+"\n"+m.legendList.View(), width, height)
}
