package tui

import (
	"time"

	"shiftdeck/internal/api"
	"shiftdeck/internal/roster"
)

type view int

const (
	viewSchedule view = iota
	viewNotifications
	viewSummary
	viewHelp
)

func viewToString(v view) string {
	switch v {
	case viewNotifications:
		return "notifications"
	case viewSummary:
		return "summary"
	case viewHelp:
		return "help"
	default:
		return "schedule"
	}
}

type pane int

const (
	paneLegend pane = iota
	paneGrid
)

func paneToString(p pane) string {
	if p == paneLegend {
		return "legend"
	}
	return "grid"
}

type modalKind int

const (
	modalNone modalKind = iota
	modalStaffSearch
	modalGenerate
	modalPublish
)

type generateModalFocus int

const (
	genFocusStart generateModalFocus = iota
	genFocusEnd
	genFocusConfirm
	genFocusCancel
)

// gridSelection is the grid cursor: a cell plus the chip selected inside it.
// Chip is clamped against the cell's occupancy on every move.
type gridSelection struct {
	Day  int
	Slot int
	Chip int
}

func (s gridSelection) cell() roster.Cell {
	return roster.Cell{Day: s.Day, Slot: s.Slot}
}

// grabSession is the explicit pick-up state. nil means idle. from is nil when
// the staff was picked from the legend or the search modal rather than lifted
// out of another cell.
type grabSession struct {
	staff roster.StaffRef
	from  *roster.Cell
}

type refreshTickMsg struct{}

type resizeDoneMsg struct{ seq int }

type flashDoneMsg struct{ seq int }

type scheduleLoadedMsg struct {
	seq     int
	sched   *roster.Schedule
	details api.ScheduleDetails
	none    bool // server has no schedule yet (not an error)
	err     string
}

type generateDoneMsg struct {
	seq int
	id  int64
	err string
}

type saveDoneMsg struct {
	seq int
	id  int64
	err string
}

type publishDoneMsg struct {
	seq      int
	withSync bool
	err      string
}

type legendMsg struct {
	staff    []roster.StaffRef
	fallback bool
}

type staffListMsg struct {
	seq      int
	target   roster.Cell
	staff    []roster.StaffRef
	fallback bool // server listing failed; staff came from the built-in roster
}

// dropVerdictMsg resolves a pending drop or search-modal selection. The
// availability answer it carries is authoritative for this placement.
type dropVerdictMsg struct {
	seq       int
	staff     roster.StaffRef
	from      *roster.Cell
	target    roster.Cell
	available bool
}

type notificationsMsg struct {
	seq   int
	items []api.Notification
	err   string
}

type notifCountMsg struct {
	seq   int
	count int
}

type notifOpDoneMsg struct {
	op  string
	err string
}

type draftLoadedMsg struct {
	sched   *roster.Schedule
	savedAt time.Time
	none    bool
	err     string
}

type draftSavedMsg struct {
	at  time.Time
	err string
}

func (m *appModel) closeAllModals() {
	if m == nil {
		return
	}
	m.modal = modalNone

	m.searchTarget = roster.Cell{}
	m.searchAll = nil
	m.searchSel = 0
	m.searchLoading = false
	m.searchNote = ""
	m.searchInput.SetValue("")
	m.searchInput.Blur()

	m.genFocus = genFocusStart
	m.genErr = ""
	m.genBusy = false
	m.genStart.SetValue("")
	m.genStart.Blur()
	m.genEnd.SetValue("")
	m.genEnd.Blur()

	m.confirmFocus = confirmFocusConfirm
	m.publishWithSync = false
	m.publishBusy = false
}
