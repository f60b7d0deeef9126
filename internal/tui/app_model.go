package tui

import (
	"time"

	"shiftdeck/internal/api"
	"shiftdeck/internal/availability"
	"shiftdeck/internal/draft"
	"shiftdeck/internal/roster"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

const (
	// Vertical chrome: header + blank, footer help line + minibuffer.
	chromeLines = 5
	// Minimum board height before we give up and let lines clip.
	minBodyHeight = 8
	// Legend pane width in the schedule view split.
	legendPaneWidth = 26

	minibufferAutoClearAfter = 5 * time.Second
	flashDuration            = 650 * time.Millisecond
)

// Deps carries everything the TUI talks to. Wiring them up happens in main;
// tests inject fakes.
type Deps struct {
	Client *api.Client
	Avail  *availability.Cache
	Drafts *draft.Store // nil disables local drafts
	Log    *logrus.Logger
}

type appModel struct {
	deps Deps

	// Batched startup commands; Init has a value receiver, so the seq
	// counters these commands carry are assigned in newAppModel.
	initCmd tea.Cmd

	width          int
	height         int
	seenWindowSize bool
	resizing       bool
	resizeSeq      int

	view  view
	pane  pane
	modal modalKind

	// The schedule document. All edits mutate this value in place; every
	// render is a projection of it.
	sched   *roster.Schedule
	details api.ScheduleDetails
	loadSeq int
	loading bool
	loadErr string

	// Dirty means the document has edits the server hasn't seen.
	dirty   bool
	saving  bool
	saveSeq int
	savedAt time.Time

	// Local draft bookkeeping (zero when drafts are disabled or empty).
	draftAt time.Time

	sel gridSelection

	legend         []roster.StaffRef
	legendFallback bool
	legendList     list.Model

	grab        *grabSession
	dropPending bool
	dropSeq     int

	// Staff search modal state.
	searchTarget  roster.Cell
	searchInput   textinput.Model
	searchAll     []roster.StaffRef
	searchSel     int
	searchLoading bool
	searchNote    string
	searchSeq     int

	// Generate modal state.
	genStart textinput.Model
	genEnd   textinput.Model
	genFocus generateModalFocus
	genErr   string
	genBusy  bool
	genSeq   int

	// Publish modal state.
	confirmFocus    confirmModalFocus
	publishWithSync bool
	publishBusy     bool
	publishSeq      int

	notifList    list.Model
	notifCount   int
	notifCountAt time.Time
	notifLoading bool
	notifSeq     int

	// Quit confirmation when there are unsaved edits and no draft store.
	quitArmed bool

	// Short-lived cell flash (rejected drop, removed chip).
	flashOn   bool
	flashCell roster.Cell
	flashKind string
	flashSeq  int

	minibufferText  string
	minibufferSetAt time.Time
}

func newAppModel(deps Deps) appModel {
	if deps.Log == nil {
		deps.Log = logrus.New()
		deps.Log.SetLevel(logrus.PanicLevel)
	}
	m := appModel{
		deps: deps,
		view: viewSchedule,
		pane: paneGrid,
	}

	m.legendList = newList("Staff", "Pick up a staff member", []list.Item{})
	m.notifList = newList("Notifications", "Schedule notifications", []list.Item{})

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Type to filter staff"
	m.searchInput.CharLimit = 64
	m.searchInput.Width = 40

	m.genStart = textinput.New()
	m.genStart.Placeholder = "YYYY-MM-DD"
	m.genStart.CharLimit = 10
	m.genStart.Width = 12

	m.genEnd = textinput.New()
	m.genEnd.Placeholder = "YYYY-MM-DD"
	m.genEnd.CharLimit = 10
	m.genEnd.Width = 12

	m.setLegend(roster.DefaultLegend(), true)

	m.initCmd = tea.Batch(
		tickRefresh(),
		m.startScheduleLoad(),
		m.startLegendLoad(),
		m.startNotifCount(),
	)
	return m
}

// setLegend swaps the roster shown in the legend pane, keeping the current
// selection when the same staff member is still present.
func (m *appModel) setLegend(staff []roster.StaffRef, fallback bool) {
	curID := ""
	if it, ok := m.legendList.SelectedItem().(staffItem); ok {
		curID = it.staff.ID
	}
	m.legend = staff
	m.legendFallback = fallback
	items := make([]list.Item, 0, len(staff))
	for _, s := range staff {
		items = append(items, staffItem{staff: s})
	}
	m.legendList.SetItems(items)
	if curID != "" {
		for i, it := range m.legendList.Items() {
			if s, ok := it.(staffItem); ok && s.staff.ID == curID {
				m.legendList.Select(i)
				break
			}
		}
	}
}

func (m *appModel) bodyHeight() int {
	h := m.height - chromeLines
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

func (m *appModel) resizeLists() {
	h := m.bodyHeight()
	w := m.width
	if w < 40 {
		w = 40
	}
	m.legendList.SetSize(legendPaneWidth, h-2)
	m.notifList.SetSize(w, h)
}

// clampSelection keeps the grid cursor inside the document and the chip index
// inside the selected cell.
func (m *appModel) clampSelection() {
	if m.sched == nil || len(m.sched.Days) == 0 {
		m.sel = gridSelection{}
		return
	}
	if m.sel.Day < 0 {
		m.sel.Day = 0
	}
	if m.sel.Day >= len(m.sched.Days) {
		m.sel.Day = len(m.sched.Days) - 1
	}
	if m.sel.Slot < 0 {
		m.sel.Slot = 0
	}
	if n := len(m.sched.Days[m.sel.Day].Shifts); m.sel.Slot >= n {
		m.sel.Slot = n - 1
	}
	count := m.sched.Count(m.sel.cell())
	if count == 0 {
		m.sel.Chip = 0
		return
	}
	if m.sel.Chip < 0 {
		m.sel.Chip = 0
	}
	if m.sel.Chip >= count {
		m.sel.Chip = count - 1
	}
}

// setSchedule replaces the document wholesale (fetch, generate, draft restore)
// and resets everything derived from it.
func (m *appModel) setSchedule(s *roster.Schedule, details api.ScheduleDetails) {
	m.sched = s
	m.details = details
	m.dirty = false
	m.grab = nil
	m.dropPending = false
	m.flashOn = false
	m.clampSelection()
	if m.deps.Avail != nil {
		m.deps.Avail.Flush()
	}
}
