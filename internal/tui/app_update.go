package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

func (m appModel) Init() tea.Cmd { return m.initCmd }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		// Don't show the resize overlay on startup; only after we've seen an initial size.
		if !m.seenWindowSize {
			m.seenWindowSize = true
			m.resizing = false
			return m, nil
		}
		m.resizing = true
		m.resizeSeq++
		seq := m.resizeSeq
		return m, tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg { return resizeDoneMsg{seq: seq} })

	case resizeDoneMsg:
		// Debounce: only clear if this corresponds to the latest resize seq.
		if msg.seq == m.resizeSeq {
			m.resizing = false
		}
		return m, nil

	case refreshTickMsg:
		(&m).maybeClearMinibuffer()
		cmds := []tea.Cmd{tickRefresh()}
		if (&m).shouldRefreshNotifCount() {
			cmds = append(cmds, (&m).startNotifCount())
		}
		return m, tea.Batch(cmds...)

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flashOn = false
			m.flashKind = ""
		}
		return m, nil

	case scheduleLoadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		if msg.none {
			m.sched = nil
			m.loadErr = ""
			return m, nil
		}
		if msg.err != "" {
			m.loadErr = msg.err
			m.deps.Log.WithField("error", msg.err).Warn("schedule load failed")
			if m.sched == nil {
				// Server unreachable; fall back to the local draft if one exists.
				return m, (&m).loadDraftCmd()
			}
			(&m).showMinibuffer("Reload failed: " + msg.err)
			return m, nil
		}
		(&m).setSchedule(msg.sched, msg.details)
		return m, nil

	case draftLoadedMsg:
		if m.sched != nil || msg.none || msg.err != "" {
			return m, nil
		}
		(&m).setSchedule(msg.sched, m.details)
		m.dirty = true
		m.draftAt = msg.savedAt
		m.deps.Log.WithField("saved_at", msg.savedAt).Info("restored local draft")
		(&m).showMinibuffer("Server unreachable; restored local draft from " + msg.savedAt.Format("Jan 2 15:04") + ".")
		return m, nil

	case draftSavedMsg:
		if msg.err != "" {
			(&m).showMinibuffer("Draft save failed: " + msg.err)
			return m, nil
		}
		m.draftAt = msg.at
		return m, nil

	case legendMsg:
		(&m).setLegend(msg.staff, msg.fallback)
		return m, nil

	case generateDoneMsg:
		if msg.seq != m.genSeq {
			return m, nil
		}
		m.genBusy = false
		if msg.err != "" {
			// Server messages surface verbatim inside the modal.
			m.genErr = msg.err
			m.deps.Log.WithField("error", msg.err).Warn("schedule generate failed")
			return m, nil
		}
		(&m).closeAllModals()
		(&m).showMinibuffer("Generated schedule.")
		return m, (&m).startScheduleLoadByID(msg.id)

	case saveDoneMsg:
		if msg.seq != m.saveSeq {
			return m, nil
		}
		m.saving = false
		if msg.err != "" {
			m.deps.Log.WithField("error", msg.err).Error("schedule save failed")
			(&m).showMinibuffer("Save failed: " + msg.err)
			return m, nil
		}
		m.dirty = false
		m.savedAt = time.Now()
		if m.sched != nil && msg.id != 0 {
			m.sched.ScheduleID = msg.id
		}
		m.deps.Log.WithField("schedule_id", msg.id).Info("schedule saved")
		(&m).showMinibuffer("Schedule saved.")
		return m, (&m).clearDraftCmd()

	case publishDoneMsg:
		if msg.seq != m.publishSeq {
			return m, nil
		}
		m.publishBusy = false
		if msg.err != "" {
			m.deps.Log.WithField("error", msg.err).Error("schedule publish failed")
			(&m).showMinibuffer("Publish failed: " + msg.err)
			return m, nil
		}
		(&m).closeAllModals()
		if m.sched != nil {
			m.sched.Published = true
			m.deps.Log.WithFields(logrus.Fields{
				"schedule_id": m.sched.ScheduleID,
				"with_sync":   msg.withSync,
			}).Info("schedule published")
		}
		if msg.withSync {
			(&m).showMinibuffer("Schedule published; calendar sync queued.")
		} else {
			(&m).showMinibuffer("Schedule published.")
		}
		return m, nil

	case staffListMsg:
		if msg.seq != m.searchSeq || m.modal != modalStaffSearch || msg.target != m.searchTarget {
			return m, nil
		}
		m.searchLoading = false
		m.searchAll = msg.staff
		m.searchSel = 0
		if msg.fallback {
			m.searchNote = "Server listing unavailable; showing the standard roster."
		}
		return m, nil

	case dropVerdictMsg:
		cmd := (&m).applyDropVerdict(msg)
		return m, cmd

	case notificationsMsg:
		if msg.seq != m.notifSeq {
			return m, nil
		}
		m.notifLoading = false
		if msg.err != "" {
			(&m).showMinibuffer("Notifications: " + msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.items))
		for _, n := range msg.items {
			items = append(items, notifItem{notif: n})
		}
		m.notifList.SetItems(items)
		unread := 0
		for _, n := range msg.items {
			if !n.Read {
				unread++
			}
		}
		m.notifCount = unread
		return m, nil

	case notifCountMsg:
		if msg.count >= 0 {
			m.notifCount = msg.count
		}
		m.notifCountAt = time.Now()
		return m, nil

	case notifOpDoneMsg:
		if msg.err != "" {
			(&m).showMinibuffer("Notification " + msg.op + " failed: " + msg.err)
			return m, nil
		}
		return m, tea.Batch((&m).startNotificationsLoad(), (&m).startNotifCount())

	case tea.KeyMsg:
		// A modal captures every key so text inputs behave normally.
		if m.modal != modalNone {
			switch m.modal {
			case modalStaffSearch:
				return m.updateStaffSearch(msg)
			case modalGenerate:
				return m.updateGenerate(msg)
			case modalPublish:
				return m.updatePublish(msg)
			}
		}
		switch m.view {
		case viewNotifications:
			return m.updateNotifications(msg)
		case viewSummary, viewHelp:
			switch msg.String() {
			case "ctrl+c", "q", "esc", "backspace":
				m.view = viewSchedule
				return m, nil
			}
			return m, nil
		default:
			return m.updateSchedule(msg)
		}
	}

	return m, nil
}

func (m *appModel) shouldRefreshNotifCount() bool {
	if m == nil || m.deps.Client == nil {
		return false
	}
	if m.notifCountAt.IsZero() {
		return false // initial load is part of initCmd
	}
	return time.Since(m.notifCountAt) > 30*time.Second
}

func (m appModel) updateSchedule(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// A second q confirms quitting with unsaved edits when drafts are off.
	if key != "q" && key != "ctrl+c" {
		m.quitArmed = false
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.dirty && m.deps.Drafts == nil && !m.quitArmed {
			m.quitArmed = true
			(&m).showMinibuffer("Unsaved changes. Press q again to quit anyway.")
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.view = viewHelp
		return m, nil
	case "n":
		m.view = viewNotifications
		return m, (&m).startNotificationsLoad()
	case "t":
		m.view = viewSummary
		return m, nil
	case "tab":
		if m.pane == paneGrid {
			m.pane = paneLegend
		} else {
			m.pane = paneGrid
		}
		m.deps.Log.WithField("pane", paneToString(m.pane)).Debug("pane switched")
		return m, nil
	case "r":
		if m.dirty {
			(&m).showMinibuffer("Unsaved edits. Save with s, or press R to discard and reload.")
			return m, nil
		}
		return m, tea.Batch((&m).startScheduleLoad(), (&m).startLegendLoad())
	case "R":
		return m, tea.Batch((&m).startScheduleLoad(), (&m).startLegendLoad())
	case "s":
		if m.sched == nil {
			(&m).showMinibuffer("Nothing to save yet.")
			return m, nil
		}
		if m.saving {
			return m, nil
		}
		(&m).showMinibuffer("Saving…")
		return m, (&m).startSave()
	case "g":
		(&m).openGenerateModal()
		return m, nil
	case "p":
		if m.sched == nil || m.sched.ScheduleID == 0 {
			(&m).showMinibuffer("Generate or save a schedule before publishing.")
			return m, nil
		}
		if m.dirty {
			(&m).showMinibuffer("Save your edits before publishing.")
			return m, nil
		}
		(&m).openPublishModal()
		return m, nil
	case "esc":
		if m.grab != nil {
			(&m).cancelGrab()
			(&m).showMinibuffer("Drop cancelled.")
			return m, nil
		}
		m.minibufferText = ""
		return m, nil
	}

	if m.pane == paneLegend {
		return m.updateLegendPane(msg)
	}
	return m.updateGridPane(msg)
}

func (m appModel) updateLegendPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		if m.sched == nil {
			(&m).showMinibuffer("No schedule to assign into yet.")
			return m, nil
		}
		return m, (&m).startGrabFromLegend()
	}
	var cmd tea.Cmd
	m.legendList, cmd = m.legendList.Update(msg)
	return m, cmd
}

func (m appModel) updateGridPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sched == nil {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		m.sel.Day--
		m.sel.Chip = 0
		(&m).clampSelection()
		return m, nil
	case "right", "l":
		m.sel.Day++
		m.sel.Chip = 0
		(&m).clampSelection()
		return m, nil
	case "up", "k":
		m.sel.Slot--
		m.sel.Chip = 0
		(&m).clampSelection()
		return m, nil
	case "down", "j":
		m.sel.Slot++
		m.sel.Chip = 0
		(&m).clampSelection()
		return m, nil
	case "K":
		m.sel.Chip--
		if m.sel.Chip < 0 {
			n := m.sched.Count(m.sel.cell())
			m.sel.Chip = n - 1
		}
		(&m).clampSelection()
		return m, nil
	case "J":
		m.sel.Chip++
		if m.sel.Chip >= m.sched.Count(m.sel.cell()) {
			m.sel.Chip = 0
		}
		(&m).clampSelection()
		return m, nil
	case "enter", " ":
		if m.grab != nil {
			return m, (&m).requestDrop()
		}
		return m, (&m).startGrabFromCell()
	case "x", "delete":
		if m.grab != nil {
			return m, nil
		}
		return m, (&m).removeSelectedChip()
	case "a", "+":
		if m.grab != nil {
			return m, nil
		}
		return m, (&m).openStaffSearch(m.sel.cell())
	}
	return m, nil
}

func (m appModel) updateNotifications(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While filtering, all keystrokes belong to the filter input.
	if m.notifList.SettingFilter() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.notifList, cmd = m.notifList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc", "backspace":
		m.view = viewSchedule
		return m, nil
	case "enter", "m":
		if it, ok := m.notifList.SelectedItem().(notifItem); ok && !it.notif.Read {
			client := m.deps.Client
			id := it.notif.ID
			return m, (&m).notifOpCmd("read", func(ctx context.Context) error {
				return client.MarkNotificationRead(ctx, id)
			})
		}
		return m, nil
	case "M":
		client := m.deps.Client
		return m, (&m).notifOpCmd("read-all", func(ctx context.Context) error {
			return client.MarkAllNotificationsRead(ctx)
		})
	case "d":
		if it, ok := m.notifList.SelectedItem().(notifItem); ok {
			client := m.deps.Client
			id := it.notif.ID
			return m, (&m).notifOpCmd("delete", func(ctx context.Context) error {
				return client.DeleteNotification(ctx, id)
			})
		}
		return m, nil
	case "r":
		return m, (&m).startNotificationsLoad()
	}
	var cmd tea.Cmd
	m.notifList, cmd = m.notifList.Update(msg)
	return m, cmd
}
