package tui

import (
	"context"
	"errors"
	"time"

	"shiftdeck/internal/api"
	"shiftdeck/internal/availability"
	"shiftdeck/internal/draft"
	"shiftdeck/internal/roster"

	tea "github.com/charmbracelet/bubbletea"
)

const cmdTimeout = 10 * time.Second

func tickRefresh() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func (m *appModel) startScheduleLoad() tea.Cmd {
	if m.deps.Client == nil {
		return nil
	}
	m.loadSeq++
	seq := m.loadSeq
	m.loading = true
	m.loadErr = ""
	client := m.deps.Client

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		sched, err := client.CurrentSchedule(ctx)
		if errors.Is(err, api.ErrNoSchedule) {
			return scheduleLoadedMsg{seq: seq, none: true}
		}
		if err != nil {
			return scheduleLoadedMsg{seq: seq, err: err.Error()}
		}
		return scheduleLoadedMsg{seq: seq, sched: sched}
	}
}

func (m *appModel) startScheduleLoadByID(id int64) tea.Cmd {
	if m.deps.Client == nil {
		return nil
	}
	m.loadSeq++
	seq := m.loadSeq
	m.loading = true
	m.loadErr = ""
	client := m.deps.Client

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		sched, details, err := client.Schedule(ctx, id)
		if err != nil {
			return scheduleLoadedMsg{seq: seq, err: err.Error()}
		}
		return scheduleLoadedMsg{seq: seq, sched: sched, details: details}
	}
}

func (m *appModel) startGenerate(startDate, endDate string) tea.Cmd {
	if m.deps.Client == nil {
		return nil
	}
	m.genSeq++
	seq := m.genSeq
	m.genBusy = true
	client := m.deps.Client

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		id, err := client.GenerateSchedule(ctx, api.GenerateRequest{StartDate: startDate, EndDate: endDate})
		if err != nil {
			return generateDoneMsg{seq: seq, err: err.Error()}
		}
		return generateDoneMsg{seq: seq, id: id}
	}
}

// startSave posts the full grid snapshot. The payload is captured here so
// edits made while the request is in flight don't bleed into it.
func (m *appModel) startSave() tea.Cmd {
	if m.deps.Client == nil || m.sched == nil {
		return nil
	}
	m.saveSeq++
	seq := m.saveSeq
	m.saving = true
	client := m.deps.Client

	startDate, endDate, _ := roster.ParseDateRange(m.sched.DateRange)
	req := api.SaveRequest{
		StartDate:   startDate,
		EndDate:     endDate,
		Assignments: m.sched.CollectAssignments(),
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		id, err := client.SaveSchedule(ctx, req)
		if err != nil {
			return saveDoneMsg{seq: seq, err: err.Error()}
		}
		return saveDoneMsg{seq: seq, id: id}
	}
}

func (m *appModel) startPublish(withSync bool) tea.Cmd {
	if m.deps.Client == nil || m.sched == nil || m.sched.ScheduleID == 0 {
		return nil
	}
	m.publishSeq++
	seq := m.publishSeq
	m.publishBusy = true
	client := m.deps.Client
	id := m.sched.ScheduleID

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		if err := client.PublishSchedule(ctx, id, withSync); err != nil {
			return publishDoneMsg{seq: seq, withSync: withSync, err: err.Error()}
		}
		return publishDoneMsg{seq: seq, withSync: withSync}
	}
}

// startLegendLoad fills the legend pane from the server roster, falling back
// to the built-in one when the endpoint is unavailable.
func (m *appModel) startLegendLoad() tea.Cmd {
	client := m.deps.Client

	return func() tea.Msg {
		if client == nil {
			return legendMsg{staff: roster.DefaultLegend(), fallback: true}
		}
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		staff, err := client.ListStaff(ctx)
		if err != nil || len(staff) == 0 {
			return legendMsg{staff: roster.DefaultLegend(), fallback: true}
		}
		return legendMsg{staff: staff}
	}
}

// startStaffSearch lists staff available for the target slot. When the server
// listing fails the built-in roster is offered instead, minus anyone the
// cache already knows to be unavailable then.
func (m *appModel) startStaffSearch(target roster.Cell) tea.Cmd {
	m.searchSeq++
	seq := m.searchSeq
	m.searchLoading = true
	client := m.deps.Client
	avail := m.deps.Avail
	day := m.dayLabel(target.Day)
	timeSlot := roster.TimeLabel(target.Slot)

	return func() tea.Msg {
		if client != nil {
			ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
			defer cancel()

			staff, err := client.AvailableStaff(ctx, day, timeSlot)
			if err == nil {
				return staffListMsg{seq: seq, target: target, staff: staff}
			}
		}
		fallback := make([]roster.StaffRef, 0, len(roster.DefaultLegend()))
		for _, s := range roster.DefaultLegend() {
			if avail != nil && avail.Peek(s.ID, day, timeSlot) == availability.StateUnavailable {
				continue
			}
			fallback = append(fallback, s)
		}
		return staffListMsg{seq: seq, target: target, staff: fallback, fallback: true}
	}
}

func (m *appModel) startNotificationsLoad() tea.Cmd {
	if m.deps.Client == nil {
		return nil
	}
	m.notifSeq++
	seq := m.notifSeq
	m.notifLoading = true
	client := m.deps.Client

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		items, err := client.Notifications(ctx)
		if err != nil {
			return notificationsMsg{seq: seq, err: err.Error()}
		}
		return notificationsMsg{seq: seq, items: items}
	}
}

func (m *appModel) startNotifCount() tea.Cmd {
	if m.deps.Client == nil {
		return nil
	}
	// The badge probe must not consume the list's seq: a count refresh while a
	// notifications load is in flight would otherwise drop the list response.
	seq := m.notifSeq
	client := m.deps.Client

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		n, err := client.NotificationCount(ctx)
		if err != nil {
			// The badge is best-effort; keep the last known count.
			return notifCountMsg{seq: seq, count: -1}
		}
		return notifCountMsg{seq: seq, count: n}
	}
}

func (m *appModel) notifOpCmd(op string, call func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		if err := call(ctx); err != nil {
			return notifOpDoneMsg{op: op, err: err.Error()}
		}
		return notifOpDoneMsg{op: op}
	}
}

// saveDraftCmd snapshots the document into the local draft store. Runs after
// every successful mutation so a crash or lost connection never loses edits.
func (m *appModel) saveDraftCmd() tea.Cmd {
	if m.deps.Drafts == nil || m.sched == nil {
		return nil
	}
	store := m.deps.Drafts
	snap := m.sched.Clone()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		if err := store.Save(ctx, snap); err != nil {
			return draftSavedMsg{err: err.Error()}
		}
		return draftSavedMsg{at: time.Now()}
	}
}

func (m *appModel) loadDraftCmd() tea.Cmd {
	if m.deps.Drafts == nil {
		return nil
	}
	store := m.deps.Drafts

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		sched, savedAt, err := store.Load(ctx)
		if errors.Is(err, draft.ErrNoDraft) {
			return draftLoadedMsg{none: true}
		}
		if err != nil {
			return draftLoadedMsg{err: err.Error()}
		}
		return draftLoadedMsg{sched: sched, savedAt: savedAt}
	}
}

func (m *appModel) clearDraftCmd() tea.Cmd {
	if m.deps.Drafts == nil {
		return nil
	}
	store := m.deps.Drafts

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		// Best-effort; a stale draft is harmless because the server copy wins.
		_ = store.Clear(ctx)
		return nil
	}
}
