package tui

import (
	"context"
	"errors"
	"fmt"

	"shiftdeck/internal/roster"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Grab/drop is the keyboard equivalent of dragging a staff chip. A grab
// session starts from a cell chip, the legend, or the search modal, and ends
// on the first drop attempt or cancel. The session always ends at the moment
// of the drop gesture; a pending availability answer carries its own copy of
// the placement so a stale session can never leak into the document.

func (m *appModel) startGrabFromCell() tea.Cmd {
	if m.sched == nil || m.grab != nil {
		return nil
	}
	c := m.sel.cell()
	slot, err := m.sched.At(c)
	if err != nil || len(slot.Assistants) == 0 {
		return nil
	}
	m.clampSelection()
	staff := slot.Assistants[m.sel.Chip]
	from := c
	m.grab = &grabSession{staff: staff, from: &from}
	m.showMinibuffer(fmt.Sprintf("Picked up %s. Move to a slot and press enter to drop, esc to cancel.", staff.Name))
	return nil
}

func (m *appModel) startGrabFromLegend() tea.Cmd {
	it, ok := m.legendList.SelectedItem().(staffItem)
	if !ok {
		return nil
	}
	m.grab = &grabSession{staff: it.staff}
	m.pane = paneGrid
	m.showMinibuffer(fmt.Sprintf("Picked up %s. Move to a slot and press enter to drop, esc to cancel.", it.staff.Name))
	return nil
}

// cancelGrab is the unconditional cleanup path. Safe to call in any state.
func (m *appModel) cancelGrab() {
	m.grab = nil
}

// requestDrop attempts to drop the grabbed chip on the cursor cell. The grab
// session is cleared here no matter what the outcome is.
func (m *appModel) requestDrop() tea.Cmd {
	if m.grab == nil || m.sched == nil {
		return nil
	}
	staff := m.grab.staff
	from := m.grab.from
	target := m.sel.cell()
	m.cancelGrab()
	return m.placeStaff(staff, from, target)
}

// placeStaff runs the shared placement pipeline for drops and search-modal
// selections. Order matters: a full target rejects before anything else and
// never triggers an availability request; a duplicate is a silent no-op; only
// then is availability asked, and that answer decides the placement.
func (m *appModel) placeStaff(staff roster.StaffRef, from *roster.Cell, target roster.Cell) tea.Cmd {
	if m.sched == nil {
		return nil
	}
	if _, err := m.sched.At(target); err != nil {
		return nil
	}

	if m.sched.IsFull(target) {
		m.deps.Log.WithFields(logrus.Fields{
			"staff": staff.ID,
			"day":   m.dayLabel(target.Day),
			"time":  roster.TimeLabel(target.Slot),
		}).Debug("drop rejected: slot full")
		m.showMinibuffer(fmt.Sprintf("%s %s is full (%d/%d).",
			m.dayLabel(target.Day), roster.TimeLabel(target.Slot), m.sched.Count(target), roster.SlotCapacity))
		return m.startCellFlash(target, "error")
	}

	if m.sched.Has(target, staff.ID) {
		return nil
	}

	m.dropPending = true
	m.dropSeq++
	seq := m.dropSeq
	avail := m.deps.Avail
	day := m.dayLabel(target.Day)
	timeSlot := roster.TimeLabel(target.Slot)

	return func() tea.Msg {
		available := true
		if avail != nil {
			ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
			defer cancel()
			available = avail.Check(ctx, staff.ID, day, timeSlot)
		}
		return dropVerdictMsg{seq: seq, staff: staff, from: from, target: target, available: available}
	}
}

// applyDropVerdict lands (or rejects) a placement once its availability
// answer arrived. The document may have changed while the answer was in
// flight, so the mutation can still fail its own guards here.
func (m *appModel) applyDropVerdict(msg dropVerdictMsg) tea.Cmd {
	if msg.seq != m.dropSeq {
		// A newer placement superseded this one.
		return nil
	}
	m.dropPending = false
	if m.sched == nil {
		return nil
	}

	where := m.dayLabel(msg.target.Day) + " " + roster.TimeLabel(msg.target.Slot)

	if !msg.available {
		m.deps.Log.WithFields(logrus.Fields{
			"staff": msg.staff.ID,
			"where": where,
		}).Info("drop rejected: staff unavailable")
		m.showMinibuffer(fmt.Sprintf("%s is not available %s.", msg.staff.Name, where))
		return m.startCellFlash(msg.target, "error")
	}

	var err error
	if msg.from != nil {
		err = m.sched.Move(*msg.from, msg.target, msg.staff.ID)
		if errors.Is(err, roster.ErrStaffNotAssigned) {
			// The chip vanished from its source while we waited; place it fresh.
			err = m.sched.Assign(msg.target, msg.staff)
		}
	} else {
		err = m.sched.Assign(msg.target, msg.staff)
	}

	switch {
	case err == nil:
		m.dirty = true
		m.clampSelection()
		if msg.from != nil {
			m.showMinibuffer(fmt.Sprintf("Moved %s to %s.", msg.staff.Name, where))
		} else {
			m.showMinibuffer(fmt.Sprintf("Assigned %s to %s.", msg.staff.Name, where))
		}
		return tea.Batch(m.startCellFlash(msg.target, "info"), m.saveDraftCmd())
	case errors.Is(err, roster.ErrDuplicateStaff):
		return nil
	case errors.Is(err, roster.ErrCellFull):
		m.showMinibuffer(fmt.Sprintf("%s filled up while checking availability.", where))
		return m.startCellFlash(msg.target, "error")
	default:
		m.showMinibuffer("Could not assign: " + err.Error())
		return nil
	}
}

// removeSelectedChip takes the selected staff chip out of the cursor cell.
func (m *appModel) removeSelectedChip() tea.Cmd {
	if m.sched == nil {
		return nil
	}
	c := m.sel.cell()
	slot, err := m.sched.At(c)
	if err != nil || len(slot.Assistants) == 0 {
		return nil
	}
	m.clampSelection()
	staff := slot.Assistants[m.sel.Chip]
	if err := m.sched.Remove(c, staff.ID); err != nil {
		m.showMinibuffer("Could not remove: " + err.Error())
		return nil
	}
	m.dirty = true
	m.clampSelection()
	m.showMinibuffer(fmt.Sprintf("Removed %s from %s %s.", staff.Name, m.dayLabel(c.Day), roster.TimeLabel(c.Slot)))
	return tea.Batch(m.startCellFlash(c, "info"), m.saveDraftCmd())
}

func (m *appModel) dayLabel(day int) string {
	if m.sched == nil || day < 0 || day >= len(m.sched.Days) {
		return ""
	}
	return m.sched.Days[day].Day
}
