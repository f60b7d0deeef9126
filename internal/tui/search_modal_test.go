package tui

import (
	"strings"
	"testing"

	"shiftdeck/internal/roster"

	tea "github.com/charmbracelet/bubbletea"
)

func TestFilteredStaff_CaseInsensitiveSubstring(t *testing.T) {
	s := roster.New("2025-01-06 to 2025-01-10", nil)
	m := newTestModel(s, nil)
	m.searchAll = roster.DefaultLegend()

	m.searchInput.SetValue("aSh")
	got := (&m).filteredStaff()
	if len(got) != 1 || got[0].Name != "Daniel Rasheed" {
		t.Fatalf("expected the substring filter to match Daniel Rasheed; got %+v", got)
	}

	m.searchInput.SetValue("")
	if n := len((&m).filteredStaff()); n != len(roster.DefaultLegend()) {
		t.Fatalf("empty filter must pass everyone; got %d", n)
	}

	m.searchInput.SetValue("zzzz")
	if n := len((&m).filteredStaff()); n != 0 {
		t.Fatalf("expected no matches; got %d", n)
	}
}

func TestOpenStaffSearch_FullCellRefuses(t *testing.T) {
	s := roster.New("2025-01-06 to 2025-01-10", nil)
	full := roster.Cell{Day: 0, Slot: 0}
	fillCell(t, s, full, staff(0), staff(1), staff(2))
	m := newTestModel(s, nil)

	cmd := (&m).openStaffSearch(full)

	if m.modal != modalNone {
		t.Fatalf("the search modal must not open for a full cell")
	}
	if cmd == nil {
		t.Fatalf("expected a flash command for the refusal")
	}
	if !strings.Contains(m.minibufferText, "full") {
		t.Fatalf("expected a fullness message, got %q", m.minibufferText)
	}
}

func TestStaffSearch_SelectLandsThroughPlacement(t *testing.T) {
	s := roster.New("2025-01-06 to 2025-01-10", nil)
	target := roster.Cell{Day: 0, Slot: 1}

	fc := &fakeChecker{}
	m := newTestModel(s, fc)
	m.modal = modalStaffSearch
	m.searchTarget = target
	m.searchAll = roster.DefaultLegend()
	m.searchSel = 0

	mAny, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)

	if m.modal != modalNone {
		t.Fatalf("selection must close the modal")
	}
	if cmd == nil {
		t.Fatalf("expected a placement command")
	}
	verdict := cmd().(dropVerdictMsg)

	mAny, _ = m.Update(verdict)
	m = mAny.(appModel)
	if !m.sched.Has(target, staff(0).ID) {
		t.Fatalf("expected the selected staff to land in the target cell")
	}
	if got := fc.callCount(); got != 1 {
		t.Fatalf("expected the selection to re-check availability once; got %d", got)
	}
}

func TestStaffSearch_SelectIntoNowFullCellCloses(t *testing.T) {
	s := roster.New("2025-01-06 to 2025-01-10", nil)
	target := roster.Cell{Day: 0, Slot: 1}

	fc := &fakeChecker{}
	m := newTestModel(s, fc)
	m.modal = modalStaffSearch
	m.searchTarget = target
	m.searchAll = roster.DefaultLegend()
	m.searchSel = 3

	// The cell filled up while the modal was open.
	fillCell(t, m.sched, target, staff(0), staff(1), staff(2))

	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)

	if m.modal != modalNone {
		t.Fatalf("a refused selection must still close the modal")
	}
	if got := fc.callCount(); got != 0 {
		t.Fatalf("a full target must not trigger an availability request; got %d", got)
	}
	if got := m.sched.Count(target); got != roster.SlotCapacity {
		t.Fatalf("full cell changed: count = %d", got)
	}
}

func TestStaffSearch_EscCloses(t *testing.T) {
	s := roster.New("2025-01-06 to 2025-01-10", nil)
	m := newTestModel(s, nil)
	m.modal = modalStaffSearch
	m.searchAll = roster.DefaultLegend()
	m.searchInput.SetValue("ab")

	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mAny.(appModel)

	if m.modal != modalNone {
		t.Fatalf("esc must close the modal")
	}
	if m.searchInput.Value() != "" {
		t.Fatalf("closing must reset the filter input")
	}
}

func TestStaffSearchFallback_FiltersCachedUnavailable(t *testing.T) {
	s := roster.New("2025-01-06 to 2025-01-10", nil)
	m := newTestModel(s, &fakeChecker{})
	target := roster.Cell{Day: 0, Slot: 0}

	// The cache already knows Amara is booked Monday 9:00 am; with no server
	// listing the built-in roster must come back without her.
	booked := staff(1)
	m.deps.Avail.Put(booked.ID, "Monday", "9:00 am", false)

	cmd := (&m).startStaffSearch(target)
	if cmd == nil {
		t.Fatalf("expected a listing command")
	}
	msg, ok := cmd().(staffListMsg)
	if !ok {
		t.Fatalf("expected a staffListMsg")
	}
	if !msg.fallback {
		t.Fatalf("expected the built-in roster fallback without a client")
	}
	if want := len(roster.DefaultLegend()) - 1; len(msg.staff) != want {
		t.Fatalf("expected %d staff after the cache filter; got %d", want, len(msg.staff))
	}
	for _, st := range msg.staff {
		if st.ID == booked.ID {
			t.Fatalf("cached-unavailable staff must not be offered: %+v", st)
		}
	}
}

func TestStaffListMsg_GuardsStaleAndRetargeted(t *testing.T) {
	s := roster.New("2025-01-06 to 2025-01-10", nil)
	m := newTestModel(s, nil)
	m.modal = modalStaffSearch
	m.searchTarget = roster.Cell{Day: 0, Slot: 1}
	m.searchSeq = 2
	m.searchLoading = true

	// Stale sequence: ignored.
	mAny, _ := m.Update(staffListMsg{seq: 1, target: m.searchTarget, staff: roster.DefaultLegend()})
	m = mAny.(appModel)
	if len(m.searchAll) != 0 || !m.searchLoading {
		t.Fatalf("stale staff listing must be ignored")
	}

	// Wrong target: ignored.
	mAny, _ = m.Update(staffListMsg{seq: 2, target: roster.Cell{Day: 4, Slot: 7}, staff: roster.DefaultLegend()})
	m = mAny.(appModel)
	if len(m.searchAll) != 0 {
		t.Fatalf("retargeted staff listing must be ignored")
	}

	// Matching: applied, with the fallback note when flagged.
	mAny, _ = m.Update(staffListMsg{seq: 2, target: m.searchTarget, staff: roster.DefaultLegend(), fallback: true})
	m = mAny.(appModel)
	if len(m.searchAll) == 0 || m.searchLoading {
		t.Fatalf("matching staff listing must be applied")
	}
	if m.searchNote == "" {
		t.Fatalf("expected a fallback note on the listing")
	}
}
