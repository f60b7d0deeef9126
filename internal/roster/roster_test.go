package roster

import (
	"testing"
)

func testSchedule() *Schedule {
	return New("2025-01-06 to 2025-01-10", []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"})
}

func TestAssignCapacity(t *testing.T) {
	t.Parallel()
	s := testSchedule()
	c := Cell{Day: 0, Slot: 0}

	for i, st := range []StaffRef{
		{ID: "816031001", Name: "Daniel Rasheed"},
		{ID: "816031002", Name: "Amara Okafor"},
		{ID: "816031003", Name: "Priya Maharaj"},
	} {
		if err := s.Assign(c, st); err != nil {
			t.Fatalf("assign %d: %v", i, err)
		}
	}
	if got := s.Count(c); got != 3 {
		t.Fatalf("expected 3 assigned; got %d", got)
	}
	if !s.IsFull(c) {
		t.Fatalf("expected cell full at capacity")
	}

	err := s.Assign(c, StaffRef{ID: "816031004", Name: "Marcus Chen"})
	if err != ErrCellFull {
		t.Fatalf("expected ErrCellFull; got %v", err)
	}
	if got := s.Count(c); got != 3 {
		t.Fatalf("rejected assign mutated the cell: count %d", got)
	}
}

func TestAssignDuplicateIsRejected(t *testing.T) {
	t.Parallel()
	s := testSchedule()
	c := Cell{Day: 1, Slot: 2}
	st := StaffRef{ID: "816031001", Name: "Daniel Rasheed"}

	if err := s.Assign(c, st); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := s.Assign(c, st); err != ErrDuplicateStaff {
		t.Fatalf("expected ErrDuplicateStaff; got %v", err)
	}
	if got := s.Count(c); got != 1 {
		t.Fatalf("duplicate assign changed count: %d", got)
	}
}

func TestAssignValidation(t *testing.T) {
	t.Parallel()
	s := testSchedule()

	if err := s.Assign(Cell{Day: 9, Slot: 0}, StaffRef{ID: "x"}); err != ErrNoCell {
		t.Fatalf("expected ErrNoCell for bad day; got %v", err)
	}
	if err := s.Assign(Cell{Day: 0, Slot: 8}, StaffRef{ID: "x"}); err != ErrNoCell {
		t.Fatalf("expected ErrNoCell for bad slot; got %v", err)
	}
	if err := s.Assign(Cell{Day: 0, Slot: 0}, StaffRef{ID: "  "}); err != ErrInvalidStaff {
		t.Fatalf("expected ErrInvalidStaff; got %v", err)
	}
}

func TestMoveTransfersChip(t *testing.T) {
	t.Parallel()
	s := testSchedule()
	from := Cell{Day: 0, Slot: 0}
	to := Cell{Day: 2, Slot: 5}
	st := StaffRef{ID: "816031001", Name: "Daniel Rasheed"}

	if err := s.Assign(from, st); err != nil {
		t.Fatalf("assign: %v", err)
	}
	before := s.TotalAssigned()

	if err := s.Move(from, to, st.ID); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := s.Count(from); got != 0 {
		t.Fatalf("source count after move: %d", got)
	}
	if got := s.Count(to); got != 1 {
		t.Fatalf("target count after move: %d", got)
	}
	if got := s.TotalAssigned(); got != before {
		t.Fatalf("total changed across move: before %d after %d", before, got)
	}
	if !s.Has(to, st.ID) {
		t.Fatalf("moved chip missing from target")
	}
}

func TestMoveRejectedLeavesBothCellsUntouched(t *testing.T) {
	t.Parallel()
	s := testSchedule()
	from := Cell{Day: 0, Slot: 0}
	full := Cell{Day: 1, Slot: 0}

	if err := s.Assign(from, StaffRef{ID: "816031009", Name: "Nina Gupta"}); err != nil {
		t.Fatalf("assign source: %v", err)
	}
	for _, st := range DefaultLegend()[:3] {
		if err := s.Assign(full, st); err != nil {
			t.Fatalf("fill target: %v", err)
		}
	}
	before := s.TotalAssigned()

	if err := s.Move(from, full, "816031009"); err != ErrCellFull {
		t.Fatalf("expected ErrCellFull; got %v", err)
	}
	if got := s.Count(from); got != 1 {
		t.Fatalf("rejected move touched source: %d", got)
	}
	if got := s.Count(full); got != 3 {
		t.Fatalf("rejected move touched target: %d", got)
	}
	if got := s.TotalAssigned(); got != before {
		t.Fatalf("rejected move changed total: before %d after %d", before, got)
	}
}

func TestMoveSameCellIsDuplicate(t *testing.T) {
	t.Parallel()
	s := testSchedule()
	c := Cell{Day: 3, Slot: 4}
	if err := s.Assign(c, StaffRef{ID: "816031001", Name: "Daniel Rasheed"}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := s.Move(c, c, "816031001"); err != ErrDuplicateStaff {
		t.Fatalf("expected ErrDuplicateStaff; got %v", err)
	}
	if got := s.Count(c); got != 1 {
		t.Fatalf("same-cell move changed count: %d", got)
	}
}

func TestMoveMissingStaff(t *testing.T) {
	t.Parallel()
	s := testSchedule()
	err := s.Move(Cell{Day: 0, Slot: 0}, Cell{Day: 0, Slot: 1}, "816031001")
	if err != ErrStaffNotAssigned {
		t.Fatalf("expected ErrStaffNotAssigned; got %v", err)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()
	s := testSchedule()
	c := Cell{Day: 0, Slot: 0}
	a := StaffRef{ID: "816031001", Name: "Daniel Rasheed"}
	b := StaffRef{ID: "816031002", Name: "Amara Okafor"}

	if err := s.Assign(c, a); err != nil {
		t.Fatalf("assign a: %v", err)
	}
	if err := s.Assign(c, b); err != nil {
		t.Fatalf("assign b: %v", err)
	}
	if err := s.Remove(c, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.Has(c, a.ID) {
		t.Fatalf("removed chip still present")
	}
	if !s.Has(c, b.ID) {
		t.Fatalf("remove dropped the wrong chip")
	}
	if err := s.Remove(c, a.ID); err != ErrStaffNotAssigned {
		t.Fatalf("expected ErrStaffNotAssigned; got %v", err)
	}
}

func TestNormalizeRepairsDecodedDocument(t *testing.T) {
	t.Parallel()
	s := &Schedule{
		Days: []DayPlan{
			{
				Day: "Monday",
				Shifts: []ShiftSlot{
					{Assistants: []StaffRef{
						{ID: "1", Name: "A"},
						{ID: "1", Name: "A again"},
						{ID: "2", Name: "B"},
						{ID: "3", Name: "C"},
						{ID: "4", Name: "over cap"},
					}},
				},
			},
		},
	}
	s.Normalize()

	if got := len(s.Days[0].Shifts); got != len(TimeSlots) {
		t.Fatalf("expected %d slots after pad; got %d", len(TimeSlots), got)
	}
	got := s.Days[0].Shifts[0].Assistants
	if len(got) != SlotCapacity {
		t.Fatalf("expected %d assistants after repair; got %d: %v", SlotCapacity, len(got), got)
	}
	if got[0].ID != "1" || got[1].ID != "2" || got[2].ID != "3" {
		t.Fatalf("unexpected assistants after dedupe: %v", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()
	s := testSchedule()
	c := Cell{Day: 0, Slot: 0}
	if err := s.Assign(c, StaffRef{ID: "816031001", Name: "Daniel Rasheed"}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	cp := s.Clone()
	if !s.Equal(cp) {
		t.Fatalf("clone not equal to source")
	}
	if err := cp.Assign(c, StaffRef{ID: "816031002", Name: "Amara Okafor"}); err != nil {
		t.Fatalf("assign clone: %v", err)
	}
	if s.Count(c) != 1 {
		t.Fatalf("mutating clone leaked into source: count %d", s.Count(c))
	}
	if s.Equal(cp) {
		t.Fatalf("schedules should differ after clone mutation")
	}
}

func TestSummaryOrdersByLoad(t *testing.T) {
	t.Parallel()
	s := testSchedule()
	daniel := StaffRef{ID: "816031001", Name: "Daniel Rasheed"}
	amara := StaffRef{ID: "816031002", Name: "Amara Okafor"}
	priya := StaffRef{ID: "816031003", Name: "Priya Maharaj"}

	for slot := 0; slot < 3; slot++ {
		if err := s.Assign(Cell{Day: 0, Slot: slot}, daniel); err != nil {
			t.Fatalf("assign daniel: %v", err)
		}
	}
	if err := s.Assign(Cell{Day: 1, Slot: 0}, amara); err != nil {
		t.Fatalf("assign amara: %v", err)
	}
	if err := s.Assign(Cell{Day: 1, Slot: 1}, priya); err != nil {
		t.Fatalf("assign priya: %v", err)
	}

	sum := s.Summary()
	if len(sum) != 3 {
		t.Fatalf("expected 3 entries; got %d: %v", len(sum), sum)
	}
	if sum[0].Staff.ID != daniel.ID || sum[0].Slots != 3 {
		t.Fatalf("expected daniel first with 3 slots; got %+v", sum[0])
	}
	// Equal load falls back to name order.
	if sum[1].Staff.Name != "Amara Okafor" || sum[2].Staff.Name != "Priya Maharaj" {
		t.Fatalf("tiebreak order wrong: %+v then %+v", sum[1], sum[2])
	}
}
