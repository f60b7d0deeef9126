package roster

import (
	"testing"
)

func TestCollectAssignmentsCoversEveryCell(t *testing.T) {
	t.Parallel()
	s := New("", []string{"Monday", "Tuesday"})
	daniel := StaffRef{ID: "816031001", Name: "Daniel Rasheed"}
	amara := StaffRef{ID: "816031002", Name: "Amara Okafor"}

	if err := s.Assign(Cell{Day: 0, Slot: 0}, daniel); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := s.Assign(Cell{Day: 0, Slot: 0}, amara); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := s.Assign(Cell{Day: 1, Slot: 7}, daniel); err != nil {
		t.Fatalf("assign: %v", err)
	}

	got := s.CollectAssignments()
	if want := 2 * len(TimeSlots); len(got) != want {
		t.Fatalf("expected %d entries (one per cell, empty included); got %d", want, len(got))
	}

	// Order-independent lookup by cell id.
	byCell := make(map[string]Assignment, len(got))
	for _, a := range got {
		if _, dup := byCell[a.CellID]; dup {
			t.Fatalf("duplicate cell id %q in output", a.CellID)
		}
		byCell[a.CellID] = a
	}

	first, ok := byCell["cell-0-0"]
	if !ok {
		t.Fatalf("missing cell-0-0; cells=%v", keys(byCell))
	}
	if first.Day != "Monday" || first.Time != "9:00 am" {
		t.Fatalf("unexpected labels for cell-0-0: %+v", first)
	}
	if len(first.Staff) != 2 {
		t.Fatalf("expected 2 staff in cell-0-0; got %v", first.Staff)
	}
	wantStaff := map[string]string{daniel.ID: daniel.Name, amara.ID: amara.Name}
	for _, st := range first.Staff {
		if wantStaff[st.ID] != st.Name {
			t.Fatalf("unexpected staff pair %+v", st)
		}
		delete(wantStaff, st.ID)
	}
	if len(wantStaff) != 0 {
		t.Fatalf("missing staff pairs: %v", wantStaff)
	}

	last := byCell["cell-1-7"]
	if last.Time != "4:00 pm" || len(last.Staff) != 1 || last.Staff[0] != daniel {
		t.Fatalf("unexpected cell-1-7 entry: %+v", last)
	}

	empty := byCell["cell-1-0"]
	if empty.Staff == nil || len(empty.Staff) != 0 {
		t.Fatalf("empty cell should serialize an empty, non-nil staff list; got %#v", empty.Staff)
	}

	// The serialized copy must not alias the document.
	first.Staff[0].Name = "mutated"
	if s.Days[0].Shifts[0].Assistants[0].Name == "mutated" {
		t.Fatalf("CollectAssignments aliases schedule memory")
	}
}

func keys(m map[string]Assignment) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestParseDateRange(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in         string
		start, end string
		ok         bool
	}{
		{"2025-01-06 to 2025-01-10", "2025-01-06", "2025-01-10", true},
		{"2025-01-06 - 2025-01-10", "2025-01-06", "2025-01-10", true},
		{"  2025-01-06 to 2025-01-10  ", "2025-01-06", "2025-01-10", true},
		{"Jan 6 to Jan 10", "", "", false},
		{"2025-01-06", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		start, end, ok := ParseDateRange(tc.in)
		if ok != tc.ok || start != tc.start || end != tc.end {
			t.Fatalf("ParseDateRange(%q) = %q, %q, %v; want %q, %q, %v",
				tc.in, start, end, ok, tc.start, tc.end, tc.ok)
		}
	}
}

func TestSlotIndexRoundTrip(t *testing.T) {
	t.Parallel()
	for i, label := range TimeSlots {
		if got := SlotIndex(label); got != i {
			t.Fatalf("SlotIndex(%q) = %d; want %d", label, got, i)
		}
	}
	if got := SlotIndex("9:00 AM"); got != 0 {
		t.Fatalf("case-insensitive lookup failed: %d", got)
	}
	if got := SlotIndex("5:00 pm"); got != -1 {
		t.Fatalf("unknown label should be -1; got %d", got)
	}
}
