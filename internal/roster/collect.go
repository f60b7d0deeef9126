package roster

import (
	"strings"
	"time"
)

// Assignment is one cell's row in the save payload. Empty cells are included
// with an empty (not null) staff list.
type Assignment struct {
	Day    string     `json:"day"`
	Time   string     `json:"time"`
	CellID string     `json:"cell_id"`
	Staff  []StaffRef `json:"staff"`
}

// CollectAssignments serializes the whole grid, one entry per cell in
// day-major order. The staff slices are copies; mutating the result does not
// touch the schedule.
func (s *Schedule) CollectAssignments() []Assignment {
	if s == nil {
		return nil
	}
	out := make([]Assignment, 0, len(s.Days)*len(TimeSlots))
	for di, d := range s.Days {
		for si, sl := range d.Shifts {
			a := Assignment{
				Day:    d.Day,
				Time:   TimeLabel(si),
				CellID: CellID(Cell{Day: di, Slot: si}),
				Staff:  make([]StaffRef, 0, len(sl.Assistants)),
			}
			a.Staff = append(a.Staff, sl.Assistants...)
			out = append(out, a)
		}
	}
	return out
}

var dateRangeSeparators = []string{" to ", " - ", " — ", " – "}

// ParseDateRange recovers ISO start/end dates from a display date_range
// string such as "2025-01-06 to 2025-01-10". ok is false when the string
// does not carry two parseable dates.
func ParseDateRange(s string) (start, end string, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", false
	}
	for _, sep := range dateRangeSeparators {
		parts := strings.SplitN(s, sep, 2)
		if len(parts) != 2 {
			continue
		}
		a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if isISODate(a) && isISODate(b) {
			return a, b, true
		}
	}
	return "", "", false
}

func isISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
