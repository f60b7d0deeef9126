package roster

import (
	"fmt"
	"strings"
)

// SlotCapacity is the maximum number of staff assignable to one slot.
const SlotCapacity = 3

// MaxDays caps the grid width; schedules run Monday through Friday at most.
const MaxDays = 5

// TimeSlots holds the fixed hourly labels; every DayPlan's Shifts slice is
// aligned positionally with this list.
var TimeSlots = []string{
	"9:00 am",
	"10:00 am",
	"11:00 am",
	"12:00 pm",
	"1:00 pm",
	"2:00 pm",
	"3:00 pm",
	"4:00 pm",
}

// DefaultDays is used when building an empty schedule without server labels.
var DefaultDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// StaffRef identifies one staff member assigned to one slot.
type StaffRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ShiftSlot holds the 0..3 staff assigned to one (day, time) cell.
type ShiftSlot struct {
	Assistants []StaffRef `json:"assistants"`
}

type DayPlan struct {
	Day    string      `json:"day"`
	Shifts []ShiftSlot `json:"shifts"`
}

// Schedule is the canonical in-memory document. It is replaced wholesale on
// each fetch and mutated in place by editor operations; rendering is always a
// projection of this value, never the other way around.
type Schedule struct {
	ScheduleID int64     `json:"schedule_id"`
	DateRange  string    `json:"date_range"`
	Published  bool      `json:"is_published"`
	Days       []DayPlan `json:"days"`
}

// Cell addresses one slot by day column and time row.
type Cell struct {
	Day  int
	Slot int
}

// New builds an empty schedule with one DayPlan per label, each holding
// len(TimeSlots) empty slots.
func New(dateRange string, days []string) *Schedule {
	if len(days) == 0 {
		days = DefaultDays
	}
	if len(days) > MaxDays {
		days = days[:MaxDays]
	}
	s := &Schedule{DateRange: dateRange}
	for _, d := range days {
		s.Days = append(s.Days, DayPlan{Day: d, Shifts: make([]ShiftSlot, len(TimeSlots))})
	}
	return s
}

// Normalize repairs a freshly decoded schedule: clamps to MaxDays, pads or
// truncates every day to len(TimeSlots) slots, and drops over-capacity and
// duplicate assistants. Server documents are trusted but not blindly.
func (s *Schedule) Normalize() {
	if s == nil {
		return
	}
	if len(s.Days) > MaxDays {
		s.Days = s.Days[:MaxDays]
	}
	for di := range s.Days {
		day := &s.Days[di]
		for len(day.Shifts) < len(TimeSlots) {
			day.Shifts = append(day.Shifts, ShiftSlot{})
		}
		if len(day.Shifts) > len(TimeSlots) {
			day.Shifts = day.Shifts[:len(TimeSlots)]
		}
		for si := range day.Shifts {
			day.Shifts[si].Assistants = dedupeAssistants(day.Shifts[si].Assistants)
		}
	}
}

func dedupeAssistants(in []StaffRef) []StaffRef {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, a := range in {
		id := strings.TrimSpace(a.ID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		a.ID = id
		out = append(out, a)
		if len(out) == SlotCapacity {
			break
		}
	}
	return out
}

func (s *Schedule) validCell(c Cell) bool {
	if s == nil || c.Day < 0 || c.Day >= len(s.Days) {
		return false
	}
	return c.Slot >= 0 && c.Slot < len(s.Days[c.Day].Shifts)
}

// At returns the slot for a cell, or ErrNoCell when out of range.
func (s *Schedule) At(c Cell) (*ShiftSlot, error) {
	if !s.validCell(c) {
		return nil, ErrNoCell
	}
	return &s.Days[c.Day].Shifts[c.Slot], nil
}

// Count reports the number of staff in a cell; 0 for out-of-range cells.
func (s *Schedule) Count(c Cell) int {
	if !s.validCell(c) {
		return 0
	}
	return len(s.Days[c.Day].Shifts[c.Slot].Assistants)
}

func (s *Schedule) IsFull(c Cell) bool {
	return s.Count(c) >= SlotCapacity
}

// Has reports whether the staff id is already assigned in the cell.
func (s *Schedule) Has(c Cell, staffID string) bool {
	if !s.validCell(c) {
		return false
	}
	staffID = strings.TrimSpace(staffID)
	for _, a := range s.Days[c.Day].Shifts[c.Slot].Assistants {
		if a.ID == staffID {
			return true
		}
	}
	return false
}

// TotalAssigned counts chips across the whole grid.
func (s *Schedule) TotalAssigned() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, d := range s.Days {
		for _, sl := range d.Shifts {
			n += len(sl.Assistants)
		}
	}
	return n
}

// TimeLabel returns the hour label for a slot index, or "" when out of range.
func TimeLabel(slot int) string {
	if slot < 0 || slot >= len(TimeSlots) {
		return ""
	}
	return TimeSlots[slot]
}

// SlotIndex resolves a time label back to its row index, -1 when unknown.
// Matching is case-insensitive and whitespace-tolerant.
func SlotIndex(label string) int {
	label = strings.ToLower(strings.TrimSpace(label))
	for i, t := range TimeSlots {
		if t == label {
			return i
		}
	}
	return -1
}

// CellID returns the stable identifier used in save payloads: "cell-<day>-<slot>".
func CellID(c Cell) string {
	return fmt.Sprintf("cell-%d-%d", c.Day, c.Slot)
}

// Clone deep-copies the schedule. Used for dirty tracking and draft snapshots.
func (s *Schedule) Clone() *Schedule {
	if s == nil {
		return nil
	}
	out := &Schedule{
		ScheduleID: s.ScheduleID,
		DateRange:  s.DateRange,
		Published:  s.Published,
		Days:       make([]DayPlan, len(s.Days)),
	}
	for di, d := range s.Days {
		nd := DayPlan{Day: d.Day, Shifts: make([]ShiftSlot, len(d.Shifts))}
		for si, sl := range d.Shifts {
			if len(sl.Assistants) > 0 {
				nd.Shifts[si].Assistants = append([]StaffRef(nil), sl.Assistants...)
			}
		}
		out.Days[di] = nd
	}
	return out
}

// Equal reports whether two schedules hold the same assignments and metadata.
func (s *Schedule) Equal(o *Schedule) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.ScheduleID != o.ScheduleID || s.DateRange != o.DateRange || s.Published != o.Published {
		return false
	}
	if len(s.Days) != len(o.Days) {
		return false
	}
	for di := range s.Days {
		if s.Days[di].Day != o.Days[di].Day || len(s.Days[di].Shifts) != len(o.Days[di].Shifts) {
			return false
		}
		for si := range s.Days[di].Shifts {
			a, b := s.Days[di].Shifts[si].Assistants, o.Days[di].Shifts[si].Assistants
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
		}
	}
	return true
}
