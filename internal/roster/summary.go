package roster

import "sort"

// StaffHours aggregates how many slots one staff member holds across the grid.
type StaffHours struct {
	Staff StaffRef
	Slots int
}

// Summary tallies assigned slots per staff member, most-loaded first, name as
// the tiebreak. Computed purely from the document; one slot equals one hour.
func (s *Schedule) Summary() []StaffHours {
	if s == nil {
		return nil
	}
	byID := make(map[string]*StaffHours)
	var order []string
	for _, d := range s.Days {
		for _, sl := range d.Shifts {
			for _, a := range sl.Assistants {
				h, ok := byID[a.ID]
				if !ok {
					h = &StaffHours{Staff: a}
					byID[a.ID] = h
					order = append(order, a.ID)
				}
				h.Slots++
			}
		}
	}
	out := make([]StaffHours, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Slots != out[j].Slots {
			return out[i].Slots > out[j].Slots
		}
		return out[i].Staff.Name < out[j].Staff.Name
	})
	return out
}
