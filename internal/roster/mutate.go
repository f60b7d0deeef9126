package roster

import (
	"errors"
	"strings"
)

var (
	ErrNoCell           = errors.New("no such cell")
	ErrCellFull         = errors.New("slot already has the maximum number of staff")
	ErrDuplicateStaff   = errors.New("staff member is already assigned to this slot")
	ErrStaffNotAssigned = errors.New("staff member is not assigned to this slot")
	ErrInvalidStaff     = errors.New("staff ref is missing an id")
)

// Assign appends the staff member to the cell. Fullness is checked before the
// duplicate guard, matching the editor's drop ordering.
func (s *Schedule) Assign(c Cell, st StaffRef) error {
	slot, err := s.At(c)
	if err != nil {
		return err
	}
	st.ID = strings.TrimSpace(st.ID)
	if st.ID == "" {
		return ErrInvalidStaff
	}
	if len(slot.Assistants) >= SlotCapacity {
		return ErrCellFull
	}
	if s.Has(c, st.ID) {
		return ErrDuplicateStaff
	}
	slot.Assistants = append(slot.Assistants, st)
	return nil
}

// Remove deletes the staff member from the cell, preserving chip order.
func (s *Schedule) Remove(c Cell, staffID string) error {
	slot, err := s.At(c)
	if err != nil {
		return err
	}
	staffID = strings.TrimSpace(staffID)
	for i, a := range slot.Assistants {
		if a.ID == staffID {
			slot.Assistants = append(slot.Assistants[:i], slot.Assistants[i+1:]...)
			return nil
		}
	}
	return ErrStaffNotAssigned
}

// Move transfers one staff member between cells. The target is validated
// before the source is touched, so a rejected move changes neither cell.
// A same-cell move reports ErrDuplicateStaff and mutates nothing.
func (s *Schedule) Move(from, to Cell, staffID string) error {
	if _, err := s.At(from); err != nil {
		return err
	}
	if _, err := s.At(to); err != nil {
		return err
	}
	staffID = strings.TrimSpace(staffID)
	if !s.Has(from, staffID) {
		return ErrStaffNotAssigned
	}
	if s.Has(to, staffID) {
		return ErrDuplicateStaff
	}
	if s.IsFull(to) {
		return ErrCellFull
	}

	var moved StaffRef
	src, _ := s.At(from)
	for _, a := range src.Assistants {
		if a.ID == staffID {
			moved = a
			break
		}
	}
	if err := s.Remove(from, staffID); err != nil {
		return err
	}
	dst, _ := s.At(to)
	dst.Assistants = append(dst.Assistants, moved)
	return nil
}
