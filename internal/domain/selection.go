package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidSnapshot returned when a stored selection breaks selection invariants
var ErrInvalidSnapshot = errors.New("domain: invalid selection snapshot")

// Selection slots a session is about to book, for exactly one date.
// Members are available, unique by hour and kept in chronological order.
type Selection struct {
	date  string
	slots []Slot
}

// NewSelection creates an empty selection for a date
func NewSelection(date string) *Selection {
	return &Selection{date: date}
}

// Date returns the date the selection belongs to
func (s *Selection) Date() string {
	return s.date
}

// SetDate switches the selection to another date, clearing it when the date changes
func (s *Selection) SetDate(date string) {
	if s.date == date {
		return
	}
	s.date = date
	s.Clear()
}

// Toggle adds an available slot or removes it if already selected.
// Non-available slots are ignored. A slot of another date switches the selection to that date first.
// Returns true if the selection changed.
func (s *Selection) Toggle(slot Slot) bool {
	if !slot.IsAvailable() {
		return false
	}

	if slot.Date != s.date {
		s.SetDate(slot.Date)
	}

	for i, selected := range s.slots {
		if selected.ID == slot.ID {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return true
		}
	}

	s.slots = append(s.slots, slot)
	sort.SliceStable(s.slots, func(i, j int) bool {
		return s.slots[i].SortKey() < s.slots[j].SortKey()
	})
	return true
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.slots = nil
}

// TotalPrice sum of selected slot prices
func (s *Selection) TotalPrice() int {
	total := 0
	for _, slot := range s.slots {
		total += slot.Price
	}
	return total
}

// IsSelected membership test by slot id
func (s *Selection) IsSelected(slotID string) bool {
	for _, slot := range s.slots {
		if slot.ID == slotID {
			return true
		}
	}
	return false
}

// Slots returns a copy of selected slots in chronological order
func (s *Selection) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Hours returns selected hours in chronological order
func (s *Selection) Hours() []int {
	hours := make([]int, 0, len(s.slots))
	for _, slot := range s.slots {
		hours = append(hours, slot.Hour)
	}
	return hours
}

func (s *Selection) IsEmpty() bool {
	return len(s.slots) == 0
}

func (s *Selection) Len() int {
	return len(s.slots)
}

type selectionSnapshot struct {
	Date  string         `json:"date"`
	Slots []slotSnapshot `json:"slots"`
}

type slotSnapshot struct {
	ID         string `json:"id"`
	Hour       int    `json:"hour"`
	StartLabel string `json:"start_label"`
	EndLabel   string `json:"end_label"`
	TimeRange  string `json:"time_range"`
	Price      int    `json:"price"`
	Status     string `json:"status"`
	Date       string `json:"date"`
	Group      string `json:"group"`
}

// Snapshot serializes the selection for a session store
func (s *Selection) Snapshot() ([]byte, error) {
	snap := selectionSnapshot{Date: s.date, Slots: make([]slotSnapshot, 0, len(s.slots))}
	for _, slot := range s.slots {
		snap.Slots = append(snap.Slots, slotSnapshot{
			ID:         slot.ID,
			Hour:       slot.Hour,
			StartLabel: slot.StartLabel,
			EndLabel:   slot.EndLabel,
			TimeRange:  slot.TimeRange,
			Price:      slot.Price,
			Status:     string(slot.Status),
			Date:       slot.Date,
			Group:      string(slot.Group),
		})
	}
	return json.Marshal(snap)
}

// RestoreSelection rebuilds a selection from Snapshot output, validating its invariants
func RestoreSelection(data []byte) (*Selection, error) {
	var snap selectionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	sel := NewSelection(snap.Date)
	seen := make(map[int]struct{}, len(snap.Slots))
	for _, ss := range snap.Slots {
		if ss.Date != snap.Date {
			return nil, fmt.Errorf("%w: slot %s belongs to %s, selection date is %s", ErrInvalidSnapshot, ss.ID, ss.Date, snap.Date)
		}
		if !IsValidHour(ss.Hour) {
			return nil, fmt.Errorf("%w: hour %d is outside the cycle", ErrInvalidSnapshot, ss.Hour)
		}
		if _, dup := seen[ss.Hour]; dup {
			return nil, fmt.Errorf("%w: duplicate hour %d", ErrInvalidSnapshot, ss.Hour)
		}
		seen[ss.Hour] = struct{}{}

		sel.slots = append(sel.slots, Slot{
			ID:         ss.ID,
			Hour:       ss.Hour,
			StartLabel: ss.StartLabel,
			EndLabel:   ss.EndLabel,
			TimeRange:  ss.TimeRange,
			Price:      ss.Price,
			Status:     SlotStatus(ss.Status),
			Date:       ss.Date,
			Group:      SlotGroupName(ss.Group),
		})
	}

	sort.SliceStable(sel.slots, func(i, j int) bool {
		return sel.slots[i].SortKey() < sel.slots[j].SortKey()
	})

	return sel, nil
}
