package domain

// SlotGroupName display band of slots
type SlotGroupName string

const (
	GroupMorning   SlotGroupName = "Morning"
	GroupAfternoon SlotGroupName = "Afternoon"
	GroupEvening   SlotGroupName = "Evening"
	GroupNight     SlotGroupName = "Night"
)

// GroupOrder presentation order of groups
var GroupOrder = []SlotGroupName{GroupMorning, GroupAfternoon, GroupEvening, GroupNight}

// SlotGroup named bucket of slots sharing a display band
type SlotGroup struct {
	Name  SlotGroupName
	Slots []Slot
}

// GroupForHour returns the band an hour belongs to
func GroupForHour(hour int) SlotGroupName {
	switch {
	case hour >= 7 && hour <= 11:
		return GroupMorning
	case hour >= 12 && hour <= 16:
		return GroupAfternoon
	case hour >= 17 && hour <= 21:
		return GroupEvening
	default:
		return GroupNight
	}
}

// GroupSlots partitions slots into the four bands, keeping input order inside each band.
// Empty bands are still returned so callers always get four groups.
func GroupSlots(slots []Slot) []SlotGroup {
	index := make(map[SlotGroupName]int, len(GroupOrder))
	groups := make([]SlotGroup, len(GroupOrder))
	for i, name := range GroupOrder {
		groups[i] = SlotGroup{Name: name, Slots: []Slot{}}
		index[name] = i
	}

	for _, s := range slots {
		i := index[GroupForHour(s.Hour)]
		groups[i].Slots = append(groups[i].Slots, s)
	}

	return groups
}
