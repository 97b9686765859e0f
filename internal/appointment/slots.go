package appointment

import "time"

// TimeSlot is one half-hour interval from the clinic's fixed daily grid.
// The interval is closed at the start and open at the end.
type TimeSlot struct {
	Start string // HH:MM
	End   string // HH:MM
}

func (s TimeSlot) String() string { return s.Start + "-" + s.End }

// Slots is the universal clinic schedule: 26 half-hour slots spanning
// 10:00 to 23:00. It is shared by every doctor and never changes at runtime.
var Slots = []TimeSlot{
	{"10:00", "10:30"}, {"10:30", "11:00"}, {"11:00", "11:30"}, {"11:30", "12:00"},
	{"12:00", "12:30"}, {"12:30", "13:00"}, {"13:00", "13:30"}, {"13:30", "14:00"},
	{"14:00", "14:30"}, {"14:30", "15:00"}, {"15:00", "15:30"}, {"15:30", "16:00"},
	{"16:00", "16:30"}, {"16:30", "17:00"}, {"17:00", "17:30"}, {"17:30", "18:00"},
	{"18:00", "18:30"}, {"18:30", "19:00"}, {"19:00", "19:30"}, {"19:30", "20:00"},
	{"20:00", "20:30"}, {"20:30", "21:00"}, {"21:00", "21:30"}, {"21:30", "22:00"},
	{"22:00", "22:30"}, {"22:30", "23:00"},
}

// SlotFromString resolves a "HH:MM-HH:MM" value against the fixed grid.
// Membership is by value, so a slot that merely looks plausible but is not
// part of the grid does not resolve.
func SlotFromString(v string) (TimeSlot, bool) {
	for _, s := range Slots {
		if s.String() == v {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// instantOn anchors a wall-clock HH:MM onto the given calendar day.
func instantOn(date time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// conflictCandidates returns every fixed slot whose half-open window
// [start, end) contains the requested slot's start or the requested slot's
// end on the given day. Since requests always come from the grid, this is
// the requested slot itself plus, when one exists, the slot starting exactly
// where the requested one ends: the end instant of 10:00-10:30 lands inside
// [10:30, 11:00).
func conflictCandidates(date time.Time, req TimeSlot) []TimeSlot {
	reqStart := instantOn(date, req.Start)
	reqEnd := instantOn(date, req.End)

	var out []TimeSlot
	for _, s := range Slots {
		start := instantOn(date, s.Start)
		end := instantOn(date, s.End)
		if within(reqStart, start, end) || within(reqEnd, start, end) {
			out = append(out, s)
		}
	}
	return out
}

// within reports whether t falls inside [start, end).
func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
