// Package schedule turns a flat session list into the day and time-slot
// view the schedule and agenda endpoints render. It is pure: no storage,
// no clock, no I/O.
package schedule

import (
	"math"
	"sort"
	"time"

	"conferenceplanner/internal/domain"
)

// Day is one selectable conference day. Offset counts calendar days from
// the first day any session starts on.
type Day struct {
	Offset int    `json:"offset"`
	Label  string `json:"label"`
}

// Slot groups the sessions that start at the same minute.
type Slot struct {
	Start    time.Time         `json:"start_time"`
	Sessions []*domain.Session `json:"sessions"`
}

// View is the grouped rendering of a session list. Days always covers every
// day present in the input; Slots covers the selected day, or all days when
// no valid selection was made.
type View struct {
	Days        []Day  `json:"days"`
	SelectedDay *int   `json:"selected_day"`
	Slots       []Slot `json:"slots"`
}

// BuildView groups sessions by day and start time. requestedDay selects a
// single day by offset; nil or an offset no session falls on leaves the view
// unfiltered. Sessions within a slot keep their input order.
func BuildView(sessions []*domain.Session, requestedDay *int) View {
	view := View{Days: []Day{}, Slots: []Slot{}}
	if len(sessions) == 0 {
		return view
	}

	first := startOfDay(sessions[0].StartTime)
	for _, s := range sessions[1:] {
		if d := startOfDay(s.StartTime); d.Before(first) {
			first = d
		}
	}

	present := make(map[int]struct{})
	var offsets []int
	for _, s := range sessions {
		off := dayOffset(first, s.StartTime)
		if _, ok := present[off]; !ok {
			present[off] = struct{}{}
			offsets = append(offsets, off)
		}
	}
	sort.Ints(offsets)
	for _, off := range offsets {
		view.Days = append(view.Days, Day{
			Offset: off,
			Label:  first.AddDate(0, 0, off).Weekday().String(),
		})
	}

	if requestedDay != nil {
		if _, ok := present[*requestedDay]; ok {
			selected := *requestedDay
			view.SelectedDay = &selected
		}
	}

	slotIndex := make(map[int64]int)
	for _, s := range sessions {
		if view.SelectedDay != nil && dayOffset(first, s.StartTime) != *view.SelectedDay {
			continue
		}
		start := s.StartTime.Truncate(time.Minute)
		idx, ok := slotIndex[start.UnixNano()]
		if !ok {
			idx = len(view.Slots)
			slotIndex[start.UnixNano()] = idx
			view.Slots = append(view.Slots, Slot{Start: start})
		}
		view.Slots[idx].Sessions = append(view.Slots[idx].Sessions, s)
	}
	sort.SliceStable(view.Slots, func(i, j int) bool {
		return view.Slots[i].Start.Before(view.Slots[j].Start)
	})

	return view
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dayOffset counts calendar days between midnights. Rounding keeps the
// count stable across a DST shift, where a day is 23 or 25 hours long.
func dayOffset(first time.Time, t time.Time) int {
	return int(math.Round(startOfDay(t).Sub(first).Hours() / 24))
}
