package habits

import (
	"math"
	"sort"
	"time"
)

// Stats bundles the derived metrics for a single habit. It is computed
// fresh from the habit's history on every request and never persisted.
type Stats struct {
	CurrentStreak     int     `json:"current_streak"`
	LongestStreak     int     `json:"longest_streak"`
	Average           float64 `json:"average"`
	Total             float64 `json:"total"`
	StandardDeviation float64 `json:"standard_deviation"`
	CompletedToday    bool    `json:"completed_today"`
	TodayValue        float64 `json:"today_value"`
	EntryCount        int     `json:"entry_count"`
}

// dateOnly collapses a timestamp to its calendar day, anchored at UTC
// midnight so day arithmetic is immune to DST-length days.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDay parses a day key. Malformed keys report ok=false and are
// skipped by every consumer; a corrupt date is treated as absent data,
// never as an error.
func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return dateOnly(t), true
}

// daysBetween returns the whole calendar days from one day to another.
func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)) / (24 * time.Hour))
}

// completedDays returns the parseable completed dates of a checkbox
// habit, unordered.
func (h *Habit) completedDays() []time.Time {
	days := make([]time.Time, 0, len(h.CompletedDates))
	for _, s := range h.CompletedDates {
		if d, ok := parseDay(s); ok {
			days = append(days, d)
		}
	}
	return days
}

// entryValues returns the parseable entries of a number habit keyed by
// their canonical day string.
func (h *Habit) entryValues() map[string]float64 {
	out := make(map[string]float64, len(h.Entries))
	for s, v := range h.Entries {
		if d, ok := parseDay(s); ok {
			out[d.Format(DayLayout)] = v
		}
	}
	return out
}

// qualifyingDays returns the days that can take part in a streak: every
// completed date for a checkbox habit, and for a number habit only the
// days whose value met the target.
func (h *Habit) qualifyingDays() []time.Time {
	if h.Kind == KindNumber {
		target := h.target()
		var days []time.Time
		for s, v := range h.Entries {
			if v < target {
				continue
			}
			if d, ok := parseDay(s); ok {
				days = append(days, d)
			}
		}
		return days
	}
	return h.completedDays()
}

// CurrentStreak reports the run of consecutive qualifying days ending at
// today. One missing day is tolerated at the head: a streak whose latest
// day is yesterday is still live, so today's log is not required for the
// streak to count. A gap of more than one day breaks it to zero.
func (h *Habit) CurrentStreak(today time.Time) int {
	anchor := dateOnly(today)

	// A day logged past today cannot take part in a run ending today.
	all := h.qualifyingDays()
	days := all[:0]
	for _, d := range all {
		if !d.After(anchor) {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	gap := daysBetween(days[0], anchor)
	if gap > 1 {
		return 0
	}

	streak := 0
	for i, d := range days {
		expected := anchor.AddDate(0, 0, -(gap + i))
		if !d.Equal(expected) {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak reports the longest run of strictly consecutive
// qualifying days anywhere in the history. Any history at all yields at
// least 1.
func (h *Habit) LongestStreak() int {
	days := h.qualifyingDays()
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i-1], days[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// Average is a completion rate in [0,1] for checkbox habits (completions
// over days since creation) and the arithmetic mean of recorded values
// for number habits. Number averages are not normalized by elapsed days.
func (h *Habit) Average(today time.Time) float64 {
	if h.Kind == KindNumber {
		entries := h.entryValues()
		if len(entries) == 0 {
			return 0
		}
		var sum float64
		for _, v := range entries {
			sum += v
		}
		return sum / float64(len(entries))
	}

	elapsed := math.Ceil(today.Sub(h.CreatedAt).Hours() / 24)
	if elapsed < 1 {
		elapsed = 1
	}
	return float64(len(h.completedDays())) / elapsed
}

// Total is the completion count for checkbox habits and the sum of all
// recorded values for number habits.
func (h *Habit) Total() float64 {
	if h.Kind == KindNumber {
		var sum float64
		for _, v := range h.entryValues() {
			sum += v
		}
		return sum
	}
	return float64(len(h.completedDays()))
}

// StandardDeviation is the population standard deviation of a number
// habit's values. Checkbox habits and number habits with fewer than two
// entries report 0.
func (h *Habit) StandardDeviation(today time.Time) float64 {
	if h.Kind != KindNumber {
		return 0
	}
	entries := h.entryValues()
	if len(entries) < 2 {
		return 0
	}
	mean := h.Average(today)
	var sumSq float64
	for _, v := range entries {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(entries)))
}

// CompletedToday reports whether today qualifies: membership for
// checkbox habits, an entry meeting the target for number habits.
func (h *Habit) CompletedToday(today time.Time) bool {
	key := dateOnly(today).Format(DayLayout)
	if h.Kind == KindNumber {
		v, ok := h.Entries[key]
		return ok && v >= h.target()
	}
	for _, s := range h.CompletedDates {
		if s == key {
			return true
		}
	}
	return false
}

// TodayValue is today's recorded value for a number habit, 0 when absent
// and always 0 for checkbox habits.
func (h *Habit) TodayValue(today time.Time) float64 {
	if h.Kind != KindNumber {
		return 0
	}
	return h.Entries[dateOnly(today).Format(DayLayout)]
}

// EntryCount is the number of logged days, unfiltered by target.
func (h *Habit) EntryCount() int {
	if h.Kind == KindNumber {
		return len(h.entryValues())
	}
	return len(h.completedDays())
}

// ComputeStats derives the full metric set in one pass.
func (h *Habit) ComputeStats(today time.Time) Stats {
	return Stats{
		CurrentStreak:     h.CurrentStreak(today),
		LongestStreak:     h.LongestStreak(),
		Average:           h.Average(today),
		Total:             h.Total(),
		StandardDeviation: h.StandardDeviation(today),
		CompletedToday:    h.CompletedToday(today),
		TodayValue:        h.TodayValue(today),
		EntryCount:        h.EntryCount(),
	}
}
