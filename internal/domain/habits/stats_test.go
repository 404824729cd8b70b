package habits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// anchor is the fixed "today" used across tests so results never depend
// on the wall clock.
var anchor = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

// day returns the day key at the given offset from the anchor.
func day(offset int) string {
	return anchor.AddDate(0, 0, offset).Format(DayLayout)
}

func checkboxHabit(offsets ...int) *Habit {
	h := &Habit{Kind: KindCheckbox, CreatedAt: anchor.AddDate(0, 0, -30)}
	for _, o := range offsets {
		h.CompletedDates = append(h.CompletedDates, day(o))
	}
	h.normalize()
	return h
}

func numberHabit(target float64, entries map[int]float64) *Habit {
	h := &Habit{
		Kind:      KindNumber,
		Target:    target,
		Entries:   map[string]float64{},
		CreatedAt: anchor.AddDate(0, 0, -30),
	}
	for o, v := range entries {
		h.Entries[day(o)] = v
	}
	h.normalize()
	return h
}

func TestCurrentStreakCheckbox(t *testing.T) {
	tests := []struct {
		name     string
		offsets  []int
		today    time.Time
		expected int
	}{
		{
			name:     "empty history",
			offsets:  nil,
			today:    anchor,
			expected: 0,
		},
		{
			name:     "three consecutive days ending today",
			offsets:  []int{0, -1, -2},
			today:    anchor,
			expected: 3,
		},
		{
			name:     "streak still live when today is not logged yet",
			offsets:  []int{-1, -2, -3},
			today:    anchor,
			expected: 3,
		},
		{
			name:     "two day gap breaks the streak",
			offsets:  []int{-2, -3, -4},
			today:    anchor,
			expected: 0,
		},
		{
			name:     "hole inside the run stops the walk",
			offsets:  []int{0, -1, -3, -4},
			today:    anchor,
			expected: 2,
		},
		{
			name:     "single completion today",
			offsets:  []int{0},
			today:    anchor,
			expected: 1,
		},
		{
			name:     "same dates seen two days later",
			offsets:  []int{0, -1, -2},
			today:    anchor.AddDate(0, 0, 2),
			expected: 0,
		},
		{
			name:     "future dates are ignored",
			offsets:  []int{3, 0, -1},
			today:    anchor,
			expected: 2,
		},
		{
			name:     "history entirely in the future",
			offsets:  []int{1, 2},
			today:    anchor,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := checkboxHabit(tt.offsets...)
			assert.Equal(t, tt.expected, h.CurrentStreak(tt.today))
		})
	}
}

func TestCurrentStreakNumber(t *testing.T) {
	tests := []struct {
		name     string
		target   float64
		entries  map[int]float64
		expected int
	}{
		{
			name:     "no entries",
			target:   10,
			entries:  nil,
			expected: 0,
		},
		{
			name:     "below target entry breaks the chain",
			target:   10,
			entries:  map[int]float64{-2: 12, -1: 8, 0: 15},
			expected: 1,
		},
		{
			name:     "all entries meet target",
			target:   10,
			entries:  map[int]float64{-2: 10, -1: 11, 0: 15},
			expected: 3,
		},
		{
			name:     "only below target entries",
			target:   10,
			entries:  map[int]float64{0: 5, -1: 3},
			expected: 0,
		},
		{
			name:     "missing target defaults to one",
			target:   0,
			entries:  map[int]float64{0: 1, -1: 2},
			expected: 2,
		},
		{
			name:     "future entries are ignored",
			target:   10,
			entries:  map[int]float64{1: 12, 0: 15},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := numberHabit(tt.target, tt.entries)
			assert.Equal(t, tt.expected, h.CurrentStreak(anchor))
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name     string
		habit    *Habit
		expected int
	}{
		{
			name:     "empty history returns 0",
			habit:    checkboxHabit(),
			expected: 0,
		},
		{
			name:     "single day returns 1",
			habit:    checkboxHabit(-20),
			expected: 1,
		},
		{
			name:     "longest run is in the past",
			habit:    checkboxHabit(0, -5, -6, -7, -8, -20),
			expected: 4,
		},
		{
			name:     "number habit counts only qualifying days",
			habit:    numberHabit(10, map[int]float64{-1: 12, -2: 8, -3: 11, -4: 10}),
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.habit.LongestStreak())
		})
	}
}

func TestLongestStreakCoversCurrent(t *testing.T) {
	habitsUnderTest := []*Habit{
		checkboxHabit(0, -1, -2),
		checkboxHabit(-1, -4, -5),
		numberHabit(10, map[int]float64{0: 15, -1: 8, -2: 12}),
		checkboxHabit(),
	}

	for _, h := range habitsUnderTest {
		assert.GreaterOrEqual(t, h.LongestStreak(), h.CurrentStreak(anchor))
	}
}

func TestAverage(t *testing.T) {
	t.Run("checkbox completion rate since creation", func(t *testing.T) {
		h := checkboxHabit(0, -1, -2, -3)
		h.CreatedAt = anchor.AddDate(0, 0, -10)
		assert.InDelta(t, 0.4, h.Average(anchor), 1e-9)
	})

	t.Run("checkbox rate stays within unit interval", func(t *testing.T) {
		h := checkboxHabit(0)
		h.CreatedAt = anchor // created today
		avg := h.Average(anchor)
		assert.GreaterOrEqual(t, avg, 0.0)
		assert.LessOrEqual(t, avg, 1.0)
	})

	t.Run("number mean of entry values", func(t *testing.T) {
		h := numberHabit(10, map[int]float64{-2: 12, -1: 8, 0: 15})
		assert.InDelta(t, 11.666, h.Average(anchor), 0.01)
	})

	t.Run("number equals total over entry count", func(t *testing.T) {
		h := numberHabit(10, map[int]float64{-2: 12, -1: 8, 0: 15})
		assert.InDelta(t, h.Total()/float64(h.EntryCount()), h.Average(anchor), 1e-9)
	})

	t.Run("empty histories average zero", func(t *testing.T) {
		assert.Zero(t, checkboxHabit().Average(anchor))
		assert.Zero(t, numberHabit(10, nil).Average(anchor))
	})
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 4.0, checkboxHabit(0, -1, -2, -3).Total())
	assert.Equal(t, 35.0, numberHabit(10, map[int]float64{-2: 12, -1: 8, 0: 15}).Total())
	assert.Zero(t, checkboxHabit().Total())
}

func TestStandardDeviation(t *testing.T) {
	tests := []struct {
		name     string
		habit    *Habit
		expected float64
	}{
		{
			name:     "population stddev of number entries",
			habit:    numberHabit(10, map[int]float64{-2: 12, -1: 8, 0: 15}),
			expected: 2.87,
		},
		{
			name:     "single entry yields 0",
			habit:    numberHabit(10, map[int]float64{0: 12}),
			expected: 0,
		},
		{
			name:     "checkbox habits always 0",
			habit:    checkboxHabit(0, -1, -2),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.habit.StandardDeviation(anchor), 0.01)
		})
	}
}

func TestCompletedTodayAndTodayValue(t *testing.T) {
	t.Run("checkbox membership", func(t *testing.T) {
		done := checkboxHabit(0, -1)
		assert.True(t, done.CompletedToday(anchor))
		assert.Zero(t, done.TodayValue(anchor))

		missed := checkboxHabit(-1)
		assert.False(t, missed.CompletedToday(anchor))
	})

	t.Run("number entry against target", func(t *testing.T) {
		h := numberHabit(10, map[int]float64{0: 12})
		assert.True(t, h.CompletedToday(anchor))
		assert.Equal(t, 12.0, h.TodayValue(anchor))

		below := numberHabit(10, map[int]float64{0: 7})
		assert.False(t, below.CompletedToday(anchor))
		assert.Equal(t, 7.0, below.TodayValue(anchor))

		empty := numberHabit(10, nil)
		assert.False(t, empty.CompletedToday(anchor))
		assert.Zero(t, empty.TodayValue(anchor))
	})
}

func TestEntryCountIgnoresTarget(t *testing.T) {
	h := numberHabit(10, map[int]float64{-2: 12, -1: 8, 0: 15})
	assert.Equal(t, 3, h.EntryCount())
	assert.Equal(t, 2, checkboxHabit(0, -5).EntryCount())
}

func TestEmptyHistoryYieldsAllZeroStats(t *testing.T) {
	for _, h := range []*Habit{checkboxHabit(), numberHabit(10, nil)} {
		stats := h.ComputeStats(anchor)
		assert.Zero(t, stats.CurrentStreak)
		assert.Zero(t, stats.LongestStreak)
		assert.Zero(t, stats.Average)
		assert.Zero(t, stats.Total)
		assert.Zero(t, stats.StandardDeviation)
		assert.Zero(t, stats.EntryCount)
		assert.False(t, stats.CompletedToday)
	}
}

func TestComputeStats(t *testing.T) {
	t.Run("checkbox with a four day run", func(t *testing.T) {
		h := checkboxHabit(0, -1, -2, -3)
		h.CreatedAt = anchor.AddDate(0, 0, -10)

		stats := h.ComputeStats(anchor)
		assert.Equal(t, 4, stats.CurrentStreak)
		assert.Equal(t, 4, stats.LongestStreak)
		assert.InDelta(t, 0.4, stats.Average, 1e-9)
		assert.Equal(t, 4.0, stats.Total)
		assert.Zero(t, stats.StandardDeviation)
		assert.True(t, stats.CompletedToday)
	})

	t.Run("number with one entry under target", func(t *testing.T) {
		h := numberHabit(10, map[int]float64{-2: 12, -1: 8, 0: 15})

		stats := h.ComputeStats(anchor)
		assert.Equal(t, 1, stats.CurrentStreak)
		assert.Equal(t, 1, stats.LongestStreak)
		assert.InDelta(t, 11.67, stats.Average, 0.01)
		assert.Equal(t, 35.0, stats.Total)
		assert.InDelta(t, 2.87, stats.StandardDeviation, 0.01)
		assert.True(t, stats.CompletedToday)
		assert.Equal(t, 15.0, stats.TodayValue)
		assert.Equal(t, 3, stats.EntryCount)
	})
}

func TestMalformedDatesAreTreatedAsAbsent(t *testing.T) {
	h := checkboxHabit(0, -1)
	h.CompletedDates = append(h.CompletedDates, "not-a-date", "2025-13-40")

	assert.Equal(t, 2, h.CurrentStreak(anchor))
	assert.Equal(t, 2, h.LongestStreak())
	assert.Equal(t, 2.0, h.Total())
	assert.Equal(t, 2, h.EntryCount())

	n := numberHabit(10, map[int]float64{0: 12})
	n.Entries["garbage"] = 99
	assert.Equal(t, 1, n.CurrentStreak(anchor))
	assert.Equal(t, 12.0, n.Total())
	assert.Equal(t, 1, n.EntryCount())
}
