package habits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGridShape(t *testing.T) {
	h := checkboxHabit(0, -1)
	grid := h.BuildGrid(anchor)

	assert.Len(t, grid, GridWeeks)
	for _, col := range grid {
		assert.Len(t, col, GridRows)
		for _, cell := range col {
			assert.NotNil(t, cell)
			assert.True(t, cell.InRange)
		}
	}

	// Today lands in the bottom-right corner, the window opens 363 days
	// earlier in the top-left.
	assert.Equal(t, day(0), grid[GridWeeks-1][GridRows-1].Day)
	assert.Equal(t, day(-(gridDays - 1)), grid[0][0].Day)
}

func TestBuildGridIsColumnMajorAscending(t *testing.T) {
	grid := checkboxHabit().BuildGrid(anchor)

	prev := grid[0][0].Date
	for week := 0; week < GridWeeks; week++ {
		for row := 0; row < GridRows; row++ {
			if week == 0 && row == 0 {
				continue
			}
			cell := grid[week][row]
			assert.Equal(t, 1, daysBetween(prev, cell.Date))
			assert.Equal(t, int(cell.Date.Weekday()), cell.Weekday)
			prev = cell.Date
		}
	}
}

func TestBuildGridCells(t *testing.T) {
	t.Run("checkbox membership marks the cell", func(t *testing.T) {
		h := checkboxHabit(0, -3)
		grid := h.BuildGrid(anchor)

		last := grid[GridWeeks-1][GridRows-1]
		assert.True(t, last.Completed)
		assert.Equal(t, 1.0, last.Value)
		assert.Equal(t, 5, last.Intensity)

		missed := grid[GridWeeks-1][GridRows-2] // yesterday
		assert.False(t, missed.Completed)
		assert.Zero(t, missed.Value)
		assert.Zero(t, missed.Intensity)
	})

	t.Run("number cells carry value and target check", func(t *testing.T) {
		h := numberHabit(10, map[int]float64{0: 12, -1: 7})
		grid := h.BuildGrid(anchor)

		today := grid[GridWeeks-1][GridRows-1]
		assert.Equal(t, 12.0, today.Value)
		assert.True(t, today.Completed)
		assert.Equal(t, 3, today.Intensity) // 120% of target

		yesterday := grid[GridWeeks-1][GridRows-2]
		assert.Equal(t, 7.0, yesterday.Value)
		assert.False(t, yesterday.Completed)
		assert.Equal(t, 2, yesterday.Intensity) // 70% of target
	})

	t.Run("malformed dates never surface in the grid", func(t *testing.T) {
		h := checkboxHabit(0)
		h.CompletedDates = append(h.CompletedDates, "nonsense")
		grid := h.BuildGrid(anchor)

		completed := 0
		for _, col := range grid {
			for _, cell := range col {
				if cell.Completed {
					completed++
				}
			}
		}
		assert.Equal(t, 1, completed)
	})
}

func TestMonthLabels(t *testing.T) {
	grid := checkboxHabit().BuildGrid(anchor)
	labels := MonthLabels(grid)

	// A 364-day window always crosses twelve month boundaries plus the
	// opening partial month.
	assert.Len(t, labels, 13)
	assert.Equal(t, 0, labels[0].Column)
	assert.Equal(t, "Jun", labels[0].Name)
	assert.Equal(t, 2024, labels[0].Year)
	assert.Equal(t, "Jun", labels[len(labels)-1].Name)
	assert.Equal(t, 2025, labels[len(labels)-1].Year)

	for i := 1; i < len(labels); i++ {
		assert.Greater(t, labels[i].Column, labels[i-1].Column)
		assert.NotEqual(t, labels[i].Name, labels[i-1].Name)
	}
}

func TestIntensity(t *testing.T) {
	t.Run("checkbox is binary", func(t *testing.T) {
		h := checkboxHabit()
		assert.Equal(t, 0, h.Intensity(0, false))
		assert.Equal(t, 5, h.Intensity(1, true))
	})

	t.Run("number buckets the value to target ratio", func(t *testing.T) {
		h := numberHabit(10, nil)
		tests := []struct {
			value    float64
			expected int
		}{
			{0, 0},
			{3, 1},
			{4.9, 1},
			{5, 2},
			{9.9, 2},
			{10, 3},
			{14.9, 3},
			{15, 4},
			{19.9, 4},
			{20, 5},
			{500, 5},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.expected, h.Intensity(tt.value, tt.value >= 10), "value %v", tt.value)
		}
	})
}

func TestCellClick(t *testing.T) {
	h := numberHabit(10, map[int]float64{0: 12})
	grid := h.BuildGrid(anchor)

	t.Run("round trips the cell under the cursor", func(t *testing.T) {
		event, ok := CellClick(grid, GridWeeks-1, GridRows-1)
		assert.True(t, ok)
		assert.Equal(t, day(0), event.Day)
		assert.Equal(t, h.TodayValue(anchor), event.Value)
		assert.Equal(t, h.CompletedToday(anchor), event.Completed)
	})

	t.Run("out of range indices are a no-op", func(t *testing.T) {
		for _, idx := range [][2]int{{-1, 0}, {0, -1}, {GridWeeks, 0}, {0, GridRows}} {
			_, ok := CellClick(grid, idx[0], idx[1])
			assert.False(t, ok)
		}
	})

	t.Run("nil padding cells are a no-op", func(t *testing.T) {
		padded := [][]*DayCell{{nil, grid[0][1]}}
		_, ok := CellClick(padded, 0, 0)
		assert.False(t, ok)

		_, ok = CellClick(padded, 0, 1)
		assert.True(t, ok)
	})
}
