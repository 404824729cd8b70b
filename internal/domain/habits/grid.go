package habits

import "time"

// The heatmap grid is a fixed 52 weeks by 7 weekday rows, filled
// column-major with the trailing 364 days so that "today" always lands
// in the last row of the last column. Renderers can lay out fixed-size
// cells without recomputation.
const (
	GridWeeks = 52
	GridRows  = 7
	gridDays  = GridWeeks * GridRows
)

// DayCell is one rendered cell of the heatmap grid.
type DayCell struct {
	Date      time.Time `json:"-"`
	Day       string    `json:"day"`
	Value     float64   `json:"value"`
	Completed bool      `json:"completed"`
	// InRange marks cells inside the observation window (always true in
	// the steady 364-day window, kept for wider windows later).
	InRange bool `json:"in_range"`
	Weekday int  `json:"weekday"`
	// Intensity is the cell's visual tier, resolved at build time so
	// renderers never need the habit itself.
	Intensity int `json:"intensity"`
}

// MonthLabel annotates the column where a new month begins.
type MonthLabel struct {
	Name   string `json:"name"`
	Column int    `json:"column"`
	Year   int    `json:"year"`
}

// CellEvent is the result of resolving a click on a grid cell.
type CellEvent struct {
	Date      time.Time
	Day       string
	Value     float64
	Completed bool
}

// BuildGrid lays the habit's trailing 364 days ending at today into the
// 52x7 grid, ascending, column-major. Cell (week, row) holds day index
// week*7+row; indices outside the window stay nil.
func (h *Habit) BuildGrid(today time.Time) [][]*DayCell {
	start := dateOnly(today).AddDate(0, 0, -(gridDays - 1))

	grid := make([][]*DayCell, GridWeeks)
	for week := range grid {
		grid[week] = make([]*DayCell, GridRows)
		for row := range grid[week] {
			idx := week*GridRows + row
			if idx < 0 || idx >= gridDays {
				continue
			}
			grid[week][row] = h.dayCell(start.AddDate(0, 0, idx))
		}
	}
	return grid
}

// dayCell resolves one day against the habit's history.
func (h *Habit) dayCell(d time.Time) *DayCell {
	cell := &DayCell{
		Date:    d,
		Day:     d.Format(DayLayout),
		InRange: true,
		Weekday: int(d.Weekday()),
	}
	if h.Kind == KindNumber {
		cell.Value = h.Entries[cell.Day]
		cell.Completed = cell.Value >= h.target()
	} else {
		for _, s := range h.CompletedDates {
			if s == cell.Day {
				cell.Value = 1
				cell.Completed = true
				break
			}
		}
	}
	cell.Intensity = h.Intensity(cell.Value, cell.Completed)
	return cell
}

// MonthLabels walks the grid columns and emits one label per month
// transition, anchored at the column whose first populated cell starts
// the new month. Used only for axis annotation.
func MonthLabels(grid [][]*DayCell) []MonthLabel {
	labels := []MonthLabel{}
	var prev time.Month
	for week, col := range grid {
		var first *DayCell
		for _, c := range col {
			if c != nil {
				first = c
				break
			}
		}
		if first == nil {
			continue
		}
		if m := first.Date.Month(); m != prev {
			labels = append(labels, MonthLabel{
				Name:   m.String()[:3],
				Column: week,
				Year:   first.Date.Year(),
			})
			prev = m
		}
	}
	return labels
}

// Intensity maps a day's value to one of six visual tiers: 0 means no
// data, checkbox habits are binary (0 or 5), and number habits bucket
// the value/target ratio, capped at 200% of target.
func (h *Habit) Intensity(value float64, completed bool) int {
	if h.Kind != KindNumber {
		if completed {
			return 5
		}
		return 0
	}
	if value <= 0 {
		return 0
	}
	ratio := value / h.target()
	if ratio > 2 {
		ratio = 2
	}
	switch {
	case ratio < 0.5:
		return 1
	case ratio < 1:
		return 2
	case ratio < 1.5:
		return 3
	case ratio < 2:
		return 4
	default:
		return 5
	}
}

// CellClick resolves a clicked cell to its day and data. Nil padding
// cells and cells outside the valid range produce no event.
func CellClick(grid [][]*DayCell, week, row int) (CellEvent, bool) {
	if week < 0 || week >= len(grid) || row < 0 || row >= len(grid[week]) {
		return CellEvent{}, false
	}
	c := grid[week][row]
	if c == nil || !c.InRange {
		return CellEvent{}, false
	}
	return CellEvent{
		Date:      c.Date,
		Day:       c.Day,
		Value:     c.Value,
		Completed: c.Completed,
	}, true
}
