package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateHabitRequest represents the request to create a new habit
type CreateHabitRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	Kind        string  `json:"kind" binding:"omitempty,oneof=checkbox number"`
	Target      float64 `json:"target"`
	Unit        string  `json:"unit"`
}

// UpdateHabitRequest represents the request to update an existing habit
type UpdateHabitRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Color       *string  `json:"color,omitempty"`
	Target      *float64 `json:"target,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
}

// ToggleDayRequest marks or unmarks one day of a checkbox habit
type ToggleDayRequest struct {
	Day string `json:"day" binding:"required"`
}

// SetEntryRequest records a value for one day of a number habit.
// A value of zero or less clears the day.
type SetEntryRequest struct {
	Day   string  `json:"day" binding:"required"`
	Value float64 `json:"value"`
}

// ReorderHabitsRequest carries the full habit id list in display order
type ReorderHabitsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// HabitResponse represents a habit in API responses
type HabitResponse struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description,omitempty"`
	Color          string             `json:"color,omitempty"`
	Kind           string             `json:"kind"`
	Target         float64            `json:"target,omitempty"`
	Unit           string             `json:"unit,omitempty"`
	SortOrder      int                `json:"sort_order"`
	CompletedDates []string           `json:"completed_dates,omitempty"`
	Entries        map[string]float64 `json:"entries,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// HabitListResponse represents the response for listing habits
type HabitListResponse struct {
	Habits     []HabitResponse `json:"habits"`
	TotalCount int             `json:"total_count"`
}

// HabitStatsResponse carries the derived metrics for one habit
type HabitStatsResponse struct {
	CurrentStreak     int     `json:"current_streak"`
	LongestStreak     int     `json:"longest_streak"`
	Average           float64 `json:"average"`
	Total             float64 `json:"total"`
	StandardDeviation float64 `json:"standard_deviation"`
	CompletedToday    bool    `json:"completed_today"`
	TodayValue        float64 `json:"today_value"`
	EntryCount        int     `json:"entry_count"`
}

// DayCellResponse is one populated heatmap cell; nil in the grid means
// padding outside the observation window
type DayCellResponse struct {
	Day       string  `json:"day"`
	Value     float64 `json:"value"`
	Completed bool    `json:"completed"`
	Weekday   int     `json:"weekday"`
	Intensity int     `json:"intensity"`
}

// MonthLabelResponse annotates the column where a month begins
type MonthLabelResponse struct {
	Name   string `json:"name"`
	Column int    `json:"column"`
	Year   int    `json:"year"`
}

// GridResponse is the full 52x7 heatmap payload for one habit
type GridResponse struct {
	Weeks  [][]*DayCellResponse `json:"weeks"`
	Months []MonthLabelResponse `json:"months"`
	Today  string               `json:"today"`
}

// HeatmapResponse aggregates qualifying days across all habits
type HeatmapResponse struct {
	Data     map[string]int `json:"data"`
	Days     int            `json:"days"`
	MinValue int            `json:"min_value"`
	MaxValue int            `json:"max_value"`
}

// ActivityLogResponse is one entry of a habit's activity feed
type ActivityLogResponse struct {
	ID        uuid.UUID              `json:"id"`
	HabitID   uuid.UUID              `json:"habit_id"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
