package handlers

import (
	"encoding/json"

	"github.com/northpole96/habit/internal/api/dto"
	"github.com/northpole96/habit/internal/domain/habits"
)

// Habits
func HabitToResponse(h *habits.Habit) *dto.HabitResponse {
	if h == nil {
		return nil
	}
	return &dto.HabitResponse{
		ID:             h.ID,
		Name:           h.Name,
		Description:    h.Description,
		Color:          h.Color,
		Kind:           string(h.Kind),
		Target:         h.Target,
		Unit:           h.Unit,
		SortOrder:      h.SortOrder,
		CompletedDates: h.CompletedDates,
		Entries:        h.Entries,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}

func HabitsToResponse(list []habits.Habit) []dto.HabitResponse {
	responses := make([]dto.HabitResponse, len(list))
	for i := range list {
		responses[i] = *HabitToResponse(&list[i])
	}
	return responses
}

func StatsToResponse(s *habits.Stats) *dto.HabitStatsResponse {
	if s == nil {
		return nil
	}
	return &dto.HabitStatsResponse{
		CurrentStreak:     s.CurrentStreak,
		LongestStreak:     s.LongestStreak,
		Average:           s.Average,
		Total:             s.Total,
		StandardDeviation: s.StandardDeviation,
		CompletedToday:    s.CompletedToday,
		TodayValue:        s.TodayValue,
		EntryCount:        s.EntryCount,
	}
}

// GridToResponse converts the domain grid; intensity tiers arrive
// pre-resolved on the cells.
func GridToResponse(g *habits.GridData, today string) *dto.GridResponse {
	if g == nil {
		return nil
	}
	weeks := make([][]*dto.DayCellResponse, len(g.Weeks))
	for w, col := range g.Weeks {
		weeks[w] = make([]*dto.DayCellResponse, len(col))
		for r, cell := range col {
			if cell == nil {
				continue
			}
			weeks[w][r] = &dto.DayCellResponse{
				Day:       cell.Day,
				Value:     cell.Value,
				Completed: cell.Completed,
				Weekday:   cell.Weekday,
				Intensity: cell.Intensity,
			}
		}
	}

	months := make([]dto.MonthLabelResponse, len(g.Months))
	for i, m := range g.Months {
		months[i] = dto.MonthLabelResponse{
			Name:   m.Name,
			Column: m.Column,
			Year:   m.Year,
		}
	}

	return &dto.GridResponse{
		Weeks:  weeks,
		Months: months,
		Today:  today,
	}
}

func ActivityToResponse(entries []habits.ActivityLog) []dto.ActivityLogResponse {
	responses := make([]dto.ActivityLogResponse, len(entries))
	for i, e := range entries {
		var metadata map[string]interface{}
		if len(e.Metadata) > 0 {
			if err := json.Unmarshal(e.Metadata, &metadata); err != nil {
				metadata = map[string]interface{}{}
			}
		}
		responses[i] = dto.ActivityLogResponse{
			ID:        e.ID,
			HabitID:   e.HabitID,
			Action:    e.Action,
			Metadata:  metadata,
			CreatedAt: e.CreatedAt,
		}
	}
	return responses
}
