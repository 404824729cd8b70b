package habits

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// GridData is the full payload a heatmap renderer needs for one habit.
type GridData struct {
	Weeks  [][]*DayCell
	Months []MonthLabel
}

type Service interface {
	CreateHabit(ctx context.Context, input CreateHabitInput) (*Habit, error)
	GetHabit(ctx context.Context, id uuid.UUID) (*Habit, error)
	ListHabits(ctx context.Context) ([]Habit, error)
	UpdateHabit(ctx context.Context, id uuid.UUID, input UpdateHabitInput) (*Habit, error)
	DeleteHabit(ctx context.Context, id uuid.UUID) error
	ReorderHabits(ctx context.Context, ids []uuid.UUID) error

	// History mutation
	ToggleDay(ctx context.Context, id uuid.UUID, day string) (*Habit, error)
	SetEntry(ctx context.Context, id uuid.UUID, day string, value float64) (*Habit, error)

	// Derived views. "today" is supplied by the caller so results are
	// deterministic and testable without mocking the wall clock.
	HabitStats(ctx context.Context, id uuid.UUID, today time.Time) (*Stats, error)
	HabitGrid(ctx context.Context, id uuid.UUID, today time.Time) (*GridData, error)
	Heatmap(ctx context.Context, today time.Time, days int) (map[string]int, error)

	// Activity feed
	ListActivity(ctx context.Context, id uuid.UUID, limit int) ([]ActivityLog, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

func (s *service) CreateHabit(ctx context.Context, input CreateHabitInput) (*Habit, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Kind != KindCheckbox && input.Kind != KindNumber && input.Kind != "" {
		return nil, fmt.Errorf("%w: unknown habit kind %q", ErrInvalidInput, input.Kind)
	}

	order, err := s.repo.MaxSortOrder(ctx)
	if err != nil {
		return nil, err
	}

	habit := &Habit{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		Kind:        input.Kind,
		Target:      input.Target,
		Unit:        input.Unit,
		SortOrder:   order + 1,
	}
	habit.normalize()

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, habit.ID, ActionHabitCreated, map[string]interface{}{
		"name": habit.Name,
		"kind": string(habit.Kind),
	})

	return habit, nil
}

func (s *service) GetHabit(ctx context.Context, id uuid.UUID) (*Habit, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListHabits(ctx context.Context) ([]Habit, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) UpdateHabit(ctx context.Context, id uuid.UUID, input UpdateHabitInput) (*Habit, error) {
	habit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.Name != nil && *input.Name != habit.Name {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		habit.Name = *input.Name
		changed = true
	}
	if input.Description != nil && *input.Description != habit.Description {
		habit.Description = *input.Description
		changed = true
	}
	if input.Color != nil && *input.Color != habit.Color {
		habit.Color = *input.Color
		changed = true
	}
	if input.Target != nil && *input.Target != habit.Target {
		if habit.Kind == KindNumber && *input.Target <= 0 {
			return nil, fmt.Errorf("%w: target must be positive", ErrInvalidInput)
		}
		habit.Target = *input.Target
		changed = true
	}
	if input.Unit != nil && *input.Unit != habit.Unit {
		habit.Unit = *input.Unit
		changed = true
	}

	if !changed {
		return habit, nil
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, habit.ID, ActionHabitUpdated, map[string]interface{}{
		"name": habit.Name,
	})

	return habit, nil
}

func (s *service) DeleteHabit(ctx context.Context, id uuid.UUID) error {
	habit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.recordActivity(ctx, id, ActionHabitDeleted, map[string]interface{}{
		"name":        habit.Name,
		"entry_count": habit.EntryCount(),
	})

	return nil
}

func (s *service) ReorderHabits(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: empty id list", ErrInvalidInput)
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	for i, id := range ids {
		if err := s.repo.UpdateSortOrder(ctx, id, i); err != nil {
			return fmt.Errorf("failed to reorder habit %s: %w", id, err)
		}
	}

	s.recordActivity(ctx, uuid.Nil, ActionHabitsReordered, map[string]interface{}{
		"count": len(ids),
	})

	return nil
}

// ToggleDay flips a checkbox habit's completion for one day: present
// dates are removed, absent ones added.
func (s *service) ToggleDay(ctx context.Context, id uuid.UUID, day string) (*Habit, error) {
	key, ok := canonicalDay(day)
	if !ok {
		return nil, ErrInvalidDay
	}

	habit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.Kind != KindCheckbox {
		return nil, fmt.Errorf("%w: cannot toggle a %s habit", ErrInvalidInput, habit.Kind)
	}

	action := ActionDayCompleted
	removed := false
	for i, d := range habit.CompletedDates {
		if d == key {
			habit.CompletedDates = append(habit.CompletedDates[:i], habit.CompletedDates[i+1:]...)
			action = ActionDayUncompleted
			removed = true
			break
		}
	}
	if !removed {
		habit.CompletedDates = append(habit.CompletedDates, key)
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, habit.ID, action, map[string]interface{}{
		"day": key,
	})

	return habit, nil
}

// SetEntry records a number habit's value for one day. A value of zero
// or less clears the day instead of storing it, so "no data" stays
// distinguishable from an explicit zero.
func (s *service) SetEntry(ctx context.Context, id uuid.UUID, day string, value float64) (*Habit, error) {
	key, ok := canonicalDay(day)
	if !ok {
		return nil, ErrInvalidDay
	}

	habit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.Kind != KindNumber {
		return nil, fmt.Errorf("%w: cannot set an entry on a %s habit", ErrInvalidInput, habit.Kind)
	}

	action := ActionEntrySet
	if value > 0 {
		habit.Entries[key] = value
	} else {
		delete(habit.Entries, key)
		action = ActionEntryCleared
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, habit.ID, action, map[string]interface{}{
		"day":   key,
		"value": value,
	})

	return habit, nil
}

func (s *service) HabitStats(ctx context.Context, id uuid.UUID, today time.Time) (*Stats, error) {
	habit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := habit.ComputeStats(today)
	return &stats, nil
}

func (s *service) HabitGrid(ctx context.Context, id uuid.UUID, today time.Time) (*GridData, error) {
	habit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	weeks := habit.BuildGrid(today)
	return &GridData{
		Weeks:  weeks,
		Months: MonthLabels(weeks),
	}, nil
}

// Heatmap aggregates completions per day across all habits for the
// trailing window, the all-habits counterpart of the per-habit grid.
func (s *service) Heatmap(ctx context.Context, today time.Time, days int) (map[string]int, error) {
	if days <= 0 {
		days = gridDays
	}
	habits, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	start := dateOnly(today).AddDate(0, 0, -(days - 1))
	end := dateOnly(today)

	counts := make(map[string]int)
	for i := range habits {
		h := &habits[i]
		if h.Kind == KindNumber {
			target := h.target()
			for key, v := range h.entryValues() {
				if v < target {
					continue
				}
				if d, ok := parseDay(key); ok && !d.Before(start) && !d.After(end) {
					counts[key]++
				}
			}
			continue
		}
		for _, d := range h.completedDays() {
			if !d.Before(start) && !d.After(end) {
				counts[d.Format(DayLayout)]++
			}
		}
	}
	return counts, nil
}

func (s *service) ListActivity(ctx context.Context, id uuid.UUID, limit int) ([]ActivityLog, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListActivity(ctx, id, limit)
}

// canonicalDay validates and normalizes a caller-supplied day key.
func canonicalDay(day string) (string, bool) {
	d, ok := parseDay(day)
	if !ok {
		return "", false
	}
	return d.Format(DayLayout), true
}

// recordActivity appends to the activity log, best effort: a failed log
// write never fails the mutation that triggered it.
func (s *service) recordActivity(ctx context.Context, habitID uuid.UUID, action string, metadata map[string]interface{}) {
	payload, err := json.Marshal(metadata)
	if err != nil {
		payload = []byte("{}")
	}

	entry := &ActivityLog{
		ID:       uuid.New(),
		HabitID:  habitID,
		Action:   action,
		Metadata: datatypes.JSON(payload),
	}
	if err := s.repo.RecordActivity(ctx, entry); err != nil {
		s.logger.Error("failed to record habit activity",
			zap.String("habit_id", habitID.String()),
			zap.String("action", action),
			zap.Error(err))
	}
}
