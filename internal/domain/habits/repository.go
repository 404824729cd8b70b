package habits

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/northpole96/habit/internal/infrastructure/persistence/sqlite/connection"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidDay    = errors.New("invalid day format, expected YYYY-MM-DD")
)

// Repository defines the interface for habit persistence operations
type Repository interface {
	Create(ctx context.Context, habit *Habit) error
	FindByID(ctx context.Context, id uuid.UUID) (*Habit, error)
	FindAll(ctx context.Context) ([]Habit, error)
	Update(ctx context.Context, habit *Habit) error
	Delete(ctx context.Context, id uuid.UUID) error
	MaxSortOrder(ctx context.Context) (int, error)
	UpdateSortOrder(ctx context.Context, id uuid.UUID, order int) error

	// Activity log methods
	RecordActivity(ctx context.Context, entry *ActivityLog) error
	ListActivity(ctx context.Context, habitID uuid.UUID, limit int) ([]ActivityLog, error)
	PruneActivity(ctx context.Context, before time.Time) (int64, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, habit *Habit) error {
	return r.db.WithContext(ctx).Create(habit).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Habit, error) {
	var habit Habit
	result := r.db.WithContext(ctx).First(&habit, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, result.Error
	}
	return &habit, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Habit, error) {
	var habits []Habit
	err := r.db.WithContext(ctx).
		Order("sort_order asc, created_at asc").
		Find(&habits).Error
	return habits, err
}

func (r *repository) Update(ctx context.Context, habit *Habit) error {
	result := r.db.WithContext(ctx).Save(habit)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHabitNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Habit{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHabitNotFound
	}
	return nil
}

func (r *repository) MaxSortOrder(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&Habit{}).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

func (r *repository) UpdateSortOrder(ctx context.Context, id uuid.UUID, order int) error {
	// RowsAffected is not checked: sqlite reports 0 when the stored
	// order already matches, which is fine during a reorder.
	return r.db.WithContext(ctx).Model(&Habit{}).
		Where("id = ?", id).
		Update("sort_order", order).Error
}

func (r *repository) RecordActivity(ctx context.Context, entry *ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListActivity(ctx context.Context, habitID uuid.UUID, limit int) ([]ActivityLog, error) {
	var entries []ActivityLog
	query := r.db.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	return entries, err
}

func (r *repository) PruneActivity(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&ActivityLog{})
	return result.RowsAffected, result.Error
}
