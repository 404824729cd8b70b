package habits

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityLog is an append-only record of habit mutations, kept for the
// activity feed. Reads never touch it; statistics are always re-derived
// from the habit history itself.
type ActivityLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	HabitID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Action    string         `gorm:"type:varchar(50);not null"`
	Metadata  datatypes.JSON `gorm:"type:json"`
	CreatedAt time.Time      `gorm:"not null"`
}

// TableName specifies the table name for the ActivityLog model
func (ActivityLog) TableName() string {
	return "habit_activity_logs"
}

// Recorded activity actions
const (
	ActionHabitCreated    = "habit_created"
	ActionHabitUpdated    = "habit_updated"
	ActionHabitDeleted    = "habit_deleted"
	ActionDayCompleted    = "day_completed"
	ActionDayUncompleted  = "day_uncompleted"
	ActionEntrySet        = "entry_set"
	ActionEntryCleared    = "entry_cleared"
	ActionHabitsReordered = "habits_reordered"
)
