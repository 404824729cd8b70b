package habits

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kind selects which history a habit keeps. A checkbox habit records
// done/not-done days; a number habit records a daily value measured
// against Target.
type Kind string

const (
	KindCheckbox Kind = "checkbox"
	KindNumber   Kind = "number"
)

// DayLayout is the calendar-day key format used throughout the habit
// history ("2024-03-09"). Day keys are compared as local calendar days,
// never as absolute timestamps.
const DayLayout = "2006-01-02"

type Habit struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	Color       string    `gorm:"size:16"`
	Kind        Kind      `gorm:"size:16;not null;default:checkbox"`
	// Target is the daily goal for number habits. Anywhere it is
	// dereferenced a non-positive value is read as 1.
	Target    float64 `gorm:"default:1"`
	Unit      string  `gorm:"size:32"`
	SortOrder int     `gorm:"not null;default:0"`
	// CompletedDates holds the day keys a checkbox habit was done.
	// Meaningful only when Kind is checkbox. No duplicates.
	CompletedDates []string `gorm:"serializer:json"`
	// Entries maps day keys to recorded values for number habits. A day
	// absent from the map means "no data", which is distinct from a zero
	// value; clearing a day deletes the key instead of storing 0.
	Entries   map[string]float64 `gorm:"serializer:json"`
	CreatedAt time.Time          `gorm:"not null"`
	UpdatedAt time.Time          `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for the Habit model
func (Habit) TableName() string {
	return "habits"
}

// CreateHabitInput represents the input for creating a new habit
type CreateHabitInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	Kind        Kind    `json:"kind"`
	Target      float64 `json:"target"`
	Unit        string  `json:"unit"`
}

// UpdateHabitInput represents the input for updating a habit. Kind is
// deliberately absent: the tracking type is immutable after creation.
type UpdateHabitInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Color       *string  `json:"color,omitempty"`
	Target      *float64 `json:"target,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
}

// BeforeCreate is called before creating a new habit record
func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	h.normalize()
	return nil
}

// AfterFind normalizes records persisted by older versions of the app,
// so the rest of the code never sees partial shapes.
func (h *Habit) AfterFind(tx *gorm.DB) error {
	h.normalize()
	return nil
}

// normalize applies the decode-time defaults once, at the storage
// boundary: kind falls back to checkbox, missing history containers
// become empty, and a number habit without a usable target gets 1.
func (h *Habit) normalize() {
	if h.Kind != KindNumber {
		h.Kind = KindCheckbox
	}
	if h.CompletedDates == nil {
		h.CompletedDates = []string{}
	}
	if h.Entries == nil {
		h.Entries = map[string]float64{}
	}
	if h.Kind == KindNumber && h.Target <= 0 {
		h.Target = 1
	}
}

// target returns the daily goal with the permissive default applied.
func (h *Habit) target() float64 {
	if h.Target > 0 {
		return h.Target
	}
	return 1
}
