package models

type Category string

const (
	CategoryMorningRoutine Category = "morning_routine"
	CategoryFitness        Category = "fitness"
	CategoryMeal           Category = "meal"
	CategoryAcademic       Category = "academic"
	CategoryPersonal       Category = "personal"
	CategorySocial         Category = "social"
	CategoryReflection     Category = "reflection"
	CategoryRest           Category = "rest"
)

// Activity is a routine item the scheduler may reposition or shrink.
// StartTime/EndTime/DurationMin/AdjustmentCount/LastAdjusted are written
// exclusively by the scheduler once the activity exists; OriginalStart is
// captured at creation and never overwritten.
type Activity struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Day         string   `json:"day"` // weekday name or "daily"
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	DurationMin int      `json:"duration_min"`

	PriorityLevel  int  `json:"priority_level"` // 1 = fixed, never moved
	Flexible       bool `json:"flexible"`
	ShiftMarginMin int  `json:"shift_margin_min"` // informational, not enforced
	MinDurationMin int  `json:"min_duration_min"`

	OriginalStart   string  `json:"original_start"`
	LastAdjusted    *string `json:"last_adjusted,omitempty"` // RFC3339 timestamp
	AdjustmentCount int     `json:"adjustment_count"`

	Description string  `json:"description,omitempty"`
	Active      bool    `json:"active"`
	DeletedAt   *string `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// Fixed reports whether the activity is an immovable block.
func (a Activity) Fixed() bool {
	return a.PriorityLevel == 1
}

// Movable reports whether the placer is allowed to reposition the activity.
func (a Activity) Movable() bool {
	return a.Flexible && a.PriorityLevel > 1
}
