package constants

// PriorityLevel classifies how movable an activity is. Lower is more
// important; level 1 activities are fixed and never repositioned.
type PriorityLevel = int

const (
	AppName            = "planner"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/planner/planner.db"
	Version            = "v0.3.0"

	// DefaultUser is the user every command operates on unless --user is given.
	DefaultUser = "default"

	// TimeFormat is the standard clock format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Waking window defaults, used when a profile has no times set or the
	// configured window is invalid.
	DefaultWakeUpTime = "06:00"
	DefaultSleepTime  = "23:30"

	// MinGapMinutes is the smallest between-block gap the scheduler will
	// consider usable.
	MinGapMinutes = 15

	// Fallback window for emergency placement when a day has no gaps at all.
	FallbackStart = "22:00"
	FallbackEnd   = "23:30"

	// Priority levels
	PriorityFixed  PriorityLevel = 1
	PriorityHigh   PriorityLevel = 2
	PriorityMedium PriorityLevel = 3
	PriorityLow    PriorityLevel = 4
)

// DayDaily marks an activity that recurs on every day of the week.
const DayDaily = "daily"

// DaysOfWeek lists the scheduling days in week order.
var DaysOfWeek = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}
