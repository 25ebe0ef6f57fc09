package models

// Profile holds a user's scheduling preferences. WakeUpTime and SleepTime
// bound the waking window; either may be empty, in which case the scheduler
// falls back to the application defaults.
type Profile struct {
	UserID     string `json:"user_id"`
	WakeUpTime string `json:"wake_up_time,omitempty"` // HH:MM format
	SleepTime  string `json:"sleep_time,omitempty"`   // HH:MM format
	Timezone   string `json:"timezone,omitempty"`     // IANA timezone name
}
