package models

// Setting is a user-scoped key-value row; sprint recurrence configuration
// persists here across sessions.
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey;size:255"`
	Value string `json:"value" gorm:"not null"`
}

// TableName specifies the table name for Setting Model
func (Setting) TableName() string {
	return "settings"
}

// Setting keys for the persisted sprint configuration.
const (
	SettingSprintDurationUnit = "sprint.duration_unit"
	SettingSprintStartDay     = "sprint.start_day"
	SettingSprintStartTime    = "sprint.start_time"
)
