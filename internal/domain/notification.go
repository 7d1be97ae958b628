package domain

import "time"

// NotificationKind distinguishes reminders from achievements.
type NotificationKind string

const (
	NotificationReminder    NotificationKind = "reminder"
	NotificationAchievement NotificationKind = "achievement"
)

// Notification is an entry in the user's notification center.
type Notification struct {
	ID        int64            `json:"id"`
	Kind      NotificationKind `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
	Read      bool             `json:"read"`
}

// Notification setting keys.
const (
	SettingWeightReminders = "weightReminders"
	SettingMealReminders   = "mealReminders"
	SettingWaterReminders  = "waterReminders"
	SettingSleepReminders  = "sleepReminders"
	SettingGoalAlerts      = "goalAlerts"
)

// SettingKeys lists every notification setting in display order.
var SettingKeys = []string{
	SettingWeightReminders,
	SettingMealReminders,
	SettingWaterReminders,
	SettingSleepReminders,
	SettingGoalAlerts,
}

// SettingLabel returns the label shown next to a setting toggle.
func SettingLabel(key string) string {
	switch key {
	case SettingWeightReminders:
		return "Weight logging reminders"
	case SettingMealReminders:
		return "Meal logging reminders"
	case SettingWaterReminders:
		return "Water intake reminders"
	case SettingSleepReminders:
		return "Sleep reminders"
	case SettingGoalAlerts:
		return "Goal achievement alerts"
	}
	return key
}

// NotificationSettings maps setting keys to their enabled state.
type NotificationSettings map[string]bool

// DefaultNotificationSettings has every reminder enabled.
func DefaultNotificationSettings() NotificationSettings {
	s := make(NotificationSettings, len(SettingKeys))
	for _, k := range SettingKeys {
		s[k] = true
	}
	return s
}
