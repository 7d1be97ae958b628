package domain

import "time"

// Device is a wearable that can be paired for sync.
type Device struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

// SyncPreferences selects which metrics a sync pulls from the device.
type SyncPreferences struct {
	Steps     bool `json:"steps"`
	HeartRate bool `json:"heartRate"`
	Sleep     bool `json:"sleep"`
	Workouts  bool `json:"workouts"`
}

// DefaultSyncPreferences matches the initial toggles on the sync screen.
func DefaultSyncPreferences() SyncPreferences {
	return SyncPreferences{Steps: true, HeartRate: true, Sleep: true}
}

// Metrics lists the enabled preference names.
func (p SyncPreferences) Metrics() []string {
	var out []string
	if p.Steps {
		out = append(out, "steps")
	}
	if p.HeartRate {
		out = append(out, "heartRate")
	}
	if p.Sleep {
		out = append(out, "sleep")
	}
	if p.Workouts {
		out = append(out, "workouts")
	}
	return out
}

// Connection is a user's current device pairing.
type Connection struct {
	Device      *Device         `json:"device"`
	Preferences SyncPreferences `json:"preferences"`
	LastSyncAt  *time.Time      `json:"lastSyncAt"`
}

// Connected reports whether a device is paired.
func (c Connection) Connected() bool { return c.Device != nil }

// SyncResult is what a completed sync reports.
type SyncResult struct {
	Device   string    `json:"device"`
	Metrics  []string  `json:"metrics"`
	SyncedAt time.Time `json:"syncedAt"`
}
