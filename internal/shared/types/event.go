package types

import "time"

// EventType identifies a lifecycle notification kind.
type EventType string

const (
	EventAppAdded     EventType = "app_added"
	EventAppUpdated   EventType = "app_updated"
	EventAppRemoved   EventType = "app_removed"
	EventConfigReset  EventType = "config_reset"
	EventAppLaunched  EventType = "app_launched"
	EventAppStopped   EventType = "app_stopped"
	EventLaunchFailed EventType = "launch_failed"
	EventStartupBegan EventType = "startup_began"
	EventStartupDone  EventType = "startup_done"
)

// Event is a lifecycle notification pushed to connected UI clients.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	AppID     string    `json:"app_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
