// Package sse pushes application events to open browser pages over
// Server-Sent Events.
package sse

import (
	"time"

	"github.com/smartlife/recommender/internal/navigation"
)

// The UI is request/response; events only tell pages that something changed
// underneath them (another tab navigated, a trailer was stopped, the app is
// quitting).

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventHeartbeat keeps idle connections open.
	EventHeartbeat EventType = "heartbeat"
	// EventNavigationChanged carries the new navigation state.
	EventNavigationChanged EventType = "navigation.changed"
	// EventTrailerStopped tells a trailer page to tear down its player.
	EventTrailerStopped EventType = "trailer.stopped"
	// EventAssetsChanged reports image or video files changing on disk.
	EventAssetsChanged EventType = "assets.changed"
	// EventAppQuit is sent once when the process begins shutting down.
	EventAppQuit EventType = "app.quit"
)

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// SessionID limits delivery to clients watching that trailer session.
	// Empty means broadcast.
	SessionID string `json:"-"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NavigationEventData wraps a navigation snapshot.
type NavigationEventData struct {
	State navigation.State `json:"state"`
}

// TrailerStoppedEventData identifies the stopped session.
type TrailerStoppedEventData struct {
	SessionID        string `json:"session_id"`
	RecommendationID string `json:"recommendation_id"`
}

// AssetsChangedEventData lists changed paths relative to the assets dir.
type AssetsChangedEventData struct {
	Paths []string `json:"paths"`
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	now := time.Now()
	return Event{
		Type:      EventHeartbeat,
		Data:      HeartbeatEventData{ServerTime: now},
		Timestamp: now,
	}
}

// NewNavigationChangedEvent creates a navigation.changed event.
func NewNavigationChangedEvent(state navigation.State) Event {
	return Event{
		Type:      EventNavigationChanged,
		Data:      NavigationEventData{State: state},
		Timestamp: time.Now(),
	}
}

// NewTrailerStoppedEvent creates a trailer.stopped event addressed to the
// pages showing that session.
func NewTrailerStoppedEvent(sessionID, recommendationID string) Event {
	return Event{
		Type:      EventTrailerStopped,
		Data:      TrailerStoppedEventData{SessionID: sessionID, RecommendationID: recommendationID},
		Timestamp: time.Now(),
		SessionID: sessionID,
	}
}

// NewAssetsChangedEvent creates an assets.changed event.
func NewAssetsChangedEvent(paths []string) Event {
	return Event{
		Type:      EventAssetsChanged,
		Data:      AssetsChangedEventData{Paths: paths},
		Timestamp: time.Now(),
	}
}

// NewAppQuitEvent creates an app.quit event.
func NewAppQuitEvent() Event {
	return Event{
		Type:      EventAppQuit,
		Data:      struct{}{},
		Timestamp: time.Now(),
	}
}
