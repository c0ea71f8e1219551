package watcher

import "time"

// EventType is the kind of change seen under a watched root.
type EventType int

const (
	EventAdded EventType = iota
	EventModified
	EventRemoved
)

var eventTypeNames = [...]string{
	EventAdded:    "added",
	EventModified: "modified",
	EventRemoved:  "removed",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventTypeNames) {
		return "unknown"
	}
	return eventTypeNames[t]
}

// Event is a file change that has settled. Size and ModTime are zero for
// removals.
type Event struct {
	Type    EventType
	Path    string
	Size    int64
	ModTime time.Time
}
