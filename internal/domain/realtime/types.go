// internal/domain/realtime/types.go
package realtime

import (
	"encoding/json"
	"time"
)

// EventType names a wire event on the realtime channel.
type EventType string

const (
	// Connection lifecycle
	EventConnected EventType = "connected"
	EventError     EventType = "error"
	EventPing      EventType = "ping"
	EventPong      EventType = "pong"

	// Outbound on connect: announce presence so the server can route
	// room-scoped events.
	EventJoinAdmin EventType = "join-admin"

	// Peer admin presence
	EventAdminLogin  EventType = "admin-login"
	EventAdminLogout EventType = "admin-logout"

	// Domain mutations
	EventMemberAdded          EventType = "member-added"
	EventEventCreated         EventType = "event-created"
	EventCelebrationSubmitted EventType = "celebration-submitted"
	EventAttendanceRecorded   EventType = "attendance-recorded"

	// Server-authored notifications with a priority hint
	EventSystemNotification EventType = "system-notification"

	// Bare staleness signals; no payload, views re-fetch on receipt
	EventRefreshDashboard    EventType = "refresh-dashboard"
	EventRefreshMembers      EventType = "refresh-members"
	EventRefreshEvents       EventType = "refresh-events"
	EventRefreshAttendance   EventType = "refresh-attendance"
	EventRefreshCelebrations EventType = "refresh-celebrations"
)

// IsRefresh reports whether the event is a bare refresh signal.
func (e EventType) IsRefresh() bool {
	switch e {
	case EventRefreshDashboard, EventRefreshMembers, EventRefreshEvents,
		EventRefreshAttendance, EventRefreshCelebrations:
		return true
	}
	return false
}

// Message is the universal wire format. Data stays raw until the dispatcher
// knows which variant the event tag selects.
type Message struct {
	Event     EventType       `json:"event"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage builds a wire message around a payload.
func NewMessage(event EventType, data interface{}) (*Message, error) {
	msg := &Message{Event: event, Timestamp: time.Now()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = raw
	}
	return msg, nil
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	return &msg, err
}

// JoinAdmin announces the principal to the server on connect.
type JoinAdmin struct {
	AdminID string `json:"adminId"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

// Presence is carried by admin-login / admin-logout events.
type Presence struct {
	AdminID string `json:"adminId"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

// SystemNotification is carried by system-notification events.
type SystemNotification struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Icon     string `json:"icon,omitempty"`
	Color    string `json:"color,omitempty"`
	Priority string `json:"priority,omitempty"` // low, normal, high
}

// ErrorData for error events.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Display is the fixed icon/color hint for a notification category.
type Display struct {
	Icon  string
	Color string
}

var displays = map[EventType]Display{
	EventAdminLogin:           {Icon: "log-in", Color: "gray"},
	EventAdminLogout:          {Icon: "log-out", Color: "gray"},
	EventMemberAdded:          {Icon: "user-plus", Color: "green"},
	EventEventCreated:         {Icon: "calendar", Color: "blue"},
	EventCelebrationSubmitted: {Icon: "gift", Color: "purple"},
	EventAttendanceRecorded:   {Icon: "clipboard", Color: "teal"},
	EventSystemNotification:   {Icon: "bell", Color: "orange"},
}

// DisplayFor returns the display hint for an event category.
func DisplayFor(event EventType) Display {
	if d, ok := displays[event]; ok {
		return d
	}
	return Display{Icon: "bell", Color: "gray"}
}
