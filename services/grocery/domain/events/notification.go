package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicNotifications is the Watermill topic user-facing notifications are published on.
const TopicNotifications = "grocery.notifications"

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// UndoAction names the undo operation a notification offers, if any.
type UndoAction string

const (
	UndoNone   UndoAction = ""
	UndoDelete UndoAction = "delete"
	UndoPrice  UndoAction = "price"
)

// Notification is a transient message about the outcome of an Item Store operation.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicNotifications).
type Notification struct {
	EventID     uuid.UUID  `json:"id"`
	Version     int        `json:"version"`
	Level       Level      `json:"level"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Undo        UndoAction `json:"undo,omitempty"`
	ItemID      string     `json:"item_id,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

// NewNotification stamps a notification with a fresh id and the given time.
func NewNotification(level Level, title, description string, at time.Time) Notification {
	return Notification{
		EventID:     uuid.New(),
		Version:     1,
		Level:       level,
		Title:       title,
		Description: description,
		OccurredAt:  at.UTC(),
	}
}
