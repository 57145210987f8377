package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/pricetrack/services/grocery/domain/events"
)

func TestNewNotification(t *testing.T) {
	at := time.Date(2025, 1, 15, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))
	n := events.NewNotification(events.LevelSuccess, "Item added", "Milk at Walmart", at)

	if n.EventID == uuid.Nil {
		t.Fatal("expected non-nil event id")
	}
	if n.Version != 1 {
		t.Errorf("Version: got %d, want 1", n.Version)
	}
	if n.OccurredAt.Location() != time.UTC || !n.OccurredAt.Equal(at) {
		t.Errorf("OccurredAt: got %v", n.OccurredAt)
	}
	if n.Undo != events.UndoNone {
		t.Errorf("expected no undo action, got %q", n.Undo)
	}
}

func TestNotification_JSONFieldNames(t *testing.T) {
	n := events.NewNotification(events.LevelWarning, "Item deleted", "Milk at Kroger", time.Now())
	n.Undo = events.UndoDelete
	n.ItemID = "milk-kroger"

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"id", "version", "level", "title", "description", "undo", "item_id", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
	if raw["undo"] != "delete" {
		t.Errorf("undo: got %v, want delete", raw["undo"])
	}
}

func TestNotification_OmitsEmptyUndo(t *testing.T) {
	data, err := json.Marshal(events.NewNotification(events.LevelInfo, "Loaded", "", time.Now()))
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var raw map[string]any
	_ = json.Unmarshal(data, &raw)
	if _, ok := raw["undo"]; ok {
		t.Errorf("undo should be omitted when empty: %s", data)
	}
}

func TestTopicNotifications_Value(t *testing.T) {
	if events.TopicNotifications != "grocery.notifications" {
		t.Errorf("expected %q, got %q", "grocery.notifications", events.TopicNotifications)
	}
}
