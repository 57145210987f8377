package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/pricetrack/services/grocery/domain/events"
)

const defaultFeedSize = 50

// NotificationFeed keeps the most recent notifications published on
// events.TopicNotifications.
type NotificationFeed struct {
	mu   sync.RWMutex
	size int
	buf  []events.Notification // ring buffer
	next int
	seen map[string]struct{}
}

// NewNotificationFeed returns a feed holding at most size notifications.
func NewNotificationFeed(size int) *NotificationFeed {
	if size <= 0 {
		size = defaultFeedSize
	}
	return &NotificationFeed{
		size: size,
		buf:  make([]events.Notification, 0, size),
		seen: make(map[string]struct{}, size),
	}
}

// Handle is an events.EventBus subscriber. Redelivered notifications are
// recorded once.
func (f *NotificationFeed) Handle(_ context.Context, msg *message.Message) error {
	var n events.Notification
	if err := json.Unmarshal(msg.Payload, &n); err != nil {
		return fmt.Errorf("decode notification %s: %w", msg.UUID, err)
	}
	f.Add(n)
	return nil
}

// Add records n, evicting the oldest entry when the feed is full.
func (f *NotificationFeed) Add(n events.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := n.EventID.String()
	if _, dup := f.seen[id]; dup {
		return
	}
	if len(f.buf) < f.size {
		f.buf = append(f.buf, n)
	} else {
		delete(f.seen, f.buf[f.next].EventID.String())
		f.buf[f.next] = n
	}
	f.next = (f.next + 1) % f.size
	f.seen[id] = struct{}{}
}

// Recent returns the recorded notifications, newest first.
func (f *NotificationFeed) Recent() []events.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]events.Notification, 0, len(f.buf))
	for i := 1; i <= len(f.buf); i++ {
		out = append(out, f.buf[(f.next-i+len(f.buf))%len(f.buf)])
	}
	return out
}
