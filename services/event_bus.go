package services

import (
	"context"
	"log"
	"time"
)

// Notifier delivers a push notification to a user's devices.
type Notifier interface {
	PushToUser(ctx context.Context, userID, title, body string, data map[string]string) error
}

type Event struct {
	Kind string    `json:"kind"`
	At   time.Time `json:"at"`
	Data any       `json:"data"`
}

// EventBus tells a user about changes to their data over websockets and
// push. A nil bus, hub or notifier is skipped.
type EventBus struct {
	rt   *RealtimeHub
	push Notifier
}

func NewEventBus(rt *RealtimeHub, push Notifier) *EventBus {
	return &EventBus{rt: rt, push: push}
}

func (b *EventBus) Emit(ctx context.Context, userID, kind, message string, data any, refs map[string]string) {
	if b == nil {
		return
	}
	if b.rt != nil {
		b.rt.Broadcast(userID, Event{Kind: kind, At: time.Now(), Data: data})
	}
	if b.push != nil {
		if refs == nil {
			refs = map[string]string{}
		}
		refs["kind"] = kind
		if err := b.push.PushToUser(ctx, userID, "Nutriplan", message, refs); err != nil {
			log.Printf("push %s to %s: %v", kind, userID, err)
		}
	}
}
