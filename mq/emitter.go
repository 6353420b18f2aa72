// Package mq carries small JSON events over Redis pub/sub.
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event is the envelope published on every channel.
type Event struct {
	Name   string    `json:"name"`
	Source string    `json:"source,omitempty"`
	At     time.Time `json:"at"`
}

// Emit publishes ev on channel.
func Emit(ctx context.Context, conn *redis.Client, channel string, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := conn.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	log.Printf("[Emit] %s published to channel '%s'", ev.Name, channel)
	return nil
}

// Listen subscribes to channel and calls handle for every event until ctx is
// done. Malformed payloads are logged and skipped.
func Listen(ctx context.Context, conn *redis.Client, channel string, handle func(Event)) {
	sub := conn.Subscribe(ctx, channel)
	defer sub.Close()
	ch := sub.Channel()

	log.Printf("[Worker] Listening on '%s'...", channel)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("[Worker] Failed to parse event on '%s': %v", channel, err)
				continue
			}
			handle(ev)
		}
	}
}
