// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is the Valkey stream lifecycle events are appended to.
const DefaultStream = "quillpress:lifecycle"

// StreamSink appends lifecycle events to a Valkey (Redis-compatible) stream.
// Downstream consumers (search indexers, routing caches, notification
// dispatch) read the stream with consumer groups.
type StreamSink struct {
	client *redis.Client
	stream string
}

// NewStreamSink creates a sink writing to the given stream name; an empty
// name falls back to DefaultStream.
func NewStreamSink(client *redis.Client, stream string) *StreamSink {
	if stream == "" {
		stream = DefaultStream
	}
	return &StreamSink{client: client, stream: stream}
}

// Dispatch appends the batch to the stream one entry per event, preserving
// batch order. XADD with auto ids keeps stream order identical to call order.
func (s *StreamSink) Dispatch(ctx context.Context, batch []Event) error {
	for _, ev := range batch {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal event %q: %w", ev.Name, err)
		}
		err = s.client.XAdd(ctx, &redis.XAddArgs{
			Stream: s.stream,
			Values: map[string]any{
				"name":     ev.Name,
				"resource": ev.ResourceID.String(),
				"seq":      ev.Seq,
				"payload":  payload,
			},
		}).Err()
		if err != nil {
			return fmt.Errorf("xadd %q: %w", ev.Name, err)
		}
	}
	return nil
}
