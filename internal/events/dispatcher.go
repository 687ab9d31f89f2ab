// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Sink receives ordered batches of lifecycle events. Delivery is
// at-least-once; deduplication is the sink's concern.
type Sink interface {
	Dispatch(ctx context.Context, batch []Event) error
}

// Dispatcher hands event batches to a sink asynchronously while keeping the
// emission order of batches for any single resource. Batches for different
// resources may be delivered concurrently; batches for the same resource
// never interleave.
type Dispatcher struct {
	sink Sink

	mu     sync.Mutex
	queues map[uuid.UUID][][]Event // pending batches per resource, oldest first
	active map[uuid.UUID]bool      // resource currently being drained
	seq    map[uuid.UUID]uint64    // monotonic emission counter per resource
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher delivering to the given sink.
func NewDispatcher(sink Sink) *Dispatcher {
	return &Dispatcher{
		sink:   sink,
		queues: make(map[uuid.UUID][][]Event),
		active: make(map[uuid.UUID]bool),
		seq:    make(map[uuid.UUID]uint64),
	}
}

// Enqueue stamps sequence numbers onto the batch and schedules it for
// delivery. It never blocks the caller on sink latency: delivery happens on
// a background goroutine that drains the resource's queue in FIFO order.
// Call only after the mutation's transaction has committed.
func (d *Dispatcher) Enqueue(resourceID uuid.UUID, batch []Event) {
	if len(batch) == 0 {
		return
	}

	d.mu.Lock()
	for i := range batch {
		d.seq[resourceID]++
		batch[i].Seq = d.seq[resourceID]
	}
	d.queues[resourceID] = append(d.queues[resourceID], batch)
	if d.active[resourceID] {
		d.mu.Unlock()
		return
	}
	d.active[resourceID] = true
	d.mu.Unlock()

	d.wg.Add(1)
	go d.drain(resourceID)
}

// drain delivers pending batches for one resource until its queue empties.
func (d *Dispatcher) drain(resourceID uuid.UUID) {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		pending := d.queues[resourceID]
		if len(pending) == 0 {
			d.active[resourceID] = false
			delete(d.queues, resourceID)
			d.mu.Unlock()
			return
		}
		batch := pending[0]
		d.queues[resourceID] = pending[1:]
		d.mu.Unlock()

		// Fire-and-forget relative to the mutating caller: a sink failure
		// is logged, never surfaced, and later batches still go out.
		if err := d.sink.Dispatch(context.Background(), batch); err != nil {
			slog.Error("event dispatch failed",
				"resource_id", resourceID,
				"events", len(batch),
				"error", err,
			)
		}
	}
}

// Wait blocks until every enqueued batch has been handed to the sink.
// Used on shutdown and in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
