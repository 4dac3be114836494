package mocks

import (
	"context"
	"sync"

	"github.com/showxpress/movie-ticket-booking/internal/queue"
)

// MockPublisher records published events in order. Safe for concurrent use.
type MockPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
	Err    error
}

type PublishedEvent struct {
	Queue string
	Event queue.BookingEvent
}

func (m *MockPublisher) Publish(ctx context.Context, queueName string, event queue.BookingEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.Events = append(m.Events, PublishedEvent{Queue: queueName, Event: event})
	return nil
}

func (m *MockPublisher) Close() error { return nil }
