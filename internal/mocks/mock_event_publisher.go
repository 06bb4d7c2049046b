package mocks

import (
	"context"
	"sync"

	"github.com/metinatakli/movie-booking-service/internal/domain"
)

// MockEventPublisher records published events and returns Err for every publish call.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []domain.BookingConfirmedEvent
	Err    error
	Closed bool
}

func (m *MockEventPublisher) PublishBookingConfirmed(ctx context.Context, event domain.BookingConfirmedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)

	return m.Err
}

func (m *MockEventPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Closed = true

	return nil
}

// Events returns a copy of all published events
func (m *MockEventPublisher) Events() []domain.BookingConfirmedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := make([]domain.BookingConfirmedEvent, len(m.events))
	copy(events, m.events)
	return events
}
