package memory

import (
	"context"
	"errors"
)

var ErrInvalidMinutes = errors.New("minutes must be positive")

// Clock keeps per-session world minutes.
type Clock struct {
	store *Store
}

func NewClock(store *Store) Clock {
	return Clock{store: store}
}

func (c Clock) AdvanceTime(_ context.Context, sessionID string, minutes int) error {
	if minutes <= 0 {
		return ErrInvalidMinutes
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.clock[sessionID] += int64(minutes)
	return nil
}

func (c Clock) Now(_ context.Context, sessionID string) (int64, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	return c.store.clock[sessionID], nil
}
