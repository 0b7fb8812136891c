package memory

import (
	"context"

	"wayfarer/internal/domain/world"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, sessionID string, events []world.DomainEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events[sessionID] = append(r.store.events[sessionID], events...)
	return nil
}

// ListBySession returns the newest limit events in append order.
func (r EventRepo) ListBySession(_ context.Context, sessionID string, limit int) ([]world.DomainEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	items := r.store.events[sessionID]
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	return append([]world.DomainEvent(nil), items...), nil
}
