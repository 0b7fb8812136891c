package memory

import (
	"context"
	"strings"

	"wayfarer/internal/app/ports"
)

type LocationRepo struct {
	store *Store
}

func NewLocationRepo(store *Store) LocationRepo {
	return LocationRepo{store: store}
}

func (r LocationRepo) CellOf(_ context.Context, sessionID, entityID string) (string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	cell, ok := r.store.locations[sessionKey(sessionID, entityID)]
	if !ok {
		return "", ports.ErrNotFound
	}
	return cell, nil
}

func (r LocationRepo) SetCell(_ context.Context, sessionID, entityID, cellRef string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.locations[sessionKey(sessionID, entityID)] = cellRef
	return nil
}

func (r LocationRepo) CountInCell(_ context.Context, sessionID, cellRef string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	prefix := sessionID + "::"
	n := 0
	for key, cell := range r.store.locations {
		if cell == cellRef && strings.HasPrefix(key, prefix) {
			n++
		}
	}
	return n, nil
}
