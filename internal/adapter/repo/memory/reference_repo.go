package memory

import (
	"context"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

type ReferenceRepo struct {
	store *Store
}

func NewReferenceRepo(store *Store) ReferenceRepo {
	return ReferenceRepo{store: store}
}

func (r ReferenceRepo) Get(_ context.Context, runtimeHandle, sessionID string) (world.ReferenceRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.refs[sessionKey(sessionID, runtimeHandle)]
	if !ok {
		return world.ReferenceRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r ReferenceRepo) Create(_ context.Context, rec world.ReferenceRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := sessionKey(rec.SessionID, rec.RuntimeHandle)
	if _, ok := r.store.refs[key]; ok {
		return ports.ErrConflict
	}
	r.store.refs[key] = rec
	return nil
}
