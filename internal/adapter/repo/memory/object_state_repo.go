package memory

import (
	"context"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

type ObjectStateRepo struct {
	store *Store
}

func NewObjectStateRepo(store *Store) ObjectStateRepo {
	return ObjectStateRepo{store: store}
}

func (r ObjectStateRepo) Get(_ context.Context, key world.ObjectKey) (world.ObjectState, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	st, ok := r.store.states[sessionKey(key.SessionID, key.StorageID())]
	if !ok {
		return world.ObjectState{}, ports.ErrNotFound
	}
	return st.Clone(), nil
}

func (r ObjectStateRepo) Save(_ context.Context, state world.ObjectState, expectedVersion int64) error {
	key := world.ObjectKey{RuntimeHandle: state.RuntimeHandle, TemplateKey: state.TemplateKey, SessionID: state.SessionID}
	id := sessionKey(state.SessionID, key.StorageID())

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.states[id]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.states[id] = state.Clone()
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.states[id] = state.Clone()
	return nil
}
