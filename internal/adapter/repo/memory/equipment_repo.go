package memory

import "context"

type EquipmentRepo struct {
	store *Store
}

func NewEquipmentRepo(store *Store) EquipmentRepo {
	return EquipmentRepo{store: store}
}

func (r EquipmentRepo) Slots(_ context.Context, sessionID, entityID string) (map[string]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make(map[string]string)
	for slot, item := range r.store.equipment[sessionKey(sessionID, entityID)] {
		out[slot] = item
	}
	return out, nil
}

func (r EquipmentRepo) SaveSlots(_ context.Context, sessionID, entityID string, slots map[string]string) error {
	cp := make(map[string]string, len(slots))
	for slot, item := range slots {
		if item != "" {
			cp[slot] = item
		}
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.equipment[sessionKey(sessionID, entityID)] = cp
	return nil
}
