package memory

import (
	"context"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

type EffectTemplateRepo struct {
	store *Store
}

func NewEffectTemplateRepo(store *Store) EffectTemplateRepo {
	return EffectTemplateRepo{store: store}
}

func (r EffectTemplateRepo) Get(_ context.Context, effectID string) (world.EffectTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	tpl, ok := r.store.effects[effectID]
	if !ok {
		return world.EffectTemplate{}, ports.ErrNotFound
	}
	return cloneEffect(tpl), nil
}

func (r EffectTemplateRepo) Create(_ context.Context, tpl world.EffectTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.effects[tpl.EffectID]; ok {
		return ports.ErrConflict
	}
	r.store.effects[tpl.EffectID] = cloneEffect(tpl)
	return nil
}

func (r EffectTemplateRepo) Update(_ context.Context, tpl world.EffectTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.effects[tpl.EffectID]; !ok {
		return ports.ErrNotFound
	}
	r.store.effects[tpl.EffectID] = cloneEffect(tpl)
	return nil
}

func (r EffectTemplateRepo) Delete(_ context.Context, effectID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.effects[effectID]; !ok {
		return ports.ErrNotFound
	}
	delete(r.store.effects, effectID)
	return nil
}

func cloneEffect(tpl world.EffectTemplate) world.EffectTemplate {
	tpl.Effect = world.CloneProps(tpl.Effect)
	tpl.Constraints = world.CloneProps(tpl.Constraints)
	tpl.Tags = append([]string(nil), tpl.Tags...)
	return tpl
}

type EffectOwnershipRepo struct {
	store *Store
}

func NewEffectOwnershipRepo(store *Store) EffectOwnershipRepo {
	return EffectOwnershipRepo{store: store}
}

func (r EffectOwnershipRepo) Append(_ context.Context, o world.EffectOwnership) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.ownerships = append(r.store.ownerships, o)
	return nil
}

func (r EffectOwnershipRepo) DeleteAll(_ context.Context, sessionID, entityID, effectID string) (int, error) {
	return r.deleteWhere(func(o world.EffectOwnership) bool {
		return o.SessionID == sessionID && o.EntityID == entityID && o.EffectID == effectID
	}), nil
}

func (r EffectOwnershipRepo) DeleteByEffect(_ context.Context, effectID string) (int, error) {
	return r.deleteWhere(func(o world.EffectOwnership) bool {
		return o.EffectID == effectID
	}), nil
}

func (r EffectOwnershipRepo) ListByEntity(_ context.Context, sessionID, entityID string) ([]world.EffectOwnership, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]world.EffectOwnership, 0)
	for _, o := range r.store.ownerships {
		if o.SessionID == sessionID && o.EntityID == entityID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r EffectOwnershipRepo) deleteWhere(match func(world.EffectOwnership) bool) int {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.ownerships[:0]
	removed := 0
	for _, o := range r.store.ownerships {
		if match(o) {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	r.store.ownerships = kept
	return removed
}
