package memory

import (
	"context"
	"strings"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

type TemplateRepo struct {
	store *Store
}

func NewTemplateRepo(store *Store) TemplateRepo {
	return TemplateRepo{store: store}
}

func (r TemplateRepo) GetItem(_ context.Context, itemID string) (world.ItemTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	tpl, ok := r.store.items[itemID]
	if !ok {
		return world.ItemTemplate{}, ports.ErrNotFound
	}
	tpl.Properties = world.CloneProps(tpl.Properties)
	return tpl, nil
}

func (r TemplateRepo) GetObject(_ context.Context, objectID string) (world.ObjectTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	tpl, ok := r.store.objects[objectID]
	if !ok {
		return world.ObjectTemplate{}, ports.ErrNotFound
	}
	tpl.Properties = world.CloneProps(tpl.Properties)
	return tpl, nil
}

func (r TemplateRepo) GetEntity(_ context.Context, entityID string) (world.EntityTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	tpl, ok := r.store.entities[entityID]
	if !ok {
		return world.EntityTemplate{}, ports.ErrNotFound
	}
	tpl.Properties = world.CloneProps(tpl.Properties)
	return tpl, nil
}

// CreateItemTemplate rejects ids that already exist.
func (r TemplateRepo) CreateItemTemplate(_ context.Context, tpl world.ItemTemplate) error {
	if strings.TrimSpace(tpl.ItemID) == "" {
		return ports.ErrConflict
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.items[tpl.ItemID]; ok {
		return ports.ErrConflict
	}
	tpl.Properties = world.CloneProps(tpl.Properties)
	r.store.items[tpl.ItemID] = tpl
	return nil
}

func (r TemplateRepo) PutItem(_ context.Context, tpl world.ItemTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tpl.Properties = world.CloneProps(tpl.Properties)
	r.store.items[tpl.ItemID] = tpl
	return nil
}

func (r TemplateRepo) PutObject(_ context.Context, tpl world.ObjectTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tpl.Properties = world.CloneProps(tpl.Properties)
	r.store.objects[tpl.ObjectID] = tpl
	return nil
}

func (r TemplateRepo) PutEntity(_ context.Context, tpl world.EntityTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tpl.Properties = world.CloneProps(tpl.Properties)
	r.store.entities[tpl.EntityID] = tpl
	return nil
}
