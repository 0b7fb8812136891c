package memory

import (
	"context"
	"errors"
	"fmt"

	"wayfarer/internal/app/ports"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type InventoryRepo struct {
	store *Store
}

func NewInventoryRepo(store *Store) InventoryRepo {
	return InventoryRepo{store: store}
}

func (r InventoryRepo) AddItem(_ context.Context, entityID, itemID string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	bag, ok := r.store.inventory[entityID]
	if !ok {
		bag = make(map[string]int)
		r.store.inventory[entityID] = bag
	}
	bag[itemID] += qty
	return nil
}

func (r InventoryRepo) RemoveItem(_ context.Context, entityID, itemID string, qty int) (bool, error) {
	if qty <= 0 {
		return false, ErrInvalidQuantity
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	bag := r.store.inventory[entityID]
	if bag[itemID] < qty {
		return false, nil
	}
	bag[itemID] -= qty
	if bag[itemID] == 0 {
		delete(bag, itemID)
	}
	return true, nil
}

func (r InventoryRepo) Quantity(_ context.Context, entityID, itemID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.inventory[entityID][itemID], nil
}

type EntityStatsRepo struct {
	store *Store
}

func NewEntityStatsRepo(store *Store) EntityStatsRepo {
	return EntityStatsRepo{store: store}
}

// RestoreHPMP raises hp/mp up to the entity's maxima. Entities without
// seeded vitals start full at the defaults.
func (r EntityStatsRepo) RestoreHPMP(_ context.Context, entityID string, hp, mp int) (ports.RestoreOutcome, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, ok := r.store.vitals[entityID]
	if !ok {
		v = Vitals{HP: DefaultMaxHP, MaxHP: DefaultMaxHP, MP: DefaultMaxMP, MaxMP: DefaultMaxMP}
	}
	gotHP := gain(v.HP, v.MaxHP, hp)
	gotMP := gain(v.MP, v.MaxMP, mp)
	v.HP += gotHP
	v.MP += gotMP
	r.store.vitals[entityID] = v
	return ports.RestoreOutcome{
		Success: true,
		Message: fmt.Sprintf("restored %d hp and %d mp", gotHP, gotMP),
		HP:      gotHP,
		MP:      gotMP,
	}, nil
}

func gain(cur, max, amount int) int {
	if amount <= 0 || cur >= max {
		return 0
	}
	if cur+amount > max {
		return max - cur
	}
	return amount
}
