package memory

import (
	"sync"

	"wayfarer/internal/domain/world"
)

const (
	DefaultMaxHP = 100
	DefaultMaxMP = 50
)

type Vitals struct {
	HP    int
	MaxHP int
	MP    int
	MaxMP int
}

// Store is the shared backing map set for every in-memory repository.
// Repositories lock mu per call; TxManager serializes whole transactions
// on txMu.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	items    map[string]world.ItemTemplate
	objects  map[string]world.ObjectTemplate
	entities map[string]world.EntityTemplate

	refs   map[string]world.ReferenceRecord
	states map[string]world.ObjectState

	effects    map[string]world.EffectTemplate
	ownerships []world.EffectOwnership

	inventory map[string]map[string]int
	vitals    map[string]Vitals
	equipment map[string]map[string]string
	locations map[string]string
	clock     map[string]int64
	events    map[string][]world.DomainEvent
}

func NewStore() *Store {
	return &Store{
		items:     make(map[string]world.ItemTemplate),
		objects:   make(map[string]world.ObjectTemplate),
		entities:  make(map[string]world.EntityTemplate),
		refs:      make(map[string]world.ReferenceRecord),
		states:    make(map[string]world.ObjectState),
		effects:   make(map[string]world.EffectTemplate),
		inventory: make(map[string]map[string]int),
		vitals:    make(map[string]Vitals),
		equipment: make(map[string]map[string]string),
		locations: make(map[string]string),
		clock:     make(map[string]int64),
		events:    make(map[string][]world.DomainEvent),
	}
}

func sessionKey(sessionID, id string) string {
	return sessionID + "::" + id
}

// SeedVitals sets an entity's current and max hp/mp.
func (s *Store) SeedVitals(entityID string, v Vitals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vitals[entityID] = v
}

func (s *Store) VitalsOf(entityID string) (Vitals, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vitals[entityID]
	return v, ok
}
