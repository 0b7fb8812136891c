package ports

import (
	"context"
	"time"

	"wayfarer/internal/domain/world"
)

type TemplateRepository interface {
	GetItem(ctx context.Context, itemID string) (world.ItemTemplate, error)
	GetObject(ctx context.Context, objectID string) (world.ObjectTemplate, error)
	GetEntity(ctx context.Context, entityID string) (world.EntityTemplate, error)
	CreateItemTemplate(ctx context.Context, tpl world.ItemTemplate) error
}

// TemplateWriter seeds the catalog. Only used at startup.
type TemplateWriter interface {
	PutItem(ctx context.Context, tpl world.ItemTemplate) error
	PutObject(ctx context.Context, tpl world.ObjectTemplate) error
	PutEntity(ctx context.Context, tpl world.EntityTemplate) error
}

type ReferenceRepository interface {
	Get(ctx context.Context, runtimeHandle, sessionID string) (world.ReferenceRecord, error)
	Create(ctx context.Context, record world.ReferenceRecord) error
}

type ObjectStateRepository interface {
	Get(ctx context.Context, key world.ObjectKey) (world.ObjectState, error)
	// Save writes state when the stored version equals expectedVersion.
	// expectedVersion 0 means the row must not exist yet.
	Save(ctx context.Context, state world.ObjectState, expectedVersion int64) error
}

type EffectTemplateRepository interface {
	Get(ctx context.Context, effectID string) (world.EffectTemplate, error)
	Create(ctx context.Context, tpl world.EffectTemplate) error
	Update(ctx context.Context, tpl world.EffectTemplate) error
	Delete(ctx context.Context, effectID string) error
}

type EffectOwnershipRepository interface {
	Append(ctx context.Context, ownership world.EffectOwnership) error
	DeleteAll(ctx context.Context, sessionID, entityID, effectID string) (int, error)
	DeleteByEffect(ctx context.Context, effectID string) (int, error)
	ListByEntity(ctx context.Context, sessionID, entityID string) ([]world.EffectOwnership, error)
}

type Inventory interface {
	AddItem(ctx context.Context, entityID, itemID string, qty int) error
	// RemoveItem reports false without error when the entity holds fewer than qty.
	RemoveItem(ctx context.Context, entityID, itemID string, qty int) (bool, error)
	Quantity(ctx context.Context, entityID, itemID string) (int, error)
}

type RestoreOutcome struct {
	Success bool
	Message string
	HP      int
	MP      int
}

type EntityStats interface {
	RestoreHPMP(ctx context.Context, entityID string, hp, mp int) (RestoreOutcome, error)
}

type EquipmentRepository interface {
	// Slots returns slot -> item id. Empty map when nothing is equipped.
	Slots(ctx context.Context, sessionID, entityID string) (map[string]string, error)
	SaveSlots(ctx context.Context, sessionID, entityID string, slots map[string]string) error
}

type LocationRepository interface {
	CellOf(ctx context.Context, sessionID, entityID string) (string, error)
	SetCell(ctx context.Context, sessionID, entityID, cellRef string) error
	CountInCell(ctx context.Context, sessionID, cellRef string) (int, error)
}

type Clock interface {
	AdvanceTime(ctx context.Context, sessionID string, minutes int) error
	Now(ctx context.Context, sessionID string) (int64, error)
}

type EventRepository interface {
	Append(ctx context.Context, sessionID string, events []world.DomainEvent) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]world.DomainEvent, error)
}

type JournalEntry struct {
	At         time.Time      `json:"at"`
	SessionID  string         `json:"session_id"`
	EntityID   string         `json:"entity_id"`
	ActionType string         `json:"action_type"`
	TargetID   string         `json:"target_id,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	DurationMS int64          `json:"duration_ms"`
}

type ActionJournal interface {
	Record(entry JournalEntry) error
}
