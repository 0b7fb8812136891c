package world

import (
	"strings"
	"time"
)

type TemplateKind string

const (
	KindItem   TemplateKind = "item"
	KindObject TemplateKind = "object"
	KindEntity TemplateKind = "entity"
	KindCell   TemplateKind = "cell"
	KindEffect TemplateKind = "effect"
)

type ItemTemplate struct {
	ItemID      string         `json:"item_id" yaml:"item_id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description"`
	ItemType    string         `json:"item_type" yaml:"item_type"`
	StackSize   int            `json:"stack_size" yaml:"stack_size"`
	Consumable  bool           `json:"consumable" yaml:"consumable"`
	Properties  map[string]any `json:"properties,omitempty" yaml:"properties"`
	SessionID   string         `json:"session_id,omitempty" yaml:"-"`
	CreatedAt   time.Time      `json:"created_at" yaml:"-"`
}

type ObjectTemplate struct {
	ObjectID    string         `json:"object_id" yaml:"object_id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description"`
	Properties  map[string]any `json:"properties,omitempty" yaml:"properties"`
}

type EntityTemplate struct {
	EntityID    string         `json:"entity_id" yaml:"entity_id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description"`
	Properties  map[string]any `json:"properties,omitempty" yaml:"properties"`
}

// BasePropertyID is the optional catalog link an item inherits stats from.
func (t ItemTemplate) BasePropertyID() string {
	return PropString(t.Properties, "base_property_id")
}

// EffectCarrierIDs returns the effect ids referenced by the single
// effect_carrier_id field followed by the effect_carrier_ids list.
func (t ItemTemplate) EffectCarrierIDs() []string {
	out := make([]string, 0, 2)
	if id := strings.TrimSpace(PropString(t.Properties, "effect_carrier_id")); id != "" {
		out = append(out, id)
	}
	for _, id := range PropStrings(t.Properties, "effect_carrier_ids") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func (t ItemTemplate) HasEffectCarrier() bool {
	return len(t.EffectCarrierIDs()) > 0
}

// Restore reads hp/mp restore amounts from properties, accepting both the
// nested {effects:{hp,mp}} shape and flat hp_restore/mp_restore keys.
func (t ItemTemplate) Restore() (hp, mp int) {
	return RestoreAmounts(t.Properties)
}

func (t ItemTemplate) EquipSlot() string {
	return strings.ToLower(strings.TrimSpace(PropString(t.Properties, "equip_slot")))
}

func RestoreAmounts(props map[string]any) (hp, mp int) {
	if effects := PropMap(props, "effects"); effects != nil {
		hp = PropInt(effects, "hp")
		mp = PropInt(effects, "mp")
	}
	if hp == 0 {
		hp = PropInt(props, "hp_restore")
	}
	if mp == 0 {
		mp = PropInt(props, "mp_restore")
	}
	return hp, mp
}
