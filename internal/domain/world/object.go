package world

import (
	"strings"
	"time"
)

const DefaultObjectState = "default"

// ObjectKey addresses one object's state inside a session. RuntimeHandle is
// preferred; when empty the state is keyed by TemplateKey.
type ObjectKey struct {
	RuntimeHandle string
	TemplateKey   string
	SessionID     string
}

// StorageID is the per-session identifier used by state stores.
func (k ObjectKey) StorageID() string {
	if h := strings.TrimSpace(k.RuntimeHandle); h != "" {
		return h
	}
	return "tpl:" + strings.TrimSpace(k.TemplateKey)
}

type ObjectState struct {
	RuntimeHandle string         `json:"runtime_handle,omitempty"`
	TemplateKey   string         `json:"template_key"`
	SessionID     string         `json:"session_id"`
	State         string         `json:"state"`
	Contents      []string       `json:"contents"`
	Properties    map[string]any `json:"properties"`
	Version       int64          `json:"version"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ObjectPatch is a merge update: nil fields keep the stored value.
type ObjectPatch struct {
	State      *string
	Contents   []string
	Properties map[string]any

	// SetContents distinguishes "replace with empty" from "leave as is".
	SetContents bool
}

func NewObjectState(key ObjectKey) ObjectState {
	return ObjectState{
		RuntimeHandle: key.RuntimeHandle,
		TemplateKey:   key.TemplateKey,
		SessionID:     key.SessionID,
		State:         DefaultObjectState,
		Contents:      []string{},
		Properties:    map[string]any{},
	}
}

// Apply merges the patch into a copy of s.
func (s ObjectState) Apply(p ObjectPatch) ObjectState {
	out := s.Clone()
	if p.State != nil {
		out.State = *p.State
	}
	if p.SetContents || p.Contents != nil {
		out.Contents = append([]string{}, p.Contents...)
	}
	if p.Properties != nil {
		out.Properties = CloneProps(p.Properties)
	}
	if strings.TrimSpace(out.State) == "" {
		out.State = DefaultObjectState
	}
	return out
}

func (s ObjectState) Clone() ObjectState {
	out := s
	out.Contents = append([]string{}, s.Contents...)
	out.Properties = CloneProps(s.Properties)
	if out.Properties == nil {
		out.Properties = map[string]any{}
	}
	return out
}

func (s ObjectState) HasContent(itemID string) bool {
	for _, id := range s.Contents {
		if id == itemID {
			return true
		}
	}
	return false
}

// WithoutContent returns contents with the first occurrence of itemID removed.
func (s ObjectState) WithoutContent(itemID string) ([]string, bool) {
	out := make([]string, 0, len(s.Contents))
	removed := false
	for _, id := range s.Contents {
		if !removed && id == itemID {
			removed = true
			continue
		}
		out = append(out, id)
	}
	return out, removed
}

// Interaction returns properties.interactions.<verb>, or nil.
func (s ObjectState) Interaction(verb string) map[string]any {
	return Interaction(s.Properties, verb)
}

func Interaction(props map[string]any, verb string) map[string]any {
	interactions := PropMap(props, "interactions")
	if interactions == nil {
		return nil
	}
	return PropMap(interactions, verb)
}

// InteractionConfig is the typed view of properties.interactions.<verb>.
type InteractionConfig struct {
	HPRestore       int
	MPRestore       int
	EffectCarrierID string
	TimeCost        int
	RequiredItems   []string
	ResultItems     []string
	State           string
	Content         string
	Raw             map[string]any
}

func ParseInteraction(raw map[string]any) InteractionConfig {
	hp, mp := RestoreAmounts(raw)
	return InteractionConfig{
		HPRestore:       hp,
		MPRestore:       mp,
		EffectCarrierID: strings.TrimSpace(PropString(raw, "effect_carrier_id")),
		TimeCost:        PropInt(raw, "time_cost"),
		RequiredItems:   PropStrings(raw, "required_items"),
		ResultItems:     PropStrings(raw, "result_items"),
		State:           strings.TrimSpace(PropString(raw, "state")),
		Content:         PropString(raw, "content"),
		Raw:             raw,
	}
}
