package action

import "wayfarer/internal/domain/interaction"

type Request struct {
	EntityID   string                 `json:"entity_id"`
	ActionType interaction.ActionType `json:"action_type"`
	TargetID   string                 `json:"target_id,omitempty"`
	Parameters map[string]any         `json:"parameters,omitempty"`
}
