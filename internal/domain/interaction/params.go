package interaction

import (
	"strings"

	"wayfarer/internal/domain/world"
)

const (
	ParamSessionID = "session_id"
	ParamItemID    = "item_id"
	ParamItemIDs   = "item_ids"
	ParamSlot      = "slot"
	ParamContent   = "content"
	ParamMinutes   = "minutes"
	ParamOfferItem = "offer_item_id"
	ParamWantItem  = "request_item_id"
)

// Params wraps the free-form request parameters.
type Params map[string]any

func (p Params) String(key string) string {
	return strings.TrimSpace(world.PropString(p, key))
}

func (p Params) Strings(key string) []string {
	raw := world.PropStrings(p, key)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (p Params) Int(key string) int {
	return world.PropInt(p, key)
}

func (p Params) Has(key string) bool {
	if p == nil {
		return false
	}
	v, ok := p[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func (p Params) SessionID() string {
	return p.String(ParamSessionID)
}
