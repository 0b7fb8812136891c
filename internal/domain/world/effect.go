package world

import "time"

type EffectType string

const (
	EffectSkill    EffectType = "skill"
	EffectBuff     EffectType = "buff"
	EffectBlessing EffectType = "blessing"
	EffectCurse    EffectType = "curse"
	EffectDebuff   EffectType = "debuff"
)

// EffectTemplate is a catalog-level effect carrier definition.
type EffectTemplate struct {
	EffectID    string         `json:"effect_id" yaml:"effect_id"`
	Name        string         `json:"name" yaml:"name"`
	Type        EffectType     `json:"type" yaml:"type"`
	Effect      map[string]any `json:"effect,omitempty" yaml:"effect"`
	Constraints map[string]any `json:"constraints,omitempty" yaml:"constraints"`
	Tags        []string       `json:"tags,omitempty" yaml:"tags"`
}

func (t EffectTemplate) HasTag(tag string) bool {
	for _, v := range t.Tags {
		if v == tag {
			return true
		}
	}
	return false
}

// EffectOwnership is one ledger row. Rows are not unique: granting the same
// effect twice stacks.
type EffectOwnership struct {
	SessionID  string    `json:"session_id"`
	EntityID   string    `json:"entity_id"`
	EffectID   string    `json:"effect_id"`
	Source     string    `json:"source"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// OwnedEffect is an ownership row hydrated with its template.
type OwnedEffect struct {
	EffectTemplate
	Source     string    `json:"source"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// DedupeTags normalizes tags into a set-like ordered slice.
func DedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
