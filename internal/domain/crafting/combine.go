package crafting

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"wayfarer/internal/domain/world"
)

const (
	MinCombineItems = 2
	MaxCombineItems = 5

	BaseSuccessRate    = 0.5
	ItemPenalty        = 0.08
	CarrierBonus       = 0.03
	MinSuccessRate     = 0.10
	MaxSuccessRate     = 0.90
	CombinedItemPrefix = "ITEM_COMBINED_"
	CombineTimeMinutes = 10
)

// Rand is the randomness source used by combination. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
	Uint32() uint32
}

// SuccessRate is clamp(0.5 - 0.08*items + 0.03*carriers, 0.10, 0.90).
func SuccessRate(itemCount, carrierCount int) float64 {
	rate := BaseSuccessRate - ItemPenalty*float64(itemCount) + CarrierBonus*float64(carrierCount)
	// Round away float noise so 0.5-0.16 reports as 0.34.
	rate = math.Round(rate*1e9) / 1e9
	return math.Min(MaxSuccessRate, math.Max(MinSuccessRate, rate))
}

// CollectCarriers returns the distinct effect carrier ids across items in
// first-seen order.
func CollectCarriers(items []world.ItemTemplate) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, item := range items {
		for _, id := range item.EffectCarrierIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// FailureConsumption picks the inputs lost on a failed combination: one
// random carrier-less item when any exist, otherwise max(1, n/2) random items.
// Returned indexes are in ascending order.
func FailureConsumption(items []world.ItemTemplate, r Rand) []int {
	plain := make([]int, 0, len(items))
	for i, item := range items {
		if !item.HasEffectCarrier() {
			plain = append(plain, i)
		}
	}
	if len(plain) > 0 {
		return []int{plain[r.IntN(len(plain))]}
	}

	n := len(items) / 2
	if n < 1 {
		n = 1
	}
	return sampleIndexes(len(items), n, r)
}

func sampleIndexes(total, n int, r Rand) []int {
	if n > total {
		n = total
	}
	pool := make([]int, total)
	for i := range pool {
		pool[i] = i
	}
	// Partial Fisher-Yates.
	for i := 0; i < n; i++ {
		j := i + r.IntN(total-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	picked := pool[:n]
	slices.Sort(picked)
	return picked
}

func NewCombinedItemID(r Rand) string {
	return fmt.Sprintf("%s%08X", CombinedItemPrefix, r.Uint32())
}

// SynthesizeTemplate builds the combined item. Base attributes come from the
// first input.
func SynthesizeTemplate(id, sessionID string, inputs []world.ItemTemplate, carriers []string, now time.Time) world.ItemTemplate {
	first := inputs[0]
	combinedFrom := make([]any, 0, len(inputs))
	names := make([]string, 0, len(inputs))
	for _, in := range inputs {
		combinedFrom = append(combinedFrom, in.ItemID)
		name := in.Name
		if name == "" {
			name = in.ItemID
		}
		names = append(names, name)
	}
	carrierList := make([]any, 0, len(carriers))
	for _, c := range carriers {
		carrierList = append(carrierList, c)
	}

	props := map[string]any{
		"effect_carrier_ids": carrierList,
		"combined_from":      combinedFrom,
		"origin":             "combined",
		"session_id":         sessionID,
	}
	if base := first.BasePropertyID(); base != "" {
		props["base_property_id"] = base
	}
	stack := first.StackSize
	if stack <= 0 {
		stack = 1
	}
	return world.ItemTemplate{
		ItemID:      id,
		Name:        combinedName(names),
		Description: fmt.Sprintf("A combination of %d items.", len(inputs)),
		ItemType:    first.ItemType,
		StackSize:   stack,
		Consumable:  first.Consumable,
		Properties:  props,
		SessionID:   sessionID,
		CreatedAt:   now,
	}
}

func combinedName(names []string) string {
	return "Combined " + strings.Join(names, " + ")
}
