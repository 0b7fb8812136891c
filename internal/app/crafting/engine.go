package crafting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wayfarer/internal/app/ports"
	domain "wayfarer/internal/domain/crafting"
	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"
)

const createTemplateAttempts = 3

type Engine struct {
	Inventory ports.Inventory
	Templates ports.TemplateRepository
	Clock     ports.Clock
	Rand      domain.Rand
	Logger    zerolog.Logger
	Now       func() time.Time
	// TimeCost is the minutes a successful combination takes.
	TimeCost int
}

// Combine merges 2..5 inventory items into a new item. The outcome is
// random; on failure some inputs are still lost.
func (e Engine) Combine(ctx context.Context, entityID, sessionID string, itemIDs []string) (interaction.Result, error) {
	if len(itemIDs) < domain.MinCombineItems || len(itemIDs) > domain.MaxCombineItems {
		return interaction.Failf("combining requires between %d and %d items, got %d",
			domain.MinCombineItems, domain.MaxCombineItems, len(itemIDs)), nil
	}
	if strings.TrimSpace(sessionID) == "" {
		return interaction.Fail("missing required parameters: session_id"), nil
	}

	inputs := make([]world.ItemTemplate, 0, len(itemIDs))
	for _, id := range itemIDs {
		tpl, err := e.Templates.GetItem(ctx, id)
		if errors.Is(err, ports.ErrNotFound) {
			return interaction.Failf("item %s not found", id), nil
		}
		if err != nil {
			return interaction.Result{}, fmt.Errorf("load item %s: %w", id, err)
		}
		inputs = append(inputs, tpl)
	}

	need := map[string]int{}
	for _, id := range itemIDs {
		need[id]++
	}
	for id, qty := range need {
		have, err := e.Inventory.Quantity(ctx, entityID, id)
		if err != nil {
			return interaction.Result{}, fmt.Errorf("inventory %s: %w", id, err)
		}
		if have < qty {
			return interaction.Failf("not enough %s in inventory (have %d, need %d)", id, have, qty), nil
		}
	}

	carriers := domain.CollectCarriers(inputs)
	rate := domain.SuccessRate(len(inputs), len(carriers))
	draw := e.rand().Float64()
	log := e.Logger.With().Str("entity_id", entityID).Str("session_id", sessionID).Logger()

	if draw >= rate {
		return e.fail(ctx, log, entityID, inputs, rate)
	}
	return e.succeed(ctx, log, entityID, sessionID, inputs, carriers, rate)
}

func (e Engine) succeed(ctx context.Context, log zerolog.Logger, entityID, sessionID string, inputs []world.ItemTemplate, carriers []string, rate float64) (interaction.Result, error) {
	removed := make([]string, 0, len(inputs))
	for _, in := range inputs {
		ok, err := e.Inventory.RemoveItem(ctx, entityID, in.ItemID, 1)
		if err != nil || !ok {
			e.restore(ctx, log, entityID, removed)
			if err != nil {
				return interaction.Result{}, fmt.Errorf("remove %s: %w", in.ItemID, err)
			}
			return interaction.Failf("item %s is no longer in inventory", in.ItemID), nil
		}
		removed = append(removed, in.ItemID)
	}

	var (
		combined world.ItemTemplate
		err      error
	)
	for attempt := 0; attempt < createTemplateAttempts; attempt++ {
		combined = domain.SynthesizeTemplate(domain.NewCombinedItemID(e.rand()), sessionID, inputs, carriers, e.now())
		err = e.Templates.CreateItemTemplate(ctx, combined)
		if !errors.Is(err, ports.ErrConflict) {
			break
		}
	}
	if err != nil {
		e.restore(ctx, log, entityID, removed)
		return interaction.Result{}, fmt.Errorf("create combined template: %w", err)
	}

	if err := e.Inventory.AddItem(ctx, entityID, combined.ItemID, 1); err != nil {
		e.restore(ctx, log, entityID, removed)
		return interaction.Result{}, fmt.Errorf("add combined item: %w", err)
	}

	if e.Clock != nil {
		if err := e.Clock.AdvanceTime(ctx, sessionID, e.timeCost()); err != nil {
			log.Warn().Err(err).Int("minutes", e.timeCost()).Msg("time advance failed after combination")
		}
	}

	return interaction.Succeed(
		fmt.Sprintf("You combine %d items into %s.", len(inputs), combined.Name),
		map[string]any{
			"new_item_id":        combined.ItemID,
			"new_item_name":      combined.Name,
			"success_rate":       rate,
			"effect_carrier_ids": carriers,
			"combined_from":      removed,
		},
	).WithEffects(map[string]any{"type": "item_created", "item_id": combined.ItemID}), nil
}

func (e Engine) fail(ctx context.Context, log zerolog.Logger, entityID string, inputs []world.ItemTemplate, rate float64) (interaction.Result, error) {
	picked := domain.FailureConsumption(inputs, e.rand())
	consumed := make([]string, 0, len(picked))
	for _, idx := range picked {
		id := inputs[idx].ItemID
		ok, err := e.Inventory.RemoveItem(ctx, entityID, id, 1)
		if err != nil || !ok {
			e.restore(ctx, log, entityID, consumed)
			if err != nil {
				return interaction.Result{}, fmt.Errorf("consume %s: %w", id, err)
			}
			return interaction.Failf("item %s is no longer in inventory", id), nil
		}
		consumed = append(consumed, id)
	}
	return interaction.FailWithData("The combination failed.", map[string]any{
		"success_rate":   rate,
		"consumed_items": consumed,
	}), nil
}

// restore puts already-removed inputs back after a failed step.
func (e Engine) restore(ctx context.Context, log zerolog.Logger, entityID string, itemIDs []string) {
	for _, id := range itemIDs {
		if err := e.Inventory.AddItem(ctx, entityID, id, 1); err != nil {
			log.Error().Err(err).Str("item_id", id).Msg("compensation failed; item lost")
		}
	}
}

func (e Engine) rand() domain.Rand {
	if e.Rand != nil {
		return e.Rand
	}
	return domain.GlobalRand{}
}

func (e Engine) timeCost() int {
	if e.TimeCost > 0 {
		return e.TimeCost
	}
	return domain.CombineTimeMinutes
}

func (e Engine) now() time.Time {
	if e.Now != nil {
		return e.Now().UTC()
	}
	return time.Now().UTC()
}
