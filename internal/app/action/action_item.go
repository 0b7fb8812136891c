package action

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"
)

func (e *Engine) loadItem(ctx context.Context, itemID string) (world.ItemTemplate, error) {
	tpl, err := e.Templates.GetItem(ctx, itemID)
	if errors.Is(err, ports.ErrNotFound) {
		return world.ItemTemplate{}, notFound("item %s", itemID)
	}
	return tpl, err
}

// useItemActionHandler applies an item's restore amounts and effect carriers.
// Consumable items lose one unit.
type useItemActionHandler struct {
	BaseHandler
	mustConsume bool
}

func (h useItemActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	itemID := ac.View.ItemID
	ok, err := e.requireItem(ctx, ac.In.EntityID, itemID, 1)
	if err != nil {
		return interaction.Result{}, err
	}
	if !ok {
		return interaction.Failf("You don't have %s.", itemID), nil
	}
	tpl, err := e.loadItem(ctx, itemID)
	if err != nil {
		return interaction.Result{}, err
	}
	name := orDefault(tpl.Name, itemID)
	if h.mustConsume && !tpl.Consumable {
		return interaction.Failf("%s cannot be consumed.", name), nil
	}
	hp, mp := tpl.Restore()
	carriers := tpl.EffectCarrierIDs()
	if hp <= 0 && mp <= 0 && len(carriers) == 0 {
		return interaction.Failf("Nothing happens when you %s %s.", ac.In.Type.Verb(), name), nil
	}

	out, err := e.restore(ctx, ac, hp, mp)
	if err != nil {
		return interaction.Result{}, err
	}
	granted := e.grantEffects(ctx, ac, itemID, carriers...)
	consumed := false
	if tpl.Consumable {
		removed, err := e.Inventory.RemoveItem(ctx, ac.In.EntityID, itemID, 1)
		switch {
		case err != nil:
			ac.Log.Warn().Err(err).Str("item_id", itemID).Msg("consume after use failed")
		case !removed:
			ac.Log.Warn().Str("item_id", itemID).Msg("item vanished before it could be consumed")
		default:
			consumed = true
		}
	}
	spent := e.advanceTime(ctx, ac, e.Tuning.TimeCost(ac.In.Type))

	msg := fmt.Sprintf("You %s %s.", ac.In.Type.Verb(), name)
	if out.HP > 0 || out.MP > 0 {
		msg += fmt.Sprintf(" Restored %d hp and %d mp.", out.HP, out.MP)
	}
	if len(granted) > 0 {
		msg += fmt.Sprintf(" %d effect(s) applied.", len(granted))
	}
	res := interaction.Succeed(msg, map[string]any{
		"item_id":            itemID,
		"hp_restored":        out.HP,
		"mp_restored":        out.MP,
		"effect_carrier_ids": granted,
		"effects_applied":    len(granted),
		"consumed":           consumed,
		"time_spent":         spent,
	})
	return res.WithEffects(restoreEffects(out.HP, out.MP, granted)...), nil
}

type equipActionHandler struct{ BaseHandler }

func (equipActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	itemID := ac.View.ItemID
	tpl, err := e.loadItem(ctx, itemID)
	if err != nil {
		return interaction.Result{}, err
	}
	name := orDefault(tpl.Name, itemID)
	slot := orDefault(tpl.EquipSlot(), strings.ToLower(ac.In.Params.String(interaction.ParamSlot)))
	if slot == "" {
		return interaction.Failf("%s cannot be equipped.", name), nil
	}
	slots, err := e.Equipment.Slots(ctx, ac.In.SessionID, ac.In.EntityID)
	if err != nil {
		return interaction.Result{}, err
	}
	prev := slots[slot]
	if prev == itemID {
		return interaction.Failf("%s is already equipped.", name), nil
	}

	removed, err := e.Inventory.RemoveItem(ctx, ac.In.EntityID, itemID, 1)
	if err != nil {
		return interaction.Result{}, err
	}
	if !removed {
		return interaction.Failf("You don't have %s.", itemID), nil
	}
	if prev != "" {
		if err := e.Inventory.AddItem(ctx, ac.In.EntityID, prev, 1); err != nil {
			e.giveBack(ctx, ac.Log, ac.In.EntityID, []string{itemID})
			return interaction.Result{}, err
		}
	}
	slots[slot] = itemID
	if err := e.Equipment.SaveSlots(ctx, ac.In.SessionID, ac.In.EntityID, slots); err != nil {
		if prev != "" {
			e.takeBack(ctx, ac.Log, ac.In.EntityID, []string{prev})
		}
		e.giveBack(ctx, ac.Log, ac.In.EntityID, []string{itemID})
		return interaction.Result{}, err
	}
	spent := e.advanceTime(ctx, ac, e.Tuning.TimeCost(ac.In.Type))

	msg := fmt.Sprintf("You equip %s (%s).", name, slot)
	if prev != "" {
		msg += fmt.Sprintf(" %s returns to your inventory.", prev)
	}
	return interaction.Succeed(msg, map[string]any{
		"slot":       slot,
		"item_id":    itemID,
		"replaced":   prev,
		"equipment":  slots,
		"time_spent": spent,
	}), nil
}

type unequipActionHandler struct{ BaseHandler }

func (unequipActionHandler) Precheck(_ context.Context, _ *Engine, ac *ActionContext) error {
	if ac.View.ItemID == "" && !ac.In.Params.Has(interaction.ParamSlot) {
		return &ValidationError{Missing: []string{"slot or target_id"}}
	}
	return nil
}

func (unequipActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	slots, err := e.Equipment.Slots(ctx, ac.In.SessionID, ac.In.EntityID)
	if err != nil {
		return interaction.Result{}, err
	}
	slot := strings.ToLower(ac.In.Params.String(interaction.ParamSlot))
	if slot == "" {
		slot = slotOf(slots, ac.View.ItemID)
		if slot == "" {
			return interaction.Failf("%s is not equipped.", ac.View.ItemID), nil
		}
	}
	itemID := slots[slot]
	if itemID == "" {
		return interaction.Failf("Nothing is equipped in %s.", slot), nil
	}

	if err := e.Inventory.AddItem(ctx, ac.In.EntityID, itemID, 1); err != nil {
		return interaction.Result{}, err
	}
	delete(slots, slot)
	if err := e.Equipment.SaveSlots(ctx, ac.In.SessionID, ac.In.EntityID, slots); err != nil {
		e.takeBack(ctx, ac.Log, ac.In.EntityID, []string{itemID})
		return interaction.Result{}, err
	}
	spent := e.advanceTime(ctx, ac, e.Tuning.TimeCost(ac.In.Type))

	return interaction.Succeed(fmt.Sprintf("You unequip %s.", itemID), map[string]any{
		"slot":       slot,
		"item_id":    itemID,
		"equipment":  slots,
		"time_spent": spent,
	}), nil
}

// slotOf returns the first slot, in name order, holding itemID.
func slotOf(slots map[string]string, itemID string) string {
	names := make([]string, 0, len(slots))
	for s := range slots {
		names = append(names, s)
	}
	sort.Strings(names)
	for _, s := range names {
		if slots[s] == itemID {
			return s
		}
	}
	return ""
}

type dropActionHandler struct{ BaseHandler }

func (dropActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	itemID := ac.View.ItemID
	removed, err := e.Inventory.RemoveItem(ctx, ac.In.EntityID, itemID, 1)
	if err != nil {
		return interaction.Result{}, err
	}
	if !removed {
		return interaction.Failf("You don't have %s.", itemID), nil
	}

	cell, err := e.currentCell(ctx, ac)
	if err != nil {
		e.giveBack(ctx, ac.Log, ac.In.EntityID, []string{itemID})
		return interaction.Result{}, err
	}
	if cell.SessionID != "" {
		if _, err := e.putContent(ctx, cell, itemID); err != nil {
			e.giveBack(ctx, ac.Log, ac.In.EntityID, []string{itemID})
			return interaction.Result{}, err
		}
	}
	spent := e.advanceTime(ctx, ac, e.Tuning.TimeCost(ac.In.Type))

	data := map[string]any{"item_id": itemID, "time_spent": spent}
	msg := fmt.Sprintf("You drop %s.", itemID)
	if cell.SessionID != "" {
		data["cell"] = cell.StorageID()
	} else {
		msg += " It is lost."
	}
	return interaction.Succeed(msg, data).WithEffects(map[string]any{"type": "item_lost", "item_id": itemID}), nil
}

// currentCell returns the key of the entity's cell. The zero key means the
// location is unknown or not tracked.
func (e *Engine) currentCell(ctx context.Context, ac *ActionContext) (world.ObjectKey, error) {
	if e.Locations == nil || e.Objects == nil {
		return world.ObjectKey{}, nil
	}
	ref, err := e.Locations.CellOf(ctx, ac.In.SessionID, ac.In.EntityID)
	if errors.Is(err, ports.ErrNotFound) {
		return world.ObjectKey{}, nil
	}
	if err != nil {
		return world.ObjectKey{}, err
	}
	resolved, err := e.resolver.Resolve(ctx, ref, ac.In.SessionID)
	if err != nil {
		return world.ObjectKey{}, err
	}
	if resolved.Empty() {
		return world.ObjectKey{}, nil
	}
	return resolved.ObjectKey(ac.In.SessionID), nil
}
