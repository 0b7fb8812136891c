package action

import (
	"context"
	"fmt"

	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"
)

type examineEntityActionHandler struct{ BaseHandler }

func (examineEntityActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	tpl := ac.View.Entity
	data := map[string]any{
		"target":      ac.TargetRef(),
		"name":        ac.View.Name,
		"description": tpl.Description,
	}
	msg := fmt.Sprintf("You look at %s.", ac.View.Name)
	if tpl.Description != "" {
		msg += " " + tpl.Description
	}
	if e.Effects != nil {
		owned, err := e.Effects.ListForEntity(ctx, ac.In.SessionID, ac.TargetRef())
		if err != nil {
			return interaction.Result{}, err
		}
		visible := make([]map[string]any, 0, len(owned))
		for _, o := range owned {
			visible = append(visible, map[string]any{"effect_id": o.EffectID, "name": o.Name, "type": string(o.Type)})
		}
		data["effects"] = visible
	}
	return interaction.Succeed(msg, data), nil
}

// socialActionHandler returns the entity's configured lines. Dialogue trees
// live outside the engine.
type socialActionHandler struct{ BaseHandler }

func (socialActionHandler) Execute(_ context.Context, _ *Engine, ac *ActionContext) (interaction.Result, error) {
	props := ac.View.Entity.Properties
	line := world.PropString(props, "greeting")
	if ac.In.Type == interaction.EntityTalk {
		if lines := world.PropStrings(props, "dialogue"); len(lines) > 0 {
			line = lines[0]
		}
	}
	if line == "" {
		line = fmt.Sprintf("%s nods at you.", ac.View.Name)
	}
	return interaction.Succeed(line, map[string]any{
		"target": ac.TargetRef(),
		"name":   ac.View.Name,
		"line":   line,
	}), nil
}

type giveActionHandler struct{ BaseHandler }

func (giveActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	itemID := ac.In.Params.String(interaction.ParamItemID)
	target := ac.TargetRef()
	if target == ac.In.EntityID {
		return interaction.Fail("You cannot give items to yourself."), nil
	}
	removed, err := e.Inventory.RemoveItem(ctx, ac.In.EntityID, itemID, 1)
	if err != nil {
		return interaction.Result{}, err
	}
	if !removed {
		return interaction.Failf("You don't have %s.", itemID), nil
	}
	if err := e.Inventory.AddItem(ctx, target, itemID, 1); err != nil {
		e.giveBack(ctx, ac.Log, ac.In.EntityID, []string{itemID})
		return interaction.Result{}, err
	}
	spent := e.advanceTime(ctx, ac, e.Tuning.TimeCost(ac.In.Type))
	return interaction.Succeed(
		fmt.Sprintf("You give %s to %s.", itemID, ac.View.Name),
		map[string]any{"item_id": itemID, "recipient": target, "time_spent": spent},
	).WithEffects(map[string]any{"type": "item_lost", "item_id": itemID}), nil
}

type tradeActionHandler struct{ BaseHandler }

func (tradeActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	offer := ac.In.Params.String(interaction.ParamOfferItem)
	want := ac.In.Params.String(interaction.ParamWantItem)
	actor, target := ac.In.EntityID, ac.TargetRef()
	if target == actor {
		return interaction.Fail("You cannot trade with yourself."), nil
	}
	if !world.PropBool(ac.View.Entity.Properties, "trades", true) {
		return interaction.Failf("%s does not trade.", ac.View.Name), nil
	}

	ok, err := e.requireItem(ctx, actor, offer, 1)
	if err != nil {
		return interaction.Result{}, err
	}
	if !ok {
		return interaction.Failf("You don't have %s.", offer), nil
	}
	ok, err = e.requireItem(ctx, target, want, 1)
	if err != nil {
		return interaction.Result{}, err
	}
	if !ok {
		return interaction.Failf("%s doesn't have %s.", ac.View.Name, want), nil
	}

	// Leg one: offer moves to the target.
	removed, err := e.Inventory.RemoveItem(ctx, actor, offer, 1)
	if err != nil {
		return interaction.Result{}, err
	}
	if !removed {
		return interaction.Failf("You don't have %s.", offer), nil
	}
	if err := e.Inventory.AddItem(ctx, target, offer, 1); err != nil {
		e.giveBack(ctx, ac.Log, actor, []string{offer})
		return interaction.Result{}, err
	}
	undoLegOne := func() {
		e.takeBack(ctx, ac.Log, target, []string{offer})
		e.giveBack(ctx, ac.Log, actor, []string{offer})
	}

	// Leg two: wanted item moves to the actor.
	removed, err = e.Inventory.RemoveItem(ctx, target, want, 1)
	if err != nil || !removed {
		undoLegOne()
		if err != nil {
			return interaction.Result{}, err
		}
		return interaction.Failf("%s no longer has %s.", ac.View.Name, want), nil
	}
	if err := e.Inventory.AddItem(ctx, actor, want, 1); err != nil {
		e.giveBack(ctx, ac.Log, target, []string{want})
		undoLegOne()
		return interaction.Result{}, err
	}
	spent := e.advanceTime(ctx, ac, e.Tuning.TimeCost(ac.In.Type))

	return interaction.Succeed(
		fmt.Sprintf("You trade %s for %s with %s.", offer, want, ac.View.Name),
		map[string]any{"given": offer, "received": want, "partner": target, "time_spent": spent},
	).WithEffects(
		map[string]any{"type": "item_lost", "item_id": offer},
		map[string]any{"type": "item_gained", "item_id": want},
	), nil
}
