package action

import (
	"context"
	"errors"
	"fmt"

	"wayfarer/internal/domain/interaction"
)

// takeActionHandler moves an item from the target's contents into the
// entity's inventory. Serves pickup, take and forage.
type takeActionHandler struct{ BaseHandler }

func (takeActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	st := ac.View.Object
	itemID := ac.In.Params.String(interaction.ParamItemID)
	if itemID == "" && len(st.Contents) > 0 {
		itemID = st.Contents[0]
	}
	if itemID == "" {
		return interaction.Failf("There is nothing to %s in the %s.", ac.In.Type.Verb(), ac.View.Name), nil
	}

	after, err := e.takeContent(ctx, ac, itemID)
	if errors.Is(err, errNotInContents) {
		return interaction.Failf("%s is not in the %s.", itemID, ac.View.Name), nil
	}
	if err != nil {
		return interaction.Result{}, err
	}
	if err := e.Inventory.AddItem(ctx, ac.In.EntityID, itemID, 1); err != nil {
		if _, perr := e.putContent(ctx, ac.View.Key, itemID); perr != nil {
			ac.Log.Error().Err(perr).Str("item_id", itemID).Msg("compensation failed; item lost")
		}
		return interaction.Result{}, fmt.Errorf("add %s to inventory: %w", itemID, err)
	}
	spent := e.advanceTime(ctx, ac, e.timeCost(ac, ac.Interaction().TimeCost))

	return interaction.Succeed(
		fmt.Sprintf("You %s %s from the %s.", ac.In.Type.Verb(), itemID, ac.View.Name),
		map[string]any{
			"item_id":        itemID,
			"contents_count": len(after.Contents),
			"time_spent":     spent,
		},
	).WithEffects(map[string]any{"type": "item_gained", "item_id": itemID}), nil
}

// putActionHandler moves an item from the inventory into the target's
// contents. Serves place and put.
type putActionHandler struct{ BaseHandler }

func (putActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	itemID := ac.In.Params.String(interaction.ParamItemID)
	ok, err := e.Inventory.RemoveItem(ctx, ac.In.EntityID, itemID, 1)
	if err != nil {
		return interaction.Result{}, err
	}
	if !ok {
		return interaction.Failf("You don't have %s.", itemID), nil
	}
	after, err := e.putContent(ctx, ac.View.Key, itemID)
	if err != nil {
		e.giveBack(ctx, ac.Log, ac.In.EntityID, []string{itemID})
		return interaction.Result{}, err
	}
	spent := e.advanceTime(ctx, ac, e.timeCost(ac, ac.Interaction().TimeCost))

	return interaction.Succeed(
		fmt.Sprintf("You %s %s in the %s.", ac.In.Type.Verb(), itemID, ac.View.Name),
		map[string]any{
			"item_id":        itemID,
			"contents_count": len(after.Contents),
			"time_spent":     spent,
		},
	).WithEffects(map[string]any{"type": "item_lost", "item_id": itemID}), nil
}
