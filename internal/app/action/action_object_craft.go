package action

import (
	"context"
	"fmt"

	"wayfarer/internal/domain/interaction"
)

type combineActionHandler struct{ BaseHandler }

func (combineActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	return e.Crafting.Combine(ctx, ac.In.EntityID, ac.In.SessionID, ac.In.Params.Strings(interaction.ParamItemIDs))
}

// recipeActionHandler serves cook and repair: the object's required_items are
// taken from the inventory and result_items are handed out.
type recipeActionHandler struct{ BaseHandler }

func (recipeActionHandler) Precheck(_ context.Context, _ *Engine, ac *ActionContext) error {
	cfg := ac.Interaction()
	if ac.In.Type == interaction.ObjectCook && len(cfg.ResultItems) == 0 {
		return invalid("nothing can be cooked on the %s", ac.View.Name)
	}
	return nil
}

func (recipeActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	cfg := ac.Interaction()
	need := map[string]int{}
	for _, id := range cfg.RequiredItems {
		need[id]++
	}
	for id, qty := range need {
		ok, err := e.requireItem(ctx, ac.In.EntityID, id, qty)
		if err != nil {
			return interaction.Result{}, err
		}
		if !ok {
			return interaction.FailWithData(
				fmt.Sprintf("You need %d %s to %s the %s.", qty, id, ac.In.Type.Verb(), ac.View.Name),
				map[string]any{"required_items": append([]string{}, cfg.RequiredItems...)},
			), nil
		}
	}

	missing, err := e.removeAll(ctx, ac.Log, ac.In.EntityID, cfg.RequiredItems)
	if err != nil {
		return interaction.Result{}, err
	}
	if missing != "" {
		return interaction.Failf("%s is no longer in your inventory.", missing), nil
	}
	if err := e.addAll(ctx, ac.Log, ac.In.EntityID, cfg.ResultItems); err != nil {
		e.giveBack(ctx, ac.Log, ac.In.EntityID, cfg.RequiredItems)
		return interaction.Result{}, err
	}

	state := cfg.State
	if state == "" && ac.In.Type == interaction.ObjectRepair {
		state = "repaired"
	}
	if state != "" {
		if _, err := e.setState(ctx, ac.View.Key, state); err != nil {
			e.takeBack(ctx, ac.Log, ac.In.EntityID, cfg.ResultItems)
			e.giveBack(ctx, ac.Log, ac.In.EntityID, cfg.RequiredItems)
			return interaction.Result{}, err
		}
	}
	spent := e.advanceTime(ctx, ac, e.timeCost(ac, cfg.TimeCost))

	res := interaction.Succeed(
		fmt.Sprintf("You %s at the %s.", ac.In.Type.Verb(), ac.View.Name),
		map[string]any{
			"consumed_items": append([]string{}, cfg.RequiredItems...),
			"result_items":   append([]string{}, cfg.ResultItems...),
			"state":          orDefault(state, ac.View.Object.State),
			"time_spent":     spent,
		},
	)
	for _, id := range cfg.ResultItems {
		res = res.WithEffects(map[string]any{"type": "item_gained", "item_id": id})
	}
	return res, nil
}
