package action

import (
	"context"
	"fmt"

	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"
)

// setStateActionHandler serves the state change and position families. The
// target state is set unconditionally; objects may override it per verb.
type setStateActionHandler struct {
	BaseHandler
	state string
}

var verbPhrases = map[interaction.ActionType]string{
	interaction.ObjectSit:     "sit on",
	interaction.ObjectStand:   "stand up from",
	interaction.ObjectLie:     "lie down on",
	interaction.ObjectGetUp:   "get up from",
	interaction.ObjectClimb:   "climb",
	interaction.ObjectDescend: "climb down from",
	interaction.CellMove:      "move to",
	interaction.CellEnter:     "enter",
}

func verbPhrase(t interaction.ActionType) string {
	if p, ok := verbPhrases[t]; ok {
		return p
	}
	return t.Verb()
}

func (h setStateActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	cfg := ac.Interaction()
	next := orDefault(cfg.State, h.state)
	prev := ac.View.Object.State

	st, err := e.setState(ctx, ac.View.Key, next)
	if err != nil {
		return interaction.Result{}, err
	}
	spent := e.advanceTime(ctx, ac, e.timeCost(ac, cfg.TimeCost))

	return interaction.Succeed(
		fmt.Sprintf("You %s the %s.", verbPhrase(ac.In.Type), ac.View.Name),
		map[string]any{
			"state":          st.State,
			"previous_state": prev,
			"time_spent":     spent,
		},
	), nil
}

type destroyActionHandler struct {
	BaseHandler
	state          string
	requireResults bool
}

func (h destroyActionHandler) Precheck(_ context.Context, _ *Engine, ac *ActionContext) error {
	cfg := ac.Interaction()
	if h.requireResults && len(cfg.ResultItems) == 0 {
		return invalid("the %s cannot be %s", ac.View.Name, h.state)
	}
	if terminal := orDefault(cfg.State, h.state); ac.View.Object.State == terminal {
		return invalid("the %s is already %s", ac.View.Name, terminal)
	}
	return nil
}

// Execute claims the terminal state before spawning results, so only one
// caller ever collects them.
func (h destroyActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	cfg := ac.Interaction()
	terminal := orDefault(cfg.State, h.state)
	var prev string
	st, err := e.Objects.Modify(ctx, ac.View.Key, func(cur world.ObjectState) (world.ObjectPatch, error) {
		if cur.State == terminal {
			return world.ObjectPatch{}, invalid("the %s is already %s", ac.View.Name, terminal)
		}
		prev = cur.State
		return world.ObjectPatch{State: &terminal}, nil
	})
	if err != nil {
		return interaction.Result{}, err
	}

	results := cfg.ResultItems
	if err := e.addAll(ctx, ac.Log, ac.In.EntityID, results); err != nil {
		if _, rerr := e.setState(ctx, ac.View.Key, prev); rerr != nil {
			ac.Log.Error().Err(rerr).Msg("revert destruction failed")
		}
		return interaction.Result{}, err
	}
	spent := e.advanceTime(ctx, ac, e.timeCost(ac, cfg.TimeCost))

	msg := fmt.Sprintf("You %s the %s.", ac.In.Type.Verb(), ac.View.Name)
	if len(results) > 0 {
		msg += fmt.Sprintf(" You recover %d item(s).", len(results))
	}
	res := interaction.Succeed(msg, map[string]any{
		"state":        st.State,
		"result_items": append([]string{}, results...),
		"time_spent":   spent,
	})
	for _, id := range results {
		res = res.WithEffects(map[string]any{"type": "item_gained", "item_id": id})
	}
	return res, nil
}
