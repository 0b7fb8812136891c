package action

import (
	"context"
	"errors"
	"fmt"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"
)

const exploredState = "explored"

type moveActionHandler struct{ BaseHandler }

func (moveActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	if !world.PropBool(ac.View.Object.Properties, "passable", true) {
		return interaction.Failf("You cannot %s the %s.", verbPhrase(ac.In.Type), ac.View.Name), nil
	}
	from, err := e.Locations.CellOf(ctx, ac.In.SessionID, ac.In.EntityID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return interaction.Result{}, err
	}
	to := ac.TargetRef()
	if from == to {
		return interaction.Failf("You are already in the %s.", ac.View.Name), nil
	}
	if err := e.Locations.SetCell(ctx, ac.In.SessionID, ac.In.EntityID, to); err != nil {
		return interaction.Result{}, err
	}
	spent := e.advanceTime(ctx, ac, e.timeCost(ac, ac.Interaction().TimeCost))

	return interaction.Succeed(
		fmt.Sprintf("You %s the %s.", verbPhrase(ac.In.Type), ac.View.Name),
		map[string]any{"cell": to, "from": from, "time_spent": spent},
	), nil
}

type lookActionHandler struct{ BaseHandler }

func (lookActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	if ac.In.Req.TargetID == "" {
		key, err := e.currentCell(ctx, ac)
		if err != nil {
			return interaction.Result{}, err
		}
		if key.SessionID == "" {
			return interaction.Result{}, notFound("current cell")
		}
		st, err := e.Objects.Load(ctx, key)
		if errors.Is(err, ports.ErrNotFound) {
			return interaction.Result{}, notFound("current cell")
		}
		if err != nil {
			return interaction.Result{}, err
		}
		ac.View.Target.RuntimeHandle = key.RuntimeHandle
		ac.View.Target.TemplateKey = key.TemplateKey
		ac.View.Key = key
		ac.View.Object = st
		ac.View.Name = displayName(st.Properties, key.TemplateKey)
	}

	st := ac.View.Object
	occupants, err := e.Locations.CountInCell(ctx, ac.In.SessionID, ac.TargetRef())
	if err != nil {
		return interaction.Result{}, err
	}
	desc := world.PropString(st.Properties, "description")
	msg := fmt.Sprintf("You look around the %s.", ac.View.Name)
	if desc != "" {
		msg += " " + desc
	}
	return interaction.Succeed(msg, map[string]any{
		"cell":        ac.TargetRef(),
		"name":        ac.View.Name,
		"description": desc,
		"state":       st.State,
		"contents":    append([]string{}, st.Contents...),
		"occupants":   occupants,
	}), nil
}

type exploreActionHandler struct{ BaseHandler }

func (exploreActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	cfg := ac.Interaction()
	var (
		first bool
		prev  string
	)
	_, err := e.Objects.Modify(ctx, ac.View.Key, func(cur world.ObjectState) (world.ObjectPatch, error) {
		first = cur.State != exploredState
		prev = cur.State
		state := exploredState
		return world.ObjectPatch{State: &state}, nil
	})
	if err != nil {
		return interaction.Result{}, err
	}

	var found []string
	if first && len(cfg.ResultItems) > 0 {
		if e.Inventory == nil {
			ac.Log.Warn().Strs("items", cfg.ResultItems).Msg("inventory unavailable, discoveries not spawned")
		} else {
			if err := e.addAll(ctx, ac.Log, ac.In.EntityID, cfg.ResultItems); err != nil {
				if _, rerr := e.setState(ctx, ac.View.Key, prev); rerr != nil {
					ac.Log.Error().Err(rerr).Msg("revert exploration failed")
				}
				return interaction.Result{}, err
			}
			found = append(found, cfg.ResultItems...)
		}
	}
	spent := e.advanceTime(ctx, ac, e.timeCost(ac, cfg.TimeCost))

	msg := fmt.Sprintf("You explore the %s.", ac.View.Name)
	switch {
	case len(found) > 0:
		msg += fmt.Sprintf(" You discover %d item(s).", len(found))
	case !first:
		msg += " Nothing new turns up."
	}
	res := interaction.Succeed(msg, map[string]any{
		"cell":        ac.TargetRef(),
		"first_visit": first,
		"found_items": found,
		"time_spent":  spent,
	})
	for _, id := range found {
		res = res.WithEffects(map[string]any{"type": "item_gained", "item_id": id})
	}
	return res, nil
}
