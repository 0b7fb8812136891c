package action

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"
)

const maxWrittenContent = 2000

type learnActionHandler struct{ BaseHandler }

func (learnActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	st := ac.View.Object
	cfg := ac.Interaction()
	content := orDefault(cfg.Content, world.PropString(st.Properties, "content"))
	written := world.PropString(st.Properties, "written_content")
	if content == "" && written != "" {
		content = written
	}
	if content == "" && cfg.EffectCarrierID == "" && len(cfg.ResultItems) == 0 {
		return interaction.Failf("There is nothing to %s on the %s.", ac.In.Type.Verb(), ac.View.Name), nil
	}

	if len(cfg.ResultItems) > 0 {
		if e.Inventory == nil {
			ac.Log.Warn().Strs("items", cfg.ResultItems).Msg("inventory unavailable, result items not spawned")
		} else if err := e.addAll(ctx, ac.Log, ac.In.EntityID, cfg.ResultItems); err != nil {
			return interaction.Result{}, err
		}
	}
	granted := e.grantEffects(ctx, ac, ac.View.Key.StorageID(), cfg.EffectCarrierID)
	spent := e.advanceTime(ctx, ac, e.timeCost(ac, cfg.TimeCost))

	msg := fmt.Sprintf("You %s the %s.", ac.In.Type.Verb(), ac.View.Name)
	if content != "" {
		msg += " " + content
	}
	res := interaction.Succeed(msg, map[string]any{
		"content":            content,
		"effect_carrier_ids": granted,
		"effects_applied":    len(granted),
		"result_items":       append([]string{}, cfg.ResultItems...),
		"time_spent":         spent,
	})
	return res.WithEffects(restoreEffects(0, 0, granted)...), nil
}

type writeActionHandler struct{ BaseHandler }

func (writeActionHandler) Precheck(_ context.Context, _ *Engine, ac *ActionContext) error {
	content := ac.In.Params.String(interaction.ParamContent)
	if utf8.RuneCountInString(content) > maxWrittenContent {
		return invalid("content must be at most %d characters", maxWrittenContent)
	}
	return nil
}

func (writeActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	content := ac.In.Params.String(interaction.ParamContent)
	cfg := ac.Interaction()
	_, err := e.Objects.Modify(ctx, ac.View.Key, func(cur world.ObjectState) (world.ObjectPatch, error) {
		props := world.CloneProps(cur.Properties)
		if props == nil {
			props = map[string]any{}
		}
		props["written_content"] = content
		props["written_by"] = ac.In.EntityID
		return world.ObjectPatch{Properties: props}, nil
	})
	if err != nil {
		return interaction.Result{}, err
	}
	granted := e.grantEffects(ctx, ac, ac.View.Key.StorageID(), cfg.EffectCarrierID)
	spent := e.advanceTime(ctx, ac, e.timeCost(ac, cfg.TimeCost))

	return interaction.Succeed(
		fmt.Sprintf("You write on the %s: %q", ac.View.Name, strings.TrimSpace(content)),
		map[string]any{
			"written_content":    content,
			"effect_carrier_ids": granted,
			"time_spent":         spent,
		},
	), nil
}
