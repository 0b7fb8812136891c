package action

import (
	"context"
	"errors"
	"fmt"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/interaction"
)

type consumeFromObjectActionHandler struct{ BaseHandler }

func (consumeFromObjectActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	st := ac.View.Object
	itemID := ac.In.Params.String(interaction.ParamItemID)
	if itemID == "" && len(st.Contents) > 0 {
		itemID = st.Contents[0]
	}
	if itemID == "" {
		return interaction.Failf("There is nothing to %s in the %s.", ac.In.Type.Verb(), ac.View.Name), nil
	}
	if !st.HasContent(itemID) {
		return interaction.Failf("%s is not in the %s.", itemID, ac.View.Name), nil
	}

	tpl, err := e.Templates.GetItem(ctx, itemID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return interaction.Result{}, err
	}
	cfg := ac.Interaction()
	hp, mp := cfg.HPRestore, cfg.MPRestore
	if hp == 0 && mp == 0 {
		hp, mp = tpl.Restore()
	}
	carriers := append([]string{}, tpl.EffectCarrierIDs()...)
	if cfg.EffectCarrierID != "" {
		carriers = append([]string{cfg.EffectCarrierID}, carriers...)
	}

	if _, err := e.takeContent(ctx, ac, itemID); err != nil {
		if errors.Is(err, errNotInContents) {
			return interaction.Failf("%s is not in the %s.", itemID, ac.View.Name), nil
		}
		return interaction.Result{}, err
	}
	out, err := e.restore(ctx, ac, hp, mp)
	if err != nil {
		if _, perr := e.putContent(ctx, ac.View.Key, itemID); perr != nil {
			ac.Log.Error().Err(perr).Str("item_id", itemID).Msg("compensation failed; item lost")
		}
		return interaction.Result{}, err
	}
	granted := e.grantEffects(ctx, ac, ac.View.Key.StorageID(), carriers...)
	spent := e.advanceTime(ctx, ac, e.timeCost(ac, cfg.TimeCost))

	name := orDefault(tpl.Name, itemID)
	res := interaction.Succeed(
		fmt.Sprintf("You %s the %s from the %s.", ac.In.Type.Verb(), name, ac.View.Name),
		map[string]any{
			"item_id":            itemID,
			"hp_restored":        out.HP,
			"mp_restored":        out.MP,
			"effect_carrier_ids": granted,
			"effects_applied":    len(granted),
			"time_spent":         spent,
		},
	)
	return res.WithEffects(restoreEffects(out.HP, out.MP, granted)...), nil
}
