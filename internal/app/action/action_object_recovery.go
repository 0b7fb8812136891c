package action

import (
	"context"
	"fmt"

	"wayfarer/internal/domain/interaction"
)

type recoveryActionHandler struct {
	BaseHandler
	state string
}

func (h recoveryActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	cfg := ac.Interaction()
	hp, mp := cfg.HPRestore, cfg.MPRestore
	if hp == 0 && mp == 0 {
		def := e.Tuning.RecoveryRestore[ac.In.Type]
		hp, mp = def.HP, def.MP
	}
	prev := ac.View.Object.State

	st, err := e.setState(ctx, ac.View.Key, orDefault(cfg.State, h.state))
	if err != nil {
		return interaction.Result{}, err
	}
	out, err := e.restore(ctx, ac, hp, mp)
	if err != nil {
		if _, rerr := e.setState(ctx, ac.View.Key, prev); rerr != nil {
			ac.Log.Error().Err(rerr).Msg("revert occupancy failed")
		}
		return interaction.Result{}, err
	}
	granted := e.grantEffects(ctx, ac, string(ac.In.Type), cfg.EffectCarrierID)
	spent := e.advanceTime(ctx, ac, e.Tuning.ClampRecovery(e.timeCost(ac, cfg.TimeCost)))

	res := interaction.Succeed(
		fmt.Sprintf("You %s at the %s and recover %d hp and %d mp.", ac.In.Type.Verb(), ac.View.Name, out.HP, out.MP),
		map[string]any{
			"state":              st.State,
			"hp_restored":        out.HP,
			"mp_restored":        out.MP,
			"effect_carrier_ids": granted,
			"effects_applied":    len(granted),
			"time_spent":         spent,
		},
	)
	return res.WithEffects(restoreEffects(out.HP, out.MP, granted)...), nil
}

func restoreEffects(hp, mp int, granted []string) []map[string]any {
	var out []map[string]any
	if hp > 0 {
		out = append(out, map[string]any{"type": "hp", "amount": hp})
	}
	if mp > 0 {
		out = append(out, map[string]any{"type": "mp", "amount": mp})
	}
	for _, id := range granted {
		out = append(out, map[string]any{"type": "effect_granted", "effect_id": id})
	}
	return out
}
