package action

import (
	"context"
	"fmt"

	"wayfarer/internal/domain/interaction"
)

type waitActionHandler struct{ BaseHandler }

func (waitActionHandler) minutes(e *Engine, ac *ActionContext) int {
	if ac.In.Params.Has(interaction.ParamMinutes) {
		return ac.In.Params.Int(interaction.ParamMinutes)
	}
	return e.Tuning.WaitDefaultMinutes
}

func (h waitActionHandler) Precheck(_ context.Context, e *Engine, ac *ActionContext) error {
	m := h.minutes(e, ac)
	if m < 1 || m > e.Tuning.WaitMaxMinutes {
		return invalid("minutes must be between 1 and %d", e.Tuning.WaitMaxMinutes)
	}
	return nil
}

// Execute advances the clock. Here the advance is the action itself, so its
// failure is reported.
func (h waitActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	m := h.minutes(e, ac)
	if err := e.Clock.AdvanceTime(ctx, ac.In.SessionID, m); err != nil {
		ac.Log.Warn().Err(err).Int("minutes", m).Msg("wait failed")
		return interaction.Fail("Time could not advance."), nil
	}
	data, err := e.timeData(ctx, ac)
	if err != nil {
		return interaction.Result{}, err
	}
	data["time_spent"] = m
	return interaction.Succeed(fmt.Sprintf("You wait for %d minutes.", m), data), nil
}

type checkTimeActionHandler struct{ BaseHandler }

func (checkTimeActionHandler) Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error) {
	data, err := e.timeData(ctx, ac)
	if err != nil {
		return interaction.Result{}, err
	}
	return interaction.Succeed(
		fmt.Sprintf("It is day %d, %s. %d minutes until %s.", data["day"], data["phase"], data["phase_minutes_left"], nextPhase(data["phase"])),
		data,
	), nil
}

func (e *Engine) timeData(ctx context.Context, ac *ActionContext) (map[string]any, error) {
	now, err := e.Clock.Now(ctx, ac.In.SessionID)
	if err != nil {
		return nil, err
	}
	phase, left := e.clock.PhaseAt(now)
	return map[string]any{
		"world_minutes":      now,
		"day":                e.clock.DayNumber(now),
		"phase":              string(phase),
		"phase_minutes_left": left,
	}, nil
}

func nextPhase(phase any) string {
	if phase == "day" {
		return "night"
	}
	return "day"
}
