package action

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"
)

const eventActionExecuted = "action_executed"

// finish records metrics, the replay event and the journal line. None of
// these can change the result.
func (e *Engine) finish(ctx context.Context, ac *ActionContext, res interaction.Result, started time.Time) {
	if e.Metrics != nil {
		if res.Success {
			e.Metrics.RecordSuccess(ac.In.Type)
		} else {
			e.Metrics.RecordFailure(ac.In.Type)
		}
	}

	if e.Events != nil && ac.In.SessionID != "" {
		evt := world.DomainEvent{
			Type:       eventActionExecuted,
			OccurredAt: ac.In.NowAt.UTC(),
			Payload: map[string]any{
				"action_type": string(ac.In.Type),
				"entity_id":   ac.In.EntityID,
				"target_id":   ac.In.Req.TargetID,
				"success":     res.Success,
				"message":     res.Message,
			},
		}
		if err := e.Events.Append(ctx, ac.In.SessionID, []world.DomainEvent{evt}); err != nil {
			ac.Log.Warn().Err(err).Msg("append action event failed")
		}
	}

	elapsed := e.Now().Sub(started)
	if e.Journal != nil {
		entry := ports.JournalEntry{
			At:         ac.In.NowAt.UTC(),
			SessionID:  ac.In.SessionID,
			EntityID:   ac.In.EntityID,
			ActionType: string(ac.In.Type),
			TargetID:   ac.In.Req.TargetID,
			Parameters: ac.In.Req.Parameters,
			Success:    res.Success,
			Message:    res.Message,
			DurationMS: elapsed.Milliseconds(),
		}
		if err := e.Journal.Record(entry); err != nil {
			ac.Log.Warn().Err(err).Msg("journal write failed")
		}
	}

	ac.Log.Debug().
		Str("target_id", ac.In.Req.TargetID).
		Bool("success", res.Success).
		Dur("elapsed", elapsed).
		Msg(res.Message)
}

// advanceTime requests minutes of world time. Failure is logged and
// swallowed; it never undoes the action.
func (e *Engine) advanceTime(ctx context.Context, ac *ActionContext, minutes int) int {
	if minutes <= 0 || e.Clock == nil {
		return 0
	}
	if err := e.Clock.AdvanceTime(ctx, ac.In.SessionID, minutes); err != nil {
		ac.Log.Warn().Err(err).Int("minutes", minutes).Msg("time advance failed")
		return 0
	}
	return minutes
}

// timeCost prefers the object's configured cost over the tuning default.
func (e *Engine) timeCost(ac *ActionContext, configured int) int {
	if configured > 0 {
		return configured
	}
	return e.Tuning.TimeCost(ac.In.Type)
}

// grantEffects grants each carrier, logging individual failures. It returns
// the ids that were granted.
func (e *Engine) grantEffects(ctx context.Context, ac *ActionContext, source string, effectIDs ...string) []string {
	granted := make([]string, 0, len(effectIDs))
	for _, id := range effectIDs {
		if id == "" {
			continue
		}
		if e.Effects == nil {
			ac.Log.Warn().Str("effect_id", id).Msg("effects unavailable, carrier not granted")
			continue
		}
		if err := e.Effects.Grant(ctx, ac.In.SessionID, ac.In.EntityID, id, source); err != nil {
			ac.Log.Warn().Err(err).Str("effect_id", id).Msg("effect grant failed")
			continue
		}
		granted = append(granted, id)
	}
	return granted
}

// restore applies hp/mp through the stats collaborator. Zero amounts skip
// the call.
func (e *Engine) restore(ctx context.Context, ac *ActionContext, hp, mp int) (ports.RestoreOutcome, error) {
	if hp <= 0 && mp <= 0 {
		return ports.RestoreOutcome{Success: true}, nil
	}
	out, err := e.Stats.RestoreHPMP(ctx, ac.In.EntityID, hp, mp)
	if err != nil {
		return ports.RestoreOutcome{}, fmt.Errorf("restore hp/mp: %w", err)
	}
	if !out.Success {
		ac.Log.Warn().Str("reason", out.Message).Msg("restore rejected")
	}
	return out, nil
}

// requireItem checks the entity holds at least qty of itemID.
func (e *Engine) requireItem(ctx context.Context, entityID, itemID string, qty int) (bool, error) {
	have, err := e.Inventory.Quantity(ctx, entityID, itemID)
	if err != nil {
		return false, fmt.Errorf("inventory %s: %w", itemID, err)
	}
	return have >= qty, nil
}

// removeAll takes one unit of every id. On failure it puts back what it
// already took and reports the missing id.
func (e *Engine) removeAll(ctx context.Context, log zerolog.Logger, entityID string, itemIDs []string) (string, error) {
	removed := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		ok, err := e.Inventory.RemoveItem(ctx, entityID, id, 1)
		if err != nil || !ok {
			e.giveBack(ctx, log, entityID, removed)
			if err != nil {
				return id, fmt.Errorf("remove %s: %w", id, err)
			}
			return id, nil
		}
		removed = append(removed, id)
	}
	return "", nil
}

// addAll adds one unit of every id, removing what it added if a later add
// fails.
func (e *Engine) addAll(ctx context.Context, log zerolog.Logger, entityID string, itemIDs []string) error {
	added := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		if err := e.Inventory.AddItem(ctx, entityID, id, 1); err != nil {
			e.takeBack(ctx, log, entityID, added)
			return fmt.Errorf("add %s: %w", id, err)
		}
		added = append(added, id)
	}
	return nil
}

func (e *Engine) giveBack(ctx context.Context, log zerolog.Logger, entityID string, itemIDs []string) {
	for _, id := range itemIDs {
		if err := e.Inventory.AddItem(ctx, entityID, id, 1); err != nil {
			log.Error().Err(err).Str("item_id", id).Msg("compensation failed; item lost")
		}
	}
}

func (e *Engine) takeBack(ctx context.Context, log zerolog.Logger, entityID string, itemIDs []string) {
	for _, id := range itemIDs {
		if ok, err := e.Inventory.RemoveItem(ctx, entityID, id, 1); err != nil || !ok {
			log.Error().Err(err).Str("item_id", id).Msg("compensation failed; item duplicated")
		}
	}
}

var errNotInContents = errors.New("item not in contents")

// takeContent removes one itemID from the target's contents.
func (e *Engine) takeContent(ctx context.Context, ac *ActionContext, itemID string) (world.ObjectState, error) {
	return e.Objects.Modify(ctx, ac.View.Key, func(cur world.ObjectState) (world.ObjectPatch, error) {
		rest, ok := cur.WithoutContent(itemID)
		if !ok {
			return world.ObjectPatch{}, errNotInContents
		}
		return world.ObjectPatch{Contents: rest, SetContents: true}, nil
	})
}

// putContent appends itemID to the target's contents.
func (e *Engine) putContent(ctx context.Context, key world.ObjectKey, itemID string) (world.ObjectState, error) {
	return e.Objects.Modify(ctx, key, func(cur world.ObjectState) (world.ObjectPatch, error) {
		return world.ObjectPatch{Contents: append(cur.Contents, itemID), SetContents: true}, nil
	})
}

func (e *Engine) setState(ctx context.Context, key world.ObjectKey, state string) (world.ObjectState, error) {
	return e.Objects.Update(ctx, key, world.ObjectPatch{State: &state})
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
