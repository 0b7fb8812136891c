package effects

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

var ErrInvalidEffect = errors.New("invalid effect")

const hydrateConcurrency = 8

// Service owns the effect template registry and the ownership ledger.
type Service struct {
	Templates  ports.EffectTemplateRepository
	Ownerships ports.EffectOwnershipRepository
	TxMgr      ports.TxManager
	Logger     zerolog.Logger
	Now        func() time.Time
}

func (s Service) Create(ctx context.Context, tpl world.EffectTemplate) (world.EffectTemplate, error) {
	tpl, err := normalize(tpl)
	if err != nil {
		return world.EffectTemplate{}, err
	}
	if err := s.Templates.Create(ctx, tpl); err != nil {
		return world.EffectTemplate{}, err
	}
	return tpl, nil
}

func (s Service) Get(ctx context.Context, effectID string) (world.EffectTemplate, error) {
	return s.Templates.Get(ctx, strings.TrimSpace(effectID))
}

func (s Service) Update(ctx context.Context, tpl world.EffectTemplate) (world.EffectTemplate, error) {
	tpl, err := normalize(tpl)
	if err != nil {
		return world.EffectTemplate{}, err
	}
	if err := s.Templates.Update(ctx, tpl); err != nil {
		return world.EffectTemplate{}, err
	}
	return tpl, nil
}

// Delete removes the template and every ownership row pointing at it.
func (s Service) Delete(ctx context.Context, effectID string) error {
	effectID = strings.TrimSpace(effectID)
	return s.inTx(ctx, func(ctx context.Context) error {
		if err := s.Templates.Delete(ctx, effectID); err != nil {
			return err
		}
		if s.Ownerships == nil {
			return nil
		}
		_, err := s.Ownerships.DeleteByEffect(ctx, effectID)
		return err
	})
}

// Grant appends an ownership row. Granting an effect the entity already
// holds adds another stack.
func (s Service) Grant(ctx context.Context, sessionID, entityID, effectID, source string) error {
	sessionID = strings.TrimSpace(sessionID)
	entityID = strings.TrimSpace(entityID)
	effectID = strings.TrimSpace(effectID)
	if sessionID == "" || entityID == "" || effectID == "" {
		return ErrInvalidEffect
	}
	if _, err := s.Templates.Get(ctx, effectID); err != nil {
		return fmt.Errorf("effect %s: %w", effectID, err)
	}
	return s.Ownerships.Append(ctx, world.EffectOwnership{
		SessionID:  sessionID,
		EntityID:   entityID,
		EffectID:   effectID,
		Source:     source,
		AcquiredAt: s.now(),
	})
}

// Revoke removes every stack of effectID from the entity and reports how
// many rows were removed. No rows is ports.ErrNotFound.
func (s Service) Revoke(ctx context.Context, sessionID, entityID, effectID string) (int, error) {
	n, err := s.Ownerships.DeleteAll(ctx, strings.TrimSpace(sessionID), strings.TrimSpace(entityID), strings.TrimSpace(effectID))
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ports.ErrNotFound
	}
	return n, nil
}

// ListForEntity hydrates the entity's ownership rows with their templates,
// keeping ledger order. Rows whose template is gone are skipped.
func (s Service) ListForEntity(ctx context.Context, sessionID, entityID string) ([]world.OwnedEffect, error) {
	rows, err := s.Ownerships.ListByEntity(ctx, sessionID, entityID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []world.OwnedEffect{}, nil
	}

	hydrated := make([]*world.OwnedEffect, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(hydrateConcurrency)
	for i, row := range rows {
		g.Go(func() error {
			tpl, err := s.Templates.Get(gctx, row.EffectID)
			if errors.Is(err, ports.ErrNotFound) {
				s.Logger.Warn().
					Str("session_id", sessionID).
					Str("entity_id", entityID).
					Str("effect_id", row.EffectID).
					Msg("owned effect has no template")
				return nil
			}
			if err != nil {
				return err
			}
			hydrated[i] = &world.OwnedEffect{EffectTemplate: tpl, Source: row.Source, AcquiredAt: row.AcquiredAt}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]world.OwnedEffect, 0, len(rows))
	for _, h := range hydrated {
		if h != nil {
			out = append(out, *h)
		}
	}
	return out, nil
}

func normalize(tpl world.EffectTemplate) (world.EffectTemplate, error) {
	tpl.EffectID = strings.TrimSpace(tpl.EffectID)
	if tpl.EffectID == "" {
		return world.EffectTemplate{}, ErrInvalidEffect
	}
	if strings.TrimSpace(tpl.Name) == "" {
		tpl.Name = tpl.EffectID
	}
	if tpl.Type == "" {
		tpl.Type = world.EffectBuff
	}
	tpl.Tags = world.DedupeTags(tpl.Tags)
	return tpl, nil
}

func (s Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.TxMgr == nil {
		return fn(ctx)
	}
	return s.TxMgr.RunInTx(ctx, fn)
}

func (s Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
