package objectstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

const maxUpdateAttempts = 3

type Service struct {
	States    ports.ObjectStateRepository
	Templates ports.TemplateRepository
	Metrics   ports.ActionMetrics
	Logger    zerolog.Logger
	Now       func() time.Time
}

// Get returns the stored state, or ports.ErrNotFound.
func (s Service) Get(ctx context.Context, key world.ObjectKey) (world.ObjectState, error) {
	return s.States.Get(ctx, key)
}

// Load returns the stored state or, when none exists yet, the template's
// initial state. The fallback is not persisted.
func (s Service) Load(ctx context.Context, key world.ObjectKey) (world.ObjectState, error) {
	st, err := s.States.Get(ctx, key)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return world.ObjectState{}, err
	}
	return s.initialState(ctx, key, true)
}

// Update merges patch into the current state and writes it with a version
// check, retrying on concurrent writes. Missing state is created.
func (s Service) Update(ctx context.Context, key world.ObjectKey, patch world.ObjectPatch) (world.ObjectState, error) {
	return s.Modify(ctx, key, func(world.ObjectState) (world.ObjectPatch, error) {
		return patch, nil
	})
}

// Modify is Update with the patch derived from the current state. fn runs
// again on every retry; an error from fn aborts without writing.
func (s Service) Modify(ctx context.Context, key world.ObjectKey, fn func(current world.ObjectState) (world.ObjectPatch, error)) (world.ObjectState, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		current, err := s.States.Get(ctx, key)
		if errors.Is(err, ports.ErrNotFound) {
			current, err = s.initialState(ctx, key, false)
		}
		if err != nil {
			return world.ObjectState{}, err
		}

		patch, err := fn(current.Clone())
		if err != nil {
			return world.ObjectState{}, err
		}
		next := current.Apply(patch)
		next.RuntimeHandle = key.RuntimeHandle
		next.TemplateKey = key.TemplateKey
		next.SessionID = key.SessionID
		next.Version = current.Version + 1
		next.UpdatedAt = s.now()

		err = s.States.Save(ctx, next, current.Version)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, ports.ErrConflict) {
			return world.ObjectState{}, err
		}
		lastErr = err
		if s.Metrics != nil {
			s.Metrics.RecordConflict()
		}
		s.Logger.Debug().Str("object", key.StorageID()).Int("attempt", attempt+1).Msg("object state version conflict")
	}
	return world.ObjectState{}, fmt.Errorf("update object %s: %w", key.StorageID(), lastErr)
}

func (s Service) initialState(ctx context.Context, key world.ObjectKey, strict bool) (world.ObjectState, error) {
	st := world.NewObjectState(key)
	if s.Templates == nil || key.TemplateKey == "" {
		if strict {
			return world.ObjectState{}, ports.ErrNotFound
		}
		return st, nil
	}
	tpl, err := s.Templates.GetObject(ctx, key.TemplateKey)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) && !strict {
			return st, nil
		}
		return world.ObjectState{}, err
	}
	return FromTemplate(key, tpl), nil
}

// FromTemplate builds the initial state of an object spawned from tpl.
func FromTemplate(key world.ObjectKey, tpl world.ObjectTemplate) world.ObjectState {
	st := world.NewObjectState(key)
	st.Properties = world.CloneProps(tpl.Properties)
	if st.Properties == nil {
		st.Properties = map[string]any{}
	}
	if tpl.Description != "" {
		if _, ok := st.Properties["description"]; !ok {
			st.Properties["description"] = tpl.Description
		}
	}
	if initial := world.PropString(tpl.Properties, "initial_state"); initial != "" {
		st.State = initial
	}
	st.Contents = append(st.Contents, world.PropStrings(tpl.Properties, "initial_contents")...)
	return st
}

func (s Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
