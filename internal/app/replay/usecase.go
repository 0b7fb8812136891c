package replay

import (
	"context"
	"errors"
	"strings"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return Response{}, ErrInvalidRequest
	}
	if req.OccurredFrom > 0 && req.OccurredTo > 0 && req.OccurredFrom > req.OccurredTo {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	// Filters run before the limit, so narrow queries read the whole log.
	fetch := limit
	if req.EntityID != "" || req.OccurredFrom > 0 || req.OccurredTo > 0 {
		fetch = 0
	}
	events, err := u.Events.ListBySession(ctx, req.SessionID, fetch)
	if err != nil {
		return Response{}, err
	}
	events = filterByEntity(events, req.EntityID)
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	return Response{Events: events, Summary: summarize(events)}, nil
}

func filterByEntity(events []world.DomainEvent, entityID string) []world.DomainEvent {
	if entityID == "" {
		return events
	}
	out := make([]world.DomainEvent, 0, len(events))
	for _, evt := range events {
		if id, _ := evt.Payload["entity_id"].(string); id == entityID {
			out = append(out, evt)
		}
	}
	return out
}

func filterByTimeWindow(events []world.DomainEvent, from, to int64) []world.DomainEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]world.DomainEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

func summarize(events []world.DomainEvent) Summary {
	s := Summary{ByAction: map[string]int{}}
	for _, evt := range events {
		at, ok := evt.Payload["action_type"].(string)
		if !ok {
			continue
		}
		s.Total++
		s.ByAction[at]++
		if success, _ := evt.Payload["success"].(bool); success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
