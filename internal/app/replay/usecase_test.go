package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"wayfarer/internal/domain/world"
)

func actionEvent(at int64, entity, actionType string, success bool) world.DomainEvent {
	return world.DomainEvent{
		Type:       "action_executed",
		OccurredAt: time.Unix(at, 0),
		Payload: map[string]any{
			"action_type": actionType,
			"entity_id":   entity,
			"success":     success,
		},
	}
}

func TestUseCase_SummarizesEvents(t *testing.T) {
	repo := &fakeRepo{events: []world.DomainEvent{
		actionEvent(1, "a", "object.open", true),
		actionEvent(2, "a", "object.open", false),
		actionEvent(3, "b", "time.wait", true),
		{Type: "session_started", OccurredAt: time.Unix(4, 0)},
	}}

	out, err := UseCase{Events: repo}.Execute(context.Background(), Request{SessionID: "s-1", Limit: 10})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(out.Events))
	}
	s := out.Summary
	if s.Total != 3 || s.Succeeded != 2 || s.Failed != 1 || s.ByAction["object.open"] != 2 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestUseCase_AppliesFiltersBeforeLimit(t *testing.T) {
	repo := &fakeRepo{events: []world.DomainEvent{
		actionEvent(100, "a", "object.open", true),
		actionEvent(200, "b", "object.open", true),
		actionEvent(300, "a", "object.close", true),
		actionEvent(400, "b", "object.close", true),
	}}

	out, err := UseCase{Events: repo}.Execute(context.Background(), Request{SessionID: "s-1", EntityID: "a", Limit: 1})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if repo.lastLimit != 0 {
		t.Fatalf("expected unbounded read for filtered replay, got limit %d", repo.lastLimit)
	}
	if len(out.Events) != 1 || out.Events[0].Payload["action_type"] != "object.close" {
		t.Fatalf("expected newest event of entity a, got %+v", out.Events)
	}

	out, err = UseCase{Events: repo}.Execute(context.Background(), Request{SessionID: "s-1", OccurredFrom: 150, OccurredTo: 350})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Events) != 2 {
		t.Fatalf("expected 2 events in window, got %d", len(out.Events))
	}
}

func TestUseCase_RejectsInvalidRequests(t *testing.T) {
	uc := UseCase{Events: &fakeRepo{}}
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for missing session, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), Request{SessionID: "s-1", OccurredFrom: 10, OccurredTo: 5}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for inverted window, got %v", err)
	}
}

type fakeRepo struct {
	events    []world.DomainEvent
	lastLimit int
}

func (r *fakeRepo) Append(_ context.Context, _ string, _ []world.DomainEvent) error {
	return nil
}

func (r *fakeRepo) ListBySession(_ context.Context, _ string, limit int) ([]world.DomainEvent, error) {
	r.lastLimit = limit
	if limit > 0 && len(r.events) > limit {
		return r.events[len(r.events)-limit:], nil
	}
	return r.events, nil
}
