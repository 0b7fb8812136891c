package status

import (
	"context"
	"errors"
	"strings"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Clock     ports.Clock
	Locations ports.LocationRepository
	Equipment ports.EquipmentRepository
	Cycle     world.Clock
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.EntityID = strings.TrimSpace(req.EntityID)
	if req.SessionID == "" || req.EntityID == "" {
		return Response{}, ErrInvalidRequest
	}

	resp := Response{SessionID: req.SessionID, EntityID: req.EntityID, Equipment: map[string]string{}}
	if u.Clock != nil {
		minutes, err := u.Clock.Now(ctx, req.SessionID)
		if err != nil {
			return Response{}, err
		}
		phase, left := u.Cycle.PhaseAt(minutes)
		resp.WorldMinutes = minutes
		resp.Day = u.Cycle.DayNumber(minutes)
		resp.TimeOfDay = string(phase)
		resp.NextPhaseInMinutes = left
	}
	if u.Locations != nil {
		cell, err := u.Locations.CellOf(ctx, req.SessionID, req.EntityID)
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return Response{}, err
		}
		resp.CellID = cell
	}
	if u.Equipment != nil {
		slots, err := u.Equipment.Slots(ctx, req.SessionID, req.EntityID)
		if err != nil {
			return Response{}, err
		}
		for k, v := range slots {
			resp.Equipment[k] = v
		}
	}
	return resp, nil
}
