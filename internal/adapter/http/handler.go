package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"wayfarer/internal/app/action"
	"wayfarer/internal/app/ports"
	"wayfarer/internal/app/replay"
	"wayfarer/internal/app/status"
	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const sessionHeader = "X-Session-ID"

type actionExecutor interface {
	Execute(ctx context.Context, req action.Request) interaction.Result
}

type effectLister interface {
	ListForEntity(ctx context.Context, sessionID, entityID string) ([]world.OwnedEffect, error)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

type Handler struct {
	Actions  actionExecutor
	Effects  effectLister
	ReplayUC replay.UseCase
	StatusUC status.UseCase
	KPI      kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	api.POST("/action", h.action)
	api.GET("/effects", h.effects)
	api.GET("/replay", h.replay)
	api.GET("/status", h.status)

	s.GET("/ops/kpi", h.kpi)
}

type actionRequest struct {
	SessionID  string         `json:"session_id,omitempty"`
	EntityID   string         `json:"entity_id"`
	ActionType string         `json:"action_type"`
	TargetID   string         `json:"target_id,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

type effectsResponse struct {
	SessionID string              `json:"session_id"`
	EntityID  string              `json:"entity_id"`
	Effects   []world.OwnedEffect `json:"effects"`
}

var ErrMissingSession = errors.New("missing session id")
var ErrMissingEntity = errors.New("missing entity id")

// action always answers 200 once the body decodes. Domain failures travel in
// the result envelope.
func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if h.Actions == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "action engine not configured")
		return
	}

	params := body.Parameters
	if params == nil {
		params = map[string]any{}
	}
	session := firstNonEmpty(body.SessionID, string(ctx.GetHeader(sessionHeader)))
	if _, ok := params[interaction.ParamSessionID]; !ok && session != "" {
		params[interaction.ParamSessionID] = session
	}

	res := h.Actions.Execute(c, action.Request{
		EntityID:   body.EntityID,
		ActionType: interaction.ActionType(body.ActionType),
		TargetID:   body.TargetID,
		Parameters: params,
	})
	ctx.JSON(consts.StatusOK, res)
}

func (h Handler) effects(c context.Context, ctx *app.RequestContext) {
	sessionID := firstNonEmpty(string(ctx.Query("session_id")), string(ctx.GetHeader(sessionHeader)))
	entityID := strings.TrimSpace(string(ctx.Query("entity_id")))
	if sessionID == "" {
		writeError(ctx, ErrMissingSession)
		return
	}
	if entityID == "" {
		writeError(ctx, ErrMissingEntity)
		return
	}
	if h.Effects == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "effects not configured")
		return
	}

	owned, err := h.Effects.ListForEntity(c, sessionID, entityID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, effectsResponse{SessionID: sessionID, EntityID: entityID, Effects: owned})
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SessionID:    firstNonEmpty(string(ctx.Query("session_id")), string(ctx.GetHeader(sessionHeader))),
		EntityID:     strings.TrimSpace(string(ctx.Query("entity_id"))),
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{
		SessionID: firstNonEmpty(string(ctx.Query("session_id")), string(ctx.GetHeader(sessionHeader))),
		EntityID:  string(ctx.Query("entity_id")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingSession):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_session_id", err.Error())
	case errors.Is(err, ErrMissingEntity):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_entity_id", err.Error())
	case errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, action.ErrValidation):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
