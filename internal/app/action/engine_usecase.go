package action

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wayfarer/internal/app/crafting"
	"wayfarer/internal/app/effects"
	"wayfarer/internal/app/identity"
	"wayfarer/internal/app/objectstate"
	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"
)

const tracerName = "wayfarer/internal/app/action"

// Deps are the collaborators handlers may use. Nil members make the actions
// that require them unavailable.
type Deps struct {
	References ports.ReferenceRepository
	Objects    *objectstate.Service
	Effects    *effects.Service
	Crafting   *crafting.Engine
	Inventory  ports.Inventory
	Stats      ports.EntityStats
	Templates  ports.TemplateRepository
	Clock      ports.Clock
	Equipment  ports.EquipmentRepository
	Locations  ports.LocationRepository
	Events     ports.EventRepository
	Metrics    ports.ActionMetrics
	Journal    ports.ActionJournal
	Tuning     interaction.Tuning
	Logger     zerolog.Logger
	Tracer     trace.Tracer
	Now        func() time.Time
}

type Engine struct {
	Deps

	specs    map[interaction.ActionType]ActionSpec
	resolver identity.Resolver
	clock    world.Clock
}

func NewEngine(deps Deps) *Engine {
	if deps.Tuning.TimeCosts == nil {
		deps.Tuning = interaction.DefaultTuning()
	}
	if deps.Tracer == nil {
		deps.Tracer = otel.Tracer(tracerName)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	e := &Engine{
		Deps:     deps,
		resolver: identity.Resolver{Refs: deps.References},
		clock:    world.NewClock(deps.Tuning.Clock),
	}
	specs := actionRegistry()
	for t, spec := range specs {
		spec.missing = e.missingCollaborators(spec.Requires)
		if len(spec.missing) > 0 {
			e.Logger.Debug().Str("action_type", string(t)).Interface("missing", spec.missing).Msg("action unavailable")
		}
		specs[t] = spec
	}
	e.specs = specs
	return e
}

func (e *Engine) missingCollaborators(required []Collaborator) []Collaborator {
	var missing []Collaborator
	for _, c := range required {
		if !e.has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

func (e *Engine) has(c Collaborator) bool {
	switch c {
	case NeedObjects:
		return e.Objects != nil
	case NeedInventory:
		return e.Inventory != nil
	case NeedStats:
		return e.Stats != nil
	case NeedTemplates:
		return e.Templates != nil
	case NeedEffects:
		return e.Effects != nil
	case NeedCrafting:
		return e.Crafting != nil
	case NeedEquipment:
		return e.Equipment != nil
	case NeedLocations:
		return e.Locations != nil
	case NeedClock:
		return e.Clock != nil
	default:
		return false
	}
}

// Spec returns the registered spec for t.
func (e *Engine) Spec(t interaction.ActionType) (ActionSpec, bool) {
	spec, ok := e.specs[t]
	return spec, ok
}

// Execute runs one action. Every outcome, including internal faults and
// panics in handlers, is reported through the returned Result.
func (e *Engine) Execute(ctx context.Context, req Request) (res interaction.Result) {
	started := e.Now()
	ac := e.BuildContext(req, started)

	ctx, span := e.Tracer.Start(ctx, "action.execute", trace.WithAttributes(
		attribute.String("action.type", string(ac.In.Type)),
		attribute.String("action.entity_id", ac.In.EntityID),
		attribute.String("action.session_id", ac.In.SessionID),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			ac.Log.Error().
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Msg("action handler panicked")
			res = interaction.Fail("internal error")
		}
		e.finish(ctx, &ac, res, started)
		span.SetAttributes(attribute.Bool("action.success", res.Success))
		if !res.Success {
			span.SetStatus(codes.Error, res.Message)
		}
	}()

	return e.run(ctx, &ac)
}

func (e *Engine) run(ctx context.Context, ac *ActionContext) interaction.Result {
	if err := e.ResolveSpec(ac); err != nil {
		return e.failure(ac, err)
	}
	if err := e.ValidateRequest(ac); err != nil {
		return e.failure(ac, err)
	}
	if err := e.ResolveTarget(ctx, ac); err != nil {
		return e.failure(ac, err)
	}
	if err := ac.View.Spec.Handler.Precheck(ctx, e, ac); err != nil {
		return e.failure(ac, err)
	}
	res, err := ac.View.Spec.Handler.Execute(ctx, e, ac)
	if err != nil {
		return e.failure(ac, err)
	}
	return res
}

// failure converts a handler or pipeline error into the user-facing result.
func (e *Engine) failure(ac *ActionContext, err error) interaction.Result {
	var (
		verr  *ValidationError
		uerr  *UnavailableError
		nferr *NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		return interaction.Fail(verr.Error())
	case errors.As(err, &uerr):
		return interaction.Fail(uerr.Error())
	case errors.As(err, &nferr):
		return interaction.Fail(nferr.Error())
	case errors.Is(err, ports.ErrNotFound):
		return interaction.Fail("target not found")
	case errors.Is(err, ports.ErrConflict):
		ac.Log.Warn().Err(err).Msg("action lost a concurrent update")
		return interaction.Fail("the target changed while you acted, try again")
	default:
		ac.Log.Error().Err(err).Msg("action failed")
		return interaction.Fail("internal error")
	}
}

func (e *Engine) BuildContext(req Request, now time.Time) ActionContext {
	req.EntityID = strings.TrimSpace(req.EntityID)
	req.TargetID = strings.TrimSpace(req.TargetID)
	params := interaction.Params(req.Parameters)
	t := interaction.NormalizeActionType(string(req.ActionType))
	ac := ActionContext{
		In: ActionInput{
			Req:       req,
			Type:      t,
			EntityID:  req.EntityID,
			SessionID: params.SessionID(),
			Params:    params,
			NowAt:     now,
		},
	}
	ac.Log = e.Logger.With().
		Str("action_type", string(t)).
		Str("entity_id", ac.In.EntityID).
		Str("session_id", ac.In.SessionID).
		Logger()
	return ac
}

func (e *Engine) ResolveSpec(ac *ActionContext) error {
	spec, ok := e.specs[ac.In.Type]
	if !ok {
		return invalid("unknown action type %q", string(ac.In.Type))
	}
	ac.View.Spec = spec
	if !spec.Available() {
		return &UnavailableError{Collaborators: spec.missing}
	}
	return nil
}

func (e *Engine) ValidateRequest(ac *ActionContext) error {
	spec := ac.View.Spec
	var missing []string
	if ac.In.EntityID == "" {
		missing = append(missing, "entity_id")
	}
	if ac.In.SessionID == "" {
		missing = append(missing, interaction.ParamSessionID)
	}
	if spec.Target != TargetNone && !spec.OptionalTarget && ac.In.Req.TargetID == "" {
		if spec.Target != TargetItem || !ac.In.Params.Has(interaction.ParamItemID) {
			missing = append(missing, "target_id")
		}
	}
	for _, key := range spec.Params {
		if !ac.In.Params.Has(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func (e *Engine) ResolveTarget(ctx context.Context, ac *ActionContext) error {
	spec := ac.View.Spec
	ref := ac.In.Req.TargetID
	if spec.Target == TargetItem && ref == "" {
		ref = ac.In.Params.String(interaction.ParamItemID)
	}
	if spec.Target == TargetNone || ref == "" {
		return nil
	}

	resolved, err := e.resolver.Resolve(ctx, ref, ac.In.SessionID)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidReference) {
			return &ValidationError{Missing: []string{"target_id"}}
		}
		return err
	}
	if resolved.Empty() {
		return notFound("%s", describeTarget(spec.Target, ref))
	}
	ac.View.Target = resolved

	switch spec.Target {
	case TargetObject, TargetCell:
		if e.Objects == nil {
			break
		}
		key := resolved.ObjectKey(ac.In.SessionID)
		st, err := e.Objects.Load(ctx, key)
		if errors.Is(err, ports.ErrNotFound) {
			return notFound("%s", describeTarget(spec.Target, ref))
		}
		if err != nil {
			return err
		}
		ac.View.Key = key
		ac.View.Object = st
		ac.View.Name = displayName(st.Properties, resolved.TemplateKey)
	case TargetEntity:
		tpl, err := e.Templates.GetEntity(ctx, resolved.TemplateKey)
		if errors.Is(err, ports.ErrNotFound) {
			return notFound("entity %s", ref)
		}
		if err != nil {
			return err
		}
		ac.View.Entity = tpl
		ac.View.Name = tpl.Name
		if ac.View.Name == "" {
			ac.View.Name = tpl.EntityID
		}
	case TargetItem:
		ac.View.ItemID = resolved.TemplateKey
	}
	return nil
}

func describeTarget(kind TargetKind, ref string) string {
	switch kind {
	case TargetObject:
		return "object " + ref
	case TargetCell:
		return "cell " + ref
	case TargetEntity:
		return "entity " + ref
	case TargetItem:
		return "item " + ref
	default:
		return ref
	}
}

func displayName(props map[string]any, fallback string) string {
	if name := strings.TrimSpace(world.PropString(props, "name")); name != "" {
		return name
	}
	return fallback
}
