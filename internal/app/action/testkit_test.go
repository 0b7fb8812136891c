package action

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"wayfarer/internal/adapter/repo/memory"
	"wayfarer/internal/app/crafting"
	"wayfarer/internal/app/effects"
	"wayfarer/internal/app/identity"
	"wayfarer/internal/app/objectstate"
	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"
)

const (
	testSession = "s-1"
	testEntity  = "hero"
)

type testKit struct {
	store   *memory.Store
	refs    memory.ReferenceRepo
	tpls    memory.TemplateRepo
	inv     memory.InventoryRepo
	equip   memory.EquipmentRepo
	locs    memory.LocationRepo
	clock   memory.Clock
	events  memory.EventRepo
	effects *effects.Service
	deps    Deps
}

func newTestKit(t *testing.T) *testKit {
	t.Helper()
	store := memory.NewStore()
	k := &testKit{
		store:  store,
		refs:   memory.NewReferenceRepo(store),
		tpls:   memory.NewTemplateRepo(store),
		inv:    memory.NewInventoryRepo(store),
		equip:  memory.NewEquipmentRepo(store),
		locs:   memory.NewLocationRepo(store),
		clock:  memory.NewClock(store),
		events: memory.NewEventRepo(store),
	}
	k.effects = &effects.Service{
		Templates:  memory.NewEffectTemplateRepo(store),
		Ownerships: memory.NewEffectOwnershipRepo(store),
		Logger:     zerolog.Nop(),
	}
	k.deps = Deps{
		References: k.refs,
		Objects:    &objectstate.Service{States: memory.NewObjectStateRepo(store), Templates: k.tpls, Logger: zerolog.Nop()},
		Effects:    k.effects,
		Crafting:   &crafting.Engine{Inventory: k.inv, Templates: k.tpls, Clock: k.clock, Logger: zerolog.Nop()},
		Inventory:  k.inv,
		Stats:      memory.NewEntityStatsRepo(store),
		Templates:  k.tpls,
		Clock:      k.clock,
		Equipment:  k.equip,
		Locations:  k.locs,
		Events:     k.events,
		Logger:     zerolog.Nop(),
		Now:        func() time.Time { return time.Unix(1700000000, 0) },
	}
	store.SeedVitals(testEntity, memory.Vitals{HP: 40, MaxHP: 100, MP: 10, MaxMP: 50})
	return k
}

func (k *testKit) engine() *Engine {
	return NewEngine(k.deps)
}

func (k *testKit) putObject(t *testing.T, tpl world.ObjectTemplate) {
	t.Helper()
	if err := k.tpls.PutObject(context.Background(), tpl); err != nil {
		t.Fatalf("put object %s: %v", tpl.ObjectID, err)
	}
}

func (k *testKit) putItem(t *testing.T, tpl world.ItemTemplate) {
	t.Helper()
	if err := k.tpls.PutItem(context.Background(), tpl); err != nil {
		t.Fatalf("put item %s: %v", tpl.ItemID, err)
	}
}

func (k *testKit) putEntity(t *testing.T, tpl world.EntityTemplate) {
	t.Helper()
	if err := k.tpls.PutEntity(context.Background(), tpl); err != nil {
		t.Fatalf("put entity %s: %v", tpl.EntityID, err)
	}
}

func (k *testKit) putEffect(t *testing.T, id string) {
	t.Helper()
	if _, err := k.effects.Create(context.Background(), world.EffectTemplate{EffectID: id, Type: world.EffectBuff}); err != nil {
		t.Fatalf("create effect %s: %v", id, err)
	}
}

func (k *testKit) spawn(t *testing.T, kind world.TemplateKind, templateKey string) string {
	t.Helper()
	rec, err := identity.Spawner{Refs: k.refs}.Spawn(context.Background(), testSession, kind, templateKey)
	if err != nil {
		t.Fatalf("spawn %s: %v", templateKey, err)
	}
	return rec.RuntimeHandle
}

func (k *testKit) give(t *testing.T, entityID, itemID string, qty int) {
	t.Helper()
	if err := k.inv.AddItem(context.Background(), entityID, itemID, qty); err != nil {
		t.Fatalf("give %s: %v", itemID, err)
	}
}

func (k *testKit) qty(entityID, itemID string) int {
	q, _ := k.inv.Quantity(context.Background(), entityID, itemID)
	return q
}

func (k *testKit) object(t *testing.T, ref string) world.ObjectState {
	t.Helper()
	resolved, err := identity.Resolver{Refs: k.refs}.Resolve(context.Background(), ref, testSession)
	if err != nil {
		t.Fatalf("resolve %s: %v", ref, err)
	}
	st, err := k.deps.Objects.Load(context.Background(), resolved.ObjectKey(testSession))
	if err != nil {
		t.Fatalf("load %s: %v", ref, err)
	}
	return st
}

func (k *testKit) worldMinutes() int64 {
	now, _ := k.clock.Now(context.Background(), testSession)
	return now
}

func req(actionType interaction.ActionType, target string, params map[string]any) Request {
	p := map[string]any{interaction.ParamSessionID: testSession}
	for key, v := range params {
		p[key] = v
	}
	return Request{EntityID: testEntity, ActionType: actionType, TargetID: target, Parameters: p}
}

func mustSucceed(t *testing.T, res interaction.Result) interaction.Result {
	t.Helper()
	if !res.Success {
		t.Fatalf("expected success, got failure %q", res.Message)
	}
	return res
}

func mustFail(t *testing.T, res interaction.Result) interaction.Result {
	t.Helper()
	if res.Success {
		t.Fatalf("expected failure, got success %q", res.Message)
	}
	return res
}

type failingInventory struct {
	memory.InventoryRepo
	addErr error
}

func (f failingInventory) AddItem(ctx context.Context, entityID, itemID string, qty int) error {
	if f.addErr != nil {
		return f.addErr
	}
	return f.InventoryRepo.AddItem(ctx, entityID, itemID, qty)
}

type failingClock struct{}

func (failingClock) AdvanceTime(context.Context, string, int) error {
	return errors.New("clock offline")
}

func (failingClock) Now(context.Context, string) (int64, error) {
	return 0, nil
}

type panickingStats struct{}

func (panickingStats) RestoreHPMP(context.Context, string, int, int) (ports.RestoreOutcome, error) {
	panic("stats backend exploded")
}

type countingMetrics struct {
	success, failure, conflict int
}

func (m *countingMetrics) RecordSuccess(interaction.ActionType) { m.success++ }
func (m *countingMetrics) RecordFailure(interaction.ActionType) { m.failure++ }
func (m *countingMetrics) RecordConflict()                      { m.conflict++ }

type scriptedRand struct {
	draw float64
	n    uint32
}

func (r *scriptedRand) Float64() float64 { return r.draw }
func (r *scriptedRand) IntN(int) int     { return 0 }
func (r *scriptedRand) Uint32() uint32 {
	r.n++
	return r.n
}
