package action

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wayfarer/internal/adapter/repo/memory"
	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"
)

func TestOpenIgnoresCurrentState(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "door", Properties: map[string]any{"initial_state": "locked"}})
	handle := k.spawn(t, world.KindObject, "door")

	res := mustSucceed(t, k.engine().Execute(context.Background(), req(interaction.ObjectOpen, handle, nil)))
	if res.Data["previous_state"] != "locked" || res.Data["state"] != "open" {
		t.Fatalf("unexpected data %v", res.Data)
	}
	if got := k.object(t, handle).State; got != "open" {
		t.Fatalf("expected open persisted, got %q", got)
	}
}

func TestStateChangeHonoursPerVerbOverride(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "lamp", Properties: map[string]any{
		"interactions": map[string]any{"light": map[string]any{"state": "glowing", "time_cost": 2}},
	}})

	res := mustSucceed(t, k.engine().Execute(context.Background(), req(interaction.ObjectLight, "lamp", nil)))
	if res.Data["state"] != "glowing" || res.Data["time_spent"] != 2 {
		t.Fatalf("unexpected data %v", res.Data)
	}
	if k.worldMinutes() != 2 {
		t.Fatalf("expected 2 minutes advanced, got %d", k.worldMinutes())
	}
}

func TestExamineListsInteractions(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "shelf", Description: "Dusty.", Properties: map[string]any{
		"name":             "Bookshelf",
		"initial_contents": []any{"book"},
		"interactions":     map[string]any{"read": map[string]any{}, "search": map[string]any{}},
	}})

	res := mustSucceed(t, k.engine().Execute(context.Background(), req(interaction.ObjectSearch, "shelf", nil)))
	if !strings.Contains(res.Message, "Bookshelf") {
		t.Fatalf("expected display name in message, got %q", res.Message)
	}
	contents, _ := res.Data["contents"].([]string)
	if len(contents) != 1 || contents[0] != "book" {
		t.Fatalf("expected contents listed, got %v", res.Data["contents"])
	}
}

func TestPickupAndPlaceRoundTrip(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "chest", Properties: map[string]any{"initial_contents": []any{"coin", "gem"}}})
	handle := k.spawn(t, world.KindObject, "chest")
	e := k.engine()

	res := mustSucceed(t, e.Execute(context.Background(), req(interaction.ObjectPickup, handle, map[string]any{interaction.ParamItemID: "gem"})))
	if res.Data["contents_count"] != 1 {
		t.Fatalf("unexpected data %v", res.Data)
	}
	if k.qty(testEntity, "gem") != 1 {
		t.Fatalf("expected gem in inventory")
	}

	mustSucceed(t, e.Execute(context.Background(), req(interaction.ObjectPlace, handle, map[string]any{interaction.ParamItemID: "gem"})))
	if k.qty(testEntity, "gem") != 0 {
		t.Fatalf("expected gem removed from inventory")
	}
	st := k.object(t, handle)
	if len(st.Contents) != 2 || !st.HasContent("gem") {
		t.Fatalf("expected gem back in chest, got %v", st.Contents)
	}

	res = mustFail(t, e.Execute(context.Background(), req(interaction.ObjectPlace, handle, map[string]any{interaction.ParamItemID: "gem"})))
	if !strings.Contains(res.Message, "don't have") {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestTakeRestoresContentsWhenInventoryFails(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "chest", Properties: map[string]any{"initial_contents": []any{"coin"}}})
	handle := k.spawn(t, world.KindObject, "chest")
	k.deps.Inventory = failingInventory{InventoryRepo: k.inv, addErr: errors.New("inventory full")}

	res := mustFail(t, k.engine().Execute(context.Background(), req(interaction.ObjectTake, handle, nil)))
	if res.Message != "internal error" {
		t.Fatalf("unexpected message %q", res.Message)
	}
	st := k.object(t, handle)
	if len(st.Contents) != 1 || st.Contents[0] != "coin" {
		t.Fatalf("expected coin restored to chest, got %v", st.Contents)
	}
}

func TestTakeFromEmptyContainerFails(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "chest"})

	res := mustFail(t, k.engine().Execute(context.Background(), req(interaction.ObjectTake, "chest", nil)))
	if !strings.Contains(res.Message, "nothing to take") {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestRestRestoresAndClampsTime(t *testing.T) {
	k := newTestKit(t)
	k.putEffect(t, "WELL_RESTED")
	k.putObject(t, world.ObjectTemplate{ObjectID: "bed", Properties: map[string]any{
		"interactions": map[string]any{
			"sleep": map[string]any{"hp_restore": 80, "time_cost": 2000, "effect_carrier_id": "WELL_RESTED"},
		},
	}})
	handle := k.spawn(t, world.KindObject, "bed")

	res := mustSucceed(t, k.engine().Execute(context.Background(), req(interaction.ObjectSleep, handle, nil)))
	if res.Data["hp_restored"] != 60 {
		t.Fatalf("expected restore capped at max hp, got %v", res.Data["hp_restored"])
	}
	if res.Data["time_spent"] != 480 || k.worldMinutes() != 480 {
		t.Fatalf("expected time clamped to 480, got %v", res.Data["time_spent"])
	}
	if res.Data["effects_applied"] != 1 {
		t.Fatalf("expected carrier granted, got %v", res.Data)
	}
	if got := k.object(t, handle).State; got != "sleeping" {
		t.Fatalf("expected sleeping, got %q", got)
	}
	owned, _ := k.effects.ListForEntity(context.Background(), testSession, testEntity)
	if len(owned) != 1 || owned[0].EffectID != "WELL_RESTED" {
		t.Fatalf("expected WELL_RESTED owned, got %v", owned)
	}
}

func TestMeditateUsesDefaultsAndMinimumTime(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "shrine", Properties: map[string]any{
		"interactions": map[string]any{"meditate": map[string]any{"time_cost": 5}},
	}})

	res := mustSucceed(t, k.engine().Execute(context.Background(), req(interaction.ObjectMeditate, "shrine", nil)))
	if res.Data["mp_restored"] != 15 || res.Data["hp_restored"] != 0 {
		t.Fatalf("expected default meditate restore, got %v", res.Data)
	}
	if res.Data["time_spent"] != 30 {
		t.Fatalf("expected time raised to 30, got %v", res.Data["time_spent"])
	}
}

func TestRecoverySurvivesClockFailure(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "bench"})
	k.deps.Clock = failingClock{}

	res := mustSucceed(t, k.engine().Execute(context.Background(), req(interaction.ObjectRest, "bench", nil)))
	if res.Data["time_spent"] != 0 {
		t.Fatalf("expected no time recorded, got %v", res.Data["time_spent"])
	}
}

func TestEatFromObjectConsumesContent(t *testing.T) {
	k := newTestKit(t)
	k.putEffect(t, "FULL")
	k.putItem(t, world.ItemTemplate{ItemID: "bread", Name: "Bread", Properties: map[string]any{
		"effects":           map[string]any{"hp": 15},
		"effect_carrier_id": "FULL",
	}})
	k.putObject(t, world.ObjectTemplate{ObjectID: "table", Properties: map[string]any{"initial_contents": []any{"bread"}}})
	handle := k.spawn(t, world.KindObject, "table")
	e := k.engine()

	res := mustSucceed(t, e.Execute(context.Background(), req(interaction.ObjectEat, handle, nil)))
	if res.Data["hp_restored"] != 15 || res.Data["effects_applied"] != 1 {
		t.Fatalf("unexpected data %v", res.Data)
	}
	if len(k.object(t, handle).Contents) != 0 {
		t.Fatalf("expected bread eaten")
	}

	mustFail(t, e.Execute(context.Background(), req(interaction.ObjectEat, handle, nil)))
}

func TestWriteThenRead(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "journal"})
	handle := k.spawn(t, world.KindObject, "journal")
	e := k.engine()

	mustSucceed(t, e.Execute(context.Background(), req(interaction.ObjectWrite, handle, map[string]any{interaction.ParamContent: "The bridge is out."})))
	res := mustSucceed(t, e.Execute(context.Background(), req(interaction.ObjectRead, handle, nil)))
	if res.Data["content"] != "The bridge is out." {
		t.Fatalf("unexpected content %v", res.Data["content"])
	}
	if by := world.PropString(k.object(t, handle).Properties, "written_by"); by != testEntity {
		t.Fatalf("expected author recorded, got %q", by)
	}
}

func TestWriteRejectsOversizedContent(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "journal"})

	long := strings.Repeat("x", maxWrittenContent+1)
	res := mustFail(t, k.engine().Execute(context.Background(), req(interaction.ObjectWrite, "journal", map[string]any{interaction.ParamContent: long})))
	if !strings.Contains(res.Message, "at most") {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestReadBlankObjectFails(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "rock"})
	mustFail(t, k.engine().Execute(context.Background(), req(interaction.ObjectRead, "rock", nil)))
}

func TestCookConsumesIngredients(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "stove", Properties: map[string]any{
		"interactions": map[string]any{"cook": map[string]any{
			"required_items": []any{"egg", "egg"},
			"result_items":   []any{"omelette"},
		}},
	}})
	k.give(t, testEntity, "egg", 1)
	e := k.engine()

	res := mustFail(t, e.Execute(context.Background(), req(interaction.ObjectCook, "stove", nil)))
	if !strings.Contains(res.Message, "You need 2 egg") {
		t.Fatalf("unexpected message %q", res.Message)
	}

	k.give(t, testEntity, "egg", 1)
	mustSucceed(t, e.Execute(context.Background(), req(interaction.ObjectCook, "stove", nil)))
	if k.qty(testEntity, "egg") != 0 || k.qty(testEntity, "omelette") != 1 {
		t.Fatalf("expected eggs turned into an omelette")
	}
	if k.worldMinutes() != 20 {
		t.Fatalf("expected default cook time, got %d", k.worldMinutes())
	}
}

func TestCookReturnsIngredientsWhenResultCannotBeAdded(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "stove", Properties: map[string]any{
		"interactions": map[string]any{"cook": map[string]any{
			"required_items": []any{"egg"},
			"result_items":   []any{"omelette"},
		}},
	}})
	k.give(t, testEntity, "egg", 1)
	k.deps.Inventory = &flakyInventory{InventoryRepo: k.inv, failItem: "omelette"}

	mustFail(t, k.engine().Execute(context.Background(), req(interaction.ObjectCook, "stove", nil)))
	if k.qty(testEntity, "egg") != 1 || k.qty(testEntity, "omelette") != 0 {
		t.Fatalf("expected inventory unchanged")
	}
}

func TestCookWithoutRecipeFailsPrecheck(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "stove"})
	res := mustFail(t, k.engine().Execute(context.Background(), req(interaction.ObjectCook, "stove", nil)))
	if !strings.Contains(res.Message, "nothing can be cooked") {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestRepairDefaultsToRepairedState(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "cart", Properties: map[string]any{"initial_state": "broken"}})
	handle := k.spawn(t, world.KindObject, "cart")

	mustSucceed(t, k.engine().Execute(context.Background(), req(interaction.ObjectRepair, handle, nil)))
	if got := k.object(t, handle).State; got != "repaired" {
		t.Fatalf("expected repaired, got %q", got)
	}
}

func TestDismantleRequiresResults(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "crate"})
	k.putObject(t, world.ObjectTemplate{ObjectID: "chair", Properties: map[string]any{
		"interactions": map[string]any{"dismantle": map[string]any{"result_items": []any{"plank", "nail"}}},
	}})
	e := k.engine()

	mustFail(t, e.Execute(context.Background(), req(interaction.ObjectDismantle, "crate", nil)))

	res := mustSucceed(t, e.Execute(context.Background(), req(interaction.ObjectDismantle, "chair", nil)))
	if res.Data["state"] != "dismantled" || len(res.Effects) != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if k.qty(testEntity, "plank") != 1 || k.qty(testEntity, "nail") != 1 {
		t.Fatalf("expected salvage in inventory")
	}
}

func TestDismantleTwiceKeepsSalvageSingle(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "chair", Name: "chair", Properties: map[string]any{
		"interactions": map[string]any{"dismantle": map[string]any{"result_items": []any{"plank"}}},
	}})
	handle := k.spawn(t, world.KindObject, "chair")
	e := k.engine()

	mustSucceed(t, e.Execute(context.Background(), req(interaction.ObjectDismantle, handle, nil)))
	for i := 0; i < 2; i++ {
		res := mustFail(t, e.Execute(context.Background(), req(interaction.ObjectDismantle, handle, nil)))
		if !strings.Contains(res.Message, "already dismantled") {
			t.Fatalf("unexpected message %q", res.Message)
		}
	}
	if got := k.qty(testEntity, "plank"); got != 1 {
		t.Fatalf("expected 1 plank, got %d", got)
	}
}

func TestBreakIsTerminal(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "vase", Properties: map[string]any{
		"interactions": map[string]any{"break": map[string]any{"result_items": []any{"shard"}}},
	}})
	handle := k.spawn(t, world.KindObject, "vase")
	e := k.engine()

	mustSucceed(t, e.Execute(context.Background(), req(interaction.ObjectBreak, handle, nil)))
	mustFail(t, e.Execute(context.Background(), req(interaction.ObjectBreak, handle, nil)))
	if got := k.qty(testEntity, "shard"); got != 1 {
		t.Fatalf("expected 1 shard, got %d", got)
	}
	if got := k.object(t, handle).State; got != "broken" {
		t.Fatalf("expected broken, got %q", got)
	}
}

func TestCombineViaObjectDelegatesToCrafting(t *testing.T) {
	k := newTestKit(t)
	k.putItem(t, world.ItemTemplate{ItemID: "herb", Name: "Herb", StackSize: 10})
	k.putItem(t, world.ItemTemplate{ItemID: "water", Name: "Water", StackSize: 10})
	k.give(t, testEntity, "herb", 1)
	k.give(t, testEntity, "water", 1)
	k.deps.Crafting.Rand = &scriptedRand{draw: 0.01}

	res := mustSucceed(t, k.engine().Execute(context.Background(), req(interaction.ObjectCraft, "", map[string]any{
		interaction.ParamItemIDs: []any{"herb", "water"},
	})))
	newID, _ := res.Data["new_item_id"].(string)
	if k.qty(testEntity, newID) != 1 || k.qty(testEntity, "herb") != 0 {
		t.Fatalf("expected inputs replaced by %s", newID)
	}
}

type flakyInventory struct {
	memory.InventoryRepo
	failItem string
}

func (f *flakyInventory) AddItem(ctx context.Context, entityID, itemID string, qty int) error {
	if itemID == f.failItem {
		return errors.New("no room for " + itemID)
	}
	return f.InventoryRepo.AddItem(ctx, entityID, itemID, qty)
}
