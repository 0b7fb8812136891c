package action

import (
	"context"
	"strings"
	"testing"

	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"
)

func TestEquipAndUnequipRoundTrip(t *testing.T) {
	k := newTestKit(t)
	k.putItem(t, world.ItemTemplate{ItemID: "sword", Name: "Sword", Properties: map[string]any{"equip_slot": "Hand"}})
	k.putItem(t, world.ItemTemplate{ItemID: "axe", Name: "Axe", Properties: map[string]any{"equip_slot": "hand"}})
	k.give(t, testEntity, "sword", 1)
	k.give(t, testEntity, "axe", 1)
	e := k.engine()

	res := mustSucceed(t, e.Execute(context.Background(), req(interaction.ItemEquip, "sword", nil)))
	if res.Data["slot"] != "hand" || k.qty(testEntity, "sword") != 0 {
		t.Fatalf("expected sword in hand, got %v", res.Data)
	}

	res = mustSucceed(t, e.Execute(context.Background(), req(interaction.ItemEquip, "axe", nil)))
	if res.Data["replaced"] != "sword" || k.qty(testEntity, "sword") != 1 {
		t.Fatalf("expected sword swapped back to inventory, got %v", res.Data)
	}

	res = mustSucceed(t, e.Execute(context.Background(), req(interaction.ItemUnequip, "", map[string]any{interaction.ParamSlot: "hand"})))
	if res.Data["item_id"] != "axe" || k.qty(testEntity, "axe") != 1 {
		t.Fatalf("expected axe unequipped, got %v", res.Data)
	}
	slots, _ := k.equip.Slots(context.Background(), testSession, testEntity)
	if len(slots) != 0 {
		t.Fatalf("expected empty equipment, got %v", slots)
	}
}

func TestEquipRequiresSlot(t *testing.T) {
	k := newTestKit(t)
	k.putItem(t, world.ItemTemplate{ItemID: "pebble"})
	k.give(t, testEntity, "pebble", 1)

	res := mustFail(t, k.engine().Execute(context.Background(), req(interaction.ItemEquip, "pebble", nil)))
	if !strings.Contains(res.Message, "cannot be equipped") {
		t.Fatalf("unexpected message %q", res.Message)
	}
	if k.qty(testEntity, "pebble") != 1 {
		t.Fatalf("pebble must stay in inventory")
	}
}

func TestUnequipNeedsSlotOrTarget(t *testing.T) {
	k := newTestKit(t)
	res := mustFail(t, k.engine().Execute(context.Background(), req(interaction.ItemUnequip, "", nil)))
	if !strings.Contains(res.Message, "slot or target_id") {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestUseConsumableRestoresAndGrants(t *testing.T) {
	k := newTestKit(t)
	k.putEffect(t, "REGEN")
	k.putItem(t, world.ItemTemplate{ItemID: "potion", Name: "Potion", Consumable: true, Properties: map[string]any{
		"hp_restore":        20,
		"mp_restore":        5,
		"effect_carrier_id": "REGEN",
	}})
	k.give(t, testEntity, "potion", 2)

	res := mustSucceed(t, k.engine().Execute(context.Background(), req(interaction.ItemUse, "", map[string]any{interaction.ParamItemID: "potion"})))
	if res.Data["hp_restored"] != 20 || res.Data["mp_restored"] != 5 || res.Data["consumed"] != true {
		t.Fatalf("unexpected data %v", res.Data)
	}
	if k.qty(testEntity, "potion") != 1 {
		t.Fatalf("expected one potion consumed")
	}
	if len(res.Effects) != 3 {
		t.Fatalf("expected hp, mp and effect descriptors, got %v", res.Effects)
	}
}

func TestConsumeRejectsDurableItem(t *testing.T) {
	k := newTestKit(t)
	k.putItem(t, world.ItemTemplate{ItemID: "amulet", Properties: map[string]any{"hp_restore": 5}})
	k.give(t, testEntity, "amulet", 1)

	res := mustFail(t, k.engine().Execute(context.Background(), req(interaction.ItemConsume, "amulet", nil)))
	if !strings.Contains(res.Message, "cannot be consumed") {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestUseItemNotHeld(t *testing.T) {
	k := newTestKit(t)
	k.putItem(t, world.ItemTemplate{ItemID: "potion", Consumable: true})
	res := mustFail(t, k.engine().Execute(context.Background(), req(interaction.ItemUse, "potion", nil)))
	if !strings.Contains(res.Message, "don't have") {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestDropPlacesItemInCurrentCell(t *testing.T) {
	k := newTestKit(t)
	k.putObject(t, world.ObjectTemplate{ObjectID: "meadow"})
	cell := k.spawn(t, world.KindCell, "meadow")
	if err := k.locs.SetCell(context.Background(), testSession, testEntity, cell); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	k.give(t, testEntity, "apple", 1)

	mustSucceed(t, k.engine().Execute(context.Background(), req(interaction.ItemDrop, "apple", nil)))
	if k.qty(testEntity, "apple") != 0 {
		t.Fatalf("expected apple dropped")
	}
	if st := k.object(t, cell); !st.HasContent("apple") {
		t.Fatalf("expected apple in meadow, got %v", st.Contents)
	}
}

func TestDropWithoutLocationLosesItem(t *testing.T) {
	k := newTestKit(t)
	k.give(t, testEntity, "apple", 1)
	res := mustSucceed(t, k.engine().Execute(context.Background(), req(interaction.ItemDrop, "apple", nil)))
	if !strings.Contains(res.Message, "lost") {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestItemCombineRejectsTooFewItems(t *testing.T) {
	k := newTestKit(t)
	res := mustFail(t, k.engine().Execute(context.Background(), req(interaction.ItemCombine, "", map[string]any{
		interaction.ParamItemIDs: []any{"herb"},
	})))
	if !strings.Contains(res.Message, "between 2 and 5") {
		t.Fatalf("unexpected message %q", res.Message)
	}
}
