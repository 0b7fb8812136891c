package interaction

import "strings"

type ActionType string

// Object interaction verbs.
const (
	ObjectExamine ActionType = "object.examine"
	ObjectInspect ActionType = "object.inspect"
	ObjectSearch  ActionType = "object.search"

	ObjectOpen       ActionType = "object.open"
	ObjectClose      ActionType = "object.close"
	ObjectLight      ActionType = "object.light"
	ObjectExtinguish ActionType = "object.extinguish"
	ObjectActivate   ActionType = "object.activate"
	ObjectDeactivate ActionType = "object.deactivate"
	ObjectLock       ActionType = "object.lock"
	ObjectUnlock     ActionType = "object.unlock"

	ObjectSit     ActionType = "object.sit"
	ObjectStand   ActionType = "object.stand"
	ObjectLie     ActionType = "object.lie"
	ObjectGetUp   ActionType = "object.get_up"
	ObjectClimb   ActionType = "object.climb"
	ObjectDescend ActionType = "object.descend"

	ObjectRest     ActionType = "object.rest"
	ObjectSleep    ActionType = "object.sleep"
	ObjectMeditate ActionType = "object.meditate"

	ObjectEat     ActionType = "object.eat"
	ObjectDrink   ActionType = "object.drink"
	ObjectConsume ActionType = "object.consume"

	ObjectRead  ActionType = "object.read"
	ObjectStudy ActionType = "object.study"
	ObjectWrite ActionType = "object.write"

	ObjectPickup ActionType = "object.pickup"
	ObjectPlace  ActionType = "object.place"
	ObjectTake   ActionType = "object.take"
	ObjectPut    ActionType = "object.put"

	ObjectCombine ActionType = "object.combine"
	ObjectCraft   ActionType = "object.craft"
	ObjectCook    ActionType = "object.cook"
	ObjectRepair  ActionType = "object.repair"

	ObjectDestroy   ActionType = "object.destroy"
	ObjectBreak     ActionType = "object.break"
	ObjectDismantle ActionType = "object.dismantle"
)

// Item verbs.
const (
	ItemUse     ActionType = "item.use"
	ItemConsume ActionType = "item.consume"
	ItemEquip   ActionType = "item.equip"
	ItemUnequip ActionType = "item.unequip"
	ItemDrop    ActionType = "item.drop"
	ItemCombine ActionType = "item.combine"
)

// Entity verbs.
const (
	EntityExamine ActionType = "entity.examine"
	EntityTalk    ActionType = "entity.talk"
	EntityGreet   ActionType = "entity.greet"
	EntityGive    ActionType = "entity.give"
	EntityTrade   ActionType = "entity.trade"
)

// Cell verbs.
const (
	CellMove    ActionType = "cell.move"
	CellEnter   ActionType = "cell.enter"
	CellLook    ActionType = "cell.look"
	CellExplore ActionType = "cell.explore"
	CellForage  ActionType = "cell.forage"
)

// Time verbs.
const (
	TimeWait  ActionType = "time.wait"
	TimeCheck ActionType = "time.check"
)

// Namespace is the prefix before the first dot, e.g. "object".
func (t ActionType) Namespace() string {
	ns, _, _ := strings.Cut(string(t), ".")
	return ns
}

// Verb is the suffix after the namespace, e.g. "open".
func (t ActionType) Verb() string {
	_, verb, ok := strings.Cut(string(t), ".")
	if !ok {
		return string(t)
	}
	return verb
}

func NormalizeActionType(raw string) ActionType {
	return ActionType(strings.ToLower(strings.TrimSpace(raw)))
}

type Family string

const (
	FamilyObjectInformation      Family = "object/information"
	FamilyObjectStateChange      Family = "object/state_change"
	FamilyObjectPosition         Family = "object/position"
	FamilyObjectRecovery         Family = "object/recovery"
	FamilyObjectConsumption      Family = "object/consumption"
	FamilyObjectLearning         Family = "object/learning"
	FamilyObjectItemManipulation Family = "object/item_manipulation"
	FamilyObjectCrafting         Family = "object/crafting"
	FamilyObjectDestruction      Family = "object/destruction"

	FamilyItemUse       Family = "item/use"
	FamilyItemConsume   Family = "item/consume"
	FamilyItemEquipment Family = "item/equipment"
	FamilyItemDrop      Family = "item/drop"

	FamilyEntityObservation Family = "entity/observation"
	FamilyEntitySocial      Family = "entity/social"
	FamilyEntityExchange    Family = "entity/exchange"

	FamilyCellMovement    Family = "cell/movement"
	FamilyCellObservation Family = "cell/observation"
	FamilyCellExploration Family = "cell/exploration"

	FamilyTime Family = "time"
)

func Families() []Family {
	return []Family{
		FamilyObjectInformation, FamilyObjectStateChange, FamilyObjectPosition,
		FamilyObjectRecovery, FamilyObjectConsumption, FamilyObjectLearning,
		FamilyObjectItemManipulation, FamilyObjectCrafting, FamilyObjectDestruction,
		FamilyItemUse, FamilyItemConsume, FamilyItemEquipment, FamilyItemDrop,
		FamilyEntityObservation, FamilyEntitySocial, FamilyEntityExchange,
		FamilyCellMovement, FamilyCellObservation, FamilyCellExploration,
		FamilyTime,
	}
}
