package action

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"wayfarer/internal/app/identity"
	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"
)

// Collaborator names a dependency an action needs to run.
type Collaborator string

const (
	NeedObjects   Collaborator = "object_state"
	NeedInventory Collaborator = "inventory"
	NeedStats     Collaborator = "entity_stats"
	NeedTemplates Collaborator = "templates"
	NeedEffects   Collaborator = "effects"
	NeedCrafting  Collaborator = "crafting"
	NeedEquipment Collaborator = "equipment"
	NeedLocations Collaborator = "locations"
	NeedClock     Collaborator = "clock"
)

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetObject
	TargetItem
	TargetEntity
	TargetCell
)

// ActionSpec describes one action type. OptionalTarget lets the handler run
// without a target id; Params are required parameter keys besides session_id.
type ActionSpec struct {
	Type           interaction.ActionType
	Family         interaction.Family
	Target         TargetKind
	OptionalTarget bool
	Requires       []Collaborator
	Params         []string
	Handler        ActionHandler

	missing []Collaborator
}

// Available reports whether every required collaborator was provided.
func (s ActionSpec) Available() bool {
	return len(s.missing) == 0
}

type ActionHandler interface {
	Precheck(ctx context.Context, e *Engine, ac *ActionContext) error
	Execute(ctx context.Context, e *Engine, ac *ActionContext) (interaction.Result, error)
}

type BaseHandler struct{}

func (BaseHandler) Precheck(context.Context, *Engine, *ActionContext) error { return nil }

type ActionInput struct {
	Req       Request
	Type      interaction.ActionType
	EntityID  string
	SessionID string
	Params    interaction.Params
	NowAt     time.Time
}

type ActionView struct {
	Spec   ActionSpec
	Target identity.Resolved
	// Key and Object are set for object and cell targets.
	Key    world.ObjectKey
	Object world.ObjectState
	Name   string
	// Entity is set for entity targets.
	Entity world.EntityTemplate
	// ItemID is the template key of an item target.
	ItemID string
}

// ActionContext is built fresh for every request.
type ActionContext struct {
	In   ActionInput
	View ActionView
	Log  zerolog.Logger
}

// TargetRef is the canonical reference of the resolved target: the runtime
// handle when there is one, else the template key.
func (ac *ActionContext) TargetRef() string {
	if ac.View.Target.RuntimeHandle != "" {
		return ac.View.Target.RuntimeHandle
	}
	return ac.View.Target.TemplateKey
}

// Interaction is the typed per-verb config of the target object.
func (ac *ActionContext) Interaction() world.InteractionConfig {
	return world.ParseInteraction(ac.View.Object.Interaction(ac.In.Type.Verb()))
}

func objectSpec(t interaction.ActionType, family interaction.Family, h ActionHandler, needs ...Collaborator) ActionSpec {
	return ActionSpec{Type: t, Family: family, Target: TargetObject, Requires: append([]Collaborator{NeedObjects}, needs...), Handler: h}
}

func actionRegistry() map[interaction.ActionType]ActionSpec {
	specs := []ActionSpec{
		objectSpec(interaction.ObjectExamine, interaction.FamilyObjectInformation, infoActionHandler{}),
		objectSpec(interaction.ObjectInspect, interaction.FamilyObjectInformation, infoActionHandler{}),
		objectSpec(interaction.ObjectSearch, interaction.FamilyObjectInformation, infoActionHandler{}),

		objectSpec(interaction.ObjectOpen, interaction.FamilyObjectStateChange, setStateActionHandler{state: "open"}),
		objectSpec(interaction.ObjectClose, interaction.FamilyObjectStateChange, setStateActionHandler{state: "closed"}),
		objectSpec(interaction.ObjectLight, interaction.FamilyObjectStateChange, setStateActionHandler{state: "lit"}),
		objectSpec(interaction.ObjectExtinguish, interaction.FamilyObjectStateChange, setStateActionHandler{state: "extinguished"}),
		objectSpec(interaction.ObjectActivate, interaction.FamilyObjectStateChange, setStateActionHandler{state: "active"}),
		objectSpec(interaction.ObjectDeactivate, interaction.FamilyObjectStateChange, setStateActionHandler{state: "inactive"}),
		objectSpec(interaction.ObjectLock, interaction.FamilyObjectStateChange, setStateActionHandler{state: "locked"}),
		objectSpec(interaction.ObjectUnlock, interaction.FamilyObjectStateChange, setStateActionHandler{state: "unlocked"}),

		objectSpec(interaction.ObjectSit, interaction.FamilyObjectPosition, setStateActionHandler{state: "occupied_sitting"}),
		objectSpec(interaction.ObjectStand, interaction.FamilyObjectPosition, setStateActionHandler{state: world.DefaultObjectState}),
		objectSpec(interaction.ObjectLie, interaction.FamilyObjectPosition, setStateActionHandler{state: "occupied_lying"}),
		objectSpec(interaction.ObjectGetUp, interaction.FamilyObjectPosition, setStateActionHandler{state: world.DefaultObjectState}),
		objectSpec(interaction.ObjectClimb, interaction.FamilyObjectPosition, setStateActionHandler{state: "occupied_climbing"}),
		objectSpec(interaction.ObjectDescend, interaction.FamilyObjectPosition, setStateActionHandler{state: world.DefaultObjectState}),

		objectSpec(interaction.ObjectRest, interaction.FamilyObjectRecovery, recoveryActionHandler{state: "occupied"}, NeedStats),
		objectSpec(interaction.ObjectSleep, interaction.FamilyObjectRecovery, recoveryActionHandler{state: "sleeping"}, NeedStats),
		objectSpec(interaction.ObjectMeditate, interaction.FamilyObjectRecovery, recoveryActionHandler{state: "meditating"}, NeedStats),

		objectSpec(interaction.ObjectEat, interaction.FamilyObjectConsumption, consumeFromObjectActionHandler{}, NeedStats, NeedTemplates),
		objectSpec(interaction.ObjectDrink, interaction.FamilyObjectConsumption, consumeFromObjectActionHandler{}, NeedStats, NeedTemplates),
		objectSpec(interaction.ObjectConsume, interaction.FamilyObjectConsumption, consumeFromObjectActionHandler{}, NeedStats, NeedTemplates),

		objectSpec(interaction.ObjectRead, interaction.FamilyObjectLearning, learnActionHandler{}),
		objectSpec(interaction.ObjectStudy, interaction.FamilyObjectLearning, learnActionHandler{}),
		withParams(objectSpec(interaction.ObjectWrite, interaction.FamilyObjectLearning, writeActionHandler{}), interaction.ParamContent),

		objectSpec(interaction.ObjectPickup, interaction.FamilyObjectItemManipulation, takeActionHandler{}, NeedInventory),
		objectSpec(interaction.ObjectTake, interaction.FamilyObjectItemManipulation, takeActionHandler{}, NeedInventory),
		withParams(objectSpec(interaction.ObjectPlace, interaction.FamilyObjectItemManipulation, putActionHandler{}, NeedInventory), interaction.ParamItemID),
		withParams(objectSpec(interaction.ObjectPut, interaction.FamilyObjectItemManipulation, putActionHandler{}, NeedInventory), interaction.ParamItemID),

		{Type: interaction.ObjectCombine, Family: interaction.FamilyObjectCrafting, OptionalTarget: true, Target: TargetObject, Requires: []Collaborator{NeedCrafting}, Params: []string{interaction.ParamItemIDs}, Handler: combineActionHandler{}},
		{Type: interaction.ObjectCraft, Family: interaction.FamilyObjectCrafting, OptionalTarget: true, Target: TargetObject, Requires: []Collaborator{NeedCrafting}, Params: []string{interaction.ParamItemIDs}, Handler: combineActionHandler{}},
		objectSpec(interaction.ObjectCook, interaction.FamilyObjectCrafting, recipeActionHandler{}, NeedInventory),
		objectSpec(interaction.ObjectRepair, interaction.FamilyObjectCrafting, recipeActionHandler{}, NeedInventory),

		objectSpec(interaction.ObjectDestroy, interaction.FamilyObjectDestruction, destroyActionHandler{state: "destroyed"}, NeedInventory),
		objectSpec(interaction.ObjectBreak, interaction.FamilyObjectDestruction, destroyActionHandler{state: "broken"}, NeedInventory),
		objectSpec(interaction.ObjectDismantle, interaction.FamilyObjectDestruction, destroyActionHandler{state: "dismantled", requireResults: true}, NeedInventory),

		{Type: interaction.ItemUse, Family: interaction.FamilyItemUse, Target: TargetItem, Requires: []Collaborator{NeedInventory, NeedTemplates, NeedStats}, Handler: useItemActionHandler{}},
		{Type: interaction.ItemConsume, Family: interaction.FamilyItemConsume, Target: TargetItem, Requires: []Collaborator{NeedInventory, NeedTemplates, NeedStats}, Handler: useItemActionHandler{mustConsume: true}},
		{Type: interaction.ItemEquip, Family: interaction.FamilyItemEquipment, Target: TargetItem, Requires: []Collaborator{NeedInventory, NeedTemplates, NeedEquipment}, Handler: equipActionHandler{}},
		{Type: interaction.ItemUnequip, Family: interaction.FamilyItemEquipment, Target: TargetItem, OptionalTarget: true, Requires: []Collaborator{NeedInventory, NeedEquipment}, Handler: unequipActionHandler{}},
		{Type: interaction.ItemDrop, Family: interaction.FamilyItemDrop, Target: TargetItem, Requires: []Collaborator{NeedInventory}, Handler: dropActionHandler{}},
		// item.combine is the inventory-side spelling of object.combine.
		{Type: interaction.ItemCombine, Family: interaction.FamilyObjectCrafting, Requires: []Collaborator{NeedCrafting}, Params: []string{interaction.ParamItemIDs}, Handler: combineActionHandler{}},

		{Type: interaction.EntityExamine, Family: interaction.FamilyEntityObservation, Target: TargetEntity, Requires: []Collaborator{NeedTemplates}, Handler: examineEntityActionHandler{}},
		{Type: interaction.EntityTalk, Family: interaction.FamilyEntitySocial, Target: TargetEntity, Requires: []Collaborator{NeedTemplates}, Handler: socialActionHandler{}},
		{Type: interaction.EntityGreet, Family: interaction.FamilyEntitySocial, Target: TargetEntity, Requires: []Collaborator{NeedTemplates}, Handler: socialActionHandler{}},
		{Type: interaction.EntityGive, Family: interaction.FamilyEntityExchange, Target: TargetEntity, Requires: []Collaborator{NeedTemplates, NeedInventory}, Params: []string{interaction.ParamItemID}, Handler: giveActionHandler{}},
		{Type: interaction.EntityTrade, Family: interaction.FamilyEntityExchange, Target: TargetEntity, Requires: []Collaborator{NeedTemplates, NeedInventory}, Params: []string{interaction.ParamOfferItem, interaction.ParamWantItem}, Handler: tradeActionHandler{}},

		{Type: interaction.CellMove, Family: interaction.FamilyCellMovement, Target: TargetCell, Requires: []Collaborator{NeedObjects, NeedLocations}, Handler: moveActionHandler{}},
		{Type: interaction.CellEnter, Family: interaction.FamilyCellMovement, Target: TargetCell, Requires: []Collaborator{NeedObjects, NeedLocations}, Handler: moveActionHandler{}},
		{Type: interaction.CellLook, Family: interaction.FamilyCellObservation, Target: TargetCell, OptionalTarget: true, Requires: []Collaborator{NeedObjects, NeedLocations}, Handler: lookActionHandler{}},
		{Type: interaction.CellExplore, Family: interaction.FamilyCellExploration, Target: TargetCell, Requires: []Collaborator{NeedObjects}, Handler: exploreActionHandler{}},
		{Type: interaction.CellForage, Family: interaction.FamilyCellExploration, Target: TargetCell, Requires: []Collaborator{NeedObjects, NeedInventory}, Handler: takeActionHandler{}},

		{Type: interaction.TimeWait, Family: interaction.FamilyTime, Requires: []Collaborator{NeedClock}, Handler: waitActionHandler{}},
		{Type: interaction.TimeCheck, Family: interaction.FamilyTime, Requires: []Collaborator{NeedClock}, Handler: checkTimeActionHandler{}},
	}
	out := make(map[interaction.ActionType]ActionSpec, len(specs))
	for _, s := range specs {
		out[s.Type] = s
	}
	return out
}

func withParams(s ActionSpec, params ...string) ActionSpec {
	s.Params = append(s.Params, params...)
	return s
}

// SupportedActionTypes lists every registered action type.
func SupportedActionTypes() []interaction.ActionType {
	reg := actionRegistry()
	out := make([]interaction.ActionType, 0, len(reg))
	for t := range reg {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
