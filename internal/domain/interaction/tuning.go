package interaction

import "wayfarer/internal/domain/world"

// Restore is a default hp/mp amount for a verb.
type Restore struct {
	HP int
	MP int
}

// Tuning holds the gameplay numbers handlers fall back to when an object
// does not configure its own.
type Tuning struct {
	// TimeCosts maps an action type to its default minutes.
	TimeCosts map[ActionType]int

	RecoveryMinMinutes int
	RecoveryMaxMinutes int
	RecoveryRestore    map[ActionType]Restore

	WaitDefaultMinutes int
	WaitMaxMinutes     int

	Clock world.ClockConfig
}

func DefaultTuning() Tuning {
	return Tuning{
		TimeCosts: map[ActionType]int{
			ItemUse:     5,
			ItemConsume: 5,
			ItemEquip:   5,
			ItemUnequip: 5,
			ItemDrop:    5,

			ObjectEat:      5,
			ObjectDrink:    5,
			ObjectConsume:  5,
			ObjectRead:     10,
			ObjectStudy:    30,
			ObjectWrite:    15,
			ObjectCook:     20,
			ObjectRepair:   30,
			ObjectRest:     60,
			ObjectSleep:    480,
			ObjectMeditate: 30,

			CellMove:    10,
			CellEnter:   10,
			CellExplore: 30,
			CellForage:  15,

			EntityGive:  1,
			EntityTrade: 5,
		},
		RecoveryMinMinutes: 30,
		RecoveryMaxMinutes: 480,
		RecoveryRestore: map[ActionType]Restore{
			ObjectRest:     {HP: 10, MP: 5},
			ObjectSleep:    {HP: 40, MP: 20},
			ObjectMeditate: {HP: 0, MP: 15},
		},
		WaitDefaultMinutes: 10,
		WaitMaxMinutes:     1440,
		Clock:              world.ClockConfig{DayMinutes: 16 * 60, NightMinutes: 8 * 60},
	}
}

// TimeCost returns the configured minutes for t, or 0.
func (t Tuning) TimeCost(at ActionType) int {
	if t.TimeCosts == nil {
		return 0
	}
	return t.TimeCosts[at]
}

// ClampRecovery keeps recovery durations inside the configured window.
func (t Tuning) ClampRecovery(minutes int) int {
	lo, hi := t.RecoveryMinMinutes, t.RecoveryMaxMinutes
	if lo <= 0 {
		lo = 30
	}
	if hi < lo {
		hi = lo
	}
	if minutes < lo {
		return lo
	}
	if minutes > hi {
		return hi
	}
	return minutes
}
