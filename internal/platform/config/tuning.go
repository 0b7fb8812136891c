package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"wayfarer/internal/domain/interaction"
)

type restoreFile struct {
	HP int `toml:"hp"`
	MP int `toml:"mp"`
}

type tuningFile struct {
	TimeCosts          map[string]int         `toml:"time_costs"`
	RecoveryMinMinutes int                    `toml:"recovery_min_minutes"`
	RecoveryMaxMinutes int                    `toml:"recovery_max_minutes"`
	RecoveryRestore    map[string]restoreFile `toml:"recovery_restore"`
	WaitDefaultMinutes int                    `toml:"wait_default_minutes"`
	WaitMaxMinutes     int                    `toml:"wait_max_minutes"`
	DayMinutes         int                    `toml:"day_minutes"`
	NightMinutes       int                    `toml:"night_minutes"`
	StartOffset        int                    `toml:"start_offset"`
}

// LoadTuning overlays the keys present in the TOML file at path onto
// interaction.DefaultTuning. An empty path returns the defaults.
func LoadTuning(path string) (interaction.Tuning, error) {
	t := interaction.DefaultTuning()
	if strings.TrimSpace(path) == "" {
		return t, nil
	}

	var raw tuningFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return interaction.Tuning{}, fmt.Errorf("load tuning: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return interaction.Tuning{}, fmt.Errorf("load tuning: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("time_costs") {
		for k, minutes := range raw.TimeCosts {
			at, err := actionKey(k)
			if err != nil {
				return interaction.Tuning{}, err
			}
			if minutes < 0 {
				return interaction.Tuning{}, fmt.Errorf("load tuning: time_costs.%s must not be negative", k)
			}
			t.TimeCosts[at] = minutes
		}
	}
	if meta.IsDefined("recovery_restore") {
		for k, r := range raw.RecoveryRestore {
			at, err := actionKey(k)
			if err != nil {
				return interaction.Tuning{}, err
			}
			t.RecoveryRestore[at] = interaction.Restore{HP: r.HP, MP: r.MP}
		}
	}
	if meta.IsDefined("recovery_min_minutes") {
		t.RecoveryMinMinutes = raw.RecoveryMinMinutes
	}
	if meta.IsDefined("recovery_max_minutes") {
		t.RecoveryMaxMinutes = raw.RecoveryMaxMinutes
	}
	if meta.IsDefined("wait_default_minutes") {
		t.WaitDefaultMinutes = raw.WaitDefaultMinutes
	}
	if meta.IsDefined("wait_max_minutes") {
		t.WaitMaxMinutes = raw.WaitMaxMinutes
	}
	if meta.IsDefined("day_minutes") {
		t.Clock.DayMinutes = raw.DayMinutes
	}
	if meta.IsDefined("night_minutes") {
		t.Clock.NightMinutes = raw.NightMinutes
	}
	if meta.IsDefined("start_offset") {
		t.Clock.StartOffset = raw.StartOffset
	}

	if t.RecoveryMinMinutes <= 0 || t.RecoveryMaxMinutes < t.RecoveryMinMinutes {
		return interaction.Tuning{}, fmt.Errorf("load tuning: recovery window %d..%d is invalid", t.RecoveryMinMinutes, t.RecoveryMaxMinutes)
	}
	if t.WaitDefaultMinutes <= 0 || t.WaitMaxMinutes < t.WaitDefaultMinutes {
		return interaction.Tuning{}, fmt.Errorf("load tuning: wait window %d..%d is invalid", t.WaitDefaultMinutes, t.WaitMaxMinutes)
	}
	return t, nil
}

func actionKey(raw string) (interaction.ActionType, error) {
	at := interaction.NormalizeActionType(raw)
	if at.Namespace() == "" || at.Verb() == string(at) {
		return "", fmt.Errorf("load tuning: %q is not an action type", raw)
	}
	return at, nil
}
