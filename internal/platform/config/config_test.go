package config

import (
	"os"
	"path/filepath"
	"testing"

	"wayfarer/internal/domain/interaction"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.LogLevel != "info" || cfg.ServiceName != "wayfarer" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WAYFARER_DB_DSN", "postgres://localhost/wayfarer")
	t.Setenv("WAYFARER_RAND_SEED", "42")
	t.Setenv("WAYFARER_LOG_FORMAT", "json")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDSN != "postgres://localhost/wayfarer" || cfg.RandSeed != 42 || cfg.LogFormat != "json" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsBadSeed(t *testing.T) {
	t.Setenv("WAYFARER_RAND_SEED", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadTuningEmptyPathIsDefault(t *testing.T) {
	got, err := LoadTuning("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.WaitMaxMinutes != interaction.DefaultTuning().WaitMaxMinutes {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestLoadTuningSampleOverridesOnlyDefinedKeys(t *testing.T) {
	got, err := LoadTuning("../../../configs/tuning.toml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TimeCost(interaction.ObjectCook) != 25 || got.TimeCost(interaction.CellExplore) != 45 {
		t.Fatalf("expected overridden costs, got %v", got.TimeCosts)
	}
	if got.TimeCost(interaction.ObjectRead) != 10 {
		t.Fatalf("expected untouched cost kept, got %d", got.TimeCost(interaction.ObjectRead))
	}
	if r := got.RecoveryRestore[interaction.ObjectSleep]; r.HP != 50 || r.MP != 25 {
		t.Fatalf("unexpected sleep restore %+v", r)
	}
	if r := got.RecoveryRestore[interaction.ObjectRest]; r.HP != 10 {
		t.Fatalf("expected rest restore kept, got %+v", r)
	}
	if got.Clock.StartOffset != 360 {
		t.Fatalf("unexpected clock %+v", got.Clock)
	}
}

func TestLoadTuningRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"unknown key":       "wiat_max_minutes = 5\n",
		"bare verb":         "[time_costs]\nopen = 3\n",
		"negative cost":     "[time_costs]\n\"object.open\" = -1\n",
		"inverted recovery": "recovery_min_minutes = 100\nrecovery_max_minutes = 50\n",
		"inverted wait":     "wait_default_minutes = 20\nwait_max_minutes = 10\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tuning.toml")
			if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := LoadTuning(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
