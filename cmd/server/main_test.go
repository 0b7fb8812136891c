package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"wayfarer/internal/app/action"
	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/platform/config"
)

func TestBuildAppInMemoryServesSeededCatalog(t *testing.T) {
	journalDir := t.TempDir()
	cfg := config.Config{
		CatalogFile: "../../configs/catalog.yaml",
		TuningFile:  "../../configs/tuning.toml",
		JournalDir:  journalDir,
		RandSeed:    7,
	}
	a, err := buildApp(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("buildApp: %v", err)
	}
	if a.StoreKind != "memory" {
		t.Fatalf("expected memory store without a dsn, got %q", a.StoreKind)
	}

	res := a.Engine.Execute(context.Background(), action.Request{
		EntityID:   "hero",
		ActionType: interaction.ObjectOpen,
		TargetID:   "chest",
		Parameters: map[string]any{interaction.ParamSessionID: "s-1"},
	})
	if !res.Success {
		t.Fatalf("expected open to succeed, got %q", res.Message)
	}
	if snap := a.Metrics.Snapshot(); snap.ActionSuccess != 1 {
		t.Fatalf("expected one success recorded, got %+v", snap)
	}

	a.Close()
	files, err := filepath.Glob(filepath.Join(journalDir, "actions-*.jsonl.zst"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one journal file, got %v err=%v", files, err)
	}
}

func TestBuildAppRejectsBadTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	if err := os.WriteFile(path, []byte("wait_max_minutes = \"soon\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := buildApp(context.Background(), config.Config{TuningFile: path}, zerolog.Nop()); err == nil {
		t.Fatalf("expected tuning error")
	}
}

func TestBuildAppRejectsMissingCatalog(t *testing.T) {
	cfg := config.Config{CatalogFile: filepath.Join(t.TempDir(), "missing.yaml")}
	if _, err := buildApp(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected catalog error")
	}
}
