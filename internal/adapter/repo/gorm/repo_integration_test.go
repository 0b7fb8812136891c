package gormrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"gorm.io/gorm"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("WAYFARER_DB_DSN")
	if dsn == "" {
		t.Skip("WAYFARER_DB_DSN is required for integration test")
	}
	return dsn
}

func openMigrated(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	_, file, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")
	if _, err := ApplyMigrations(context.Background(), db, dir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestObjectStateRepo_CompareAndSwap(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	sessionID := "it-object-cas"
	_ = db.Exec("DELETE FROM object_states WHERE session_id = ?", sessionID).Error

	repo := NewObjectStateRepo(db)
	st := world.ObjectState{
		TemplateKey: "chest",
		SessionID:   sessionID,
		State:       "closed",
		Contents:    []string{"coin"},
		Properties:  map[string]any{"name": "Chest"},
		Version:     1,
		UpdatedAt:   time.Now(),
	}
	if err := repo.Save(ctx, st, 0); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Save(ctx, st, 0); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict on duplicate insert, got %v", err)
	}

	st.State, st.Version = "open", 2
	if err := repo.Save(ctx, st, 1); err != nil {
		t.Fatalf("cas update: %v", err)
	}
	if err := repo.Save(ctx, st, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict on stale version, got %v", err)
	}

	got, err := repo.Get(ctx, world.ObjectKey{TemplateKey: "chest", SessionID: sessionID})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != "open" || got.Version != 2 || len(got.Contents) != 1 || got.Properties["name"] != "Chest" {
		t.Fatalf("unexpected state %+v", got)
	}
}

func TestReferenceRepo_ScopesBySession(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	_ = db.Exec("DELETE FROM runtime_references WHERE session_id IN ?", []string{"it-ref-a", "it-ref-b"}).Error

	repo := NewReferenceRepo(db)
	rec := world.ReferenceRecord{
		RuntimeHandle: "6f1c2d3e-0000-4000-8000-000000000001",
		TemplateKey:   "door",
		SessionID:     "it-ref-a",
		Kind:          world.KindObject,
		CreatedAt:     time.Now(),
	}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, rec); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected duplicate handle conflict, got %v", err)
	}
	if _, err := repo.Get(ctx, rec.RuntimeHandle, "it-ref-b"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected other session not found, got %v", err)
	}
	got, err := repo.Get(ctx, rec.RuntimeHandle, "it-ref-a")
	if err != nil || got.TemplateKey != "door" || got.Kind != world.KindObject {
		t.Fatalf("unexpected record %+v err=%v", got, err)
	}
}

func TestInventoryAndStatsRepos(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	entityID := "it-inventory"
	_ = db.Exec("DELETE FROM inventory_items WHERE entity_id = ?", entityID).Error
	_ = db.Exec("DELETE FROM entity_vitals WHERE entity_id = ?", entityID).Error

	inv := NewInventoryRepo(db)
	if err := inv.AddItem(ctx, entityID, "arrow", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := inv.AddItem(ctx, entityID, "arrow", 3); err != nil {
		t.Fatalf("add again: %v", err)
	}
	if ok, err := inv.RemoveItem(ctx, entityID, "arrow", 6); err != nil || ok {
		t.Fatalf("expected refusal, got ok=%v err=%v", ok, err)
	}
	if ok, err := inv.RemoveItem(ctx, entityID, "arrow", 5); err != nil || !ok {
		t.Fatalf("expected removal, got ok=%v err=%v", ok, err)
	}
	if q, _ := inv.Quantity(ctx, entityID, "arrow"); q != 0 {
		t.Fatalf("expected empty stack, got %d", q)
	}

	stats := NewEntityStatsRepo(db)
	if err := db.Exec("INSERT INTO entity_vitals(entity_id, hp, max_hp, mp, max_mp) VALUES (?, 90, 100, 0, 20)", entityID).Error; err != nil {
		t.Fatalf("seed vitals: %v", err)
	}
	out, err := stats.RestoreHPMP(ctx, entityID, 30, 5)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if out.HP != 10 || out.MP != 5 {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestInventoryRepo_RemoveSurvivesPruneFailure(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	entityID := "it-inventory-prune"
	_ = db.Exec("DELETE FROM inventory_items WHERE entity_id = ?", entityID).Error

	inv := NewInventoryRepo(db)
	if err := inv.AddItem(ctx, entityID, "torch", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("it:fail_delete", func(tx *gorm.DB) {
		_ = tx.AddError(errors.New("delete unavailable"))
	}); err != nil {
		t.Fatalf("register callback: %v", err)
	}

	ok, err := inv.RemoveItem(ctx, entityID, "torch", 1)
	if err != nil || !ok {
		t.Fatalf("expected committed removal, got ok=%v err=%v", ok, err)
	}
	if q, _ := inv.Quantity(ctx, entityID, "torch"); q != 0 {
		t.Fatalf("expected 0 torches, got %d", q)
	}
}

func TestEffectRepos_RevokeAllAndDeleteByEffect(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	sessionID := "it-effects"
	_ = db.Exec("DELETE FROM effect_ownerships WHERE session_id = ?", sessionID).Error
	_ = db.Exec("DELETE FROM effect_templates WHERE effect_id = ?", "IT_HASTE").Error

	templates := NewEffectTemplateRepo(db)
	owners := NewEffectOwnershipRepo(db)
	tpl := world.EffectTemplate{EffectID: "IT_HASTE", Name: "Haste", Type: world.EffectBuff, Tags: []string{"speed"}}
	if err := templates.Create(ctx, tpl); err != nil {
		t.Fatalf("create template: %v", err)
	}
	got, err := templates.Get(ctx, "IT_HASTE")
	if err != nil || !got.HasTag("speed") {
		t.Fatalf("unexpected template %+v err=%v", got, err)
	}

	for i := 0; i < 2; i++ {
		if err := owners.Append(ctx, world.EffectOwnership{SessionID: sessionID, EntityID: "hero", EffectID: "IT_HASTE", AcquiredAt: time.Now()}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	n, err := owners.DeleteAll(ctx, sessionID, "hero", "IT_HASTE")
	if err != nil || n != 2 {
		t.Fatalf("expected 2 rows revoked, got %d err=%v", n, err)
	}
	if err := templates.Delete(ctx, "IT_HASTE"); err != nil {
		t.Fatalf("delete template: %v", err)
	}
	if err := templates.Delete(ctx, "IT_HASTE"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestClockAndEventRepos(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	sessionID := "it-clock-events"
	_ = db.Exec("DELETE FROM world_clocks WHERE session_id = ?", sessionID).Error
	_ = db.Exec("DELETE FROM domain_events WHERE session_id = ?", sessionID).Error

	clock := NewClock(db)
	if now, err := clock.Now(ctx, sessionID); err != nil || now != 0 {
		t.Fatalf("expected fresh clock at 0, got %d err=%v", now, err)
	}
	_ = clock.AdvanceTime(ctx, sessionID, 30)
	_ = clock.AdvanceTime(ctx, sessionID, 15)
	if now, _ := clock.Now(ctx, sessionID); now != 45 {
		t.Fatalf("expected 45 minutes, got %d", now)
	}

	events := NewEventRepo(db)
	for _, typ := range []string{"a", "b", "c"} {
		if err := events.Append(ctx, sessionID, []world.DomainEvent{{Type: typ, OccurredAt: time.Now(), Payload: map[string]any{"k": typ}}}); err != nil {
			t.Fatalf("append event: %v", err)
		}
	}
	got, err := events.ListBySession(ctx, sessionID, 2)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(got) != 2 || got[0].Type != "b" || got[1].Payload["k"] != "c" {
		t.Fatalf("unexpected events %+v", got)
	}
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	sessionID := "it-tx-rollback"
	_ = db.Exec("DELETE FROM entity_locations WHERE session_id = ?", sessionID).Error

	locs := NewLocationRepo(db)
	boom := errors.New("boom")
	err := NewTxManager(db).RunInTx(ctx, func(ctx context.Context) error {
		if err := locs.SetCell(ctx, sessionID, "hero", "meadow"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := locs.CellOf(ctx, sessionID, "hero"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected location rolled back, got %v", err)
	}
}
