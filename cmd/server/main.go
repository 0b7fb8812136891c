package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/rs/zerolog"

	"wayfarer/internal/adapter/catalog/yamlcatalog"
	httpadapter "wayfarer/internal/adapter/http"
	"wayfarer/internal/adapter/journal/zstdlog"
	metricsinmem "wayfarer/internal/adapter/metrics/inmemory"
	gormrepo "wayfarer/internal/adapter/repo/gorm"
	"wayfarer/internal/adapter/repo/memory"
	"wayfarer/internal/app/action"
	"wayfarer/internal/app/crafting"
	"wayfarer/internal/app/effects"
	"wayfarer/internal/app/objectstate"
	"wayfarer/internal/app/ports"
	"wayfarer/internal/app/replay"
	"wayfarer/internal/app/status"
	domaincrafting "wayfarer/internal/domain/crafting"
	"wayfarer/internal/domain/world"
	"wayfarer/internal/platform/config"
	"wayfarer/internal/platform/logging"
	platformotel "wayfarer/internal/platform/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(cfg.ServiceName, cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	shutdownTracing, err := platformotel.Setup(ctx, cfg.ServiceName, cfg.OTelEndpoint)
	if err != nil {
		logger.Fatal().Err(err).Msg("setup tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("build app")
	}
	defer a.Close()

	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	a.Handler.RegisterRoutes(s)

	logger.Info().Str("addr", cfg.HTTPAddr).Str("store", a.StoreKind).Msg("wayfarer listening")
	s.Spin()
}

// stores is the set of ports one backend provides.
type stores struct {
	Kind       string
	References ports.ReferenceRepository
	States     ports.ObjectStateRepository
	Templates  interface {
		ports.TemplateRepository
		ports.TemplateWriter
	}
	EffectTemplates ports.EffectTemplateRepository
	Ownerships      ports.EffectOwnershipRepository
	Inventory       ports.Inventory
	Stats           ports.EntityStats
	Equipment       ports.EquipmentRepository
	Locations       ports.LocationRepository
	Clock           ports.Clock
	Events          ports.EventRepository
	TxMgr           ports.TxManager
}

func buildStores(ctx context.Context, cfg config.Config, logger zerolog.Logger) (stores, error) {
	if cfg.DBDSN == "" {
		store := memory.NewStore()
		return stores{
			Kind:            "memory",
			References:      memory.NewReferenceRepo(store),
			States:          memory.NewObjectStateRepo(store),
			Templates:       memory.NewTemplateRepo(store),
			EffectTemplates: memory.NewEffectTemplateRepo(store),
			Ownerships:      memory.NewEffectOwnershipRepo(store),
			Inventory:       memory.NewInventoryRepo(store),
			Stats:           memory.NewEntityStatsRepo(store),
			Equipment:       memory.NewEquipmentRepo(store),
			Locations:       memory.NewLocationRepo(store),
			Clock:           memory.NewClock(store),
			Events:          memory.NewEventRepo(store),
			TxMgr:           memory.NewTxManager(store),
		}, nil
	}

	db, err := gormrepo.OpenPostgres(cfg.DBDSN)
	if err != nil {
		return stores{}, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.MigrationsDir != "" {
		applied, err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir)
		if err != nil {
			return stores{}, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info().Strs("versions", applied).Msg("migrations applied")
	}
	return stores{
		Kind:            "postgres",
		References:      gormrepo.NewReferenceRepo(db),
		States:          gormrepo.NewObjectStateRepo(db),
		Templates:       gormrepo.NewTemplateRepo(db),
		EffectTemplates: gormrepo.NewEffectTemplateRepo(db),
		Ownerships:      gormrepo.NewEffectOwnershipRepo(db),
		Inventory:       gormrepo.NewInventoryRepo(db),
		Stats:           gormrepo.NewEntityStatsRepo(db),
		Equipment:       gormrepo.NewEquipmentRepo(db),
		Locations:       gormrepo.NewLocationRepo(db),
		Clock:           gormrepo.NewClock(db),
		Events:          gormrepo.NewEventRepo(db),
		TxMgr:           gormrepo.NewTxManager(db),
	}, nil
}

type app struct {
	StoreKind string
	Engine    *action.Engine
	Effects   *effects.Service
	Metrics   *metricsinmem.Recorder
	Handler   httpadapter.Handler

	journal *zstdlog.Journal
}

func (a *app) Close() {
	if a.journal != nil {
		_ = a.journal.Close()
	}
}

func buildApp(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*app, error) {
	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		return nil, err
	}
	st, err := buildStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	recorder := metricsinmem.NewRecorder()
	effectSvc := &effects.Service{
		Templates:  st.EffectTemplates,
		Ownerships: st.Ownerships,
		TxMgr:      st.TxMgr,
		Logger:     logger.With().Str("component", "effects").Logger(),
	}

	catalog, err := yamlcatalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	if err := catalog.Seed(ctx, st.Templates, effectSvc); err != nil {
		return nil, err
	}

	crafter := &crafting.Engine{
		Inventory: st.Inventory,
		Templates: st.Templates,
		Clock:     st.Clock,
		Logger:    logger.With().Str("component", "crafting").Logger(),
	}
	if cfg.RandSeed != 0 {
		crafter.Rand = domaincrafting.NewSeededRand(cfg.RandSeed)
	}

	deps := action.Deps{
		References: st.References,
		Objects: &objectstate.Service{
			States:    st.States,
			Templates: st.Templates,
			Metrics:   recorder,
			Logger:    logger.With().Str("component", "objectstate").Logger(),
		},
		Effects:   effectSvc,
		Crafting:  crafter,
		Inventory: st.Inventory,
		Stats:     st.Stats,
		Templates: st.Templates,
		Clock:     st.Clock,
		Equipment: st.Equipment,
		Locations: st.Locations,
		Events:    st.Events,
		Metrics:   recorder,
		Tuning:    tuning,
		Logger:    logger,
	}

	a := &app{StoreKind: st.Kind, Effects: effectSvc, Metrics: recorder}
	if cfg.JournalDir != "" {
		a.journal = zstdlog.New(cfg.JournalDir)
		deps.Journal = a.journal
	}
	a.Engine = action.NewEngine(deps)
	a.Handler = httpadapter.Handler{
		Actions:  a.Engine,
		Effects:  effectSvc,
		ReplayUC: replay.UseCase{Events: st.Events},
		StatusUC: status.UseCase{
			Clock:     st.Clock,
			Locations: st.Locations,
			Equipment: st.Equipment,
			Cycle:     world.NewClock(tuning.Clock),
		},
		KPI: recorder,
	}

	logger.Info().
		Str("store", st.Kind).
		Int("items", len(catalog.Items)).
		Int("objects", len(catalog.Objects)).
		Int("entities", len(catalog.Entities)).
		Int("effects", len(catalog.Effects)).
		Msg("catalog seeded")
	return a, nil
}
