package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

// tables mirrors migrations/. Generated structs land in
// internal/adapter/repo/gorm/model, one file per table.
var tables = []string{
	"item_templates",
	"object_templates",
	"entity_templates",
	"runtime_references",
	"object_states",
	"effect_templates",
	"effect_ownerships",
	"inventory_items",
	"entity_vitals",
	"equipment_slots",
	"entity_locations",
	"world_clocks",
	"domain_events",
}

func main() {
	var dsn, out, only string
	flag.StringVar(&dsn, "dsn", os.Getenv("WAYFARER_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.StringVar(&only, "tables", "", "comma separated subset of tables to regenerate")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or WAYFARER_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
		Mode:         gen.WithoutContext,
	})
	g.UseDB(db)
	for _, table := range selectTables(only) {
		g.GenerateModel(table)
	}
	g.Execute()

	fmt.Printf("generated gorm models at %s\n", out)
}

func selectTables(only string) []string {
	if strings.TrimSpace(only) == "" {
		return tables
	}
	out := make([]string, 0)
	for _, t := range strings.Split(only, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
