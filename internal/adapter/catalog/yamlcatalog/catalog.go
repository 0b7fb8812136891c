// Package yamlcatalog loads item, object, entity and effect templates from a
// YAML file and writes them into the template stores at startup.
package yamlcatalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

type Catalog struct {
	Items    []world.ItemTemplate   `yaml:"items"`
	Objects  []world.ObjectTemplate `yaml:"objects"`
	Entities []world.EntityTemplate `yaml:"entities"`
	Effects  []world.EffectTemplate `yaml:"effects"`
}

type effectWriter interface {
	Create(ctx context.Context, tpl world.EffectTemplate) (world.EffectTemplate, error)
	Update(ctx context.Context, tpl world.EffectTemplate) (world.EffectTemplate, error)
}

// Load reads path. An empty path yields an empty catalog.
func Load(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Catalog{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	return Parse(b)
}

func Parse(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c Catalog) Validate() error {
	if err := uniqueIDs("item", len(c.Items), func(i int) string { return c.Items[i].ItemID }); err != nil {
		return err
	}
	if err := uniqueIDs("object", len(c.Objects), func(i int) string { return c.Objects[i].ObjectID }); err != nil {
		return err
	}
	if err := uniqueIDs("entity", len(c.Entities), func(i int) string { return c.Entities[i].EntityID }); err != nil {
		return err
	}
	return uniqueIDs("effect", len(c.Effects), func(i int) string { return c.Effects[i].EffectID })
}

func uniqueIDs(kind string, n int, id func(int) string) error {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		v := strings.TrimSpace(id(i))
		if v == "" {
			return fmt.Errorf("%w: %s #%d has no id", ErrInvalidCatalog, kind, i+1)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%w: duplicate %s %q", ErrInvalidCatalog, kind, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// Seed upserts every template. Effects that already exist are updated in
// place so reseeding a running store is idempotent.
func (c Catalog) Seed(ctx context.Context, templates ports.TemplateWriter, effects effectWriter) error {
	for _, tpl := range c.Items {
		if err := templates.PutItem(ctx, tpl); err != nil {
			return fmt.Errorf("seed item %s: %w", tpl.ItemID, err)
		}
	}
	for _, tpl := range c.Objects {
		if err := templates.PutObject(ctx, tpl); err != nil {
			return fmt.Errorf("seed object %s: %w", tpl.ObjectID, err)
		}
	}
	for _, tpl := range c.Entities {
		if err := templates.PutEntity(ctx, tpl); err != nil {
			return fmt.Errorf("seed entity %s: %w", tpl.EntityID, err)
		}
	}
	if effects == nil {
		return nil
	}
	for _, tpl := range c.Effects {
		_, err := effects.Create(ctx, tpl)
		if errors.Is(err, ports.ErrConflict) {
			_, err = effects.Update(ctx, tpl)
		}
		if err != nil {
			return fmt.Errorf("seed effect %s: %w", tpl.EffectID, err)
		}
	}
	return nil
}
