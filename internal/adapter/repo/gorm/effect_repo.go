package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"wayfarer/internal/adapter/repo/gorm/model"
	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

type EffectTemplateRepo struct {
	db *gorm.DB
}

func NewEffectTemplateRepo(db *gorm.DB) EffectTemplateRepo {
	return EffectTemplateRepo{db: db}
}

func (r EffectTemplateRepo) Get(ctx context.Context, effectID string) (world.EffectTemplate, error) {
	var m model.EffectTemplate
	if err := getDBFromCtx(ctx, r.db).Where("effect_id = ?", effectID).First(&m).Error; err != nil {
		return world.EffectTemplate{}, mapErr(err)
	}
	return effectFromModel(m)
}

func (r EffectTemplateRepo) Create(ctx context.Context, tpl world.EffectTemplate) error {
	m, err := effectModel(tpl)
	if err != nil {
		return err
	}
	return mapErr(getDBFromCtx(ctx, r.db).Create(&m).Error)
}

func (r EffectTemplateRepo) Update(ctx context.Context, tpl world.EffectTemplate) error {
	m, err := effectModel(tpl)
	if err != nil {
		return err
	}
	res := getDBFromCtx(ctx, r.db).Model(&model.EffectTemplate{}).
		Where("effect_id = ?", tpl.EffectID).
		Updates(map[string]any{
			"name":        m.Name,
			"effect_type": m.EffectType,
			"effect":      m.Effect,
			"constraints": m.Constraints,
			"tags":        m.Tags,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r EffectTemplateRepo) Delete(ctx context.Context, effectID string) error {
	res := getDBFromCtx(ctx, r.db).Where("effect_id = ?", effectID).Delete(&model.EffectTemplate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func effectModel(tpl world.EffectTemplate) (model.EffectTemplate, error) {
	effect, err := encodeJSON(tpl.Effect, "{}")
	if err != nil {
		return model.EffectTemplate{}, err
	}
	constraints, err := encodeJSON(tpl.Constraints, "{}")
	if err != nil {
		return model.EffectTemplate{}, err
	}
	tags, err := encodeJSON(tpl.Tags, "[]")
	if err != nil {
		return model.EffectTemplate{}, err
	}
	return model.EffectTemplate{
		EffectID:    tpl.EffectID,
		Name:        tpl.Name,
		EffectType:  string(tpl.Type),
		Effect:      effect,
		Constraints: constraints,
		Tags:        tags,
	}, nil
}

func effectFromModel(m model.EffectTemplate) (world.EffectTemplate, error) {
	effect, err := decodeMap(m.Effect)
	if err != nil {
		return world.EffectTemplate{}, err
	}
	constraints, err := decodeMap(m.Constraints)
	if err != nil {
		return world.EffectTemplate{}, err
	}
	tags, err := decodeStrings(m.Tags)
	if err != nil {
		return world.EffectTemplate{}, err
	}
	return world.EffectTemplate{
		EffectID:    m.EffectID,
		Name:        m.Name,
		Type:        world.EffectType(m.EffectType),
		Effect:      effect,
		Constraints: constraints,
		Tags:        tags,
	}, nil
}

type EffectOwnershipRepo struct {
	db *gorm.DB
}

func NewEffectOwnershipRepo(db *gorm.DB) EffectOwnershipRepo {
	return EffectOwnershipRepo{db: db}
}

func (r EffectOwnershipRepo) Append(ctx context.Context, o world.EffectOwnership) error {
	m := model.EffectOwnership{
		SessionID:  o.SessionID,
		EntityID:   o.EntityID,
		EffectID:   o.EffectID,
		Source:     o.Source,
		AcquiredAt: o.AcquiredAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

func (r EffectOwnershipRepo) DeleteAll(ctx context.Context, sessionID, entityID, effectID string) (int, error) {
	res := getDBFromCtx(ctx, r.db).
		Where("session_id = ? AND entity_id = ? AND effect_id = ?", sessionID, entityID, effectID).
		Delete(&model.EffectOwnership{})
	return int(res.RowsAffected), res.Error
}

func (r EffectOwnershipRepo) DeleteByEffect(ctx context.Context, effectID string) (int, error) {
	res := getDBFromCtx(ctx, r.db).Where("effect_id = ?", effectID).Delete(&model.EffectOwnership{})
	return int(res.RowsAffected), res.Error
}

// ListByEntity returns rows in grant order.
func (r EffectOwnershipRepo) ListByEntity(ctx context.Context, sessionID, entityID string) ([]world.EffectOwnership, error) {
	var rows []model.EffectOwnership
	err := getDBFromCtx(ctx, r.db).
		Where(&model.EffectOwnership{SessionID: sessionID, EntityID: entityID}).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]world.EffectOwnership, 0, len(rows))
	for _, m := range rows {
		out = append(out, world.EffectOwnership{
			SessionID:  m.SessionID,
			EntityID:   m.EntityID,
			EffectID:   m.EffectID,
			Source:     m.Source,
			AcquiredAt: m.AcquiredAt,
		})
	}
	return out, nil
}
