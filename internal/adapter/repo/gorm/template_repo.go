package gormrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wayfarer/internal/adapter/repo/gorm/model"
	"wayfarer/internal/domain/world"
)

type TemplateRepo struct {
	db *gorm.DB
}

func NewTemplateRepo(db *gorm.DB) TemplateRepo {
	return TemplateRepo{db: db}
}

func (r TemplateRepo) GetItem(ctx context.Context, itemID string) (world.ItemTemplate, error) {
	var m model.ItemTemplate
	if err := getDBFromCtx(ctx, r.db).Where("item_id = ?", itemID).First(&m).Error; err != nil {
		return world.ItemTemplate{}, mapErr(err)
	}
	props, err := decodeMap(m.Properties)
	if err != nil {
		return world.ItemTemplate{}, err
	}
	return world.ItemTemplate{
		ItemID:      m.ItemID,
		Name:        m.Name,
		Description: m.Description,
		ItemType:    m.ItemType,
		StackSize:   int(m.StackSize),
		Consumable:  m.Consumable,
		Properties:  props,
		SessionID:   m.SessionID,
		CreatedAt:   m.CreatedAt,
	}, nil
}

func (r TemplateRepo) GetObject(ctx context.Context, objectID string) (world.ObjectTemplate, error) {
	var m model.ObjectTemplate
	if err := getDBFromCtx(ctx, r.db).Where("object_id = ?", objectID).First(&m).Error; err != nil {
		return world.ObjectTemplate{}, mapErr(err)
	}
	props, err := decodeMap(m.Properties)
	if err != nil {
		return world.ObjectTemplate{}, err
	}
	return world.ObjectTemplate{ObjectID: m.ObjectID, Name: m.Name, Description: m.Description, Properties: props}, nil
}

func (r TemplateRepo) GetEntity(ctx context.Context, entityID string) (world.EntityTemplate, error) {
	var m model.EntityTemplate
	if err := getDBFromCtx(ctx, r.db).Where("entity_id = ?", entityID).First(&m).Error; err != nil {
		return world.EntityTemplate{}, mapErr(err)
	}
	props, err := decodeMap(m.Properties)
	if err != nil {
		return world.EntityTemplate{}, err
	}
	return world.EntityTemplate{EntityID: m.EntityID, Name: m.Name, Description: m.Description, Properties: props}, nil
}

// CreateItemTemplate inserts a new item. An existing id is a conflict.
func (r TemplateRepo) CreateItemTemplate(ctx context.Context, tpl world.ItemTemplate) error {
	m, err := itemModel(tpl)
	if err != nil {
		return err
	}
	return mapErr(getDBFromCtx(ctx, r.db).Create(&m).Error)
}

func (r TemplateRepo) PutItem(ctx context.Context, tpl world.ItemTemplate) error {
	m, err := itemModel(tpl)
	if err != nil {
		return err
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{UpdateAll: true}).Create(&m).Error
}

func (r TemplateRepo) PutObject(ctx context.Context, tpl world.ObjectTemplate) error {
	props, err := encodeJSON(tpl.Properties, "{}")
	if err != nil {
		return err
	}
	m := model.ObjectTemplate{ObjectID: tpl.ObjectID, Name: tpl.Name, Description: tpl.Description, Properties: props}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{UpdateAll: true}).Create(&m).Error
}

func (r TemplateRepo) PutEntity(ctx context.Context, tpl world.EntityTemplate) error {
	props, err := encodeJSON(tpl.Properties, "{}")
	if err != nil {
		return err
	}
	m := model.EntityTemplate{EntityID: tpl.EntityID, Name: tpl.Name, Description: tpl.Description, Properties: props}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{UpdateAll: true}).Create(&m).Error
}

func itemModel(tpl world.ItemTemplate) (model.ItemTemplate, error) {
	props, err := encodeJSON(tpl.Properties, "{}")
	if err != nil {
		return model.ItemTemplate{}, err
	}
	stack := tpl.StackSize
	if stack <= 0 {
		stack = 1
	}
	return model.ItemTemplate{
		ItemID:      tpl.ItemID,
		Name:        tpl.Name,
		Description: tpl.Description,
		ItemType:    tpl.ItemType,
		StackSize:   int32(stack),
		Consumable:  tpl.Consumable,
		Properties:  props,
		SessionID:   tpl.SessionID,
		CreatedAt:   tpl.CreatedAt,
	}, nil
}
