package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wayfarer/internal/adapter/repo/gorm/model"
	"wayfarer/internal/app/ports"
)

const (
	DefaultMaxHP = 100
	DefaultMaxMP = 50
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type InventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepo {
	return InventoryRepo{db: db}
}

func (r InventoryRepo) AddItem(ctx context.Context, entityID, itemID string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	m := model.InventoryItem{EntityID: entityID, ItemID: itemID, Quantity: int32(qty)}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]any{"quantity": gorm.Expr("inventory_items.quantity + EXCLUDED.quantity")}),
	}).Create(&m).Error
}

// RemoveItem decrements only when enough units are held; the guard lives in
// the WHERE clause so concurrent removals cannot go negative.
func (r InventoryRepo) RemoveItem(ctx context.Context, entityID, itemID string, qty int) (bool, error) {
	if qty <= 0 {
		return false, ErrInvalidQuantity
	}
	db := getDBFromCtx(ctx, r.db)
	res := db.Model(&model.InventoryItem{}).
		Where("entity_id = ? AND item_id = ? AND quantity >= ?", entityID, itemID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	// The decrement already happened; an unpruned zero row reads as 0.
	if err := db.Where("entity_id = ? AND item_id = ? AND quantity = 0", entityID, itemID).
		Delete(&model.InventoryItem{}).Error; err != nil {
		log.Warn().Err(err).Str("entity_id", entityID).Str("item_id", itemID).Msg("prune empty inventory stack failed")
	}
	return true, nil
}

func (r InventoryRepo) Quantity(ctx context.Context, entityID, itemID string) (int, error) {
	var m model.InventoryItem
	err := getDBFromCtx(ctx, r.db).Where(&model.InventoryItem{EntityID: entityID, ItemID: itemID}).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int(m.Quantity), nil
}

type EntityStatsRepo struct {
	db *gorm.DB
}

func NewEntityStatsRepo(db *gorm.DB) EntityStatsRepo {
	return EntityStatsRepo{db: db}
}

// RestoreHPMP raises hp/mp up to the stored maxima under a row lock.
// Entities without a vitals row start full at the defaults.
func (r EntityStatsRepo) RestoreHPMP(ctx context.Context, entityID string, hp, mp int) (ports.RestoreOutcome, error) {
	var out ports.RestoreOutcome
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.EntityVital
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("entity_id = ?", entityID).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m = model.EntityVital{EntityID: entityID, Hp: DefaultMaxHP, MaxHp: DefaultMaxHP, Mp: DefaultMaxMP, MaxMp: DefaultMaxMP}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		gotHP := gain(int(m.Hp), int(m.MaxHp), hp)
		gotMP := gain(int(m.Mp), int(m.MaxMp), mp)
		if gotHP > 0 || gotMP > 0 {
			err := tx.Model(&model.EntityVital{}).Where("entity_id = ?", entityID).Updates(map[string]any{
				"hp": m.Hp + int32(gotHP),
				"mp": m.Mp + int32(gotMP),
			}).Error
			if err != nil {
				return err
			}
		}
		out = ports.RestoreOutcome{
			Success: true,
			Message: fmt.Sprintf("restored %d hp and %d mp", gotHP, gotMP),
			HP:      gotHP,
			MP:      gotMP,
		}
		return nil
	})
	return out, err
}

func gain(cur, max, amount int) int {
	if amount <= 0 || cur >= max {
		return 0
	}
	if cur+amount > max {
		return max - cur
	}
	return amount
}
