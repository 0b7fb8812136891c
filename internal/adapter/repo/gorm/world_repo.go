package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wayfarer/internal/adapter/repo/gorm/model"
	"wayfarer/internal/app/ports"
)

type EquipmentRepo struct {
	db *gorm.DB
}

func NewEquipmentRepo(db *gorm.DB) EquipmentRepo {
	return EquipmentRepo{db: db}
}

func (r EquipmentRepo) Slots(ctx context.Context, sessionID, entityID string) (map[string]string, error) {
	var rows []model.EquipmentSlot
	err := getDBFromCtx(ctx, r.db).
		Where(&model.EquipmentSlot{SessionID: sessionID, EntityID: entityID}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, m := range rows {
		out[m.Slot] = m.ItemID
	}
	return out, nil
}

// SaveSlots replaces the entity's whole slot set.
func (r EquipmentRepo) SaveSlots(ctx context.Context, sessionID, entityID string, slots map[string]string) error {
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ? AND entity_id = ?", sessionID, entityID).
			Delete(&model.EquipmentSlot{}).Error; err != nil {
			return err
		}
		rows := make([]model.EquipmentSlot, 0, len(slots))
		for slot, item := range slots {
			if item == "" {
				continue
			}
			rows = append(rows, model.EquipmentSlot{SessionID: sessionID, EntityID: entityID, Slot: slot, ItemID: item})
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

type LocationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) LocationRepo {
	return LocationRepo{db: db}
}

func (r LocationRepo) CellOf(ctx context.Context, sessionID, entityID string) (string, error) {
	var m model.EntityLocation
	err := getDBFromCtx(ctx, r.db).
		Where(&model.EntityLocation{SessionID: sessionID, EntityID: entityID}).
		First(&m).Error
	if err != nil {
		return "", mapErr(err)
	}
	return m.CellRef, nil
}

func (r LocationRepo) SetCell(ctx context.Context, sessionID, entityID, cellRef string) error {
	m := model.EntityLocation{SessionID: sessionID, EntityID: entityID, CellRef: cellRef}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "entity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cell_ref"}),
	}).Create(&m).Error
}

func (r LocationRepo) CountInCell(ctx context.Context, sessionID, cellRef string) (int, error) {
	var n int64
	err := getDBFromCtx(ctx, r.db).Model(&model.EntityLocation{}).
		Where("session_id = ? AND cell_ref = ?", sessionID, cellRef).
		Count(&n).Error
	return int(n), err
}

var ErrInvalidMinutes = errors.New("minutes must be positive")

// Clock keeps per-session world minutes in world_clocks.
type Clock struct {
	db *gorm.DB
}

func NewClock(db *gorm.DB) Clock {
	return Clock{db: db}
}

func (c Clock) AdvanceTime(ctx context.Context, sessionID string, minutes int) error {
	if minutes <= 0 {
		return ErrInvalidMinutes
	}
	m := model.WorldClock{SessionID: sessionID, WorldMinutes: int64(minutes)}
	return getDBFromCtx(ctx, c.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.Assignments(map[string]any{"world_minutes": gorm.Expr("world_clocks.world_minutes + EXCLUDED.world_minutes")}),
	}).Create(&m).Error
}

func (c Clock) Now(ctx context.Context, sessionID string) (int64, error) {
	var m model.WorldClock
	err := getDBFromCtx(ctx, c.db).Where("session_id = ?", sessionID).First(&m).Error
	if errors.Is(mapErr(err), ports.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return m.WorldMinutes, nil
}
