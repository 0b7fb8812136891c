package gormrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wayfarer/internal/adapter/repo/gorm/model"
	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

type ObjectStateRepo struct {
	db *gorm.DB
}

func NewObjectStateRepo(db *gorm.DB) ObjectStateRepo {
	return ObjectStateRepo{db: db}
}

func (r ObjectStateRepo) Get(ctx context.Context, key world.ObjectKey) (world.ObjectState, error) {
	var m model.ObjectState
	err := getDBFromCtx(ctx, r.db).
		Where(&model.ObjectState{SessionID: key.SessionID, StorageID: key.StorageID()}).
		First(&m).Error
	if err != nil {
		return world.ObjectState{}, mapErr(err)
	}
	contents, err := decodeStrings(m.Contents)
	if err != nil {
		return world.ObjectState{}, err
	}
	props, err := decodeMap(m.Properties)
	if err != nil {
		return world.ObjectState{}, err
	}
	return world.ObjectState{
		RuntimeHandle: m.RuntimeHandle,
		TemplateKey:   m.TemplateKey,
		SessionID:     m.SessionID,
		State:         m.State,
		Contents:      contents,
		Properties:    props,
		Version:       m.Version,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// Save inserts when expectedVersion is 0, otherwise updates only the row
// still at expectedVersion. Either miss is ports.ErrConflict.
func (r ObjectStateRepo) Save(ctx context.Context, state world.ObjectState, expectedVersion int64) error {
	contents, err := encodeJSON(state.Contents, "[]")
	if err != nil {
		return err
	}
	props, err := encodeJSON(state.Properties, "{}")
	if err != nil {
		return err
	}
	key := world.ObjectKey{RuntimeHandle: state.RuntimeHandle, TemplateKey: state.TemplateKey, SessionID: state.SessionID}
	db := getDBFromCtx(ctx, r.db)

	if expectedVersion == 0 {
		m := model.ObjectState{
			SessionID:     state.SessionID,
			StorageID:     key.StorageID(),
			RuntimeHandle: state.RuntimeHandle,
			TemplateKey:   state.TemplateKey,
			State:         state.State,
			Contents:      contents,
			Properties:    props,
			Version:       state.Version,
			UpdatedAt:     state.UpdatedAt,
		}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ports.ErrConflict
		}
		return nil
	}

	res := db.Model(&model.ObjectState{}).
		Where("session_id = ? AND storage_id = ? AND version = ?", state.SessionID, key.StorageID(), expectedVersion).
		Updates(map[string]any{
			"state":      state.State,
			"contents":   contents,
			"properties": props,
			"version":    state.Version,
			"updated_at": state.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
