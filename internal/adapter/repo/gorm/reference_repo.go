package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"wayfarer/internal/adapter/repo/gorm/model"
	"wayfarer/internal/domain/world"
)

type ReferenceRepo struct {
	db *gorm.DB
}

func NewReferenceRepo(db *gorm.DB) ReferenceRepo {
	return ReferenceRepo{db: db}
}

func (r ReferenceRepo) Get(ctx context.Context, runtimeHandle, sessionID string) (world.ReferenceRecord, error) {
	var m model.RuntimeReference
	err := getDBFromCtx(ctx, r.db).
		Where(&model.RuntimeReference{SessionID: sessionID, RuntimeHandle: runtimeHandle}).
		First(&m).Error
	if err != nil {
		return world.ReferenceRecord{}, mapErr(err)
	}
	return world.ReferenceRecord{
		RuntimeHandle: m.RuntimeHandle,
		TemplateKey:   m.TemplateKey,
		SessionID:     m.SessionID,
		Kind:          world.TemplateKind(m.Kind),
		CreatedAt:     m.CreatedAt,
	}, nil
}

func (r ReferenceRepo) Create(ctx context.Context, rec world.ReferenceRecord) error {
	m := model.RuntimeReference{
		SessionID:     rec.SessionID,
		RuntimeHandle: rec.RuntimeHandle,
		TemplateKey:   rec.TemplateKey,
		Kind:          string(rec.Kind),
		CreatedAt:     rec.CreatedAt,
	}
	return mapErr(getDBFromCtx(ctx, r.db).Create(&m).Error)
}
