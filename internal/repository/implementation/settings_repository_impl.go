package implementation

import (
	"context"
	"errors"

	"coachsite-be/internal/entity"
	"coachsite-be/internal/mapper"
	"coachsite-be/internal/model"
	"coachsite-be/internal/pkg/apperrors"
	"coachsite-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SettingsMapper
}

func NewSettingsRepository(db *gorm.DB) contract.SettingsRepository {
	return &SettingsRepositoryImpl{
		db:     db,
		mapper: mapper.NewSettingsMapper(),
	}
}

func (r *SettingsRepositoryImpl) Get(ctx context.Context) (*entity.Settings, error) {
	var m model.Settings
	err := r.db.WithContext(ctx).Where("id = ?", 1).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Storage(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SettingsRepositoryImpl) Upsert(ctx context.Context, settings *entity.Settings) error {
	settings.Id = 1 // single row
	m := r.mapper.ToModel(settings)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return apperrors.Storage(err)
	}
	*settings = *r.mapper.ToEntity(m)
	return nil
}
