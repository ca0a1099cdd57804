package implementation

import (
	"context"
	"errors"

	"coachsite-be/internal/entity"
	"coachsite-be/internal/mapper"
	"coachsite-be/internal/model"
	"coachsite-be/internal/pkg/apperrors"
	"coachsite-be/internal/repository/contract"
	"coachsite-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MembershipRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MembershipMapper
}

func NewMembershipRepository(db *gorm.DB) contract.MembershipRepository {
	return &MembershipRepositoryImpl{
		db:     db,
		mapper: mapper.NewMembershipMapper(),
	}
}

func (r *MembershipRepositoryImpl) Create(ctx context.Context, membership *entity.Membership) error {
	m := r.mapper.ToModel(membership)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperrors.Storage(err)
	}
	*membership = *r.mapper.ToEntity(m)
	return nil
}

func (r *MembershipRepositoryImpl) Update(ctx context.Context, membership *entity.Membership) error {
	m := r.mapper.ToModel(membership)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return apperrors.Storage(err)
	}
	*membership = *r.mapper.ToEntity(m)
	return nil
}

func (r *MembershipRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Membership, error) {
	var m model.Membership
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Storage(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MembershipRepositoryImpl) FindActiveByUserId(ctx context.Context, userId string) (*entity.Membership, error) {
	var m model.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Where("status = ?", entity.MembershipStatusActive).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Storage(err)
	}
	return r.mapper.ToEntity(&m), nil
}
