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

type PaymentOrderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentOrderMapper
}

func NewPaymentOrderRepository(db *gorm.DB) contract.PaymentOrderRepository {
	return &PaymentOrderRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentOrderMapper(),
	}
}

func (r *PaymentOrderRepositoryImpl) Create(ctx context.Context, order *entity.PaymentOrder) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperrors.Storage(err)
	}
	*order = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentOrderRepositoryImpl) Update(ctx context.Context, order *entity.PaymentOrder) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return apperrors.Storage(err)
	}
	*order = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentOrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentOrder, error) {
	var m model.PaymentOrder
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

func (r *PaymentOrderRepositoryImpl) FindByOrderCode(ctx context.Context, orderCode string) (*entity.PaymentOrder, error) {
	var m model.PaymentOrder
	err := r.db.WithContext(ctx).Where("order_code = ?", orderCode).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Storage(err)
	}
	return r.mapper.ToEntity(&m), nil
}
