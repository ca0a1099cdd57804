package contract

import (
	"context"

	"coachsite-be/internal/entity"
	"coachsite-be/internal/repository/specification"
)

type PaymentOrderRepository interface {
	Create(ctx context.Context, order *entity.PaymentOrder) error
	Update(ctx context.Context, order *entity.PaymentOrder) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentOrder, error)
	FindByOrderCode(ctx context.Context, orderCode string) (*entity.PaymentOrder, error)
}
