package mapper

import (
	"coachsite-be/internal/entity"
	"coachsite-be/internal/model"
)

type PaymentOrderMapper struct{}

func NewPaymentOrderMapper() *PaymentOrderMapper {
	return &PaymentOrderMapper{}
}

func (m *PaymentOrderMapper) ToEntity(e *model.PaymentOrder) *entity.PaymentOrder {
	if e == nil {
		return nil
	}

	return &entity.PaymentOrder{
		Id:          e.Id,
		OrderCode:   e.OrderCode,
		UserId:      e.UserId,
		Amount:      e.Amount,
		Status:      e.Status,
		SnapToken:   e.SnapToken,
		RedirectURL: e.RedirectURL,
		CreatedAt:   e.CreatedAt,
		PaidAt:      e.PaidAt,
	}
}

func (m *PaymentOrderMapper) ToModel(e *entity.PaymentOrder) *model.PaymentOrder {
	if e == nil {
		return nil
	}

	return &model.PaymentOrder{
		Id:          e.Id,
		OrderCode:   e.OrderCode,
		UserId:      e.UserId,
		Amount:      e.Amount,
		Status:      e.Status,
		SnapToken:   e.SnapToken,
		RedirectURL: e.RedirectURL,
		CreatedAt:   e.CreatedAt,
		PaidAt:      e.PaidAt,
	}
}
