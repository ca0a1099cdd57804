package mapper

import (
	"time"

	"coachsite-be/internal/entity"
	"coachsite-be/internal/model"
)

type MembershipMapper struct{}

func NewMembershipMapper() *MembershipMapper {
	return &MembershipMapper{}
}

func (m *MembershipMapper) ToEntity(e *model.Membership) *entity.Membership {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Membership{
		Id:          e.Id,
		UserId:      e.UserId,
		Role:        e.Role,
		Status:      e.Status,
		OrderId:     e.OrderId,
		ActivatedAt: e.ActivatedAt,
		ExpiresAt:   e.ExpiresAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *MembershipMapper) ToModel(e *entity.Membership) *model.Membership {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Membership{
		Id:          e.Id,
		UserId:      e.UserId,
		Role:        e.Role,
		Status:      e.Status,
		OrderId:     e.OrderId,
		ActivatedAt: e.ActivatedAt,
		ExpiresAt:   e.ExpiresAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}
