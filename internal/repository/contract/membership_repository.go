package contract

import (
	"context"

	"coachsite-be/internal/entity"
	"coachsite-be/internal/repository/specification"
)

type MembershipRepository interface {
	Create(ctx context.Context, membership *entity.Membership) error
	Update(ctx context.Context, membership *entity.Membership) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Membership, error)
	FindActiveByUserId(ctx context.Context, userId string) (*entity.Membership, error)
}
