package unitofwork

import (
	"context"

	"coachsite-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
	MembershipRepository() contract.MembershipRepository
	PaymentOrderRepository() contract.PaymentOrderRepository
	SettingsRepository() contract.SettingsRepository
}
