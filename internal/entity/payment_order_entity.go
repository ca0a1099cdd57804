package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
	OrderStatusExpired = "expired"
)

type PaymentOrder struct {
	Id          uuid.UUID
	OrderCode   string // gateway-facing order identifier
	UserId      string
	Amount      int64
	Status      string
	SnapToken   string
	RedirectURL string
	CreatedAt   time.Time
	PaidAt      *time.Time
}
