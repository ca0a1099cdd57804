package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentOrder struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderCode   string    `gorm:"type:text;not null;uniqueIndex"`
	UserId      string    `gorm:"type:text;not null;index"`
	Amount      int64     `gorm:"not null"`
	Status      string    `gorm:"type:text;not null"`
	SnapToken   string    `gorm:"type:text"`
	RedirectURL string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	PaidAt      *time.Time
}

func (PaymentOrder) TableName() string {
	return "payment_orders"
}
