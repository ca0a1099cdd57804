package model

import (
	"time"

	"github.com/google/uuid"
)

type Membership struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId      string    `gorm:"type:text;not null;index"`
	Role        string    `gorm:"type:text;not null"`
	Status      string    `gorm:"type:text;not null"`
	OrderId     uuid.UUID `gorm:"type:uuid;index"`
	ActivatedAt time.Time
	ExpiresAt   *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Membership) TableName() string {
	return "memberships"
}
