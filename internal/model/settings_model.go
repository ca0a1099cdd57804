package model

import (
	"time"

	"gorm.io/datatypes"
)

// Settings is a single-row table; Id is always 1.
type Settings struct {
	Id                 int            `gorm:"primaryKey"`
	SiteTitle          string         `gorm:"type:text"`
	SiteDescription    string         `gorm:"type:text"`
	CoachName          string         `gorm:"type:text"`
	ContactEmail       string         `gorm:"type:text"`
	MembershipPrice    int64          `gorm:"default:0"`
	WelcomeMessage     string         `gorm:"type:text"`
	SuggestedQuestions datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
}

func (Settings) TableName() string {
	return "settings"
}
