package specification

import "gorm.io/gorm"

// Unprocessed filters documents awaiting ingestion.
type Unprocessed struct{}

func (s Unprocessed) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_processed = ?", false)
}

// OwnedByUser filters rows by the external auth provider's subject.
type OwnedByUser struct {
	UserID string
}

func (s OwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
