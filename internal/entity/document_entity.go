package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is a source knowledge item. Content holds inline text; FileURL
// points at a binary source (PDF) to extract instead. Exactly one of the two
// is expected to be set.
type Document struct {
	Id          uuid.UUID
	Title       string
	Content     string
	FileURL     string
	UploadedAt  time.Time
	IsProcessed bool
	VectorCount int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
