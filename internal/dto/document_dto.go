package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"omitempty"`
	FileURL string `json:"file_url" validate:"omitempty,url"`
}

type UpdateDocumentRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"omitempty"`
	FileURL string `json:"file_url" validate:"omitempty,url"`
}

type DocumentResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	FileURL     string     `json:"file_url,omitempty"`
	UploadedAt  time.Time  `json:"uploaded_at"`
	IsProcessed bool       `json:"is_processed"`
	VectorCount int        `json:"vector_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
