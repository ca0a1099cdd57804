package dto

import "github.com/google/uuid"

type IngestRequest struct {
	DocumentId uuid.UUID `json:"document_id" validate:"required"`
}

type IngestResponse struct {
	Success         bool      `json:"success"`
	DocumentId      uuid.UUID `json:"document_id"`
	ChunksProcessed int       `json:"chunks_processed"`
}

type RefreshAllResponse struct {
	Success            bool `json:"success"`
	DocumentsProcessed int  `json:"documents_processed"`
	TotalChunks        int  `json:"total_chunks"`
}

type IngestionStatusResponse struct {
	Success          bool  `json:"success"`
	Documents        int64 `json:"documents"`
	PendingDocuments int64 `json:"pending_documents"`
	TotalVectors     int64 `json:"total_vectors"`
}
