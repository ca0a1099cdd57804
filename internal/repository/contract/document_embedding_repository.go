package contract

import (
	"context"

	"coachsite-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredDocumentEmbedding wraps DocumentEmbedding with its similarity score.
type ScoredDocumentEmbedding struct {
	Embedding  *entity.DocumentEmbedding
	Similarity float64 // cosine similarity, 1.0 = identical
}

// DocumentEmbeddingRepository is the vector store client contract. Bulk
// insert is atomic at the record-batch level; callers must not assume
// partial success.
type DocumentEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	// SearchSimilarWithScore returns records ranked by descending cosine
	// similarity, excluding anything below threshold, truncated to limit.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredDocumentEmbedding, error)
}
