package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentEmbedding is one persisted chunk vector. DocumentTitle is
// denormalized so retrieval results can be labeled without a join. The
// vector length is fixed by the embedding model (768 for text-embedding-004);
// similarity search depends on every record sharing that dimensionality.
type DocumentEmbedding struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	DocumentTitle  string
	ChunkText      string
	ChunkIndex     int
	EmbeddingValue []float32
	Metadata       map[string]interface{}
	CreatedAt      time.Time
}
