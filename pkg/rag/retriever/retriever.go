package retriever

import (
	"context"

	"coachsite-be/internal/repository/contract"
	"coachsite-be/pkg/embedding"
)

// ContextItem is a request-scoped retrieval result, consumed by the prompt
// builder and discarded.
type ContextItem struct {
	Text          string
	DocumentTitle string
	Similarity    float64
}

const (
	DefaultLimit     = 5
	DefaultThreshold = 0.5
)

// Retriever embeds a query and finds the most similar stored chunks.
type Retriever struct {
	embedder   embedding.Provider
	embeddings contract.DocumentEmbeddingRepository
	threshold  float64
}

func New(embedder embedding.Provider, embeddings contract.DocumentEmbeddingRepository, threshold float64) *Retriever {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Retriever{
		embedder:   embedder,
		embeddings: embeddings,
		threshold:  threshold,
	}
}

// Retrieve returns up to limit context items ranked by descending similarity,
// all scoring at or above the similarity floor. An empty result means no
// relevant knowledge exists for the query; it is not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, limit int) ([]ContextItem, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	queryVector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	scored, err := r.embeddings.SearchSimilarWithScore(ctx, queryVector, limit, r.threshold)
	if err != nil {
		return nil, err
	}

	items := make([]ContextItem, len(scored))
	for i, s := range scored {
		items[i] = ContextItem{
			Text:          s.Embedding.ChunkText,
			DocumentTitle: s.Embedding.DocumentTitle,
			Similarity:    s.Similarity,
		}
	}
	return items, nil
}
