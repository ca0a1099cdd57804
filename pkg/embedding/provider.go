package embedding

import "context"

// Provider generates fixed-length embedding vectors for text. Embed is used
// for retrieval queries; EmbedBatch embeds document chunks and returns
// vectors in the same order as the input, regardless of completion order.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
