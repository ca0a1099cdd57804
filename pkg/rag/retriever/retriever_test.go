package retriever

import (
	"context"
	"errors"
	"testing"

	"coachsite-be/internal/entity"
	"coachsite-be/internal/repository/contract"

	"github.com/google/uuid"
)

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	return f.vector, f.err
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, f.err
}

type fakeEmbeddingRepo struct {
	results       []*contract.ScoredDocumentEmbedding
	err           error
	gotLimit      int
	gotThreshold  float64
	searchInvoked bool
}

func (f *fakeEmbeddingRepo) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	return nil
}

func (f *fakeEmbeddingRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

func (f *fakeEmbeddingRepo) DeleteAll(ctx context.Context) error { return nil }

func (f *fakeEmbeddingRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (f *fakeEmbeddingRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredDocumentEmbedding, error) {
	f.searchInvoked = true
	f.gotLimit = limit
	f.gotThreshold = threshold
	return f.results, f.err
}

func TestRetrieveMapsResults(t *testing.T) {
	repo := &fakeEmbeddingRepo{
		results: []*contract.ScoredDocumentEmbedding{
			{
				Embedding:  &entity.DocumentEmbedding{ChunkText: "first chunk", DocumentTitle: "Guide"},
				Similarity: 0.91,
			},
			{
				Embedding:  &entity.DocumentEmbedding{ChunkText: "second chunk", DocumentTitle: "Handbook"},
				Similarity: 0.72,
			},
		},
	}
	r := New(&fakeEmbedder{vector: []float32{0.1, 0.2}}, repo, 0.5)

	items, err := r.Retrieve(context.Background(), "how do I set goals?", 5)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Text != "first chunk" || items[0].DocumentTitle != "Guide" {
		t.Errorf("items[0] = %+v, unexpected mapping", items[0])
	}
	if items[0].Similarity != 0.91 {
		t.Errorf("items[0].Similarity = %v, want 0.91", items[0].Similarity)
	}
	if repo.gotThreshold != 0.5 {
		t.Errorf("threshold passed to store = %v, want 0.5", repo.gotThreshold)
	}
}

func TestRetrieveDefaults(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	r := New(&fakeEmbedder{vector: []float32{1}}, repo, 0)

	if _, err := r.Retrieve(context.Background(), "anything", 0); err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if repo.gotLimit != DefaultLimit {
		t.Errorf("limit = %d, want %d", repo.gotLimit, DefaultLimit)
	}
	if repo.gotThreshold != DefaultThreshold {
		t.Errorf("threshold = %v, want %v", repo.gotThreshold, DefaultThreshold)
	}
}

func TestRetrieveEmptyResultIsNotAnError(t *testing.T) {
	r := New(&fakeEmbedder{vector: []float32{1}}, &fakeEmbeddingRepo{}, 0.5)

	items, err := r.Retrieve(context.Background(), "unknown topic", 5)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
}

func TestRetrieveEmbedFailureSkipsSearch(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	r := New(&fakeEmbedder{err: errors.New("upstream down")}, repo, 0.5)

	if _, err := r.Retrieve(context.Background(), "anything", 5); err == nil {
		t.Fatal("expected error from failed embedding")
	}
	if repo.searchInvoked {
		t.Error("search should not run when query embedding fails")
	}
}
