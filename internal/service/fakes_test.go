package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"coachsite-be/internal/entity"
	"coachsite-be/internal/repository/contract"
	"coachsite-be/internal/repository/specification"
	"coachsite-be/internal/repository/unitofwork"
	"coachsite-be/pkg/llm"

	"github.com/google/uuid"
)

// --- logger ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// --- repositories ---

type fakeDocumentRepo struct {
	documents map[uuid.UUID]*entity.Document
	processed map[uuid.UUID]int
}

func newFakeDocumentRepo(documents ...*entity.Document) *fakeDocumentRepo {
	r := &fakeDocumentRepo{
		documents: make(map[uuid.UUID]*entity.Document),
		processed: make(map[uuid.UUID]int),
	}
	for _, d := range documents {
		r.documents[d.Id] = d
	}
	return r
}

func (r *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error {
	r.documents[document.Id] = document
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, document *entity.Document) error {
	r.documents[document.Id] = document
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.documents, id)
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			return r.documents[byID.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range r.documents {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	unprocessedOnly := false
	for _, spec := range specs {
		if _, ok := spec.(specification.Unprocessed); ok {
			unprocessedOnly = true
		}
	}
	var n int64
	for _, d := range r.documents {
		if unprocessedOnly && d.IsProcessed {
			continue
		}
		n++
	}
	return n, nil
}

func (r *fakeDocumentRepo) MarkProcessed(ctx context.Context, id uuid.UUID, vectorCount int) error {
	r.processed[id] = vectorCount
	if d, ok := r.documents[id]; ok {
		d.IsProcessed = true
		d.VectorCount = vectorCount
	}
	return nil
}

type fakeEmbeddingRepo struct {
	stored     []*entity.DocumentEmbedding
	deletedFor []uuid.UUID
	deletedAll bool

	// scoreByCosine switches SearchSimilarWithScore from fixed scores to
	// real cosine similarity over the stored vectors.
	scoreByCosine bool
}

func (r *fakeEmbeddingRepo) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	r.stored = append(r.stored, embeddings...)
	return nil
}

func (r *fakeEmbeddingRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	r.deletedFor = append(r.deletedFor, documentId)
	var kept []*entity.DocumentEmbedding
	for _, e := range r.stored {
		if e.DocumentId != documentId {
			kept = append(kept, e)
		}
	}
	r.stored = kept
	return nil
}

func (r *fakeEmbeddingRepo) DeleteAll(ctx context.Context) error {
	r.deletedAll = true
	r.stored = nil
	return nil
}

func (r *fakeEmbeddingRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.stored)), nil
}

func (r *fakeEmbeddingRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredDocumentEmbedding, error) {
	if r.scoreByCosine {
		var out []*contract.ScoredDocumentEmbedding
		for _, e := range r.stored {
			sim := cosineSimilarity(embedding, e.EmbeddingValue)
			if sim >= threshold {
				out = append(out, &contract.ScoredDocumentEmbedding{Embedding: e, Similarity: sim})
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
		if len(out) > limit {
			out = out[:limit]
		}
		return out, nil
	}

	var out []*contract.ScoredDocumentEmbedding
	for i, e := range r.stored {
		if i >= limit {
			break
		}
		out = append(out, &contract.ScoredDocumentEmbedding{Embedding: e, Similarity: 0.9})
	}
	return out, nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

type fakeSettingsRepo struct {
	settings *entity.Settings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	return r.settings, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, settings *entity.Settings) error {
	r.settings = settings
	return nil
}

// --- unit of work ---

type fakeUow struct {
	documents  *fakeDocumentRepo
	embeddings *fakeEmbeddingRepo
	settings   *fakeSettingsRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) DocumentRepository() contract.DocumentRepository { return u.documents }
func (u *fakeUow) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	return u.embeddings
}
func (u *fakeUow) MembershipRepository() contract.MembershipRepository     { return nil }
func (u *fakeUow) PaymentOrderRepository() contract.PaymentOrderRepository { return nil }
func (u *fakeUow) SettingsRepository() contract.SettingsRepository         { return u.settings }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func newFakeFactory(documents ...*entity.Document) *fakeFactory {
	return &fakeFactory{uow: &fakeUow{
		documents:  newFakeDocumentRepo(documents...),
		embeddings: &fakeEmbeddingRepo{},
		settings:   &fakeSettingsRepo{},
	}}
}

// --- providers ---

type fakeEmbedder struct {
	batchCalls [][]string
	err        error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batchCalls = append(f.batchCalls, texts)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i), 0.5}
	}
	return out, nil
}

type fakeLLM struct {
	gotPrompt string
	fragments []string
	called    bool
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.called = true
	f.gotPrompt = prompt
	return fmt.Sprint(f.fragments), nil
}

func (f *fakeLLM) GenerateStream(ctx context.Context, prompt string, opts ...llm.Option) (<-chan llm.StreamChunk, error) {
	f.called = true
	f.gotPrompt = prompt
	out := make(chan llm.StreamChunk, len(f.fragments))
	for _, fragment := range f.fragments {
		out <- llm.StreamChunk{Text: fragment}
	}
	close(out)
	return out, nil
}

// --- publisher ---

type fakePublisher struct {
	published [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.published = append(f.published, payload)
	return nil
}

var _ IPublisherService = (*fakePublisher)(nil)
