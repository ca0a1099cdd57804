package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"coachsite-be/internal/entity"
	"coachsite-be/internal/pkg/apperrors"
	"coachsite-be/pkg/rag/retriever"

	"github.com/google/uuid"
)

func newTestIngestionService(factory *fakeFactory, embedder *fakeEmbedder) IIngestionService {
	return NewIngestionService(factory, embedder, nil, nopLogger{}, 1000)
}

func TestIngestDocumentChunksAndStores(t *testing.T) {
	doc := &entity.Document{
		Id:         uuid.New(),
		Title:      "Goal Setting Guide",
		Content:    strings.Repeat("Set clear goals. ", 200), // forces several chunks
		UploadedAt: time.Now(),
	}
	factory := newFakeFactory(doc)
	embedder := &fakeEmbedder{}
	svc := newTestIngestionService(factory, embedder)

	res, err := svc.IngestDocument(context.Background(), doc.Id)
	if err != nil {
		t.Fatalf("IngestDocument returned error: %v", err)
	}

	if !res.Success {
		t.Error("expected success")
	}
	if res.ChunksProcessed < 2 {
		t.Fatalf("ChunksProcessed = %d, want several chunks for long content", res.ChunksProcessed)
	}
	if len(factory.uow.embeddings.stored) != res.ChunksProcessed {
		t.Errorf("stored %d embeddings, response says %d", len(factory.uow.embeddings.stored), res.ChunksProcessed)
	}

	for i, e := range factory.uow.embeddings.stored {
		if e.ChunkIndex != i {
			t.Errorf("stored[%d].ChunkIndex = %d, chunk order must follow document order", i, e.ChunkIndex)
		}
		if e.DocumentTitle != doc.Title {
			t.Errorf("stored[%d].DocumentTitle = %q, want %q", i, e.DocumentTitle, doc.Title)
		}
	}

	if got := factory.uow.documents.processed[doc.Id]; got != res.ChunksProcessed {
		t.Errorf("MarkProcessed vector count = %d, want %d", got, res.ChunksProcessed)
	}
}

func TestIngestDocumentEmptyContent(t *testing.T) {
	doc := &entity.Document{Id: uuid.New(), Title: "Empty", Content: "   \n  "}
	factory := newFakeFactory(doc)
	embedder := &fakeEmbedder{}
	svc := newTestIngestionService(factory, embedder)

	res, err := svc.IngestDocument(context.Background(), doc.Id)
	if err != nil {
		t.Fatalf("IngestDocument returned error: %v", err)
	}

	if res.ChunksProcessed != 0 {
		t.Errorf("ChunksProcessed = %d, want 0", res.ChunksProcessed)
	}
	if len(embedder.batchCalls) != 0 {
		t.Error("embedding provider should not be called for empty content")
	}
	if got, ok := factory.uow.documents.processed[doc.Id]; !ok || got != 0 {
		t.Errorf("document must still be marked processed with vector count 0, got %d (marked=%v)", got, ok)
	}
}

func TestIngestDocumentNotFound(t *testing.T) {
	svc := newTestIngestionService(newFakeFactory(), &fakeEmbedder{})

	_, err := svc.IngestDocument(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error for unknown document")
	}
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("error kind = %v, want KindNotFound", apperrors.KindOf(err))
	}
}

func TestIngestDocumentReplacesOldVectors(t *testing.T) {
	doc := &entity.Document{Id: uuid.New(), Title: "Doc", Content: "One sentence only."}
	factory := newFakeFactory(doc)
	factory.uow.embeddings.stored = []*entity.DocumentEmbedding{
		{Id: uuid.New(), DocumentId: doc.Id, ChunkText: "stale"},
	}
	svc := newTestIngestionService(factory, &fakeEmbedder{})

	if _, err := svc.IngestDocument(context.Background(), doc.Id); err != nil {
		t.Fatalf("IngestDocument returned error: %v", err)
	}

	for _, e := range factory.uow.embeddings.stored {
		if e.ChunkText == "stale" {
			t.Error("old vectors must be deleted before the new set is written")
		}
	}
}

func TestRefreshAllSurvivesFailingDocument(t *testing.T) {
	good := &entity.Document{Id: uuid.New(), Title: "Good", Content: "Fine content here."}
	bad := &entity.Document{Id: uuid.New(), Title: "Bad", FileURL: "http://localhost:1/missing.pdf"}
	factory := newFakeFactory(good, bad)
	svc := newTestIngestionService(factory, &fakeEmbedder{})

	res, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll returned error: %v", err)
	}

	if !factory.uow.embeddings.deletedAll {
		t.Error("refresh must wipe the vector store before re-ingesting")
	}
	if res.DocumentsProcessed != 1 {
		t.Errorf("DocumentsProcessed = %d, want 1 (failing document skipped)", res.DocumentsProcessed)
	}
	if res.TotalChunks == 0 {
		t.Error("TotalChunks should count the successful document's chunks")
	}
}

func TestRefreshAllNoDocuments(t *testing.T) {
	svc := newTestIngestionService(newFakeFactory(), &fakeEmbedder{})

	res, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll returned error: %v", err)
	}
	if res.DocumentsProcessed != 0 || res.TotalChunks != 0 {
		t.Errorf("expected zero counts, got %+v", res)
	}
	if !res.Success {
		t.Error("an empty refresh is still a successful refresh")
	}
}

func TestStatusReportsStoreCounters(t *testing.T) {
	done := &entity.Document{Id: uuid.New(), Title: "Done", Content: "Already ingested.", IsProcessed: true}
	waiting := &entity.Document{Id: uuid.New(), Title: "Waiting", Content: "Not yet ingested."}
	factory := newFakeFactory(done, waiting)
	factory.uow.embeddings.stored = []*entity.DocumentEmbedding{
		{Id: uuid.New(), DocumentId: done.Id, ChunkText: "Already ingested."},
	}
	svc := newTestIngestionService(factory, &fakeEmbedder{})

	res, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if !res.Success {
		t.Error("expected success")
	}
	if res.Documents != 2 {
		t.Errorf("Documents = %d, want 2", res.Documents)
	}
	if res.PendingDocuments != 1 {
		t.Errorf("PendingDocuments = %d, want 1", res.PendingDocuments)
	}
	if res.TotalVectors != 1 {
		t.Errorf("TotalVectors = %d, want 1", res.TotalVectors)
	}
}

// textEmbedder derives a vector from the character content, so identical
// text always embeds identically. Good enough to exercise ranking end to
// end without a real model.
type textEmbedder struct{}

func textVector(text string) []float32 {
	v := make([]float32, 8)
	for i := 0; i < len(text); i++ {
		v[i%8] += float32(text[i])
	}
	return v
}

func (textEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return textVector(text), nil
}

func (textEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = textVector(text)
	}
	return out, nil
}

func TestIngestedDocumentIsRetrievableByVerbatimQuery(t *testing.T) {
	routines := &entity.Document{
		Id:      uuid.New(),
		Title:   "Morning Routines",
		Content: "Start every day with ten minutes of quiet planning.",
	}
	pricing := &entity.Document{
		Id:      uuid.New(),
		Title:   "Pricing Notes",
		Content: "Membership pricing is reviewed once per quarter.",
	}
	factory := newFakeFactory(routines, pricing)
	factory.uow.embeddings.scoreByCosine = true
	svc := NewIngestionService(factory, textEmbedder{}, nil, nopLogger{}, 1000)

	for _, doc := range []*entity.Document{routines, pricing} {
		if _, err := svc.IngestDocument(context.Background(), doc.Id); err != nil {
			t.Fatalf("IngestDocument(%s): %v", doc.Title, err)
		}
	}

	r := retriever.New(textEmbedder{}, factory.uow.embeddings, 0)
	items, err := r.Retrieve(context.Background(), routines.Content, 5)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected the ingested document to be retrievable")
	}
	if items[0].DocumentTitle != routines.Title {
		t.Errorf("top result title = %q, want %q", items[0].DocumentTitle, routines.Title)
	}
	if items[0].Similarity < 0.999 {
		t.Errorf("verbatim query similarity = %f, want ~1", items[0].Similarity)
	}
}
