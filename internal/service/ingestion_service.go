package service

import (
	"context"
	"errors"
	"time"

	"coachsite-be/internal/dto"
	"coachsite-be/internal/entity"
	"coachsite-be/internal/pkg/apperrors"
	"coachsite-be/internal/pkg/logger"
	"coachsite-be/internal/repository/specification"
	"coachsite-be/internal/repository/unitofwork"
	"coachsite-be/pkg/embedding"
	"coachsite-be/pkg/events"
	pktNats "coachsite-be/pkg/nats"
	"coachsite-be/pkg/pdf"
	"coachsite-be/pkg/utils"

	"github.com/google/uuid"
)

type IIngestionService interface {
	IngestDocument(ctx context.Context, documentId uuid.UUID) (*dto.IngestResponse, error)
	RefreshAll(ctx context.Context) (*dto.RefreshAllResponse, error)
	Status(ctx context.Context) (*dto.IngestionStatusResponse, error)
}

type ingestionService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
	chunkSize         int
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	chunkSize int,
) IIngestionService {
	return &ingestionService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		logger:            sysLogger,
		chunkSize:         chunkSize,
	}
}

// IngestDocument replaces a document's stored vectors with a freshly chunked
// and embedded set. A document with no extractable text still ends up
// processed, with zero vectors.
func (s *ingestionService) IngestDocument(ctx context.Context, documentId uuid.UUID) (*dto.IngestResponse, error) {
	if s.embeddingProvider == nil {
		return nil, apperrors.Configuration("AI services not configured")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, apperrors.NotFound("document not found")
	}

	embeddings, err := s.buildEmbeddings(ctx, document)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, document.Id); err != nil {
		return nil, err
	}
	if len(embeddings) > 0 {
		if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, embeddings); err != nil {
			return nil, err
		}
	}
	if err := uow.DocumentRepository().MarkProcessed(ctx, document.Id, len(embeddings)); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("ingestion", "document processed", map[string]interface{}{
		"document_id": document.Id.String(),
		"chunks":      len(embeddings),
	})

	s.publishProcessed(ctx, document, len(embeddings))

	return &dto.IngestResponse{
		Success:         true,
		DocumentId:      document.Id,
		ChunksProcessed: len(embeddings),
	}, nil
}

// RefreshAll wipes the vector store and re-ingests every document. One
// failing document does not abort the run; its vectors are simply rebuilt
// empty-handed on the next attempt.
func (s *ingestionService) RefreshAll(ctx context.Context) (*dto.RefreshAllResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: false})
	if err != nil {
		return nil, err
	}

	if err := uow.DocumentEmbeddingRepository().DeleteAll(ctx); err != nil {
		return nil, err
	}

	res := &dto.RefreshAllResponse{Success: true}
	for _, document := range documents {
		ingestRes, err := s.IngestDocument(ctx, document.Id)
		if err != nil {
			s.logger.Error("ingestion", "refresh skipped document", map[string]interface{}{
				"document_id": document.Id.String(),
				"error":       err.Error(),
			})
			continue
		}
		res.DocumentsProcessed++
		res.TotalChunks += ingestRes.ChunksProcessed
	}

	return res, nil
}

// Status reports store-level ingestion counters for the admin dashboard.
func (s *ingestionService) Status(ctx context.Context) (*dto.IngestionStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := uow.DocumentRepository().Count(ctx, specification.Unprocessed{})
	if err != nil {
		return nil, err
	}
	vectors, err := uow.DocumentEmbeddingRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.IngestionStatusResponse{
		Success:          true,
		Documents:        documents,
		PendingDocuments: pending,
		TotalVectors:     vectors,
	}, nil
}

// buildEmbeddings extracts, chunks and embeds the document's text. Chunk
// order follows document order so ChunkIndex reflects reading position.
func (s *ingestionService) buildEmbeddings(ctx context.Context, document *entity.Document) ([]*entity.DocumentEmbedding, error) {
	text, pages, err := s.extractText(document)
	if err != nil {
		return nil, err
	}

	chunks := utils.ChunkText(utils.CleanText(text), s.chunkSize)
	if len(chunks) == 0 {
		return nil, nil
	}

	vectors, err := s.embeddingProvider.EmbedBatch(ctx, chunks)
	if err != nil {
		return nil, err
	}

	metadata := map[string]interface{}{
		"source":      sourceOf(document),
		"uploaded_at": document.UploadedAt.Format(time.RFC3339),
	}
	if pages > 0 {
		metadata["pages"] = pages
	}

	embeddings := make([]*entity.DocumentEmbedding, len(chunks))
	for i, chunk := range chunks {
		embeddings[i] = &entity.DocumentEmbedding{
			Id:             uuid.New(),
			DocumentId:     document.Id,
			DocumentTitle:  document.Title,
			ChunkText:      chunk,
			ChunkIndex:     i,
			EmbeddingValue: vectors[i],
			Metadata:       metadata,
			CreatedAt:      time.Now(),
		}
	}
	return embeddings, nil
}

func (s *ingestionService) extractText(document *entity.Document) (string, int, error) {
	if document.FileURL != "" {
		parsed, err := pdf.ParseFromURL(document.FileURL)
		if err != nil {
			if errors.Is(err, pdf.ErrSourceNotFound) {
				return "", 0, apperrors.NotFound("document source not found")
			}
			return "", 0, err
		}
		return parsed.Text, parsed.NumPages, nil
	}
	return document.Content, 0, nil
}

func sourceOf(document *entity.Document) string {
	if document.FileURL != "" {
		return "pdf"
	}
	return "inline"
}

func (s *ingestionService) publishProcessed(ctx context.Context, document *entity.Document, chunks int) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: events.TypeDocumentProcessed,
		Data: map[string]interface{}{
			"document_id": document.Id,
			"title":       document.Title,
			"chunks":      chunks,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("ingestion", "failed to publish event", map[string]interface{}{
			"event": evt.Type,
			"error": err.Error(),
		})
	}
}
