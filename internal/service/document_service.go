package service

import (
	"context"
	"encoding/json"
	"time"

	"coachsite-be/internal/dto"
	"coachsite-be/internal/entity"
	"coachsite-be/internal/pkg/apperrors"
	"coachsite-be/internal/pkg/logger"
	"coachsite-be/internal/repository/specification"
	"coachsite-be/internal/repository/unitofwork"
	"coachsite-be/pkg/events"
	pktNats "coachsite-be/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error)
	List(ctx context.Context) ([]*dto.DocumentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           sysLogger,
	}
}

// Create stores the document and queues it for ingestion. The response
// reports is_processed false; vectors appear once the consumer catches up.
func (s *documentService) Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if req.Content == "" && req.FileURL == "" {
		return nil, apperrors.Validation("either content or file_url is required", nil)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	document := entity.Document{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    req.Content,
		FileURL:    req.FileURL,
		UploadedAt: time.Now(),
		CreatedAt:  time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	if err := s.queueIngestion(ctx, document.Id); err != nil {
		return nil, err
	}

	return documentToResponse(&document), nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, apperrors.NotFound("document not found")
	}
	return documentToResponse(document), nil
}

func (s *documentService) List(ctx context.Context) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.DocumentResponse, len(documents))
	for i, document := range documents {
		res[i] = documentToResponse(document)
	}
	return res, nil
}

// Update rewrites the document and queues re-ingestion so stored vectors
// never lag behind visible content for long.
func (s *documentService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, apperrors.NotFound("document not found")
	}

	now := time.Now()
	document.Title = req.Title
	document.Content = req.Content
	document.FileURL = req.FileURL
	document.IsProcessed = false
	document.UpdatedAt = &now

	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, err
	}

	if err := s.queueIngestion(ctx, document.Id); err != nil {
		return nil, err
	}

	return documentToResponse(document), nil
}

// Delete removes the document and its vectors in one transaction so
// retrieval never surfaces chunks from a deleted source.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if document == nil {
		return apperrors.NotFound("document not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeDocumentDeleted,
			Data: map[string]interface{}{
				"document_id": id,
				"title":       document.Title,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("document", "failed to publish event", map[string]interface{}{
				"event": evt.Type,
				"error": err.Error(),
			})
		}
	}

	return nil
}

func (s *documentService) queueIngestion(ctx context.Context, documentId uuid.UUID) error {
	payload, err := json.Marshal(dto.IngestRequest{DocumentId: documentId})
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payload)
}

func documentToResponse(document *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:          document.Id,
		Title:       document.Title,
		FileURL:     document.FileURL,
		UploadedAt:  document.UploadedAt,
		IsProcessed: document.IsProcessed,
		VectorCount: document.VectorCount,
		CreatedAt:   document.CreatedAt,
		UpdatedAt:   document.UpdatedAt,
	}
}
