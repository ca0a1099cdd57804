package mapper

import (
	"encoding/json"

	"coachsite-be/internal/entity"
	"coachsite-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentEmbeddingMapper struct{}

func NewDocumentEmbeddingMapper() *DocumentEmbeddingMapper {
	return &DocumentEmbeddingMapper{}
}

func (m *DocumentEmbeddingMapper) ToEntity(e *model.DocumentEmbedding) *entity.DocumentEmbedding {
	if e == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(e.Metadata) > 0 {
		// Malformed metadata is non-fatal; the vector and chunk text are
		// what retrieval depends on.
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return &entity.DocumentEmbedding{
		Id:             e.Id,
		DocumentId:     e.DocumentId,
		DocumentTitle:  e.DocumentTitle,
		ChunkText:      e.ChunkText,
		ChunkIndex:     e.ChunkIndex,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToModel(e *entity.DocumentEmbedding) *model.DocumentEmbedding {
	if e == nil {
		return nil
	}

	var metadata datatypes.JSON
	if e.Metadata != nil {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.DocumentEmbedding{
		Id:             e.Id,
		DocumentId:     e.DocumentId,
		DocumentTitle:  e.DocumentTitle,
		ChunkText:      e.ChunkText,
		ChunkIndex:     e.ChunkIndex,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToEntities(embeddings []*model.DocumentEmbedding) []*entity.DocumentEmbedding {
	entities := make([]*entity.DocumentEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *DocumentEmbeddingMapper) ToModels(embeddings []*entity.DocumentEmbedding) []*model.DocumentEmbedding {
	models := make([]*model.DocumentEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
