package service

import (
	"context"
	"encoding/json"

	"coachsite-be/internal/dto"
	"coachsite-be/internal/pkg/apperrors"
	"coachsite-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	ingestion IIngestionService
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	ingestion IIngestionService,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		ingestion: ingestion,
		logger:    sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestRequest
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid messages never become valid, do not retry
		return
	}

	res, err := cs.ingestion.IngestDocument(ctx, payload.DocumentId)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			cs.logger.Warn("consumer", "document gone before ingestion", map[string]interface{}{
				"document_id": payload.DocumentId.String(),
			})
			msg.Ack()
			return
		}
		cs.logger.Error("consumer", "ingestion failed", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("consumer", "document ingested", map[string]interface{}{
		"document_id": res.DocumentId.String(),
		"chunks":      res.ChunksProcessed,
	})
	msg.Ack()
}
