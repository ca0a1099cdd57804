package service

import (
	"context"
	"time"

	"coachsite-be/internal/dto"
	"coachsite-be/internal/pkg/apperrors"
	"coachsite-be/internal/pkg/logger"
	"coachsite-be/internal/pkg/mailer"
	"coachsite-be/pkg/events"
	pktNats "coachsite-be/pkg/nats"
)

type IContactService interface {
	Send(ctx context.Context, req *dto.ContactRequest) error
}

type contactService struct {
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewContactService(
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IContactService {
	return &contactService{
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
	}
}

func (s *contactService) Send(ctx context.Context, req *dto.ContactRequest) error {
	if err := s.emailService.SendContactMessage(req.Name, req.Email, req.Message); err != nil {
		s.logger.Error("contact", "failed to deliver message", map[string]interface{}{
			"error": err.Error(),
		})
		return apperrors.ServiceUnavailable("message delivery failed", err)
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeContactReceived,
			Data: map[string]interface{}{
				"name":  req.Name,
				"email": req.Email,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("contact", "failed to publish event", map[string]interface{}{
				"event": evt.Type,
				"error": err.Error(),
			})
		}
	}

	return nil
}
