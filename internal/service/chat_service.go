package service

import (
	"context"

	"coachsite-be/internal/config"
	"coachsite-be/internal/dto"
	"coachsite-be/internal/pkg/limiter"
	"coachsite-be/internal/pkg/logger"
	"coachsite-be/pkg/llm"
	"coachsite-be/pkg/rag/prompt"
	"coachsite-be/pkg/rag/retriever"
)

type IChatService interface {
	// Chat runs the full retrieval-augmented pipeline and returns the
	// model's response as a stream of text fragments.
	Chat(ctx context.Context, userId string, req *dto.ChatRequest) (<-chan llm.StreamChunk, error)
}

type chatService struct {
	cfg         *config.Config
	retriever   *retriever.Retriever
	llmProvider llm.Provider
	settings    ISettingsService
	usage       *limiter.DailyLimiter
	logger      logger.ILogger
}

func NewChatService(
	cfg *config.Config,
	rt *retriever.Retriever,
	llmProvider llm.Provider,
	settings ISettingsService,
	usage *limiter.DailyLimiter,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		cfg:         cfg,
		retriever:   rt,
		llmProvider: llmProvider,
		settings:    settings,
		usage:       usage,
		logger:      sysLogger,
	}
}

func (s *chatService) Chat(ctx context.Context, userId string, req *dto.ChatRequest) (<-chan llm.StreamChunk, error) {
	if err := s.cfg.ValidateAI(); err != nil {
		return nil, err
	}

	if s.usage != nil {
		usage, err := s.usage.Consume(ctx, userId)
		if err != nil {
			s.logger.Warn("chat", "usage counter unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		}
		if !usage.Allowed {
			return nil, &dto.LimitExceededError{
				Limit:      usage.Limit,
				Used:       usage.Used,
				ResetAfter: usage.ResetAfter,
			}
		}
	}

	items, err := s.retriever.Retrieve(ctx, req.Message, s.cfg.Ai.RetrievalLimit)
	if err != nil {
		return nil, err
	}

	coachName := ""
	if settings, err := s.settings.Get(ctx); err == nil {
		coachName = settings.CoachName
	} else {
		s.logger.Warn("chat", "settings unavailable, using default persona", map[string]interface{}{
			"error": err.Error(),
		})
	}

	builtPrompt := prompt.NewGroundedBuilder(req.Message, items, coachName).Build()

	s.logger.Info("chat", "generating response", map[string]interface{}{
		"user_id":       userId,
		"context_items": len(items),
	})

	return s.llmProvider.GenerateStream(ctx, builtPrompt)
}
