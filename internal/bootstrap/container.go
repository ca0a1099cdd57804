package bootstrap

import (
	"context"
	"log"

	"coachsite-be/internal/config"
	"coachsite-be/internal/controller"
	"coachsite-be/internal/pkg/limiter"
	"coachsite-be/internal/pkg/logger"
	"coachsite-be/internal/pkg/mailer"
	"coachsite-be/internal/repository/unitofwork"
	"coachsite-be/internal/service"
	"coachsite-be/pkg/llm"
	"coachsite-be/pkg/llm/gemini"
	"coachsite-be/pkg/rag/retriever"

	"coachsite-be/pkg/embedding"
	pktNats "coachsite-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	DocumentController  controller.IDocumentController
	EmbeddingController controller.IEmbeddingController
	PaymentController   controller.IPaymentController
	ContactController   controller.IContactController
	SettingsController  controller.ISettingsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.Email,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	var llmProvider llm.Provider
	if err := cfg.ValidateAI(); err != nil {
		// The server still boots so public pages and payments keep working;
		// chat and ingestion answer 503 until the key is configured.
		log.Printf("[WARN] %v", err)
	} else {
		var err error
		embeddingProvider, err = embedding.NewGeminiProvider(
			cfg.Keys.GoogleGemini,
			cfg.Ai.EmbeddingModel,
			cfg.Ai.EmbeddingMaxConcurrency,
		)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize embedding provider: %v", err)
		}
		llmProvider, err = gemini.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.ChatModel)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
		}
		log.Printf("[INFO] Using Gemini: embeddings=%s chat=%s", cfg.Ai.EmbeddingModel, cfg.Ai.ChatModel)
	}

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	chatLimiter := limiter.NewDailyLimiter(rdb, "chat_usage", cfg.Ai.ChatDailyLimit)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	ingestionService := service.NewIngestionService(
		uowFactory,
		embeddingProvider,
		natsPub,
		sysLogger,
		cfg.Ai.ChunkSize,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		ingestionService,
		sysLogger,
	)

	settingsService := service.NewSettingsService(uowFactory)

	uow := uowFactory.NewUnitOfWork(context.Background())
	chatRetriever := retriever.New(
		embeddingProvider,
		uow.DocumentEmbeddingRepository(),
		cfg.Ai.SimilarityThreshold,
	)
	chatService := service.NewChatService(
		cfg,
		chatRetriever,
		llmProvider,
		settingsService,
		chatLimiter,
		sysLogger,
	)

	documentService := service.NewDocumentService(uowFactory, publisherService, natsPub, sysLogger)
	paymentService := service.NewPaymentService(cfg, uowFactory, settingsService, natsPub, sysLogger)
	contactService := service.NewContactService(emailService, natsPub, sysLogger)

	// 5. Controllers
	return &Container{
		ChatController:      controller.NewChatController(chatService),
		DocumentController:  controller.NewDocumentController(documentService),
		EmbeddingController: controller.NewEmbeddingController(ingestionService),
		PaymentController:   controller.NewPaymentController(paymentService),
		ContactController:   controller.NewContactController(contactService),
		SettingsController:  controller.NewSettingsController(settingsService),

		ConsumerService: consumerService,
	}
}
