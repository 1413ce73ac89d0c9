package bootstrap

import (
	"context"
	"log"
	"os"

	"ai-agenthub-be/internal/config"
	"ai-agenthub-be/internal/controller"
	"ai-agenthub-be/internal/pkg/limiter"
	"ai-agenthub-be/internal/pkg/logger"
	"ai-agenthub-be/internal/pkg/mailer"
	"ai-agenthub-be/internal/repository/memory"
	"ai-agenthub-be/internal/repository/unitofwork"
	"ai-agenthub-be/internal/service"
	"ai-agenthub-be/pkg/llm/factory"

	pkgNats "ai-agenthub-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	OAuthController      controller.IOAuthController
	UserController       controller.IUserController
	ProjectController    controller.IProjectController
	ChatbotController    controller.IChatbotController
	AttachmentController controller.IAttachmentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
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
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

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

	llmProvider, err := factory.NewProvider(factory.Config{
		Provider:      cfg.Ai.Provider,
		GeminiAPIKey:  cfg.Ai.GeminiAPIKey,
		GeminiModel:   cfg.Ai.GeminiModel,
		GeminiBaseURL: cfg.Ai.GeminiBaseURL,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		OllamaModel:   cfg.Ai.OllamaModel,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.Provider)

	instructionCache := memory.NewInstructionCache()
	dailyLimiter := limiter.NewDailyLimiter(rdb, sysLogger)

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, natsPub)
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	consumerService := service.NewConsumerService(pubSub, service.AuditTopicName, uowFactory, auditLogger)

	authService := service.NewAuthService(uowFactory, emailService, publisherService)
	oauthService := service.NewOAuthService(uowFactory, publisherService)
	userService := service.NewUserService(uowFactory, dailyLimiter, cfg.Chat.DailyLimit)
	projectService := service.NewProjectService(uowFactory, instructionCache)
	attachmentService := service.NewAttachmentService(uowFactory, cfg.App.UploadDir, publisherService)

	chatbotService := service.NewChatbotService(
		uowFactory,
		llmProvider,
		instructionCache,
		dailyLimiter,
		cfg.Chat.DailyLimit,
		publisherService,
		log.New(os.Stderr, "[chatbot] ", log.LstdFlags),
	)

	// 5. Controllers
	return &Container{
		AuthController:       controller.NewAuthController(authService),
		OAuthController:      controller.NewOAuthController(oauthService),
		UserController:       controller.NewUserController(userService),
		ProjectController:    controller.NewProjectController(projectService),
		ChatbotController:    controller.NewChatbotController(chatbotService),
		AttachmentController: controller.NewAttachmentController(attachmentService),

		ConsumerService: consumerService,

		Logger: sysLogger,
	}
}
