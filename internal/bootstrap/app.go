package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"onboardhub/internal/ai"
	"onboardhub/internal/config"
	"onboardhub/internal/ingest"
	"onboardhub/internal/knowledge"
	"onboardhub/internal/model"
	"onboardhub/internal/notify"
	"onboardhub/internal/pkg/pdfextract"
	"onboardhub/internal/platform/database"
	"onboardhub/internal/platform/logger"
	rabbitmqClient "onboardhub/internal/platform/rabbitmq"
	redisClient "onboardhub/internal/platform/redis"
	"onboardhub/internal/repository"
	"onboardhub/internal/scheduler"
	"onboardhub/internal/worker"
)

type App struct {
	Config         *config.Config
	Log            *zap.SugaredLogger
	DB             *gorm.DB
	Redis          *redis.Client
	MQConn         *amqp.Connection
	LLMClient      *ai.OpenAICompatibleClient
	Store          *knowledge.Store
	Pipeline       *ingest.Pipeline
	Scheduler      *scheduler.Scheduler
	DeliveryWorker *worker.ReminderDeliveryWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&model.Employee{},
		&model.Document{},
		&model.KnowledgeEntry{},
		&model.OnboardingPlan{},
		&model.ProgressTask{},
		&model.Reminder{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	var redisCli *redis.Client
	if cfg.Redis.Enabled {
		redisCli, err = redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	llmClient := ai.NewOpenAICompatibleClient()
	embedder := ai.NewEmbedder(llmClient, ai.EmbeddingConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.EmbeddingModel,
	})

	entryRepo := repository.NewKnowledgeEntryRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	store := knowledge.NewStore(entryRepo, embedder, log)
	pipeline := ingest.NewPipeline(
		pdfextract.NewExtractor(log),
		store,
		docRepo,
		cfg.Knowledge.ChunkSize,
		cfg.Knowledge.ChunkOverlap,
		log,
	)

	notifier := notify.NewService(cfg.Notify, log)
	deliveryWorker := worker.NewReminderDeliveryWorker(
		mqConn, reminderRepo, employeeRepo, notifier, cfg.RabbitMQ.ReminderDeliveryQueue, log)
	if err := deliveryWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start delivery worker failed: %w", err)
	}

	publisher := rabbitmqClient.NewReminderPublisher(mqConn, cfg.RabbitMQ.ReminderDeliveryQueue)
	sched := scheduler.New(
		reminderRepo,
		progressRepo,
		publisher,
		pipeline,
		time.Duration(cfg.Scheduler.SweepIntervalSeconds)*time.Second,
		time.Duration(cfg.Scheduler.ReconcileIntervalSeconds)*time.Second,
		log,
	)
	sched.Start(ctx)

	return &App{
		Config:         cfg,
		Log:            log,
		DB:             db,
		Redis:          redisCli,
		MQConn:         mqConn,
		LLMClient:      llmClient,
		Store:          store,
		Pipeline:       pipeline,
		Scheduler:      sched,
		DeliveryWorker: deliveryWorker,
		StartedAt:      time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Scheduler != nil {
		a.Scheduler.Close()
	}
	if a.DeliveryWorker != nil {
		a.DeliveryWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	if a.Log != nil {
		_ = a.Log.Sync()
	}
	return closeErr
}
