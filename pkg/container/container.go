package container

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"reading-tracker-backend/internal/config"
	"reading-tracker-backend/internal/domains/book"
	bookHandler "reading-tracker-backend/internal/domains/book/handler"
	bookRepo "reading-tracker-backend/internal/domains/book/repository"
	bookService "reading-tracker-backend/internal/domains/book/service"
	"reading-tracker-backend/internal/domains/user"
	userHandler "reading-tracker-backend/internal/domains/user/handler"
	userRepo "reading-tracker-backend/internal/domains/user/repository"
	userService "reading-tracker-backend/internal/domains/user/service"
	"reading-tracker-backend/internal/idgen"
	infraCache "reading-tracker-backend/internal/infrastructure/cache"
	"reading-tracker-backend/internal/infrastructure/database"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  *infraCache.RedisCache

	AsynqClient *asynq.Client

	IDAllocator *idgen.Allocator

	BookRepo book.Repository
	UserRepo user.Repository

	BookService book.Service
	UserService user.Service

	BookHandler *bookHandler.BookHandler
	UserHandler *userHandler.UserHandler
}

// New builds the container: config, storage, queue, then the domain
// layers bottom-up.
func New(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}

	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := c.DB.EnsureSchema(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	c.Cache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	counterStore := idgen.NewPostgresStore(c.DB.Pool)
	c.IDAllocator = idgen.New(counterStore, counterStore)

	c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.UserRepo = userRepo.NewPostgresRepository(c.DB.Pool, c.Cache)

	c.BookService = bookService.NewBookService(c.BookRepo, c.IDAllocator)
	c.UserService = userService.NewUserService(c.UserRepo, c.IDAllocator, c.AsynqClient)

	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)

	log.Info().Msg("Container initialized")
	return c, nil
}

// Cleanup releases every held connection; safe to call on a partially
// built container.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Asynq client close failed")
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("Redis close failed")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("Container cleaned up")
}
