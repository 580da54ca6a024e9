package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"metalpedia-backend/internal/config"
	infraCache "metalpedia-backend/internal/infrastructure/cache"
	"metalpedia-backend/internal/infrastructure/database"
	"metalpedia-backend/internal/infrastructure/storage"
	"metalpedia-backend/internal/shared/auth"
	"metalpedia-backend/internal/shared/middleware"
	"metalpedia-backend/pkg/jwt"

	albumHandler "metalpedia-backend/internal/domains/album/handler"
	albumRepo "metalpedia-backend/internal/domains/album/repository"
	albumService "metalpedia-backend/internal/domains/album/service"
	bandHandler "metalpedia-backend/internal/domains/band/handler"
	bandRepo "metalpedia-backend/internal/domains/band/repository"
	bandService "metalpedia-backend/internal/domains/band/service"
	linkHandler "metalpedia-backend/internal/domains/link/handler"
	linkRepo "metalpedia-backend/internal/domains/link/repository"
	linkService "metalpedia-backend/internal/domains/link/service"
	mediaHandler "metalpedia-backend/internal/domains/media/handler"
	mediaRepo "metalpedia-backend/internal/domains/media/repository"
	mediaService "metalpedia-backend/internal/domains/media/service"
	memberHandler "metalpedia-backend/internal/domains/member/handler"
	memberRepo "metalpedia-backend/internal/domains/member/repository"
	memberService "metalpedia-backend/internal/domains/member/service"
	statsHandler "metalpedia-backend/internal/domains/stats/handler"
	statsRepo "metalpedia-backend/internal/domains/stats/repository"
	statsService "metalpedia-backend/internal/domains/stats/service"
	userHandler "metalpedia-backend/internal/domains/user/handler"
	userRepo "metalpedia-backend/internal/domains/user/repository"
	userService "metalpedia-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the API and the worker.
// Initialization order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       *infraCache.RedisCache
	Storage     *storage.MinIOStorage
	Images      *storage.ImageProcessor
	AsynqClient *asynq.Client
	JWTManager  *jwt.Manager
	Resolver    auth.Resolver
	RateLimiter *middleware.RateLimiter

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo   userRepo.RepositoryInterface
	BandRepo   bandRepo.RepositoryInterface
	MemberRepo memberRepo.RepositoryInterface
	AlbumRepo  albumRepo.RepositoryInterface
	LinkRepo   linkRepo.RepositoryInterface
	MediaRepo  mediaRepo.Repository
	StatsRepo  statsRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	MediaService  mediaService.ServiceInterface
	StatsService  statsService.ServiceInterface
	UserService   userService.ServiceInterface
	BandService   bandService.ServiceInterface
	MemberService memberService.ServiceInterface
	AlbumService  albumService.ServiceInterface
	LinkService   linkService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler   *userHandler.UserHandler
	BandHandler   *bandHandler.BandHandler
	MemberHandler *memberHandler.MemberHandler
	AlbumHandler  *albumHandler.AlbumHandler
	LinkHandler   *linkHandler.LinkHandler
	StatsHandler  *statsHandler.StatsHandler
	MediaHandler  *mediaHandler.MediaHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the whole dependency graph.
// Postgres and MinIO are required; a Redis outage only degrades the
// stats cache and the rate limiter.
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Info().Msg("Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE AND QUEUE
	// ========================================
	c.Cache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
	} else {
		log.Info().Msg("Redis connected")
	}

	c.AsynqClient = asynq.NewClient(c.RedisClientOpt())

	// ========================================
	// STEP 4: INITIALIZE STORAGE
	// ========================================
	store, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store
	c.Images = storage.NewImageProcessor()
	log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("Object storage ready")

	c.JWTManager = jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// ========================================
	// STEP 5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	// The user repository is the role store for both auth modes
	c.Resolver = auth.NewResolver(cfg.Auth.Mode, c.UserRepo, c.JWTManager)
	c.RateLimiter = middleware.NewRateLimiter(c.Cache.Client(), cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)

	log.Info().Str("auth_mode", cfg.Auth.Mode).Msg("DI container initialized")
	return c, nil
}

// RedisClientOpt shares the Redis settings with asynq
func (c *Container) RedisClientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.BandRepo = bandRepo.NewPostgresRepository(pool)
	c.MemberRepo = memberRepo.NewPostgresRepository(pool)
	c.AlbumRepo = albumRepo.NewPostgresRepository(pool)
	c.LinkRepo = linkRepo.NewPostgresRepository(pool)
	c.MediaRepo = mediaRepo.NewPostgresRepository(pool)
	c.StatsRepo = statsRepo.NewPostgresRepository(pool, c.Cache, c.Config.Cache.StatsTTL)
}

func (c *Container) initServices() {
	c.MediaService = mediaService.NewMediaService(
		c.Storage,
		c.Images,
		c.MediaRepo,
		c.AsynqClient,
		c.Config.Jobs.CleanupMaxRetry,
	)
	c.StatsService = statsService.NewStatsService(c.StatsRepo)

	c.UserService = userService.NewUserService(c.UserRepo, c.MediaService, c.StatsService)

	// The band detail aggregate reads through the child repositories
	c.BandService = bandService.NewBandService(
		c.BandRepo,
		c.MemberRepo,
		c.AlbumRepo,
		c.LinkRepo,
		c.UserRepo,
		c.MediaService,
		c.StatsService,
	)

	// Child services only need the band lookup
	c.MemberService = memberService.NewMemberService(c.MemberRepo, c.BandRepo)
	c.AlbumService = albumService.NewAlbumService(c.AlbumRepo, c.BandRepo, c.MediaService, c.StatsService)
	c.LinkService = linkService.NewLinkService(c.LinkRepo, c.BandRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BandHandler = bandHandler.NewBandHandler(c.BandService)
	c.MemberHandler = memberHandler.NewMemberHandler(c.MemberService)
	c.AlbumHandler = albumHandler.NewAlbumHandler(c.AlbumService)
	c.LinkHandler = linkHandler.NewLinkHandler(c.LinkService)
	c.StatsHandler = statsHandler.NewStatsHandler(c.StatsService)
	c.MediaHandler = mediaHandler.NewMediaHandler(c.MediaService)
}

// Cleanup releases connections on shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close asynq client")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
