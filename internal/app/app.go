package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/toolhub/toolhub/internal/ai"
	"github.com/toolhub/toolhub/internal/catalog"
	"github.com/toolhub/toolhub/internal/chat"
	"github.com/toolhub/toolhub/internal/config"
	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/editor"
	"github.com/toolhub/toolhub/internal/httpserver"
	"github.com/toolhub/toolhub/internal/httpserver/deps"
	"github.com/toolhub/toolhub/internal/logger"
	"github.com/toolhub/toolhub/internal/redis"
	"github.com/toolhub/toolhub/internal/scheduler"
	redisstore "github.com/toolhub/toolhub/internal/store/redis"
	"github.com/toolhub/toolhub/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	catalog     *catalog.Store
	chatMgr     *chat.Manager
	importer    *scheduler.SeedImporter
	reaper      *scheduler.SessionReaper
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Initialize Redis store
	store := redisstore.NewStore(redisClient)

	// Initialize catalog: load persisted tools, fall back to the
	// built-in seed on a fresh deployment
	cat := catalog.NewStore(store, catalog.DefaultSeed(), loggerClient)
	cat.Load(context.Background())
	loggerClient.Info("catalog initialized",
		logger.Int("tools", cat.Len()))

	// Initialize the AI client (disabled when no API key is set)
	aiClient, err := ai.New(context.Background(), ai.Config{
		APIKey:       cfg.GeminiAPIKey,
		Model:        cfg.GeminiModel,
		ImageModel:   cfg.GeminiImageModel,
		ImageBaseURL: cfg.GeminiImageBaseURL,
		Timeout:      cfg.AITimeout,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to initialize AI client: %v", err)
		os.Exit(1)
	}

	// Chat sessions mirror their transcripts to Redis
	chatMgr := chat.NewManager(aiClient.Model(), store, loggerClient)

	// Admin editor over the catalog, icons via the AI client
	ed := editor.New(cat, aiClient, loggerClient)

	// Browsing view model
	view := domain.NewViewModel(domain.CategoryAll)

	// Initialize seed importer (if a seed file is configured)
	var importer *scheduler.SeedImporter
	var seedTrigger chan struct{}
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, initializing seed importer",
			logger.String("file", cfg.SeedFile))
		seedTrigger = make(chan struct{}, 1)
		importer = scheduler.NewSeedImporter(
			cfg.SeedFile,
			cat,
			loggerClient,
			cfg.SeedImportInterval,
			seedTrigger,
		)
	} else {
		loggerClient.Info("seed file not configured, built-in seed only")
	}

	// Initialize session reaper
	reaper := scheduler.NewSessionReaper(
		chatMgr,
		loggerClient,
		cfg.ReapInterval,
		cfg.SessionTTL,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		RedisClient:  redisClient,
		Catalog:      cat,
		View:         view,
		Editor:       ed,
		AI:           aiClient,
		Chat:         chatMgr,
		SeedTrigger:  seedTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		catalog:     cat,
		chatMgr:     chatMgr,
		importer:    importer,
		reaper:      reaper,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting ToolHub v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("ToolHub %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start seed importer (if enabled)
	if a.importer != nil {
		if err := a.importer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seed importer: %w", err)
		}
		a.logger.Info("seed importer started",
			logger.Duration("interval", a.cfg.SeedImportInterval))
	}

	// Start session reaper
	if err := a.reaper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session reaper: %w", err)
	}
	a.logger.Info("session reaper started",
		logger.Duration("interval", a.cfg.ReapInterval),
		logger.Duration("ttl", a.cfg.SessionTTL))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop schedulers
	if a.importer != nil {
		a.importer.Stop()
	}
	a.reaper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Flush the catalog one last time before the Redis client goes away
	a.catalog.Persist(shutdownCtx)

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ ToolHub stopped cleanly")
	return nil
}
