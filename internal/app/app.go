package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/nxzen/hackathon-server/cmd/server/docs" // swagger docs
	"github.com/nxzen/hackathon-server/internal/module/auth"
	"github.com/nxzen/hackathon-server/internal/module/content"
	"github.com/nxzen/hackathon-server/internal/module/registration"
	"github.com/nxzen/hackathon-server/internal/module/roster"
	sharedcache "github.com/nxzen/hackathon-server/internal/shared/cache"
	"github.com/nxzen/hackathon-server/internal/shared/config"
	"github.com/nxzen/hackathon-server/internal/shared/database"
	"github.com/nxzen/hackathon-server/internal/shared/logger"
	"github.com/nxzen/hackathon-server/internal/shared/metrics"
	"github.com/nxzen/hackathon-server/internal/shared/middleware"
)

// App wires the hackathon registration service together.
type App struct {
	config    *config.Config
	db        *gorm.DB
	redis     redis.UniversalClient
	router    *gin.Engine
	logger    *logger.Logger
	zapLogger *zap.Logger
	metrics   *metrics.Metrics

	rateLimiter *middleware.RateLimiter

	// Modules
	draftManager        *registration.Manager
	registrationService *registration.Service
	registrationHandler *registration.Handler
	rosterService       *roster.Service
	rosterHandler       *roster.Handler
	authService         *auth.Service
	authHandler         *auth.Handler
	contentHandler      *content.Handler

	unsubscribeRoster func()
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	zapLog, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init zap logger: %w", err)
	}

	app := &App{
		config:    cfg,
		logger:    log,
		zapLogger: zapLog,
		metrics:   metrics.New("hackathon"),
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	app.db = db

	if err := db.AutoMigrate(&registration.Team{}, &registration.Member{}, &auth.AdminUser{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	// Redis is optional; without it rate limiting and session
	// revocation degrade gracefully.
	if cfg.Redis.Address != "" {
		redisClient, err := sharedcache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("redis connection failed, continuing without it", logger.Err(err))
		} else {
			app.redis = redisClient
			app.rateLimiter = middleware.NewRateLimiter(redisClient)
		}
	}

	app.router = app.setupRouter()

	if err := app.initModules(); err != nil {
		return nil, fmt.Errorf("init modules: %w", err)
	}

	if err := app.startModules(context.Background()); err != nil {
		return nil, fmt.Errorf("start modules: %w", err)
	}

	return app, nil
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))
	r.Use(middleware.Metrics(a.metrics))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	return r
}

// initModules initializes all application modules.
func (a *App) initModules() error {
	rules := registration.Rules{
		MinMembers: a.config.Event.MinMembers,
		MaxMembers: a.config.Event.MaxMembers,
		Categories: registration.NewCategorySet(a.config.Event.Categories),
	}

	var emailSender registration.EmailSender
	if a.config.Email.Enabled {
		emailSender = registration.NewSMTPEmailSender(&registration.SMTPConfig{
			Host:        a.config.Email.Host,
			Port:        a.config.Email.Port,
			User:        a.config.Email.User,
			Password:    a.config.Email.Password,
			FromAddress: a.config.Email.FromAddress,
			FromName:    a.config.Email.FromName,
		}, a.zapLogger)
	}

	a.draftManager = registration.NewManager(a.config.Event.DraftTTL, a.zapLogger)

	repo := registration.NewRepository(a.db)
	a.registrationService = registration.NewService(
		repo,
		rules,
		a.draftManager,
		emailSender,
		a.zapLogger,
		a.metrics,
		a.config.Event.SuccessResetDelay,
	)
	a.registrationHandler = registration.NewHandler(a.registrationService)

	archiver, err := roster.NewS3Archiver(&a.config.Storage)
	if err != nil {
		return fmt.Errorf("init export archiver: %w", err)
	}
	var rosterArchiver roster.Archiver
	if archiver != nil {
		rosterArchiver = archiver
	}
	a.rosterService = roster.NewService(repo, rosterArchiver, a.zapLogger, a.metrics)
	a.rosterHandler = roster.NewHandler(a.rosterService)

	jwtManager := auth.NewJWTManager(&auth.JWTConfig{
		Secret: a.config.Auth.JWTSecret,
		Expiry: a.config.Auth.SessionExpiry,
	})
	a.authService = auth.NewService(
		auth.NewRepository(a.db),
		jwtManager,
		a.redis,
		a.zapLogger,
		a.metrics,
	)
	a.authHandler = auth.NewHandler(a.authService)

	a.contentHandler = content.NewHandler()

	// The roster follows the admin session lifecycle: load it when the
	// first session opens, drop it when the last one closes.
	a.unsubscribeRoster = a.authService.Subscribe(func(ev auth.Event) {
		switch ev.Type {
		case auth.SessionOpened:
			go func() {
				if _, err := a.rosterService.Refresh(context.Background()); err != nil {
					a.zapLogger.Warn("initial roster load failed", zap.Error(err))
				}
			}()
		case auth.SessionClosed:
			a.rosterService.Clear()
		}
	})

	return nil
}

// startModules starts background workers and registers routes.
func (a *App) startModules(ctx context.Context) error {
	if err := a.authService.EnsureSeedAdmin(ctx, a.config.Auth.SeedAdminEmail, a.config.Auth.SeedAdminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	a.draftManager.Start()
	a.authService.Start()

	a.registerRoutes()
	return nil
}

// registerRoutes registers routes for all modules.
func (a *App) registerRoutes() {
	v1 := a.router.Group("/api/v1")

	publicRouter := v1.Group("")

	var registrationLimiter gin.HandlerFunc
	if a.rateLimiter != nil {
		registrationLimiter = middleware.RateLimit(a.rateLimiter, middleware.RateLimitConfig{
			Limit:     a.config.Event.RegistrationRateLimit,
			Window:    a.config.Event.RegistrationRateWindow,
			KeyPrefix: "registration",
		})
	}
	a.contentHandler.RegisterRoutes(publicRouter)
	a.registrationHandler.RegisterRoutes(publicRouter, registrationLimiter)

	adminRouter := v1.Group("/admin")

	var loginLimiter gin.HandlerFunc
	if a.rateLimiter != nil {
		loginLimiter = middleware.RateLimit(a.rateLimiter, middleware.RateLimitConfig{
			Limit:     a.config.Auth.LoginRateLimit,
			Window:    a.config.Auth.LoginRateWindow,
			KeyPrefix: "login",
		})
	}
	a.authHandler.RegisterPublicRoutes(adminRouter, loginLimiter)

	protectedAdmin := adminRouter.Group("")
	protectedAdmin.Use(auth.RequireAdmin(a.authService))
	a.authHandler.RegisterProtectedRoutes(protectedAdmin)
	a.rosterHandler.RegisterRoutes(protectedAdmin)
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop stops the application and releases resources.
func (a *App) Stop() {
	if a.unsubscribeRoster != nil {
		a.unsubscribeRoster()
	}
	if a.draftManager != nil {
		a.draftManager.Stop()
	}
	if a.authService != nil {
		a.authService.Stop()
	}
	if a.zapLogger != nil {
		_ = a.zapLogger.Sync()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = database.Close(a.db)
	}
}
