package app

import (
	"context"
	"net/http"
	"school_quiz_backend/internal/config"
	"school_quiz_backend/internal/controller"
	"school_quiz_backend/internal/middleware"
	"school_quiz_backend/internal/repository"
	"school_quiz_backend/internal/service"
	"school_quiz_backend/internal/util"
	"school_quiz_backend/pkg/configwatcher"
	"school_quiz_backend/pkg/database"
	"school_quiz_backend/pkg/logger"
	"school_quiz_backend/pkg/monitoring"
	"school_quiz_backend/pkg/security"
	"school_quiz_backend/pkg/tracing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const voucherSweepInterval = 10 * time.Minute

type App struct {
	Config          *config.Config
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	limiter         *security.Limiter
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	school   *repository.SchoolRepository
	question *repository.QuestionRepository
	attempt  *repository.AttemptRepository
	voucher  *repository.VoucherRepository
	product  *repository.ProductRepository
}

type services struct {
	gate     *service.ReleaseGate
	auth     *service.AuthService
	user     *service.UserService
	school   *service.SchoolService
	question *service.QuestionService
	quiz     *service.QuizService
	voucher  *service.VoucherService
	product  *service.ProductService
	storage  *service.StorageService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	school   *controller.SchoolController
	question *controller.QuestionController
	quiz     *controller.QuizController
	voucher  *controller.VoucherController
	product  *controller.ProductController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		school:   repository.NewSchoolRepository(db),
		question: repository.NewQuestionRepository(db),
		attempt:  repository.NewAttemptRepository(db),
		voucher:  repository.NewVoucherRepository(db),
		product:  repository.NewProductRepository(db),
	}
}

func (a *App) initServices(ctx context.Context, repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.gate = service.NewReleaseGateFromConfig(cfg.Quiz)
	timeLimit := time.Duration(cfg.Quiz.TimeLimitMinutes) * time.Minute

	// Redis 不可用时不走缓存，直接查库排名
	var cache service.StandingsCache
	if rdb != nil {
		cache = service.NewRedisStandingsCache(rdb, cfg.Quiz.StandingsCacheTTL)
	}

	s.storage = service.NewStorageService(ctx, &cfg.Storage)
	s.auth = service.NewAuthService(repos.user, repos.school, cfg.JWT)
	s.user = service.NewUserService(repos.user, repos.school, s.auth)
	s.school = service.NewSchoolService(repos.school)
	s.question = service.NewQuestionService(repos.question, repos.attempt, s.gate, cfg.Quiz.QuestionsPerQuiz, timeLimit)
	s.voucher = service.NewVoucherService(repos.voucher, repos.product, service.NewRewardPolicy(cfg.Rewards))
	s.quiz = service.NewQuizService(repos.attempt, repos.user, s.voucher, cache, s.gate, timeLimit)
	s.product = service.NewProductService(repos.product, s.storage)

	// 热更新公布时刻与时区
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.gate.Update(newCfg.Quiz.ReleaseHour, newCfg.Quiz.ReleaseMinute, newCfg.Quiz.Location())
		logger.Log.Info("release time reloaded",
			zap.Int("hour", newCfg.Quiz.ReleaseHour),
			zap.Int("minute", newCfg.Quiz.ReleaseMinute),
			zap.String("timezone", newCfg.Quiz.Timezone),
		)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		user:     controller.NewUserController(s.user),
		school:   controller.NewSchoolController(s.school),
		question: controller.NewQuestionController(s.question),
		quiz:     controller.NewQuizController(s.quiz, s.question),
		voucher:  controller.NewVoucherController(s.voucher),
		product:  controller.NewProductController(s.product),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 定时清理过期代金券，并监听配置文件变更
func (a *App) startBackgroundTasks(ctx context.Context, s *services) {
	go a.limiter.Sweep(ctx, time.Minute)

	go func() {
		ticker := time.NewTicker(voucherSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.voucher.ExpireOverdue(ctx); err != nil {
					logger.Log.Error("voucher expiry sweep error", zap.Error(err))
				}
			}
		}
	}()

	if a.ConfigDir == "" {
		return
	}
	err := configwatcher.Watch(ctx, a.ConfigDir, func(newCfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(newCfg)
		}
	})
	if err != nil {
		logger.Log.Warn("config watcher disabled", zap.Error(err))
	}
}

// NewApp 初始化依赖并组装路由；ctx 控制后台任务的生命周期
func NewApp(ctx context.Context, cfg *config.Config, configDir string) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode != gin.ReleaseMode)
	if err != nil {
		return nil, err
	}

	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
	}

	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		logger.Log.Warn("redis unavailable, standings cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config:    cfg,
		ConfigDir: configDir,
		DB:        db,
		Redis:     rdb,
		limiter:   security.NewLimiter(cfg.RateLimit),
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("school-quiz-backend", cfg.Tracing)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	repos := app.initRepositories(db)
	services := app.initServices(ctx, repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(middleware.RequestLogger("/metrics", "/api/health"), middleware.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(ctx, services)

	return app, nil
}

// Run 启动 HTTP 服务，ctx 结束后优雅关闭
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	// 设置5秒的超时时间
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
	return nil
}
